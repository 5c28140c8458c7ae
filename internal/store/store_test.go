package store

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"plant-monitor-backend/internal/apperr"
	"plant-monitor-backend/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Machine{}, &model.Sensor{}, &model.SensorData{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewGormStore(db)
}

func TestCreateMachineAssignsServerFields(t *testing.T) {
	s := newTestStore(t)

	m := model.Machine{Name: "Lathe-1", Description: "CNC lathe", CompanyName: "Acme"}
	require.NoError(t, s.CreateMachine(context.Background(), &m))

	assert.True(t, model.IsValidID(m.ID))
	assert.False(t, m.CreateDate.IsZero())
	assert.Equal(t, m.CreateDate, m.UpdateDate)

	got, err := s.GetMachine(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.Description, got.Description)
	assert.Equal(t, m.CompanyName, got.CompanyName)
}

func TestGetMachineNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetMachine(context.Background(), model.NewID())
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestGetMachineMalformedID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetMachine(context.Background(), "not-an-id")
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestUpdateMachineRefreshesUpdateDate(t *testing.T) {
	s := newTestStore(t)

	m := model.Machine{Name: "Press"}
	require.NoError(t, s.CreateMachine(context.Background(), &m))

	time.Sleep(5 * time.Millisecond)
	first, err := s.UpdateMachine(context.Background(), m.ID, map[string]any{"name": "Press-2"})
	require.NoError(t, err)
	assert.Equal(t, "Press-2", first.Name)
	assert.True(t, first.UpdateDate.After(m.CreateDate))

	time.Sleep(5 * time.Millisecond)
	second, err := s.UpdateMachine(context.Background(), m.ID, map[string]any{})
	require.NoError(t, err)
	// Refreshed even with an empty payload, strictly increasing.
	assert.True(t, second.UpdateDate.After(first.UpdateDate))
	assert.False(t, second.UpdateDate.Before(second.CreateDate))
}

func TestUpdateMachineNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateMachine(context.Background(), model.NewID(), map[string]any{"name": "x"})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestDeleteMachineThenGet(t *testing.T) {
	s := newTestStore(t)

	m := model.Machine{Name: "Mill"}
	require.NoError(t, s.CreateMachine(context.Background(), &m))
	require.NoError(t, s.DeleteMachine(context.Background(), m.ID))

	_, err := s.GetMachine(context.Background(), m.ID)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)

	err = s.DeleteMachine(context.Background(), m.ID)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestListSensorsByMachine(t *testing.T) {
	s := newTestStore(t)
	machineID := model.NewID()

	sensors, err := s.ListSensorsByMachine(context.Background(), machineID)
	require.NoError(t, err)
	assert.Empty(t, sensors)

	sensor := model.Sensor{Name: "Temp", UnitOfMeasurement: "C", Machine: machineID}
	require.NoError(t, s.CreateSensor(context.Background(), &sensor))
	other := model.Sensor{Name: "Vibration", UnitOfMeasurement: "mm/s", Machine: model.NewID()}
	require.NoError(t, s.CreateSensor(context.Background(), &other))

	sensors, err = s.ListSensorsByMachine(context.Background(), machineID)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	assert.Equal(t, sensor.ID, sensors[0].ID)
}

func TestCreateSensorDataDefaultsDate(t *testing.T) {
	s := newTestStore(t)

	d := model.SensorData{Value: 21.5, RawValue: 2.15, Sensor: model.NewID()}
	require.NoError(t, s.CreateSensorData(context.Background(), &d))

	assert.True(t, model.IsValidID(d.ID))
	assert.WithinDuration(t, time.Now().UTC(), d.Date, 5*time.Second)
}

func TestListMachinesEmpty(t *testing.T) {
	s := newTestStore(t)

	machines, err := s.ListMachines(context.Background())
	require.NoError(t, err)
	require.NotNil(t, machines)
	assert.Empty(t, machines)
}

// A helper to build a store over sqlmock for failure injection.
func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormStore(gormDB), mock
}

func TestListMachinesReadError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "machines"`)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := s.ListMachines(context.Background())
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Contains(t, ae.Message, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSensorWriteError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sensors"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.DeleteSensor(context.Background(), model.NewID())
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
