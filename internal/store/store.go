// Package store is the persistence layer: a Store interface over an explicit
// gorm handle, injected into handlers at construction time so tests can run
// against isolated instances.
//
// List operations return documents in store-native order, which is not
// guaranteed. Every operation touches exactly one document (or one
// collection scan); consistency of concurrent writes to the same document is
// delegated to the database.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"plant-monitor-backend/internal/apperr"
	"plant-monitor-backend/internal/model"
)

// Store defines all database operations for the three entity collections.
type Store interface {
	// DB exposes the underlying handle for the admin console, which works
	// generically from entity descriptions rather than typed methods.
	DB() *gorm.DB

	CreateMachine(ctx context.Context, m *model.Machine) error
	ListMachines(ctx context.Context) ([]model.Machine, error)
	GetMachine(ctx context.Context, id string) (*model.Machine, error)
	UpdateMachine(ctx context.Context, id string, columns map[string]any) (*model.Machine, error)
	DeleteMachine(ctx context.Context, id string) error

	CreateSensor(ctx context.Context, s *model.Sensor) error
	ListSensors(ctx context.Context) ([]model.Sensor, error)
	ListSensorsByMachine(ctx context.Context, machineID string) ([]model.Sensor, error)
	GetSensor(ctx context.Context, id string) (*model.Sensor, error)
	UpdateSensor(ctx context.Context, id string, columns map[string]any) (*model.Sensor, error)
	DeleteSensor(ctx context.Context, id string) error

	CreateSensorData(ctx context.Context, d *model.SensorData) error
	ListSensorData(ctx context.Context) ([]model.SensorData, error)
	GetSensorData(ctx context.Context, id string) (*model.SensorData, error)
	UpdateSensorData(ctx context.Context, id string, columns map[string]any) (*model.SensorData, error)
	DeleteSensorData(ctx context.Context, id string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Machine ---

func (s *gormStore) CreateMachine(ctx context.Context, m *model.Machine) error {
	now := time.Now().UTC()
	if m.ID == "" {
		m.ID = model.NewID()
	}
	m.CreateDate = now
	m.UpdateDate = now
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperr.WriteError(err)
	}
	return nil
}

func (s *gormStore) ListMachines(ctx context.Context) ([]model.Machine, error) {
	machines := make([]model.Machine, 0)
	if err := s.db.WithContext(ctx).Find(&machines).Error; err != nil {
		return nil, apperr.ReadError(err)
	}
	return machines, nil
}

func (s *gormStore) GetMachine(ctx context.Context, id string) (*model.Machine, error) {
	if !model.IsValidID(id) {
		return nil, apperr.NotFound("machine")
	}
	var m model.Machine
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, readErr(err, "machine")
	}
	return &m, nil
}

// UpdateMachine merges the validated columns onto the stored document.
// update_date is refreshed on every successful update, independent of the
// caller's payload, and therefore never precedes create_date.
func (s *gormStore) UpdateMachine(ctx context.Context, id string, columns map[string]any) (*model.Machine, error) {
	if !model.IsValidID(id) {
		return nil, apperr.NotFound("machine")
	}

	cols := make(map[string]any, len(columns)+1)
	for k, v := range columns {
		cols[k] = v
	}
	cols["update_date"] = time.Now().UTC()

	var m model.Machine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&m, "id = ?", id).Error
	})
	if err != nil {
		return nil, writeErr(err, "machine")
	}
	return &m, nil
}

func (s *gormStore) DeleteMachine(ctx context.Context, id string) error {
	return s.deleteByID(ctx, &model.Machine{}, id, "machine")
}

// --- Sensor ---

func (s *gormStore) CreateSensor(ctx context.Context, sensor *model.Sensor) error {
	if sensor.ID == "" {
		sensor.ID = model.NewID()
	}
	sensor.CreateDate = time.Now().UTC()
	if err := s.db.WithContext(ctx).Create(sensor).Error; err != nil {
		return apperr.WriteError(err)
	}
	return nil
}

func (s *gormStore) ListSensors(ctx context.Context) ([]model.Sensor, error) {
	sensors := make([]model.Sensor, 0)
	if err := s.db.WithContext(ctx).Find(&sensors).Error; err != nil {
		return nil, apperr.ReadError(err)
	}
	return sensors, nil
}

// ListSensorsByMachine returns the sensors referencing machineID. The
// machine itself is not looked up: an unknown or malformed identifier
// yields an empty result, not a not-found error.
func (s *gormStore) ListSensorsByMachine(ctx context.Context, machineID string) ([]model.Sensor, error) {
	sensors := make([]model.Sensor, 0)
	if err := s.db.WithContext(ctx).Where("machine = ?", machineID).Find(&sensors).Error; err != nil {
		return nil, apperr.ReadError(err)
	}
	return sensors, nil
}

func (s *gormStore) GetSensor(ctx context.Context, id string) (*model.Sensor, error) {
	if !model.IsValidID(id) {
		return nil, apperr.NotFound("sensor")
	}
	var sensor model.Sensor
	if err := s.db.WithContext(ctx).First(&sensor, "id = ?", id).Error; err != nil {
		return nil, readErr(err, "sensor")
	}
	return &sensor, nil
}

func (s *gormStore) UpdateSensor(ctx context.Context, id string, columns map[string]any) (*model.Sensor, error) {
	if !model.IsValidID(id) {
		return nil, apperr.NotFound("sensor")
	}
	var sensor model.Sensor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sensor, "id = ?", id).Error; err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&sensor).Updates(columns).Error; err != nil {
			return err
		}
		return tx.First(&sensor, "id = ?", id).Error
	})
	if err != nil {
		return nil, writeErr(err, "sensor")
	}
	return &sensor, nil
}

func (s *gormStore) DeleteSensor(ctx context.Context, id string) error {
	return s.deleteByID(ctx, &model.Sensor{}, id, "sensor")
}

// --- SensorData ---

func (s *gormStore) CreateSensorData(ctx context.Context, d *model.SensorData) error {
	if d.ID == "" {
		d.ID = model.NewID()
	}
	if d.Date.IsZero() {
		d.Date = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return apperr.WriteError(err)
	}
	return nil
}

func (s *gormStore) ListSensorData(ctx context.Context) ([]model.SensorData, error) {
	data := make([]model.SensorData, 0)
	if err := s.db.WithContext(ctx).Find(&data).Error; err != nil {
		return nil, apperr.ReadError(err)
	}
	return data, nil
}

func (s *gormStore) GetSensorData(ctx context.Context, id string) (*model.SensorData, error) {
	if !model.IsValidID(id) {
		return nil, apperr.NotFound("sensor-data")
	}
	var d model.SensorData
	if err := s.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, readErr(err, "sensor-data")
	}
	return &d, nil
}

func (s *gormStore) UpdateSensorData(ctx context.Context, id string, columns map[string]any) (*model.SensorData, error) {
	if !model.IsValidID(id) {
		return nil, apperr.NotFound("sensor-data")
	}
	var d model.SensorData
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&d).Updates(columns).Error; err != nil {
			return err
		}
		return tx.First(&d, "id = ?", id).Error
	})
	if err != nil {
		return nil, writeErr(err, "sensor-data")
	}
	return &d, nil
}

func (s *gormStore) DeleteSensorData(ctx context.Context, id string) error {
	return s.deleteByID(ctx, &model.SensorData{}, id, "sensor-data")
}

// --- helpers ---

func (s *gormStore) deleteByID(ctx context.Context, doc any, id, resource string) error {
	if !model.IsValidID(id) {
		return apperr.NotFound(resource)
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(doc)
	if res.Error != nil {
		return apperr.WriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

func readErr(err error, resource string) *apperr.Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource)
	}
	return apperr.ReadError(err)
}

func writeErr(err error, resource string) *apperr.Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource)
	}
	return apperr.WriteError(err)
}
