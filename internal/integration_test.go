package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"plant-monitor-backend/config"
	"plant-monitor-backend/internal/api"
	"plant-monitor-backend/internal/model"
	"plant-monitor-backend/internal/store"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&model.Machine{}, &model.Sensor{}, &model.SensorData{}))
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})

	cfg := &config.Config{Admin: config.AdminConfig{Enabled: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewRouter(store.NewGormStore(testDB), cfg, logger)
}

func request(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestMachineSensorLifecycle walks the documented scenario: create a
// machine, attach a sensor, look sensors up by machine, delete the machine
// and confirm the sensor survives as an orphan. The missing cascade is
// documented behavior, not a bug.
func TestMachineSensorLifecycle(t *testing.T) {
	r := setupServer(t)

	w := request(t, r, http.MethodPost, "/machine", map[string]any{
		"name":        "Lathe-1",
		"description": "CNC lathe",
		"companyName": "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var machine map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &machine))
	machineID := machine["id"].(string)
	require.True(t, model.IsValidID(machineID))

	createDate, err := time.Parse(time.RFC3339Nano, machine["createDate"].(string))
	require.NoError(t, err)
	updateDate, err := time.Parse(time.RFC3339Nano, machine["updateDate"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, createDate, updateDate, time.Second)

	w = request(t, r, http.MethodPost, "/sensor", map[string]any{
		"name":              "Temp",
		"unitOfMeasurement": "C",
		"minValue":          0,
		"maxValue":          200,
		"machine":           machineID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sensor map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sensor))
	sensorID := sensor["id"].(string)

	w = request(t, r, http.MethodGet, fmt.Sprintf("/sensor/%s/sensor", machineID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sensors []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sensors))
	require.Len(t, sensors, 1)
	assert.Equal(t, sensorID, sensors[0]["id"])

	w = request(t, r, http.MethodDelete, "/machine/"+machineID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The sensor is orphaned, not deleted.
	w = request(t, r, http.MethodGet, fmt.Sprintf("/sensor/%s/sensor", machineID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	sensors = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sensors))
	require.Len(t, sensors, 1)
	assert.Equal(t, sensorID, sensors[0]["id"])
}

// TestMachineUpdateDatesIncrease asserts that sequential updates produce
// strictly increasing updateDate values, never preceding createDate.
func TestMachineUpdateDatesIncrease(t *testing.T) {
	r := setupServer(t)

	w := request(t, r, http.MethodPost, "/machine", map[string]any{"name": "Press"})
	require.Equal(t, http.StatusCreated, w.Code)
	var machine map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &machine))
	id := machine["id"].(string)
	createDate, err := time.Parse(time.RFC3339Nano, machine["createDate"].(string))
	require.NoError(t, err)

	dates := make([]time.Time, 0, 2)
	for i := 0; i < 2; i++ {
		time.Sleep(5 * time.Millisecond)
		w = request(t, r, http.MethodPatch, "/machine/"+id, map[string]any{"description": fmt.Sprintf("rev %d", i)})
		require.Equal(t, http.StatusOK, w.Code)

		var updated map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		parsed, err := time.Parse(time.RFC3339Nano, updated["updateDate"].(string))
		require.NoError(t, err)
		dates = append(dates, parsed)
	}

	assert.True(t, dates[1].After(dates[0]), "updateDate must strictly increase")
	assert.False(t, dates[0].Before(createDate), "updateDate must never precede createDate")
}

// TestSensorDataFlow covers measurement creation and the documented
// validation failure shape for a non-numeric value.
func TestSensorDataFlow(t *testing.T) {
	r := setupServer(t)

	sensorID := model.NewID()
	w := request(t, r, http.MethodPost, "/sensor-data", map[string]any{
		"value":    21.5,
		"rawValue": 2.15,
		"sensor":   sensorID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	id := data["id"].(string)
	assert.Equal(t, sensorID, data["sensor"])

	w = request(t, r, http.MethodPatch, "/sensor-data/"+id, map[string]any{"value": "not-a-number"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var failure struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	require.Len(t, failure.Errors, 1)
	assert.Equal(t, "value", failure.Errors[0].Field)

	// The stored document is untouched.
	w = request(t, r, http.MethodGet, "/sensor-data/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Equal(t, 21.5, data["value"])
}

// TestAdminConsoleSharesStore confirms the admin console browses the same
// collections the resource handlers write.
func TestAdminConsoleSharesStore(t *testing.T) {
	r := setupServer(t)

	w := request(t, r, http.MethodPost, "/machine", map[string]any{"name": "Mill"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, http.MethodGet, "/admin/api/machine", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Mill", rows[0]["name"])
}
