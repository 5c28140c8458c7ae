package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plant-monitor-backend/internal/apperr"
	"plant-monitor-backend/internal/model"
	"plant-monitor-backend/internal/validate"
)

// CreateSensor handles POST /sensor. The machine reference is checked for
// format only; the referenced machine need not exist.
func (h *Handler) CreateSensor(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	columns, fieldErrs := validate.Payload(payload, model.SensorEntity.Fields, false)
	if fieldErrs != nil {
		h.fail(c, apperr.Validation(fieldErrs))
		return
	}

	sensor := model.Sensor{
		Name:              columns["name"].(string),
		UnitOfMeasurement: columns["unit_of_measurement"].(string),
		Machine:           columns["machine"].(string),
	}
	if v, ok := columns["min_value"].(float64); ok {
		sensor.MinValue = &v
	}
	if v, ok := columns["max_value"].(float64); ok {
		sensor.MaxValue = &v
	}

	if err := h.store.CreateSensor(c.Request.Context(), &sensor); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sensor)
}

// ListSensors handles GET /sensor.
func (h *Handler) ListSensors(c *gin.Context) {
	sensors, err := h.store.ListSensors(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sensors)
}

// ListSensorsByMachine handles GET /sensor/:id/sensor, where :id is a
// machine identifier. An unknown machine yields an empty sequence.
func (h *Handler) ListSensorsByMachine(c *gin.Context) {
	sensors, err := h.store.ListSensorsByMachine(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sensors)
}

// GetSensor handles GET /sensor/:id.
func (h *Handler) GetSensor(c *gin.Context) {
	sensor, err := h.store.GetSensor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sensor)
}

// UpdateSensor handles PATCH /sensor/:id.
func (h *Handler) UpdateSensor(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	columns, fieldErrs := validate.Payload(payload, model.SensorEntity.Fields, true)
	if fieldErrs != nil {
		h.fail(c, apperr.Validation(fieldErrs))
		return
	}

	sensor, err := h.store.UpdateSensor(c.Request.Context(), c.Param("id"), columns)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sensor)
}

// DeleteSensor handles DELETE /sensor/:id. Dependent sensor data is kept.
func (h *Handler) DeleteSensor(c *gin.Context) {
	if err := h.store.DeleteSensor(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sensor deleted"})
}
