package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plant-monitor-backend/internal/apperr"
	"plant-monitor-backend/internal/model"
	"plant-monitor-backend/internal/validate"
)

// CreateSensorData handles POST /sensor-data. The measurement timestamp is
// server-assigned at creation time.
func (h *Handler) CreateSensorData(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	columns, fieldErrs := validate.Payload(payload, model.SensorDataEntity.Fields, false)
	if fieldErrs != nil {
		h.fail(c, apperr.Validation(fieldErrs))
		return
	}

	d := model.SensorData{
		Value:    columns["value"].(float64),
		RawValue: columns["raw_value"].(float64),
		Sensor:   columns["sensor"].(string),
	}

	if err := h.store.CreateSensorData(c.Request.Context(), &d); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// ListSensorData handles GET /sensor-data.
func (h *Handler) ListSensorData(c *gin.Context) {
	data, err := h.store.ListSensorData(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetSensorData handles GET /sensor-data/:id.
func (h *Handler) GetSensorData(c *gin.Context) {
	d, err := h.store.GetSensorData(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateSensorData handles PATCH /sensor-data/:id.
func (h *Handler) UpdateSensorData(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	columns, fieldErrs := validate.Payload(payload, model.SensorDataEntity.Fields, true)
	if fieldErrs != nil {
		h.fail(c, apperr.Validation(fieldErrs))
		return
	}

	d, err := h.store.UpdateSensorData(c.Request.Context(), c.Param("id"), columns)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DeleteSensorData handles DELETE /sensor-data/:id.
func (h *Handler) DeleteSensorData(c *gin.Context) {
	if err := h.store.DeleteSensorData(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sensor-data deleted"})
}
