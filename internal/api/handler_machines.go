package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plant-monitor-backend/internal/apperr"
	"plant-monitor-backend/internal/model"
	"plant-monitor-backend/internal/validate"
)

// CreateMachine handles POST /machine.
func (h *Handler) CreateMachine(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	columns, fieldErrs := validate.Payload(payload, model.MachineEntity.Fields, false)
	if fieldErrs != nil {
		h.fail(c, apperr.Validation(fieldErrs))
		return
	}

	m := model.Machine{Name: columns["name"].(string)}
	if v, ok := columns["description"].(string); ok {
		m.Description = v
	}
	if v, ok := columns["company_name"].(string); ok {
		m.CompanyName = v
	}

	if err := h.store.CreateMachine(c.Request.Context(), &m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ListMachines handles GET /machine.
func (h *Handler) ListMachines(c *gin.Context) {
	machines, err := h.store.ListMachines(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMachine handles GET /machine/:id.
func (h *Handler) GetMachine(c *gin.Context) {
	m, err := h.store.GetMachine(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMachine handles PATCH /machine/:id.
func (h *Handler) UpdateMachine(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	columns, fieldErrs := validate.Payload(payload, model.MachineEntity.Fields, true)
	if fieldErrs != nil {
		h.fail(c, apperr.Validation(fieldErrs))
		return
	}

	m, err := h.store.UpdateMachine(c.Request.Context(), c.Param("id"), columns)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMachine handles DELETE /machine/:id. Dependent sensors are not
// deleted; orphaned references are accepted behavior.
func (h *Handler) DeleteMachine(c *gin.Context) {
	if err := h.store.DeleteMachine(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "machine deleted"})
}
