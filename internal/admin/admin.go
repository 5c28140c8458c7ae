// Package admin is an optional record browser bound to the same store as the
// resource handlers. It is driven entirely by the entity descriptions in the
// schema package and contains no per-entity logic: new entities become
// browsable by appearing in the description list.
package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"plant-monitor-backend/internal/schema"
	"plant-monitor-backend/internal/store"
	"plant-monitor-backend/internal/validate"
)

type console struct {
	store    store.Store
	entities []schema.Entity
	logger   *slog.Logger
}

// Register mounts the admin routes on the router.
func Register(r *gin.Engine, s store.Store, entities []schema.Entity, logger *slog.Logger) {
	a := &console{store: s, entities: entities, logger: logger}

	g := r.Group("/admin/api")
	g.GET("/entities", a.listEntities)
	g.GET("/:entity", a.listRecords)
	g.GET("/:entity/:id", a.getRecord)
	g.PATCH("/:entity/:id", a.updateRecord)
	g.DELETE("/:entity/:id", a.deleteRecord)
}

func (a *console) entity(c *gin.Context) (schema.Entity, bool) {
	e, ok := schema.ByName(a.entities, c.Param("entity"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "unknown entity"})
	}
	return e, ok
}

func (a *console) listEntities(c *gin.Context) {
	c.JSON(http.StatusOK, a.entities)
}

func (a *console) listRecords(c *gin.Context) {
	e, ok := a.entity(c)
	if !ok {
		return
	}

	rows := make([]map[string]any, 0)
	if err := a.store.DB().WithContext(c.Request.Context()).Table(e.Table).Find(&rows).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (a *console) getRecord(c *gin.Context) {
	e, ok := a.entity(c)
	if !ok {
		return
	}

	row := map[string]any{}
	err := a.store.DB().WithContext(c.Request.Context()).Table(e.Table).Where("id = ?", c.Param("id")).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
			return
		}
		a.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (a *console) updateRecord(c *gin.Context) {
	e, ok := a.entity(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	columns, fieldErrs := validate.Payload(payload, e.Fields, true)
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}
	if len(columns) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no writable fields in payload"})
		return
	}
	if e.Touch != "" {
		columns[e.Touch] = time.Now().UTC()
	}

	res := a.store.DB().WithContext(c.Request.Context()).Table(e.Table).Where("id = ?", c.Param("id")).Updates(columns)
	if res.Error != nil {
		a.fail(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
		return
	}

	row := map[string]any{}
	if err := a.store.DB().WithContext(c.Request.Context()).Table(e.Table).Where("id = ?", c.Param("id")).Take(&row).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (a *console) deleteRecord(c *gin.Context) {
	e, ok := a.entity(c)
	if !ok {
		return
	}

	res := a.store.DB().WithContext(c.Request.Context()).Exec("DELETE FROM "+e.Table+" WHERE id = ?", c.Param("id"))
	if res.Error != nil {
		a.fail(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "record deleted"})
}

func (a *console) fail(c *gin.Context, status int, err error) {
	a.logger.Error("admin request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err.Error(),
	)
	c.JSON(status, gin.H{"message": err.Error()})
}
