package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"plant-monitor-backend/config"
	"plant-monitor-backend/internal/admin"
	"plant-monitor-backend/internal/model"
	"plant-monitor-backend/internal/mw"
	"plant-monitor-backend/internal/store"
)

// NewRouter creates and configures a new Gin router serving the three
// resource families, with rate limiting and response caching per the server
// configuration and the admin console mounted when enabled.
func NewRouter(s store.Store, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(mw.RequestLogger(logger), gin.Recovery())

	if cfg.Server.RateLimitPerSec > 0 {
		r.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	}
	if cfg.Server.CacheTTLSeconds > 0 {
		ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
		r.Use(mw.Cache(cache.New(ttl, 2*ttl), ttl))
	}

	h := NewHandler(s, logger.With("component", "api"))

	machine := r.Group("/machine")
	{
		machine.POST("", h.CreateMachine)
		machine.GET("", h.ListMachines)
		machine.GET("/:id", h.GetMachine)
		machine.PATCH("/:id", h.UpdateMachine)
		machine.DELETE("/:id", h.DeleteMachine)
	}

	sensor := r.Group("/sensor")
	{
		sensor.POST("", h.CreateSensor)
		sensor.GET("", h.ListSensors)
		sensor.GET("/:id", h.GetSensor)
		sensor.GET("/:id/sensor", h.ListSensorsByMachine)
		sensor.PATCH("/:id", h.UpdateSensor)
		sensor.DELETE("/:id", h.DeleteSensor)
	}

	data := r.Group("/sensor-data")
	{
		data.POST("", h.CreateSensorData)
		data.GET("", h.ListSensorData)
		data.GET("/:id", h.GetSensorData)
		data.PATCH("/:id", h.UpdateSensorData)
		data.DELETE("/:id", h.DeleteSensorData)
	}

	if cfg.Admin.Enabled {
		admin.Register(r, s, model.Entities(), logger.With("component", "admin"))
	}

	return r
}
