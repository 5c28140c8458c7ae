// Package ingest subscribes to an MQTT topic and persists sensor
// measurements through the same validation layer and store as the HTTP
// handlers. Topic layout: sensors/<sensorID>/data, JSON payload with value
// and rawValue fields.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"plant-monitor-backend/config"
	"plant-monitor-backend/internal/model"
	"plant-monitor-backend/internal/store"
	"plant-monitor-backend/internal/validate"
)

// Service consumes measurements from an MQTT broker.
type Service struct {
	cfg    config.IngestConfig
	store  store.Store
	logger *slog.Logger
}

// NewService creates an ingest service bound to the given store.
func NewService(cfg config.IngestConfig, s store.Store, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  s,
		logger: logger,
	}
}

// Run connects to the broker, subscribes and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.cfg.BrokerURL).
		SetClientID(s.cfg.ClientID).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(client mqtt.Client) {
			// Re-subscribe after every (re)connect.
			token := client.Subscribe(s.cfg.Topic, byte(s.cfg.QoS), s.HandleMessage)
			if token.Wait() && token.Error() != nil {
				s.logger.Error("subscribe failed", "topic", s.cfg.Topic, "error", token.Error())
			}
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to broker %s: %w", s.cfg.BrokerURL, token.Error())
	}
	s.logger.Info("ingest connected", "broker", s.cfg.BrokerURL, "topic", s.cfg.Topic)

	<-ctx.Done()
	client.Disconnect(250)
	return nil
}

// HandleMessage validates and persists a single published measurement.
// Rejected measurements are logged and dropped; an unreachable store only
// fails that one message.
func (s *Service) HandleMessage(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	if len(parts) != 3 {
		s.logger.Warn("unexpected topic shape", "topic", msg.Topic())
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		s.logger.Warn("dropping unparseable measurement", "topic", msg.Topic(), "error", err.Error())
		return
	}
	payload["sensor"] = parts[1]

	columns, fieldErrs := validate.Payload(payload, model.SensorDataEntity.Fields, false)
	if fieldErrs != nil {
		s.logger.Warn("dropping invalid measurement",
			"topic", msg.Topic(),
			"field", fieldErrs[0].Field,
			"error", fieldErrs[0].Message,
		)
		return
	}

	d := model.SensorData{
		Value:    columns["value"].(float64),
		RawValue: columns["raw_value"].(float64),
		Sensor:   columns["sensor"].(string),
	}
	if err := s.store.CreateSensorData(context.Background(), &d); err != nil {
		s.logger.Error("failed to persist measurement", "topic", msg.Topic(), "error", err.Error())
	}
}
