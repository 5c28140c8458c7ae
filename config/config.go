package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ServerConfig holds the HTTP server configuration. A zero rate limit or
// cache TTL disables the corresponding middleware.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// IngestConfig holds the MQTT measurement-ingestion configuration.
type IngestConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BrokerURL string `yaml:"broker_url"`
	Topic     string `yaml:"topic"`
	ClientID  string `yaml:"client_id"`
	QoS       int    `yaml:"qos"`
}

// AdminConfig controls the administrative record browser.
type AdminConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads the configuration file at path, then applies environment
// overrides. A missing file is not an error so the process can run on
// environment variables alone.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            8080,
			RateLimitPerSec: 10,
			RateLimitBurst:  20,
		},
		Ingest: IngestConfig{
			Topic:    "sensors/+/data",
			ClientID: "plantmond",
			QoS:      1,
		},
	}

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("MQTT_BROKER_URL"); v != "" {
		cfg.Ingest.BrokerURL = v
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 20
	}

	return cfg, nil
}
