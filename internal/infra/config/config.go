// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Player   PlayerConfig   `yaml:"player"`
}

// ServerConfig represents the HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr" default:":8080"`
}

// DatabaseConfig represents the playlist store configuration.
type DatabaseConfig struct {
	URL string `yaml:"url" validate:"required"`
}

// RedisConfig represents the notification channel configuration.
// An empty Addr disables Redis notifications.
type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel" default:"player:events"`
}

// PlayerConfig represents playback configuration.
type PlayerConfig struct {
	Volume float64      `yaml:"volume" default:"1.0" validate:"gte=0,lte=1"`
	Output OutputConfig `yaml:"output"`
}

// OutputConfig represents the audio output device configuration.
type OutputConfig struct {
	Type     string         `yaml:"type" default:"none" validate:"oneof=none speaker"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for sensitive fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_CHANNEL"); v != "" {
		c.Redis.Channel = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
