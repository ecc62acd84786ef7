package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime parameter. Environment variables override the
// config file (HTTP_PORT, STORAGE_BACKEND, REDIS_ADDR, DATABASE_URL,
// AMQP_URL, LOG_LEVEL).
type Config struct {
	HTTPPort       int    `mapstructure:"http-port"`
	StorageBackend string `mapstructure:"storage-backend"`
	RedisAddr      string `mapstructure:"redis-addr"`
	DatabaseURL    string `mapstructure:"database-url"`
	AMQPURL        string `mapstructure:"amqp-url"`
	LogLevel       string `mapstructure:"log-level"`
}

var envFields = []string{
	"http-port",
	"storage-backend",
	"redis-addr",
	"database-url",
	"amqp-url",
	"log-level",
}

// field: default value
var defaults = map[string]any{
	"http-port":       3000,
	"storage-backend": "memory",
	"log-level":       "INFO",
}

// Load reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file; the file
// itself is optional when every required value has a default or env value.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, field := range envFields {
		_ = v.BindEnv(field)
	}
	for field, value := range defaults {
		v.SetDefault(field, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	switch cfg.StorageBackend {
	case "memory":
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis-addr is required for the redis backend")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database-url is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown storage-backend %q", cfg.StorageBackend)
	}

	return &cfg, nil
}
