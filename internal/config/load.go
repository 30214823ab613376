package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "KRAFTFIX"

// defaults registers every known key so that AutomaticEnv can resolve it
// during Unmarshal. Keys without a sensible default are bound explicitly.
var defaults = map[string]any{
	"server.port":                        5426,
	"server.log_level":                   "info",
	"server.environment":                 EnvDevelopment,
	"database.driver":                    DriverPostgres,
	"database.max_open_conns":            25,
	"database.max_idle_conns":            25,
	"database.conn_max_lifetime_minutes": 5,
	"database.auto_migrate":              false,
	"auth.token_lifetime_minutes":        1440,
	"auth.cookie_name":                   "token",
	"cache.ttl_seconds":                  30,
	"cors.allowed_origins":               []string{"http://localhost:5173"},
}

var boundKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"cache.redis_url",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags on cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
