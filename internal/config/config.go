package config

import "time"

// Environments recognised by ServerConfig.Environment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Database drivers recognised by DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development staging production"`
}

// IsProduction reports whether the server runs in the production environment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver                 string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL                    string `mapstructure:"url" validate:"required_if=Driver postgres,omitempty,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// ConnMaxLifetime returns the connection lifetime as a duration.
func (c DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMinutes) * time.Minute
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=43200"` // max 30 days
	CookieName           string `mapstructure:"cookie_name" validate:"required"`
}

// CacheConfig configures the optional Redis read cache. An empty RedisURL
// disables caching entirely.
type CacheConfig struct {
	RedisURL   string `mapstructure:"redis_url" validate:"omitempty,url"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=1"`
}

// TTL returns the cache entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// CORSConfig lists the browser origins allowed to call the API with credentials.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
