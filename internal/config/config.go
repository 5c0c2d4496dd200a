package config

import "time"

// Database drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// ShutdownTimeout is how long graceful shutdown may take.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig selects and locates the backing database.
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"           validate:"required,oneof=mongo postgres memory"`
	URL            string `mapstructure:"url"              validate:"required_unless=Driver memory"`
	Name           string `mapstructure:"name"             validate:"required_if=Driver mongo"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"  validate:"gt=0"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

// Timeout bounds connection attempts and individual store operations at startup.
func (c DatabaseConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// TokenLifetime is how long an issued token stays valid.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// RateLimitConfig bounds login attempts per client address. LoginMax of 0
// disables the limiter.
type RateLimitConfig struct {
	LoginMax           int `mapstructure:"login_max"            validate:"gte=0"`
	LoginWindowSeconds int `mapstructure:"login_window_seconds" validate:"gt=0"`
}

// LoginWindow is the fixed window over which LoginMax applies.
func (c RateLimitConfig) LoginWindow() time.Duration {
	return time.Duration(c.LoginWindowSeconds) * time.Second
}

// RedisConfig locates the optional Redis used for shared rate limiting.
// An empty URL selects the in-process limiter.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// ReconcileConfig schedules the periodic repair of dangling references.
// IntervalMinutes of 0 disables it.
type ReconcileConfig struct {
	IntervalMinutes int  `mapstructure:"interval_minutes" validate:"gte=0"`
	DryRun          bool `mapstructure:"dry_run"`
}

// Interval is the delay between reconciliation runs.
func (c ReconcileConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}
