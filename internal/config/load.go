package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GYM"

// defaults lists every key with its default value. Registering each key is
// also what lets viper's AutomaticEnv see it during Unmarshal.
var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.shutdown_timeout_seconds": 15,
	"database.driver":                 DriverMongo,
	"database.url":                    "",
	"database.name":                   "gym",
	"database.timeout_seconds":        10,
	"database.migrate_on_start":       true,
	"auth.jwt_secret":                 "",
	"auth.token_lifetime_minutes":     60,
	"auth.bcrypt_cost":                10,
	"rate_limit.login_max":            10,
	"rate_limit.login_window_seconds": 60,
	"redis.url":                       "",
	"reconcile.interval_minutes":      0,
	"reconcile.dry_run":               false,
}

// Load configuration from a .env file, an optional config.yaml in the working
// directory and GYM_* environment variables. Environment variables take
// precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

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
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
