package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// DefaultLanguage is surfaced when a section lacks the requested language.
	DefaultLanguage string `mapstructure:"DEFAULT_LANGUAGE" default:"en"`

	// Database holds the database configuration.
	Database DatabaseConfig `mapstructure:",squash"`

	// Cache holds the read cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Auth holds the admin API credentials.
	Auth AuthConfig `mapstructure:",squash"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// URL is a postgres:// DSN, or a sqlite file path for local development.
	URL string `mapstructure:"DATABASE_URL" default:"banners.db"`
	// AutoMigrate creates and updates the schema on startup.
	AutoMigrate bool `mapstructure:"DB_AUTO_MIGRATE" default:"true"`
	// SlowQueryMillis is the threshold above which queries are logged as slow.
	SlowQueryMillis int `mapstructure:"DB_SLOW_QUERY_MS" default:"200"`
}

// CacheConfig holds the Redis read cache settings.
type CacheConfig struct {
	// RedisURL is redis://[:password@]host[:port][/db]. Empty disables caching.
	RedisURL string `mapstructure:"REDIS_URL"`
	// TTLSeconds bounds how long a cached storefront banner is served.
	TTLSeconds int `mapstructure:"CACHE_TTL_SECONDS" default:"300"`
}

// AuthConfig holds the secret used to verify admin bearer tokens.
type AuthConfig struct {
	// JWTSecret is the HMAC secret for admin tokens.
	JWTSecret string `mapstructure:"ADMIN_JWT_SECRET" required:"true"`
	// TokenTTLMinutes is the lifetime of tokens issued by cmd/admintoken.
	TokenTTLMinutes int `mapstructure:"ADMIN_TOKEN_TTL_MINUTES" default:"60"`
}

// SlowQueryThreshold returns the slow query threshold as a duration.
func (d DatabaseConfig) SlowQueryThreshold() time.Duration {
	return time.Duration(d.SlowQueryMillis) * time.Millisecond
}

// Enabled reports whether a Redis URL was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// TokenTTL returns the lifetime of issued admin tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			_ = v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
