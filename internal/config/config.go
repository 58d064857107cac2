// Package config loads application settings from the environment and an
// optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the application settings.
type Config struct {
	AppPort         string        `mapstructure:"APP_PORT" validate:"required"`
	AppName         string        `mapstructure:"APP_NAME"`
	Locale          string        `mapstructure:"APP_LOCALE" validate:"oneof=ja en"`
	DBDriver        string        `mapstructure:"DB_DRIVER" validate:"oneof=sqlite postgres memory"`
	DatabaseDSN     string        `mapstructure:"DATABASE_DSN" validate:"required_unless=DBDriver memory"`
	DBDebug         bool          `mapstructure:"DB_DEBUG"`
	DBSeed          bool          `mapstructure:"DB_SEED"`
	DefaultPerPage  int           `mapstructure:"PAGINATION_DEFAULT_PER_PAGE" validate:"gt=0,ltefield=MaxPerPage"`
	MaxPerPage      int           `mapstructure:"PAGINATION_MAX_PER_PAGE" validate:"gt=0"`
	JWTSecret       string        `mapstructure:"AUTH_JWT_SECRET"`
	RabbitMQURL     string        `mapstructure:"RABBITMQ_URL"`
	RabbitMQQueue   string        `mapstructure:"RABBITMQ_QUEUE" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// keys lists every setting with its default value.
var keys = map[string]any{
	"APP_PORT":                    ":8080",
	"APP_NAME":                    "Product API",
	"APP_LOCALE":                  "ja",
	"DB_DRIVER":                   "sqlite",
	"DATABASE_DSN":                "products.db",
	"DB_DEBUG":                    false,
	"DB_SEED":                     false,
	"PAGINATION_DEFAULT_PER_PAGE": 15,
	"PAGINATION_MAX_PER_PAGE":     100,
	"AUTH_JWT_SECRET":             "",
	"RABBITMQ_URL":                "",
	"RABBITMQ_QUEUE":              "product_events",
	"SHUTDOWN_TIMEOUT":            "10s",
}

// New returns a viper instance with defaults set and environment lookup enabled.
// When CONFIG_FILE is set, that file is read as well; environment variables
// take precedence over it.
func New() (*viper.Viper, error) {
	v := viper.New()
	for key, value := range keys {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return v, nil
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	v, err := New()
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AuthEnabled reports whether the API requires bearer tokens.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// EventsEnabled reports whether product events are published to RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
