package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Defaults for the name badge and schema text limits.
const (
	DefaultMaxNameBadgeChars  = 250
	DefaultMaxSchemaTextBytes = 50000
)

// Config holds backend selection, storage location and the schema limits
// enforced by the encoder.
type Config struct {
	Backend            string   `json:"backend" yaml:"backend" mapstructure:"backend" validate:"required,oneof=sqlite"`
	DataDir            string   `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	MaxNameBadgeChars  int      `json:"max_name_badge_chars" yaml:"max_name_badge_chars" mapstructure:"max_name_badge_chars" validate:"gte=0"`
	MaxSchemaTextBytes int      `json:"max_schema_text_bytes" yaml:"max_schema_text_bytes" mapstructure:"max_schema_text_bytes" validate:"gte=0"`
	LogLevel           string   `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	ExtraLanguages     []string `json:"extra_languages" yaml:"extra_languages,omitempty" mapstructure:"extra_languages" validate:"dive,required"`
}

// DefaultConfig returns a Config for the SQLite backend with default limits.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendSQLite,
		MaxNameBadgeChars:  DefaultMaxNameBadgeChars,
		MaxSchemaTextBytes: DefaultMaxSchemaTextBytes,
		LogLevel:           "info",
	}
}

// WithDefaults returns c with zero limits, backend and log level replaced by
// their defaults.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if c.MaxNameBadgeChars == 0 {
		c.MaxNameBadgeChars = DefaultMaxNameBadgeChars
	}
	if c.MaxSchemaTextBytes == 0 {
		c.MaxSchemaTextBytes = DefaultMaxSchemaTextBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrInvalidConfig  = errors.New("invalid config")
)

var configValidate = validator.New()

// Validate checks that the Config is well-formed. Backend problems return
// ErrBackendEmpty or ErrBackendUnknown; everything else wraps ErrInvalidConfig.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, fe := range verrs {
		if fe.Field() != "Backend" {
			continue
		}
		if fe.Tag() == "required" {
			return ErrBackendEmpty
		}
		return ErrBackendUnknown
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, verrs.Error())
}
