// Package config provides configuration management.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
	"github.com/lcalmvr/sub-assistant-sub001/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Carrier contains own-carrier identification settings
	Carrier CarrierConfig `json:"carrier" mapstructure:"carrier"`

	// Tower contains tower-engine defaults
	Tower TowerConfig `json:"tower" mapstructure:"tower"`

	// Output contains output configuration
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Server contains API server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// CarrierConfig identifies the quoting entity's own paper.
type CarrierConfig struct {
	// OwnMarker is the token matched (case-insensitively) against layer
	// carrier names when decoding legacy tower payloads that carry no
	// explicit role field.
	OwnMarker string `json:"own_marker" mapstructure:"own_marker"`
}

// TowerConfig contains tower-engine defaults
type TowerConfig struct {
	// DefaultRetention is the fallback retention used when naming a
	// primary tower whose bottom layer carries no retention of its own.
	DefaultRetention float64 `json:"default_retention" mapstructure:"default_retention"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (json, pretty)
	DefaultFormat string `json:"default_format" mapstructure:"default_format"`

	// ShowDerived includes RPM/ILF in rendered layers
	ShowDerived bool `json:"show_derived" mapstructure:"show_derived"`
}

// ServerConfig contains API server settings
type ServerConfig struct {
	// Listen is the bind address for the API server
	Listen string `json:"listen" mapstructure:"listen"`

	// AllowedOrigins is the CORS allowlist
	AllowedOrigins []string `json:"allowed_origins" mapstructure:"allowed_origins"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Carrier: CarrierConfig{
			OwnMarker: "Sompo",
		},
		Tower: TowerConfig{
			DefaultRetention: 25000,
		},
		Output: OutputConfig{
			DefaultFormat: "pretty",
			ShowDerived:   true,
		},
		Server: ServerConfig{
			Listen:         ":8080",
			AllowedOrigins: []string{"*"},
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, with environment overrides
// (prefix SUB_ASSISTANT, e.g. SUB_ASSISTANT_CARRIER_OWN_MARKER).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("SUB_ASSISTANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "reading config file", err)
	}

	config := Default()
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "decoding config file", err)
	}

	return config, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
