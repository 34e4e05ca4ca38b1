// Package config loads tool configuration from hyperline.yml.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the Hyperline configuration.
type Config struct {
	// Manifest is the path of the resource model manifest.
	Manifest string `mapstructure:"manifest"`

	// Output is the path the generated schema document is written to.
	Output string `mapstructure:"output"`

	// Prefix overrides the manifest's API path prefix when non-empty.
	Prefix string `mapstructure:"prefix"`

	Server ServerConfig `mapstructure:"server"`
}

// ServerConfig represents the schema server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load loads the configuration from hyperline.yml or hyperline.yaml in
// the working directory, falling back to defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("manifest", "resources.yml")
	v.SetDefault("output", "schema.json")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8000)

	v.SetConfigName("hyperline")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HYPERLINE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
