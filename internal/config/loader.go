package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultConfigName = "parallel-instances"
	// EnvPrefix prefixes every environment variable mapped onto a CLI flag,
	// e.g. CYPRESS_BASE_URL for --base-url.
	EnvPrefix = "CYPRESS"
)

// Load reads the configuration file into a defaulted Configuration and
// applies opts on top. With an empty path the file is looked up as
// ./parallel-instances.yaml and is optional; an explicit path must exist.
func Load(v *viper.Viper, path string, opts ...ConfigurationOption) (*Configuration, error) {
	cfg := NewConfigurationWithOptionsAndDefaults()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return cfg.WithOptions(opts...), nil
}
