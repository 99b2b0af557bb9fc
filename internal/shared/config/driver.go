package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DriverConfig contains all configuration for the mrdriver CLI: how many
// workers to run a job with, how to log, and which input pattern to fall
// back on when none is given on the command line.
type DriverConfig struct {
	Workers     int           `mapstructure:"workers"`
	DefaultGlob string        `mapstructure:"default_glob"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// LoadDriver loads the driver configuration from the given path. If
// configPath is empty, it looks for driver.yaml in the config/ directory.
// Environment variables with MRENGINE_ prefix override config file values.
func LoadDriver(configPath string) (*DriverConfig, error) {
	v := viper.New()

	v.SetDefault("workers", 4)
	v.SetDefault("default_glob", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("driver")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("MRENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg DriverConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
