package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix shared by potenad's environment variables.
const EnvPrefix = "POTENAD"

// Env holds settings read from the process environment. Command-line flags
// take precedence over these.
type Env struct {
	// ConfigDir replaces the platform config dir; config.toml is written
	// directly inside it.
	ConfigDir string `envconfig:"CONFIG_DIR"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
	LogFile   string `envconfig:"LOG_FILE"`
}

// LoadEnv reads POTENAD_* variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return &env, nil
}
