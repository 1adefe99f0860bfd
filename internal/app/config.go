package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Modes of a single run.
const (
	ModeValidate = "validate"
	ModeInspect  = "inspect"
	ModeDigest   = "digest"
)

// Config holds all the necessary configuration for an App instance to run.
// Environment variables provide the defaults; CLI flags override them.
type Config struct {
	ScenePath string `env:"RIGSCENE_SCENE_PATH"`
	Variant   string `env:"RIGSCENE_VARIANT"`
	Mode      string `env:"RIGSCENE_MODE" envDefault:"validate"`
	Output    string `env:"RIGSCENE_OUTPUT" envDefault:"text"`
	LogFormat string `env:"RIGSCENE_LOG_FORMAT" envDefault:"json"`
	LogLevel  string `env:"RIGSCENE_LOG_LEVEL" envDefault:"info"`
}

// ConfigFromEnv returns a Config populated from the environment. Unset
// variables fall back to the declared defaults.
func ConfigFromEnv() Config {
	var cfg Config
	// Parse errors only occur for malformed tags, which is a programmer
	// error; an empty config with defaults is still usable.
	_ = env.Parse(&cfg)
	if cfg.Mode == "" {
		cfg.Mode = ModeValidate
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenePath == "" {
		return nil, errors.New("ScenePath is a required configuration field and cannot be empty")
	}

	switch cfg.Mode {
	case ModeValidate, ModeInspect, ModeDigest:
	default:
		return nil, fmt.Errorf("invalid mode %q: must be 'validate', 'inspect', or 'digest'", cfg.Mode)
	}

	switch cfg.Output {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'text', 'json', or 'yaml'", cfg.Output)
	}

	return &cfg, nil
}
