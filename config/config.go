// Package config provides Viper-based configuration loading for the act
// interpreter.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// DisplayConfig controls how the game is presented.
type DisplayConfig struct {
	// Mode is "tui" for the full-screen interface or "plain" for line output.
	Mode string `mapstructure:"mode"`
	// Banner shows the "Made with" splash before the first room.
	Banner bool `mapstructure:"banner"`
	// StartupDelay is how long the banner stays up.
	StartupDelay time.Duration `mapstructure:"startup_delay"`
	// ClearScreen clears the terminal after the banner and on every move.
	ClearScreen bool `mapstructure:"clear_screen"`
	// Color enables ANSI colour in plain mode.
	Color bool `mapstructure:"color"`
}

// WorldConfig controls load-time checks and play-time recovery.
type WorldConfig struct {
	// Strict turns world validation warnings into load errors.
	Strict bool `mapstructure:"strict"`
	// RecoverUnknownRoom returns the player to the previous room instead of
	// ending the game when a move leads to an undefined room.
	RecoverUnknownRoom bool `mapstructure:"recover_unknown_room"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Display DisplayConfig `mapstructure:"display"`
	World   WorldConfig   `mapstructure:"world"`
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDisplay(c.Display); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	var errs []string
	if d.Mode != "tui" && d.Mode != "plain" {
		errs = append(errs, fmt.Sprintf("display.mode must be one of [tui, plain], got %q", d.Mode))
	}
	if d.StartupDelay < 0 {
		errs = append(errs, "display.startup_delay must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from path, applies ACT_ environment variable
// overrides, and validates the result. An empty path skips the file and
// uses defaults plus environment.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("ACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("display.mode", "tui")
	v.SetDefault("display.banner", true)
	v.SetDefault("display.startup_delay", "4s")
	v.SetDefault("display.clear_screen", true)
	v.SetDefault("display.color", true)

	v.SetDefault("world.strict", false)
	v.SetDefault("world.recover_unknown_room", false)
}
