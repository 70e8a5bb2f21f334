// Package config loads the example bot's configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrConfigFileNotFound means no config file exists in any of the search paths.
var ErrConfigFileNotFound = errors.New("could not find config file in any config path")

// Config is the root of the example bot's configuration.
type Config struct {
	Discord Discord `koanf:"discord"`
	Logging Logging `koanf:"logging"`
}

// Discord holds connection settings.
type Discord struct {
	// Bot token used for the gateway and REST.
	Token string `koanf:"token"`
}

// Logging controls log output.
type Logging struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `koanf:"level"`
	// Development switches to the human-readable console encoder.
	Development bool `koanf:"development"`
}

// Load reads the first config file found among the given paths.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	loaded := false

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}

		loaded = true

		break
	}

	if !loaded {
		return nil, ErrConfigFileNotFound
	}

	cfg := Config{
		Logging: Logging{Level: "info"},
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Discord.Token == "" {
		return nil, errors.New("config is missing discord.token")
	}

	return &cfg, nil
}
