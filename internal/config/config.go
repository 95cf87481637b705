// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package config loads server configuration. Precedence, lowest to
// highest: flag defaults, YAML config file, explicitly set flags.
// Secrets come only from the environment and never from the file.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Environment variable names for secrets.
const (
	EnvDatabaseURL    = "DATABASE_URL"
	EnvJWTSecret      = "TASKNEST_JWT_SECRET"
	EnvPasswordPepper = "TASKNEST_PASSWORD_PEPPER"
)

// Config is the resolved server configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`

	// Secrets, environment-only.
	DatabaseURL    string `koanf:"-"`
	JWTSecret      string `koanf:"-"`
	PasswordPepper string `koanf:"-"`
}

// ServerConfig holds the listen addresses.
type ServerConfig struct {
	Addr              string `koanf:"addr"`
	ObservabilityAddr string `koanf:"observability_addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// RegisterFlags declares the config flags with their defaults on fs.
// Flag names use dots matching the koanf key paths.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("server.addr", ":8080", "API listen address")
	fs.String("server.observability_addr", "127.0.0.1:9100", "metrics and health probe listen address")
	fs.String("log.format", "json", "log format (json or text)")
	fs.String("log.level", "info", "log level (debug, info, warn, error)")
}

// Load resolves the configuration. path may be empty, in which case no
// config file is read. flags must have been registered with RegisterFlags
// and parsed.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_INVALID").
				With("path", path).
				With("operation", "load config file").
				Wrap(err)
		}
	}

	// Explicitly set flags win over the file; flag defaults fill the rest.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Code("CONFIG_INVALID").
			With("operation", "load flags").
			Wrap(err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").
			With("operation", "unmarshal config").
			Wrap(err)
	}

	cfg.DatabaseURL = os.Getenv(EnvDatabaseURL)
	cfg.JWTSecret = os.Getenv(EnvJWTSecret)
	cfg.PasswordPepper = os.Getenv(EnvPasswordPepper)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required setting is present.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("server.addr must not be empty")
	}
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("%s must be set", EnvDatabaseURL)
	}
	if c.JWTSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("%s must be set", EnvJWTSecret)
	}
	if c.PasswordPepper == "" {
		return oops.Code("CONFIG_INVALID").Errorf("%s must be set", EnvPasswordPepper)
	}
	switch c.Log.Format {
	case "", "json", "text":
	default:
		return oops.Code("CONFIG_INVALID").Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
