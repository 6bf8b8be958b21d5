// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package main

import (
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/vaporkit/vaporkit/webapi"
)

// Config holds the CLI configuration, merged from defaults, an optional
// YAML file, and command-line flags, in increasing precedence.
type Config struct {
	APIURL        string `koanf:"api-url"`
	LogFormat     string `koanf:"log-format"`
	LogLevel      string `koanf:"log-level"`
	Persistent    bool   `koanf:"persistent"`
	DeviceName    string `koanf:"device-name"`
	WebsiteID     string `koanf:"website-id"`
	GuardDataFile string `koanf:"guard-data-file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL:    webapi.DefaultBaseURL,
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// LoadConfig merges configuration for the given flag set. The config file
// path is taken from the "config" flag when set.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	// Flags override file values, but only when actually set.
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("api-url must not be empty")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.LogFormat).
			Errorf("log-format must be json or text")
	}
	if _, err := c.slogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) slogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, oops.Code("CONFIG_INVALID").
			With("log_level", c.LogLevel).
			Errorf("log-level must be debug, info, warn or error")
	}
}
