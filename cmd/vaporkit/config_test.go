// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaporkit/vaporkit/pkg/errutil"
	"github.com/vaporkit/vaporkit/webapi"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := NewRootCmd().PersistentFlags()
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(testFlags(t))
	require.NoError(t, err)

	assert.Equal(t, webapi.DefaultBaseURL, cfg.APIURL)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api-url: https://example.test\nlog-level: debug\ndevice-name: test-rig\n",
	), 0o600))

	cfg, err := LoadConfig(testFlags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, "https://example.test", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "test-rig", cfg.DeviceName)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: debug\n"), 0o600))

	cfg, err := LoadConfig(testFlags(t, "--config", path, "--log-level", "error"))
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(testFlags(t, "--config", "/does/not/exist.yaml"))
	errutil.AssertErrorCode(t, err, "CONFIG_LOAD_FAILED")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty api url", mutate: func(c *Config) { c.APIURL = "" }},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")
		})
	}
}
