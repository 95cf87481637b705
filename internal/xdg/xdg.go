// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package xdg provides XDG Base Directory paths for TaskNest.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "tasknest"

// ConfigDir returns the XDG config directory for tasknest.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// ConfigFile returns the default config file path, or "" when no config
// file exists there.
func ConfigFile() string {
	path := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
