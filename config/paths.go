// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelpage configuration.
// Notes: TEXELPAGE_CONFIG_DIR replaces the whole root when set.

package config

import (
	"os"
	"path/filepath"
)

// Root returns the directory holding texelpage.json and prefs.db.
func Root() (string, error) {
	if e, err := ParseEnv(); err == nil && e.ConfigDir != "" {
		return e.ConfigDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// SystemPath is the location of texelpage.json.
func SystemPath() (string, error) {
	return join(systemConfigName)
}

// PrefsPath is the location of the preference database.
func PrefsPath() (string, error) {
	return join("prefs.db")
}

// LogPath is the default log file.
func LogPath() (string, error) {
	return join(appName + ".log")
}

func join(name string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}
