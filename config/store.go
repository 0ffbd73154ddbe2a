// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and first-run logic for the config store.

package config

import "go.uber.org/zap"

func loadSystemLocked() error {
	path, err := SystemPath()
	if err != nil {
		logger.Warn("Config: Failed to resolve system config path", zap.Error(err))
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		logger.Warn("Config: Failed to read system config", zap.String("path", path), zap.Error(readErr))
		cfg = make(Config)
	}

	// A missing or emptied file is (re)seeded from the embedded defaults.
	seed := !exists || (readErr == nil && len(cfg) == 0)
	if seed {
		if def := defaultSystemConfig(); def != nil {
			cfg = def
		} else {
			cfg = make(Config)
		}
	}
	applySystemDefaults(cfg)
	if seed {
		if err := writeConfig(path, cfg); err != nil {
			logger.Warn("Config: Failed to write default system config", zap.Error(err))
			if readErr == nil {
				readErr = err
			}
		}
	}

	system = cfg
	if readErr == nil && exists {
		logger.Info("Config: Loaded system config", zap.String("path", path))
	}
	return readErr
}
