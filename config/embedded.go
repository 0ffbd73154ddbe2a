// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parsed copy of the embedded texelpage.json.
// The file in defaults/ is the single source of truth for first-run values.

package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/defaults"
)

var embeddedSystemDefaults = sync.OnceValues(func() (Config, error) {
	data, err := defaults.SystemConfig()
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
})

// defaultSystemConfig returns a private copy of the embedded defaults, or nil
// if they failed to parse.
func defaultSystemConfig() Config {
	cfg, err := embeddedSystemDefaults()
	if err != nil {
		logger.Warn("Config: embedded defaults unusable", zap.Error(err))
		return nil
	}
	return Clone(cfg)
}
