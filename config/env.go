// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/env.go
// Summary: Environment overrides read before the JSON store.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings that come from the process environment.
type Env struct {
	ConfigDir     string `env:"TEXELPAGE_CONFIG_DIR"`
	LogLevel      string `env:"TEXELPAGE_LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"TEXELPAGE_LOG_FILE"`
	ReducedMotion *bool  `env:"TEXELPAGE_REDUCED_MOTION"`
}

// ParseEnv loads Env from the environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
