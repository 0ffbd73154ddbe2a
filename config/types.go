// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.

package config

import (
	"encoding/json"
	"strconv"
	"time"
)

// Section returns the named section or nil if missing. The empty name is
// the top level.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	return asSection(c[sectionName])
}

func asSection(raw interface{}) Section {
	switch v := raw.(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills missing keys of a section, creating it if needed.
// Keys already present are left alone.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	target := c.Section(sectionName)
	if target == nil {
		target = make(Section, len(defaults))
		c[sectionName] = target
	}
	for key, value := range defaults {
		if _, ok := target[key]; !ok {
			target[key] = value
		}
	}
}

func (c Config) lookup(sectionName, key string) (interface{}, bool) {
	v, ok := c.Section(sectionName)[key]
	return v, ok
}

// number coerces JSON-ish scalars, including numeric strings.
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// GetString returns a string value or defaultValue.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	if v, ok := c.lookup(sectionName, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetFloat returns a numeric value or defaultValue.
func (c Config) GetFloat(sectionName, key string, defaultValue float64) float64 {
	if v, ok := c.lookup(sectionName, key); ok {
		if f, ok := number(v); ok {
			return f
		}
	}
	return defaultValue
}

// GetInt truncates a numeric value, or returns defaultValue.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	if v, ok := c.lookup(sectionName, key); ok {
		if f, ok := number(v); ok {
			return int(f)
		}
	}
	return defaultValue
}

// GetBool accepts booleans, "true"/"false" strings and numbers (non-zero is true).
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	v, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if s, ok := v.(string); ok {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return defaultValue
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	return defaultValue
}

// GetDuration reads a millisecond count as a duration.
func (c Config) GetDuration(sectionName, key string, defaultValue time.Duration) time.Duration {
	ms := c.GetFloat(sectionName, key, float64(defaultValue)/float64(time.Millisecond))
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Sub returns a nested object stored under key in a section, or nil.
func (c Config) Sub(sectionName, key string) Section {
	v, _ := c.lookup(sectionName, key)
	return asSection(v)
}

// Clone returns a copy of the config. Nested objects are copied; slices are shared.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	return Config(cloneMap(cfg))
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case Section:
			out[k] = Section(cloneMap(val))
		case map[string]interface{}:
			out[k] = Section(cloneMap(val))
		default:
			out[k] = v
		}
	}
	return out
}
