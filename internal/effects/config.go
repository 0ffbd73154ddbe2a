// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/config.go
// Summary: Declarative animation presets parsed from page and theme configuration.
// Usage: The page builder resolves each element's preset and binds it to a trigger.
// Notes: Unknown keys are ignored; malformed values fall back to the preset default.

package effects

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type EffectConfig map[string]interface{}

// PresetSpec names a preset and carries its overrides.
type PresetSpec struct {
	ID     string
	Config EffectConfig
}

// Preset is a resolved animation ready to bind: the tween plus where it starts.
type Preset struct {
	ID    string
	Start string // trigger edge, e.g. "top 85%"
	End   string // empty means the range never closes going forward
	// Reverse plays the tween backward when the range is left.
	Reverse bool
	Spec    TweenSpec
}

// BuildPreset resolves spec through the preset registry.
func BuildPreset(spec PresetSpec) (Preset, error) {
	factory, ok := Lookup(spec.ID)
	if !ok {
		return Preset{}, fmt.Errorf("effects: unknown preset %q", spec.ID)
	}
	p, err := factory(spec.Config)
	if err != nil {
		return Preset{}, fmt.Errorf("effects: preset %q: %w", spec.ID, err)
	}
	p.ID = spec.ID
	return p, nil
}

// ParsePresetSpecs accepts a JSON string, a decoded list or a list of maps.
func ParsePresetSpecs(raw interface{}) ([]PresetSpec, error) {
	var entries []map[string]interface{}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		if err := json.Unmarshal([]byte(v), &entries); err != nil {
			return nil, err
		}
	case []interface{}:
		bytes, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(bytes, &entries); err != nil {
			return nil, err
		}
	case []map[string]interface{}:
		entries = v
	default:
		return nil, nil
	}
	specs := make([]PresetSpec, 0, len(entries))
	for _, entry := range entries {
		idVal, _ := entry["id"].(string)
		if idVal == "" {
			continue
		}
		cfg := make(EffectConfig)
		for k, v := range entry {
			if k == "id" {
				continue
			}
			cfg[k] = v
		}
		specs = append(specs, PresetSpec{ID: idVal, Config: cfg})
	}
	return specs, nil
}

// Merge returns a copy of base with override's keys on top.
func (c EffectConfig) Merge(override EffectConfig) EffectConfig {
	out := make(EffectConfig, len(c)+len(override))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func parseFloatOrDefault(cfg EffectConfig, key string, fallback float64) float64 {
	if cfg == nil {
		return fallback
	}
	if raw, ok := cfg[key]; ok {
		switch v := raw.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
	}
	return fallback
}

func parseDurationOrDefault(cfg EffectConfig, key string, fallbackMS int64) time.Duration {
	if cfg == nil {
		return time.Duration(fallbackMS) * time.Millisecond
	}
	if raw, ok := cfg[key]; ok {
		switch v := raw.(type) {
		case int:
			return time.Duration(v) * time.Millisecond
		case int64:
			return time.Duration(v) * time.Millisecond
		case float64:
			return time.Duration(v * float64(time.Millisecond))
		case string:
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				return time.Duration(parsed) * time.Millisecond
			}
		}
	}
	return time.Duration(fallbackMS) * time.Millisecond
}

func parseStringOrDefault(cfg EffectConfig, key, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if s, ok := cfg[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func parseIntOrDefault(cfg EffectConfig, key string, fallback int) int {
	return int(parseFloatOrDefault(cfg, key, float64(fallback)))
}

func parseEaseOrDefault(cfg EffectConfig, key string, fallback EasingFunc) (EasingFunc, error) {
	name := parseStringOrDefault(cfg, key, "")
	if name == "" {
		return fallback, nil
	}
	fn, ok := LookupEasing(name)
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}
