// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/registry.go
// Summary: Preset factory registry with the built-in page animations.
// Usage: BuildPreset looks factories up here; tests may register extra IDs.

package effects

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Factory constructs a preset given its configuration map.
type Factory func(EffectConfig) (Preset, error)

// Register associates a preset ID with a factory. It panics on duplicate IDs.
func Register(id string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic("effects: duplicate registration for " + id)
	}
	registry[id] = factory
}

// Lookup fetches a factory by ID.
func Lookup(id string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// RegisteredIDs returns the registered preset identifiers, sorted.
func RegisteredIDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func init() {
	// Fade up from below; stagger-N classes add N*100ms of delay at bind time.
	Register("reveal", func(cfg EffectConfig) (Preset, error) {
		ease, err := parseEaseOrDefault(cfg, "ease", PowerOut(3))
		if err != nil {
			return Preset{}, err
		}
		return Preset{
			Start:   parseStringOrDefault(cfg, "start", "top 85%"),
			End:     parseStringOrDefault(cfg, "end", ""),
			Reverse: true,
			Spec: TweenSpec{
				From:      Props{Opacity: 0, Y: parseFloatOrDefault(cfg, "distance", 2)},
				To:        Props{Opacity: 1},
				Mask:      PropOpacity | PropY,
				Duration:  parseDurationOrDefault(cfg, "duration_ms", 800),
				Delay:     parseDurationOrDefault(cfg, "delay_ms", 0),
				Ease:      ease,
				AutoAlpha: true,
			},
		}, nil
	})
	// Wipe in from the left by shrinking the right clip.
	Register("image-reveal", func(cfg EffectConfig) (Preset, error) {
		ease, err := parseEaseOrDefault(cfg, "ease", PowerInOut(3))
		if err != nil {
			return Preset{}, err
		}
		return Preset{
			Start:   parseStringOrDefault(cfg, "start", "top 80%"),
			End:     parseStringOrDefault(cfg, "end", ""),
			Reverse: true,
			Spec: TweenSpec{
				From:     Props{ClipRight: 1},
				To:       Props{ClipRight: 0},
				Mask:     PropClipRight,
				Duration: parseDurationOrDefault(cfg, "duration_ms", 1200),
				Ease:     ease,
			},
		}, nil
	})
	// Words rise into place one after another.
	Register("text-reveal", func(cfg EffectConfig) (Preset, error) {
		ease, err := parseEaseOrDefault(cfg, "ease", PowerOut(3))
		if err != nil {
			return Preset{}, err
		}
		return Preset{
			Start:   parseStringOrDefault(cfg, "start", "top 85%"),
			End:     parseStringOrDefault(cfg, "end", ""),
			Reverse: true,
			Spec: TweenSpec{
				From:     Props{Opacity: 0, Y: parseFloatOrDefault(cfg, "distance", 1)},
				To:       Props{Opacity: 1},
				Mask:     PropOpacity | PropY,
				Duration: parseDurationOrDefault(cfg, "duration_ms", 800),
				Stagger:  parseDurationOrDefault(cfg, "stagger_ms", 400),
				Ease:     ease,
			},
		}, nil
	})
	// Endless drift, started at bind time rather than by a trigger.
	Register("float", func(cfg EffectConfig) (Preset, error) {
		ease, err := parseEaseOrDefault(cfg, "ease", EaseInOutSine)
		if err != nil {
			return Preset{}, err
		}
		return Preset{
			Spec: TweenSpec{
				To: Props{
					X: parseFloatOrDefault(cfg, "dx", 2),
					Y: parseFloatOrDefault(cfg, "dy", -1),
				},
				Mask:     PropX | PropY,
				Duration: parseDurationOrDefault(cfg, "duration_ms", 4000),
				Ease:     ease,
				Repeat:   parseIntOrDefault(cfg, "repeat", -1),
				Yoyo:     true,
			},
		}, nil
	})
}
