// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/page/settings.go
// Summary: Typed view of texelpage.json consumed by the site builder.

package page

import (
	"fmt"
	"time"

	"github.com/framegrace/texelpage/config"
	"github.com/framegrace/texelpage/internal/carousel"
	"github.com/framegrace/texelpage/internal/effects"
	"github.com/framegrace/texelpage/internal/loop"
	"github.com/framegrace/texelpage/internal/scroll"
	"github.com/framegrace/texelpage/internal/toast"
)

// Settings tunes every component of a site.
type Settings struct {
	Scroll   scroll.Options
	LineStep float64
	FPS      int

	PinMargin float64
	PinScrub  time.Duration

	Carousel carousel.Options
	Toast    toast.Options

	ResizeDebounce time.Duration

	Parallax          bool
	ParallaxFrequency float64
	ParallaxDamping   float64

	NavbarThreshold    float64
	BackToTopThreshold float64
	CounterStart       string
	CounterDuration    time.Duration

	// Presets holds per-preset overrides keyed by preset id.
	Presets map[string]effects.EffectConfig

	ReducedMotion bool
}

// DefaultSettings matches the embedded texelpage.json.
func DefaultSettings() Settings {
	return Settings{
		Scroll:             scroll.DefaultOptions(),
		LineStep:           3,
		FPS:                loop.DefaultFPS,
		PinMargin:          10,
		PinScrub:           800 * time.Millisecond,
		Carousel:           carousel.Options{Interval: carousel.DefaultInterval, SwipeThreshold: 5},
		Toast:              toast.DefaultOptions(),
		ResizeDebounce:     100 * time.Millisecond,
		Parallax:           true,
		ParallaxFrequency:  6,
		ParallaxDamping:    1,
		NavbarThreshold:    2,
		BackToTopThreshold: 20,
		CounterStart:       "top bottom-=3",
		CounterDuration:    2 * time.Second,
		Presets:            map[string]effects.EffectConfig{},
	}
}

// SettingsFrom reads cfg on top of DefaultSettings.
func SettingsFrom(cfg config.Config) (Settings, error) {
	s := DefaultSettings()
	if cfg == nil {
		return s, nil
	}

	s.Scroll.Rate = cfg.GetFloat("scroll", "rate", s.Scroll.Rate)
	s.Scroll.WheelMultiplier = cfg.GetFloat("scroll", "wheel_multiplier", s.Scroll.WheelMultiplier)
	s.Scroll.TouchMultiplier = cfg.GetFloat("scroll", "touch_multiplier", s.Scroll.TouchMultiplier)
	s.Scroll.Smooth = cfg.GetBool("scroll", "smooth", s.Scroll.Smooth)
	s.LineStep = cfg.GetFloat("scroll", "line_step", s.LineStep)
	s.FPS = cfg.GetInt("render", "fps", s.FPS)

	s.PinMargin = cfg.GetFloat("pin", "margin", s.PinMargin)
	s.PinScrub = cfg.GetDuration("pin", "scrub_ms", s.PinScrub)

	s.Carousel.Interval = cfg.GetDuration("carousel", "interval_ms", s.Carousel.Interval)
	s.Carousel.SwipeThreshold = cfg.GetFloat("carousel", "swipe_threshold", s.Carousel.SwipeThreshold)

	s.Toast.FirstDelay = cfg.GetDuration("toast", "first_delay_ms", s.Toast.FirstDelay)
	s.Toast.Interval = cfg.GetDuration("toast", "interval_ms", s.Toast.Interval)
	s.Toast.Visible = cfg.GetDuration("toast", "visible_ms", s.Toast.Visible)

	s.ResizeDebounce = cfg.GetDuration("resize", "debounce_ms", s.ResizeDebounce)

	s.Parallax = cfg.GetBool("parallax", "enabled", s.Parallax)
	s.ParallaxFrequency = cfg.GetFloat("parallax", "frequency", s.ParallaxFrequency)
	s.ParallaxDamping = cfg.GetFloat("parallax", "damping", s.ParallaxDamping)

	s.NavbarThreshold = cfg.GetFloat("indicator", "navbar_threshold", s.NavbarThreshold)
	s.BackToTopThreshold = cfg.GetFloat("indicator", "back_to_top_threshold", s.BackToTopThreshold)
	s.CounterStart = cfg.GetString("indicator", "counter_start", s.CounterStart)
	s.CounterDuration = cfg.GetDuration("indicator", "counter_ms", s.CounterDuration)

	specs, err := effects.ParsePresetSpecs(cfg.Section("effects")["presets"])
	if err != nil {
		return s, fmt.Errorf("effects.presets: %w", err)
	}
	for _, spec := range specs {
		if _, err := effects.BuildPreset(spec); err != nil {
			return s, err
		}
		s.Presets[spec.ID] = s.Presets[spec.ID].Merge(spec.Config)
	}
	return s, nil
}

// Preset resolves id with the configured overrides plus extra on top.
func (s Settings) Preset(id string, extra effects.EffectConfig) (effects.Preset, error) {
	cfg := s.Presets[id].Merge(extra)
	return effects.BuildPreset(effects.PresetSpec{ID: id, Config: cfg})
}
