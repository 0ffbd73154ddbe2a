// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for texelpage.json sections.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"page": "",
	})
	cfg.RegisterDefaults("scroll", Section{
		"rate":             6.0,
		"wheel_multiplier": 1.0,
		"touch_multiplier": 2.0,
		"line_step":        3.0,
		"smooth":           true,
	})
	cfg.RegisterDefaults("render", Section{
		"fps": 60,
	})
	cfg.RegisterDefaults("pin", Section{
		"margin":   10.0,
		"scrub_ms": 800,
	})
	cfg.RegisterDefaults("carousel", Section{
		"interval_ms":     5000,
		"swipe_threshold": 5.0,
	})
	cfg.RegisterDefaults("resize", Section{
		"debounce_ms": 100,
	})
	cfg.RegisterDefaults("toast", Section{
		"first_delay_ms": 5000,
		"interval_ms":    12000,
		"visible_ms":     5000,
	})
	cfg.RegisterDefaults("parallax", Section{
		"enabled":   true,
		"frequency": 6.0,
		"damping":   1.0,
	})
	cfg.RegisterDefaults("indicator", Section{
		"navbar_threshold":      2.0,
		"back_to_top_threshold": 20.0,
		"counter_start":         "top bottom-=3",
		"counter_ms":            2000,
	})
	cfg.RegisterDefaults("effects", Section{
		"presets": defaultPresetOverrides(),
	})
}

func defaultPresetOverrides() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "reveal", "start": "top 85%", "duration_ms": 800, "ease": "power3.out"},
		{"id": "image-reveal", "start": "top 80%", "duration_ms": 1200, "ease": "power3.inout"},
		{"id": "text-reveal", "start": "top 85%", "duration_ms": 800, "stagger_ms": 400},
		{"id": "float", "duration_ms": 4000, "ease": "sine.inout"},
	}
}
