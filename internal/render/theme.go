// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/render/theme.go
// Summary: Named palettes and opacity blending in Lab space.

package render

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelpage/config"
)

// Palette colours one page.
type Palette struct {
	Name       string
	Background colorful.Color
	Text       colorful.Color
	Muted      colorful.Color
	Accent     colorful.Color
	Surface    colorful.Color
	Border     colorful.Color
}

var palettes = map[string]Palette{
	"dark": {
		Name:       "dark",
		Background: mustHex("#11111b"),
		Text:       mustHex("#cdd6f4"),
		Muted:      mustHex("#7f849c"),
		Accent:     mustHex("#f5a97f"),
		Surface:    mustHex("#1e1e2e"),
		Border:     mustHex("#45475a"),
	},
	"light": {
		Name:       "light",
		Background: mustHex("#eff1f5"),
		Text:       mustHex("#4c4f69"),
		Muted:      mustHex("#8c8fa1"),
		Accent:     mustHex("#d20f39"),
		Surface:    mustHex("#e6e9ef"),
		Border:     mustHex("#bcc0cc"),
	},
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("render: bad palette colour %q: %v", s, err))
	}
	return c
}

// PaletteByName falls back to dark for unknown names.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[name]
	if !ok {
		return palettes["dark"], false
	}
	return p, true
}

// PaletteNames lists the known palettes, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ForConfig returns the named palette with hex overrides from the "theme"
// section of cfg applied, for example {"theme": {"accent": "#ff8800"}}.
func ForConfig(name string, cfg config.Config) (Palette, error) {
	p, _ := PaletteByName(name)
	over := cfg.Section("theme")
	if len(over) == 0 {
		return p, nil
	}
	slots := map[string]*colorful.Color{
		"background": &p.Background,
		"text":       &p.Text,
		"muted":      &p.Muted,
		"accent":     &p.Accent,
		"surface":    &p.Surface,
		"border":     &p.Border,
	}
	keys := make([]string, 0, len(over))
	for k := range over {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		slot, ok := slots[k]
		if !ok {
			return p, fmt.Errorf("theme: unknown colour %q", k)
		}
		hex, ok := over[k].(string)
		if !ok {
			return p, fmt.Errorf("theme: %s must be a hex string", k)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return p, fmt.Errorf("theme: %s: %w", k, err)
		}
		*slot = c
	}
	return p, nil
}

// fade mixes c toward the background as opacity drops.
func (p Palette) fade(c colorful.Color, opacity float64) tcell.Color {
	if opacity >= 1 {
		return toTcell(c)
	}
	if opacity < 0 {
		opacity = 0
	}
	return toTcell(p.Background.BlendLab(c, opacity).Clamped())
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
