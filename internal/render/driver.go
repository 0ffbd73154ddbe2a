// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/render/driver.go
// Summary: Narrow screen interface the renderer draws through.
// Usage: NewDriver wraps a real or simulation tcell.Screen.

package render

import "github.com/gdamore/tcell/v2"

// Screen is the part of tcell.Screen the page needs.
type Screen interface {
	Init() error
	Fini()
	Size() (int, int)
	Clear()
	SetStyle(style tcell.Style)
	HideCursor()
	EnableMouse(flags ...tcell.MouseFlags)
	Show()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	GetContent(x, y int) (rune, []rune, tcell.Style, int)
}

// Driver adapts a tcell.Screen to Screen.
type Driver struct {
	screen tcell.Screen
}

// NewDriver wraps the provided screen.
func NewDriver(screen tcell.Screen) *Driver {
	return &Driver{screen: screen}
}

func (d *Driver) Init() error { return d.screen.Init() }

func (d *Driver) Fini() { d.screen.Fini() }

func (d *Driver) Size() (int, int) { return d.screen.Size() }

func (d *Driver) Clear() { d.screen.Clear() }

func (d *Driver) SetStyle(style tcell.Style) { d.screen.SetStyle(style) }

func (d *Driver) HideCursor() { d.screen.HideCursor() }

func (d *Driver) EnableMouse(flags ...tcell.MouseFlags) { d.screen.EnableMouse(flags...) }

func (d *Driver) Show() { d.screen.Show() }

func (d *Driver) PollEvent() tcell.Event { return d.screen.PollEvent() }

func (d *Driver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.screen.SetContent(x, y, mainc, combc, style)
}

func (d *Driver) GetContent(x, y int) (rune, []rune, tcell.Style, int) {
	return d.screen.GetContent(x, y)
}

// Underlying exposes the wrapped tcell.Screen.
func (d *Driver) Underlying() tcell.Screen {
	return d.screen
}
