// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/render/input.go
// Summary: Translates tcell events into site actions.
// Usage: Handle runs on the loop goroutine; Run posts each polled event to it.

package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpage/internal/carousel"
	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/page"
)

// DragThreshold is how many columns a press must travel to count as a drag.
const DragThreshold = 1

// Input holds pointer state between mouse events.
type Input struct {
	site     *page.Site
	quit     func()
	onMotion func(reduced bool)

	pressed      bool
	pressX       int
	pressY       int
	lastButtons  tcell.ButtonMask
	insideScreen bool
}

// NewInput routes events to site; quit is called for q, Esc and Ctrl-C.
func NewInput(site *page.Site, quit func()) *Input {
	return &Input{site: site, quit: quit}
}

// OnReducedMotion registers a callback for the 'm' toggle.
func (in *Input) OnReducedMotion(fn func(reduced bool)) {
	in.onMotion = fn
}

// Handle applies one event.
func (in *Input) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in.key(ev)
	case *tcell.EventMouse:
		in.mouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		in.site.Resize(dom.Viewport{W: float64(w), H: float64(h)})
	case *tcell.EventFocus:
		if !ev.Focused {
			in.Leave()
		}
	}
}

func (in *Input) key(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		in.quit()
	case tcell.KeyUp:
		in.site.Wheel(-1)
	case tcell.KeyDown:
		in.site.Wheel(1)
	case tcell.KeyPgUp:
		in.site.PageBy(-0.9)
	case tcell.KeyPgDn:
		in.site.PageBy(0.9)
	case tcell.KeyHome:
		in.site.Home()
	case tcell.KeyEnd:
		in.site.End()
	case tcell.KeyLeft:
		in.site.Key(carousel.KeyLeft)
	case tcell.KeyRight:
		in.site.Key(carousel.KeyRight)
	case tcell.KeyRune:
		in.rune(ev.Rune())
	}
}

func (in *Input) rune(r rune) {
	switch r {
	case 'q':
		in.quit()
	case 'k':
		in.site.Wheel(-1)
	case 'j':
		in.site.Wheel(1)
	case ' ':
		in.site.PageBy(0.9)
	case 'g':
		in.site.Home()
	case 'G':
		in.site.End()
	case 'h':
		in.site.Key(carousel.KeyLeft)
	case 'l':
		in.site.Key(carousel.KeyRight)
	case 'm':
		on := !in.site.ReducedMotion()
		in.site.SetReducedMotion(on)
		if in.onMotion != nil {
			in.onMotion(on)
		}
	}
}

func (in *Input) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	defer func() { in.lastButtons = buttons }()

	if buttons&tcell.WheelUp != 0 {
		in.site.Wheel(-1)
		return
	}
	if buttons&tcell.WheelDown != 0 {
		in.site.Wheel(1)
		return
	}

	in.site.PointerMove(float64(x), float64(y))
	in.insideScreen = true

	down := buttons&tcell.Button1 != 0
	wasDown := in.lastButtons&tcell.Button1 != 0
	switch {
	case down && !wasDown:
		in.pressed, in.pressX, in.pressY = true, x, y
	case !down && wasDown && in.pressed:
		in.pressed = false
		if int(math.Abs(float64(x-in.pressX))) > DragThreshold {
			in.site.Drag(float64(in.pressX), float64(x), float64(in.pressY))
			return
		}
		in.site.Click(float64(in.pressX), float64(in.pressY))
	}
}

// Leave reports the pointer leaving the terminal, for example on focus loss.
func (in *Input) Leave() {
	if !in.insideScreen {
		return
	}
	in.insideScreen = false
	in.pressed = false
	in.site.PointerLeave()
}
