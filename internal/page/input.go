// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/page/input.go
// Summary: Pointer and keyboard semantics of a site, in viewport cells.
// Usage: Called on the loop goroutine, usually from a task handed to Loop.Post.

package page

import (
	"strings"

	"github.com/framegrace/texelpage/internal/carousel"
	"github.com/framegrace/texelpage/internal/dom"
)

// Wheel scrolls by lines of LineStep units each; negative goes up.
func (s *Site) Wheel(lines float64) {
	s.scroller.AddWheel(lines * s.set.LineStep)
}

// Touch feeds a drag distance through the touch multiplier.
func (s *Site) Touch(delta float64) {
	s.scroller.AddTouch(delta)
}

// PageBy scrolls by fraction of a viewport.
func (s *Site) PageBy(fraction float64) {
	vp := s.Viewport()
	s.scroller.ScrollTo(s.scroller.State().Raw+fraction*vp.H, false)
}

// Home scrolls to the top.
func (s *Site) Home() { s.scroller.ScrollTo(0, false) }

// End scrolls to the bottom.
func (s *Site) End() { s.scroller.ScrollTo(s.scroller.Limit(), false) }

// Key routes arrow keys to every carousel currently on screen.
func (s *Site) Key(k carousel.Key) bool {
	handled := false
	for _, cb := range s.carousels {
		if cb.c.Key(k, s.Position(), s.Viewport()) {
			handled = true
		}
	}
	return handled
}

// PointerMove updates hover state and parallax targets.
func (s *Site) PointerMove(x, y float64) {
	pos := s.Position()
	s.parallax.PointerMove(x, y, pos)
	if r := s.heroRegion(); r != nil && !r.ViewportRect(pos).Contains(x, y) {
		s.parallax.PointerLeave()
	}
	for _, cb := range s.carousels {
		if cb.nodes.region.ScreenRect(pos).Contains(x, y) {
			cb.c.PointerEnter()
		} else {
			cb.c.PointerLeave()
		}
	}
}

// PointerLeave is the pointer leaving the screen.
func (s *Site) PointerLeave() {
	s.parallax.PointerLeave()
	for _, cb := range s.carousels {
		cb.c.PointerLeave()
	}
}

// Click activates whatever sits under (x, y); it reports whether anything did.
func (s *Site) Click(x, y float64) bool {
	pos := s.Position()
	if s.toast.Visible() && fixedHit(s.t.toastX, x, y) {
		s.toast.Close()
		return true
	}
	if s.t.backToTop.HasClass(ClassVisible) && fixedHit(s.t.backToTop, x, y) {
		s.Home()
		return true
	}
	for _, l := range s.t.navLinks {
		if !fixedHit(l, x, y) {
			continue
		}
		href, _ := l.Attr("href")
		if top, ok := s.SectionTop(strings.TrimPrefix(href, "#")); ok {
			s.scroller.ScrollTo(top, false)
			return true
		}
	}
	if fixedHit(s.t.navbar, x, y) {
		return false
	}
	for _, cb := range s.carousels {
		for i, d := range cb.nodes.dots {
			if d.ScreenRect(pos).Contains(x, y) {
				cb.c.GoTo(i)
				return true
			}
		}
		if i, ok := cb.c.CardAt(x, y, pos); ok {
			return cb.c.Click(i)
		}
	}
	return false
}

// Drag ends a horizontal drag that started at startX on row y.
func (s *Site) Drag(startX, endX, y float64) bool {
	pos := s.Position()
	for _, cb := range s.carousels {
		r := cb.nodes.region.ScreenRect(pos)
		if y >= r.Top() && y < r.Bottom() {
			return cb.c.Swipe(startX, endX)
		}
	}
	return false
}

func fixedHit(el *dom.Element, x, y float64) bool {
	return el.Attached() && el.ScreenRect(0).Contains(x, y)
}
