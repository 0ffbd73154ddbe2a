// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/page/layout.go
// Summary: Stacks sections vertically and places their content in cells.
// Notes: Layout writes bounds only; styles belong to the animation core.

package page

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpage/internal/dom"
)

const (
	sectionPad   = 2
	contentInset = 2
	blockGap     = 1
	panelGap     = 2
	imageRows    = 6
	minContent   = 10
)

// heightFunc reports the height a pinned section must take for vp.
type heightFunc func(n *sectionNodes, vp dom.Viewport) (float64, bool)

// layout positions every element for vp. pinned supplies the height of
// sections that own a pin controller.
func (t *tree) layout(vp dom.Viewport, pinned heightFunc) {
	t.doc.SetViewport(vp)
	contentW := math.Max(minContent, vp.W-2*contentInset)
	cols := int(contentW)

	y := 0.0
	for _, n := range t.sections {
		start := y
		y += sectionPad
		x := float64(contentInset)

		if n.heading != nil {
			h := t.placeText(n.heading, n.words, x, y, cols)
			y += h + blockGap
		}
		for _, b := range n.blocks {
			y += t.placeBlock(b, x, y, cols) + blockGap
		}

		switch n.spec.Kind {
		case KindHorizontal:
			y += placeTrack(n, x, y, vp, contentW)
		case KindTestimonials:
			y += placeCarousel(n, x, y, contentW)
		}

		h := math.Max(y-start, n.spec.MinHeight)
		if ph, ok := pinned(n, vp); ok {
			h = ph
		}
		n.el.SetBounds(dom.Rect{X: 0, Y: start, W: vp.W, H: h})
		y = start + h
	}

	t.layoutChrome(vp)
}

// placeText places el at (x, y); with words, each word gets its own box.
func (t *tree) placeText(el *dom.Element, words []*dom.Element, x, y float64, cols int) float64 {
	if len(words) == 0 {
		h := float64(LineCount(el.Text(), cols))
		el.SetBounds(dom.Rect{X: x, Y: y, W: float64(cols), H: h})
		return h
	}
	line, col := 0, 0
	for _, w := range words {
		ww := runewidth.StringWidth(w.Text())
		if ww > cols {
			ww = cols
		}
		if col > 0 && col+1+ww > cols {
			line++
			col = 0
		}
		if col > 0 {
			col++
		}
		w.SetBounds(dom.Rect{X: x + float64(col), Y: y + float64(line), W: float64(ww), H: 1})
		col += ww
	}
	h := float64(line + 1)
	el.SetBounds(dom.Rect{X: x, Y: y, W: float64(cols), H: h})
	return h
}

func (t *tree) placeBlock(b blockNodes, x, y float64, cols int) float64 {
	switch b.spec.Kind {
	case BlockImage:
		h := b.spec.Height
		if h <= 0 {
			h = imageRows
		}
		b.el.SetBounds(dom.Rect{X: x, Y: y, W: float64(cols), H: h})
		return h
	case BlockCounter:
		target, _ := b.el.Attr("data-target")
		w := math.Max(float64(runewidth.StringWidth(b.el.Text())), float64(runewidth.StringWidth(target+b.spec.Suffix)))
		b.el.SetBounds(dom.Rect{X: x, Y: y, W: w, H: 1})
		return 1
	}
	h := t.placeText(b.el, b.words, x, y, cols)
	if b.spec.Height > h {
		h = b.spec.Height
		bb := b.el.Bounds()
		bb.H = h
		b.el.SetBounds(bb)
	}
	return h
}

func cardWidth(s *Section, contentW, fallback float64) float64 {
	w := s.CardWidth
	if w <= 0 {
		w = fallback
	}
	return math.Max(8, math.Min(w, contentW))
}

func cardHeight(bodies []string, w float64) float64 {
	lines := 1
	for _, b := range bodies {
		if n := LineCount(b, int(w)-4); n > lines {
			lines = n
		}
	}
	// border, title, gap, body, author, border
	return float64(lines + 5)
}

// placeTrack lays panels side by side; the track is as wide as the
// viewport and scrolls its content width.
func placeTrack(n *sectionNodes, x, y float64, vp dom.Viewport, contentW float64) float64 {
	w := cardWidth(n.spec, contentW, math.Max(24, contentW*0.6))
	bodies := make([]string, len(n.panels))
	for i, p := range n.panels {
		bodies[i] = p.Text()
	}
	h := cardHeight(bodies, w)
	for i, p := range n.panels {
		p.SetBounds(dom.Rect{X: x + float64(i)*(w+panelGap), Y: y, W: w, H: h})
	}
	n.track.SetBounds(dom.Rect{X: 0, Y: y, W: vp.W, H: h})
	n.track.SetScrollWidth(x + float64(len(n.panels))*(w+panelGap))
	return h + blockGap
}

// placeCarousel stacks every card in the centre slot; roles move them.
func placeCarousel(n *sectionNodes, x, y, contentW float64) float64 {
	w := cardWidth(n.spec, contentW, math.Max(20, contentW/3))
	bodies := make([]string, len(n.cards))
	for i, c := range n.cards {
		bodies[i] = c.Text()
	}
	h := cardHeight(bodies, w)
	cx := x + (contentW-w)/2
	n.region.SetBounds(dom.Rect{X: x, Y: y, W: contentW, H: h})
	for _, c := range n.cards {
		c.SetBounds(dom.Rect{X: cx, Y: y, W: w, H: h})
	}

	dotsY := y + h + blockGap
	span := float64(2*len(n.dots) - 1)
	dx := x + (contentW-span)/2
	for i, d := range n.dots {
		d.SetBounds(dom.Rect{X: dx + float64(2*i), Y: dotsY, W: 1, H: 1})
	}
	if len(n.dots) > 0 {
		n.dots[0].Parent().SetBounds(dom.Rect{X: dx, Y: dotsY, W: span, H: 1})
	}
	return h + 2*blockGap + 1
}

// layoutChrome places the fixed elements in viewport coordinates.
func (t *tree) layoutChrome(vp dom.Viewport) {
	t.navbar.SetBounds(dom.Rect{X: 0, Y: 0, W: vp.W, H: 1})
	x := 1.0
	bw := float64(runewidth.StringWidth(t.brand.Text()))
	t.brand.SetBounds(dom.Rect{X: x, Y: 0, W: bw, H: 1})
	x += bw + 3
	for _, l := range t.navLinks {
		w := float64(runewidth.StringWidth(l.Text()))
		l.SetBounds(dom.Rect{X: x, Y: 0, W: w, H: 1})
		x += w + 2
	}
	t.progress.SetBounds(dom.Rect{X: 0, Y: 1, W: vp.W, H: 1})

	bw = float64(runewidth.StringWidth(t.backToTop.Text()))
	t.backToTop.SetBounds(dom.Rect{X: math.Max(0, vp.W-bw-2), Y: math.Max(0, vp.H-2), W: bw, H: 1})

	tw := math.Min(44, math.Max(0, vp.W-4))
	ty := math.Max(0, vp.H-5)
	t.toastBox.SetBounds(dom.Rect{X: 2, Y: ty, W: tw, H: 3})
	t.toastText.SetBounds(dom.Rect{X: 4, Y: ty + 1, W: math.Max(0, tw-6), H: 1})
	t.toastX.SetBounds(dom.Rect{X: 2 + tw - 2, Y: ty, W: 1, H: 1})
}

// pinHeights adapts the pin bindings into a heightFunc.
func pinHeights(pins []pinBinding) heightFunc {
	return func(n *sectionNodes, vp dom.Viewport) (float64, bool) {
		for _, pb := range pins {
			if pb.nodes == n {
				return pb.c.Height(vp), true
			}
		}
		return 0, false
	}
}
