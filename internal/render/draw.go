// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/render/draw.go
// Summary: Paints a document onto a Screen at a scroll position.
// Usage: Called from a loop frame hook; reads the document, never writes it.
// Notes: Opacity multiplies down the tree and is rendered by fading colours
// toward the background; ClipRight hides columns from the right edge.

package render

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/page"
)

// Renderer draws documents with one palette.
type Renderer struct {
	screen  Screen
	palette Palette
	w, h    int
}

// NewRenderer binds a screen and palette.
func NewRenderer(screen Screen, p Palette) *Renderer {
	return &Renderer{screen: screen, palette: p}
}

// SetPalette switches colours from the next Draw.
func (r *Renderer) SetPalette(p Palette) { r.palette = p }

// box is the resolved on-screen geometry of one element.
type box struct {
	rect    dom.Rect
	maxX    float64 // exclusive right edge after ClipRight
	opacity float64
}

// Draw paints doc at scroll position pos. Elements classed "fixed" (and
// their children) ignore the scroll position.
func (r *Renderer) Draw(doc *dom.Document, pos float64) {
	r.w, r.h = r.screen.Size()
	base := tcell.StyleDefault.Background(toTcell(r.palette.Background)).Foreground(toTcell(r.palette.Text))
	r.screen.SetStyle(base)
	r.screen.Clear()

	var visit func(el *dom.Element, opacity float64, fixed bool)
	visit = func(el *dom.Element, opacity float64, fixed bool) {
		st := el.Style()
		if st.Hidden || !shown(el) {
			return
		}
		op := opacity * st.Opacity
		if op <= 0 {
			return
		}
		fixed = fixed || el.HasClass(page.ClassFixed)
		at := pos
		if fixed {
			at = 0
		}
		rect := el.ScreenRect(at)
		b := box{rect: rect, maxX: rect.X + rect.W*(1-clamp01(st.ClipRight)), opacity: op}
		r.drawElement(el, b)
		for _, c := range el.Children() {
			visit(c, op, fixed)
		}
	}
	for _, c := range doc.Root().Children() {
		visit(c, 1, false)
	}
}

// shown applies the class-driven visibility of chrome elements.
func shown(el *dom.Element) bool {
	switch {
	case el.HasClass("back-to-top"):
		return el.HasClass(page.ClassVisible)
	case el.HasClass("toast"):
		return el.HasClass("show")
	}
	return true
}

func (r *Renderer) drawElement(el *dom.Element, b box) {
	p := r.palette
	switch {
	case el.HasClass("progress-bar"):
		st := tcell.StyleDefault.Background(toTcell(p.Background)).Foreground(p.fade(p.Accent, b.opacity))
		for x := b.rect.X; x < b.maxX; x++ {
			r.put(x, b.rect.Y, '▀', st, b.maxX)
		}
	case el.HasClass("navbar"):
		if el.HasClass(page.ClassScrolled) {
			r.fill(b, ' ', tcell.StyleDefault.Background(toTcell(p.Surface)))
		}
	case el.HasClass("brand"):
		r.text(b, el.Text(), r.style(el, p.Accent, b.opacity).Bold(true))
	case el.HasClass(page.ClassNavLink):
		fg := p.Muted
		st := r.style(el, fg, b.opacity)
		if el.HasClass(page.ClassActive) {
			st = r.style(el, p.Accent, b.opacity).Underline(true)
		}
		r.text(b, el.Text(), st)
	case el.HasClass("toast"):
		r.frame(b, p.Border, p.Surface)
	case el.HasClass("panel"), el.HasClass("testimonial-card"):
		r.card(el, b)
	case el.HasClass("image"):
		r.image(el, b)
	case el.HasClass("dot"):
		ch := '○'
		fg := p.Muted
		if el.HasClass(page.ClassActive) {
			ch, fg = '●', p.Accent
		}
		r.put(b.rect.X, b.rect.Y, ch, r.style(el, fg, b.opacity), b.maxX)
	case el.HasClass("counter"):
		r.text(b, el.Text(), r.style(el, p.Accent, b.opacity).Bold(true))
	case el.HasClass("heading"):
		if el.Text() != "" {
			r.text(b, el.Text(), r.style(el, p.Text, b.opacity).Bold(true))
		}
	case el.HasClass(page.ClassWord):
		r.text(b, el.Text(), r.style(el, p.Text, b.opacity).Bold(true))
	case el.Text() != "" && len(el.Children()) == 0:
		r.paragraph(b, el.Text(), r.style(el, p.Text, b.opacity))
	}
}

// style picks fg over the background of the nearest surface.
func (r *Renderer) style(el *dom.Element, fg colorful.Color, opacity float64) tcell.Style {
	bg := r.palette.Background
	for n := el; n != nil; n = n.Parent() {
		if n.HasClass("toast") || n.HasClass("panel") || n.HasClass("testimonial-card") ||
			(n.HasClass("navbar") && n.HasClass(page.ClassScrolled)) {
			bg = r.palette.Surface
			break
		}
	}
	return tcell.StyleDefault.Background(toTcell(bg)).Foreground(r.palette.fade(fg, opacity))
}

func (r *Renderer) text(b box, s string, st tcell.Style) {
	x := b.rect.X
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+float64(w) > b.maxX {
			return
		}
		r.put(x, b.rect.Y, ch, st, b.maxX)
		x += float64(w)
	}
}

func (r *Renderer) paragraph(b box, s string, st tcell.Style) {
	for i, line := range page.Wrap(s, int(b.rect.W)) {
		if float64(i) >= b.rect.H {
			return
		}
		lb := b
		lb.rect.Y += float64(i)
		r.text(lb, line, st)
	}
}

func (r *Renderer) fill(b box, ch rune, st tcell.Style) {
	for y := b.rect.Y; y < b.rect.Bottom(); y++ {
		for x := b.rect.X; x < b.maxX; x++ {
			r.put(x, y, ch, st, b.maxX)
		}
	}
}

// frame draws a bordered surface.
func (r *Renderer) frame(b box, border, surface colorful.Color) {
	p := r.palette
	inner := tcell.StyleDefault.Background(toTcell(surface))
	r.fill(b, ' ', inner)
	st := inner.Foreground(p.fade(border, b.opacity))
	x0, y0 := b.rect.X, b.rect.Y
	x1, y1 := b.rect.Right()-1, b.rect.Bottom()-1
	for x := x0; x <= x1; x++ {
		r.put(x, y0, '─', st, b.maxX)
		r.put(x, y1, '─', st, b.maxX)
	}
	for y := y0; y <= y1; y++ {
		r.put(x0, y, '│', st, b.maxX)
		r.put(x1, y, '│', st, b.maxX)
	}
	r.put(x0, y0, '╭', st, b.maxX)
	r.put(x1, y0, '╮', st, b.maxX)
	r.put(x0, y1, '╰', st, b.maxX)
	r.put(x1, y1, '╯', st, b.maxX)
}

func (r *Renderer) card(el *dom.Element, b box) {
	p := r.palette
	r.frame(b, p.Border, p.Surface)
	inner := b
	inner.rect = dom.Rect{X: b.rect.X + 2, Y: b.rect.Y + 1, W: b.rect.W - 4, H: b.rect.H - 2}
	if title, _ := el.Attr("title"); title != "" {
		r.text(inner, title, r.style(el, p.Accent, b.opacity).Bold(true))
		inner.rect.Y += 2
		inner.rect.H -= 2
	}
	author, _ := el.Attr("author")
	if author != "" {
		inner.rect.H--
	}
	r.paragraph(inner, el.Text(), r.style(el, p.Text, b.opacity))
	if author != "" {
		ab := inner
		ab.rect.Y = b.rect.Bottom() - 2
		r.text(ab, "— "+author, r.style(el, p.Muted, b.opacity).Italic(true))
	}
}

// image shades a block left to right; text, if any, sits in the middle.
func (r *Renderer) image(el *dom.Element, b box) {
	p := r.palette
	shades := []rune("░▒▓█")
	for y := b.rect.Y; y < b.rect.Bottom(); y++ {
		for x := b.rect.X; x < b.maxX; x++ {
			t := 0.0
			if b.rect.W > 1 {
				t = (x - b.rect.X) / (b.rect.W - 1)
			}
			c := p.Surface.BlendLab(p.Accent, 0.3+0.7*t).Clamped()
			ch := shades[int(math.Min(3, t*4))]
			st := tcell.StyleDefault.Background(toTcell(p.Background)).Foreground(p.fade(c, b.opacity))
			r.put(x, y, ch, st, b.maxX)
		}
	}
	if s := strings.TrimSpace(el.Text()); s != "" {
		tb := b
		tb.rect.X += math.Max(0, (b.rect.W-float64(runewidth.StringWidth(s)))/2)
		tb.rect.Y += math.Floor(b.rect.H / 2)
		r.text(tb, s, r.style(el, p.Text, b.opacity).Bold(true))
	}
}

// put writes one cell if it is on screen and left of maxX.
func (r *Renderer) put(x, y float64, ch rune, st tcell.Style, maxX float64) {
	if x >= maxX {
		return
	}
	cx, cy := int(math.Floor(x+0.5)), int(math.Floor(y+0.5))
	if cx < 0 || cy < 0 || cx >= r.w || cy >= r.h {
		return
	}
	r.screen.SetContent(cx, cy, ch, nil, st)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
