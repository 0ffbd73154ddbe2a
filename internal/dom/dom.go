// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/dom/dom.go
// Summary: Minimal document model read and written by the animation core.
// Usage: Built by the page builder, mutated by effects/pins/carousel, drawn by render.
// Notes: Not safe for concurrent use; only the loop goroutine touches a Document.

package dom

import (
	"sort"
)

// Rect is an axis-aligned box in document units.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }

// Intersects reports whether the two rectangles overlap with a non-empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport is the visible window size.
type Viewport struct {
	W, H float64
}

// Empty reports a degenerate viewport.
func (v Viewport) Empty() bool { return v.W <= 0 || v.H <= 0 }

// Style holds the animatable presentation of an element. Offsets accumulate
// down the tree when an element is placed on screen.
type Style struct {
	Opacity   float64 // 0 transparent, 1 opaque
	X, Y      float64 // transform translation
	ClipRight float64 // fraction of the width clipped from the right edge
	DX, DY    float64 // pointer parallax drift
	Hidden    bool    // visibility: hidden
	Pinned    bool
	PinOffset float64 // vertical shift holding a pinned element in place
}

// DefaultStyle is the style of a freshly created element.
func DefaultStyle() Style {
	return Style{Opacity: 1}
}

// Element is a node of the document tree.
type Element struct {
	id          string
	tag         string
	text        string
	classes     map[string]struct{}
	attrs       map[string]string
	bounds      Rect
	scrollWidth float64
	style       Style
	parent      *Element
	children    []*Element
	attached    bool
	doc         *Document
}

// Document owns a tree of elements and the current viewport.
type Document struct {
	root     *Element
	ids      map[string]*Element
	viewport Viewport
}

// New creates an empty document with the given viewport.
func New(vp Viewport) *Document {
	d := &Document{
		ids:      make(map[string]*Element),
		viewport: vp,
	}
	d.root = &Element{tag: "root", style: DefaultStyle(), attached: true, doc: d}
	return d
}

// Root returns the document root.
func (d *Document) Root() *Element { return d.root }

// Viewport returns the current viewport.
func (d *Document) Viewport() Viewport { return d.viewport }

// SetViewport records a new viewport size.
func (d *Document) SetViewport(vp Viewport) { d.viewport = vp }

// NewElement creates a detached element owned by this document.
func (d *Document) NewElement(id, tag string) *Element {
	return &Element{
		id:      id,
		tag:     tag,
		classes: make(map[string]struct{}),
		style:   DefaultStyle(),
		doc:     d,
	}
}

// ByID looks up an attached element.
func (d *Document) ByID(id string) (*Element, bool) {
	if d == nil || id == "" {
		return nil, false
	}
	el, ok := d.ids[id]
	return el, ok
}

// ByClass returns attached elements carrying class, in document order.
func (d *Document) ByClass(class string) []*Element {
	var out []*Element
	d.Walk(func(el *Element) bool {
		if el.HasClass(class) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Walk visits attached elements depth-first in document order. Returning
// false from fn skips the element's children.
func (d *Document) Walk(fn func(*Element) bool) {
	if d == nil {
		return
	}
	var visit func(el *Element)
	visit = func(el *Element) {
		for _, c := range el.children {
			if fn(c) {
				visit(c)
			}
		}
	}
	visit(d.root)
}

// Height is the bottom edge of the lowest top-level element.
func (d *Document) Height() float64 {
	h := 0.0
	for _, c := range d.root.children {
		if b := c.bounds.Bottom(); b > h {
			h = b
		}
	}
	return h
}

// ScrollLimit is the largest scroll position that still fills the viewport.
func (d *Document) ScrollLimit() float64 {
	limit := d.Height() - d.viewport.H
	if limit < 0 {
		return 0
	}
	return limit
}

// Remove detaches el and its subtree from the document.
func (d *Document) Remove(el *Element) {
	if el == nil || el.parent == nil {
		return
	}
	p := el.parent
	for i, c := range p.children {
		if c == el {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	el.parent = nil
	el.setAttached(false)
}

func (el *Element) setAttached(on bool) {
	el.attached = on
	if el.id != "" && el.doc != nil {
		if on {
			el.doc.ids[el.id] = el
		} else if el.doc.ids[el.id] == el {
			delete(el.doc.ids, el.id)
		}
	}
	for _, c := range el.children {
		c.setAttached(on)
	}
}

// Append adds child as the last child of el. A child attached elsewhere is moved.
func (el *Element) Append(child *Element) *Element {
	if child == nil {
		return el
	}
	if child.parent != nil {
		el.doc.Remove(child)
	}
	child.parent = el
	el.children = append(el.children, child)
	if el.attached {
		child.setAttached(true)
	}
	return el
}

func (el *Element) ID() string           { return el.id }
func (el *Element) Tag() string          { return el.tag }
func (el *Element) Text() string         { return el.text }
func (el *Element) SetText(s string)     { el.text = s }
func (el *Element) Bounds() Rect         { return el.bounds }
func (el *Element) SetBounds(r Rect)     { el.bounds = r }
func (el *Element) Parent() *Element     { return el.parent }
func (el *Element) Children() []*Element { return el.children }
func (el *Element) Style() Style         { return el.style }
func (el *Element) SetStyle(s Style)     { el.style = s }

// Attached reports whether the element is still part of its document.
func (el *Element) Attached() bool { return el != nil && el.attached }

// UpdateStyle mutates the style in place.
func (el *Element) UpdateStyle(fn func(*Style)) { fn(&el.style) }

// ScrollWidth is the content width; it defaults to the box width.
func (el *Element) ScrollWidth() float64 {
	if el.scrollWidth > 0 {
		return el.scrollWidth
	}
	return el.bounds.W
}

func (el *Element) SetScrollWidth(w float64) { el.scrollWidth = w }

// Attr returns a string attribute.
func (el *Element) Attr(key string) (string, bool) {
	v, ok := el.attrs[key]
	return v, ok
}

// SetAttr stores a string attribute.
func (el *Element) SetAttr(key, value string) {
	if el.attrs == nil {
		el.attrs = make(map[string]string)
	}
	el.attrs[key] = value
}

func (el *Element) HasClass(c string) bool {
	_, ok := el.classes[c]
	return ok
}

func (el *Element) AddClass(cs ...string) {
	for _, c := range cs {
		el.classes[c] = struct{}{}
	}
}

func (el *Element) RemoveClass(cs ...string) {
	for _, c := range cs {
		delete(el.classes, c)
	}
}

// ToggleClass adds or removes c depending on on.
func (el *Element) ToggleClass(c string, on bool) {
	if on {
		el.AddClass(c)
	} else {
		el.RemoveClass(c)
	}
}

// Classes returns the class list sorted.
func (el *Element) Classes() []string {
	out := make([]string, 0, len(el.classes))
	for c := range el.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Offset is the accumulated translation of el and its ancestors.
func (el *Element) Offset() (x, y float64) {
	for n := el; n != nil; n = n.parent {
		s := n.style
		x += s.X + s.DX
		y += s.Y + s.DY + s.PinOffset
	}
	return x, y
}

// ScreenRect maps the element box to viewport coordinates at scroll position pos.
func (el *Element) ScreenRect(pos float64) Rect {
	dx, dy := el.Offset()
	r := el.bounds
	r.X += dx
	r.Y += dy - pos
	return r
}

// ViewportRect is the box at scroll position pos without transforms, the way
// a bounding box is measured for range checks.
func (el *Element) ViewportRect(pos float64) Rect {
	r := el.bounds
	r.Y -= pos
	return r
}
