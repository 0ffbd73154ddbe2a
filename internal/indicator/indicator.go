// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/indicator/indicator.go
// Summary: Scroll-position observers: progress bar, section indicator, thresholds, counters.
// Usage: Progress and Sections subscribe in scroll.PhaseObservers; thresholds and
//        counters are trigger bindings.

package indicator

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/effects"
	"github.com/framegrace/texelpage/internal/scroll"
	"github.com/framegrace/texelpage/internal/trigger"
)

// Progress fills a bar with the fraction of the page scrolled.
type Progress struct {
	doc   *dom.Document
	bar   *dom.Element
	value float64
}

// NewProgress binds bar; a missing bar still tracks the value.
func NewProgress(doc *dom.Document, bar *dom.Element) *Progress {
	p := &Progress{doc: doc, bar: bar}
	p.write()
	return p
}

// Update recomputes the fraction for st.
func (p *Progress) Update(st scroll.State) {
	limit := p.doc.ScrollLimit()
	if limit <= 0 {
		p.value = 0
	} else {
		p.value = math.Max(0, math.Min(1, st.Virtual/limit))
	}
	p.write()
}

func (p *Progress) write() {
	if !p.bar.Attached() {
		return
	}
	v := p.value
	p.bar.UpdateStyle(func(s *dom.Style) { s.ClipRight = 1 - v })
}

// Value is the last computed fraction in [0, 1].
func (p *Progress) Value() float64 { return p.value }

// Listener adapts Update for scroll subscriptions.
func (p *Progress) Listener() scroll.Listener { return p.Update }

// Band margins of the section observation window, as viewport fractions.
const (
	BandTop    = 0.2
	BandBottom = 0.6
)

type tracked struct {
	section     *dom.Element
	item        *dom.Element
	intersected bool
}

// Sections highlights the indicator item whose section most recently
// entered the band between 20% and 40% of the viewport.
type Sections struct {
	entries []*tracked
	items   []*dom.Element
	vp      dom.Viewport
	active  string
	log     *zap.Logger
}

// NewSections pairs each item with the section its href ("#id") names.
// Items pointing nowhere are kept for highlighting but never activate.
func NewSections(doc *dom.Document, items []*dom.Element, log *zap.Logger) *Sections {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sections{vp: doc.Viewport(), log: log}
	for _, item := range items {
		if !item.Attached() {
			continue
		}
		s.items = append(s.items, item)
		href, _ := item.Attr("href")
		section, ok := doc.ByID(strings.TrimPrefix(href, "#"))
		if !ok {
			log.Debug("Indicator: no section for item", zap.String("href", href))
			continue
		}
		s.entries = append(s.entries, &tracked{section: section, item: item})
	}
	return s
}

// SetViewport changes the band geometry.
func (s *Sections) SetViewport(vp dom.Viewport) { s.vp = vp }

// Band returns the observation window in scroll space for pos.
func (s *Sections) Band(pos float64) (top, bottom float64) {
	return pos + BandTop*s.vp.H, pos + (1-BandBottom)*s.vp.H
}

// Update activates sections that newly intersect the band.
func (s *Sections) Update(st scroll.State) {
	top, bottom := s.Band(st.Virtual)
	for _, e := range s.entries {
		if !e.section.Attached() {
			e.intersected = false
			continue
		}
		b := e.section.Bounds()
		now := b.Y < bottom && b.Bottom() > top
		if now && !e.intersected {
			s.activate(e)
		}
		e.intersected = now
	}
}

func (s *Sections) activate(e *tracked) {
	for _, item := range s.items {
		item.RemoveClass("active")
	}
	e.item.AddClass("active")
	if id := e.section.ID(); id != s.active {
		s.active = id
		s.log.Debug("Indicator: section active", zap.String("section", id))
	}
}

// Active is the id of the highlighted section, empty before the first hit.
func (s *Sections) Active() string { return s.active }

// Listener adapts Update for scroll subscriptions.
func (s *Sections) Listener() scroll.Listener { return s.Update }

// BindThreshold toggles class on el while the position is strictly above limit.
func BindThreshold(reg *trigger.Registry, el *dom.Element, limit float64, class string) *trigger.Trigger {
	if !el.Attached() {
		return nil
	}
	start := math.Nextafter(limit, math.Inf(1))
	return reg.RegisterRange(start, math.Inf(1),
		func(scroll.State) { el.AddClass(class) },
		func(scroll.State) { el.RemoveClass(class) })
}

// CounterEdge fires once the counter's top is 100 units above the viewport bottom.
var CounterEdge = trigger.Edge{Element: 0, Viewport: 1, Offset: -100}

// BindCounter counts el up to its data-target once it becomes visible.
// The text keeps its data-suffix. Elements without a numeric target are skipped.
func BindCounter(reg *trigger.Registry, anim *effects.Animator, el *dom.Element, edge trigger.Edge, d time.Duration) bool {
	if !el.Attached() {
		return false
	}
	raw, _ := el.Attr("data-target")
	target, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false
	}
	suffix, _ := el.Attr("data-suffix")
	_, ok := reg.ObserveOnce(el, edge, func(st scroll.State) {
		anim.CountTo(el, target, suffix, d, st.Timestamp)
	})
	return ok
}
