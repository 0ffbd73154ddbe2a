// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/effects"
	"github.com/framegrace/texelpage/internal/scroll"
	"github.com/framegrace/texelpage/internal/trigger"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// page builds three 100-unit sections under a 50-unit viewport.
func page() (*dom.Document, []*dom.Element) {
	doc := dom.New(dom.Viewport{W: 80, H: 50})
	var items []*dom.Element
	nav := doc.NewElement("section-indicator", "nav")
	doc.Root().Append(nav)
	for i, id := range []string{"home", "about", "contact"} {
		sec := doc.NewElement(id, "section")
		sec.SetBounds(dom.Rect{Y: float64(i * 100), W: 80, H: 100})
		doc.Root().Append(sec)
		item := doc.NewElement("", "a")
		item.SetAttr("href", "#"+id)
		nav.Append(item)
		items = append(items, item)
	}
	return doc, items
}

func TestProgress(t *testing.T) {
	doc, _ := page()
	bar := doc.NewElement("scroll-progress", "div")
	doc.Root().Append(bar)
	p := NewProgress(doc, bar)
	assert.Equal(t, 1.0, bar.Style().ClipRight)

	p.Update(scroll.State{Virtual: 125})
	assert.Equal(t, 0.5, p.Value())
	assert.Equal(t, 0.5, bar.Style().ClipRight)

	p.Update(scroll.State{Virtual: 1e6})
	assert.Equal(t, 1.0, p.Value())
}

func TestProgressOnShortPage(t *testing.T) {
	doc := dom.New(dom.Viewport{W: 80, H: 50})
	p := NewProgress(doc, nil)
	p.Update(scroll.State{Virtual: 10})
	assert.Equal(t, 0.0, p.Value())
}

func TestSectionsActivateOnEntry(t *testing.T) {
	doc, items := page()
	s := NewSections(doc, items, nil)

	top, bottom := s.Band(0)
	assert.Equal(t, 10.0, top)
	assert.Equal(t, 20.0, bottom)

	s.Update(scroll.State{Virtual: 0})
	assert.Equal(t, "home", s.Active())
	assert.True(t, items[0].HasClass("active"))

	s.Update(scroll.State{Virtual: 95})
	assert.Equal(t, "about", s.Active())
	assert.False(t, items[0].HasClass("active"))
	assert.True(t, items[1].HasClass("active"))

	s.Update(scroll.State{Virtual: 150})
	assert.Equal(t, "about", s.Active())

	s.Update(scroll.State{Virtual: 50})
	assert.Equal(t, "home", s.Active())
}

func TestSectionsIgnoreMissingTargets(t *testing.T) {
	doc, items := page()
	stray := doc.NewElement("", "a")
	stray.SetAttr("href", "#pricing")
	items[0].Parent().Append(stray)

	s := NewSections(doc, append(items, stray), nil)
	s.Update(scroll.State{Virtual: 0})
	assert.Equal(t, "home", s.Active())
	assert.False(t, stray.HasClass("active"))
}

func TestThresholds(t *testing.T) {
	doc, _ := page()
	navbar := doc.NewElement("navbar", "nav")
	doc.Root().Append(navbar)
	reg := trigger.NewRegistry(doc.Viewport(), nil)
	require.NotNil(t, BindThreshold(reg, navbar, 50, "scrolled"))

	reg.Evaluate(scroll.State{Virtual: 50})
	assert.False(t, navbar.HasClass("scrolled"))
	reg.Evaluate(scroll.State{Virtual: 51})
	assert.True(t, navbar.HasClass("scrolled"))
	reg.Evaluate(scroll.State{Virtual: 0})
	assert.False(t, navbar.HasClass("scrolled"))

	assert.Nil(t, BindThreshold(reg, nil, 500, "visible"))
}

func TestCounterFiresOnce(t *testing.T) {
	doc, _ := page()
	el := doc.NewElement("stat", "span")
	el.SetBounds(dom.Rect{Y: 200, W: 10, H: 1})
	el.SetAttr("data-target", "250")
	el.SetAttr("data-suffix", "+")
	doc.Root().Append(el)

	reg := trigger.NewRegistry(doc.Viewport(), nil)
	anim := effects.NewAnimator(nil)
	edge := trigger.Edge{Viewport: 1, Offset: -10}
	require.True(t, BindCounter(reg, anim, el, edge, time.Second))

	reg.Evaluate(scroll.State{Virtual: 0, Timestamp: epoch})
	assert.Empty(t, el.Text())

	reg.Evaluate(scroll.State{Virtual: 170, Timestamp: epoch})
	assert.Equal(t, "0+", el.Text())
	anim.Update(epoch.Add(time.Second))
	assert.Equal(t, "250+", el.Text())

	reg.Evaluate(scroll.State{Virtual: 0, Timestamp: epoch.Add(2 * time.Second)})
	reg.Evaluate(scroll.State{Virtual: 170, Timestamp: epoch.Add(3 * time.Second)})
	assert.Equal(t, "250+", el.Text())
	assert.Equal(t, 0, reg.Len())
}

func TestCounterWithoutTargetIsSkipped(t *testing.T) {
	doc, _ := page()
	el := doc.NewElement("stat", "span")
	doc.Root().Append(el)
	reg := trigger.NewRegistry(doc.Viewport(), nil)
	assert.False(t, BindCounter(reg, effects.NewAnimator(nil), el, CounterEdge, time.Second))
}

func TestCounterIgnoresMissingElements(t *testing.T) {
	doc, _ := page()
	reg := trigger.NewRegistry(doc.Viewport(), nil)
	anim := effects.NewAnimator(nil)
	assert.NotPanics(t, func() {
		assert.False(t, BindCounter(reg, anim, nil, CounterEdge, time.Second))
	})

	detached := doc.NewElement("loose", "span")
	detached.SetAttr("data-target", "10")
	assert.False(t, BindCounter(reg, anim, detached, CounterEdge, time.Second))
	assert.Equal(t, 0, reg.Len())
}
