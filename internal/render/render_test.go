// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelpage/config"
	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/page"
)

const testPage = `
title: T
nav:
  - {label: Top, href: "#hero"}
  - {label: Quotes, href: "#quotes"}
sections:
  - id: hero
    kind: hero
    heading: Hello there
    min_height: 30
  - id: quotes
    kind: testimonials
    card_width: 20
    min_height: 20
    cards: [{body: one}, {body: two}, {body: three}]
  - id: tail
    min_height: 60
`

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	return screen
}

func newSite(t *testing.T) *page.Site {
	t.Helper()
	p, err := page.Parse([]byte(testPage))
	require.NoError(t, err)
	set := page.DefaultSettings()
	set.Scroll.Smooth = false
	s, err := page.NewSite(p, set, dom.Viewport{W: 80, H: 24}, nil)
	require.NoError(t, err)
	t.Cleanup(s.Teardown)
	return s
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawNavbarAndProgress(t *testing.T) {
	screen := newScreen(t, 80, 24)
	defer screen.Fini()
	site := newSite(t)
	pal, _ := PaletteByName("dark")
	r := NewRenderer(NewDriver(screen), pal)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	site.Loop().Frame(now)
	r.Draw(site.Document(), site.Position())

	assert.Equal(t, " T   Top  Quotes", readScreenLine(screen, 0, 0, 20))
	assert.Equal(t, "", readScreenLine(screen, 0, 1, 80), "no progress at the top")

	site.End()
	site.Loop().Frame(now.Add(20 * time.Millisecond))
	r.Draw(site.Document(), site.Position())
	assert.Equal(t, strings.Repeat("▀", 80), readScreenLine(screen, 0, 1, 80))
}

func TestDrawHonoursStyle(t *testing.T) {
	screen := newScreen(t, 20, 6)
	defer screen.Fini()
	pal, ok := PaletteByName("light")
	require.True(t, ok)
	r := NewRenderer(NewDriver(screen), pal)

	doc := dom.New(dom.Viewport{W: 20, H: 6})
	el := doc.NewElement("a", "p")
	el.SetText("abcdef")
	el.SetBounds(dom.Rect{X: 0, Y: 3, W: 6, H: 1})
	doc.Root().Append(el)

	r.Draw(doc, 1)
	assert.Equal(t, "abcdef", readScreenLine(screen, 0, 2, 20), "scrolled up one row")

	el.UpdateStyle(func(s *dom.Style) { s.ClipRight = 0.5 })
	r.Draw(doc, 1)
	assert.Equal(t, "abc", readScreenLine(screen, 0, 2, 20))

	el.AddClass(page.ClassFixed)
	r.Draw(doc, 1)
	assert.Equal(t, "abc", readScreenLine(screen, 0, 3, 20), "fixed ignores scroll")

	el.UpdateStyle(func(s *dom.Style) { s.Opacity = 0 })
	r.Draw(doc, 1)
	assert.Equal(t, "", readScreenLine(screen, 0, 3, 20))

	el.UpdateStyle(func(s *dom.Style) { s.Opacity = 1; s.Hidden = true })
	r.Draw(doc, 1)
	assert.Equal(t, "", readScreenLine(screen, 0, 3, 20))
}

func TestDrawOpacityFadesTowardBackground(t *testing.T) {
	screen := newScreen(t, 10, 2)
	defer screen.Fini()
	pal, _ := PaletteByName("dark")
	r := NewRenderer(NewDriver(screen), pal)

	doc := dom.New(dom.Viewport{W: 10, H: 2})
	el := doc.NewElement("a", "p")
	el.SetText("x")
	el.SetBounds(dom.Rect{X: 0, Y: 0, W: 1, H: 1})
	doc.Root().Append(el)

	r.Draw(doc, 0)
	_, _, full, _ := screen.GetContent(0, 0)
	el.UpdateStyle(func(s *dom.Style) { s.Opacity = 0.2 })
	r.Draw(doc, 0)
	_, _, faded, _ := screen.GetContent(0, 0)

	fgFull, _, _ := full.Decompose()
	fgFaded, _, _ := faded.Decompose()
	assert.Equal(t, toTcell(pal.Text), fgFull)
	assert.NotEqual(t, fgFull, fgFaded)
}

func TestInputKeys(t *testing.T) {
	site := newSite(t)
	quit := 0
	var motion []bool
	in := NewInput(site, func() { quit++ })
	in.OnReducedMotion(func(on bool) { motion = append(motion, on) })

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'j', 0))
	site.Loop().Frame(now)
	assert.Equal(t, 3.0, site.Position(), "one line step")

	in.Handle(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	site.Loop().Frame(now.Add(20 * time.Millisecond))
	assert.Equal(t, site.Document().ScrollLimit(), site.Position())

	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'm', 0))
	assert.True(t, site.ReducedMotion())
	assert.Equal(t, []bool{true}, motion)

	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	in.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.Equal(t, 2, quit)
}

func TestInputClickAndDrag(t *testing.T) {
	site := newSite(t)
	in := NewInput(site, func() {})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	site.Loop().Frame(now)

	// "Quotes" link starts at column 10 of the navbar.
	in.Handle(tcell.NewEventMouse(11, 0, tcell.Button1, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(11, 0, tcell.ButtonNone, tcell.ModNone))
	site.Loop().Frame(now.Add(20 * time.Millisecond))
	top, ok := site.SectionTop("quotes")
	require.True(t, ok)
	assert.Equal(t, top, site.Position())

	c := site.Carousel(0)
	require.NotNil(t, c)
	region, _ := site.Document().ByID("quotes-carousel")
	y := int(region.ScreenRect(site.Position()).Y) + 1
	in.Handle(tcell.NewEventMouse(60, y, tcell.Button1, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(20, y, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, 1, c.Index(), "left drag advances")
}

func TestInputWheel(t *testing.T) {
	site := newSite(t)
	in := NewInput(site, func() {})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in.Handle(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))
	site.Loop().Frame(now)
	assert.Equal(t, 3.0, site.Position())
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t, 80, 24)
	site := newSite(t)

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), NewDriver(screen), site, Options{})
	}()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newScreen(t, 80, 24)
	site := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, NewDriver(screen), site, Options{})
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestPaletteOverrides(t *testing.T) {
	cfg := config.Config{"theme": map[string]interface{}{"accent": "#ff8800"}}
	p, err := ForConfig("light", cfg)
	require.NoError(t, err)
	assert.Equal(t, "light", p.Name)
	assert.Equal(t, "#ff8800", p.Accent.Hex())

	_, err = ForConfig("dark", config.Config{"theme": map[string]interface{}{"glow": "#000000"}})
	assert.Error(t, err)
	_, err = ForConfig("dark", config.Config{"theme": map[string]interface{}{"text": "blue"}})
	assert.Error(t, err)

	p, ok := PaletteByName("neon")
	assert.False(t, ok)
	assert.Equal(t, "dark", p.Name)
	assert.Equal(t, []string{"dark", "light"}, PaletteNames())
}

func TestBuiltinPalettesParse(t *testing.T) {
	want := map[string][]string{
		"dark":  {"#11111b", "#cdd6f4", "#7f849c", "#f5a97f", "#1e1e2e", "#45475a"},
		"light": {"#eff1f5", "#4c4f69", "#8c8fa1", "#d20f39", "#e6e9ef", "#bcc0cc"},
	}
	for _, name := range PaletteNames() {
		p, ok := PaletteByName(name)
		require.True(t, ok, name)
		got := []string{p.Background.Hex(), p.Text.Hex(), p.Muted.Hex(), p.Accent.Hex(), p.Surface.Hex(), p.Border.Hex()}
		assert.Equal(t, want[name], got, name)
	}
	assert.Panics(t, func() { mustHex("not-a-colour") })
}
