// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package trigger

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/scroll"
)

var vp = dom.Viewport{W: 1000, H: 800}

func newDocWithBlock(y, h float64) (*dom.Document, *dom.Element) {
	doc := dom.New(vp)
	el := doc.NewElement("block", "div")
	el.SetBounds(dom.Rect{Y: y, W: 400, H: h})
	doc.Root().Append(el)
	return doc, el
}

type recorder struct {
	frame  int
	events []string
}

func (r *recorder) action(name string) Action {
	return func(scroll.State) { r.events = append(r.events, fmt.Sprintf("%d:%s", r.frame, name)) }
}

func (r *recorder) run(reg *Registry, positions ...float64) {
	for _, p := range positions {
		r.frame++
		reg.Evaluate(scroll.State{Virtual: p})
	}
}

func TestParseEdge(t *testing.T) {
	cases := map[string]Edge{
		"top 85%":         {Element: 0, Viewport: 0.85},
		"bottom top":      {Element: 1, Viewport: 0},
		"center center":   {Element: 0.5, Viewport: 0.5},
		"top bottom-=100": {Element: 0, Viewport: 1, Offset: -100},
		"TOP 80%":         {Element: 0, Viewport: 0.8},
		"top top+=20":     {Element: 0, Viewport: 0, Offset: 20},
		"top+=10 85%":     {Element: 0, Viewport: 0.85, Offset: -10},
		"bottom-=5 top":   {Element: 1, Viewport: 0, Offset: 5},
	}
	for in, want := range cases {
		got, err := ParseEdge(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want.Element, got.Element, 1e-9, in)
		assert.InDelta(t, want.Viewport, got.Viewport, 1e-9, in)
		assert.InDelta(t, want.Offset, got.Offset, 1e-9, in)
	}

	for _, bad := range []string{"", "top", "left 50%", "top 12x%", "top top+=x"} {
		_, err := ParseEdge(bad)
		assert.Error(t, err, bad)
	}
}

func TestElementOffsetShiftsStart(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	plain, err := ParseEdge("top 85%")
	require.NoError(t, err)
	shifted, err := ParseEdge("top+=10 85%")
	require.NoError(t, err)
	assert.Equal(t, 320.0, plain.Position(el, vp.H))
	assert.Equal(t, 330.0, shifted.Position(el, vp.H), "starts once the point 10 below the top reaches the line")
}

func TestRegisterComputesRangeFromGeometry(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	end := BottomTop
	tr, ok := reg.Register(Binding{Target: el, Start: At(0.85), End: &end})
	require.True(t, ok)
	start, stop := tr.Range()
	assert.Equal(t, 320.0, start)
	assert.Equal(t, 1200.0, stop)

	reg.Refresh(dom.Viewport{W: 1000, H: 400})
	start, _ = tr.Range()
	assert.Equal(t, 660.0, start)
}

func TestOpenEndedRangeNeverLeavesGoingForward(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	tr, ok := reg.Register(Binding{Target: el, Start: At(0.85)})
	require.True(t, ok)
	_, stop := tr.Range()
	assert.True(t, math.IsInf(stop, 1))
}

func TestEnterLeaveAcrossConsecutiveFrames(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	rec := &recorder{}
	end := BottomTop
	reg.Register(Binding{Target: el, Start: At(0.85), End: &end, OnEnter: rec.action("enter"), OnLeave: rec.action("leave")})

	rec.run(reg, 0, 400, 100, 500, 1300, 900)

	want := []string{"2:enter", "3:leave", "4:enter", "5:leave", "6:enter"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestJumpOverRangeFiresEnterThenLeaveNextFrame(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	rec := &recorder{}
	end := BottomTop
	reg.Register(Binding{Target: el, Start: At(0.85), End: &end, OnEnter: rec.action("enter"), OnLeave: rec.action("leave")})

	rec.run(reg, 0, 5000, 5000, 0, 0)

	want := []string{"2:enter", "3:leave", "4:enter", "5:leave"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingTargetIsNoop(t *testing.T) {
	doc := dom.New(vp)
	reg := NewRegistry(vp, nil)

	_, ok := reg.Register(Binding{Target: nil, Start: At(0.85)})
	assert.False(t, ok)

	detached := doc.NewElement("ghost", "div")
	_, ok = reg.Register(Binding{Target: detached, Start: At(0.85)})
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestDetachedTargetIsSkipped(t *testing.T) {
	doc, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	rec := &recorder{}
	reg.Register(Binding{Target: el, Start: At(0.85), OnEnter: rec.action("enter")})

	doc.Remove(el)
	rec.run(reg, 0, 800)
	assert.Empty(t, rec.events)
}

func TestRegisterDuringEvaluateAppliesNextFrame(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	rec := &recorder{}
	reg.Register(Binding{Target: el, Start: At(0.85), OnEnter: func(scroll.State) {
		rec.events = append(rec.events, fmt.Sprintf("%d:outer", rec.frame))
		reg.RegisterRange(0, math.Inf(1), rec.action("inner"), nil)
	}})

	rec.run(reg, 500, 500)
	want := []string{"1:outer", "2:inner"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestKillDuringEvaluateAppliesNextFrame(t *testing.T) {
	reg := NewRegistry(vp, nil)
	rec := &recorder{}
	var second *Trigger
	reg.RegisterRange(0, 100, func(scroll.State) {
		rec.events = append(rec.events, fmt.Sprintf("%d:first", rec.frame))
		second.Kill()
	}, nil)
	second = reg.RegisterRange(0, 100, rec.action("second"), rec.action("second-leave"))

	rec.run(reg, 50, 200)
	want := []string{"1:first", "1:second"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, reg.Len())
}

func TestObserveOnceFiresOnce(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	calls := 0
	_, ok := reg.ObserveOnce(el, Edge{Viewport: 1, Offset: -100}, func(scroll.State) { calls++ })
	require.True(t, ok)

	rec := &recorder{}
	rec.run(reg, 0, 400, 0, 400, 900)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, reg.Len())
}

func TestKillTargetDropsBindings(t *testing.T) {
	_, el := newDocWithBlock(1000, 200)
	reg := NewRegistry(vp, nil)
	reg.Register(Binding{Target: el, Start: At(0.85)})
	reg.Register(Binding{Target: el, Start: At(0.5)})
	reg.RegisterRange(0, 10, nil, nil)
	require.Equal(t, 3, reg.Len())

	reg.KillTarget(el)
	assert.Equal(t, 1, reg.Len())
}
