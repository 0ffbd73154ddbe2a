// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/trigger/registry.go
// Summary: Viewport-range triggers firing enter/leave actions on scroll.
// Usage: Evaluate is subscribed to the virtual scroller in PhaseTriggers.
// Notes: Register/Kill from inside an action are applied on the next evaluation.

package trigger

import (
	"math"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/scroll"
)

// Action runs when a trigger flips.
type Action func(scroll.State)

// Binding declares an element-relative trigger. A nil End means the range
// never closes once entered going forward.
type Binding struct {
	Target  *dom.Element
	Start   Edge
	End     *Edge
	OnEnter Action
	OnLeave Action
}

// Trigger is one registered range.
type Trigger struct {
	target     *dom.Element
	startEdge  Edge
	endEdge    *Edge
	absolute   bool
	start, end float64
	onEnter    Action
	onLeave    Action
	once       bool
	active     bool
	killed     bool
	killQueued bool
	reg        *Registry
}

// Active reports whether the last evaluation placed the position inside the range.
func (t *Trigger) Active() bool { return t.active }

// Range returns the current [start, end) bounds in scroll space.
func (t *Trigger) Range() (start, end float64) { return t.start, t.end }

// Target returns the bound element, nil for absolute ranges.
func (t *Trigger) Target() *dom.Element { return t.target }

// Kill removes the trigger without firing onLeave.
func (t *Trigger) Kill() {
	if t == nil || t.killed {
		return
	}
	if t.reg != nil && t.reg.evaluating {
		t.killQueued = true
		return
	}
	t.killed = true
}

func (t *Trigger) refresh(vh float64) {
	if t.absolute || t.target == nil {
		return
	}
	t.start = t.startEdge.Position(t.target, vh)
	if t.endEdge != nil {
		t.end = t.endEdge.Position(t.target, vh)
	} else {
		t.end = math.Inf(1)
	}
}

// Registry holds triggers in registration order.
type Registry struct {
	triggers   []*Trigger
	pending    []*Trigger
	evaluating bool
	viewport   dom.Viewport
	lastPos    float64
	evaluated  bool
	log        *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(vp dom.Viewport, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{viewport: vp, log: log}
}

// Register binds an element range. A missing target is a no-op.
func (r *Registry) Register(b Binding) (*Trigger, bool) {
	if b.Target == nil || !b.Target.Attached() {
		r.log.Debug("Trigger: skipping binding without target")
		return nil, false
	}
	t := &Trigger{
		target:    b.Target,
		startEdge: b.Start,
		endEdge:   b.End,
		onEnter:   b.OnEnter,
		onLeave:   b.OnLeave,
		reg:       r,
	}
	t.refresh(r.viewport.H)
	r.add(t)
	return t, true
}

// RegisterRange binds an absolute [start, end) scroll range.
func (r *Registry) RegisterRange(start, end float64, onEnter, onLeave Action) *Trigger {
	t := &Trigger{
		absolute: true,
		start:    start,
		end:      end,
		onEnter:  onEnter,
		onLeave:  onLeave,
		reg:      r,
	}
	r.add(t)
	return t
}

// ObserveOnce calls fn the first time el crosses edge, then discards the trigger.
func (r *Registry) ObserveOnce(el *dom.Element, edge Edge, fn Action) (*Trigger, bool) {
	t, ok := r.Register(Binding{Target: el, Start: edge, OnEnter: fn})
	if ok {
		t.once = true
	}
	return t, ok
}

func (r *Registry) add(t *Trigger) {
	if r.evaluating {
		r.pending = append(r.pending, t)
		return
	}
	r.triggers = append(r.triggers, t)
}

// KillTarget kills every trigger bound to el.
func (r *Registry) KillTarget(el *dom.Element) {
	for _, t := range r.triggers {
		if t.target == el {
			t.Kill()
		}
	}
	for _, t := range r.pending {
		if t.target == el {
			t.killed = true
		}
	}
}

// Len counts live triggers, including queued ones.
func (r *Registry) Len() int {
	n := 0
	for _, t := range r.triggers {
		if !t.killed {
			n++
		}
	}
	for _, t := range r.pending {
		if !t.killed {
			n++
		}
	}
	return n
}

// Refresh recomputes every range for a new viewport or layout.
func (r *Registry) Refresh(vp dom.Viewport) {
	r.viewport = vp
	for _, t := range r.triggers {
		t.refresh(vp.H)
	}
	for _, t := range r.pending {
		t.refresh(vp.H)
	}
}

// Listener adapts Evaluate for scroll subscriptions.
func (r *Registry) Listener() scroll.Listener { return r.Evaluate }

// Evaluate runs one pass over every trigger for st.
func (r *Registry) Evaluate(st scroll.State) {
	r.settle()

	pos := st.Virtual
	prev := pos
	if r.evaluated {
		prev = r.lastPos
	}

	r.evaluating = true
	for _, t := range r.triggers {
		if t.killed {
			continue
		}
		if !t.absolute && !t.target.Attached() {
			continue
		}
		inRange := pos >= t.start && pos < t.end
		switch {
		case !t.active && (inRange || jumped(prev, pos, t.start, t.end)):
			t.active = true
			if t.onEnter != nil {
				t.onEnter(st)
			}
			if t.once {
				t.killQueued = true
			}
		case t.active && !inRange:
			t.active = false
			if t.onLeave != nil {
				t.onLeave(st)
			}
		}
	}
	r.evaluating = false
	r.lastPos = pos
	r.evaluated = true
}

// jumped reports a move that skipped the whole range within one frame.
func jumped(prev, pos, start, end float64) bool {
	return (prev < start && pos >= end) || (prev >= end && pos < start)
}

func (r *Registry) settle() {
	live := r.triggers[:0]
	for _, t := range r.triggers {
		if t.killQueued {
			t.killed = true
		}
		if !t.killed {
			live = append(live, t)
		}
	}
	r.triggers = live
	for _, t := range r.pending {
		if !t.killed {
			t.refresh(r.viewport.H)
			r.triggers = append(r.triggers, t)
		}
	}
	r.pending = nil
}

// Teardown drops every trigger.
func (r *Registry) Teardown() {
	for _, t := range r.triggers {
		t.killed = true
	}
	r.triggers = nil
	r.pending = nil
	r.evaluated = false
}
