// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/scroll/virtual.go
// Summary: Smoothed virtual scroll position decoupled from raw input.
// Usage: Ticked once per frame by the render loop; listeners observe each new State.
// Notes: Easing is frame-rate independent (decay scaled by elapsed time).

package scroll

import (
	"math"
	"sort"
	"time"
)

// State is the per-frame scroll snapshot handed to listeners.
type State struct {
	Raw       float64
	Virtual   float64
	Velocity  float64 // units per second, derived from consecutive ticks
	Timestamp time.Time
}

// Phase orders listeners within one emit.
type Phase int

const (
	PhaseTriggers Phase = iota
	PhasePins
	PhaseObservers
)

// Listener receives every emitted State.
type Listener func(State)

// Options tunes the smoothing.
type Options struct {
	Rate            float64       // decay rate per second
	WheelMultiplier float64       // applied to AddWheel deltas
	TouchMultiplier float64       // applied to AddTouch deltas
	Epsilon         float64       // snap distance
	MaxDt           time.Duration // cap on the elapsed time of one tick
	Smooth          bool          // false makes Virtual follow Raw exactly
}

// DefaultOptions mirrors the page's original smooth scroll tuning.
func DefaultOptions() Options {
	return Options{
		Rate:            6,
		WheelMultiplier: 1,
		TouchMultiplier: 2,
		Epsilon:         0.5,
		MaxDt:           250 * time.Millisecond,
		Smooth:          true,
	}
}

type subscription struct {
	phase Phase
	seq   int
	fn    Listener
	dead  bool
}

// Virtual converts raw input into a smoothed position.
type Virtual struct {
	opts  Options
	limit float64
	state State
	last  time.Time

	subs     []*subscription
	seq      int
	emitting bool
	pending  []*subscription
}

// NewVirtual creates a scroller resting at position 0.
func NewVirtual(opts Options) *Virtual {
	if opts.Rate <= 0 {
		opts.Rate = DefaultOptions().Rate
	}
	if opts.WheelMultiplier == 0 {
		opts.WheelMultiplier = 1
	}
	if opts.TouchMultiplier == 0 {
		opts.TouchMultiplier = 1
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultOptions().Epsilon
	}
	return &Virtual{opts: opts}
}

// State returns the last computed snapshot.
func (v *Virtual) State() State { return v.state }

// Position is the current virtual position.
func (v *Virtual) Position() float64 { return v.state.Virtual }

// Limit returns the maximum raw position.
func (v *Virtual) Limit() float64 { return v.limit }

// SetLimit changes the scrollable extent and clamps both positions into it.
func (v *Virtual) SetLimit(limit float64) {
	if limit < 0 {
		limit = 0
	}
	v.limit = limit
	v.state.Raw = v.clamp(v.state.Raw)
	v.state.Virtual = v.clamp(v.state.Virtual)
}

// SetSmooth toggles smoothing at runtime (reduced motion switches it off).
func (v *Virtual) SetSmooth(on bool) { v.opts.Smooth = on }

// Smooth reports whether smoothing is enabled.
func (v *Virtual) Smooth() bool { return v.opts.Smooth }

// AddWheel accumulates a wheel delta.
func (v *Virtual) AddWheel(delta float64) {
	v.state.Raw = v.clamp(v.state.Raw + delta*v.opts.WheelMultiplier)
}

// AddTouch accumulates a touch drag delta.
func (v *Virtual) AddTouch(delta float64) {
	v.state.Raw = v.clamp(v.state.Raw + delta*v.opts.TouchMultiplier)
}

// SetNative follows a native scroll offset.
func (v *Virtual) SetNative(pos float64) {
	v.state.Raw = v.clamp(pos)
}

// ScrollTo moves the target; immediate also moves the virtual position.
func (v *Virtual) ScrollTo(pos float64, immediate bool) {
	v.state.Raw = v.clamp(pos)
	if immediate {
		v.state.Virtual = v.state.Raw
		v.state.Velocity = 0
	}
}

func (v *Virtual) clamp(pos float64) float64 {
	if pos < 0 || math.IsNaN(pos) {
		return 0
	}
	if pos > v.limit {
		return v.limit
	}
	return pos
}

// Tick advances the smoothing to now and emits the new state.
func (v *Virtual) Tick(now time.Time) State {
	prev := v.state.Virtual
	dt := 0.0
	if !v.last.IsZero() && now.After(v.last) {
		elapsed := now.Sub(v.last)
		if v.opts.MaxDt > 0 && elapsed > v.opts.MaxDt {
			elapsed = v.opts.MaxDt
		}
		dt = elapsed.Seconds()
	}
	v.last = now

	switch {
	case !v.opts.Smooth:
		v.state.Virtual = v.state.Raw
	case dt > 0:
		gap := v.state.Raw - v.state.Virtual
		if math.Abs(gap) <= v.opts.Epsilon {
			v.state.Virtual = v.state.Raw
		} else {
			v.state.Virtual += gap * (1 - math.Exp(-v.opts.Rate*dt))
			if math.Abs(v.state.Raw-v.state.Virtual) <= v.opts.Epsilon {
				v.state.Virtual = v.state.Raw
			}
		}
	}

	if dt > 0 {
		v.state.Velocity = (v.state.Virtual - prev) / dt
	} else if v.state.Virtual == prev {
		v.state.Velocity = 0
	}
	v.state.Timestamp = now
	v.emit()
	return v.state
}

// Settled reports whether the virtual position has reached the target.
func (v *Virtual) Settled() bool { return v.state.Virtual == v.state.Raw }

// Subscribe registers l for phase. The returned func removes it.
// Subscriptions made while emitting apply from the next emit.
func (v *Virtual) Subscribe(phase Phase, l Listener) func() {
	v.seq++
	sub := &subscription{phase: phase, seq: v.seq, fn: l}
	if v.emitting {
		v.pending = append(v.pending, sub)
	} else {
		v.insert(sub)
	}
	return func() { sub.dead = true }
}

func (v *Virtual) insert(sub *subscription) {
	v.subs = append(v.subs, sub)
	sort.SliceStable(v.subs, func(i, j int) bool {
		if v.subs[i].phase != v.subs[j].phase {
			return v.subs[i].phase < v.subs[j].phase
		}
		return v.subs[i].seq < v.subs[j].seq
	})
}

func (v *Virtual) emit() {
	v.emitting = true
	state := v.state
	for _, sub := range v.subs {
		if !sub.dead {
			sub.fn(state)
		}
	}
	v.emitting = false

	live := v.subs[:0]
	for _, sub := range v.subs {
		if !sub.dead {
			live = append(live, sub)
		}
	}
	v.subs = live
	pending := v.pending
	v.pending = nil
	for _, sub := range pending {
		if !sub.dead {
			v.insert(sub)
		}
	}
}
