// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Keyed scalar tracks for number counters.
// Notes: Retargeting mid-flight starts from the value reached so far.

package effects

import "time"

// Timeline holds one scalar track per key.
type Timeline struct {
	tracks  map[any]*track
	initial float64
}

type track struct {
	from, to float64
	value    float64 // as of the last AnimateTo or Update
	start    time.Time
	dur      time.Duration
	ease     EasingFunc
}

// NewTimeline creates a timeline whose new keys start at initial.
func NewTimeline(initial float64) *Timeline {
	return &Timeline{tracks: make(map[any]*track), initial: initial}
}

// AnimateTo moves key toward target over d and returns its value at now.
// A non-positive d jumps straight to target.
func (tl *Timeline) AnimateTo(key any, target float64, d time.Duration, ease EasingFunc, now time.Time) float64 {
	tr, ok := tl.tracks[key]
	if ok {
		tr.value = tr.at(now)
	} else {
		tr = &track{value: tl.initial}
		tl.tracks[key] = tr
	}
	if ease == nil {
		ease = EaseSmoothstep
	}
	tr.from, tr.to, tr.start, tr.dur, tr.ease = tr.value, target, now, d, ease
	if d <= 0 {
		tr.value = target
	}
	return tr.value
}

// Value returns key's value as of the last Update.
func (tl *Timeline) Value(key any) float64 {
	if tr, ok := tl.tracks[key]; ok {
		return tr.value
	}
	return tl.initial
}

// Moving reports whether key has yet to reach its target at now.
func (tl *Timeline) Moving(key any, now time.Time) bool {
	tr, ok := tl.tracks[key]
	if !ok || tr.dur <= 0 {
		return false
	}
	return now.Sub(tr.start) < tr.dur && tr.value != tr.to
}

// Update recomputes every track at now.
func (tl *Timeline) Update(now time.Time) {
	for _, tr := range tl.tracks {
		tr.value = tr.at(now)
	}
}

// Forget drops key.
func (tl *Timeline) Forget(key any) { delete(tl.tracks, key) }

// Clear drops every key.
func (tl *Timeline) Clear() { tl.tracks = make(map[any]*track) }

func (tr *track) at(now time.Time) float64 {
	if tr.dur <= 0 {
		return tr.to
	}
	elapsed := now.Sub(tr.start)
	switch {
	case elapsed <= 0:
		return tr.from
	case elapsed >= tr.dur:
		return tr.to
	}
	return tr.from + (tr.to-tr.from)*tr.ease(float64(elapsed)/float64(tr.dur))
}
