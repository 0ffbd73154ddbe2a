// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/manager.go
// Summary: Animator owning every running tween and counter for the page.
// Usage: Update is called once per frame by the render loop after triggers and pins.
// Notes: Disabled animators (reduced motion) land every tween on its end state at once.

package effects

import (
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/dom"
)

// Animator drives tweens and counters. It is owned by the loop goroutine.
type Animator struct {
	tweens   []*Tween
	counters *Timeline
	counted  map[*dom.Element]counter
	enabled  bool
	now      time.Time // last Update
	log      *zap.Logger
}

type counter struct {
	suffix string
}

// NewAnimator creates an enabled animator.
func NewAnimator(log *zap.Logger) *Animator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Animator{
		counters: NewTimeline(0),
		counted:  make(map[*dom.Element]counter),
		enabled:  true,
		log:      log,
	}
}

// SetEnabled toggles motion. Disabling finishes every running tween immediately;
// enabling restarts repeating tweens that were parked.
func (a *Animator) SetEnabled(enabled bool) {
	if a == nil || a.enabled == enabled {
		return
	}
	a.enabled = enabled
	for _, tw := range a.tweens {
		tw.instant = !enabled
		if tw.cancelled {
			continue
		}
		if enabled {
			if tw.looping && tw.dir == 0 {
				tw.pos = 0
				tw.anchorPos, tw.anchorTime, tw.dir = 0, a.now, 1
				tw.apply()
			}
			continue
		}
		switch {
		case tw.dir > 0:
			tw.pos, tw.dir = tw.total, 0
			tw.apply()
		case tw.dir < 0:
			tw.pos, tw.dir = 0, 0
			tw.apply()
		}
	}
	a.log.Debug("Animator: motion toggled", zap.Bool("enabled", enabled))
}

// Enabled reports whether tweens run over time.
func (a *Animator) Enabled() bool { return a != nil && a.enabled }

// Tween creates a paused tween over els and renders its From state.
// Detached or nil elements are skipped; nil is returned when none remain.
func (a *Animator) Tween(spec TweenSpec, els ...*dom.Element) *Tween {
	if a == nil {
		return nil
	}
	live := els[:0:0]
	for _, el := range els {
		if el != nil {
			live = append(live, el)
		}
	}
	tw := newTween(spec, live)
	if len(tw.targets) == 0 {
		a.log.Debug("Animator: tween has no attached targets")
		return nil
	}
	tw.instant = !a.enabled
	tw.apply()
	a.tweens = append(a.tweens, tw)
	return tw
}

// Release stops tracking tw; its targets keep their current style.
func (a *Animator) Release(tw *Tween) {
	if a == nil || tw == nil {
		return
	}
	for i, t := range a.tweens {
		if t == tw {
			a.tweens = append(a.tweens[:i], a.tweens[i+1:]...)
			return
		}
	}
}

// CountTo animates el's text from its current number to target.
func (a *Animator) CountTo(el *dom.Element, target float64, suffix string, d time.Duration, now time.Time) {
	if a == nil || el == nil || !el.Attached() {
		return
	}
	if !a.enabled {
		d = 0
	}
	a.counted[el] = counter{suffix: suffix}
	v := a.counters.AnimateTo(el, target, d, PowerOut(1), now)
	el.SetText(formatCount(v, suffix))
}

// Update advances every tween and counter to now.
func (a *Animator) Update(now time.Time) {
	if a == nil {
		return
	}
	a.now = now
	live := a.tweens[:0]
	for _, tw := range a.tweens {
		if !tw.prune() {
			a.log.Debug("Animator: tween cancelled, targets detached")
			continue
		}
		if tw.dir != 0 {
			tw.advance(now)
			tw.apply()
		}
		live = append(live, tw)
	}
	for i := len(live); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = live

	if len(a.counted) == 0 {
		return
	}
	a.counters.Update(now)
	for el, c := range a.counted {
		if !el.Attached() {
			a.counters.Forget(el)
			delete(a.counted, el)
			continue
		}
		el.SetText(formatCount(a.counters.Value(el), c.suffix))
		if !a.counters.Moving(el, now) {
			delete(a.counted, el)
		}
	}
}

// Active reports whether anything is still moving.
func (a *Animator) Active() bool {
	if a == nil {
		return false
	}
	for _, tw := range a.tweens {
		if tw.Running() {
			return true
		}
	}
	return len(a.counted) > 0
}

// Len counts tracked tweens.
func (a *Animator) Len() int {
	if a == nil {
		return 0
	}
	return len(a.tweens)
}

// Teardown cancels everything.
func (a *Animator) Teardown() {
	if a == nil {
		return
	}
	for _, tw := range a.tweens {
		tw.cancelled = true
		tw.dir = 0
	}
	a.tweens = nil
	a.counters.Clear()
	a.counted = make(map[*dom.Element]counter)
}

func formatCount(v float64, suffix string) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64) + suffix
}
