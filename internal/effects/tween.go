// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/tween.go
// Summary: Reversible style tweens with staggered targets.
// Usage: Created through Animator.Tween; triggers call Play and Reverse.
// Notes: A tween is a playhead over [0, total]; Reverse runs it back from where it is.

package effects

import (
	"math"
	"time"

	"github.com/framegrace/texelpage/internal/dom"
)

// Prop selects which style fields a tween writes.
type Prop uint8

const (
	PropOpacity Prop = 1 << iota
	PropX
	PropY
	PropClipRight
)

// Props is a partial style.
type Props struct {
	Opacity   float64
	X, Y      float64
	ClipRight float64
}

// TweenSpec declares one animation.
type TweenSpec struct {
	From, To  Props
	Mask      Prop
	Duration  time.Duration
	Delay     time.Duration // forward play only
	Ease      EasingFunc
	Stagger   time.Duration // total spread of start offsets across targets
	AutoAlpha bool          // hide targets while opacity is zero
	Repeat    int           // extra cycles, -1 forever
	Yoyo      bool
}

type tweenTarget struct {
	el     *dom.Element
	offset float64
}

// Tween animates its targets between From and To.
type Tween struct {
	spec       TweenSpec
	targets    []tweenTarget
	dur        float64
	total      float64
	pos        float64
	dir        int
	anchorPos  float64
	anchorTime time.Time
	cancelled  bool
	instant    bool
	looping    bool // played with Repeat and not yet finished
}

func newTween(spec TweenSpec, els []*dom.Element) *Tween {
	if spec.Ease == nil {
		spec.Ease = EaseLinear
	}
	tw := &Tween{spec: spec, dur: spec.Duration.Seconds()}
	n := 0
	for _, el := range els {
		if el.Attached() {
			n++
		}
	}
	step := 0.0
	if n > 1 {
		step = spec.Stagger.Seconds() / float64(n-1)
	}
	i := 0
	for _, el := range els {
		if !el.Attached() {
			continue
		}
		tw.targets = append(tw.targets, tweenTarget{el: el, offset: float64(i) * step})
		i++
	}
	if n > 1 {
		tw.total = spec.Stagger.Seconds() + tw.dur
	} else {
		tw.total = tw.dur
	}
	return tw
}

// Targets returns the number of live targets.
func (tw *Tween) Targets() int {
	if tw == nil {
		return 0
	}
	return len(tw.targets)
}

// Total is the full timeline length including stagger.
func (tw *Tween) Total() time.Duration {
	if tw == nil {
		return 0
	}
	return time.Duration(tw.total * float64(time.Second))
}

// Progress is the playhead as a fraction of Total.
func (tw *Tween) Progress() float64 {
	if tw == nil || tw.total <= 0 {
		if tw != nil && tw.pos > 0 {
			return 1
		}
		return 0
	}
	return tw.pos / tw.total
}

// Running reports whether the playhead is moving.
func (tw *Tween) Running() bool { return tw != nil && !tw.cancelled && tw.dir != 0 }

// Reversed reports whether the playhead is running backward.
func (tw *Tween) Reversed() bool { return tw != nil && tw.dir < 0 }

// Cancelled reports whether the tween lost every target.
func (tw *Tween) Cancelled() bool { return tw != nil && tw.cancelled }

// Play runs forward from the current playhead.
func (tw *Tween) Play(now time.Time) {
	if tw == nil || tw.cancelled {
		return
	}
	tw.advance(now)
	tw.looping = tw.spec.Repeat != 0
	if tw.instant {
		tw.pos, tw.dir = tw.total, 0
		tw.apply()
		return
	}
	start := now
	if tw.pos == 0 {
		start = now.Add(tw.spec.Delay)
	}
	tw.anchorPos, tw.anchorTime, tw.dir = tw.pos, start, 1
}

// Reverse runs backward from the current playhead.
func (tw *Tween) Reverse(now time.Time) {
	if tw == nil || tw.cancelled {
		return
	}
	tw.advance(now)
	tw.looping = false
	if tw.instant {
		tw.pos, tw.dir = 0, 0
		tw.apply()
		return
	}
	tw.anchorPos, tw.anchorTime, tw.dir = tw.pos, now, -1
}

// Seek parks the playhead at fraction p without running.
func (tw *Tween) Seek(p float64) {
	if tw == nil || tw.cancelled {
		return
	}
	tw.pos, tw.dir, tw.looping = clamp01(p)*tw.total, 0, false
	tw.apply()
}

func (tw *Tween) advance(now time.Time) {
	if tw.dir == 0 {
		return
	}
	if tw.anchorTime.IsZero() {
		tw.anchorTime = now
	}
	if now.Before(tw.anchorTime) {
		tw.pos = tw.anchorPos
		return
	}
	elapsed := now.Sub(tw.anchorTime).Seconds()
	if tw.spec.Repeat != 0 && tw.dir > 0 {
		tw.advanceRepeating(elapsed)
		return
	}
	pos := tw.anchorPos + float64(tw.dir)*elapsed
	// Only the boundary the playhead is heading for ends the run.
	switch {
	case tw.dir > 0 && pos >= tw.total:
		tw.pos, tw.dir = tw.total, 0
	case tw.dir < 0 && pos <= 0:
		tw.pos, tw.dir = 0, 0
	default:
		tw.pos = math.Max(0, math.Min(tw.total, pos))
	}
}

func (tw *Tween) advanceRepeating(elapsed float64) {
	if tw.total <= 0 {
		tw.pos, tw.dir, tw.looping = tw.total, 0, false
		return
	}
	t := tw.anchorPos + elapsed
	cycle := math.Floor(t / tw.total)
	if tw.spec.Repeat > 0 && cycle > float64(tw.spec.Repeat) {
		tw.pos, tw.dir, tw.looping = tw.total, 0, false
		if tw.spec.Yoyo && tw.spec.Repeat%2 == 1 {
			tw.pos = 0
		}
		return
	}
	local := t - cycle*tw.total
	if tw.spec.Yoyo && int(cycle)%2 == 1 {
		local = tw.total - local
	}
	tw.pos = local
}

// prune drops detached targets; false means nothing is left to animate.
func (tw *Tween) prune() bool {
	live := tw.targets[:0]
	for _, t := range tw.targets {
		if t.el.Attached() {
			live = append(live, t)
		}
	}
	tw.targets = live
	if len(live) == 0 {
		tw.cancelled = true
		tw.dir = 0
		return false
	}
	return true
}

func (tw *Tween) apply() {
	for _, t := range tw.targets {
		local := 1.0
		if tw.dur > 0 {
			local = clamp01((tw.pos - t.offset) / tw.dur)
		} else if tw.pos <= t.offset && tw.pos < tw.total {
			local = 0
		}
		e := tw.spec.Ease(local)
		spec := tw.spec
		t.el.UpdateStyle(func(s *dom.Style) {
			if spec.Mask&PropOpacity != 0 {
				s.Opacity = lerp(spec.From.Opacity, spec.To.Opacity, e)
				if spec.AutoAlpha {
					s.Hidden = s.Opacity <= 0
				}
			}
			if spec.Mask&PropX != 0 {
				s.X = lerp(spec.From.X, spec.To.X, e)
			}
			if spec.Mask&PropY != 0 {
				s.Y = lerp(spec.From.Y, spec.To.Y, e)
			}
			if spec.Mask&PropClipRight != 0 {
				s.ClipRight = lerp(spec.From.ClipRight, spec.To.ClipRight, e)
			}
		})
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
