// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelpage/internal/dom"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return epoch.Add(d) }

func newElements(n int) (*dom.Document, []*dom.Element) {
	doc := dom.New(dom.Viewport{W: 80, H: 24})
	els := make([]*dom.Element, n)
	for i := range els {
		els[i] = doc.NewElement("", "span")
		doc.Root().Append(els[i])
	}
	return doc, els
}

func fade(d time.Duration) TweenSpec {
	return TweenSpec{
		From:     Props{Opacity: 0},
		To:       Props{Opacity: 1},
		Mask:     PropOpacity,
		Duration: d,
		Ease:     EaseLinear,
	}
}

func TestTweenRendersFromStateOnCreate(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	spec := fade(time.Second)
	spec.AutoAlpha = true
	tw := a.Tween(spec, els[0])
	require.NotNil(t, tw)
	assert.Equal(t, 0.0, els[0].Style().Opacity)
	assert.True(t, els[0].Style().Hidden)
	assert.False(t, tw.Running())
}

func TestPlayInterpolatesOverWallClock(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els[0])

	tw.Play(at(0))
	a.Update(at(500 * time.Millisecond))
	assert.InDelta(t, 0.5, els[0].Style().Opacity, 1e-9)
	assert.True(t, a.Active())

	a.Update(at(2 * time.Second))
	assert.Equal(t, 1.0, els[0].Style().Opacity)
	assert.False(t, tw.Running())
	assert.False(t, a.Active())
}

func TestReverseContinuesFromCurrentProgress(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els[0])

	tw.Play(at(0))
	a.Update(at(600 * time.Millisecond))
	tw.Reverse(at(600 * time.Millisecond))
	assert.True(t, tw.Reversed())

	a.Update(at(700 * time.Millisecond))
	assert.InDelta(t, 0.5, els[0].Style().Opacity, 1e-9, "reverse must not restart")

	tw.Play(at(700 * time.Millisecond))
	a.Update(at(800 * time.Millisecond))
	assert.InDelta(t, 0.6, els[0].Style().Opacity, 1e-9, "replay must not snap")

	tw.Reverse(at(800 * time.Millisecond))
	a.Update(at(5 * time.Second))
	assert.Equal(t, 0.0, els[0].Style().Opacity)
	assert.Equal(t, 0.0, tw.Progress())
}

func TestDelayAppliesToForwardPlayOnly(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	spec := fade(time.Second)
	spec.Delay = time.Second
	tw := a.Tween(spec, els[0])

	tw.Play(at(0))
	a.Update(at(500 * time.Millisecond))
	assert.Equal(t, 0.0, els[0].Style().Opacity)
	a.Update(at(1500 * time.Millisecond))
	assert.InDelta(t, 0.5, els[0].Style().Opacity, 1e-9)

	tw.Reverse(at(1500 * time.Millisecond))
	a.Update(at(1750 * time.Millisecond))
	assert.InDelta(t, 0.25, els[0].Style().Opacity, 1e-9)
}

func TestStaggerKeepsTotalDurationBounded(t *testing.T) {
	for _, n := range []int{2, 5, 50} {
		_, els := newElements(n)
		a := NewAnimator(nil)
		spec := fade(800 * time.Millisecond)
		spec.Stagger = 400 * time.Millisecond
		tw := a.Tween(spec, els...)
		assert.Equal(t, 1200*time.Millisecond, tw.Total(), "n=%d", n)

		tw.Play(at(0))
		a.Update(at(400 * time.Millisecond))
		assert.InDelta(t, 0.5, els[0].Style().Opacity, 1e-9)
		assert.InDelta(t, 0.0, els[n-1].Style().Opacity, 1e-9)

		a.Update(at(1200 * time.Millisecond))
		for i, el := range els {
			assert.InDelta(t, 1.0, el.Style().Opacity, 1e-9, "n=%d i=%d", n, i)
		}
	}
}

func TestDetachedTargetsCancelSilently(t *testing.T) {
	doc, els := newElements(2)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els...)
	tw.Play(at(0))

	doc.Remove(els[0])
	a.Update(at(100 * time.Millisecond))
	assert.Equal(t, 1, tw.Targets())
	assert.False(t, tw.Cancelled())

	doc.Remove(els[1])
	a.Update(at(200 * time.Millisecond))
	assert.True(t, tw.Cancelled())
	assert.Equal(t, 0, a.Len())

	tw.Play(at(300 * time.Millisecond))
	assert.False(t, tw.Running())
}

func TestTweenWithoutAttachedTargetsIsNil(t *testing.T) {
	doc := dom.New(dom.Viewport{W: 80, H: 24})
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), nil, doc.NewElement("ghost", "div"))
	assert.Nil(t, tw)
	tw.Play(at(0))
	tw.Reverse(at(0))
	assert.Equal(t, 0, a.Len())
}

func TestDisabledAnimatorLandsOnEndStates(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	a.SetEnabled(false)
	tw := a.Tween(fade(time.Second), els[0])

	tw.Play(at(0))
	assert.Equal(t, 1.0, els[0].Style().Opacity)
	assert.False(t, a.Active())

	tw.Reverse(at(0))
	assert.Equal(t, 0.0, els[0].Style().Opacity)
}

func TestDisablingFinishesRunningTweens(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els[0])
	tw.Play(at(0))
	a.Update(at(100 * time.Millisecond))

	a.SetEnabled(false)
	assert.Equal(t, 1.0, els[0].Style().Opacity)
	assert.False(t, tw.Running())
}

func TestPlayStartedInSameFrameKeepsRunning(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els[0])

	tw.Play(at(0))
	a.Update(at(0))
	assert.True(t, tw.Running(), "zero elapsed is not the end of a forward run")
	assert.Equal(t, 0.0, tw.Progress())

	a.Update(at(400 * time.Millisecond))
	assert.True(t, tw.Running())
	assert.InDelta(t, 0.4, tw.Progress(), 1e-9)
	assert.InDelta(t, 0.4, els[0].Style().Opacity, 1e-9)
}

func TestReverseStartedInSameFrameKeepsRunning(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els[0])
	tw.Seek(1)

	tw.Reverse(at(0))
	a.Update(at(0))
	assert.True(t, tw.Running())
	assert.True(t, tw.Reversed())

	a.Update(at(300 * time.Millisecond))
	assert.InDelta(t, 0.7, tw.Progress(), 1e-9)
	a.Update(at(2 * time.Second))
	assert.Equal(t, 0.0, tw.Progress())
	assert.False(t, tw.Running())
}

func TestReenablingRestartsRepeatingTweens(t *testing.T) {
	_, els := newElements(2)
	a := NewAnimator(nil)
	float := a.Tween(TweenSpec{
		To:       Props{Y: -4},
		Mask:     PropY,
		Duration: time.Second,
		Ease:     EaseLinear,
		Repeat:   -1,
		Yoyo:     true,
	}, els[0])
	once := a.Tween(fade(time.Second), els[1])
	float.Play(at(0))
	once.Play(at(0))
	a.Update(at(500 * time.Millisecond))

	a.SetEnabled(false)
	assert.False(t, float.Running())
	assert.Equal(t, -4.0, els[0].Style().Y)

	a.SetEnabled(true)
	assert.True(t, float.Running())
	assert.False(t, once.Running(), "finished one-shot tweens stay put")
	a.Update(at(750 * time.Millisecond))
	assert.InDelta(t, -1, els[0].Style().Y, 1e-9)
	a.Update(at(2750 * time.Millisecond))
	assert.True(t, float.Running())
}

func TestRepeatingTweenPlayedWithoutMotionStartsOnEnable(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	a.SetEnabled(false)
	spec := fade(time.Second)
	spec.Repeat = -1
	tw := a.Tween(spec, els[0])
	tw.Play(at(0))
	assert.False(t, tw.Running())

	a.SetEnabled(true)
	a.Update(at(5 * time.Second))
	a.Update(at(5250 * time.Millisecond))
	assert.True(t, tw.Running())
	assert.InDelta(t, 0.25, els[0].Style().Opacity, 1e-9)
}

func TestYoyoRepeatsForever(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(TweenSpec{
		To:       Props{Y: -4},
		Mask:     PropY,
		Duration: time.Second,
		Ease:     EaseLinear,
		Repeat:   -1,
		Yoyo:     true,
	}, els[0])
	tw.Play(at(0))

	a.Update(at(250 * time.Millisecond))
	assert.InDelta(t, -1, els[0].Style().Y, 1e-9)
	a.Update(at(1250 * time.Millisecond))
	assert.InDelta(t, -3, els[0].Style().Y, 1e-9)
	a.Update(at(10250 * time.Millisecond))
	assert.InDelta(t, -1, els[0].Style().Y, 1e-9)
	assert.True(t, tw.Running())
}

func TestFiniteRepeatStops(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	spec := fade(time.Second)
	spec.Repeat = 1
	tw := a.Tween(spec, els[0])
	tw.Play(at(0))

	a.Update(at(1500 * time.Millisecond))
	assert.InDelta(t, 0.5, els[0].Style().Opacity, 1e-9)
	a.Update(at(3 * time.Second))
	assert.Equal(t, 1.0, els[0].Style().Opacity)
	assert.False(t, tw.Running())
}

func TestSeekParksPlayhead(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els[0])
	tw.Seek(0.25)
	assert.InDelta(t, 0.25, els[0].Style().Opacity, 1e-9)
	assert.False(t, tw.Running())
}

func TestCountTo(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	a.CountTo(els[0], 150, "+", time.Second, at(0))
	assert.Equal(t, "0+", els[0].Text())

	a.Update(at(500 * time.Millisecond))
	assert.NotEqual(t, "0+", els[0].Text())
	assert.True(t, a.Active())

	a.Update(at(time.Second))
	assert.Equal(t, "150+", els[0].Text())
	assert.False(t, a.Active())
}

func TestCountToWithoutMotionIsImmediate(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	a.SetEnabled(false)
	a.CountTo(els[0], 98, "%", time.Second, at(0))
	assert.Equal(t, "98%", els[0].Text())
}

func TestTeardownCancelsEverything(t *testing.T) {
	_, els := newElements(1)
	a := NewAnimator(nil)
	tw := a.Tween(fade(time.Second), els[0])
	tw.Play(at(0))
	a.Teardown()
	assert.True(t, tw.Cancelled())
	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Active())
}
