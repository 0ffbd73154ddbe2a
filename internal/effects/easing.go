// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/easing.go
// Summary: Easing curves and name lookup for tweens and timelines.

package effects

import (
	"math"
	"strings"
)

// EasingFunc maps progress [0,1] to eased value [0,1].
type EasingFunc func(progress float64) float64

var (
	// EaseLinear - No easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - Smooth S-curve
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - Even smoother S-curve with zero derivatives at 0 and 1
	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	EaseInQuad  EasingFunc = func(t float64) float64 { return t * t }
	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2.0 - t) }

	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	EaseInCubic  EasingFunc = func(t float64) float64 { return t * t * t }
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}

	// EaseOutExpo is the smooth-scroll curve, clamped so it reaches 1.
	EaseOutExpo EasingFunc = func(t float64) float64 {
		return math.Min(1, 1.001-math.Pow(2, -10*t))
	}

	EaseInOutSine EasingFunc = func(t float64) float64 {
		return -(math.Cos(math.Pi*t) - 1) / 2
	}
)

// PowerOut is GSAP's powerN.out: 1-(1-t)^(N+1).
func PowerOut(n int) EasingFunc {
	exp := float64(n + 1)
	return func(t float64) float64 { return 1 - math.Pow(1-t, exp) }
}

// PowerInOut is GSAP's powerN.inOut.
func PowerInOut(n int) EasingFunc {
	exp := float64(n + 1)
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2*t, exp) / 2
		}
		return 1 - math.Pow(2*(1-t), exp)/2
	}
}

var easings = map[string]EasingFunc{
	"none":         EaseLinear,
	"linear":       EaseLinear,
	"smoothstep":   EaseSmoothstep,
	"smootherstep": EaseSmootherstep,
	"quad.in":      EaseInQuad,
	"quad.out":     EaseOutQuad,
	"quad.inout":   EaseInOutQuad,
	"cubic.in":     EaseInCubic,
	"cubic.out":    EaseOutCubic,
	"cubic.inout":  EaseInOutCubic,
	"power1.out":   PowerOut(1),
	"power2.out":   PowerOut(2),
	"power3.out":   PowerOut(3),
	"power4.out":   PowerOut(4),
	"power1.inout": PowerInOut(1),
	"power2.inout": PowerInOut(2),
	"power3.inout": PowerInOut(3),
	"expo.out":     EaseOutExpo,
	"sine.inout":   EaseInOutSine,
}

// LookupEasing resolves a GSAP-style ease name, case-insensitively.
func LookupEasing(name string) (EasingFunc, bool) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
