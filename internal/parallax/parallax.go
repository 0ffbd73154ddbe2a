// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/parallax/parallax.go
// Summary: Pointer-driven hero parallax on damped springs.
// Usage: PointerMove/PointerLeave from input; Update once per frame as a loop animator.
// Notes: Layers drift opposite to the pointer, by a percentage of their own size.

package parallax

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/dom"
)

const (
	DefaultFrequency = 6.0
	DefaultDamping   = 1.0

	maxStep = 100 * time.Millisecond
	rest    = 0.01
)

type layer struct {
	el       *dom.Element
	kx, ky   float64 // percent of element size per unit of pointer offset
	x, y     float64
	vx, vy   float64
	tx, ty   float64
	stepping bool
}

// Parallax moves layers inside region against the pointer.
type Parallax struct {
	region    *dom.Element
	layers    []*layer
	frequency float64
	damping   float64
	enabled   bool
	last      time.Time
	log       *zap.Logger
}

// New binds a parallax region. A missing region yields an inert Parallax.
func New(region *dom.Element, log *zap.Logger) *Parallax {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parallax{
		region:    region,
		frequency: DefaultFrequency,
		damping:   DefaultDamping,
		enabled:   true,
		log:       log,
	}
}

// SetSpring tunes angular frequency and damping ratio.
func (p *Parallax) SetSpring(frequency, damping float64) {
	if frequency > 0 {
		p.frequency = frequency
	}
	if damping > 0 {
		p.damping = damping
	}
}

// SetEnabled turns motion off; disabled layers snap back to rest.
func (p *Parallax) SetEnabled(on bool) {
	p.enabled = on
	if on {
		return
	}
	for _, l := range p.layers {
		l.x, l.y, l.vx, l.vy, l.tx, l.ty = 0, 0, 0, 0, 0, 0
		l.write()
	}
}

// AddLayer registers el with its strength as percent of its own width/height.
func (p *Parallax) AddLayer(el *dom.Element, kx, ky float64) bool {
	if !el.Attached() || !p.region.Attached() {
		p.log.Debug("Parallax: layer or region missing")
		return false
	}
	p.layers = append(p.layers, &layer{el: el, kx: kx, ky: ky})
	return true
}

// Len is the number of layers.
func (p *Parallax) Len() int { return len(p.layers) }

// PointerMove retargets every layer for a pointer at viewport (x, y).
func (p *Parallax) PointerMove(x, y, pos float64) {
	if !p.enabled || !p.region.Attached() {
		return
	}
	r := p.region.ViewportRect(pos)
	if r.W <= 0 || r.H <= 0 || !r.Contains(x, y) {
		return
	}
	mx := (x-r.X)/r.W - 0.5
	my := (y-r.Y)/r.H - 0.5
	for _, l := range p.layers {
		b := l.el.Bounds()
		l.tx = -mx * l.kx / 100 * b.W
		l.ty = -my * l.ky / 100 * b.H
		l.stepping = true
	}
}

// PointerLeave sends every layer back to rest.
func (p *Parallax) PointerLeave() {
	for _, l := range p.layers {
		l.tx, l.ty = 0, 0
		l.stepping = true
	}
}

// Update advances the springs to now.
func (p *Parallax) Update(now time.Time) {
	if p == nil {
		return
	}
	dt := time.Duration(0)
	if !p.last.IsZero() && now.After(p.last) {
		dt = now.Sub(p.last)
	}
	p.last = now
	if dt <= 0 || !p.enabled {
		return
	}
	if dt > maxStep {
		dt = maxStep
	}
	spring := harmonica.NewSpring(dt.Seconds(), p.frequency, p.damping)
	for _, l := range p.layers {
		if !l.stepping {
			continue
		}
		if !l.el.Attached() {
			l.stepping = false
			continue
		}
		l.x, l.vx = spring.Update(l.x, l.vx, l.tx)
		l.y, l.vy = spring.Update(l.y, l.vy, l.ty)
		if math.Abs(l.x-l.tx) < rest && math.Abs(l.y-l.ty) < rest &&
			math.Abs(l.vx) < rest && math.Abs(l.vy) < rest {
			l.x, l.y, l.vx, l.vy = l.tx, l.ty, 0, 0
			l.stepping = false
		}
		l.write()
	}
}

func (l *layer) write() {
	x, y := l.x, l.y
	l.el.UpdateStyle(func(s *dom.Style) {
		s.DX = x
		s.DY = y
	})
}

// Active reports whether any layer is still moving.
func (p *Parallax) Active() bool {
	for _, l := range p.layers {
		if l.stepping {
			return true
		}
	}
	return false
}
