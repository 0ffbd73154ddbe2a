// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/pin/pin.go
// Summary: Pins a container while vertical scroll drives its track sideways.
// Usage: Refresh on layout changes; Apply is subscribed in scroll.PhasePins.
// Notes: A refresh swaps the whole Range in one assignment, so no frame mixes layouts.

package pin

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/scroll"
)

// DefaultMargin is the extra travel added past the track's last card.
const DefaultMargin = 100

// Range is the scroll region during which the container stays pinned.
type Range struct {
	ScrollDistance float64
	PinStart       float64
	PinEnd         float64
	Generation     uint64
}

// Contains reports whether pos is inside the pinned region.
func (r Range) Contains(pos float64) bool {
	return r.ScrollDistance > 0 && pos >= r.PinStart && pos <= r.PinEnd
}

// ScrollDistance is max(0, track-viewport)+margin, or 0 when the track already fits.
func ScrollDistance(trackWidth, viewportWidth, margin float64) float64 {
	if trackWidth <= 0 || viewportWidth <= 0 || trackWidth <= viewportWidth {
		return 0
	}
	return math.Max(0, trackWidth-viewportWidth+margin)
}

// Controller owns one container/track pair.
type Controller struct {
	container *dom.Element
	track     *dom.Element
	margin    float64
	scrub     time.Duration

	rng     Range
	x       float64
	last    time.Time
	settled bool
	log     *zap.Logger
}

// New binds a controller. Missing elements yield (nil, false).
func New(container, track *dom.Element, margin float64, log *zap.Logger) (*Controller, bool) {
	if log == nil {
		log = zap.NewNop()
	}
	if !container.Attached() || !track.Attached() {
		log.Debug("Pin: container or track missing, skipping")
		return nil, false
	}
	return &Controller{container: container, track: track, margin: margin, log: log}, true
}

// SetScrub sets how long the track takes to catch up with the scroll; 0 locks it.
func (c *Controller) SetScrub(d time.Duration) {
	if c == nil {
		return
	}
	c.scrub = d
}

// Range returns the active pin region.
func (c *Controller) Range() Range {
	if c == nil {
		return Range{}
	}
	return c.rng
}

// Height is the container height that Refresh will assign for vp.
func (c *Controller) Height(vp dom.Viewport) float64 {
	if c == nil {
		return 0
	}
	return ScrollDistance(c.track.ScrollWidth(), vp.W, c.margin) + vp.H
}

// Refresh discards the previous region and computes a new one from current geometry.
func (c *Controller) Refresh(vp dom.Viewport) Range {
	if c == nil {
		return Range{}
	}
	if !c.container.Attached() || !c.track.Attached() {
		c.rng = Range{Generation: c.rng.Generation + 1}
		return c.rng
	}
	dist := ScrollDistance(c.track.ScrollWidth(), vp.W, c.margin)
	b := c.container.Bounds()
	b.H = dist + vp.H
	c.container.SetBounds(b)

	c.rng = Range{
		ScrollDistance: dist,
		PinStart:       b.Y,
		PinEnd:         b.Y + dist,
		Generation:     c.rng.Generation + 1,
	}
	c.settled = false
	if dist == 0 {
		c.log.Debug("Pin: track fits viewport, pin disabled",
			zap.String("container", c.container.ID()),
			zap.Float64("track_width", c.track.ScrollWidth()),
			zap.Float64("viewport_width", vp.W))
	}
	return c.rng
}

// Translation is the track's horizontal offset for pos.
func (c *Controller) Translation(pos float64) float64 {
	if c == nil {
		return 0
	}
	return translation(c.rng, pos)
}

func translation(r Range, pos float64) float64 {
	if r.ScrollDistance <= 0 || r.PinEnd <= r.PinStart {
		return 0
	}
	switch {
	case pos <= r.PinStart:
		return 0
	case pos >= r.PinEnd:
		return -r.ScrollDistance
	}
	t := -r.ScrollDistance * (pos - r.PinStart) / (r.PinEnd - r.PinStart)
	return math.Max(-r.ScrollDistance, math.Min(0, t))
}

// pinOffset keeps the container's top at the viewport top while pinned.
func pinOffset(r Range, pos float64) float64 {
	if r.ScrollDistance <= 0 {
		return 0
	}
	return math.Max(0, math.Min(pos, r.PinEnd)-r.PinStart)
}

// Apply writes the track translation and the container's pin state for st.
func (c *Controller) Apply(st scroll.State) {
	if c == nil || !c.container.Attached() || !c.track.Attached() {
		return
	}
	r := c.rng
	pos := st.Virtual
	target := translation(r, pos)

	if c.scrub <= 0 || !c.settled || c.last.IsZero() {
		c.x = target
	} else if dt := st.Timestamp.Sub(c.last).Seconds(); dt > 0 {
		c.x += (target - c.x) * (1 - math.Exp(-dt/c.scrub.Seconds()))
		if math.Abs(target-c.x) < 0.01 {
			c.x = target
		}
	}
	c.last = st.Timestamp
	c.settled = true

	x := c.x
	c.track.UpdateStyle(func(s *dom.Style) { s.X = x })
	pinned := r.Contains(pos)
	off := pinOffset(r, pos)
	c.container.UpdateStyle(func(s *dom.Style) {
		s.Pinned = pinned
		s.PinOffset = off
	})
}

// Listener adapts Apply for scroll subscriptions.
func (c *Controller) Listener() scroll.Listener { return c.Apply }

// Pinned reports whether the container is currently held.
func (c *Controller) Pinned() bool {
	return c != nil && c.container.Style().Pinned
}

// Teardown releases the container and resets the track.
func (c *Controller) Teardown() {
	if c == nil {
		return
	}
	c.track.UpdateStyle(func(s *dom.Style) { s.X = 0 })
	c.container.UpdateStyle(func(s *dom.Style) {
		s.Pinned = false
		s.PinOffset = 0
	})
	c.rng = Range{Generation: c.rng.Generation + 1}
	c.x = 0
	c.last = time.Time{}
}
