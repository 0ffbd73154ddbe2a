// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/carousel/carousel.go
// Summary: Circular testimonial carousel driven by timer, buttons, swipes, clicks and keys.
// Usage: Every input funnels into GoTo, which reclassifies every card and dot.
// Notes: With two cards the "right" role wins and hidden roles never occur.

package carousel

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/loop"
)

const (
	DefaultInterval       = 5000 * time.Millisecond
	DefaultSwipeThreshold = 50
)

// Role is a card's position relative to the current index.
type Role int

const (
	RoleCenter Role = iota
	RoleRight
	RoleLeft
	RoleHiddenRight
	RoleHiddenLeft
)

var roleClasses = [...]string{
	RoleCenter:      "center",
	RoleRight:       "right",
	RoleLeft:        "left",
	RoleHiddenRight: "hidden-right",
	RoleHiddenLeft:  "hidden-left",
}

// String returns the CSS-style class carried by cards in this role.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleClasses) {
		return "unknown"
	}
	return roleClasses[r]
}

// Classify maps a circular distance to a role. delta may be negative or
// larger than n; it is reduced mod n first.
func Classify(delta, n int) Role {
	if n <= 0 {
		return RoleCenter
	}
	d := ((delta % n) + n) % n
	switch {
	case d == 0:
		return RoleCenter
	case d == 1:
		return RoleRight
	case d == n-1:
		return RoleLeft
	case float64(d) <= float64(n)/2:
		return RoleHiddenRight
	default:
		return RoleHiddenLeft
	}
}

// Key is a navigation key.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
)

// Timers schedules the auto-advance. *loop.Scheduler satisfies it.
type Timers interface {
	Every(d time.Duration, fn func()) *loop.Task
}

// Options tunes input handling.
type Options struct {
	Interval       time.Duration
	SwipeThreshold float64
}

// DefaultOptions returns the 5s interval and 50-unit swipe threshold.
func DefaultOptions() Options {
	return Options{Interval: DefaultInterval, SwipeThreshold: DefaultSwipeThreshold}
}

// Carousel owns the current index and its auto-advance task.
type Carousel struct {
	region *dom.Element
	cards  []*dom.Element
	dots   []*dom.Element
	index  int
	roles  []Role

	opts     Options
	timers   Timers
	task     *loop.Task
	running  bool
	hovering bool

	listeners []func(index int)
	log       *zap.Logger
}

// New binds a carousel. Nil or detached cards and dots are dropped.
func New(region *dom.Element, cards, dots []*dom.Element, timers Timers, opts Options, log *zap.Logger) *Carousel {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.SwipeThreshold <= 0 {
		opts.SwipeThreshold = DefaultSwipeThreshold
	}
	c := &Carousel{
		region: region,
		cards:  attached(cards),
		dots:   attached(dots),
		opts:   opts,
		timers: timers,
		log:    log,
	}
	c.roles = make([]Role, len(c.cards))
	if len(c.cards) == 0 {
		log.Debug("Carousel: no cards bound")
	}
	c.render()
	return c
}

func attached(els []*dom.Element) []*dom.Element {
	out := make([]*dom.Element, 0, len(els))
	for _, el := range els {
		if el.Attached() {
			out = append(out, el)
		}
	}
	return out
}

// Len is the number of cards.
func (c *Carousel) Len() int { return len(c.cards) }

// Index is the current center card.
func (c *Carousel) Index() int { return c.index }

// Role returns card i's current role.
func (c *Carousel) Role(i int) Role {
	if i < 0 || i >= len(c.roles) {
		return RoleHiddenLeft
	}
	return c.roles[i]
}

// OnChange registers fn to run after every transition.
func (c *Carousel) OnChange(fn func(index int)) {
	c.listeners = append(c.listeners, fn)
}

// Next moves one card forward.
func (c *Carousel) Next() { c.GoTo(c.index + 1) }

// Prev moves one card back.
func (c *Carousel) Prev() { c.GoTo(c.index - 1) }

// GoTo makes card i (mod N) the center.
func (c *Carousel) GoTo(i int) {
	n := len(c.cards)
	if n == 0 {
		return
	}
	c.index = ((i % n) + n) % n
	c.render()
	for _, fn := range c.listeners {
		fn(c.index)
	}
}

func (c *Carousel) render() {
	n := len(c.cards)
	for i, card := range c.cards {
		role := Classify(i-c.index, n)
		c.roles[i] = role
		for _, r := range roleClasses {
			card.RemoveClass(r)
		}
		card.AddClass(role.String())
	}
	for i, dot := range c.dots {
		dot.ToggleClass("active", i == c.index)
	}
}

// Start (re)arms auto-advance, always cancelling the previous handle first.
func (c *Carousel) Start() {
	c.running = true
	c.arm()
}

func (c *Carousel) arm() {
	c.task.Cancel()
	c.task = nil
	if c.timers == nil || len(c.cards) < 2 || c.hovering {
		return
	}
	c.task = c.timers.Every(c.opts.Interval, c.Next)
}

// Stop cancels auto-advance.
func (c *Carousel) Stop() {
	c.running = false
	c.task.Cancel()
	c.task = nil
}

// AutoAdvancing reports whether a timer is armed.
func (c *Carousel) AutoAdvancing() bool { return c.task.Active() }

// PointerEnter pauses auto-advance while the pointer is over the carousel.
func (c *Carousel) PointerEnter() {
	if c.hovering {
		return
	}
	c.hovering = true
	c.task.Cancel()
	c.task = nil
}

// PointerLeave resumes auto-advance if it was started.
func (c *Carousel) PointerLeave() {
	if !c.hovering {
		return
	}
	c.hovering = false
	if c.running {
		c.arm()
	}
}

// Hovering reports whether the pointer is over the carousel.
func (c *Carousel) Hovering() bool { return c.hovering }

// Swipe resolves a horizontal drag; it reports whether a transition fired.
func (c *Carousel) Swipe(startX, endX float64) bool {
	diff := startX - endX
	if math.Abs(diff) <= c.opts.SwipeThreshold {
		return false
	}
	if diff > 0 {
		c.Next()
	} else {
		c.Prev()
	}
	return true
}

// Click navigates when card i is an adjacent card.
func (c *Carousel) Click(i int) bool {
	switch c.Role(i) {
	case RoleLeft:
		c.Prev()
	case RoleRight:
		c.Next()
	default:
		return false
	}
	return true
}

// CardAt returns the card under a viewport point at scroll position pos.
func (c *Carousel) CardAt(x, y, pos float64) (int, bool) {
	for i, card := range c.cards {
		if card.Style().Hidden {
			continue
		}
		if card.ScreenRect(pos).Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// Visible reports whether the carousel region intersects the viewport.
func (c *Carousel) Visible(pos float64, vp dom.Viewport) bool {
	if !c.region.Attached() || vp.Empty() {
		return false
	}
	return c.region.ScreenRect(pos).Intersects(dom.Rect{W: vp.W, H: vp.H})
}

// Key handles arrow keys, only while the carousel is on screen.
func (c *Carousel) Key(k Key, pos float64, vp dom.Viewport) bool {
	if len(c.cards) == 0 || !c.Visible(pos, vp) {
		return false
	}
	switch k {
	case KeyLeft:
		c.Prev()
	case KeyRight:
		c.Next()
	default:
		return false
	}
	return true
}

// Teardown cancels the timer and drops listeners.
func (c *Carousel) Teardown() {
	c.Stop()
	c.listeners = nil
}
