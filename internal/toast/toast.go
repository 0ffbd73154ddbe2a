// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/toast/toast.go
// Summary: Rotating social-proof toast shown on a fixed cadence.
// Usage: Start after the page is built; Close is wired to the toast's close control.
// Notes: Every timer is an owned loop task, so Close cancels all of them at once.

package toast

import (
	"time"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/loop"
)

// Timers is the subset of the loop scheduler the toast needs.
type Timers interface {
	After(d time.Duration, fn func()) *loop.Task
	Every(d time.Duration, fn func()) *loop.Task
}

// Options sets the cadence.
type Options struct {
	FirstDelay time.Duration
	Interval   time.Duration
	Visible    time.Duration
}

// DefaultOptions shows the first message after 5s, then every 12s, each for 5s.
func DefaultOptions() Options {
	return Options{FirstDelay: 5 * time.Second, Interval: 12 * time.Second, Visible: 5 * time.Second}
}

// Toast cycles messages through a text element and toggles "show" on its box.
type Toast struct {
	box      *dom.Element
	text     *dom.Element
	messages []string
	index    int
	opts     Options
	timers   Timers

	first    *loop.Task
	interval *loop.Task
	hide     *loop.Task
	log      *zap.Logger
}

// New binds a toast; it is inert without a box, a text element or messages.
func New(box, text *dom.Element, messages []string, timers Timers, opts Options, log *zap.Logger) *Toast {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.FirstDelay <= 0 {
		opts.FirstDelay = def.FirstDelay
	}
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.Visible <= 0 {
		opts.Visible = def.Visible
	}
	return &Toast{box: box, text: text, messages: messages, opts: opts, timers: timers, log: log}
}

func (t *Toast) usable() bool {
	return t.box.Attached() && t.text.Attached() && len(t.messages) > 0 && t.timers != nil
}

// Start schedules the first message and the repeating cadence after it.
func (t *Toast) Start() {
	t.Close()
	if !t.usable() {
		t.log.Debug("Toast: missing elements or messages, not starting")
		return
	}
	t.first = t.timers.After(t.opts.FirstDelay, func() {
		t.show()
		t.interval = t.timers.Every(t.opts.Interval, t.show)
	})
}

func (t *Toast) show() {
	if !t.usable() {
		t.Close()
		return
	}
	t.text.SetText(t.messages[t.index])
	t.box.AddClass("show")
	t.hide.Cancel()
	t.hide = t.timers.After(t.opts.Visible, func() {
		t.box.RemoveClass("show")
		t.index = (t.index + 1) % len(t.messages)
	})
}

// Visible reports whether a message is showing.
func (t *Toast) Visible() bool { return t.box.Attached() && t.box.HasClass("show") }

// Message is the text currently bound to the toast.
func (t *Toast) Message() string {
	if !t.text.Attached() {
		return ""
	}
	return t.text.Text()
}

// Close hides the toast and stops the cadence.
func (t *Toast) Close() {
	t.first.Cancel()
	t.interval.Cancel()
	t.hide.Cancel()
	t.first, t.interval, t.hide = nil, nil, nil
	if t.box.Attached() {
		t.box.RemoveClass("show")
	}
}

// Running reports whether any toast timer is pending.
func (t *Toast) Running() bool {
	return t.first.Active() || t.interval.Active() || t.hide.Active()
}
