// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/loop/loop.go
// Summary: The single per-frame driver for scroll, triggers, pins, animations and timers.
// Usage: Run owns the loop goroutine; other goroutines hand work over with Post.
// Notes: Frame order is posted tasks, scroll tick and emit, animator, due timers, hooks.

package loop

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/scroll"
)

// DefaultFPS matches the ~60fps tickers used elsewhere.
const DefaultFPS = 60

// Animator is advanced once per frame after listeners have run.
type Animator interface {
	Update(now time.Time)
}

// Hook runs at the end of every frame, typically to draw.
type Hook func(st scroll.State, now time.Time)

// Loop drives one page.
type Loop struct {
	mu     sync.Mutex
	posted []func()

	scroller  *scroll.Virtual
	animators []Animator
	sched    *Scheduler
	hooks    []*hook
	state    scroll.State
	frames   uint64
	fps      int
	log      *zap.Logger
}

type hook struct {
	fn   Hook
	dead bool
}

// New creates a loop around scroller. Animators update in the order given.
func New(scroller *scroll.Virtual, fps int, log *zap.Logger, animators ...Animator) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		scroller:  scroller,
		animators: animators,
		sched:     NewScheduler(time.Time{}),
		state:     scroller.State(),
		fps:       fps,
		log:       log,
	}
}

// Post queues fn for the start of the next frame. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// Scheduler returns the frame-driven timer set.
func (l *Loop) Scheduler() *Scheduler { return l.sched }

// Scroller returns the owned virtual scroller.
func (l *Loop) Scroller() *scroll.Virtual { return l.scroller }

// State is the scroll state emitted by the last frame.
func (l *Loop) State() scroll.State { return l.state }

// Frames counts completed frames.
func (l *Loop) Frames() uint64 { return l.frames }

// OnFrame adds a hook; the returned func removes it.
func (l *Loop) OnFrame(fn Hook) func() {
	h := &hook{fn: fn}
	l.hooks = append(l.hooks, h)
	return func() { h.dead = true }
}

// Frame runs one frame at now. Only the loop goroutine may call it.
func (l *Loop) Frame(now time.Time) scroll.State {
	l.sched.Sync(now)
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	l.state = l.scroller.Tick(now)
	for _, a := range l.animators {
		a.Update(now)
	}
	l.sched.RunDue(now)

	live := l.hooks[:0]
	for _, h := range l.hooks {
		if !h.dead {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(l.hooks); i++ {
		l.hooks[i] = nil
	}
	l.hooks = live
	for _, h := range l.hooks {
		if !h.dead {
			h.fn(l.state, now)
		}
	}
	l.frames++
	return l.state
}

// Run ticks frames until ctx is done. Posted work waits for the next tick.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(l.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.log.Info("Loop: started", zap.Int("fps", l.fps))
	l.Frame(time.Now())
	for {
		select {
		case <-ctx.Done():
			l.sched.Clear()
			l.log.Info("Loop: stopped", zap.Uint64("frames", l.frames))
			return ctx.Err()
		case now := <-ticker.C:
			l.Frame(now)
		}
	}
}
