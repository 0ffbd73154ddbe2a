// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/loop/scheduler.go
// Summary: Frame-driven timers with a single cancel path per handle.
// Usage: Components keep the *Task they created and Cancel it before replacing it.
// Notes: Tasks only run inside RunDue, so callbacks never race the frame.

package loop

import (
	"sort"
	"time"
)

// Task is a handle to one scheduled callback.
type Task struct {
	seq       uint64
	due       time.Time
	every     time.Duration
	fn        func()
	cancelled bool
	done      bool
}

// Cancel stops the task. Safe on nil and on finished tasks.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active reports whether the task will still run.
func (t *Task) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// Due is the next time the task runs.
func (t *Task) Due() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.due
}

// Scheduler holds pending tasks against the loop's notion of now.
type Scheduler struct {
	now   time.Time
	tasks []*Task
	seq   uint64
}

// NewScheduler creates a scheduler whose clock starts at now. A zero now
// defers the start to the first Sync; tasks added before that are rebased.
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Now is the frame time the scheduler last saw.
func (s *Scheduler) Now() time.Time { return s.now }

// Sync moves the clock forward to now; it never goes backward.
func (s *Scheduler) Sync(now time.Time) {
	if s.now.IsZero() && !now.IsZero() {
		var zero time.Time
		for _, t := range s.tasks {
			t.due = now.Add(t.due.Sub(zero))
		}
		s.now = now
		return
	}
	if now.After(s.now) {
		s.now = now
	}
}

// After runs fn once, d after the current frame time.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	return s.add(d, 0, fn)
}

// Every runs fn every d, first after d.
func (s *Scheduler) Every(d time.Duration, fn func()) *Task {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, every time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{seq: s.seq, due: s.now.Add(d), every: every, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Len counts tasks that may still run.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if t.Active() {
			n++
		}
	}
	return n
}

// RunDue advances the clock to now and runs every task due by then, earliest
// first. Tasks scheduled from inside a callback wait for the next call.
func (s *Scheduler) RunDue(now time.Time) int {
	s.Sync(now)
	var due []*Task
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.cancelled {
			continue
		}
		if !t.due.After(s.now) {
			due = append(due, t)
		}
		live = append(live, t)
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, t := range due {
		if t.cancelled {
			continue
		}
		if t.every > 0 {
			t.due = t.due.Add(t.every)
			if !t.due.After(s.now) {
				t.due = s.now.Add(t.every)
			}
		} else {
			t.done = true
		}
		t.fn()
		ran++
	}

	live = s.tasks[:0]
	for _, t := range s.tasks {
		if t.Active() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
	return ran
}

// Clear cancels every task.
func (s *Scheduler) Clear() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}
