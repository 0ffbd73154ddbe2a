// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/loop"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func setup() (*Toast, *loop.Scheduler, *dom.Element) {
	doc := dom.New(dom.Viewport{W: 80, H: 24})
	box := doc.NewElement("social-proof", "div")
	text := doc.NewElement("social-proof-text", "p")
	box.Append(text)
	doc.Root().Append(box)
	s := loop.NewScheduler(epoch)
	tt := New(box, text, []string{"one", "two"}, s, DefaultOptions(), nil)
	return tt, s, box
}

func run(s *loop.Scheduler, d time.Duration) { s.RunDue(epoch.Add(d)) }

func TestCadence(t *testing.T) {
	tt, s, _ := setup()
	tt.Start()

	run(s, 4*time.Second)
	assert.False(t, tt.Visible())

	run(s, 5*time.Second)
	assert.True(t, tt.Visible())
	assert.Equal(t, "one", tt.Message())

	run(s, 10*time.Second)
	assert.False(t, tt.Visible())

	run(s, 17*time.Second)
	assert.True(t, tt.Visible())
	assert.Equal(t, "two", tt.Message())

	run(s, 22*time.Second)
	run(s, 29*time.Second)
	assert.Equal(t, "one", tt.Message())
}

func TestCloseCancelsEverything(t *testing.T) {
	tt, s, box := setup()
	tt.Start()
	run(s, 5*time.Second)
	assert.True(t, tt.Visible())

	tt.Close()
	assert.False(t, box.HasClass("show"))
	assert.False(t, tt.Running())

	run(s, time.Minute)
	assert.False(t, tt.Visible())
	assert.Equal(t, 0, s.Len())
}

func TestStartTwiceKeepsOneCadence(t *testing.T) {
	tt, s, _ := setup()
	tt.Start()
	tt.Start()
	assert.Equal(t, 1, s.Len())
}

func TestInertWithoutElements(t *testing.T) {
	s := loop.NewScheduler(epoch)
	tt := New(nil, nil, []string{"x"}, s, DefaultOptions(), nil)
	tt.Start()
	assert.False(t, tt.Running())
	assert.Equal(t, "", tt.Message())
	assert.False(t, tt.Visible())
}
