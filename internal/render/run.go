// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/render/run.go
// Summary: Runs a site on a screen until the context ends or the user quits.
// Usage: The caller Inits the screen; Run finalizes it on the way out.
// Notes: Three goroutines: the loop, the event pump and the shutdown watcher.
// Only the loop goroutine touches the site.

package render

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texelpage/internal/page"
	"github.com/framegrace/texelpage/internal/scroll"
)

// Options configures Run.
type Options struct {
	Palette Palette
	Log     *zap.Logger
	// OnReducedMotion is told about every 'm' toggle, for persistence.
	OnReducedMotion func(reduced bool)
}

// Run draws site on screen every frame and feeds it input.
func Run(ctx context.Context, screen Screen, site *page.Site, opts Options) error {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen.HideCursor()
	screen.EnableMouse()

	r := NewRenderer(screen, opts.Palette)
	in := NewInput(site, cancel)
	in.OnReducedMotion(opts.OnReducedMotion)

	lp := site.Loop()
	remove := lp.OnFrame(func(st scroll.State, _ time.Time) {
		r.Draw(site.Document(), st.Virtual)
		screen.Show()
	})
	defer remove()

	var fini sync.Once
	finish := func() { fini.Do(screen.Fini) }
	defer finish()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := lp.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			lp.Post(func() { in.Handle(ev) })
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		finish()
		return nil
	})

	err := g.Wait()
	log.Info("Render: stopped", zap.Error(err))
	return err
}
