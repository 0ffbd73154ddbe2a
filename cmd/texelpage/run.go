// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpage/run.go
// Summary: Interactive mode: a tcell screen, the page loop and a config watcher.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/framegrace/texelpage/config"
	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/page"
	"github.com/framegrace/texelpage/internal/prefs"
	"github.com/framegrace/texelpage/internal/render"
)

// userPrefs is what the preference store contributes to a run.
type userPrefs struct {
	reducedMotion bool
	smoothScroll  bool
	theme         string
}

func readPrefs(store *prefs.Store) userPrefs {
	up := userPrefs{smoothScroll: true, theme: "dark"}
	if store == nil {
		return up
	}
	if v, err := store.Bool(prefs.KeyReducedMotion); err == nil {
		up.reducedMotion = v
	}
	if v, err := store.Bool(prefs.KeySmoothScroll); err == nil {
		up.smoothScroll = v
	}
	if v, err := store.Get(prefs.KeyTheme); err == nil {
		up.theme = v
	}
	return up
}

func runPage(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use 'texelpage simulate' for headless runs")
	}
	e, err := config.ParseEnv()
	if err != nil {
		return err
	}
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("resolve config paths: %w", err)
	}
	if err := paths.EnsureConfigDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	cfg := config.System()
	if err := config.Err(); err != nil {
		logger.Warn("Config: using defaults", zap.Error(err))
	}
	p, err := loadPage(args, cfg)
	if err != nil {
		return err
	}
	set, err := page.SettingsFrom(cfg)
	if err != nil {
		return err
	}

	store, err := prefs.Open(paths.PrefsPath)
	if err != nil {
		logger.Warn("Prefs: unavailable", zap.Error(err))
		store = nil
	} else {
		defer store.Close()
	}
	up := readPrefs(store)
	if e.ReducedMotion != nil {
		up.reducedMotion = *e.ReducedMotion
	}
	if theme != "" {
		up.theme = theme
	}
	set.ReducedMotion = up.reducedMotion
	set.Scroll.Smooth = set.Scroll.Smooth && up.smoothScroll

	tscreen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	screen := render.NewDriver(tscreen)
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	palette, err := render.ForConfig(up.theme, cfg)
	if err != nil {
		logger.Warn("Theme: ignoring overrides", zap.Error(err))
	}
	if _, ok := render.PaletteByName(up.theme); !ok {
		logger.Warn("Theme: unknown, using dark", zap.String("theme", up.theme))
	}
	w, h := screen.Size()
	site, err := page.NewSite(p, set, dom.Viewport{W: float64(w), H: float64(h)}, logger)
	if err != nil {
		screen.Fini()
		return err
	}
	defer site.Teardown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if watcher, err := config.NewWatcher(logger); err != nil {
		logger.Warn("Config: watch disabled", zap.Error(err))
	} else {
		g.Go(func() error {
			err := watcher.Run(gctx, func(cfg config.Config) {
				site.Loop().Post(func() { applyConfig(site, cfg, up.smoothScroll) })
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		defer stop()
		return render.Run(gctx, screen, site, render.Options{
			Palette: palette,
			Log:     logger,
			OnReducedMotion: func(on bool) {
				if store == nil {
					return
				}
				if err := store.Set(prefs.KeyReducedMotion, strconv.FormatBool(on)); err != nil {
					logger.Warn("Prefs: save failed", zap.Error(err))
				}
			},
		})
	})
	return g.Wait()
}

// applyConfig pushes a reloaded config into a running site. It runs on the
// loop goroutine.
func applyConfig(site *page.Site, cfg config.Config, smooth bool) {
	set, err := page.SettingsFrom(cfg)
	if err != nil {
		logger.Warn("Config: rejected reload", zap.Error(err))
		return
	}
	set.Scroll.Smooth = set.Scroll.Smooth && smooth
	site.ApplySettings(set)
	logger.Info("Config: applied", zap.Int("fps", set.FPS))
}
