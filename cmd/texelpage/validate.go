// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpage/validate.go
// Summary: validate and simulate subcommands; neither needs a terminal.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelpage/config"
	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/page"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [page.yaml]",
		Short: "Check a page description and the effect presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.System()
	if _, err := page.SettingsFrom(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	p, err := loadPage(args, cfg)
	if err != nil {
		return err
	}
	blocks, cards := 0, 0
	for _, s := range p.Sections {
		blocks += len(s.Blocks)
		cards += len(s.Cards)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %q, %d sections, %d blocks, %d cards\n", p.Title, len(p.Sections), blocks, cards)
	return nil
}

type simulateOptions struct {
	width, height int
	frames        int
	wheel         float64
	every         int
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate [page.yaml]",
		Short: "Run the page headless with synthetic wheel input",
		Long: `Runs the frame loop on a virtual clock without a terminal. Every frame
feeds the given number of wheel lines, and every N-th frame prints the scroll
position, the active section, page progress and which sections are pinned.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 80, "viewport columns")
	f.IntVar(&opts.height, "height", 24, "viewport rows")
	f.IntVar(&opts.frames, "frames", 240, "number of frames to run")
	f.Float64Var(&opts.wheel, "wheel", 1, "wheel lines fed per frame")
	f.IntVar(&opts.every, "every", 20, "print every N frames")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string, opts simulateOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", opts.width, opts.height)
	}
	if opts.every <= 0 {
		opts.every = 1
	}
	cfg := config.System()
	p, err := loadPage(args, cfg)
	if err != nil {
		return err
	}
	set, err := page.SettingsFrom(cfg)
	if err != nil {
		return err
	}
	site, err := page.NewSite(p, set, dom.Viewport{W: float64(opts.width), H: float64(opts.height)}, logger)
	if err != nil {
		return err
	}
	defer site.Teardown()

	var pinned []string
	for _, s := range p.Sections {
		if s.Kind == page.KindHorizontal {
			pinned = append(pinned, s.ID)
		}
	}

	out := cmd.OutOrStdout()
	step := time.Second / time.Duration(set.FPS)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= opts.frames; i++ {
		site.Wheel(opts.wheel)
		now = now.Add(step)
		site.Loop().Frame(now)
		if i%opts.every != 0 && i != opts.frames {
			continue
		}
		var on []string
		for _, id := range pinned {
			if c := site.Pin(id); c != nil && c.Pinned() {
				on = append(on, id)
			}
		}
		fmt.Fprintf(out, "frame=%d pos=%.1f section=%s progress=%.2f pinned=[%s]\n",
			i, site.Position(), site.ActiveSection(), site.Progress(), strings.Join(on, ","))
	}
	return nil
}
