// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpage/main.go
// Summary: texelpage command: runs a scroll-animated page in the terminal.
// Usage: `texelpage [page.yaml]` runs the page; subcommands validate, simulate and edit prefs.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/framegrace/texelpage/config"
	"github.com/framegrace/texelpage/internal/logging"
	"github.com/framegrace/texelpage/internal/page"
)

var (
	// Global flags
	logLevel string
	theme    string

	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "texelpage [page.yaml]",
		Short: "Scroll-driven animated pages in the terminal",
		Long: `texelpage renders a one-page site description with smooth scrolling,
scroll-triggered reveals, a pinned horizontal section and a testimonial carousel.

Without an argument it runs the page named in texelpage.json, or the bundled demo.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(cmd == cmd.Root())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runPage,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides TEXELPAGE_LOG_LEVEL)")
	root.Flags().StringVar(&theme, "theme", "", "colour theme (overrides the stored preference)")

	root.AddCommand(newValidateCmd(), newSimulateCmd(), newPrefsCmd(), newPathsCmd())
	return root
}

// initLogger sends logs to a file while the terminal belongs to the page,
// and to stderr for the other commands.
func initLogger(toFile bool) error {
	e, err := config.ParseEnv()
	if err != nil {
		return err
	}
	level := e.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	opts := logging.Options{Level: level, File: e.LogFile}
	if toFile && opts.File == "" {
		if opts.File, err = config.LogPath(); err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	}
	if !toFile && e.LogFile == "" && logLevel == "" {
		opts.Level = "warn"
	}
	l, err := logging.New(opts)
	if err != nil {
		return err
	}
	logger = l
	config.SetLogger(l)
	return nil
}

// loadPage resolves the page: an explicit path, then the configured one,
// then the bundled demo.
func loadPage(args []string, cfg config.Config) (*page.Page, error) {
	path := cfg.GetString("", "page", "")
	if len(args) > 0 {
		path = args[0]
	}
	p, err := page.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Page: loaded", zap.String("path", path), zap.Int("sections", len(p.Sections)))
	return p, nil
}
