// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpage/prefs.go
// Summary: prefs subcommand for reading and writing stored preferences.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelpage/config"
	"github.com/framegrace/texelpage/internal/prefs"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and write stored preferences",
		Long: `Preferences persist between runs in prefs.db next to texelpage.json.

Keys:
  reduced_motion - disable animations, smoothing, parallax and scrub lag
  smooth_scroll  - ease the scroll position toward its target
  theme          - colour palette name (dark, light)`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show every preference",
			Args:  cobra.NoArgs,
			RunE:  runPrefsList,
		},
		&cobra.Command{
			Use:   "get KEY",
			Short: "Show one preference",
			Args:  cobra.ExactArgs(1),
			RunE:  runPrefsGet,
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Store one preference",
			Args:  cobra.ExactArgs(2),
			RunE:  runPrefsSet,
		},
	)
	return cmd
}

func openPrefs() (*prefs.Store, error) {
	path, err := config.PrefsPath()
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	return prefs.Open(path)
}

func runPrefsList(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()
	all, err := store.All()
	if err != nil {
		return err
	}
	for _, k := range prefs.Keys() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, all[k])
	}
	return nil
}

func runPrefsGet(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()
	v, err := store.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Set(args[0], args[1])
}
