// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpage/paths.go
// Summary: Standard paths for texelpage configuration and runtime files.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelpage/config"
)

// Paths holds standard file paths for texelpage
type Paths struct {
	ConfigDir    string // $XDG_CONFIG_HOME/texelpage or TEXELPAGE_CONFIG_DIR
	SystemConfig string // <ConfigDir>/texelpage.json
	PrefsPath    string // <ConfigDir>/prefs.db
	LogPath      string // <ConfigDir>/texelpage.log
}

// GetPaths returns the standard paths for texelpage files
func GetPaths() (*Paths, error) {
	root, err := config.Root()
	if err != nil {
		return nil, fmt.Errorf("get config directory: %w", err)
	}
	system, err := config.SystemPath()
	if err != nil {
		return nil, err
	}
	prefsPath, err := config.PrefsPath()
	if err != nil {
		return nil, err
	}
	logPath, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	return &Paths{
		ConfigDir:    root,
		SystemConfig: system,
		PrefsPath:    prefsPath,
		LogPath:      logPath,
	}, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func (p *Paths) EnsureConfigDir() error {
	return os.MkdirAll(p.ConfigDir, 0755)
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the configuration, preference and log locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := GetPaths()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config dir: %s\n", p.ConfigDir)
			fmt.Fprintf(out, "config:     %s\n", p.SystemConfig)
			fmt.Fprintf(out, "prefs:      %s\n", p.PrefsPath)
			fmt.Fprintf(out, "log:        %s\n", p.LogPath)
			return nil
		},
	}
}
