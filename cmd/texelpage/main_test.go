// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TEXELPAGE_CONFIG_DIR", t.TempDir())
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateBundledPage(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `ok: "Texel Studio", 6 sections`), out)
}

func TestValidateRejectsBrokenPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: x\nsections: []\n"), 0644))
	_, err := execute(t, "validate", path)
	assert.Error(t, err)
}

func TestSimulatePrintsFrames(t *testing.T) {
	out, err := execute(t, "simulate", "--frames", "40", "--every", "20", "--wheel", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "frame=20 pos="), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "frame=40 pos="), lines[1])
}

func TestSimulateRejectsEmptyViewport(t *testing.T) {
	_, err := execute(t, "simulate", "--width", "0")
	assert.Error(t, err)
}

func TestPrefsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	run := func(args ...string) (string, error) {
		t.Setenv("TEXELPAGE_CONFIG_DIR", dir)
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("prefs", "get", "reduced_motion")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, err = run("prefs", "set", "reduced_motion", "true")
	require.NoError(t, err)
	out, err = run("prefs", "get", "reduced_motion")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	_, err = run("prefs", "set", "reduced_motion", "sometimes")
	assert.Error(t, err)
	_, err = run("prefs", "get", "volume")
	assert.Error(t, err)

	out, err = run("prefs", "list")
	require.NoError(t, err)
	assert.Equal(t, "reduced_motion=true\nsmooth_scroll=true\ntheme=dark\n", out)
}

func TestPathsFollowEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEXELPAGE_CONFIG_DIR", dir)
	p, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, dir, p.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "prefs.db"), p.PrefsPath)
	assert.Equal(t, filepath.Join(dir, "texelpage.json"), p.SystemConfig)
}
