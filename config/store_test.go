// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TEXELPAGE_CONFIG_DIR", dir)
	once = sync.Once{}
	system = nil
	loadErr = nil
	return dir
}

func readDisk(t *testing.T) Config {
	t.Helper()
	path, err := SystemPath()
	if err != nil {
		t.Fatalf("SystemPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}
	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	return disk
}

func TestSystemDefaultsWritten(t *testing.T) {
	resetStore(t)

	cfg := System()
	if got := cfg.GetInt("render", "fps", 0); got != 60 {
		t.Fatalf("render.fps = %d, want 60", got)
	}
	if got := cfg.GetDuration("carousel", "interval_ms", 0); got != 5*time.Second {
		t.Fatalf("carousel.interval_ms = %v, want 5s", got)
	}

	disk := readDisk(t)
	if disk.Section("pin") == nil {
		t.Fatalf("expected pin section to be present on disk")
	}
	if _, ok := disk.Section("effects")["presets"].([]interface{}); !ok {
		t.Fatalf("expected effects.presets list on disk")
	}
}

func TestEnvOverridesRoot(t *testing.T) {
	dir := resetStore(t)
	path, err := SystemPath()
	if err != nil {
		t.Fatalf("SystemPath: %v", err)
	}
	if want := filepath.Join(dir, "texelpage.json"); path != want {
		t.Fatalf("SystemPath = %q, want %q", path, want)
	}
	prefs, _ := PrefsPath()
	if filepath.Dir(prefs) != dir {
		t.Fatalf("PrefsPath = %q, want it under %q", prefs, dir)
	}
}

func TestUserValuesSurviveDefaults(t *testing.T) {
	dir := resetStore(t)
	raw := `{"scroll": {"rate": 9}, "render": {"fps": 30}}`
	if err := os.WriteFile(filepath.Join(dir, "texelpage.json"), []byte(raw), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := System()
	if err := Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if got := cfg.GetFloat("scroll", "rate", 0); got != 9 {
		t.Fatalf("scroll.rate = %v, want 9", got)
	}
	if got := cfg.GetFloat("scroll", "touch_multiplier", 0); got != 2 {
		t.Fatalf("scroll.touch_multiplier = %v, want default 2", got)
	}
	if got := cfg.GetInt("render", "fps", 0); got != 30 {
		t.Fatalf("render.fps = %d, want 30", got)
	}
}

func TestInvalidFileFallsBackToDefaults(t *testing.T) {
	dir := resetStore(t)
	if err := os.WriteFile(filepath.Join(dir, "texelpage.json"), []byte("{nope"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := System()
	if Err() == nil {
		t.Fatalf("expected a load error for malformed JSON")
	}
	if got := cfg.GetInt("render", "fps", 0); got != 60 {
		t.Fatalf("render.fps = %d, want default 60", got)
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	resetStore(t)

	SetSystem(Config{"render": map[string]interface{}{"fps": 24}})
	if err := SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}

	disk := readDisk(t)
	if got := disk.GetInt("render", "fps", 0); got != 24 {
		t.Fatalf("render.fps = %d, want 24", got)
	}
	if disk.Section("toast") == nil {
		t.Fatalf("expected defaults to be filled in before saving")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Config{"pin": Section{"margin": 100.0}}
	c := Clone(orig)
	c.Section("pin")["margin"] = 5.0
	if got := orig.GetFloat("pin", "margin", 0); got != 100 {
		t.Fatalf("original mutated through clone: margin = %v", got)
	}
}

func TestSub(t *testing.T) {
	cfg := Config{"effects": map[string]interface{}{
		"palette": map[string]interface{}{"accent": "#ff8800"},
	}}
	if got := cfg.Sub("effects", "palette")["accent"]; got != "#ff8800" {
		t.Fatalf("Sub accent = %v", got)
	}
	if cfg.Sub("effects", "missing") != nil || cfg.Sub("nope", "palette") != nil {
		t.Fatalf("expected nil for missing nested sections")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := resetStore(t)
	_ = System()
	path := filepath.Join(dir, "texelpage.json")

	w, err := newWatcher(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan Config, 4)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(c Config) { changed <- c }) }()

	if err := os.WriteFile(path, []byte(`{"render": {"fps": 12}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case cfg := <-changed:
		if got := cfg.GetInt("render", "fps", 0); got != 12 {
			t.Fatalf("reloaded fps = %d, want 12", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not report the change")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not stop")
	}
}

func TestGettersCoerceScalars(t *testing.T) {
	cfg := Config{"s": map[string]interface{}{
		"n":    "12.5",
		"i":    float64(7),
		"b":    "true",
		"z":    0,
		"bad":  []interface{}{1},
		"name": "x",
	}}
	if got := cfg.GetFloat("s", "n", 0); got != 12.5 {
		t.Fatalf("GetFloat(n) = %v", got)
	}
	if got := cfg.GetInt("s", "i", 0); got != 7 {
		t.Fatalf("GetInt(i) = %v", got)
	}
	if !cfg.GetBool("s", "b", false) || cfg.GetBool("s", "z", true) {
		t.Fatalf("GetBool coercion wrong")
	}
	if got := cfg.GetInt("s", "bad", 3); got != 3 {
		t.Fatalf("GetInt(bad) = %v, want default", got)
	}
	if got := cfg.GetString("s", "name", ""); got != "x" {
		t.Fatalf("GetString(name) = %q", got)
	}
	if got := cfg.GetString("missing", "name", "d"); got != "d" {
		t.Fatalf("GetString(missing) = %q", got)
	}
	if got := cfg.GetDuration("s", "i", 0); got != 7*time.Millisecond {
		t.Fatalf("GetDuration(i) = %v", got)
	}
}
