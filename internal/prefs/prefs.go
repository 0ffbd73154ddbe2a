// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/prefs/prefs.go
// Summary: SQLite-backed visitor preference flags.
//
// The only state texelpage persists between runs:
//   - reduced_motion: disables tweens and scroll smoothing
//   - smooth_scroll: smoothing on/off independent of motion
//   - theme: palette name handed to the renderer

package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const (
	KeyReducedMotion = "reduced_motion"
	KeySmoothScroll  = "smooth_scroll"
	KeyTheme         = "theme"
)

// ErrUnknownKey is returned for keys outside the known set.
var ErrUnknownKey = errors.New("prefs: unknown key")

var defaults = map[string]string{
	KeyReducedMotion: "false",
	KeySmoothScroll:  "true",
	KeyTheme:         "dark",
}

var validators = map[string]func(string) error{
	KeyReducedMotion: validateBool,
	KeySmoothScroll:  validateBool,
	KeyTheme: func(v string) error {
		if v == "" {
			return fmt.Errorf("theme must not be empty")
		}
		return nil
	},
}

func validateBool(v string) error {
	if _, err := strconv.ParseBool(v); err != nil {
		return fmt.Errorf("expected a boolean, got %q", v)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL -- UnixNano
);
`

// Store reads and writes preference flags.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the preference database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(2000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Keys lists the known preference keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the stored value or the key's default.
func (s *Store) Get(key string) (string, error) {
	def, ok := defaults[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	var v string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

// Set validates and stores value.
func (s *Store) Set(key, value string) error {
	validate, ok := validators[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := validate(value); err != nil {
		return fmt.Errorf("prefs: %s: %w", key, err)
	}
	_, err := s.db.Exec(`INSERT INTO prefs(key, value, updated_at) VALUES(?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Bool reads a boolean flag, falling back to its default on bad data.
func (s *Store) Bool(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	b, perr := strconv.ParseBool(v)
	if perr != nil {
		b, _ = strconv.ParseBool(defaults[key])
	}
	return b, nil
}

// All returns every key with its effective value.
func (s *Store) All() (map[string]string, error) {
	out := make(map[string]string, len(defaults))
	for _, k := range Keys() {
		v, err := s.Get(k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
