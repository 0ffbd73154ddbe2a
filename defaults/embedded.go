// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration and demo page.

package defaults

import (
	"embed"
)

//go:embed texelpage.json page.yaml
var fs embed.FS

// SystemConfig returns the embedded texelpage.json.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("texelpage.json")
}

// Page returns the embedded demo page description.
func Page() ([]byte, error) {
	return fs.ReadFile("page.yaml")
}
