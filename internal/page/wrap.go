// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/page/wrap.go
// Summary: Cell-width aware word wrapping shared by layout and drawing.

package page

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Word is one word placed on a wrapped line.
type Word struct {
	Text string
	Line int
	Col  int
}

// Wrap breaks text into lines no wider than width cells. Words wider than
// width are cut. Explicit newlines start a new line.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := PlaceWords(para, width)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		first := len(lines)
		for _, w := range words {
			for len(lines) <= first+w.Line {
				lines = append(lines, "")
			}
			i := first + w.Line
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += w.Text
		}
	}
	return lines
}

// PlaceWords lays the words of a single paragraph onto lines of width cells.
func PlaceWords(text string, width int) []Word {
	if width <= 0 {
		return nil
	}
	var out []Word
	line, col := 0, 0
	for _, f := range strings.Fields(text) {
		w := runewidth.StringWidth(f)
		if w > width {
			f = runewidth.Truncate(f, width, "")
			w = runewidth.StringWidth(f)
		}
		if col > 0 && col+1+w > width {
			line++
			col = 0
		}
		if col > 0 {
			col++
		}
		out = append(out, Word{Text: f, Line: line, Col: col})
		col += w
	}
	return out
}

// LineCount is the number of rows Wrap produces, at least one.
func LineCount(text string, width int) int {
	n := len(Wrap(text, width))
	if n == 0 {
		return 1
	}
	return n
}
