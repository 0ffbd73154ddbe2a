// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/trigger/edge.go
// Summary: Parses "element viewport" edge strings such as "top 85%".

package trigger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/framegrace/texelpage/internal/dom"
)

// Edge marks the scroll position at which a point on the element (Element,
// a fraction of its height) meets a line in the viewport (Viewport, a
// fraction of its height, shifted by Offset units). An element offset is
// folded into Offset with the opposite sign.
type Edge struct {
	Element  float64
	Viewport float64
	Offset   float64
}

var (
	// TopTop: element top reaches viewport top.
	TopTop = Edge{Element: 0, Viewport: 0}
	// BottomTop: element bottom leaves through the viewport top.
	BottomTop = Edge{Element: 1, Viewport: 0}
	// TopBottom: element top enters at the viewport bottom.
	TopBottom = Edge{Element: 0, Viewport: 1}
)

// At returns the edge "top <fraction>" used by reveal bindings.
func At(viewportFraction float64) Edge {
	return Edge{Viewport: viewportFraction}
}

// Position maps the edge onto a scroll position for el in a viewport of height vh.
func (e Edge) Position(el *dom.Element, vh float64) float64 {
	b := el.Bounds()
	return b.Y + e.Element*b.H - (e.Viewport*vh + e.Offset)
}

// ParseEdge reads edges such as "top 85%", "bottom top", "top bottom-=100",
// "top+=10 85%" or "center center".
func ParseEdge(s string) (Edge, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return Edge{}, fmt.Errorf("trigger: invalid edge %q", s)
	}
	elem, elemOff, err := parseKeyword(fields[0])
	if err != nil {
		return Edge{}, fmt.Errorf("trigger: invalid edge %q: %w", s, err)
	}
	view, off, err := parseKeyword(fields[1])
	if err != nil {
		return Edge{}, fmt.Errorf("trigger: invalid edge %q: %w", s, err)
	}
	return Edge{Element: elem, Viewport: view, Offset: off - elemOff}, nil
}

func parseKeyword(tok string) (frac, offset float64, err error) {
	base := tok
	if i := strings.IndexAny(tok, "+-"); i > 0 && i+1 < len(tok) && tok[i+1] == '=' {
		base = tok[:i]
		n, perr := strconv.ParseFloat(tok[i+2:], 64)
		if perr != nil {
			return 0, 0, perr
		}
		if tok[i] == '-' {
			n = -n
		}
		offset = n
	}
	switch base {
	case "top":
		return 0, offset, nil
	case "center":
		return 0.5, offset, nil
	case "bottom":
		return 1, offset, nil
	}
	if strings.HasSuffix(base, "%") {
		n, perr := strconv.ParseFloat(strings.TrimSuffix(base, "%"), 64)
		if perr != nil {
			return 0, 0, perr
		}
		return n / 100, offset, nil
	}
	return 0, 0, fmt.Errorf("unknown keyword %q", base)
}
