// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/page/page.go
// Summary: YAML page description and its validation.
// Usage: Load or Parse a page file, then hand it to NewSite.

package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelpage/defaults"
	"github.com/framegrace/texelpage/internal/effects"
)

// ErrInvalidPage wraps every validation failure.
var ErrInvalidPage = errors.New("invalid page")

// Section kinds.
const (
	KindText         = "text"
	KindHero         = "hero"
	KindHorizontal   = "horizontal"
	KindTestimonials = "testimonials"
)

// Block kinds.
const (
	BlockText    = "text"
	BlockImage   = "image"
	BlockCounter = "counter"
)

// Page is the whole site.
type Page struct {
	Title    string    `yaml:"title"`
	Nav      []NavItem `yaml:"nav"`
	Toast    []string  `yaml:"toast"`
	Sections []Section `yaml:"sections"`
}

// NavItem links to a section by "#id".
type NavItem struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Section is one full-width band of the page.
type Section struct {
	ID      string  `yaml:"id"`
	Kind    string  `yaml:"kind"`
	Heading string  `yaml:"heading"`
	Blocks  []Block `yaml:"blocks"`
	Cards   []Card  `yaml:"cards"`
	// MinHeight pads the section to at least this many rows.
	MinHeight float64 `yaml:"min_height"`
	// CardWidth sizes horizontal panels and testimonial cards.
	CardWidth float64 `yaml:"card_width"`
}

// Block is a piece of section content.
type Block struct {
	ID     string  `yaml:"id"`
	Kind   string  `yaml:"kind"`
	Text   string  `yaml:"text"`
	Reveal string  `yaml:"reveal"`
	Split  bool    `yaml:"split"`
	Height float64 `yaml:"height"`
	// Stagger delays the reveal by 100ms per step.
	Stagger int     `yaml:"stagger"`
	Float   bool    `yaml:"float"`
	Target  float64 `yaml:"target"`
	Suffix  string  `yaml:"suffix"`
	// Depth makes the block drift against the pointer, in percent per axis.
	Depth *Depth `yaml:"depth"`
}

// Depth is a parallax factor pair.
type Depth struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Card is a horizontal panel or a testimonial.
type Card struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Author string `yaml:"author"`
}

// Parse decodes and validates a page description.
func Parse(data []byte) (*Page, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Page
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidPage)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads a page from disk; an empty path loads the bundled demo page.
func LoadFile(path string) (*Page, error) {
	if path == "" {
		data, err := defaults.Page()
		if err != nil {
			return nil, fmt.Errorf("read bundled page: %w", err)
		}
		return Parse(data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return Parse(data)
}

// Validate checks references and kinds. It fills in default kinds.
func (p *Page) Validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidPage)
	}
	ids := make(map[string]bool)
	claim := func(id string) error {
		if id == "" {
			return nil
		}
		if ids[id] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidPage, id)
		}
		ids[id] = true
		return nil
	}
	for _, id := range reservedIDs {
		ids[id] = true
	}

	for i := range p.Sections {
		s := &p.Sections[i]
		if s.ID == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalidPage, i)
		}
		if err := claim(s.ID); err != nil {
			return err
		}
		if s.Kind == "" {
			s.Kind = KindText
		}
		switch s.Kind {
		case KindText, KindHero:
		case KindHorizontal, KindTestimonials:
			if len(s.Cards) == 0 {
				return fmt.Errorf("%w: section %q needs cards", ErrInvalidPage, s.ID)
			}
		default:
			return fmt.Errorf("%w: section %q has unknown kind %q", ErrInvalidPage, s.ID, s.Kind)
		}
		if s.MinHeight < 0 || s.CardWidth < 0 {
			return fmt.Errorf("%w: section %q has negative size", ErrInvalidPage, s.ID)
		}
		for j := range s.Blocks {
			if err := s.Blocks[j].validate(s.ID, j); err != nil {
				return err
			}
			if err := claim(s.Blocks[j].ID); err != nil {
				return err
			}
		}
	}

	for _, n := range p.Nav {
		if !strings.HasPrefix(n.Href, "#") {
			return fmt.Errorf("%w: nav %q href must start with #", ErrInvalidPage, n.Label)
		}
		if !ids[strings.TrimPrefix(n.Href, "#")] {
			return fmt.Errorf("%w: nav %q points to unknown section %q", ErrInvalidPage, n.Label, n.Href)
		}
	}
	return nil
}

func (b *Block) validate(section string, i int) error {
	if b.Kind == "" {
		b.Kind = BlockText
	}
	switch b.Kind {
	case BlockText, BlockImage, BlockCounter:
	default:
		return fmt.Errorf("%w: section %q block %d has unknown kind %q", ErrInvalidPage, section, i, b.Kind)
	}
	if b.Reveal != "" {
		if _, ok := effects.Lookup(b.Reveal); !ok {
			return fmt.Errorf("%w: section %q block %d uses unknown preset %q", ErrInvalidPage, section, i, b.Reveal)
		}
	}
	if b.Stagger < 0 || b.Height < 0 {
		return fmt.Errorf("%w: section %q block %d has a negative value", ErrInvalidPage, section, i)
	}
	if b.Kind == BlockCounter && b.Target < 0 {
		return fmt.Errorf("%w: section %q counter target must not be negative", ErrInvalidPage, section)
	}
	return nil
}
