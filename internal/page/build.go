// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/page/build.go
// Summary: Turns a Page into a document tree.
// Notes: Building only creates elements; layout assigns geometry.

package page

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/framegrace/texelpage/internal/dom"
)

// Ids of the chrome elements every site gets.
const (
	IDNavbar      = "navbar"
	IDBrand       = "brand"
	IDProgress    = "scroll-progress"
	IDBackToTop   = "back-to-top"
	IDToast       = "social-proof"
	IDToastText   = "social-proof-text"
	IDToastClose  = "social-proof-close"
	ClassFixed    = "fixed"
	ClassWord     = "word"
	ClassNavLink  = "nav-link"
	ClassActive   = "active"
	ClassScrolled = "scrolled"
	ClassVisible  = "visible"
)

var reservedIDs = []string{IDNavbar, IDBrand, IDProgress, IDBackToTop, IDToast, IDToastText, IDToastClose}

// revealed is an element bound to an entrance preset.
type revealed struct {
	el      *dom.Element
	targets []*dom.Element
	preset  string
	stagger int
}

type layered struct {
	el    *dom.Element
	depth Depth
}

// sectionNodes keeps the elements layout walks for one section.
type sectionNodes struct {
	spec    *Section
	el      *dom.Element
	heading *dom.Element
	words   []*dom.Element
	blocks  []blockNodes

	track  *dom.Element
	panels []*dom.Element

	region *dom.Element
	cards  []*dom.Element
	dots   []*dom.Element
}

type blockNodes struct {
	spec  *Block
	el    *dom.Element
	words []*dom.Element
}

// tree is the built document plus handles into it.
type tree struct {
	doc      *dom.Document
	sections []*sectionNodes

	navbar    *dom.Element
	brand     *dom.Element
	navLinks  []*dom.Element
	progress  *dom.Element
	backToTop *dom.Element
	toastBox  *dom.Element
	toastText *dom.Element
	toastX    *dom.Element

	reveals  []revealed
	floats   []*dom.Element
	counters []*dom.Element
	layers   []layered
}

func build(p *Page, vp dom.Viewport) *tree {
	doc := dom.New(vp)
	t := &tree{doc: doc}
	root := doc.Root()

	for i := range p.Sections {
		t.sections = append(t.sections, t.buildSection(&p.Sections[i]))
		root.Append(t.sections[i].el)
	}

	// Chrome goes last so it draws over the sections.
	t.progress = doc.NewElement(IDProgress, "div")
	t.progress.AddClass(ClassFixed, "progress-bar")
	t.progress.UpdateStyle(func(s *dom.Style) { s.ClipRight = 1 })
	root.Append(t.progress)

	t.navbar = doc.NewElement(IDNavbar, "nav")
	t.navbar.AddClass(ClassFixed, "navbar")
	t.brand = doc.NewElement(IDBrand, "span")
	t.brand.AddClass("brand")
	t.brand.SetText(p.Title)
	t.navbar.Append(t.brand)
	for _, n := range p.Nav {
		link := doc.NewElement("", "a")
		link.AddClass(ClassNavLink)
		link.SetAttr("href", n.Href)
		link.SetText(n.Label)
		t.navbar.Append(link)
		t.navLinks = append(t.navLinks, link)
	}
	root.Append(t.navbar)

	t.backToTop = doc.NewElement(IDBackToTop, "button")
	t.backToTop.AddClass(ClassFixed, "back-to-top")
	t.backToTop.SetText("↑ top")
	root.Append(t.backToTop)

	t.toastBox = doc.NewElement(IDToast, "div")
	t.toastBox.AddClass(ClassFixed, "toast")
	t.toastText = doc.NewElement(IDToastText, "p")
	t.toastX = doc.NewElement(IDToastClose, "button")
	t.toastX.AddClass("toast-close")
	t.toastX.SetText("×")
	t.toastBox.Append(t.toastText)
	t.toastBox.Append(t.toastX)
	root.Append(t.toastBox)
	return t
}

func (t *tree) buildSection(s *Section) *sectionNodes {
	doc := t.doc
	n := &sectionNodes{spec: s}
	n.el = doc.NewElement(s.ID, "section")
	n.el.AddClass("section", "section-"+s.Kind)

	if s.Heading != "" {
		tag := "h2"
		if s.Kind == KindHero {
			tag = "h1"
		}
		n.heading = doc.NewElement("", tag)
		n.heading.AddClass("heading")
		n.el.Append(n.heading)
		if s.Kind == KindHero {
			n.words = t.splitWords(n.heading, s.Heading)
			t.reveals = append(t.reveals, revealed{el: n.heading, targets: n.words, preset: "text-reveal"})
		} else {
			n.heading.SetText(s.Heading)
			n.heading.AddClass("reveal")
			t.reveals = append(t.reveals, revealed{el: n.heading, preset: "reveal"})
		}
	}

	for i := range s.Blocks {
		n.blocks = append(n.blocks, t.buildBlock(n.el, &s.Blocks[i]))
	}

	switch s.Kind {
	case KindHorizontal:
		n.el.AddClass("horizontal-section")
		n.track = doc.NewElement(s.ID+"-track", "div")
		n.track.AddClass("horizontal-track")
		n.el.Append(n.track)
		for i, c := range s.Cards {
			panel := doc.NewElement(fmt.Sprintf("%s-panel-%d", s.ID, i), "article")
			panel.AddClass("panel")
			panel.SetAttr("title", c.Title)
			panel.SetText(c.Body)
			n.track.Append(panel)
			n.panels = append(n.panels, panel)
		}
	case KindTestimonials:
		n.region = doc.NewElement(s.ID+"-carousel", "div")
		n.region.AddClass("testimonial-carousel")
		n.el.Append(n.region)
		for i, c := range s.Cards {
			card := doc.NewElement(fmt.Sprintf("%s-card-%d", s.ID, i), "blockquote")
			card.AddClass("testimonial-card")
			card.SetAttr("title", c.Title)
			card.SetAttr("author", c.Author)
			card.SetText(c.Body)
			n.region.Append(card)
			n.cards = append(n.cards, card)
		}
		dots := doc.NewElement("", "div")
		dots.AddClass("dots")
		n.el.Append(dots)
		for range s.Cards {
			dot := doc.NewElement("", "span")
			dot.AddClass("dot")
			dots.Append(dot)
			n.dots = append(n.dots, dot)
		}
	}
	return n
}

func (t *tree) buildBlock(parent *dom.Element, b *Block) blockNodes {
	doc := t.doc
	bn := blockNodes{spec: b}
	switch b.Kind {
	case BlockImage:
		bn.el = doc.NewElement(b.ID, "figure")
		bn.el.AddClass("image")
		bn.el.SetText(b.Text)
	case BlockCounter:
		bn.el = doc.NewElement(b.ID, "span")
		bn.el.AddClass("counter")
		bn.el.SetAttr("data-target", strconv.FormatFloat(b.Target, 'f', -1, 64))
		bn.el.SetAttr("data-suffix", b.Suffix)
		bn.el.SetText("0" + b.Suffix)
		t.counters = append(t.counters, bn.el)
	default:
		bn.el = doc.NewElement(b.ID, "p")
		bn.el.AddClass("block")
	}
	parent.Append(bn.el)

	if b.Kind == BlockText {
		if b.Split {
			bn.words = t.splitWords(bn.el, b.Text)
		} else {
			bn.el.SetText(b.Text)
		}
	}
	if b.Stagger > 0 {
		bn.el.AddClass("stagger-" + strconv.Itoa(b.Stagger))
	}
	if b.Reveal != "" {
		bn.el.AddClass(b.Reveal)
		r := revealed{el: bn.el, preset: b.Reveal, stagger: b.Stagger}
		if len(bn.words) > 0 {
			r.targets = bn.words
		}
		t.reveals = append(t.reveals, r)
	}
	if b.Float {
		bn.el.AddClass("float")
		t.floats = append(t.floats, bn.el)
	}
	if b.Depth != nil {
		bn.el.AddClass("parallax-layer")
		t.layers = append(t.layers, layered{el: bn.el, depth: *b.Depth})
	}
	return bn
}

// splitWords replaces el's text with one child span per word.
func (t *tree) splitWords(el *dom.Element, text string) []*dom.Element {
	var words []*dom.Element
	for _, f := range strings.Fields(text) {
		w := t.doc.NewElement("", "span")
		w.AddClass(ClassWord)
		w.SetText(f)
		el.Append(w)
		words = append(words, w)
	}
	el.SetAttr("aria-label", text)
	return words
}
