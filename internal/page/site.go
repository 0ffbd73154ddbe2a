// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/page/site.go
// Summary: Wires a built page into the scroll, trigger, pin, carousel and timer core.
// Usage: NewSite, then drive Loop().Run or Loop().Frame; input methods run on the loop goroutine.
// Notes: Refresh is the only place geometry changes after construction.

package page

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/framegrace/texelpage/internal/carousel"
	"github.com/framegrace/texelpage/internal/dom"
	"github.com/framegrace/texelpage/internal/effects"
	"github.com/framegrace/texelpage/internal/indicator"
	"github.com/framegrace/texelpage/internal/loop"
	"github.com/framegrace/texelpage/internal/parallax"
	"github.com/framegrace/texelpage/internal/pin"
	"github.com/framegrace/texelpage/internal/scroll"
	"github.com/framegrace/texelpage/internal/toast"
	"github.com/framegrace/texelpage/internal/trigger"
)

// StaggerStep is the extra reveal delay per stagger-N class.
const StaggerStep = 100 * time.Millisecond

// CardTransition is how long carousel cards take to reach a new role.
const CardTransition = 500 * time.Millisecond

// Site is one live page.
type Site struct {
	page *Page
	set  Settings
	t    *tree
	log  *zap.Logger

	scroller  *scroll.Virtual
	loop      *loop.Loop
	triggers  *trigger.Registry
	anim      *effects.Animator
	pins      []pinBinding // section order
	carousels []*carouselBinding
	progress  *indicator.Progress
	sections  *indicator.Sections
	parallax  *parallax.Parallax
	toast     *toast.Toast

	resize  *loop.Task
	unsubs  []func()
	reduced bool
	closed  bool
}

type pinBinding struct {
	nodes *sectionNodes
	c     *pin.Controller
}

type carouselBinding struct {
	nodes  *sectionNodes
	c      *carousel.Carousel
	tweens []*effects.Tween
}

// NewSite builds the document for vp and binds every component.
func NewSite(p *Page, set Settings, vp dom.Viewport, log *zap.Logger) (*Site, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil page", ErrInvalidPage)
	}
	if set.Presets == nil {
		set.Presets = map[string]effects.EffectConfig{}
	}
	s := &Site{
		page: p,
		set:  set,
		t:    build(p, vp),
		log:  log,
	}

	s.scroller = scroll.NewVirtual(set.Scroll)
	s.anim = effects.NewAnimator(log)
	s.parallax = parallax.New(s.heroRegion(), log)
	s.parallax.SetSpring(set.ParallaxFrequency, set.ParallaxDamping)
	s.loop = loop.New(s.scroller, set.FPS, log, s.anim, s.parallax)
	s.triggers = trigger.NewRegistry(vp, log)

	for _, n := range s.t.sections {
		if n.spec.Kind != KindHorizontal {
			continue
		}
		c, ok := pin.New(n.el, n.track, set.PinMargin, log)
		if !ok {
			continue
		}
		c.SetScrub(set.PinScrub)
		s.pins = append(s.pins, pinBinding{nodes: n, c: c})
	}

	s.t.layout(vp, pinHeights(s.pins))
	for _, pb := range s.pins {
		pb.c.Refresh(vp)
	}
	s.scroller.SetLimit(s.t.doc.ScrollLimit())

	if err := s.bind(); err != nil {
		s.Teardown()
		return nil, err
	}
	s.SetReducedMotion(set.ReducedMotion)
	log.Info("Page: site ready",
		zap.Int("sections", len(s.t.sections)),
		zap.Int("triggers", s.triggers.Len()),
		zap.Float64("height", s.t.doc.Height()))
	return s, nil
}

func (s *Site) heroRegion() *dom.Element {
	for _, n := range s.t.sections {
		if n.spec.Kind == KindHero {
			return n.el
		}
	}
	return nil
}

func (s *Site) subscribe(phase scroll.Phase, l scroll.Listener) {
	s.unsubs = append(s.unsubs, s.scroller.Subscribe(phase, l))
}

func (s *Site) bind() error {
	s.subscribe(scroll.PhaseTriggers, s.triggers.Listener())
	for _, pb := range s.pins {
		s.subscribe(scroll.PhasePins, pb.c.Listener())
	}

	for _, r := range s.t.reveals {
		if err := s.bindReveal(r); err != nil {
			return err
		}
	}
	if err := s.bindFloats(); err != nil {
		return err
	}

	edge, err := trigger.ParseEdge(s.set.CounterStart)
	if err != nil {
		return fmt.Errorf("counter start: %w", err)
	}
	for _, el := range s.t.counters {
		indicator.BindCounter(s.triggers, s.anim, el, edge, s.set.CounterDuration)
	}

	indicator.BindThreshold(s.triggers, s.t.navbar, s.set.NavbarThreshold, ClassScrolled)
	indicator.BindThreshold(s.triggers, s.t.backToTop, s.set.BackToTopThreshold, ClassVisible)

	s.progress = indicator.NewProgress(s.t.doc, s.t.progress)
	s.subscribe(scroll.PhaseObservers, s.progress.Listener())
	s.sections = indicator.NewSections(s.t.doc, s.t.navLinks, s.log)
	s.subscribe(scroll.PhaseObservers, s.sections.Listener())

	for _, l := range s.t.layers {
		s.parallax.AddLayer(l.el, l.depth.X, l.depth.Y)
	}

	sched := s.loop.Scheduler()
	for _, n := range s.t.sections {
		if n.spec.Kind != KindTestimonials {
			continue
		}
		cb := &carouselBinding{nodes: n, tweens: make([]*effects.Tween, len(n.cards))}
		cb.c = carousel.New(n.region, n.cards, n.dots, sched, s.set.Carousel, s.log)
		s.placeCards(cb, false)
		cb.c.OnChange(func(int) { s.placeCards(cb, true) })
		cb.c.Start()
		s.carousels = append(s.carousels, cb)
	}

	s.toast = toast.New(s.t.toastBox, s.t.toastText, s.page.Toast, sched, s.set.Toast, s.log)
	s.toast.Start()
	return nil
}

func (s *Site) bindReveal(r revealed) error {
	extra := effects.EffectConfig{}
	if r.stagger > 0 {
		extra["delay_ms"] = float64(time.Duration(r.stagger) * StaggerStep / time.Millisecond)
	}
	p, err := s.set.Preset(r.preset, extra)
	if err != nil {
		return err
	}
	targets := r.targets
	if len(targets) == 0 {
		targets = []*dom.Element{r.el}
	}
	tw := s.anim.Tween(p.Spec, targets...)
	if tw == nil {
		return nil
	}
	start, err := trigger.ParseEdge(p.Start)
	if err != nil {
		return fmt.Errorf("preset %q: %w", p.ID, err)
	}
	b := trigger.Binding{
		Target:  r.el,
		Start:   start,
		OnEnter: func(st scroll.State) { tw.Play(st.Timestamp) },
	}
	if p.End != "" {
		end, err := trigger.ParseEdge(p.End)
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.ID, err)
		}
		b.End = &end
	}
	if p.Reverse {
		b.OnLeave = func(st scroll.State) { tw.Reverse(st.Timestamp) }
	}
	s.triggers.Register(b)
	return nil
}

// bindFloats starts the idle yoyo loops on the first frame.
func (s *Site) bindFloats() error {
	if len(s.t.floats) == 0 {
		return nil
	}
	p, err := s.set.Preset("float", nil)
	if err != nil {
		return err
	}
	sched := s.loop.Scheduler()
	for _, el := range s.t.floats {
		tw := s.anim.Tween(p.Spec, el)
		sched.After(0, func() { tw.Play(sched.Now()) })
	}
	return nil
}

// roleSlot maps a carousel role to a horizontal offset in card widths and an opacity.
func roleSlot(r carousel.Role) (slot, opacity float64) {
	switch r {
	case carousel.RoleRight:
		return 1, 0.5
	case carousel.RoleLeft:
		return -1, 0.5
	case carousel.RoleHiddenRight:
		return 2, 0
	case carousel.RoleHiddenLeft:
		return -2, 0
	}
	return 0, 1
}

// placeCards moves every card toward its role, tweened when animate is set.
func (s *Site) placeCards(cb *carouselBinding, animate bool) {
	now := s.loop.Scheduler().Now()
	for i, card := range cb.nodes.cards {
		s.anim.Release(cb.tweens[i])
		cb.tweens[i] = nil
		slot, opacity := roleSlot(cb.c.Role(i))
		to := effects.Props{X: slot * (card.Bounds().W + panelGap), Opacity: opacity}
		if !animate {
			card.UpdateStyle(func(st *dom.Style) {
				st.X, st.Opacity, st.Hidden = to.X, to.Opacity, to.Opacity <= 0
			})
			continue
		}
		cur := card.Style()
		tw := s.anim.Tween(effects.TweenSpec{
			From:      effects.Props{X: cur.X, Opacity: cur.Opacity},
			To:        to,
			Mask:      effects.PropX | effects.PropOpacity,
			Duration:  CardTransition,
			Ease:      effects.PowerOut(2),
			AutoAlpha: true,
		}, card)
		tw.Play(now)
		cb.tweens[i] = tw
	}
}

// Refresh recomputes all geometry for vp: layout, then pins, then trigger
// ranges and indicators, then re-applies the current scroll state.
func (s *Site) Refresh(vp dom.Viewport) {
	if s.closed {
		return
	}
	s.t.layout(vp, pinHeights(s.pins))
	for _, pb := range s.pins {
		pb.c.Refresh(vp)
	}
	s.triggers.Refresh(vp)
	s.sections.SetViewport(vp)
	s.scroller.SetLimit(s.t.doc.ScrollLimit())
	for _, cb := range s.carousels {
		s.placeCards(cb, false)
	}
	st := s.scroller.State()
	for _, pb := range s.pins {
		pb.c.Apply(st)
	}
	s.progress.Update(st)
	s.log.Debug("Page: refreshed",
		zap.Float64("width", vp.W), zap.Float64("height", vp.H),
		zap.Float64("limit", s.scroller.Limit()))
}

// Resize schedules a Refresh after the debounce window, replacing any
// pending one.
func (s *Site) Resize(vp dom.Viewport) {
	if s.closed {
		return
	}
	s.resize.Cancel()
	s.resize = s.loop.Scheduler().After(s.set.ResizeDebounce, func() {
		s.resize = nil
		s.Refresh(vp)
	})
}

// SetReducedMotion switches every motion source between animated and instant.
func (s *Site) SetReducedMotion(on bool) {
	s.reduced = on
	s.anim.SetEnabled(!on)
	s.scroller.SetSmooth(s.set.Scroll.Smooth && !on)
	s.parallax.SetEnabled(s.set.Parallax && !on)
	for _, pb := range s.pins {
		if on {
			pb.c.SetScrub(0)
		} else {
			pb.c.SetScrub(s.set.PinScrub)
		}
	}
}

// ReducedMotion reports the current motion mode.
func (s *Site) ReducedMotion() bool { return s.reduced }

// ApplySettings takes the live-tunable parts of set; geometry settings
// wait for the next Refresh.
func (s *Site) ApplySettings(set Settings) {
	set.ReducedMotion = s.reduced
	if set.Presets == nil {
		set.Presets = s.set.Presets
	}
	s.set = set
	s.parallax.SetSpring(set.ParallaxFrequency, set.ParallaxDamping)
	s.SetReducedMotion(s.reduced)
	s.Refresh(s.t.doc.Viewport())
}

// Teardown stops every timer and releases every binding.
func (s *Site) Teardown() {
	if s.closed {
		return
	}
	s.closed = true
	s.resize.Cancel()
	for _, cb := range s.carousels {
		cb.c.Teardown()
	}
	if s.toast != nil {
		s.toast.Close()
	}
	for _, pb := range s.pins {
		pb.c.Teardown()
	}
	s.triggers.Teardown()
	s.anim.Teardown()
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
	s.loop.Scheduler().Clear()
	s.log.Debug("Page: torn down")
}

// Loop returns the frame driver.
func (s *Site) Loop() *loop.Loop { return s.loop }

// Document returns the live document.
func (s *Site) Document() *dom.Document { return s.t.doc }

// Position is the current virtual scroll position.
func (s *Site) Position() float64 { return s.scroller.Position() }

// Viewport is the size the site was last laid out for.
func (s *Site) Viewport() dom.Viewport { return s.t.doc.Viewport() }

// ActiveSection is the id highlighted in the navbar.
func (s *Site) ActiveSection() string { return s.sections.Active() }

// Progress is the scroll progress in [0, 1].
func (s *Site) Progress() float64 { return s.progress.Value() }

// Carousel returns the i-th carousel, or nil.
func (s *Site) Carousel(i int) *carousel.Carousel {
	if i < 0 || i >= len(s.carousels) {
		return nil
	}
	return s.carousels[i].c
}

// Pin returns the controller of the horizontal section id, or nil.
func (s *Site) Pin(id string) *pin.Controller {
	for _, pb := range s.pins {
		if pb.nodes.spec.ID == id {
			return pb.c
		}
	}
	return nil
}

// Toast returns the social-proof toast.
func (s *Site) Toast() *toast.Toast { return s.toast }

// SectionTop is the scroll position that brings section id to the top.
func (s *Site) SectionTop(id string) (float64, bool) {
	el, ok := s.t.doc.ByID(id)
	if !ok {
		return 0, false
	}
	return math.Min(el.Bounds().Y, s.scroller.Limit()), true
}
