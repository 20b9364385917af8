// Package shell composes one day page: hero, session accordion, summary and
// exercises. It owns the accordion, the code panels of the open session and
// the visibility watcher over the page sections.
package shell

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/coursesite/internal/accordion"
	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/motion"
	"github.com/ziadkadry99/coursesite/internal/reveal"
)

// Section ids, in page order.
const (
	Hero      = "hero"
	Sessions  = "sessions"
	Summary   = "summary"
	Exercises = "exercises"
)

// SectionOrder lists the sections from top to bottom.
var SectionOrder = []string{Hero, Sessions, Summary, Exercises}

// Page is a mounted day page. It is driven from a single event loop.
type Page struct {
	Day *content.Day

	loader   *highlight.Loader
	clock    motion.Clock
	margin   float64
	onUpdate func()

	ctx      context.Context
	mounted  bool
	acc      *accordion.Accordion
	panels   []*highlight.Panel
	watcher  *reveal.Watcher
	sections map[string]*reveal.Section
}

// Option configures a Page.
type Option func(*Page)

// WithRevealMargin sets the bottom margin of the visibility watcher.
func WithRevealMargin(margin float64) Option {
	return func(p *Page) { p.margin = margin }
}

// WithClock sets the clock driving every transition on the page.
func WithClock(c motion.Clock) Option {
	return func(p *Page) { p.clock = c }
}

// NewPage returns an unmounted page for day. onUpdate is called whenever a
// code panel of the page has new content to show.
func NewPage(day *content.Day, loader *highlight.Loader, onUpdate func(), opts ...Option) *Page {
	p := &Page{
		Day:      day,
		loader:   loader,
		clock:    motion.SystemClock{},
		margin:   reveal.BottomMargin,
		onUpdate: onUpdate,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.reset()
	return p
}

func (p *Page) reset() {
	p.acc = accordion.New(p.Day.Sessions, p.clock)
	p.acc.OnChange(p.sync)
	p.panels = nil
	p.watcher = reveal.NewWatcher().WithMargin(p.margin)
	p.sections = make(map[string]*reveal.Section, len(SectionOrder))
	for _, id := range SectionOrder {
		p.sections[id] = reveal.NewSection()
	}
}

// Mount starts the page lifecycle. Every mount begins fully collapsed with
// every section hidden.
func (p *Page) Mount(ctx context.Context) {
	if p.mounted {
		return
	}
	p.reset()
	p.ctx = ctx
	p.mounted = true
	log.Debug().Str("day", p.Day.Slug).Msg("page mounted")
}

// Unmount tears down the code panels and the visibility watcher.
func (p *Page) Unmount() {
	if !p.mounted {
		return
	}
	p.unmountPanels()
	p.watcher.Close()
	p.mounted = false
	log.Debug().Str("day", p.Day.Slug).Msg("page unmounted")
}

// Mounted reports whether the page is mounted.
func (p *Page) Mounted() bool { return p.mounted }

// Toggle opens or closes session id.
func (p *Page) Toggle(id int) accordion.Change {
	return p.acc.Toggle(id)
}

// sync keeps the mounted code panels equal to the detailed topics of the
// open session.
func (p *Page) sync(ch accordion.Change) {
	if ch.Collapsed != accordion.None {
		p.unmountPanels()
	}
	if ch.Expanded == accordion.None || !p.mounted {
		return
	}
	s, err := p.Day.Session(ch.Expanded)
	if err != nil {
		return
	}
	for _, t := range s.DetailedTopics.All() {
		panel := highlight.NewPanel(t, p.loader, p.onUpdate)
		panel.Mount(p.ctx)
		p.panels = append(p.panels, panel)
	}
}

func (p *Page) unmountPanels() {
	for _, panel := range p.panels {
		panel.Unmount()
	}
	p.panels = nil
}

// Accordion returns the session accordion of the page.
func (p *Page) Accordion() *accordion.Accordion { return p.acc }

// CodePanels returns the mounted code panels of the open session in topic
// order.
func (p *Page) CodePanels() []*highlight.Panel { return p.panels }

// Place registers section id at rect with the visibility watcher. Placing
// it again moves it.
func (p *Page) Place(id string, rect reveal.Rect) {
	sec, ok := p.sections[id]
	if !ok || sec.Revealed() || !p.mounted {
		return
	}
	p.watcher.Observe(id, rect, func() { sec.Reveal(p.clock.Now()) })
}

// Scroll reports the current viewport and returns the sections it revealed.
func (p *Page) Scroll(viewport reveal.Rect) []string {
	return p.watcher.Update(viewport)
}

// Section returns the reveal state of section id.
func (p *Page) Section(id string) *reveal.Section { return p.sections[id] }

// Advance steps every transition on the page and reports whether all of
// them have finished.
func (p *Page) Advance() bool {
	settled := p.acc.Advance()
	now := p.clock.Now()
	for _, sec := range p.sections {
		if sec.Revealed() && !sec.Done(now) {
			settled = false
		}
	}
	return settled
}

// Now returns the page clock's current time.
func (p *Page) Now() time.Time { return p.clock.Now() }
