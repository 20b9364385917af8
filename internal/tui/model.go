// Package tui previews a day page in the terminal. It drives the same
// accordion, code panel loader and visibility watcher as the site, on the
// bubbletea event loop.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/motion"
	"github.com/ziadkadry99/coursesite/internal/shell"
	"github.com/ziadkadry99/coursesite/internal/theme"
)

// frameInterval paces animation frames.
const frameInterval = time.Second / 60

// revealMargin is the bottom margin of the visibility watcher, in rows.
const revealMargin = 2

// ThemeSaver persists the theme preference.
type ThemeSaver interface {
	Save(ctx context.Context, t theme.Theme) error
}

// Options configure a Model.
type Options struct {
	Day    *content.Day
	Loader *highlight.Loader
	Saver  ThemeSaver
	Theme  theme.Theme
	// Clock drives every transition. Nil uses the wall clock.
	Clock motion.Clock
}

type tickMsg time.Time

// Model is the bubbletea model of the preview.
type Model struct {
	ctx    context.Context
	page   *shell.Page
	loader *highlight.Loader
	saver  ThemeSaver

	theme theme.Theme
	st    styles

	width, height int
	cursor        int
	scroll        int
	animating     bool
	status        string

	lines      []string
	headerRows []int
}

// NewModel mounts a page for opts.Day.
func NewModel(ctx context.Context, opts Options) *Model {
	clock := opts.Clock
	if clock == nil {
		clock = motion.SystemClock{}
	}
	t := theme.Parse(string(opts.Theme))
	m := &Model{
		ctx:    ctx,
		loader: opts.Loader,
		saver:  opts.Saver,
		theme:  t,
		st:     newStyles(t),
	}
	// Panel updates arrive as dispatched work; the refresh after every
	// message redraws them.
	m.page = shell.NewPage(opts.Day, opts.Loader, nil,
		shell.WithClock(clock),
		shell.WithRevealMargin(revealMargin),
	)
	m.page.Mount(ctx)
	return m
}

// Init implements tea.Model. Layout waits for the first window size.
func (m *Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// animate starts the frame ticker if a transition is running and none is
// scheduled yet.
func (m *Model) animate() tea.Cmd {
	if m.animating || m.page.Advance() {
		return nil
	}
	m.animating = true
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refresh()
		return m, m.animate()

	case tickMsg:
		m.animating = false
		m.refresh()
		return m, m.animate()

	case dispatchMsg:
		msg.fn()
		m.refresh()
		return m, m.animate()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.page.Day.Sessions
	switch msg.String() {
	case "q", "ctrl+c":
		m.page.Unmount()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case "down", "j":
		if m.cursor < len(sessions)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()

	case "enter", " ":
		if len(sessions) > 0 {
			m.page.Toggle(sessions[m.cursor].ID)
		}

	case "t":
		m.theme = m.theme.Toggle()
		m.st = newStyles(m.theme)
		m.status = ""
		if m.saver != nil {
			if err := m.saver.Save(m.ctx, m.theme); err != nil {
				log.Warn().Err(err).Msg("saving theme")
				m.status = "theme not saved"
			}
		}

	case "pgup":
		m.scrollBy(-m.viewHeight())

	case "pgdown":
		m.scrollBy(m.viewHeight())

	case "r":
		if m.loader.State() == highlight.Failed {
			m.loader.Retry(m.ctx)
		}
	}

	m.refresh()
	return m, m.animate()
}

func (m *Model) viewHeight() int {
	return max(m.height-1, 1)
}

func (m *Model) scrollBy(n int) {
	m.scroll += n
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxScroll := max(len(m.lines)-m.viewHeight(), 0)
	m.scroll = min(max(m.scroll, 0), maxScroll)
}

func (m *Model) ensureCursorVisible() {
	if m.cursor >= len(m.headerRows) {
		return
	}
	row := m.headerRows[m.cursor]
	h := m.viewHeight()
	if row < m.scroll {
		m.scroll = row
	} else if row >= m.scroll+h {
		m.scroll = row - h + 1
	}
}

// syncEngineTheme points a loaded engine at the current theme and drops
// panel output rendered in the other one.
func (m *Model) syncEngineTheme() {
	eng, err := m.loader.Engine()
	if err != nil {
		return
	}
	e, ok := eng.(*Engines)
	if !ok || e.Theme() == m.theme {
		return
	}
	e.SetTheme(m.theme)
	for _, p := range m.page.CodePanels() {
		p.Invalidate()
	}
}

// refresh lays the page out again, updates the watcher with the new
// section positions and viewport, and stores the lines View shows.
func (m *Model) refresh() {
	m.syncEngineTheme()
	lay := m.layout()
	m.lines = lay.lines
	m.headerRows = lay.headerRows
	for _, id := range shell.SectionOrder {
		if r, ok := lay.sections[id]; ok {
			m.page.Place(id, r)
		}
	}
	m.clampScroll()
	if fired := m.page.Scroll(m.viewport()); len(fired) > 0 {
		log.Debug().Strs("sections", fired).Msg("revealed")
	}
}

// Theme returns the active theme.
func (m *Model) Theme() theme.Theme { return m.theme }

// Page returns the mounted page.
func (m *Model) Page() *shell.Page { return m.page }
