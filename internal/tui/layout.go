package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/coursesite/internal/accordion"
	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/reveal"
	"github.com/ziadkadry99/coursesite/internal/shell"
)

// colsPerOffset converts the reveal offset, given in pixels, to columns.
const colsPerOffset = 8.0

const (
	chevronDown = "▼"
	chevronUp   = "▲"
	cursorMark  = "›"
)

type pageLayout struct {
	lines      []string
	sections   map[string]reveal.Rect
	headerRows []int
}

// layout renders the whole page into lines. Sections are faded and shifted
// according to their reveal state.
func (m *Model) layout() pageLayout {
	out := pageLayout{sections: make(map[string]reveal.Rect, len(shell.SectionOrder))}
	now := m.page.Now()
	for _, id := range shell.SectionOrder {
		op, off := 1.0, 0.0
		if sec := m.page.Section(id); sec != nil {
			op, off = sec.Style(now)
		}
		var lines []string
		switch id {
		case shell.Hero:
			lines = m.heroLines(op)
		case shell.Sessions:
			var rows []int
			lines, rows = m.sessionLines(op)
			for _, r := range rows {
				out.headerRows = append(out.headerRows, len(out.lines)+r)
			}
		case shell.Summary:
			lines = m.summaryLines(op)
		case shell.Exercises:
			lines = m.exerciseLines(op)
		}
		if len(lines) == 0 {
			continue
		}
		pad := strings.Repeat(" ", int(math.Round(off/colsPerOffset)))
		out.sections[id] = reveal.Rect{Top: float64(len(out.lines)), Height: float64(len(lines))}
		for _, l := range lines {
			out.lines = append(out.lines, pad+l)
		}
		out.lines = append(out.lines, "")
	}
	return out
}

func (m *Model) wrap(s string, indent int) []string {
	w := max(m.width-indent-2, 10)
	text := lipgloss.NewStyle().Width(w).Render(strings.TrimSpace(s))
	lines := strings.Split(text, "\n")
	prefix := strings.Repeat(" ", indent)
	for i, l := range lines {
		lines[i] = prefix + strings.TrimRight(l, " ")
	}
	return lines
}

func (m *Model) heroLines(op float64) []string {
	d := m.page.Day
	title := m.st.faded(m.st.Title, m.st.pal.Text, op)
	sub := m.st.faded(m.st.Subtitle, m.st.pal.Muted, op)
	accent := m.st.faded(m.st.Heading, m.st.pal.Accent, op)
	lines := []string{
		accent.Render(fmt.Sprintf("Day %d", d.Number)),
		title.Render(d.Title),
	}
	for _, l := range m.wrap(d.Subtitle, 0) {
		lines = append(lines, sub.Render(l))
	}
	return lines
}

// sessionLines renders the accordion and returns the row of every session
// header relative to the section.
func (m *Model) sessionLines(op float64) ([]string, []int) {
	heading := m.st.faded(m.st.Heading, m.st.pal.Accent, op)
	header := m.st.faded(m.st.Header, m.st.pal.Text, op)
	focused := m.st.faded(m.st.Focused, m.st.pal.Accent, op)
	dur := m.st.faded(m.st.Duration, m.st.pal.Muted, op)

	lines := []string{heading.Render("Sessions"), ""}
	views := m.page.Accordion().Panels()
	rows := make([]int, 0, len(views))
	for i, v := range views {
		rows = append(rows, len(lines))
		mark, hs := " ", header
		if i == m.cursor {
			mark, hs = cursorMark, focused
		}
		chev := chevronDown
		if v.ChevronUp() {
			chev = chevronUp
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
			hs.Render(mark), hs.Render(v.Session.Title), dur.Render(v.Session.Duration), hs.Render(chev)))
		if v.Frame.InFlow() {
			lines = append(lines, m.bodyLines(v, op)...)
		}
	}
	return lines, rows
}

// bodyLines renders the part of a session body its frame uncovers.
func (m *Model) bodyLines(v accordion.PanelView, op float64) []string {
	detail := v.Detail
	if detail == nil {
		// A collapsing session keeps its body until the transition ends.
		detail = accordion.DetailOf(v.Session)
	}
	opacity := op * v.Frame.Opacity
	body := m.st.faded(m.st.Body, m.st.pal.Text, opacity)
	done := m.st.faded(m.st.Done, m.st.pal.Success, opacity)
	muted := m.st.faded(m.st.Muted, m.st.pal.Muted, opacity)

	var all []string
	for _, l := range m.wrap(detail.Description, 4) {
		all = append(all, body.Render(l))
	}
	for _, item := range detail.Checklist {
		glyph, text, _ := strings.Cut(item, " ")
		all = append(all, "    "+done.Render(glyph)+" "+body.Render(text))
	}
	for _, t := range detail.Code {
		all = append(all, "", "    "+muted.Render(t.Title))
		code := highlight.Placeholder
		if v.Expanded {
			code = m.panelView(t.Key)
		}
		for _, l := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
			all = append(all, "      "+l)
		}
	}

	n := int(math.Ceil(v.Frame.Size * float64(len(all))))
	return all[:min(max(n, 0), len(all))]
}

func (m *Model) panelView(key string) string {
	for _, p := range m.page.CodePanels() {
		if p.Topic.Key == key {
			return p.View()
		}
	}
	return highlight.Placeholder
}

func (m *Model) summaryLines(op float64) []string {
	if m.page.Day.Summary == "" {
		return nil
	}
	heading := m.st.faded(m.st.Heading, m.st.pal.Accent, op)
	body := m.st.faded(m.st.Body, m.st.pal.Text, op)
	lines := []string{heading.Render("Summary")}
	for _, l := range m.wrap(m.page.Day.Summary, 0) {
		lines = append(lines, body.Render(l))
	}
	return lines
}

func (m *Model) exerciseLines(op float64) []string {
	if len(m.page.Day.Exercises) == 0 {
		return nil
	}
	heading := m.st.faded(m.st.Heading, m.st.pal.Accent, op)
	body := m.st.faded(m.st.Body, m.st.pal.Text, op)
	lines := []string{heading.Render("Exercises")}
	for i, ex := range m.page.Day.Exercises {
		for j, l := range m.wrap(ex, 4) {
			if j == 0 {
				l = fmt.Sprintf("%2d. %s", i+1, strings.TrimLeft(l, " "))
			}
			lines = append(lines, body.Render(l))
		}
	}
	return lines
}

func (m *Model) viewport() reveal.Rect {
	return reveal.Rect{Top: float64(m.scroll), Height: float64(m.viewHeight())}
}

func (m *Model) statusLine() string {
	help := "j/k move  enter open  t theme  pgup/pgdn scroll  q quit"
	var state string
	switch m.loader.State() {
	case highlight.Loading:
		state = "highlighter loading"
	case highlight.Failed:
		state = "highlighter failed, r to retry"
	}
	parts := []string{help, string(m.theme)}
	if state != "" {
		parts = append(parts, state)
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.st.StatusBar.Width(max(m.width, 1)).Render(" " + strings.Join(parts, " | "))
}

// View implements tea.Model.
func (m *Model) View() string {
	h := m.viewHeight()
	end := min(m.scroll+h, len(m.lines))
	visible := append([]string(nil), m.lines[m.scroll:end]...)
	for len(visible) < h {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n") + "\n" + m.statusLine()
}
