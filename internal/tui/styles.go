package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ziadkadry99/coursesite/internal/theme"
)

// palette holds the hex colors of one theme variant. They match the site
// stylesheet.
type palette struct {
	Bg      string
	Surface string
	Text    string
	Muted   string
	Accent  string
	Success string
	Border  string
}

var palettes = map[theme.Theme]palette{
	theme.Light: {
		Bg:      "#ffffff",
		Surface: "#f8f9fa",
		Text:    "#212529",
		Muted:   "#868e96",
		Accent:  "#228be6",
		Success: "#2f9e44",
		Border:  "#dee2e6",
	},
	theme.Dark: {
		Bg:      "#1a1b26",
		Surface: "#1f2030",
		Text:    "#c0caf5",
		Muted:   "#565f89",
		Accent:  "#7aa2f7",
		Success: "#9ece6a",
		Border:  "#292e42",
	},
}

// blend mixes fg toward bg. An opacity of 1 is fg, 0 is bg.
func blend(fg, bg string, opacity float64) string {
	f, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	opacity = min(max(opacity, 0), 1)
	return b.BlendLab(f, opacity).Clamped().Hex()
}

// styles are the lipgloss styles for one theme at full opacity.
type styles struct {
	pal       palette
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Heading   lipgloss.Style
	Header    lipgloss.Style
	Focused   lipgloss.Style
	Duration  lipgloss.Style
	Done      lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	StatusBar lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p := palettes[t]
	return styles{
		pal:       p,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Text)),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		Focused:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		Duration:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Done:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Success)),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Background(lipgloss.Color(p.Surface)),
	}
}

// faded returns s with its foreground blended toward the background.
func (st styles) faded(s lipgloss.Style, fg string, opacity float64) lipgloss.Style {
	if opacity >= 1 {
		return s
	}
	return s.Foreground(lipgloss.Color(blend(fg, st.pal.Bg, opacity)))
}
