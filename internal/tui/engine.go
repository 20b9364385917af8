package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/theme"
)

// Engines highlights for the terminal in the style of the active theme.
// SetTheme and Highlight are called from the program's event loop.
type Engines struct {
	variants map[theme.Theme]highlight.Engine
	active   theme.Theme
}

// SetTheme selects the variant used by Highlight.
func (e *Engines) SetTheme(t theme.Theme) { e.active = t }

// Theme returns the active variant.
func (e *Engines) Theme() theme.Theme { return e.active }

// Highlight implements highlight.Engine.
func (e *Engines) Highlight(w io.Writer, code string) error {
	eng, ok := e.variants[e.active]
	if !ok {
		eng = e.variants[theme.Default]
	}
	return eng.Highlight(w, code)
}

// LoadEngines returns a LoadFunc building terminal engines for both theme
// variants.
func LoadEngines(language, lightStyle, darkStyle string) highlight.LoadFunc {
	return func(ctx context.Context) (highlight.Engine, error) {
		e := &Engines{variants: make(map[theme.Theme]highlight.Engine, 2), active: theme.Default}
		for t, style := range map[theme.Theme]string{theme.Light: lightStyle, theme.Dark: darkStyle} {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			eng, err := highlight.NewChromaEngine(highlight.Options{
				Language: language,
				Style:    style,
				Format:   highlight.FormatTerminal,
			})
			if err != nil {
				return nil, fmt.Errorf("creating %s engine: %w", t, err)
			}
			e.variants[t] = eng
		}
		return e, nil
	}
}
