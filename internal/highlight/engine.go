// Package highlight renders code topics with syntax highlighting and loads
// the highlighting engine lazily, once per process.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Placeholder is shown in place of a code panel until the engine is ready.
const Placeholder = "Loading..."

// Fixed presentation of every code panel.
const (
	FontSize     = "14px"
	CornerRadius = "8px"
)

// Format selects the output of an engine.
type Format string

const (
	FormatHTML     Format = "html"
	FormatTerminal Format = "terminal256"
)

// Engine converts code text into highlighted output.
type Engine interface {
	Highlight(w io.Writer, code string) error
}

// Options configure a ChromaEngine.
type Options struct {
	Language string
	Style    string
	Format   Format
}

// ChromaEngine highlights with chroma using one language, one style and one
// output format for its whole lifetime.
type ChromaEngine struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewChromaEngine builds the lexer, style and formatter named by opts.
// Unknown languages fall back to plain text; unknown styles fall back to
// chroma's default style.
func NewChromaEngine(opts Options) (*ChromaEngine, error) {
	lexer := lexers.Get(opts.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	var formatter chroma.Formatter
	switch opts.Format {
	case FormatHTML, "":
		formatter = html.New(
			html.WithClasses(false),
			html.TabWidth(2),
			html.WithPreWrapper(panelWrapper{}),
		)
	case FormatTerminal:
		formatter = formatters.Get(string(FormatTerminal))
	default:
		return nil, fmt.Errorf("unknown highlight format %q", opts.Format)
	}

	return &ChromaEngine{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(opts.Style),
		formatter: formatter,
	}, nil
}

// Highlight writes code, verbatim, as highlighted output.
func (e *ChromaEngine) Highlight(w io.Writer, code string) error {
	it, err := e.lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenising: %w", err)
	}
	return e.formatter.Format(w, e.style, it)
}

// panelWrapper replaces chroma's <pre> so the panel background stays
// transparent whatever the style says.
type panelWrapper struct{}

func (panelWrapper) Start(code bool, styleAttr string) string {
	attrs := []string{
		"background:transparent",
		"font-size:" + FontSize,
		"border-radius:" + CornerRadius,
		"margin:0",
		"padding:1rem",
		"overflow-x:auto",
	}
	// Keep the style's text colour, drop its background.
	decls := strings.TrimSpace(styleAttr)
	decls = strings.TrimSuffix(strings.TrimPrefix(decls, `style="`), `"`)
	for _, decl := range strings.Split(decls, ";") {
		decl = strings.TrimSpace(decl)
		if strings.HasPrefix(decl, "color:") {
			attrs = append(attrs, decl)
		}
	}
	s := `<pre class="code-panel" style="` + strings.Join(attrs, ";") + `">`
	if code {
		s += "<code>"
	}
	return s
}

func (panelWrapper) End(code bool) string {
	if code {
		return "</code></pre>"
	}
	return "</pre>"
}
