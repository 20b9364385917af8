package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/coursesite/internal/accordion"
	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/motion"
	"github.com/ziadkadry99/coursesite/internal/progress"
	"github.com/ziadkadry99/coursesite/internal/reveal"
	"github.com/ziadkadry99/coursesite/internal/theme"
)

// Options configures a Generator.
type Options struct {
	OutputDir  string
	Language   string
	LightStyle string
	DarkStyle  string
	// LiveReload adds the live reload client to every page.
	LiveReload bool
	Reporter   progress.Reporter
}

// Generator renders a course into a static site.
type Generator struct {
	opts    Options
	md      goldmark.Markdown
	pages   *template.Template
	engines map[theme.Theme]highlight.Engine
}

// NewGenerator validates opts and prepares templates and highlighters.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Discard{}
	}

	engines := make(map[theme.Theme]highlight.Engine, 2)
	for t, style := range map[theme.Theme]string{theme.Light: opts.LightStyle, theme.Dark: opts.DarkStyle} {
		e, err := highlight.NewChromaEngine(highlight.Options{
			Language: opts.Language,
			Style:    style,
			Format:   highlight.FormatHTML,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s highlighter: %w", t, err)
		}
		engines[t] = e
	}

	// Initialize goldmark with extensions.
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.LightStyle),
				highlighting.WithFormatOptions(
					chromahtml.TabWidth(2),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	pages, err := template.New("page").Funcs(template.FuncMap{
		"doneGlyph":   func() string { return accordion.DoneGlyph },
		"placeholder": func() string { return highlight.Placeholder },
		"icon":        iconGlyph,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &Generator{opts: opts, md: md, pages: pages, engines: engines}, nil
}

// navLink is one entry of the header navigation.
type navLink struct {
	Label  string
	Href   string
	Active bool
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title      string
	Course     *content.Course
	Day        *content.Day
	Summary    template.HTML
	Exercises  []template.HTML
	Nav        []navLink
	BasePath   string
	LiveReload bool
}

// Generate writes the full site for course. It returns the number of HTML
// pages written.
func (g *Generator) Generate(ctx context.Context, course *content.Course) (int, error) {
	out := g.opts.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return 0, err
	}

	total := 1 + len(course.Days)
	g.opts.Reporter.Start(total)
	defer g.opts.Reporter.Finish()

	if err := g.writeAssets(); err != nil {
		return 0, err
	}

	if err := WriteSearchIndex(BuildSearchIndex(course), filepath.Join(out, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	// Landing page.
	landing := pageData{
		Title:      course.Title,
		Course:     course,
		Nav:        navFor(course, "", ""),
		LiveReload: g.opts.LiveReload,
	}
	if err := g.writePage(filepath.Join(out, "index.html"), "landing", landing); err != nil {
		return 0, fmt.Errorf("rendering landing page: %w", err)
	}
	g.opts.Reporter.Update(1, "index.html")

	for i := range course.Days {
		if err := ctx.Err(); err != nil {
			return i + 1, err
		}
		day := &course.Days[i]
		if err := g.renderDay(course, day); err != nil {
			return i + 1, fmt.Errorf("rendering %s: %w", day.Slug, err)
		}
		g.opts.Reporter.Update(i+2, day.Slug+"/index.html")
	}

	log.Info().Int("pages", total).Str("output", out).Msg("site generated")
	return total, nil
}

func (g *Generator) renderDay(course *content.Course, day *content.Day) error {
	data := pageData{
		Title:      fmt.Sprintf("Day %d: %s | %s", day.Number, day.Title, course.Title),
		Course:     course,
		Day:        day,
		Nav:        navFor(course, day.Slug, "../"),
		BasePath:   "../",
		LiveReload: g.opts.LiveReload,
	}

	summary, err := g.markdown(day.Summary)
	if err != nil {
		return fmt.Errorf("converting summary: %w", err)
	}
	data.Summary = summary
	for _, ex := range day.Exercises {
		h, err := g.markdown(ex)
		if err != nil {
			return fmt.Errorf("converting exercise: %w", err)
		}
		data.Exercises = append(data.Exercises, h)
	}

	if err := g.writePage(filepath.Join(g.opts.OutputDir, day.Slug, "index.html"), "day", data); err != nil {
		return err
	}

	chunk, err := BuildPanelChunk(day, g.engines)
	if err != nil {
		return fmt.Errorf("highlighting code panels: %w", err)
	}
	return writeJSON(filepath.Join(g.opts.OutputDir, "panels", day.Slug+".json"), chunk)
}

// markdown converts a markdown block. Empty input yields empty output.
func (g *Generator) markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (g *Generator) writePage(path, name string, data pageData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return g.pages.ExecuteTemplate(f, name, data)
}

// navFor builds the header navigation as seen from a page at depth basePath.
func navFor(course *content.Course, activeSlug, basePath string) []navLink {
	links := []navLink{{Label: "Home", Href: basePath, Active: activeSlug == ""}}
	if links[0].Href == "" {
		links[0].Href = "./"
	}
	for _, d := range course.Days {
		links = append(links, navLink{
			Label:  fmt.Sprintf("Day %d", d.Number),
			Href:   basePath + d.Slug + "/",
			Active: d.Slug == activeSlug,
		})
	}
	return links
}

// assetData feeds the stylesheet and script templates.
type assetData struct {
	PanelMS      int64
	RevealMS     int64
	RevealOffset float64
	ChevronOpen  float64
	Threshold    float64
	BottomMargin float64
	FontSize     string
	CornerRadius string
	Placeholder  string
	ThemeKey     string
}

func newAssetData() assetData {
	return assetData{
		PanelMS:      motion.PanelDuration.Milliseconds(),
		RevealMS:     motion.RevealDuration.Milliseconds(),
		RevealOffset: reveal.HiddenOffset,
		ChevronOpen:  motion.ChevronOpen,
		Threshold:    reveal.Threshold,
		BottomMargin: reveal.BottomMargin,
		FontSize:     highlight.FontSize,
		CornerRadius: highlight.CornerRadius,
		Placeholder:  jsString(highlight.Placeholder),
		ThemeKey:     jsString(theme.PreferenceKey),
	}
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// writeAssets renders style.css and script.js.
func (g *Generator) writeAssets() error {
	data := newAssetData()
	for name, src := range map[string]string{"style.css": cssTemplate, "script.js": jsTemplate} {
		tmpl, err := texttemplate.New(name).Parse(src)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(g.opts.OutputDir, name), buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
