package site

import (
	"context"
	"encoding/json"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/theme"
)

func sampleCourse(t *testing.T) *content.Course {
	t.Helper()
	course, err := content.Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	return course
}

func generate(t *testing.T, opts Options) (string, *content.Course) {
	t.Helper()
	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	if opts.Language == "" {
		opts.Language = "dart"
		opts.LightStyle = "github"
		opts.DarkStyle = "dracula"
	}
	gen, err := NewGenerator(opts)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	course := sampleCourse(t)
	pages, err := gen.Generate(context.Background(), course)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if pages != 1+len(course.Days) {
		t.Errorf("pages = %d, want %d", pages, 1+len(course.Days))
	}
	return opts.OutputDir, course
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func TestFullSiteGeneration(t *testing.T) {
	out, course := generate(t, Options{})

	expectedFiles := []string{
		"index.html",
		"style.css",
		"script.js",
		"search-index.json",
	}
	for _, d := range course.Days {
		expectedFiles = append(expectedFiles, d.Slug+"/index.html", "panels/"+d.Slug+".json")
	}
	for _, f := range expectedFiles {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(f))); err != nil {
			t.Errorf("expected file %s: %v", f, err)
		}
	}

	index := readFile(t, out, "index.html")
	for _, want := range []string{course.Title, course.Tagline, `href="day1/"`, `href="style.css"`, `data-reveal="hero"`} {
		if !strings.Contains(index, want) {
			t.Errorf("index.html missing %q", want)
		}
	}
}

func TestDayPageRendersCollapsedAccordion(t *testing.T) {
	out, course := generate(t, Options{})
	day := course.Days[0]
	page := readFile(t, out, day.Slug+"/index.html")

	if !strings.Contains(page, `../style.css`) {
		t.Error("day page should reference ../style.css")
	}
	if got := strings.Count(page, `class="session" id="session-`); got != len(day.Sessions) {
		t.Errorf("sessions rendered = %d, want %d", got, len(day.Sessions))
	}
	if strings.Contains(page, `aria-expanded="true"`) {
		t.Error("no session should be expanded in the static page")
	}
	// Detail lives in an inert template until a session is opened.
	if got := strings.Count(page, `<template class="session-detail">`); got != len(day.Sessions) {
		t.Errorf("detail templates = %d, want %d", got, len(day.Sessions))
	}
	if !strings.Contains(page, `data-panel="1/variables"`) {
		t.Error("missing code slot for 1/variables")
	}
	if !strings.Contains(page, highlight.Placeholder) {
		t.Error("code slots should start with the placeholder")
	}
	if !strings.Contains(page, "✓") {
		t.Error("topics should carry the done glyph")
	}
	if strings.Contains(page, "Born in $year") {
		t.Error("code should only ship in the lazily loaded panel chunk")
	}
	if !strings.Contains(page, `data-panels="../panels/day1.json"`) {
		t.Error("accordion should point at its panel chunk")
	}
	// Summary and exercises are markdown.
	if !strings.Contains(page, "<strong>variables</strong>") {
		t.Error("summary markdown not rendered")
	}
	if !strings.Contains(page, "<code>for-in</code>") {
		t.Error("exercise markdown not rendered")
	}
	if !strings.Contains(page, `class="active" aria-current="page">Day 1</a>`) {
		t.Error("navigation should mark the current day")
	}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func TestPanelChunkIsVerbatim(t *testing.T) {
	out, course := generate(t, Options{})
	day := course.Days[0]

	var chunk map[string]map[string]string
	if err := json.Unmarshal([]byte(readFile(t, out, "panels/"+day.Slug+".json")), &chunk); err != nil {
		t.Fatalf("parsing chunk: %v", err)
	}

	want := 0
	for _, s := range day.Sessions {
		want += s.DetailedTopics.Len()
	}
	if len(chunk) != want {
		t.Errorf("chunk entries = %d, want %d", len(chunk), want)
	}

	topic, _ := day.Sessions[0].DetailedTopics.Get("variables")
	entry := chunk[PanelKey(1, "variables")]
	for _, variant := range []theme.Theme{theme.Light, theme.Dark} {
		markup := entry[variant.String()]
		if !strings.Contains(markup, "background:transparent") {
			t.Errorf("%s panel should have a transparent background", variant)
		}
		text := html.UnescapeString(tagPattern.ReplaceAllString(markup, ""))
		if strings.TrimRight(text, "\n") != strings.TrimRight(topic.Code, "\n") {
			t.Errorf("%s panel text = %q, want %q", variant, text, topic.Code)
		}
	}
	if entry["light"] == entry["dark"] {
		t.Error("light and dark panels should differ")
	}
}

func TestAssetsUseMotionConstants(t *testing.T) {
	out, _ := generate(t, Options{})

	css := readFile(t, out, "style.css")
	for _, want := range []string{"--panel-duration: 300ms;", "--reveal-duration: 700ms;", "--reveal-offset: 32px;", "--chevron-open: 180deg;", "font-size: 14px;", "border-radius: 8px;"} {
		if !strings.Contains(css, want) {
			t.Errorf("style.css missing %q", want)
		}
	}

	js := readFile(t, out, "script.js")
	for _, want := range []string{
		"var PANEL_MS = 300;",
		"var REVEAL_THRESHOLD = 0.1;",
		`var REVEAL_MARGIN = "0px 0px -50px 0px";`,
		`var PLACEHOLDER = "Loading...";`,
		`var THEME_KEY = "theme";`,
	} {
		if !strings.Contains(js, want) {
			t.Errorf("script.js missing %q", want)
		}
	}
}

func TestLiveReloadClient(t *testing.T) {
	out, _ := generate(t, Options{})
	if strings.Contains(readFile(t, out, "index.html"), "/livereload") {
		t.Error("live reload client should be off by default")
	}

	out, _ = generate(t, Options{LiveReload: true})
	if !strings.Contains(readFile(t, out, "day1/index.html"), "/livereload") {
		t.Error("live reload client missing")
	}
}

func TestSearchIndex(t *testing.T) {
	course := sampleCourse(t)
	entries := BuildSearchIndex(course)

	sessions := 0
	for _, d := range course.Days {
		sessions += len(d.Sessions)
	}
	if len(entries) != len(course.Days)+sessions {
		t.Fatalf("entries = %d, want %d", len(entries), len(course.Days)+sessions)
	}
	if entries[0].Path != "day1/" || !strings.HasPrefix(entries[0].Title, "Day 1:") {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Path != "day1/#session-1" {
		t.Errorf("session entry path = %q", entries[1].Path)
	}
	if !strings.Contains(entries[1].Content, "Declaring variables") {
		t.Errorf("session entry should index code topic titles: %q", entries[1].Content)
	}
	if strings.Contains(entries[0].Content, "**") {
		t.Error("markdown markers should be stripped")
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	if _, err := NewGenerator(Options{Language: "dart"}); err == nil {
		t.Error("expected error without output dir")
	}
	if _, err := NewGenerator(Options{OutputDir: t.TempDir(), Language: "dart", LightStyle: "github", DarkStyle: "dracula"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	gen, err := NewGenerator(Options{OutputDir: t.TempDir(), Language: "dart", LightStyle: "github", DarkStyle: "dracula"})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx, sampleCourse(t)); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestIconGlyph(t *testing.T) {
	if iconGlyph("rocket") != "🚀" {
		t.Error("known icon should map to its glyph")
	}
	if iconGlyph("zebra") != "z" {
		t.Errorf("unknown icon = %q", iconGlyph("zebra"))
	}
	if iconGlyph("") != "" {
		t.Error("empty icon should stay empty")
	}
}
