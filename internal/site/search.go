package site

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/coursesite/internal/content"
)

// SearchEntry represents a single searchable page or session.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// maxSearchContent bounds the indexed text of one entry.
const maxSearchContent = 2000

// BuildSearchIndex indexes every day page and every session on it.
func BuildSearchIndex(course *content.Course) []SearchEntry {
	var entries []SearchEntry
	for _, d := range course.Days {
		dayPath := d.Slug + "/"
		entries = append(entries, SearchEntry{
			Path:    dayPath,
			Title:   fmt.Sprintf("Day %d: %s", d.Number, d.Title),
			Summary: d.Subtitle,
			Content: truncate(stripMarkdown(d.Summary)),
		})
		for _, s := range d.Sessions {
			parts := []string{s.Description}
			parts = append(parts, s.Topics...)
			for _, t := range s.DetailedTopics.All() {
				parts = append(parts, t.Title)
			}
			entries = append(entries, SearchEntry{
				Path:    fmt.Sprintf("%s#session-%d", dayPath, s.ID),
				Title:   fmt.Sprintf("Day %d · %s", d.Number, s.Title),
				Summary: s.Description,
				Content: truncate(strings.Join(parts, " ")),
			})
		}
	}
	return entries
}

// stripMarkdown drops the markup characters that only add noise to
// substring search.
func stripMarkdown(s string) string {
	s = strings.NewReplacer("#", "", "*", "", "`", "", "_", " ", "\n", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	if len(s) <= maxSearchContent {
		return s
	}
	// Cut on a rune boundary.
	cut := maxSearchContent
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
