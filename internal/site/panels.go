package site

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/theme"
)

// PanelChunk is the lazily fetched code panel payload of one day page,
// keyed by PanelKey. Each entry holds the highlighted markup per theme.
type PanelChunk map[string]map[theme.Theme]string

// PanelKey identifies a code panel within a day.
func PanelKey(sessionID int, topicKey string) string {
	return strconv.Itoa(sessionID) + "/" + topicKey
}

// BuildPanelChunk highlights every detailed topic of day with each engine.
func BuildPanelChunk(day *content.Day, engines map[theme.Theme]highlight.Engine) (PanelChunk, error) {
	chunk := make(PanelChunk)
	for _, s := range day.Sessions {
		for _, t := range s.DetailedTopics.All() {
			entry := make(map[theme.Theme]string, len(engines))
			for variant, engine := range engines {
				var b strings.Builder
				if err := engine.Highlight(&b, t.Code); err != nil {
					return nil, fmt.Errorf("session %d topic %s: %w", s.ID, t.Key, err)
				}
				entry[variant] = b.String()
			}
			chunk[PanelKey(s.ID, t.Key)] = entry
		}
	}
	return chunk, nil
}
