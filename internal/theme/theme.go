// Package theme holds the light/dark display preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/coursesite/internal/db"
)

// Theme is a display variant.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// PreferenceKey is the key the preference is stored under, both in the
// browser's localStorage and in the per-device database.
const PreferenceKey = "theme"

// Default is used when nothing valid is stored.
const Default = Light

// Parse maps s to a Theme. Anything unrecognized is Light.
func Parse(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark
	default:
		return Light
	}
}

// Toggle returns the other variant.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Store persists the preference for one device.
type Store struct {
	db *db.DB
}

// NewStore returns a Store backed by d.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Load returns the stored theme, or Default when none was saved.
func (s *Store) Load(ctx context.Context) (Theme, error) {
	v, err := s.db.Preference(ctx, PreferenceKey)
	if errors.Is(err, db.ErrNoPreference) {
		return Default, nil
	}
	if err != nil {
		return Default, fmt.Errorf("loading theme: %w", err)
	}
	return Parse(v), nil
}

// Save stores t.
func (s *Store) Save(ctx context.Context, t Theme) error {
	if err := s.db.SetPreference(ctx, PreferenceKey, Parse(string(t)).String()); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	log.Debug().Str("theme", t.String()).Msg("theme saved")
	return nil
}
