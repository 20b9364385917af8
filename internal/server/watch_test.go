package server

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

var contentPatterns = []string{"course.yml", "days/**/*.{yml,yaml}"}

func TestWatcherMatches(t *testing.T) {
	w := NewWatcher(".", contentPatterns, 0, nil, nil)
	tests := []struct {
		path string
		want bool
	}{
		{"course.yml", true},
		{"days/day1.yml", true},
		{"days/week1/day2.yaml", true},
		{"days/notes.txt", false},
		{"README.md", false},
		{"nested/course.yml", false},
	}
	for _, tt := range tests {
		if got := w.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherRebuildsOnceForABurst(t *testing.T) {
	root := t.TempDir()
	days := filepath.Join(root, "days")
	if err := os.MkdirAll(days, 0o755); err != nil {
		t.Fatal(err)
	}

	var builds, notified int32
	w := NewWatcher(root, contentPatterns, 100*time.Millisecond,
		func(context.Context) error {
			atomic.AddInt32(&builds, 1)
			return nil
		},
		func() { atomic.AddInt32(&notified, 1) },
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never became ready")
	}

	// Ignored file first, then a burst of matching writes.
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(days, "day1.yml"), []byte("slug: day1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(3 * time.Second)
	for atomic.LoadInt32(&notified) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	// Give a stray second rebuild time to show up.
	time.Sleep(300 * time.Millisecond)

	if got := atomic.LoadInt32(&builds); got != 1 {
		t.Errorf("builds = %d, want 1", got)
	}
	if got := atomic.LoadInt32(&notified); got != 1 {
		t.Errorf("notified = %d, want 1", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run: %v", err)
	}
}
