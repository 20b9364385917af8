package shell

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/motion"
	"github.com/ziadkadry99/coursesite/internal/reveal"
)

type echoEngine struct{}

func (echoEngine) Highlight(w io.Writer, code string) error {
	_, err := fmt.Fprint(w, code)
	return err
}

func sampleDay(t *testing.T) *content.Day {
	t.Helper()
	course, err := content.Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	day, err := course.Day("day1")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	return day
}

func newPage(t *testing.T) (*Page, *highlight.Loader, *motion.ManualClock, *int32) {
	t.Helper()
	var loads int32
	loader := highlight.NewLoader(func(ctx context.Context) (highlight.Engine, error) {
		atomic.AddInt32(&loads, 1)
		return echoEngine{}, nil
	})
	clock := motion.NewManualClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	page := NewPage(sampleDay(t), loader, nil, WithClock(clock))
	page.Mount(context.Background())
	t.Cleanup(page.Unmount)
	return page, loader, clock, &loads
}

func keys(panels []*highlight.Panel) []string {
	out := make([]string, len(panels))
	for i, p := range panels {
		out[i] = p.Topic.Key
	}
	return out
}

func TestMountStartsCollapsed(t *testing.T) {
	page, _, _, loads := newPage(t)
	if _, open := page.Accordion().Expanded(); open {
		t.Error("page should mount fully collapsed")
	}
	if len(page.CodePanels()) != 0 {
		t.Errorf("panels = %v, want none", keys(page.CodePanels()))
	}
	if atomic.LoadInt32(loads) != 0 {
		t.Error("engine should not load before a session with code is opened")
	}
}

func TestTogglePanelsFollowOpenSession(t *testing.T) {
	page, loader, _, loads := newPage(t)

	page.Toggle(1)
	if got := keys(page.CodePanels()); fmt.Sprint(got) != "[variables types]" {
		t.Fatalf("panels = %v, want [variables types]", got)
	}
	first := page.CodePanels()

	page.Toggle(2)
	if got := keys(page.CodePanels()); fmt.Sprint(got) != "[loops switch]" {
		t.Fatalf("panels = %v, want [loops switch]", got)
	}
	for _, p := range first {
		if p.Mounted() {
			t.Errorf("panel %s of the closed session is still mounted", p.Topic.Key)
		}
	}

	page.Toggle(3)
	if len(page.CodePanels()) != 0 {
		t.Errorf("session without code topics has panels %v", keys(page.CodePanels()))
	}

	page.Toggle(3)
	if _, open := page.Accordion().Expanded(); open {
		t.Error("second toggle should collapse")
	}

	if _, err := loader.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := atomic.LoadInt32(loads); got != 1 {
		t.Errorf("engine loads = %d, want 1", got)
	}
}

func TestPanelShowsCodeWhenReady(t *testing.T) {
	page, loader, _, _ := newPage(t)
	page.Toggle(1)
	if _, err := loader.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	p := page.CodePanels()[0]
	topic, _ := page.Day.Sessions[0].DetailedTopics.Get("variables")
	if p.View() != topic.Code {
		t.Errorf("view = %q, want %q", p.View(), topic.Code)
	}
}

func TestUnmountTearsDown(t *testing.T) {
	page, _, _, _ := newPage(t)
	page.Toggle(1)
	panels := page.CodePanels()
	page.Place(Hero, reveal.Rect{Top: 0, Height: 400})

	page.Unmount()
	for _, p := range panels {
		if p.Mounted() {
			t.Errorf("panel %s still mounted after page unmount", p.Topic.Key)
		}
	}
	if fired := page.Scroll(reveal.Rect{Top: 0, Height: 800}); fired != nil {
		t.Errorf("unmounted page revealed %v", fired)
	}

	page.Mount(context.Background())
	if _, open := page.Accordion().Expanded(); open {
		t.Error("remount should start fully collapsed")
	}
	if page.Section(Hero).Revealed() {
		t.Error("remount should hide every section")
	}
}

func TestSectionsRevealOnScroll(t *testing.T) {
	page, _, clock, _ := newPage(t)
	page.Place(Hero, reveal.Rect{Top: 0, Height: 400})
	page.Place(Sessions, reveal.Rect{Top: 400, Height: 600})
	page.Place(Summary, reveal.Rect{Top: 1000, Height: 300})
	page.Place(Exercises, reveal.Rect{Top: 1300, Height: 300})

	fired := page.Scroll(reveal.Rect{Top: 0, Height: 800})
	if fmt.Sprint(fired) != "[hero sessions]" {
		t.Fatalf("fired = %v, want [hero sessions]", fired)
	}
	if page.Section(Summary).Revealed() {
		t.Error("summary should still be hidden")
	}
	if page.Advance() {
		t.Error("reveal transitions should be running")
	}

	clock.Add(motion.RevealDuration)
	if !page.Advance() {
		t.Error("transitions should have finished")
	}
	if op, off := page.Section(Hero).Style(clock.Now()); op != 1 || off != 0 {
		t.Errorf("hero style = %v, %v", op, off)
	}

	fired = page.Scroll(reveal.Rect{Top: 900, Height: 800})
	if fmt.Sprint(fired) != "[summary exercises]" {
		t.Errorf("fired = %v, want [summary exercises]", fired)
	}
	// Revealed sections are not registered again.
	page.Place(Hero, reveal.Rect{Top: 0, Height: 400})
	if fired := page.Scroll(reveal.Rect{Top: 0, Height: 800}); len(fired) != 0 {
		t.Errorf("fired again: %v", fired)
	}
}
