package highlight

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziadkadry99/coursesite/internal/content"
)

type fakeEngine struct{}

func (fakeEngine) Highlight(w io.Writer, code string) error {
	_, err := fmt.Fprintf(w, "<hl>%s</hl>", code)
	return err
}

// gatedLoad returns a LoadFunc that blocks until release is closed and
// counts its invocations.
func gatedLoad(release <-chan struct{}, calls *int32, fail error) LoadFunc {
	return func(ctx context.Context) (Engine, error) {
		atomic.AddInt32(calls, 1)
		<-release
		if fail != nil {
			return nil, fail
		}
		return fakeEngine{}, nil
	}
}

// queue is a Dispatcher that defers delivery until drained, like an event
// loop would.
type queue struct {
	ch chan func()
}

func newQueue() *queue { return &queue{ch: make(chan func(), 16)} }

func (q *queue) dispatch(fn func()) { q.ch <- fn }

func (q *queue) drain(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q.ch:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatch")
	}
}

func topic(key, code string) content.CodeTopic {
	return content.CodeTopic{Key: key, Title: strings.ToUpper(key), Code: code}
}

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for load")
	}
}

func TestSharedLoad(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	q := newQueue()
	loader := NewLoader(gatedLoad(release, &calls, nil), WithDispatcher(q.dispatch))

	var updates int32
	panels := make([]*Panel, 4)
	for i := range panels {
		panels[i] = NewPanel(topic(fmt.Sprintf("t%d", i), fmt.Sprintf("code %d", i)), loader, func() {
			atomic.AddInt32(&updates, 1)
		})
		panels[i].Mount(context.Background())
	}

	for _, p := range panels {
		if got := p.View(); got != Placeholder {
			t.Errorf("view while loading = %q, want placeholder", got)
		}
	}
	if loader.State() != Loading {
		t.Errorf("state = %v, want loading", loader.State())
	}

	close(release)
	waitDone(t, loader.Acquire(context.Background()))
	q.drain(t)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("load invocations = %d, want 1", got)
	}
	if loader.Loads() != 1 {
		t.Errorf("Loads() = %d, want 1", loader.Loads())
	}
	if got := atomic.LoadInt32(&updates); got != int32(len(panels)) {
		t.Errorf("updates = %d, want %d", got, len(panels))
	}
	for i, p := range panels {
		want := fmt.Sprintf("<hl>code %d</hl>", i)
		if got := p.View(); got != want {
			t.Errorf("panel %d view = %q, want %q", i, got, want)
		}
	}
}

func TestUnmountBeforeResolve(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	q := newQueue()
	loader := NewLoader(gatedLoad(release, &calls, nil), WithDispatcher(q.dispatch))

	var gone, stay int32
	early := NewPanel(topic("a", "x"), loader, func() { atomic.AddInt32(&gone, 1) })
	kept := NewPanel(topic("b", "y"), loader, func() { atomic.AddInt32(&stay, 1) })
	early.Mount(context.Background())
	kept.Mount(context.Background())
	early.Unmount()

	close(release)
	waitDone(t, loader.Acquire(context.Background()))
	q.drain(t)

	if atomic.LoadInt32(&gone) != 0 {
		t.Error("unmounted panel should not receive the update")
	}
	if atomic.LoadInt32(&stay) != 1 {
		t.Error("mounted panel should receive the update")
	}

	// A later panel sees the resolved engine immediately without a new load.
	late := NewPanel(topic("c", "z"), loader, nil)
	late.Mount(context.Background())
	if !late.Ready() || late.View() != "<hl>z</hl>" {
		t.Errorf("late panel view = %q", late.View())
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("load invocations = %d, want 1", got)
	}
}

func TestUnmountBetweenResolveAndDelivery(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	q := newQueue()
	loader := NewLoader(gatedLoad(release, &calls, nil), WithDispatcher(q.dispatch))

	var hits int32
	p := NewPanel(topic("a", "x"), loader, func() { atomic.AddInt32(&hits, 1) })
	p.Mount(context.Background())
	close(release)
	waitDone(t, loader.Acquire(context.Background()))

	p.Unmount()
	q.drain(t)
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("late delivery to an unmounted panel should be dropped")
	}
}

func TestFailedLoadKeepsPlaceholder(t *testing.T) {
	release := make(chan struct{})
	close(release)
	var calls int32
	loader := NewLoader(gatedLoad(release, &calls, errors.New("boom")))

	p := NewPanel(topic("a", "int x = 1;"), loader, nil)
	p.Mount(context.Background())
	waitDone(t, loader.Acquire(context.Background()))

	if loader.State() != Failed {
		t.Fatalf("state = %v, want failed", loader.State())
	}
	for i := 0; i < 3; i++ {
		if got := p.View(); got != Placeholder {
			t.Errorf("view = %q, want placeholder", got)
		}
	}
	// No automatic retry: acquiring again does not reload.
	loader.Acquire(context.Background())
	if loader.Loads() != 1 {
		t.Errorf("Loads() = %d, want 1", loader.Loads())
	}
	if _, err := loader.Engine(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Engine err = %v, want ErrNotReady", err)
	}
}

func TestRetryAfterFailure(t *testing.T) {
	var attempts int32
	loader := NewLoader(func(ctx context.Context) (Engine, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return nil, errors.New("first attempt fails")
		}
		return fakeEngine{}, nil
	})

	waitDone(t, loader.Acquire(context.Background()))
	if loader.State() != Failed {
		t.Fatalf("state = %v, want failed", loader.State())
	}
	waitDone(t, loader.Retry(context.Background()))
	if loader.State() != Ready {
		t.Fatalf("state after retry = %v, want ready", loader.State())
	}
	if loader.Loads() != 2 {
		t.Errorf("Loads() = %d, want 2", loader.Loads())
	}
	// Retry on a ready loader does nothing.
	loader.Retry(context.Background())
	if loader.Loads() != 2 {
		t.Errorf("Loads() after extra retry = %d, want 2", loader.Loads())
	}
}

func TestLoadTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	loader := NewLoader(func(ctx context.Context) (Engine, error) {
		<-block
		return fakeEngine{}, nil
	}, WithTimeout(20*time.Millisecond))

	_, err := loader.Wait(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if loader.State() != Failed {
		t.Errorf("state = %v, want failed", loader.State())
	}
}

func TestCancelledAcquireDoesNotCancelLoad(t *testing.T) {
	loader := NewLoader(func(ctx context.Context) (Engine, error) {
		time.Sleep(10 * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fakeEngine{}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := loader.Acquire(ctx)
	cancel()
	waitDone(t, done)
	if loader.State() != Ready {
		t.Errorf("state = %v, want ready", loader.State())
	}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func textOf(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}

func TestChromaEngineHTML(t *testing.T) {
	engine, err := NewChromaEngine(Options{Language: "dart", Style: "github", Format: FormatHTML})
	if err != nil {
		t.Fatalf("NewChromaEngine: %v", err)
	}
	code := "print('Hello, ${name}\\n');"
	var b strings.Builder
	if err := engine.Highlight(&b, code); err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	out := b.String()
	for _, want := range []string{"background:transparent", "font-size:" + FontSize, "border-radius:" + CornerRadius, `class="code-panel"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := strings.TrimRight(textOf(out), "\n"); got != code {
		t.Errorf("text = %q, want %q", got, code)
	}
}

func TestChromaEngineTerminal(t *testing.T) {
	engine, err := NewChromaEngine(Options{Language: "dart", Style: "dracula", Format: FormatTerminal})
	if err != nil {
		t.Fatalf("NewChromaEngine: %v", err)
	}
	var b strings.Builder
	if err := engine.Highlight(&b, "int x = 1;"); err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(b.String(), "\x1b[") {
		t.Error("terminal output should contain escape sequences")
	}
}

func TestChromaEngineUnknownFormat(t *testing.T) {
	if _, err := NewChromaEngine(Options{Format: "pdf"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Unloaded: "unloaded", Loading: "loading", Ready: "ready", Failed: "failed", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
