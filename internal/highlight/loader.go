package highlight

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle of the shared engine.
type State int

const (
	Unloaded State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultLoadTimeout bounds a single load attempt.
const DefaultLoadTimeout = 10 * time.Second

// ErrNotReady is returned by Engine while no engine is available.
var ErrNotReady = errors.New("highlight engine not ready")

// LoadFunc produces the engine. It may be slow; it is called at most once per
// attempt.
type LoadFunc func(ctx context.Context) (Engine, error)

// Dispatcher runs fn on the owner's event loop. Load completion is always
// delivered to subscribers through it.
type Dispatcher func(fn func())

// Option configures a Loader.
type Option func(*Loader)

// WithDispatcher delivers completions through d instead of calling
// subscribers inline on the loading goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(l *Loader) { l.dispatch = d }
}

// WithTimeout bounds every load attempt. Zero waits forever.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// Loader holds the process-wide engine. The first Acquire starts the load;
// every caller until it resolves shares that attempt, and every caller after
// it resolves sees the result immediately. A failed load stays failed until
// Retry.
type Loader struct {
	mu       sync.Mutex
	load     LoadFunc
	dispatch Dispatcher
	timeout  time.Duration

	state  State
	engine Engine
	err    error
	done   chan struct{}
	loads  int
	subs   map[uuid.UUID]func(State)
}

// NewLoader returns an unloaded Loader.
func NewLoader(load LoadFunc, opts ...Option) *Loader {
	l := &Loader{
		load:     load,
		dispatch: func(fn func()) { fn() },
		timeout:  DefaultLoadTimeout,
		done:     make(chan struct{}),
		subs:     make(map[uuid.UUID]func(State)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire starts the load if nothing has been requested yet and returns a
// channel closed when the current attempt resolves. Cancelling ctx does not
// cancel the shared load.
func (l *Loader) Acquire(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Unloaded {
		l.startLocked(ctx)
	}
	return l.done
}

// Retry starts a new attempt after a failure. In any other state it behaves
// like Acquire without starting anything.
func (l *Loader) Retry(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Failed {
		l.done = make(chan struct{})
		l.startLocked(ctx)
	}
	return l.done
}

func (l *Loader) startLocked(ctx context.Context) {
	l.state = Loading
	l.err = nil
	l.loads++
	attempt := l.loads
	done := l.done

	ctx = context.WithoutCancel(ctx)
	var cancel context.CancelFunc = func() {}
	if l.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
	}

	log.Debug().Int("attempt", attempt).Msg("loading highlight engine")
	go func() {
		defer cancel()
		engine, err := l.run(ctx)
		l.finish(engine, err, done)
	}()
}

type loadResult struct {
	engine Engine
	err    error
}

// run calls the LoadFunc and gives up when ctx expires even if the LoadFunc
// ignores ctx.
func (l *Loader) run(ctx context.Context) (Engine, error) {
	ch := make(chan loadResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- loadResult{err: fmt.Errorf("highlight engine panicked: %v", r)}
			}
		}()
		e, err := l.load(ctx)
		ch <- loadResult{engine: e, err: err}
	}()
	select {
	case res := <-ch:
		if res.err == nil && res.engine == nil {
			res.err = errors.New("highlight engine loader returned no engine")
		}
		return res.engine, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) finish(engine Engine, err error, done chan struct{}) {
	l.mu.Lock()
	if err != nil {
		l.state = Failed
		l.err = err
		log.Warn().Err(err).Msg("highlight engine failed to load")
	} else {
		l.state = Ready
		l.engine = engine
		log.Debug().Msg("highlight engine ready")
	}
	state := l.state
	close(done)
	ids := make([]uuid.UUID, 0, len(l.subs))
	for id := range l.subs {
		ids = append(ids, id)
	}
	l.mu.Unlock()

	l.dispatch(func() {
		for _, id := range ids {
			// A subscriber that left before delivery is skipped.
			l.mu.Lock()
			fn, ok := l.subs[id]
			l.mu.Unlock()
			if ok {
				fn(state)
			}
		}
	})
}

// Subscribe registers fn to be told when an attempt resolves. The returned id
// is passed to Unsubscribe.
func (l *Loader) Subscribe(fn func(State)) uuid.UUID {
	id := uuid.New()
	l.mu.Lock()
	l.subs[id] = fn
	l.mu.Unlock()
	return id
}

// Unsubscribe drops a subscription. Pending deliveries to it are discarded.
func (l *Loader) Unsubscribe(id uuid.UUID) {
	l.mu.Lock()
	delete(l.subs, id)
	l.mu.Unlock()
}

// State returns the current lifecycle state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Engine returns the loaded engine, or ErrNotReady wrapped with the load
// failure if there was one.
func (l *Loader) Engine() (Engine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch l.state {
	case Ready:
		return l.engine, nil
	case Failed:
		return nil, fmt.Errorf("%w: %w", ErrNotReady, l.err)
	default:
		return nil, ErrNotReady
	}
}

// Loads returns how many load attempts have been started.
func (l *Loader) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

// Wait acquires the engine and blocks until the attempt resolves or ctx is
// done.
func (l *Loader) Wait(ctx context.Context) (Engine, error) {
	select {
	case <-l.Acquire(ctx):
		return l.Engine()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
