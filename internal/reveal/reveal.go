// Package reveal fades page sections in the first time they scroll into
// view.
package reveal

import (
	"time"

	"github.com/ziadkadry99/coursesite/internal/motion"
)

const (
	// Threshold is the visible fraction of a section that triggers a reveal.
	Threshold = 0.10
	// BottomMargin shrinks the viewport at its bottom edge, in pixels (or
	// rows for a terminal).
	BottomMargin = 50.0
	// HiddenOffset is how far below its place a hidden section sits.
	HiddenOffset = 32.0
)

// Rect is a vertical extent in page coordinates.
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns the lower edge of r.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// VisibleFraction returns how much of r lies inside viewport, with the
// viewport's bottom edge pulled up by margin.
func VisibleFraction(r, viewport Rect, margin float64) float64 {
	if r.Height <= 0 {
		return 0
	}
	top := max(r.Top, viewport.Top)
	bottom := min(r.Bottom(), viewport.Bottom()-margin)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / r.Height
}

type registration struct {
	rect Rect
	fn   func()
}

// Watcher fires a callback once per registered region, the first time the
// region is at least Threshold visible. It is meant for a single event loop
// and is not safe for concurrent use.
type Watcher struct {
	threshold float64
	margin    float64
	regs      map[string]registration
	order     []string
	closed    bool
}

// NewWatcher returns a Watcher using Threshold and BottomMargin.
func NewWatcher() *Watcher {
	return &Watcher{
		threshold: Threshold,
		margin:    BottomMargin,
		regs:      make(map[string]registration),
	}
}

// WithMargin returns w with its bottom margin set to margin. Terminal views
// measure in rows, where 50 would swallow the whole screen.
func (w *Watcher) WithMargin(margin float64) *Watcher {
	w.margin = margin
	return w
}

// Observe registers id at rect. Registering an id again replaces its rect
// and callback. Observe after Close is ignored.
func (w *Watcher) Observe(id string, rect Rect, fn func()) {
	if w.closed {
		return
	}
	if _, ok := w.regs[id]; !ok {
		w.order = append(w.order, id)
	}
	w.regs[id] = registration{rect: rect, fn: fn}
}

// Move updates the rect of a registered region, for example after the
// layout above it changed height.
func (w *Watcher) Move(id string, rect Rect) {
	if reg, ok := w.regs[id]; ok {
		reg.rect = rect
		w.regs[id] = reg
	}
}

// Update checks every remaining registration against viewport. Regions that
// cross the threshold are unregistered and their callbacks run, in
// registration order. It returns the ids that fired.
func (w *Watcher) Update(viewport Rect) []string {
	if w.closed {
		return nil
	}
	var fired []registration
	var ids []string
	remaining := w.order[:0]
	for _, id := range w.order {
		reg := w.regs[id]
		if VisibleFraction(reg.rect, viewport, w.margin) >= w.threshold {
			delete(w.regs, id)
			fired = append(fired, reg)
			ids = append(ids, id)
			continue
		}
		remaining = append(remaining, id)
	}
	w.order = remaining
	// Callbacks run after bookkeeping so they may Observe new regions.
	for _, reg := range fired {
		if reg.fn != nil {
			reg.fn()
		}
	}
	return ids
}

// Pending returns the number of regions not yet revealed.
func (w *Watcher) Pending() int { return len(w.regs) }

// Close detaches every remaining registration.
func (w *Watcher) Close() {
	w.closed = true
	w.regs = nil
	w.order = nil
}

// Section is the reveal presentation of one page section.
type Section struct {
	channel  motion.Channel
	revealed bool
}

// NewSection returns a hidden section.
func NewSection() *Section {
	return &Section{channel: motion.NewChannel(0, motion.RevealDuration)}
}

// Reveal starts the transition to natural presentation. Later calls are
// ignored: a revealed section never hides again.
func (s *Section) Reveal(now time.Time) {
	if s.revealed {
		return
	}
	s.revealed = true
	s.channel.Retarget(now, 1)
}

// Revealed reports whether Reveal has been called.
func (s *Section) Revealed() bool { return s.revealed }

// Style returns the opacity and vertical offset at now.
func (s *Section) Style(now time.Time) (opacity, offset float64) {
	p := s.channel.Value(now)
	return p, HiddenOffset * (1 - p)
}

// Done reports whether the reveal transition has finished.
func (s *Section) Done(now time.Time) bool {
	return s.revealed && s.channel.Done(now)
}
