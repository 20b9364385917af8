// Package motion drives fixed-duration transitions on scalar channels.
//
// A Channel interpolates one value between two targets over a fixed
// duration. A Panel groups the channels of a collapsible panel: the body's
// size fraction and opacity, and the rotation of its chevron glyph. Time is
// always passed in explicitly so that callers on an event loop (or tests with
// a ManualClock) control exactly when a transition advances.
package motion

import (
	"sync"
	"time"
)

const (
	// PanelDuration is the length of every expand/collapse transition.
	PanelDuration = 300 * time.Millisecond
	// RevealDuration is the length of a section reveal.
	RevealDuration = 700 * time.Millisecond
	// ChevronOpen is the chevron rotation, in degrees, of an expanded panel.
	ChevronOpen = 180.0
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a ManualClock set to start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Add moves the clock forward by d and returns the new time.
func (c *ManualClock) Add(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Channel is one interpolated scalar.
type Channel struct {
	from, to float64
	start    time.Time
	duration time.Duration
}

// NewChannel returns a channel resting at value.
func NewChannel(value float64, duration time.Duration) Channel {
	return Channel{from: value, to: value, duration: duration}
}

// Retarget starts a transition toward to, beginning from wherever the
// channel is at now.
func (c *Channel) Retarget(now time.Time, to float64) {
	c.from = c.Value(now)
	c.to = to
	c.start = now
}

// Target returns the value the channel is heading to.
func (c Channel) Target() float64 { return c.to }

// End returns when the current transition completes.
func (c Channel) End() time.Time { return c.start.Add(c.duration) }

// Progress returns the linear time fraction of the current transition in
// [0, 1].
func (c Channel) Progress(now time.Time) float64 {
	if c.from == c.to || c.duration <= 0 || c.start.IsZero() {
		return 1
	}
	elapsed := now.Sub(c.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= c.duration {
		return 1
	}
	return float64(elapsed) / float64(c.duration)
}

// Value returns the eased value at now.
func (c Channel) Value(now time.Time) float64 {
	p := c.Progress(now)
	if p >= 1 {
		return c.to
	}
	return c.from + (c.to-c.from)*ease(p)
}

// Done reports whether the channel has reached its target.
func (c Channel) Done(now time.Time) bool {
	return c.Progress(now) >= 1
}

// ease is a symmetric ease-in-out curve: ease(0)=0, ease(0.5)=0.5, ease(1)=1.
func ease(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Frame is a snapshot of a Panel's presentation.
type Frame struct {
	Size     float64 // fraction of the body's natural height
	Opacity  float64
	Rotation float64 // chevron rotation in degrees
	Expanded bool
	Settled  bool
}

// InFlow reports whether the body takes part in layout. A collapsed panel
// leaves the flow once its collapse has finished.
func (f Frame) InFlow() bool {
	return f.Expanded || !f.Settled
}

// ChevronUp reports whether the chevron has turned past half way.
func (f Frame) ChevronUp() bool {
	return f.Rotation >= ChevronOpen/2
}

// Panel animates a collapsible body and its chevron. The size and opacity
// channels move together; the rotation channel moves independently over the
// same duration.
type Panel struct {
	size     Channel
	opacity  Channel
	rotation Channel
	expanded bool
	settled  chan struct{}
	closed   bool
}

// NewPanel returns a collapsed, settled panel.
func NewPanel() *Panel {
	p := &Panel{
		size:     NewChannel(0, PanelDuration),
		opacity:  NewChannel(0, PanelDuration),
		rotation: NewChannel(0, PanelDuration),
		settled:  make(chan struct{}),
	}
	close(p.settled)
	p.closed = true
	return p
}

// Expanded reports the panel's target state.
func (p *Panel) Expanded() bool { return p.expanded }

// Expand starts the entry transition at now.
func (p *Panel) Expand(now time.Time) { p.retarget(now, true) }

// Collapse starts the exit transition at now.
func (p *Panel) Collapse(now time.Time) { p.retarget(now, false) }

func (p *Panel) retarget(now time.Time, expanded bool) {
	p.expanded = expanded
	body, rot := 0.0, 0.0
	if expanded {
		body, rot = 1, ChevronOpen
	}
	p.size.Retarget(now, body)
	p.opacity.Retarget(now, body)
	p.rotation.Retarget(now, rot)
	if p.closed {
		p.settled = make(chan struct{})
		p.closed = false
	}
}

// Sample returns the panel's presentation at now.
func (p *Panel) Sample(now time.Time) Frame {
	return Frame{
		Size:     p.size.Value(now),
		Opacity:  p.opacity.Value(now),
		Rotation: p.rotation.Value(now),
		Expanded: p.expanded,
		Settled:  p.done(now),
	}
}

func (p *Panel) done(now time.Time) bool {
	return p.size.Done(now) && p.opacity.Done(now) && p.rotation.Done(now)
}

// Advance fires the settled signal once the current transition has
// completed at now. It reports whether the panel is settled.
func (p *Panel) Advance(now time.Time) bool {
	if p.closed {
		return true
	}
	if !p.done(now) {
		return false
	}
	close(p.settled)
	p.closed = true
	return true
}

// Settled returns a channel that is closed when the current transition
// completes, as observed by Advance.
func (p *Panel) Settled() <-chan struct{} { return p.settled }
