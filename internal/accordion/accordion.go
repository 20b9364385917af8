// Package accordion implements the session accordion of a day page: an
// ordered list of sessions of which at most one is expanded at a time.
//
// The open session is held as a single value rather than one flag per
// session, so opening session B while A is open is one transition, never
// two. Every session owns a motion.Panel; a toggle retargets at most two of
// them in the same step.
package accordion

import (
	"fmt"

	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/motion"
)

// None is the expanded id of a fully collapsed accordion. Session ids start
// at 1.
const None = 0

// DoneGlyph prefixes every topic in an expanded session's checklist.
const DoneGlyph = "✓"

// Change describes one toggle. Collapsed and Expanded are None when the
// toggle did not close or open a session.
type Change struct {
	Collapsed int
	Expanded  int
}

// Accordion is the state machine for one mounted page. It is not safe for
// concurrent use; it is meant to be driven from a single event loop.
type Accordion struct {
	sessions  []content.Session
	index     map[int]int
	expanded  int
	panels    map[int]*motion.Panel
	clock     motion.Clock
	listeners []func(Change)
}

// New returns a fully collapsed accordion over sessions. A nil clock uses
// the wall clock.
func New(sessions []content.Session, clock motion.Clock) *Accordion {
	if clock == nil {
		clock = motion.SystemClock{}
	}
	a := &Accordion{
		sessions: sessions,
		index:    make(map[int]int, len(sessions)),
		panels:   make(map[int]*motion.Panel, len(sessions)),
		clock:    clock,
	}
	for i, s := range sessions {
		a.index[s.ID] = i
		a.panels[s.ID] = motion.NewPanel()
	}
	return a
}

// OnChange registers fn to be called after every toggle.
func (a *Accordion) OnChange(fn func(Change)) {
	a.listeners = append(a.listeners, fn)
}

// Toggle collapses id if it is the expanded session and expands it
// otherwise, collapsing whichever session was open. Toggling an id that is
// not on the page is a programming error and panics.
func (a *Accordion) Toggle(id int) Change {
	if _, ok := a.index[id]; !ok {
		panic(fmt.Sprintf("accordion: toggle of unknown session id %d", id))
	}
	now := a.clock.Now()

	var ch Change
	if a.expanded == id {
		ch.Collapsed = id
		a.expanded = None
		a.panels[id].Collapse(now)
	} else {
		if a.expanded != None {
			ch.Collapsed = a.expanded
			a.panels[a.expanded].Collapse(now)
		}
		ch.Expanded = id
		a.expanded = id
		a.panels[id].Expand(now)
	}

	for _, fn := range a.listeners {
		fn(ch)
	}
	return ch
}

// IsExpanded reports whether id is the open session.
func (a *Accordion) IsExpanded(id int) bool {
	return a.expanded != None && a.expanded == id
}

// Expanded returns the open session id, if any.
func (a *Accordion) Expanded() (int, bool) {
	return a.expanded, a.expanded != None
}

// Sessions returns the sessions in display order.
func (a *Accordion) Sessions() []content.Session { return a.sessions }

// Frame returns the current animation frame of session id.
func (a *Accordion) Frame(id int) motion.Frame {
	p, ok := a.panels[id]
	if !ok {
		return motion.Frame{Settled: true}
	}
	return p.Sample(a.clock.Now())
}

// SettledSignal returns the transition-complete signal of session id. The
// channel is closed by Advance once the panel's current transition ends.
func (a *Accordion) SettledSignal(id int) <-chan struct{} {
	return a.panels[id].Settled()
}

// Advance steps every panel to the clock's current time and reports whether
// all of them have settled.
func (a *Accordion) Advance() bool {
	now := a.clock.Now()
	settled := true
	for _, s := range a.sessions {
		if !a.panels[s.ID].Advance(now) {
			settled = false
		}
	}
	return settled
}

// Detail is the body content shown for the expanded session only.
type Detail struct {
	Description string
	Checklist   []string
	Code        []content.CodeTopic
}

// PanelView is the render model for one session header and, when open, its
// body.
type PanelView struct {
	Session  *content.Session
	Expanded bool
	Frame    motion.Frame
	Detail   *Detail
}

// ChevronUp reports the chevron orientation of the panel.
func (v PanelView) ChevronUp() bool { return v.Frame.ChevronUp() }

// Panels returns the render model in session order. Only the expanded
// session carries a Detail, so code panels of collapsed sessions are never
// built.
func (a *Accordion) Panels() []PanelView {
	now := a.clock.Now()
	views := make([]PanelView, len(a.sessions))
	for i := range a.sessions {
		s := &a.sessions[i]
		v := PanelView{
			Session:  s,
			Expanded: a.IsExpanded(s.ID),
			Frame:    a.panels[s.ID].Sample(now),
		}
		if v.Expanded {
			v.Detail = DetailOf(s)
		}
		views[i] = v
	}
	return views
}

// DetailOf builds the body content of s.
func DetailOf(s *content.Session) *Detail {
	d := &Detail{
		Description: s.Description,
		Checklist:   make([]string, len(s.Topics)),
		Code:        s.DetailedTopics.All(),
	}
	for i, t := range s.Topics {
		d.Checklist[i] = DoneGlyph + " " + t
	}
	return d
}
