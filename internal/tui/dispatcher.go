package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries work posted from another goroutine onto the event
// loop.
type dispatchMsg struct {
	fn func()
}

// Dispatcher posts loader completions into a running program. Work posted
// before the program is attached is held and sent on Attach.
type Dispatcher struct {
	mu      sync.Mutex
	program *tea.Program
	pending []func()
}

// NewDispatcher returns a detached Dispatcher.
func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// Post implements highlight.Dispatcher.
func (d *Dispatcher) Post(fn func()) {
	d.mu.Lock()
	p := d.program
	if p == nil {
		d.pending = append(d.pending, fn)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	p.Send(dispatchMsg{fn: fn})
}

// Attach routes posted work into p. Held work is sent once p starts
// reading messages.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.mu.Lock()
	d.program = p
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()
	if len(pending) == 0 {
		return
	}
	go func() {
		for _, fn := range pending {
			p.Send(dispatchMsg{fn: fn})
		}
	}()
}
