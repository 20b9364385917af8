package highlight

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/coursesite/internal/content"
)

// Panel presents one CodeTopic. It shows Placeholder until the shared
// engine is ready and the highlighted code afterwards.
type Panel struct {
	Topic content.CodeTopic

	loader   *Loader
	onUpdate func()
	sub      uuid.UUID
	mounted  bool
	rendered string
	ok       bool
}

// NewPanel returns an unmounted panel. onUpdate, if set, is called on the
// loader's dispatcher when the engine resolves while the panel is mounted.
func NewPanel(topic content.CodeTopic, loader *Loader, onUpdate func()) *Panel {
	return &Panel{Topic: topic, loader: loader, onUpdate: onUpdate}
}

// Mount subscribes to the loader and requests the engine.
func (p *Panel) Mount(ctx context.Context) {
	if p.mounted {
		return
	}
	p.mounted = true
	p.sub = p.loader.Subscribe(func(State) {
		if p.onUpdate != nil {
			p.onUpdate()
		}
	})
	p.loader.Acquire(ctx)
}

// Unmount detaches the panel. A load still in flight keeps running for other
// panels; its result is simply not delivered here.
func (p *Panel) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.loader.Unsubscribe(p.sub)
}

// Mounted reports whether the panel is mounted.
func (p *Panel) Mounted() bool { return p.mounted }

// Ready reports whether View returns highlighted code.
func (p *Panel) Ready() bool {
	return p.loader.State() == Ready
}

// View returns the highlighted code, or Placeholder while the engine is
// unavailable or the code cannot be highlighted.
func (p *Panel) View() string {
	if p.ok {
		return p.rendered
	}
	engine, err := p.loader.Engine()
	if err != nil {
		return Placeholder
	}
	var b strings.Builder
	if err := engine.Highlight(&b, p.Topic.Code); err != nil {
		log.Warn().Err(err).Str("topic", p.Topic.Key).Msg("highlighting code panel")
		return Placeholder
	}
	p.rendered, p.ok = b.String(), true
	return p.rendered
}

// Invalidate drops the memoized highlight, for example after the engine
// switched styles.
func (p *Panel) Invalidate() {
	p.rendered, p.ok = "", false
}
