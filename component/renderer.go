// Package component is a minimal rendering layer: components with a render
// phase, a commit phase that fires mount and per-commit effects, an unmount
// phase, synchronous state updates and deferred low-priority transitions.
//
// Everything runs on one logical thread. Updates issued while a render,
// commit or batch is in progress are queued and flushed when the outermost
// one returns.
package component

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

type Renderer struct {
	cfg config
	log logrus.FieldLogger

	nextID   uint64
	depth    int
	flushing bool

	dirty mapset.Set[*Component]
	queue []*Component

	transitions      []*Transition
	activeTransition *Transition
}

func NewRenderer(opts ...Option) *Renderer {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}

	return &Renderer{
		cfg:   cfg,
		log:   cfg.logger,
		dirty: mapset.NewThreadUnsafeSet[*Component](),
	}
}

// Create runs the first render of fn without committing it. The component
// is not mounted until Mount is called.
func (r *Renderer) Create(fn RenderFunc) *Component {
	r.nextID++
	c := &Component{
		r:   r,
		id:  r.nextID,
		fn:  fn,
		log: r.log.WithField("component", r.nextID),
	}

	r.enter()
	defer r.leave()
	c.render()
	return c
}

// Mount renders fn and commits it.
func (r *Renderer) Mount(fn RenderFunc) *Component {
	c := r.Create(fn)
	c.Mount()
	return c
}

// Batch defers re-renders requested inside fn until it returns, so several
// updates to one component commit once.
func (r *Renderer) Batch(fn func()) {
	r.enter()
	defer r.leave()
	fn()
}

// PendingTransitions reports the number of transitions waiting to commit.
func (r *Renderer) PendingTransitions() int {
	return len(r.transitions)
}

// CommitTransitions applies every deferred update in the order it was made
// and re-renders the affected components. Superseded updates are applied
// too, so the last write wins.
func (r *Renderer) CommitTransitions() {
	r.enter()
	defer r.leave()

	transitions := r.transitions
	r.transitions = nil
	for _, t := range transitions {
		t.commit()
	}
}

func (r *Renderer) enter() {
	r.depth++
}

func (r *Renderer) leave() {
	r.depth--
	if r.depth == 0 {
		r.flush()
	}
}

// schedule queues c for a re-render and flushes right away when nothing
// else is in progress.
func (r *Renderer) schedule(c *Component) {
	switch c.phase {
	case phaseUnmounted:
		c.log.Debug("dropping update for unmounted component")
		return
	case phaseCreated:
		c.stale = true
		return
	}

	if r.dirty.Add(c) {
		r.queue = append(r.queue, c)
	}
	if r.depth == 0 {
		r.flush()
	}
}

func (r *Renderer) flush() {
	if r.flushing {
		return
	}
	r.flushing = true
	defer func() { r.flushing = false }()

	for len(r.queue) > 0 {
		c := r.queue[0]
		r.queue = r.queue[1:]
		r.dirty.Remove(c)
		if c.phase == phaseMounted {
			c.update()
		}
	}
}
