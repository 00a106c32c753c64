package component

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	ErrHookOrder  = errors.New("component: hooks called in a different order than the previous render")
	ErrNotCreated = errors.New("component: mount called on a component that is not freshly created")
)

// RenderFunc renders a component. Hooks must be called in the same order on
// every render.
type RenderFunc func(c *Component)

type phase uint8

const (
	phaseCreated phase = iota
	phaseMounted
	phaseUnmounted
)

type Component struct {
	r   *Renderer
	id  uint64
	fn  RenderFunc
	log logrus.FieldLogger

	phase  phase
	stale  bool
	hooks  []any
	cursor int

	effects     []*effect
	afterCommit []func()
	deferred    []func()

	renders int
	commits int
}

func (c *Component) ID() uint64          { return c.id }
func (c *Component) Renderer() *Renderer { return c.r }
func (c *Component) Mounted() bool       { return c.phase == phaseMounted }
func (c *Component) Unmounted() bool     { return c.phase == phaseUnmounted }

// Renders reports how many times the render function ran.
func (c *Component) Renders() int { return c.renders }

// Commits reports how many renders were committed, the mount included.
func (c *Component) Commits() int { return c.commits }

// Mount commits the first render: mount effects fire, then any update
// requested before mount triggers a re-render.
func (c *Component) Mount() {
	if c.phase != phaseCreated {
		panic(fmt.Errorf("%w: component %d", ErrNotCreated, c.id))
	}

	c.r.enter()
	defer c.r.leave()

	c.phase = phaseMounted
	c.log.Debug("mount")
	c.commit()
	if c.stale {
		c.stale = false
		c.r.schedule(c)
	}
}

// Rerender re-runs the render function as a parent re-render would.
func (c *Component) Rerender() {
	if c.phase != phaseMounted {
		return
	}
	c.update()
}

// Unmount runs effect cleanups in declaration order, then the functions
// registered with Defer. It also releases a component that was created but
// never mounted. Later updates are dropped.
func (c *Component) Unmount() {
	if c.phase == phaseUnmounted {
		return
	}

	c.r.enter()
	defer c.r.leave()

	c.phase = phaseUnmounted
	c.r.dirty.Remove(c)
	c.log.Debug("unmount")
	for _, e := range c.effects {
		if e.cleanup != nil {
			cleanup := e.cleanup
			e.cleanup = nil
			cleanup()
		}
	}

	deferred := c.deferred
	c.deferred = nil
	for _, fn := range deferred {
		fn()
	}
}

// Defer registers fn to run at unmount, after effect cleanups. Unlike a
// mount effect cleanup it runs even when the component never mounted. On an
// unmounted component fn runs right away.
func (c *Component) Defer(fn func()) {
	if fn == nil {
		return
	}
	if c.phase == phaseUnmounted {
		fn()
		return
	}
	c.deferred = append(c.deferred, fn)
}

// ReportError hands err to the renderer's error boundary, or panics when
// there is none.
func (c *Component) ReportError(err error) {
	if err == nil {
		return
	}
	if c.r.cfg.boundary == nil {
		panic(fmt.Errorf("component %d: %w", c.id, err))
	}
	c.r.cfg.boundary(c, err)
}

func (c *Component) update() {
	c.r.enter()
	defer c.r.leave()

	c.log.Debug("update")
	c.render()
	c.commit()
}

func (c *Component) render() {
	first := c.renders == 0
	c.cursor = 0
	c.renders++
	c.fn(c)
	if !first && c.cursor != len(c.hooks) {
		panic(fmt.Errorf("%w: component %d used %d hooks, previously %d", ErrHookOrder, c.id, c.cursor, len(c.hooks)))
	}
}

func (c *Component) commit() {
	c.commits++

	callbacks := c.afterCommit
	c.afterCommit = nil
	for _, fn := range callbacks {
		fn()
	}

	for _, e := range c.effects {
		if !e.due {
			continue
		}
		e.due = false
		if e.cleanup != nil {
			cleanup := e.cleanup
			e.cleanup = nil
			cleanup()
		}
		e.cleanup = e.run()
	}
}

// slot returns the hook state at the current cursor, creating it with init
// on the first render.
func slot[T any](c *Component, init func() T) T {
	i := c.cursor
	c.cursor++
	if i < len(c.hooks) {
		v, ok := c.hooks[i].(T)
		if !ok {
			panic(fmt.Errorf("%w: component %d hook %d is %T", ErrHookOrder, c.id, i, c.hooks[i]))
		}
		return v
	}
	if c.renders > 1 {
		panic(fmt.Errorf("%w: component %d added hook %d after the first render", ErrHookOrder, c.id, i))
	}
	v := init()
	c.hooks = append(c.hooks, v)
	return v
}
