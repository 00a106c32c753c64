package component

import "github.com/delaneyj/rxbridge/internal/identity"

// Once runs factory during the first render only and returns the same value
// on every later render. factory must not call hooks.
func Once[T any](c *Component, factory func() T) T {
	return slot(c, factory)
}

// Ref is a mutable cell that survives re-renders without triggering them.
type Ref[T any] struct {
	Current T
}

func UseRef[T any](c *Component, initial T) *Ref[T] {
	return slot(c, func() *Ref[T] { return &Ref[T]{Current: initial} })
}

// UseLatest returns a stable cell that always holds the value passed on the
// most recent render. Useful for calling the latest closure from a callback
// created once.
func UseLatest[T any](c *Component, v T) *Ref[T] {
	ref := UseRef(c, v)
	ref.Current = v
	return ref
}

// State is a render-visible value. Setting it outside a transition commits a
// re-render immediately (or when the current pass ends).
type State[T any] struct {
	c     *Component
	value T
}

func UseState[T any](c *Component, initial T) *State[T] {
	return slot(c, func() *State[T] { return &State[T]{c: c, value: initial} })
}

func (s *State[T]) Get() T { return s.value }

func (s *State[T]) Set(v T) { s.SetThen(v, nil) }

// SetThen sets the value and calls done once the re-render carrying it has
// committed. Inside Transition.Start the update is deferred until the
// renderer commits transitions.
func (s *State[T]) SetThen(v T, done func()) {
	if t := s.c.r.activeTransition; t != nil {
		t.record(func() { s.value = v }, done)
		return
	}
	if s.c.phase == phaseUnmounted {
		s.c.log.Debug("dropping state update for unmounted component")
		return
	}

	s.value = v
	if done != nil {
		s.c.afterCommit = append(s.c.afterCommit, done)
	}
	s.c.r.schedule(s.c)
}

// Transition groups low-priority updates. While updates are pending the
// component keeps rendering its previous state with Pending reporting true.
type Transition struct {
	c       *Component
	pending bool
	updates []func()
	done    []func()
}

func UseTransition(c *Component) *Transition {
	return slot(c, func() *Transition { return &Transition{c: c} })
}

func (t *Transition) Pending() bool { return t.pending }

// Start runs fn and defers the state updates it makes.
func (t *Transition) Start(fn func()) {
	r := t.c.r
	prev := r.activeTransition
	r.activeTransition = t
	func() {
		defer func() { r.activeTransition = prev }()
		fn()
	}()

	if len(t.updates) == 0 || t.pending {
		return
	}
	t.pending = true
	r.transitions = append(r.transitions, t)
	t.c.log.Debug("transition pending")
	r.schedule(t.c)
}

func (t *Transition) record(apply, done func()) {
	t.updates = append(t.updates, apply)
	if done != nil {
		t.done = append(t.done, done)
	}
}

func (t *Transition) commit() {
	updates, done := t.updates, t.done
	t.updates, t.done = nil, nil
	t.pending = false
	if t.c.phase == phaseUnmounted {
		return
	}

	for _, apply := range updates {
		apply()
	}
	t.c.afterCommit = append(t.c.afterCommit, done...)
	t.c.log.WithField("updates", len(updates)).Debug("transition commit")
	t.c.r.schedule(t.c)
}

type effect struct {
	run     func() func()
	due     bool
	cleanup func()
}

// UseMountEffect runs fn once after the mount commit. The returned cleanup,
// if any, runs at unmount.
func UseMountEffect(c *Component, fn func() (cleanup func())) {
	slot(c, func() *effect {
		e := &effect{run: fn, due: true}
		c.effects = append(c.effects, e)
		return e
	})
}

// UseCommitEffect runs fn after every commit.
func UseCommitEffect(c *Component, fn func()) {
	e := slot(c, func() *effect {
		e := &effect{}
		c.effects = append(c.effects, e)
		return e
	})
	e.run = func() func() {
		fn()
		return nil
	}
	e.due = true
}

type valueEffect[T any] struct {
	effect
	last T
}

// UseValueEffect runs fn after the first commit and after every commit whose
// render saw a different v. Values that are not comparable with == are
// compared by reference.
func UseValueEffect[T any](c *Component, v T, fn func(T)) {
	UseValueEffectFunc(c, v, identity.Equal[T], fn)
}

// UseValueEffectFunc is UseValueEffect with a custom equality.
func UseValueEffectFunc[T any](c *Component, v T, equal func(prev, next T) bool, fn func(T)) {
	first := false
	e := slot(c, func() *valueEffect[T] {
		first = true
		e := &valueEffect[T]{last: v}
		c.effects = append(c.effects, &e.effect)
		return e
	})
	if !first && equal(e.last, v) {
		return
	}
	e.last = v
	e.run = func() func() {
		fn(v)
		return nil
	}
	e.due = true
}
