// Package rxref turns an imperatively assigned reference into a stream.
//
// Assigning a value emits it; the detach function returned by the assignment
// emits a teardown event instead of a value, so consumers can react to the
// reference going away without a second channel.
package rxref

import "github.com/delaneyj/rxbridge/rx"

// Event is either a value or a teardown notice. The zero Event is a
// teardown.
type Event[T any] struct {
	value    T
	attached bool
}

func valueEvent[T any](v T) Event[T] {
	return Event[T]{value: v, attached: true}
}

// Value returns the carried value. ok is false for a teardown.
func (e Event[T]) Value() (v T, ok bool) {
	return e.value, e.attached
}

func (e Event[T]) Teardown() bool {
	return !e.attached
}

// Handle is the writable side of a reference stream.
type Handle[T any] struct {
	current    T
	hasCurrent bool
	generation uint64

	subject *rx.Subject[Event[T]]
	events  *rx.Observable[Event[T]]
	values  *rx.Observable[T]
}

// New returns the value stream and its handle. Late observers receive the
// latest assigned value, never older ones.
func New[T any]() (*rx.Observable[T], *Handle[T]) {
	h := newHandle[T]()
	return h.values, h
}

// NewWithInitial is New with a value that counts as already assigned.
func NewWithInitial[T any](initial T) (*rx.Observable[T], *Handle[T]) {
	h := newHandle[T]()
	h.current, h.hasCurrent = initial, true
	return h.values, h
}

func newHandle[T any]() *Handle[T] {
	h := &Handle[T]{subject: rx.NewSubject[Event[T]]()}

	h.events = rx.New(func(s *rx.Subscriber[Event[T]]) func() {
		if h.hasCurrent {
			s.Next(valueEvent(h.current))
		}
		return h.subject.Subscribe(s).Unsubscribe
	})

	attached := rx.Filter(h.events, func(e Event[T]) bool { return !e.Teardown() })
	h.values = rx.DistinctUntilChanged(rx.Map(attached, func(e Event[T]) T { return e.value }))
	return h
}

// Set assigns v, emits it, and returns the function that signals its
// detachment. Detaching does not clear Current. A detach call made after a
// newer Set, or a second call, does nothing.
func (h *Handle[T]) Set(v T) (detach func()) {
	h.generation++
	generation := h.generation
	h.current, h.hasCurrent = v, true
	h.subject.Next(valueEvent(v))

	detached := false
	return func() {
		if detached || generation != h.generation {
			return
		}
		detached = true
		h.subject.Next(Event[T]{})
	}
}

// Current returns the last assigned value. ok is false before any.
func (h *Handle[T]) Current() (v T, ok bool) {
	return h.current, h.hasCurrent
}

// Events is the raw stream of values and teardowns.
func (h *Handle[T]) Events() *rx.Observable[Event[T]] { return h.events }

// Values is the teardown-free, change-deduplicated stream.
func (h *Handle[T]) Values() *rx.Observable[T] { return h.values }

// Complete ends both streams.
func (h *Handle[T]) Complete() { h.subject.Complete() }
