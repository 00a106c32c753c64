// Package bridge reconciles values pushed by a stream with the mount
// boundary of the component rendering them.
package bridge

import "github.com/delaneyj/rxbridge/queue"

// CommitFunc hands v to the rendering layer. done must be called once the
// rendering layer has made v visible.
type CommitFunc[T any] func(v T, done func())

// State tracks one subscription. Before mount every value is buffered and
// cached; after mount every value is committed. The transition to mounted
// happens once.
type State[T any] struct {
	mounted bool
	pending *queue.Queue[T]
	commit  CommitFunc[T]

	cache    T
	hasCache bool

	// committed is true once the rendering layer's own state holds a value
	// and becomes the authoritative current value.
	committed bool
	lastRead  T
	hasRead   bool
}

// New returns an unmounted state that hands values to commit once mounted.
func New[T any](commit CommitFunc[T]) *State[T] {
	return &State[T]{
		pending: queue.New[T](),
		commit:  commit,
	}
}

// Mounted reports whether Mount has run.
func (s *State[T]) Mounted() bool { return s.mounted }

// Committed reports whether the rendering layer has committed a value.
func (s *State[T]) Committed() bool { return s.committed }

// Buffered reports the number of values waiting for mount.
func (s *State[T]) Buffered() int { return s.pending.Size() }

// Next receives a value that already passed change detection.
func (s *State[T]) Next(v T) {
	s.cache, s.hasCache = v, true
	if !s.mounted {
		s.pending.Push(v)
		return
	}
	s.commit(v, func() {
		s.committed = true
	})
}

// Mount flips the state to mounted and commits the latest buffered value,
// if any. Intermediate buffered values are dropped.
func (s *State[T]) Mount() {
	if s.mounted {
		return
	}
	s.mounted = true
	if v, ok := s.pending.Dissolve(); ok {
		s.Next(v)
	}
}

// Read returns the freshest value: anything still buffered wins over the
// cache, so a read in the same turn as an emission sees it.
func (s *State[T]) Read() (T, bool) {
	if v, ok := s.pending.Dissolve(); ok {
		return s.remember(v), true
	}
	if s.hasCache {
		return s.remember(s.cache), true
	}
	return s.lastRead, false
}

// ReadDeferred is Read for a rendering layer that commits with low priority.
// While commitPending is true it keeps returning the value handed out by the
// previous read. Once a commit landed, rendered is the authoritative value.
func (s *State[T]) ReadDeferred(commitPending bool, rendered T) (T, bool) {
	if v, ok := s.pending.Dissolve(); ok {
		return s.remember(v), true
	}
	if commitPending {
		return s.lastRead, s.hasRead
	}
	if s.committed {
		return s.remember(rendered), true
	}
	if s.hasCache {
		return s.remember(s.cache), true
	}
	return s.lastRead, false
}

func (s *State[T]) remember(v T) T {
	s.lastRead, s.hasRead = v, true
	return v
}
