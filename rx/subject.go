package rx

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SubjectLike is both ends of a multicast junction.
type SubjectLike[T any] interface {
	Observer[T]
	Subscribe(obs Observer[T]) *Subscription
}

// subjectCore delivers to observers in the order they subscribed.
type subjectCore[T any] struct {
	observers *orderedmap.OrderedMap[uint64, *Subscriber[T]]
	nextID    uint64
	stopped   bool
	err       error
}

func newSubjectCore[T any]() subjectCore[T] {
	return subjectCore[T]{
		observers: orderedmap.New[uint64, *Subscriber[T]](),
	}
}

// snapshot copies the observer list so subscribers may unsubscribe while a
// value is being delivered.
func (c *subjectCore[T]) snapshot() []*Subscriber[T] {
	out := make([]*Subscriber[T], 0, c.observers.Len())
	for pair := c.observers.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func (c *subjectCore[T]) next(v T) {
	if c.stopped {
		return
	}
	for _, s := range c.snapshot() {
		s.Next(v)
	}
}

func (c *subjectCore[T]) error(err error) {
	if c.stopped {
		return
	}
	c.stopped, c.err = true, err
	observers := c.snapshot()
	c.observers = orderedmap.New[uint64, *Subscriber[T]]()
	for _, s := range observers {
		s.Error(err)
	}
}

func (c *subjectCore[T]) complete() {
	if c.stopped {
		return
	}
	c.stopped = true
	observers := c.snapshot()
	c.observers = orderedmap.New[uint64, *Subscriber[T]]()
	for _, s := range observers {
		s.Complete()
	}
}

// register attaches s, or terminates it right away if the subject already
// stopped.
func (c *subjectCore[T]) register(s *Subscriber[T]) func() {
	if c.stopped {
		if c.err != nil {
			s.Error(c.err)
		} else {
			s.Complete()
		}
		return nil
	}

	id := c.nextID
	c.nextID++
	c.observers.Set(id, s)
	observers := c.observers
	return func() {
		observers.Delete(id)
	}
}

// Subject is a plain multicast junction without replay.
type Subject[T any] struct {
	core subjectCore[T]
	obs  *Observable[T]
}

func NewSubject[T any]() *Subject[T] {
	s := &Subject[T]{core: newSubjectCore[T]()}
	s.obs = New(s.core.register)
	return s
}

func (s *Subject[T]) Next(v T)        { s.core.next(v) }
func (s *Subject[T]) Error(err error) { s.core.error(err) }
func (s *Subject[T]) Complete()       { s.core.complete() }

func (s *Subject[T]) Subscribe(obs Observer[T]) *Subscription {
	return s.obs.Subscribe(obs)
}

// AsObservable hides the producer side.
func (s *Subject[T]) AsObservable() *Observable[T] { return s.obs }

// Observers reports the number of attached observers.
func (s *Subject[T]) Observers() int { return s.core.observers.Len() }

// Stopped reports whether the subject errored or completed.
func (s *Subject[T]) Stopped() bool { return s.core.stopped }

// BehaviorSubject always holds a current value and hands it to every new
// observer. Once completed it still replays its final value before
// completing the late observer.
type BehaviorSubject[T any] struct {
	core  subjectCore[T]
	value T
	obs   *Observable[T]
}

func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	b := &BehaviorSubject[T]{core: newSubjectCore[T](), value: initial}
	b.obs = New(func(s *Subscriber[T]) func() {
		if b.core.err == nil {
			s.Next(b.value)
		}
		return b.core.register(s)
	})
	return b
}

func (b *BehaviorSubject[T]) Next(v T) {
	if b.core.stopped {
		return
	}
	b.value = v
	b.core.next(v)
}

func (b *BehaviorSubject[T]) Error(err error) { b.core.error(err) }
func (b *BehaviorSubject[T]) Complete()       { b.core.complete() }

func (b *BehaviorSubject[T]) Subscribe(obs Observer[T]) *Subscription {
	return b.obs.Subscribe(obs)
}

func (b *BehaviorSubject[T]) AsObservable() *Observable[T] { return b.obs }

// Value returns the current value.
func (b *BehaviorSubject[T]) Value() T { return b.value }

func (b *BehaviorSubject[T]) Observers() int { return b.core.observers.Len() }

// ReplaySubject replays up to size buffered values to every new observer.
// A size below one keeps everything.
type ReplaySubject[T any] struct {
	core   subjectCore[T]
	size   int
	buffer []T
	obs    *Observable[T]
}

func NewReplaySubject[T any](size int) *ReplaySubject[T] {
	r := &ReplaySubject[T]{core: newSubjectCore[T](), size: size}
	r.obs = New(func(s *Subscriber[T]) func() {
		replay := append([]T(nil), r.buffer...)
		for _, v := range replay {
			if s.Closed() {
				return nil
			}
			s.Next(v)
		}
		return r.core.register(s)
	})
	return r
}

func (r *ReplaySubject[T]) Next(v T) {
	if r.core.stopped {
		return
	}
	r.buffer = append(r.buffer, v)
	if r.size > 0 && len(r.buffer) > r.size {
		r.buffer = append(r.buffer[:0], r.buffer[len(r.buffer)-r.size:]...)
	}
	r.core.next(v)
}

func (r *ReplaySubject[T]) Error(err error) { r.core.error(err) }
func (r *ReplaySubject[T]) Complete()       { r.core.complete() }

func (r *ReplaySubject[T]) Subscribe(obs Observer[T]) *Subscription {
	return r.obs.Subscribe(obs)
}

func (r *ReplaySubject[T]) AsObservable() *Observable[T] { return r.obs }

func (r *ReplaySubject[T]) Observers() int { return r.core.observers.Len() }
