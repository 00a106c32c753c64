package rx

// Subscription is an active registration with a teardown. Unsubscribe is
// synchronous and idempotent.
type Subscription struct {
	closed    bool
	teardowns []func()
}

// Add registers fn to run on Unsubscribe. If the subscription is already
// closed fn runs immediately.
func (s *Subscription) Add(fn func()) {
	if s == nil || fn == nil {
		return
	}
	if s.closed {
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
}

// Unsubscribe runs every registered teardown in registration order.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.closed {
		return
	}
	s.closed = true

	teardowns := s.teardowns
	s.teardowns = nil
	for _, fn := range teardowns {
		fn()
	}
}

// Closed reports whether Unsubscribe has run.
func (s *Subscription) Closed() bool {
	if s == nil {
		return true
	}
	return s.closed
}

// Subscriber is the observer side handed to an Observable's subscribe
// function. After Error or Complete it ignores further notifications and
// tears itself down.
type Subscriber[T any] struct {
	*Subscription
	dst     Observer[T]
	stopped bool
}

func newSubscriber[T any](dst Observer[T]) *Subscriber[T] {
	if dst == nil {
		dst = Funcs[T]{}
	}
	return &Subscriber[T]{
		Subscription: &Subscription{},
		dst:          dst,
	}
}

func (s *Subscriber[T]) Next(v T) {
	if s.stopped || s.closed {
		return
	}
	s.dst.Next(v)
}

func (s *Subscriber[T]) Error(err error) {
	if s.stopped || s.closed {
		return
	}
	s.stopped = true
	defer s.Unsubscribe()
	s.dst.Error(err)
}

func (s *Subscriber[T]) Complete() {
	if s.stopped || s.closed {
		return
	}
	s.stopped = true
	defer s.Unsubscribe()
	s.dst.Complete()
}
