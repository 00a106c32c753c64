package rx

import "github.com/delaneyj/rxbridge/internal/identity"

// Map transforms each value.
func Map[T, R any](src *Observable[T], fn func(T) R) *Observable[R] {
	return New(func(s *Subscriber[R]) func() {
		return src.Subscribe(Funcs[T]{
			OnNext:     func(v T) { s.Next(fn(v)) },
			OnError:    s.Error,
			OnComplete: s.Complete,
		}).Unsubscribe
	})
}

// Filter forwards values for which keep returns true.
func Filter[T any](src *Observable[T], keep func(T) bool) *Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		return src.Subscribe(Funcs[T]{
			OnNext: func(v T) {
				if keep(v) {
					s.Next(v)
				}
			},
			OnError:    s.Error,
			OnComplete: s.Complete,
		}).Unsubscribe
	})
}

// DistinctUntilChanged drops values equal to the previously forwarded one.
// Values Go cannot compare with ==, such as slices behind an interface,
// are compared by reference instead of panicking.
func DistinctUntilChanged[T any](src *Observable[T]) *Observable[T] {
	return DistinctUntilChangedFunc(src, identity.Equal[T])
}

// DistinctUntilChangedFunc is DistinctUntilChanged with a custom equality.
func DistinctUntilChangedFunc[T any](src *Observable[T], equal func(prev, next T) bool) *Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		var (
			last T
			seen bool
		)
		return src.Subscribe(Funcs[T]{
			OnNext: func(v T) {
				if seen && equal(last, v) {
					return
				}
				last, seen = v, true
				s.Next(v)
			},
			OnError:    s.Error,
			OnComplete: s.Complete,
		}).Unsubscribe
	})
}

// Merge interleaves the sources in emission order and completes once all of
// them have completed.
func Merge[T any](sources ...*Observable[T]) *Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		active := len(sources)
		if active == 0 {
			s.Complete()
			return nil
		}

		subs := make([]*Subscription, 0, len(sources))
		for _, src := range sources {
			if s.Closed() {
				break
			}
			subs = append(subs, src.Subscribe(Funcs[T]{
				OnNext:  s.Next,
				OnError: s.Error,
				OnComplete: func() {
					active--
					if active == 0 {
						s.Complete()
					}
				},
			}))
		}

		return func() {
			for _, sub := range subs {
				sub.Unsubscribe()
			}
		}
	})
}

// SwitchMap projects each value to an inner stream and mirrors only the most
// recent one. The previous inner subscription is always torn down before the
// next one is established.
func SwitchMap[T, R any](src *Observable[T], project func(T) *Observable[R]) *Observable[R] {
	return New(func(s *Subscriber[R]) func() {
		var (
			inner       *Subscription
			innerActive bool
			outerDone   bool
		)

		outer := src.Subscribe(Funcs[T]{
			OnNext: func(v T) {
				inner.Unsubscribe()
				inner = nil

				next := project(v)
				innerActive = true
				inner = next.Subscribe(Funcs[R]{
					OnNext:  s.Next,
					OnError: s.Error,
					OnComplete: func() {
						innerActive = false
						if outerDone {
							s.Complete()
						}
					},
				})
			},
			OnError: s.Error,
			OnComplete: func() {
				outerDone = true
				if !innerActive {
					s.Complete()
				}
			},
		})

		return func() {
			inner.Unsubscribe()
			outer.Unsubscribe()
		}
	})
}

// TakeUntil mirrors src until notifier emits, then completes.
func TakeUntil[T, N any](src *Observable[T], notifier *Observable[N]) *Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		stop := notifier.Subscribe(Funcs[N]{
			OnNext:  func(N) { s.Complete() },
			OnError: s.Error,
		})
		if s.Closed() {
			return stop.Unsubscribe
		}

		sub := src.Subscribe(Funcs[T]{
			OnNext:     s.Next,
			OnError:    s.Error,
			OnComplete: s.Complete,
		})

		return func() {
			stop.Unsubscribe()
			sub.Unsubscribe()
		}
	})
}
