package hooks

import (
	"github.com/delaneyj/rxbridge/component"
	"github.com/delaneyj/rxbridge/internal/identity"
	"github.com/delaneyj/rxbridge/rx"
	"github.com/delaneyj/rxbridge/rxref"
)

// UseRxRef returns a component-scoped reference stream and its handle. The
// streams complete at unmount.
func UseRxRef[T any](c *component.Component) (*rx.Observable[T], *rxref.Handle[T]) {
	h := UseSubject(c, func() *rxref.Handle[T] {
		_, h := rxref.New[T]()
		return h
	})
	return h.Values(), h
}

// UseRxRefWithInitial is UseRxRef seeded with an initial value.
func UseRxRefWithInitial[T any](c *component.Component, initial T) (*rx.Observable[T], *rxref.Handle[T]) {
	h := UseSubject(c, func() *rxref.Handle[T] {
		_, h := rxref.NewWithInitial(initial)
		return h
	})
	return h.Values(), h
}

// UseRxEvent returns a stable listener and the stream of events passed to it.
func UseRxEvent[E any](c *component.Component) (*rx.Observable[E], func(E)) {
	subject := UseSubject(c, rx.NewSubject[E])
	return subject.AsObservable(), subject.Next
}

// UseRxEventMap is UseRxEvent with every event mapped through the mapFn of
// the latest render.
func UseRxEventMap[E, R any](c *component.Component, mapFn func(E) R) (*rx.Observable[R], func(E)) {
	subject := UseSubject(c, rx.NewSubject[E])
	latest := component.UseLatest(c, mapFn)
	events := component.Once(c, func() *rx.Observable[R] {
		return rx.Map(subject.AsObservable(), func(e E) R {
			return latest.Current(e)
		})
	})
	return events, subject.Next
}

// UseRxCallback returns a stable callback and the stream of its arguments.
func UseRxCallback[A any](c *component.Component) (*rx.Observable[A], func(A)) {
	return UseRxEvent[A](c)
}

// UseRxCallbackPipe is UseRxCallback with the argument stream transformed by
// the pipe built on the first render. The result is shared between
// observers.
func UseRxCallbackPipe[A, R any](c *component.Component, pipe func(*rx.Observable[A]) *rx.Observable[R]) (*rx.Observable[R], func(A)) {
	if pipe == nil {
		panic(ErrNilFactory)
	}
	subject := UseSubject(c, rx.NewSubject[A])
	results := component.Once(c, func() *rx.Observable[R] {
		return rx.Share(pipe(subject.AsObservable()), rx.DefaultShareConfig[R]())
	})
	return results, subject.Next
}

// UseRxEffect returns a stream of the number of commits so far, starting
// at zero before the first one.
func UseRxEffect(c *component.Component) *rx.Observable[int] {
	subject := UseSubject(c, func() *rx.BehaviorSubject[int] {
		return rx.NewBehaviorSubject(0)
	})
	component.UseCommitEffect(c, func() {
		subject.Next(subject.Value() + 1)
	})
	return subject.AsObservable()
}

// UseRxFactory returns a shared stream produced by factory. Whenever deps
// change between renders the previous production is torn down and factory
// runs again. Deps are compared like UseValueChange values: funcs, maps and
// slices by reference.
func UseRxFactory[T any](c *component.Component, factory func(s *rx.Subscriber[T]) (teardown func()), deps ...any) *rx.Observable[T] {
	if factory == nil {
		panic(ErrNilFactory)
	}
	latest := component.UseLatest(c, factory)
	changes := UseValueChangeFunc(c, deps, sameDeps)

	return component.Once(c, func() *rx.Observable[T] {
		produced := rx.SwitchMap(changes, func([]any) *rx.Observable[T] {
			return rx.New(func(s *rx.Subscriber[T]) func() {
				return latest.Current(s)
			})
		})
		return rx.Share(produced, rx.DefaultShareConfig[T]())
	})
}

func sameDeps(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !identity.Equal(prev[i], next[i]) {
			return false
		}
	}
	return true
}
