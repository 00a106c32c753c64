package hooks

import (
	"fmt"

	"github.com/delaneyj/rxbridge/component"
	"github.com/delaneyj/rxbridge/internal/bridge"
	"github.com/delaneyj/rxbridge/rx"
)

// useBridge subscribes to src during the first render and routes its
// distinct values through a bridge state that buffers until mount. Upstream
// errors go to the component's error boundary.
func useBridge[T any](c *component.Component, src *rx.Observable[T], commit bridge.CommitFunc[T]) *bridge.State[T] {
	if src == nil {
		panic(fmt.Errorf("hooks: %w", rx.ErrNilSource))
	}

	didMount := UseDidMount(c)
	latest := component.UseLatest(c, commit)
	state := component.Once(c, func() *bridge.State[T] {
		return bridge.New(func(v T, done func()) {
			latest.Current(v, done)
		})
	})

	UseSubscription(c, func() *rx.Subscription {
		return didMount.SubscribeFunc(func(struct{}) {
			state.Mount()
		})
	}, Immediate())

	UseSourceSubscription(c, src, func(o *rx.Observable[T]) *rx.Subscription {
		return rx.DistinctUntilChanged(o).Subscribe(rx.Funcs[T]{
			OnNext:  state.Next,
			OnError: c.ReportError,
		})
	}, Immediate())

	return state
}

// UseObservable returns the latest value of src as seen by this render.
// Values emitted before mount are coalesced into a single commit after
// mount; every distinct value after mount commits once, in order.
// ok is false until src has emitted.
func UseObservable[T any](c *component.Component, src *rx.Observable[T]) (value T, ok bool) {
	var zero T
	rendered := component.UseState(c, zero)
	state := useBridge(c, src, func(v T, done func()) {
		rendered.SetThen(v, done)
	})
	return state.Read()
}

// UseObservableFactory builds the source once, on the first render.
func UseObservableFactory[T any](c *component.Component, factory func() *rx.Observable[T]) (value T, ok bool) {
	if factory == nil {
		panic(ErrNilFactory)
	}
	return UseObservable(c, component.Once(c, factory))
}

// UseTransitionObservable is UseObservable with low-priority commits. While
// a commit is pending, pending is true and value stays at what the previous
// render showed.
func UseTransitionObservable[T any](c *component.Component, src *rx.Observable[T]) (pending bool, value T, ok bool) {
	var zero T
	transition := component.UseTransition(c)
	rendered := component.UseState(c, zero)
	state := useBridge(c, src, func(v T, done func()) {
		transition.Start(func() {
			rendered.SetThen(v, done)
		})
	})

	pending = transition.Pending()
	value, ok = state.ReadDeferred(pending, rendered.Get())
	return pending, value, ok
}

// UseTransitionObservableFactory builds the source once, on the first render.
func UseTransitionObservableFactory[T any](c *component.Component, factory func() *rx.Observable[T]) (pending bool, value T, ok bool) {
	if factory == nil {
		panic(ErrNilFactory)
	}
	return UseTransitionObservable(c, component.Once(c, factory))
}
