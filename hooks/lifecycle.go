// Package hooks binds rx streams to component lifecycles: subscriptions that
// live exactly as long as a component, values bridged into renders across the
// mount boundary, and component-scoped subjects and callbacks.
package hooks

import (
	"github.com/delaneyj/rxbridge/component"
	"github.com/delaneyj/rxbridge/internal/identity"
	"github.com/delaneyj/rxbridge/rx"
)

// UseDidMount returns a stream that emits once after mount, replays that
// emission to later observers, and completes at unmount.
func UseDidMount(c *component.Component) *rx.Observable[struct{}] {
	subject := component.Once(c, func() *rx.ReplaySubject[struct{}] {
		return rx.NewReplaySubject[struct{}](1)
	})
	component.UseMountEffect(c, func() func() {
		subject.Next(struct{}{})
		return subject.Complete
	})
	return subject.AsObservable()
}

// UseWillUnmount returns a stream that emits once and completes right before
// the component unmounts.
func UseWillUnmount(c *component.Component) *rx.Observable[struct{}] {
	subject := component.Once(c, rx.NewSubject[struct{}])
	component.UseMountEffect(c, func() func() {
		return func() {
			subject.Next(struct{}{})
			subject.Complete()
		}
	})
	return subject.AsObservable()
}

type completer interface {
	Complete()
}

// UseSubject creates a subject once per component and completes it at
// unmount, mounted or not.
func UseSubject[S completer](c *component.Component, factory func() S) S {
	subject := component.Once(c, func() S {
		s := factory()
		c.Defer(s.Complete)
		return s
	})
	component.UseMountEffect(c, func() func() {
		return subject.Complete
	})
	return subject
}

// UseValueChange turns a render-time value into a stream of its distinct
// values. The latest value is replayed to new observers and the stream
// completes at unmount.
func UseValueChange[T any](c *component.Component, v T) *rx.Observable[T] {
	return UseValueChangeFunc(c, v, identity.Equal[T])
}

// UseValueChangeFunc is UseValueChange with a custom equality.
func UseValueChangeFunc[T any](c *component.Component, v T, equal func(prev, next T) bool) *rx.Observable[T] {
	subject := UseSubject(c, func() *rx.BehaviorSubject[T] {
		return rx.NewBehaviorSubject(v)
	})
	values := component.Once(c, func() *rx.Observable[T] {
		return rx.DistinctUntilChangedFunc(subject.AsObservable(), equal)
	})
	component.UseValueEffectFunc(c, v, equal, subject.Next)
	return values
}
