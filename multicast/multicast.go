// Package multicast holds the sharing policies for streams read by UI
// components.
//
// A UI share keeps one upstream subscription for the life of the stream
// definition. It is never reset when observers drop to zero or when upstream
// completes, so a component mounting after every earlier reader unmounted
// still gets the current value from the same junction.
package multicast

import "github.com/delaneyj/rxbridge/rx"

// UIConfig is the never-reset policy replaying the latest value.
func UIConfig[T any]() rx.ShareConfig[T] {
	return rx.ShareConfig[T]{
		Connector: func() rx.SubjectLike[T] {
			return rx.NewReplaySubject[T](1)
		},
	}
}

// UIConfigWithInitial is the never-reset policy that starts from initial
// and then tracks the current value.
func UIConfigWithInitial[T any](initial T) rx.ShareConfig[T] {
	return rx.ShareConfig[T]{
		Connector: func() rx.SubjectLike[T] {
			return rx.NewBehaviorSubject(initial)
		},
	}
}

// ForUI shares src under the UI policy.
func ForUI[T any](src *rx.Observable[T]) *rx.Observable[T] {
	return rx.Share(src, UIConfig[T]())
}

// ForUIWithInitial shares src under the UI policy with a declared initial
// value visible before upstream emits.
func ForUIWithInitial[T any](src *rx.Observable[T], initial T) *rx.Observable[T] {
	return rx.Share(src, UIConfigWithInitial(initial))
}

// ForUIOperator is ForUI in operator form.
func ForUIOperator[T any]() func(*rx.Observable[T]) *rx.Observable[T] {
	return ForUI[T]
}

// ForUIOperatorWithInitial is ForUIWithInitial in operator form.
func ForUIOperatorWithInitial[T any](initial T) func(*rx.Observable[T]) *rx.Observable[T] {
	return func(src *rx.Observable[T]) *rx.Observable[T] {
		return ForUIWithInitial(src, initial)
	}
}

// ReactFriendly shares src with a replay of the latest value but, unlike
// ForUI, reconnects upstream after every observer left or upstream
// terminated.
func ReactFriendly[T any](src *rx.Observable[T]) *rx.Observable[T] {
	cfg := rx.DefaultShareConfig[T]()
	cfg.Connector = UIConfig[T]().Connector
	return rx.Share(src, cfg)
}

// ReactFriendlyWithInitial is ReactFriendly starting from initial.
func ReactFriendlyWithInitial[T any](src *rx.Observable[T], initial T) *rx.Observable[T] {
	cfg := rx.DefaultShareConfig[T]()
	cfg.Connector = UIConfigWithInitial(initial).Connector
	return rx.Share(src, cfg)
}
