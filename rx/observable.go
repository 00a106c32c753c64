// Package rx is a small synchronous push-stream library.
//
// Every emission, subscription and teardown runs on the caller's goroutine in
// program order. Nothing here is safe for concurrent use: streams are meant to
// be driven from a single logical thread, the same one that drives rendering.
package rx

import (
	"errors"
	"fmt"
)

var (
	ErrNilSource = errors.New("rx: nil source")
	ErrUnhandled = errors.New("rx: unhandled stream error")
)

// Observer receives the notifications of a stream.
type Observer[T any] interface {
	Next(T)
	Error(error)
	Complete()
}

// Funcs adapts plain callbacks to an Observer. A nil OnError turns an error
// notification into a panic so it can never be dropped silently.
type Funcs[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

func (f Funcs[T]) Next(v T) {
	if f.OnNext != nil {
		f.OnNext(v)
	}
}

func (f Funcs[T]) Error(err error) {
	if f.OnError == nil {
		panic(fmt.Errorf("%w: %w", ErrUnhandled, err))
	}
	f.OnError(err)
}

func (f Funcs[T]) Complete() {
	if f.OnComplete != nil {
		f.OnComplete()
	}
}

// Observable is a lazy push stream. Each Subscribe runs the subscribe
// function anew unless the stream is shared.
type Observable[T any] struct {
	subscribe func(s *Subscriber[T]) (teardown func())
}

// New creates an Observable from a subscribe function. The returned teardown,
// if any, runs when the subscriber unsubscribes or terminates.
func New[T any](subscribe func(s *Subscriber[T]) (teardown func())) *Observable[T] {
	if subscribe == nil {
		panic(fmt.Errorf("%w: nil subscribe function", ErrNilSource))
	}
	return &Observable[T]{subscribe: subscribe}
}

// Subscribe attaches obs and returns the subscription that tears it down.
func (o *Observable[T]) Subscribe(obs Observer[T]) *Subscription {
	if o == nil {
		panic(ErrNilSource)
	}
	s := newSubscriber(obs)
	s.Add(o.subscribe(s))
	return s.Subscription
}

// SubscribeFunc is Subscribe with only a next callback.
func (o *Observable[T]) SubscribeFunc(next func(T)) *Subscription {
	return o.Subscribe(Funcs[T]{OnNext: next})
}

// Of emits every value and then completes.
func Of[T any](values ...T) *Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		for _, v := range values {
			if s.Closed() {
				return nil
			}
			s.Next(v)
		}
		s.Complete()
		return nil
	})
}

// Throw errors immediately on subscribe.
func Throw[T any](err error) *Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		s.Error(err)
		return nil
	})
}

// Never neither emits nor terminates.
func Never[T any]() *Observable[T] {
	return New(func(*Subscriber[T]) func() { return nil })
}

// Peek subscribes, captures whatever is emitted synchronously, and
// unsubscribes. ok is false when nothing was emitted.
func Peek[T any](src *Observable[T]) (value T, ok bool, err error) {
	sub := src.Subscribe(Funcs[T]{
		OnNext: func(v T) {
			value, ok = v, true
		},
		OnError: func(e error) {
			err = e
		},
	})
	sub.Unsubscribe()
	return value, ok, err
}
