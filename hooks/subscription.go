package hooks

import (
	"errors"

	"github.com/delaneyj/rxbridge/component"
	"github.com/delaneyj/rxbridge/rx"
)

// ErrNilFactory is raised when a hook is given no factory to build from.
var ErrNilFactory = errors.New("hooks: nil factory")

// SubscriptionOption configures UseSubscription and UseSourceSubscription.
type SubscriptionOption func(*subscriptionConfig)

type subscriptionConfig struct {
	immediate bool
}

// Immediate subscribes during the first render instead of after mount.
func Immediate() SubscriptionOption {
	return func(c *subscriptionConfig) {
		c.immediate = true
	}
}

func newSubscriptionConfig(opts []SubscriptionOption) subscriptionConfig {
	cfg := subscriptionConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg subscriptionConfig) trigger(didMount *rx.Observable[struct{}]) *rx.Observable[struct{}] {
	if cfg.immediate {
		return rx.Of(struct{}{})
	}
	return didMount
}

// asObservable wraps a subscription factory so switching operators can
// establish and tear it down.
func asObservable(subscribe func() *rx.Subscription) *rx.Observable[struct{}] {
	return rx.New(func(*rx.Subscriber[struct{}]) func() {
		return subscribe().Unsubscribe
	})
}

// UseSubscription establishes the subscription returned by factory once per
// component, after mount or immediately, and tears it down at unmount.
// Re-renders never subscribe again. A panicking factory is not recovered.
func UseSubscription(c *component.Component, factory func() *rx.Subscription, opts ...SubscriptionOption) {
	if factory == nil {
		panic(ErrNilFactory)
	}
	cfg := newSubscriptionConfig(opts)

	didMount := UseDidMount(c)
	willUnmount := UseWillUnmount(c)
	latest := component.UseLatest(c, factory)

	component.Once(c, func() *rx.Subscription {
		subscribe := func(struct{}) *rx.Observable[struct{}] {
			return asObservable(func() *rx.Subscription { return latest.Current() })
		}
		sub := rx.TakeUntil(rx.SwitchMap(cfg.trigger(didMount), subscribe), willUnmount).Subscribe(nil)
		c.Defer(sub.Unsubscribe)
		return sub
	})
}

// UseSourceSubscription subscribes with factory(source) and re-subscribes
// whenever a render passes a different source. The previous subscription is
// torn down before the next is established; the last one is torn down at
// unmount.
func UseSourceSubscription[D any](c *component.Component, source D, factory func(D) *rx.Subscription, opts ...SubscriptionOption) {
	if factory == nil {
		panic(ErrNilFactory)
	}
	cfg := newSubscriptionConfig(opts)

	didMount := UseDidMount(c)
	willUnmount := UseWillUnmount(c)
	sources := UseValueChange(c, source)
	latest := component.UseLatest(c, factory)

	component.Once(c, func() *rx.Subscription {
		current := rx.SwitchMap(cfg.trigger(didMount), func(struct{}) *rx.Observable[D] {
			return sources
		})
		subscribe := func(d D) *rx.Observable[struct{}] {
			return asObservable(func() *rx.Subscription { return latest.Current(d) })
		}
		sub := rx.TakeUntil(rx.SwitchMap(current, subscribe), willUnmount).Subscribe(nil)
		c.Defer(sub.Unsubscribe)
		return sub
	})
}
