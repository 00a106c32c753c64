package hooks_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/rxbridge/component"
	"github.com/delaneyj/rxbridge/hooks"
	"github.com/delaneyj/rxbridge/multicast"
	"github.com/delaneyj/rxbridge/rx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frames records the value every render observed.
type frames[T any] struct {
	values []T
}

func (f *frames[T]) observe(c *component.Component, src *rx.Observable[T], bridge func(*component.Component, *rx.Observable[T]) (T, bool)) {
	if v, ok := bridge(c, src); ok {
		f.values = append(f.values, v)
	}
}

func TestEmissionsBeforeMountCoalesce(t *testing.T) {
	r := component.NewRenderer()
	src := rx.NewSubject[int]()
	f := &frames[int]{}

	c := r.Create(func(c *component.Component) {
		f.observe(c, src.AsObservable(), hooks.UseObservable[int])
	})
	src.Next(1)
	src.Next(2)
	src.Next(3)
	assert.Empty(t, f.values)

	c.Mount()
	assert.Equal(t, []int{3}, f.values)
	assert.Equal(t, 2, c.Commits(), "one commit after mount")
}

func TestEmissionsAfterMountCommitOnceEach(t *testing.T) {
	r := component.NewRenderer()
	src := rx.NewSubject[string]()
	f := &frames[string]{}

	c := r.Mount(func(c *component.Component) {
		f.observe(c, src.AsObservable(), hooks.UseObservable[string])
	})
	for _, v := range []string{"a", "a", "b", "c", "c", "a"} {
		src.Next(v)
	}

	assert.Equal(t, []string{"a", "b", "c", "a"}, f.values)
	assert.Equal(t, 5, c.Commits())
}

func TestSynchronousValueVisibleOnFirstRender(t *testing.T) {
	r := component.NewRenderer()
	src := rx.NewBehaviorSubject(10)
	f := &frames[int]{}

	c := r.Mount(func(c *component.Component) {
		f.observe(c, src.AsObservable(), hooks.UseObservable[int])
	})
	assert.Equal(t, []int{10}, f.values)
	assert.Equal(t, 1, c.Commits())

	c.Rerender()
	assert.Equal(t, []int{10, 10}, f.values)
}

func TestUseObservableSubscribesOnce(t *testing.T) {
	var events []string
	src := counted(&events, "src")
	r := component.NewRenderer()

	c := r.Mount(func(c *component.Component) {
		hooks.UseObservable(c, src)
	})
	c.Rerender()
	c.Rerender()
	assert.Equal(t, []string{"sub src"}, events)

	c.Unmount()
	assert.Equal(t, []string{"sub src", "unsub src"}, events)
}

func TestUseObservableSwitchesSource(t *testing.T) {
	r := component.NewRenderer()
	a, b := rx.NewBehaviorSubject("a"), rx.NewBehaviorSubject("b")
	src := a.AsObservable()
	f := &frames[string]{}

	c := r.Mount(func(c *component.Component) {
		f.observe(c, src, hooks.UseObservable[string])
	})
	src = b.AsObservable()
	c.Rerender()

	a.Next("a2")
	b.Next("b2")
	assert.Equal(t, []string{"a", "a", "b", "b2"}, f.values)
	assert.Equal(t, 0, a.Observers())
}

func TestUseObservableFactoryBuildsOnce(t *testing.T) {
	r := component.NewRenderer()
	builds := 0
	var got string

	c := r.Mount(func(c *component.Component) {
		got, _ = hooks.UseObservableFactory(c, func() *rx.Observable[string] {
			builds++
			return rx.Of("built")
		})
	})
	c.Rerender()

	assert.Equal(t, 1, builds)
	assert.Equal(t, "built", got)
}

func TestUpstreamErrorReachesBoundary(t *testing.T) {
	boom := errors.New("boom")
	var caught []error
	r := component.NewRenderer(component.WithErrorBoundary(func(c *component.Component, err error) {
		caught = append(caught, err)
	}))
	src := rx.NewSubject[int]()

	r.Mount(func(c *component.Component) {
		hooks.UseObservable(c, src.AsObservable())
	})
	src.Error(boom)

	require.Len(t, caught, 1)
	assert.ErrorIs(t, caught[0], boom)
}

func TestNilSourcePanics(t *testing.T) {
	r := component.NewRenderer()
	assert.Panics(t, func() {
		r.Mount(func(c *component.Component) {
			hooks.UseObservable[int](c, nil)
		})
	})
}

type deferredFrame struct {
	pending bool
	value   int
}

func TestTransitionObservableHoldsPreviousWhilePending(t *testing.T) {
	r := component.NewRenderer()
	src := rx.NewSubject[int]()
	var got []deferredFrame
	var read func() int

	c := r.Mount(func(c *component.Component) {
		pending, v, _ := hooks.UseTransitionObservable(c, src.AsObservable())
		got = append(got, deferredFrame{pending, v})
		read = func() int { return v }
	})

	src.Next(1)
	assert.Equal(t, 0, read(), "pending commit keeps the previous value")
	r.CommitTransitions()
	assert.Equal(t, 1, read())

	src.Next(2)
	src.Next(3)
	assert.Equal(t, 1, read())
	r.CommitTransitions()
	assert.Equal(t, 3, read(), "superseded commit is not shown")

	assert.Equal(t, []deferredFrame{
		{false, 0},
		{true, 0},
		{false, 1},
		{true, 1},
		{false, 3},
	}, got)
	assert.Equal(t, 5, c.Commits())
}

func TestTransitionObservableCoalescesBeforeMount(t *testing.T) {
	r := component.NewRenderer()
	src := rx.NewSubject[int]()
	var last deferredFrame

	c := r.Create(func(c *component.Component) {
		pending, v, _ := hooks.UseTransitionObservableFactory(c, src.AsObservable)
		last = deferredFrame{pending, v}
	})
	src.Next(4)
	src.Next(5)
	c.Mount()
	assert.True(t, last.pending)

	r.CommitTransitions()
	assert.Equal(t, deferredFrame{false, 5}, last)

	c.Rerender()
	assert.Equal(t, deferredFrame{false, 5}, last)
}

func TestSharedStreamAcrossComponents(t *testing.T) {
	subscribes := 0
	upstream := rx.NewSubject[string]()
	shared := multicast.ForUI(rx.New(func(s *rx.Subscriber[string]) func() {
		subscribes++
		return upstream.Subscribe(s).Unsubscribe
	}))

	r := component.NewRenderer()
	render := func(out *string) component.RenderFunc {
		return func(c *component.Component) {
			*out, _ = hooks.UseObservable(c, shared)
		}
	}

	var first, second, third string
	a := r.Mount(render(&first))
	upstream.Next("reduce-motion")
	b := r.Mount(render(&second))
	assert.Equal(t, "reduce-motion", first)
	assert.Equal(t, "reduce-motion", second)

	a.Unmount()
	b.Unmount()
	upstream.Next("full-motion")

	r.Mount(render(&third))
	assert.Equal(t, "full-motion", third)
	assert.Equal(t, 1, subscribes)
}

func TestRefBridgedIntoRender(t *testing.T) {
	r := component.NewRenderer()
	var set func(string) func()
	var seen []string

	c := r.Create(func(c *component.Component) {
		values, handle := hooks.UseRxRef[string](c)
		set = handle.Set
		if v, ok := hooks.UseObservable(c, values); ok {
			seen = append(seen, v)
		}
	})
	set("a")
	set("b")
	c.Mount()
	assert.Equal(t, []string{"b"}, seen)

	detach := set("c")
	detach()
	assert.Equal(t, []string{"b", "c"}, seen)
}

func TestUseObservableWithUncomparableValues(t *testing.T) {
	r := component.NewRenderer()
	src := rx.NewSubject[any]()
	var seen []any

	r.Mount(func(c *component.Component) {
		if v, ok := hooks.UseObservable(c, src.AsObservable()); ok {
			seen = append(seen, v)
		}
	})

	first := []int{1}
	assert.NotPanics(t, func() {
		src.Next(first)
		src.Next(first)
		src.Next([]int{2})
		src.Next(map[string]int{"a": 1})
	})
	assert.Equal(t, []any{[]int{1}, []int{2}, map[string]int{"a": 1}}, seen)
}
