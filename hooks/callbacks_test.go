package hooks_test

import (
	"strconv"
	"testing"

	"github.com/delaneyj/rxbridge/component"
	"github.com/delaneyj/rxbridge/hooks"
	"github.com/delaneyj/rxbridge/rx"
	"github.com/stretchr/testify/assert"
)

func TestUseRxEventCompletesAtUnmount(t *testing.T) {
	r := component.NewRenderer()
	var (
		events *rx.Observable[string]
		emit   func(string)
		got    []string
		closed bool
	)

	c := r.Mount(func(c *component.Component) {
		events, emit = hooks.UseRxEvent[string](c)
	})
	events.Subscribe(rx.Funcs[string]{
		OnNext:     func(v string) { got = append(got, v) },
		OnComplete: func() { closed = true },
	})

	emit("click")
	c.Rerender()
	emit("hover")
	c.Unmount()
	emit("ignored")

	assert.Equal(t, []string{"click", "hover"}, got)
	assert.True(t, closed)
}

func TestUseRxEventMapUsesLatestMapper(t *testing.T) {
	r := component.NewRenderer()
	prefix := "x"
	var (
		events *rx.Observable[string]
		emit   func(int)
	)

	c := r.Mount(func(c *component.Component) {
		p := prefix
		events, emit = hooks.UseRxEventMap(c, func(v int) string {
			return p + strconv.Itoa(v)
		})
	})

	var got []string
	events.SubscribeFunc(func(v string) { got = append(got, v) })
	emit(1)
	prefix = "y"
	c.Rerender()
	emit(2)

	assert.Equal(t, []string{"x1", "y2"}, got)
}

func TestUseRxCallbackPipeIsShared(t *testing.T) {
	r := component.NewRenderer()
	piped := 0
	var (
		results *rx.Observable[int]
		call    func(int)
	)

	c := r.Mount(func(c *component.Component) {
		results, call = hooks.UseRxCallbackPipe(c, func(args *rx.Observable[int]) *rx.Observable[int] {
			piped++
			return rx.Map(args, func(v int) int { return v * 2 })
		})
	})
	c.Rerender()

	var a, b []int
	results.SubscribeFunc(func(v int) { a = append(a, v) })
	results.SubscribeFunc(func(v int) { b = append(b, v) })
	call(2)
	call(5)

	assert.Equal(t, 1, piped)
	assert.Equal(t, []int{4, 10}, a)
	assert.Equal(t, []int{4, 10}, b)
}

func TestUseRxEffectCountsCommits(t *testing.T) {
	r := component.NewRenderer()
	var commits *rx.Observable[int]

	c := r.Mount(func(c *component.Component) {
		commits = hooks.UseRxEffect(c)
	})

	var got []int
	completed := false
	commits.Subscribe(rx.Funcs[int]{
		OnNext:     func(v int) { got = append(got, v) },
		OnComplete: func() { completed = true },
	})
	c.Rerender()
	c.Unmount()

	assert.Equal(t, []int{1, 2}, got)
	assert.True(t, completed)
}

func TestUseRxFactoryRestartsOnDepsChange(t *testing.T) {
	r := component.NewRenderer()
	dep := "a"
	var (
		stream *rx.Observable[string]
		events []string
	)

	c := r.Mount(func(c *component.Component) {
		d := dep
		stream = hooks.UseRxFactory(c, func(s *rx.Subscriber[string]) func() {
			events = append(events, "start "+d)
			s.Next(d)
			return func() { events = append(events, "stop "+d) }
		}, d)
	})

	var got []string
	sub := stream.SubscribeFunc(func(v string) { got = append(got, v) })
	c.Rerender()
	assert.Equal(t, []string{"start a"}, events, "same deps keep the production")

	dep = "b"
	c.Rerender()
	sub.Unsubscribe()

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, []string{"start a", "stop a", "start b", "stop b"}, events)
}

func TestUseRxFactoryAcceptsFuncDeps(t *testing.T) {
	r := component.NewRenderer()
	onChange := func() {}
	tags := []string{"x"}
	starts := 0
	var stream *rx.Observable[int]

	c := r.Mount(func(c *component.Component) {
		stream = hooks.UseRxFactory(c, func(s *rx.Subscriber[int]) func() {
			starts++
			s.Next(starts)
			return nil
		}, onChange, tags)
	})

	var got []int
	stream.SubscribeFunc(func(v int) { got = append(got, v) })
	assert.NotPanics(t, c.Rerender)
	assert.Equal(t, []int{1}, got, "same callback and slice keep the production")

	onChange = func() {}
	assert.NotPanics(t, c.Rerender)
	assert.Equal(t, []int{1, 2}, got, "a new callback restarts the production")
}
