package identity_test

import (
	"testing"

	"github.com/delaneyj/rxbridge/internal/identity"
	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	shared := []int{1, 2}
	m := map[string]int{"a": 1}
	fn := func() {}
	var nilFn func()
	capture := func(n int) func() int { return func() int { return n } }

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "equal ints", a: 1, b: 1, want: true},
		{name: "different ints", a: 1, b: 2},
		{name: "different types", a: 1, b: int64(1)},
		{name: "both nil", want: true},
		{name: "nil and value", a: 1},
		{name: "same slice", a: shared, b: shared, want: true},
		{name: "equal contents different slices", a: []int{1, 2}, b: []int{1, 2}},
		{name: "resliced", a: shared, b: shared[:1]},
		{name: "same map", a: m, b: m, want: true},
		{name: "different maps", a: m, b: map[string]int{"a": 1}},
		{name: "same func", a: fn, b: fn, want: true},
		{name: "fresh closures", a: capture(1), b: capture(1)},
		{name: "func and nil func", a: fn, b: nilFn},
		{name: "nil funcs", a: nilFn, b: nilFn, want: true},
		{name: "struct holding slice", a: struct{ v any }{shared}, b: struct{ v any }{shared}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, identity.Equal(tt.a, tt.b))
			})
		})
	}
}

func TestEqualTyped(t *testing.T) {
	assert.True(t, identity.Equal("a", "a"))
	assert.False(t, identity.Equal([]int{1}, []int{1}))
}
