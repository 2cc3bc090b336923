package record

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldKey string

func newAB() *Record {
	return Positional([]string{"a", "b"}, []any{0, 0})
}

func TestPropagateArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     any
		expected []Pair
	}{
		{
			name:     "pairs",
			data:     []Pair{{"c", 3}},
			expected: []Pair{{"a", 0}, {"b", 0}, {"c", 3}},
		},
		{
			name:     "fixed size tuples",
			data:     [][2]any{{"a", 1}, {"c", 3}},
			expected: []Pair{{"a", 1}, {"b", 0}, {"c", 3}},
		},
		{
			name:     "decoded JSON shape",
			data:     []any{[]any{"c", 3.0}, []any{"b", "x"}},
			expected: []Pair{{"a", 0}, {"b", "x"}, {"c", 3.0}},
		},
		{
			name:     "string slices",
			data:     [][]string{{"c", "three"}},
			expected: []Pair{{"a", 0}, {"b", 0}, {"c", "three"}},
		},
		{
			name:     "array of pairs",
			data:     [1]Pair{{"d", nil}},
			expected: []Pair{{"a", 0}, {"b", 0}, {"d", nil}},
		},
		{
			name:     "named string key in tuple",
			data:     [][2]any{{fieldKey("c"), 3}},
			expected: []Pair{{"a", 0}, {"b", 0}, {"c", 3}},
		},
		{
			name:     "named string key in decoded shape",
			data:     []any{[]any{fieldKey("c"), 3}, []any{"d", 4}},
			expected: []Pair{{"a", 0}, {"b", 0}, {"c", 3}, {"d", 4}},
		},
		{
			name:     "named string key in typed slice",
			data:     [][]fieldKey{{"c", "three"}},
			expected: []Pair{{"a", 0}, {"b", 0}, {"c", fieldKey("three")}},
		},
		{
			name:     "later pair wins",
			data:     []Pair{{"c", 1}, {"c", 2}},
			expected: []Pair{{"a", 0}, {"b", 0}, {"c", 2}},
		},
		{
			name:     "empty",
			data:     []any{},
			expected: []Pair{{"a", 0}, {"b", 0}},
		},
		{
			name:     "nil slice",
			data:     []Pair(nil),
			expected: []Pair{{"a", 0}, {"b", 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newAB()
			require.NoError(t, r.PropagateArray(tt.data))
			assert.Equal(t, tt.expected, r.ToArray(), spew.Sdump(r.ToArray()))
		})
	}
}

func TestPropagateArrayErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    any
		message string
	}{
		{"nil", nil, "must be an array"},
		{"string", "c,3", "must be an array"},
		{"map", map[string]any{"c": 3}, "must be an array"},
		{"number", 42, "must be an array"},
		{"flat array", []any{"c", 3}, "expected key-value array at index 0"},
		{"short pair", []any{[]any{"c"}}, "expected key-value array at index 0"},
		{"long pair", []any{[]any{"c", 3, 4}}, "expected key-value array at index 0"},
		{"non-string key", []any{[]any{1, 3}}, "expected key-value array at index 0"},
		{"nil element", []any{[]any{"c", 3}, nil}, "expected key-value array at index 1"},
		{"bad tuple key", [][2]any{{"c", 3}, {7, 3}}, "expected key-value array at index 1"},
		{"reserved key", []Pair{{"c", 3}, {ToArrayName, 1}}, "reserved"},
		{"empty key", []any{[]any{"", 3}}, "empty name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newAB()
			err := r.PropagateArray(tt.data)
			require.ErrorIs(t, err, ErrInvalidPropagationInput)
			assert.Contains(t, err.Error(), tt.message)

			// Nothing is applied on failure.
			assert.Equal(t, []Pair{{"a", 0}, {"b", 0}}, r.ToArray())
		})
	}
}

type person struct {
	Name    string
	Age     int
	private string
}

func TestPropagateObject(t *testing.T) {
	t.Parallel()

	other := Positional([]string{"z", "a"}, []any{26, 1})

	tests := []struct {
		name     string
		data     any
		expected []Pair
	}{
		{
			name:     "overwrite",
			data:     map[string]any{"a": 1},
			expected: []Pair{{"a", 1}, {"b", 0}},
		},
		{
			name:     "new keys in sorted order",
			data:     map[string]any{"d": 4, "c": 3},
			expected: []Pair{{"a", 0}, {"b", 0}, {"c", 3}, {"d", 4}},
		},
		{
			name:     "typed map",
			data:     map[string]int{"b": 2},
			expected: []Pair{{"a", 0}, {"b", 2}},
		},
		{
			name:     "record",
			data:     other,
			expected: []Pair{{"a", 1}, {"b", 0}, {"z", 26}},
		},
		{
			name:     "struct",
			data:     person{Name: "Ada", Age: 30, private: "x"},
			expected: []Pair{{"a", 0}, {"b", 0}, {"Name", "Ada"}, {"Age", 30}},
		},
		{
			name:     "struct pointer",
			data:     &person{Name: "Ada"},
			expected: []Pair{{"a", 0}, {"b", 0}, {"Name", "Ada"}, {"Age", 0}},
		},
		{
			name:     "empty map",
			data:     map[string]any{},
			expected: []Pair{{"a", 0}, {"b", 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newAB()
			require.NoError(t, r.PropagateObject(tt.data))
			assert.Equal(t, tt.expected, r.ToArray(), spew.Sdump(r.ToArray()))
		})
	}
}

func TestPropagateObjectErrors(t *testing.T) {
	t.Parallel()

	var nilRecord *Record

	var nilPerson *person

	tests := []struct {
		name    string
		data    any
		message string
	}{
		{"nil", nil, "must be a valid object"},
		{"nil map", map[string]any(nil), "must be a valid object"},
		{"nil record", nilRecord, "must be a valid object"},
		{"nil struct pointer", nilPerson, "must be a valid object"},
		{"string", "a", "must be a valid object"},
		{"number", 1, "must be a valid object"},
		{"slice", []any{[]any{"a", 1}}, "must be a valid object"},
		{"int keys", map[int]any{1: "a"}, "must be a valid object"},
		{"reserved key", map[string]any{"c": 3, HasValueName: 1}, "reserved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newAB()
			err := r.PropagateObject(tt.data)
			require.ErrorIs(t, err, ErrInvalidPropagationInput)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, []Pair{{"a", 0}, {"b", 0}}, r.ToArray())
		})
	}
}

func TestPropagateThenToArray(t *testing.T) {
	t.Parallel()

	r := newAB()
	require.NoError(t, r.PropagateObject(map[string]any{"a": 1}))
	require.NoError(t, r.PropagateArray([]any{[]any{"c", 3}}))

	v, _ := r.Get("a")
	assert.Equal(t, 1, v)

	v, _ = r.Get("b")
	assert.Equal(t, 0, v)

	pairs := r.ToArray()
	require.Len(t, pairs, 3)
	assert.Equal(t, Pair{"c", 3}, pairs[len(pairs)-1])
}

func TestPropagateSelf(t *testing.T) {
	t.Parallel()

	r := newAB()
	require.NoError(t, r.PropagateObject(r))
	assert.Equal(t, []Pair{{"a", 0}, {"b", 0}}, r.ToArray())
}
