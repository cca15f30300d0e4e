package binder

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []any
	}{
		{"nil is empty", nil, []any{}},
		{"scalar wraps", "Hello", []any{"Hello"}},
		{"int wraps", 42, []any{42}},
		{
			// The load-bearing case: a single record is one item, never a
			// list of its values.
			"single record wraps",
			map[string]any{"target_id": 1},
			[]any{map[string]any{"target_id": 1}},
		},
		{
			"record list stays multi-value",
			[]any{map[string]any{"target_id": 1}, map[string]any{"target_id": 2}},
			[]any{map[string]any{"target_id": 1}, map[string]any{"target_id": 2}},
		},
		{
			"typed record list stays multi-value",
			[]map[string]any{{"target_id": 1}, {"target_id": 2}},
			[]any{map[string]any{"target_id": 1}, map[string]any{"target_id": 2}},
		},
		{
			"nested lists stay multi-value",
			[]any{[]any{1, 2}, []any{3}},
			[]any{[]any{1, 2}, []any{3}},
		},
		{
			"scalar list wraps whole",
			[]any{1, 2, 3},
			[]any{[]any{1, 2, 3}},
		},
		{
			"mixed list wraps whole",
			[]any{map[string]any{"target_id": 1}, "stray"},
			[]any{[]any{map[string]any{"target_id": 1}, "stray"}},
		},
		{"empty list stays empty", []any{}, []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCopiesList(t *testing.T) {
	in := []any{map[string]any{"target_id": 1}, map[string]any{"target_id": 2}}
	out := Normalize(in)
	out[0] = nil
	if in[0] == nil {
		t.Error("Normalize must not alias the input list")
	}
}
