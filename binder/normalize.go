package binder

import (
	"github.com/doubleforge/entity-doubles/definition"
)

// Normalize turns a resolved raw field value into an ordered item list:
// nil becomes an empty list; a value whose every top-level element is itself
// record/array-like is the multi-value list as-is; any other array or scalar
// wraps as a single-item list.
//
// The single-record case is load-bearing: map[string]any{"target_id": 1}
// must wrap as one item, never split into a list of scalars.
func Normalize(v any) []any {
	if v == nil {
		return []any{}
	}
	if definition.MultiValue(v) {
		switch list := v.(type) {
		case []any:
			out := make([]any, len(list))
			copy(out, list)
			return out
		case []map[string]any:
			out := make([]any, len(list))
			for i, e := range list {
				out[i] = e
			}
			return out
		}
	}
	return []any{v}
}
