package entitydoubles

import "testing"

func TestCall(t *testing.T) {
	ctx := Context{"name": "alpha"}

	if got := Call("scalar", ctx); got != "scalar" {
		t.Errorf("Call(scalar) = %v, want passthrough", got)
	}
	if got := Call(ValueFunc(func(c Context) any { return c["name"] }), ctx); got != "alpha" {
		t.Errorf("Call(ValueFunc) = %v, want alpha", got)
	}
	if got := Call(func(c Context) any { return c["name"] }, ctx); got != "alpha" {
		t.Errorf("Call(bare func) = %v, want alpha", got)
	}
}

func TestCallable(t *testing.T) {
	if Callable("scalar") || Callable(42) || Callable(nil) {
		t.Error("scalars must not classify as callable")
	}
	if !Callable(ValueFunc(func(Context) any { return nil })) {
		t.Error("ValueFunc must classify as callable")
	}
	if !Callable(func(Context) any { return nil }) {
		t.Error("a bare value-shaped func must classify as callable")
	}
	// Method-shaped funcs are override values, not definition values.
	if Callable(func(Context, ...any) any { return nil }) {
		t.Error("method-shaped funcs are not definition callables")
	}
}

func TestCallMethod(t *testing.T) {
	ctx := Context{"base": 10}

	if got := CallMethod(7, ctx); got != 7 {
		t.Errorf("CallMethod(scalar) = %v, want passthrough", got)
	}

	sum := MethodFunc(func(c Context, args ...any) any {
		total := c["base"].(int)
		for _, a := range args {
			total += a.(int)
		}
		return total
	})
	if got := CallMethod(sum, ctx, 1, 2); got != 13 {
		t.Errorf("CallMethod(MethodFunc) = %v, want 13", got)
	}

	if got := CallMethod(ValueFunc(func(c Context) any { return c["base"] }), ctx, "ignored"); got != 10 {
		t.Errorf("CallMethod(ValueFunc) = %v, want 10 with args dropped", got)
	}
}
