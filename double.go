package entitydoubles

// Context is the shared context map attached to a definition. It is passed
// as the first argument to every resolver invocation and to every callable
// definition value.
type Context map[string]any

// ValueFunc computes a definition-level value (a field value, or the id,
// uuid, or label of an entity) from the shared context.
type ValueFunc func(Context) any

// MethodFunc computes a method override's return value from the shared
// context and the call arguments.
type MethodFunc func(Context, ...any) any

// Resolver computes a method's return value from shared context and call
// arguments. Resolvers are stateless with respect to the definition they
// close over, but may read and write a double's mutable state container.
type Resolver func(ctx Context, args ...any) (any, error)

// Call invokes v with ctx if it is a callable definition value, otherwise
// returns v unchanged. Both the typed ValueFunc and a bare func literal of
// the same shape are accepted.
func Call(v any, ctx Context) any {
	switch fn := v.(type) {
	case ValueFunc:
		return fn(ctx)
	case func(Context) any:
		return fn(ctx)
	}
	return v
}

// CallMethod invokes v with ctx and the call arguments if it is a callable
// override value, otherwise returns v unchanged. Value-shaped callables are
// accepted too and receive only the context.
func CallMethod(v any, ctx Context, args ...any) any {
	switch fn := v.(type) {
	case MethodFunc:
		return fn(ctx, args...)
	case func(Context, ...any) any:
		return fn(ctx, args...)
	case ValueFunc:
		return fn(ctx)
	case func(Context) any:
		return fn(ctx)
	}
	return v
}

// Callable reports whether v is a callable definition value.
func Callable(v any) bool {
	switch v.(type) {
	case ValueFunc, func(Context) any:
		return true
	}
	return false
}
