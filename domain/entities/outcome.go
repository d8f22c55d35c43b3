package entities

// Outcome is the result of an operation that never fails outright:
// either the provider produced Value, or Value holds a local fallback
// and Cause records why.
type Outcome[T any] struct {
	Value    T
	Degraded bool
	Cause    error
}

// Ok wraps a value produced by the provider
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Degraded wraps a fallback value together with the failure that caused it
func Degraded[T any](v T, cause error) Outcome[T] {
	return Outcome[T]{Value: v, Degraded: true, Cause: cause}
}
