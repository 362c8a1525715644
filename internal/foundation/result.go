// Package foundation provides generic utilities for type-safe operations.
package foundation

// Result represents an operation that can either succeed with value T or fail with error E.
// Step chains use it so a failure short-circuits every later step.
type Result[T any, E error] struct {
	value T
	err   E
	isOk  bool
}

// Ok creates a successful Result with the given value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, isOk: true}
}

// Err creates a failed Result with the given error.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// IsOk returns true if the Result represents a successful operation.
func (r Result[T, E]) IsOk() bool {
	return r.isOk
}

// IsErr returns true if the Result represents a failed operation.
func (r Result[T, E]) IsErr() bool {
	return !r.isOk
}

// ToTuple converts Result to the traditional Go (value, error) pattern.
func (r Result[T, E]) ToTuple() (T, E) {
	if r.isOk {
		var zeroErr E
		return r.value, zeroErr
	}
	var zeroVal T
	return zeroVal, r.err
}

// AndThen feeds a successful value into fn. An Err result passes through untouched
// and fn is never called.
func AndThen[T, U any, E error](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if r.isOk {
		return fn(r.value)
	}
	return Err[U, E](r.err)
}

// Chain runs steps in order against the same state and stops at the first failure.
func Chain[T any, E error](initial T, steps ...func(T) Result[T, E]) Result[T, E] {
	r := Ok[T, E](initial)
	for _, step := range steps {
		r = AndThen(r, step)
		if r.IsErr() {
			return r
		}
	}
	return r
}
