// Package gather collects ready-made gather functions for use with a
// value-carrying signal: the function a signal's runtime calls once per
// emission within an instant to fold emitted values into the signal's
// current-instant value.
package gather

import "golang.org/x/exp/constraints"

// Collect returns a gather function that appends every emitted value to v,
// the signal's default being nil or an empty slice. This is the shape the
// original's vector-accumulating ValueSignal exposes as its only built-in.
func Collect[E any]() func(E, *[]E) {
	return func(e E, v *[]E) {
		*v = append(*v, e)
	}
}

// Number constrains the types Sum can fold over.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum returns a gather function that adds every emitted value into v.
func Sum[E Number]() func(E, *E) {
	return func(e E, v *E) {
		*v += e
	}
}

// Last returns a gather function that overwrites v with the most recently
// emitted value in the instant.
func Last[E any]() func(E, *E) {
	return func(e E, v *E) {
		*v = e
	}
}

// Count returns a gather function that increments v once per emission,
// ignoring the emitted payload.
func Count[E any]() func(E, *int) {
	return func(_ E, v *int) {
		*v++
	}
}
