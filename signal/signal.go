package signal

// Signal is the user-facing handle to a signal's Runtime, shared by every
// reference to the same signal. Process-level combinators (Emit,
// AwaitImmediate, Await, Present) are expressed in terms of this interface,
// so they work uniformly over PureSignal and any ValueSignal instantiation.
type Signal[V, E any] interface {
	// Runtime returns the shared signal runtime this handle refers to.
	Runtime() *Runtime[V, E]
}

// handle is the common concrete implementation backing both PureSignal and
// ValueSignal: a signal is nothing more than a pointer to its Runtime.
type handle[V, E any] struct {
	rt *Runtime[V, E]
}

func (h handle[V, E]) Runtime() *Runtime[V, E] {
	return h.rt
}

// PureSignal is a signal with no payload: its only observable state is
// whether it was emitted in a given instant. It specializes the generic
// machinery over struct{} so call sites never need to instantiate a
// generic signal type by hand, mirroring the original's own PureSignal
// wrapper over its generic SignalRuntimeRef.
type PureSignal struct {
	handle[struct{}, struct{}]
}

// NewPure constructs a fresh PureSignal.
func NewPure() *PureSignal {
	return &PureSignal{handle: handle[struct{}, struct{}]{
		rt: NewRuntime[struct{}, struct{}](struct{}{}, func(struct{}, *struct{}) {}),
	}}
}

// ValueSignal is a signal that carries a gathered value of type V, built
// from emitted payloads of type E via a caller-supplied gather function.
type ValueSignal[V, E any] struct {
	handle[V, E]
}

// NewValueSignal constructs a ValueSignal with the given default value and
// gather function, the general form exposed by the original's
// ValueSignal::new_with_gather_function.
func NewValueSignal[V, E any](defaultValue V, gather func(E, *V)) *ValueSignal[V, E] {
	return &ValueSignal[V, E]{handle: handle[V, E]{
		rt: NewRuntime[V, E](defaultValue, gather),
	}}
}

// NewSliceValueSignal constructs a ValueSignal whose value is the slice of
// every payload emitted in an instant, reset to empty at the start of each
// instant, the original's ValueSignal<Vec<E>, E>::new().
func NewSliceValueSignal[E any]() *ValueSignal[[]E, E] {
	return NewValueSignal[[]E, E](nil, func(e E, v *[]E) {
		*v = append(*v, e)
	})
}

var _ Signal[struct{}, struct{}] = (*PureSignal)(nil)
var _ Signal[int, int] = (*ValueSignal[int, int])(nil)
