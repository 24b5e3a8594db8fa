package tank

import "fmt"

// Opt holds a value that may be absent.
type Opt[T comparable] struct {
	v  T
	ok bool
}

// Some wraps a present value.
func Some[T comparable](v T) Opt[T] {
	return Opt[T]{v: v, ok: true}
}

// None returns an absent value.
func None[T comparable]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.v, o.ok
}

// IsSome reports whether a value is present.
func (o Opt[T]) IsSome() bool {
	return o.ok
}

// Is reports whether a value is present and equal to v.
func (o Opt[T]) Is(v T) bool {
	return o.ok && o.v == v
}

// Take returns the value and leaves o empty.
func (o *Opt[T]) Take() (T, bool) {
	v, ok := o.v, o.ok
	*o = Opt[T]{}
	return v, ok
}

func (o Opt[T]) String() string {
	if !o.ok {
		return "-"
	}
	return fmt.Sprint(o.v)
}
