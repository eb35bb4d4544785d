package ot

// Option holds a value which may be absent. Context uses it for counts a
// sibling table may or may not have supplied.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Unwrap returns the value and whether it is present, in Go's (value, ok) manner.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// Or returns the value, or def if it is absent.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Map applies f to a present value.
func Map[T any, U any](o Option[T], f func(T) U) Option[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(f(o.value))
}
