package core

// Option is an explicit present/absent value. The zero value is absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

// None returns an absent value.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the wrapped value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// Present reports whether a value is held.
func (o Option[T]) Present() bool { return o.ok }

// Or returns the wrapped value, or fallback when absent.
func (o Option[T]) Or(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}
