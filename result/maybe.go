package result

// Maybe holds either a value or nothing.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns an empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPointer treats nil as absence.
func FromPointer[T any](p *T) Maybe[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// HasValue reports whether m holds a value.
func (m Maybe[T]) HasValue() bool { return m.ok }

// Get returns the value and whether it was present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.ok }

// Pointer returns a pointer to a copy of the value, or nil when absent.
func (m Maybe[T]) Pointer() *T {
	if !m.ok {
		return nil
	}
	v := m.value
	return &v
}

// MapMaybe transforms a present value and keeps absence as is.
func MapMaybe[T, U any](m Maybe[T], f func(T) U) Maybe[U] {
	if !m.ok {
		return None[U]()
	}
	return Some(f(m.value))
}

// ToResult converts absence into a failure carrying err.
func ToResult[T any](m Maybe[T], err error) Result[T] {
	if !m.ok {
		return Fail[T](err)
	}
	return Ok(m.value)
}
