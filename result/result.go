// Package result provides a small success/failure pipeline used to sequence
// fallible steps without panics. A Result holds either a value or an error;
// once a pipeline has failed, every later step is skipped and the first error
// is carried through to the terminal Fold.
package result

// Unit is the value of a Result that carries no payload.
type Unit struct{}

// Result is either a success value of type T or a failure error.
type Result[T any] struct {
	value T
	err   error
}

// Outcome is implemented by every Result, regardless of its value type.
type Outcome interface {
	Err() error
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result carrying err. A nil err yields a success
// holding the zero value.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// From lifts a Go (value, error) pair into a Result.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// FromError lifts a bare error into a Result[Unit].
func FromError(err error) Result[Unit] {
	return From(Unit{}, err)
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool { return r.err == nil }

// IsFailure reports whether r holds an error.
func (r Result[T]) IsFailure() bool { return r.err != nil }

// Err returns the failure error, or nil on success.
func (r Result[T]) Err() error { return r.err }

// Unwrap returns the value and error in the usual Go shape.
func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

// Combine succeeds only when every outcome succeeded. Otherwise it returns the
// first failure in argument order.
func Combine(outcomes ...Outcome) Result[Unit] {
	for _, o := range outcomes {
		if err := o.Err(); err != nil {
			return Fail[Unit](err)
		}
	}
	return Ok(Unit{})
}

// Map transforms the success value of r.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return Ok(f(r.value))
}

// AndThen chains a fallible step onto r.
func AndThen[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return f(r.value)
}

// Tap runs f for its side effect when r succeeded and returns r unchanged.
func Tap[T any](r Result[T], f func(T)) Result[T] {
	if r.err == nil {
		f(r.value)
	}
	return r
}

// Ensure turns a success into a failure carrying err when pred rejects the
// value.
func Ensure[T any](r Result[T], pred func(T) bool, err error) Result[T] {
	if r.err != nil {
		return r
	}
	if !pred(r.value) {
		return Fail[T](err)
	}
	return r
}

// Fold is the terminal step of a pipeline: exactly one of onOk or onErr runs.
func Fold[T, R any](r Result[T], onOk func(T) R, onErr func(error) R) R {
	if r.err != nil {
		return onErr(r.err)
	}
	return onOk(r.value)
}
