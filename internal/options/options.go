// Package options implements the generic functional-option plumbing shared
// by the reader, backend and snapshot constructors.
package options

// Option configures a target of type T. Constructors accept variadic
// Options and apply them in order; the first failing option aborts the
// construction.
type Option[T any] interface {
	apply(T) error
}

// fn adapts a plain function to the Option interface.
type fn[T any] func(T) error

func (f fn[T]) apply(target T) error {
	return f(target)
}

// New wraps a fallible configuration function as an Option.
func New[T any](f func(T) error) Option[T] {
	return fn[T](f)
}

// NoError wraps an infallible configuration function as an Option.
func NoError[T any](f func(T)) Option[T] {
	return fn[T](func(target T) error {
		f(target)
		return nil
	})
}

// Apply runs every option against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
