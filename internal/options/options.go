// Package options implements the functional options used by the engine, history
// store and session constructors.
package options

import "errors"

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] func(T) error

func (f Func[T]) apply(target T) error {
	return f(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) Option[T] {
	return Func[T](fn)
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return Func[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order. Nil options are skipped.
//
// Every option is applied even when an earlier one fails, so the returned
// error reports all rejected options at once.
func Apply[T any](target T, opts ...Option[T]) error {
	var errs []error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
