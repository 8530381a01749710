package lisp

import (
	"errors"
	"log/slog"
)

// Runtime holds the state shared by every environment of an interpreter
// session.
type Runtime struct {
	Heap   *Heap
	Stack  *CallStack
	Reader Reader
	Logger *slog.Logger
}

// Config is a function that configures the runtime of a new session.
type Config func(rt *Runtime) error

// WithReader returns a Config that makes a session use r to parse source
// text.  There is no default Reader.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		if r == nil {
			return errors.New("nil reader")
		}
		rt.Reader = r
		return nil
	}
}

// WithLogger returns a Config that makes a session write diagnostic records,
// including one per garbage collection, to logger instead of discarding them.
func WithLogger(logger *slog.Logger) Config {
	return func(rt *Runtime) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		rt.Logger = logger
		rt.Heap.Logger = logger
		return nil
	}
}

// WithMaximumStackHeight returns a Config that will prevent a session from
// allowing the call stack to grow beyond n frames.  Exceeding the height is a
// runtime condition.  A non-positive n removes the limit.
func WithMaximumStackHeight(n int) Config {
	return func(rt *Runtime) error {
		rt.Stack.MaxHeight = n
		return nil
	}
}
