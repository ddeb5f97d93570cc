package collection

import (
	"fmt"
)

// PanicError is reported when an operation panics.
type PanicError struct {
	// Index is the input position of the element whose operation panicked.
	Index int
	// Value is the value passed to panic.
	Value any
	// Stack is the goroutine stack at the time of the panic.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("collection: operation for element %d panicked: %v", e.Index, e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// failure keeps the first observed error of a run. Later errors only bump
// the suppressed count.
type failure struct {
	err        error
	index      int
	suppressed int
}

// record stores err if no failure was seen yet and reports whether it did.
func (f *failure) record(index int, err error) bool {
	if f.err != nil {
		f.suppressed++
		return false
	}
	f.err = err
	f.index = index
	return true
}

func (f *failure) failed() bool { return f.err != nil }

// gate decides whether unstarted elements may still be launched. It closes
// once, on the first failure or when the caller's context ends, and is only
// touched by the orchestrating goroutine.
type gate struct {
	closed bool
	reason string
}

func (g *gate) open() bool { return !g.closed }

func (g *gate) close(reason string) {
	if g.closed {
		return
	}
	g.closed = true
	g.reason = reason
}
