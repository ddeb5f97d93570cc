package collection

import (
	"fmt"

	"github.com/kbukum/collectionkit/errors"
)

// slots holds one pending result per input position. Only the orchestrating
// goroutine writes to it, once per index, so it needs no lock.
type slots[R any] struct {
	values []R
	filled []bool
	count  int
}

func newSlots[R any](n int) *slots[R] {
	return &slots[R]{
		values: make([]R, n),
		filled: make([]bool, n),
	}
}

func (s *slots[R]) put(index int, v R) {
	if s.filled[index] {
		panic(errors.Internal(fmt.Errorf("result slot %d written twice", index)))
	}
	s.values[index] = v
	s.filled[index] = true
	s.count++
}

// collect returns the results in input order. Every slot must be filled.
func (s *slots[R]) collect() []R {
	if s.count != len(s.values) {
		for i, ok := range s.filled {
			if !ok {
				panic(errors.Internal(fmt.Errorf("result slot %d empty after %d of %d completions", i, s.count, len(s.values))))
			}
		}
	}
	return s.values
}
