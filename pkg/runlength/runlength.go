// Package runlength collapses indexed sequences into maximal runs of equal
// values.
package runlength

import "iter"

// Run is one maximal interval of equal values. Start and End are inclusive
// and use the same base as the collapsed sequence.
type Run[T comparable] struct {
	Value T
	Start int
	End   int
}

// Collapse returns the runs of at(i) for i in [1, n] as a lazy sequence.
// The sequence is restartable: each range-over re-reads the underlying
// function from the start.
func Collapse[T comparable](n int, at func(int) T) iter.Seq[Run[T]] {
	return func(yield func(Run[T]) bool) {
		if n < 1 {
			return
		}

		current := Run[T]{Value: at(1), Start: 1, End: 1}

		for i := 2; i <= n; i++ {
			v := at(i)
			if v == current.Value {
				current.End = i
				continue
			}

			if !yield(current) {
				return
			}

			current = Run[T]{Value: v, Start: i, End: i}
		}

		yield(current)
	}
}
