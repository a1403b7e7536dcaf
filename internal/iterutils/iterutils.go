// Iterator helpers
package iterutils

import "iter"

// Turns a Seq into a Seq2 where the second element is always nil
func WithoutErrors[V any](seq iter.Seq[V]) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		for v := range seq {
			if !yield(v, nil) {
				break
			}
		}
	}
}

// ThenFail yields every element of seq and then yields err. Handy in tests
// for exercising error propagation.
func ThenFail[V any](seq iter.Seq[V], err error) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		for v := range seq {
			if !yield(v, nil) {
				return
			}
		}

		var zero V
		yield(zero, err)
	}
}
