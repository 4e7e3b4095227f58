// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tune

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Range bounds one search dimension. Integer ranges are inclusive on
// both ends.
type Range[T constraints.Integer | constraints.Float] struct {
	Min, Max T
}

// Sample draws a uniform value from the range.
func (r Range[T]) Sample(rng *rand.Rand) T {
	switch any(r.Min).(type) {
	case float32, float64:
		lo, hi := float64(r.Min), float64(r.Max)
		return T(lo + rng.Float64()*(hi-lo))
	default:
		lo, hi := int64(r.Min), int64(r.Max)
		return T(lo + rng.Int63n(hi-lo+1))
	}
}

// Grid returns n evenly spaced values covering the range, endpoints
// included.
func (r Range[T]) Grid(n int) []T {
	if n <= 1 {
		return []T{r.Min}
	}
	lo, hi := float64(r.Min), float64(r.Max)
	step := (hi - lo) / float64(n-1)

	out := make([]T, n)
	for i := range out {
		out[i] = T(lo + float64(i)*step)
	}
	out[n-1] = r.Max
	return out
}
