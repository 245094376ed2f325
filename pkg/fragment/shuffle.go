package fragment

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of seq using Fisher-Yates.
// The input is never modified. A nil rng uses the global math/rand/v2 source.
func Shuffle[T any](rng *rand.Rand, seq []T) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	for i := len(out) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}
