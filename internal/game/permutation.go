package game

import "math/rand"

// randomPermutation returns a uniform random bijection of [0,n) using the
// inside-out Fisher-Yates shuffle. The random source is injected so tests can
// pin the ordering.
func randomPermutation(r *rand.Rand, n int) []int {
	result := make([]int, n)
	for i := 1; i < n; i++ {
		idx := r.Intn(i + 1)
		if idx < i {
			result[i] = result[idx]
		}
		result[idx] = i
	}
	return result
}
