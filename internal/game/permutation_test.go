package game

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPermutationIsBijection(t *testing.T) {
	for n := 0; n <= 8; n++ {
		for seed := int64(0); seed < 5; seed++ {
			r := rand.New(rand.NewSource(seed))
			perm := randomPermutation(r, n)
			require.Len(t, perm, n)
			sorted := append([]int(nil), perm...)
			sort.Ints(sorted)
			for i, v := range sorted {
				assert.Equal(t, i, v, "n=%d seed=%d", n, seed)
			}
		}
	}
}

func TestRandomPermutationDeterministicPerSeed(t *testing.T) {
	a := randomPermutation(rand.New(rand.NewSource(42)), 10)
	b := randomPermutation(rand.New(rand.NewSource(42)), 10)
	assert.Equal(t, a, b)
}

func TestRandomPermutationReachesEveryOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	seen := make(map[string]bool)
	for i := 0; i < 600; i++ {
		seen[fmt.Sprint(randomPermutation(r, 3))] = true
	}
	assert.Len(t, seen, 6, "all 3! orderings occur over enough draws")
}
