package util

import "math/rand"

// New returns the run's single random source. Seed 0 is mapped to 1 so an
// unset seed is still reproducible.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
