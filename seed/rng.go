package seed

import (
	"math/rand/v2"
	"time"
)

// NewRNG creates a deterministic PCG generator. A zero seed is replaced with the
// current time so unseeded runs differ.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
