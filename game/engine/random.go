package engine

import (
	"math/rand"
	"time"
)

// Rand supplies the randomness for spawn cells and next-ball colors.
// *math/rand.Rand satisfies it; tests substitute deterministic sources.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a time-seeded randomness source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
