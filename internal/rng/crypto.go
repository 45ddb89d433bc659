package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from the operating system's secure source. Used to shuffle live rounds.
type Crypto struct{}

// Intn returns a random number from 0 <= x < n
// It panics if n <= 0 or the secure source fails.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
