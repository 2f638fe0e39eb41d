package random

import (
	"crypto/rand"
	"math/big"
)

// Random is a uniform integer source that can be mocked in tests.
type Random interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

type CryptoRandom struct{}

func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return 0
	}
	return int(result.Int64())
}
