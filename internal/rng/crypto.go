package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto wraps the crypto/rand library
// It is the Generator used for live games: deck shuffles, deal order and automated key presses
type Crypto struct{}

// Intn returns a random number from 0 <= x < n
func (c Crypto) Intn(n int) int {
	if n <= 1 {
		return 0
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
