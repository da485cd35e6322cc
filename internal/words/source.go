// internal/words/source.go
//
// Random sources for secret word selection. A Source is chosen once per game
// and handed to Bank.Pick, so tests can supply a seeded or fixed source.

package words

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Source returns a uniform integer in [0, n). n is always > 0.
type Source interface {
	IntN(n int) int
}

// Crypto draws from crypto/rand.
var Crypto Source = cryptoSource{}

type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// NewSeeded returns a deterministic PCG source.
func NewSeeded(seed uint64) Source {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fixed always selects index i (modulo n).
type Fixed int

func (f Fixed) IntN(n int) int {
	i := int(f) % n
	if i < 0 {
		i += n
	}
	return i
}
