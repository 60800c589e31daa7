package rng

import (
	"math/rand"
	"sync"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a deterministic Generator that is safe for concurrent use
type Seeded struct {
	lock sync.Mutex
	rand *rand.Rand
}

// NewSeeded returns a generator that always produces the same sequence for a seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rand: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rand.Intn(n)
}

// Shuffle performs a Fisher-Yates shuffle using the generator
func Shuffle(g Generator, n int, swap func(i, j int)) {
	for j := n - 1; j > 0; j-- {
		i := g.Intn(j + 1)
		swap(i, j)
	}
}

// Perm returns a random permutation of [0, n)
func Perm(g Generator, n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	Shuffle(g, n, func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})

	return p
}
