package runtime

import (
	"math/rand/v2"
	"sync"
	"time"
)

// dice is a seeded random source shared by the station tasks.
type dice struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func newDice(seed uint64) *dice {
	return &dice{rand: rand.New(rand.NewPCG(seed, ^seed))}
}

// Roll reports whether an event of the given probability happens.
func (d *dice) Roll(probability float64) bool {
	if probability <= 0 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rand.Float64() < probability
}

func (d *dice) IntN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rand.IntN(n)
}

// Jitter returns a duration in [base, 2*base).
func (d *dice) Jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return base + time.Duration(d.rand.Int64N(int64(base)))
}
