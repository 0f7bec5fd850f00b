// Package noise simulates atmospheric interference on a Morse transmission.
package noise

import (
	"fmt"
	"math/rand/v2"
	"radio-lab/errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// symbols are the replacement runes. Separators may be overwritten too.
var symbols = []byte{'.', '-', ' '}

// Profile groups the interference parameters of one station.
type Profile struct {
	Probability    float64 `validate:"gte=0,lte=1"`
	MaxCorruptions int     `validate:"gte=0"`
	// Density bounds the corruptions to len(morse)/Density. Zero disables it.
	Density int `validate:"gte=0"`
}

// Validate rejects out-of-range interference parameters.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidNoise, err)
	}
	return nil
}

// Injector is safe for concurrent use.
type Injector struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewInjector returns an injector whose output is fully determined by seed.
func NewInjector(seed uint64) *Injector {
	return &Injector{rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Apply injects noise using a station profile.
func (i *Injector) Apply(morse string, p Profile) string {
	return i.inject(morse, p.Probability, p.MaxCorruptions, p.Density)
}

// Inject corrupts morse with the given probability by overwriting up to
// maxCorruptions distinct positions with a random symbol.
// A zero probability returns morse untouched.
func (i *Injector) Inject(morse string, probability float64, maxCorruptions int) string {
	return i.inject(morse, probability, maxCorruptions, 0)
}

func (i *Injector) inject(morse string, probability float64, maxCorruptions, density int) string {
	if probability <= 0 || maxCorruptions <= 0 || len(morse) == 0 {
		return morse
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.rand.Float64() >= probability {
		return morse
	}

	count := min(maxCorruptions, len(morse))
	if density > 0 {
		count = min(count, len(morse)/density)
	}
	if count == 0 {
		return morse
	}

	corrupted := []byte(morse)
	for _, pos := range i.rand.Perm(len(corrupted))[:count] {
		corrupted[pos] = symbols[i.rand.IntN(len(symbols))]
	}
	return string(corrupted)
}
