package mcts

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// RandomSource is the only source of randomness used by the search: selection tie-breaks,
// expansion move choice and rollout moves all draw from it, in that order.
// NextInRange must return a value in [low, high), and be deterministic for a fixed seed.
type RandomSource interface {
	NextInRange(low, high int) int
}

// Seeded PCG generator
type Random struct {
	rand *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rand: rand.New(rand.NewSource(seed))}
}

// Random source seeded from the operating system's entropy
func NewSystemRandom() *Random {
	return NewRandom(frand.Uint64n(math.MaxUint64))
}

func (r *Random) NextInRange(low, high int) int {
	if high <= low {
		return low
	}
	return low + r.rand.Intn(high-low)
}

const (
	lcgMultiplier  int64 = 1103515245
	lcgIncrement   int64 = 12345
	lcgModulus     int64 = math.MaxInt32
	DefaultLCGSeed int64 = 3819201
)

// Linear congruential generator, cheap and fully reproducible across platforms,
// mostly useful in tests
type LCG struct {
	seed int64
}

func NewLCG(seed int64) *LCG {
	return &LCG{seed: seed}
}

func (g *LCG) Next() int32 {
	g.seed = (g.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	return int32(g.seed)
}

func (g *LCG) NextInRange(low, high int) int {
	if high <= low {
		return low
	}
	v := int(g.Next()) % (high - low)
	if v < 0 {
		v = -v
	}
	return v + low
}

// Draws from the source and checks the result against the contract
func drawIndex(r RandomSource, n int) (int, error) {
	i := r.NextInRange(0, n)
	if i < 0 || i >= n {
		return 0, errors.Wrapf(ErrContractViolation, "random source returned %d outside [0, %d)", i, n)
	}
	return i, nil
}
