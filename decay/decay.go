// Package decay implements the exponential half-life law applied to large
// unsigned magnitudes.
//
//	decayed(m, t) = round(m * 0.5^(t / halfLife))
//
// The multiplication is carried out with a big.Float wide enough to hold m
// exactly, so magnitudes beyond float64 precision only lose what the decay
// factor itself cannot express.
package decay

import (
	"math"
	"math/big"
	"time"
)

// HalfLife is the default half-life: 703.8ms.
const HalfLife = 703_800_000 * time.Nanosecond

var half = big.NewFloat(0.5)

// Factor returns the fraction of a magnitude remaining after elapsed.
func Factor(elapsed, halfLife time.Duration) float64 {
	if elapsed <= 0 {
		return 1
	}
	if halfLife <= 0 {
		halfLife = HalfLife
	}

	return math.Pow(0.5, float64(elapsed)/float64(halfLife))
}

// Decayed returns m decayed over elapsed, rounded half up. The result is a
// new value, never greater than m. A non-positive elapsed returns an exact
// copy of m. A non-positive halfLife selects HalfLife.
func Decayed(m *big.Int, elapsed, halfLife time.Duration) *big.Int {
	out := new(big.Int).Set(m)

	factor := Factor(elapsed, halfLife)
	if factor >= 1 || m.Sign() <= 0 {
		return out
	}

	prec := uint(m.BitLen()) + 64

	f := new(big.Float).SetPrec(prec).SetInt(m)
	f.Mul(f, new(big.Float).SetPrec(prec).SetFloat64(factor))
	f.Add(f, half)
	f.Int(out)

	if out.Cmp(m) > 0 {
		out.Set(m)
	}

	return out
}

// Law is the decay law with a fixed half-life.
type Law struct {
	HalfLife time.Duration
}

// Apply decays m over elapsed using the law's half-life.
func (l Law) Apply(m *big.Int, elapsed time.Duration) *big.Int {
	return Decayed(m, elapsed, l.HalfLife)
}
