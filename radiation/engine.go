package radiation

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/calebcase/u235/memory"
)

// DefaultReach is the default scale of radiation offsets.
const DefaultReach = 16

// Target is anything with storage that can be radiated.
type Target interface {
	Storage() memory.Span
}

// Source produces standard normal samples. *rand.Rand satisfies it.
type Source interface {
	NormFloat64() float64
}

// NewSource returns a deterministic source for seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Zone classifies where a bit flip landed.
type Zone int

// Zones
const (
	ZoneNone Zone = iota
	ZoneSelf
	ZoneNearby
	ZoneEscaped
)

// String returns the zone name.
func (z Zone) String() string {
	switch z {
	case ZoneNone:
		return "none"
	case ZoneSelf:
		return "self"
	case ZoneNearby:
		return "nearby"
	case ZoneEscaped:
		return "escaped"
	default:
		return "invalid"
	}
}

// Outcome describes a single radiation event.
type Outcome struct {
	Offset   int
	Position int
	Bit      uint
	Zone     Zone
}

// Engine radiates targets. It is safe for concurrent use.
type Engine struct {
	reach int

	mu  sync.Mutex
	src Source
}

// NewEngine returns an engine with the given reach. A non-positive reach
// selects DefaultReach and a nil src selects a randomly seeded source.
func NewEngine(reach int, src Source) *Engine {
	if reach <= 0 {
		reach = DefaultReach
	}
	if src == nil {
		src = NewSource(rand.Uint64())
	}

	return &Engine{
		reach: reach,
		src:   src,
	}
}

// Reach returns the engine's reach.
func (e *Engine) Reach() int {
	return e.reach
}

// Sample draws a standard normal deviate.
func (e *Engine) Sample() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.src.NormFloat64()
}

// Offset scales a sample to a signed bit offset.
func (e *Engine) Offset(sample float64) int {
	return int(math.Round(sample * float64(e.reach)))
}

// Radiate flips one randomly chosen bit near t's storage.
func (e *Engine) Radiate(t Target) Outcome {
	return e.RadiateOffset(t, e.Offset(e.Sample()))
}

// RadiateOffset flips the bit selected by offset near t's storage.
func (e *Engine) RadiateOffset(t Target, offset int) Outcome {
	o := Outcome{
		Offset: offset,
	}

	s := t.Storage()
	if !s.Bound() {
		return o
	}

	delta, bit, ok := Locate(offset, s.Len())
	if !ok {
		return o
	}

	o.Position = s.Base() + delta
	o.Bit = bit

	switch {
	case !s.Region().Flip(o.Position, bit):
		o.Zone = ZoneEscaped
	case s.Contains(o.Position):
		o.Zone = ZoneSelf
	default:
		o.Zone = ZoneNearby
	}

	return o
}

// Locate maps an offset to a byte delta from the storage base and a bit
// index, for storage of size bytes. It reports false for a zero offset.
func Locate(offset, size int) (delta int, bit uint, ok bool) {
	switch {
	case offset < 0:
		m := abs(offset % 8)
		if m != 0 {
			bit = uint(8 - m)
		}

		return floorDiv(offset+1, 8), bit, true
	case offset > 0:
		m := offset % 8
		if m == 0 {
			return size + offset/8, 7, true
		}

		return size + offset/8 + 1, uint(m - 1), true
	}

	return 0, 0, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
