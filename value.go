package u235

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/calebcase/u235/decay"
	"github.com/calebcase/u235/integer"
	"github.com/calebcase/u235/memory"
	"github.com/calebcase/u235/radiation"
)

// Bits is the width of a Value's magnitude.
const Bits = 235

// Size is the number of bytes of storage a Value occupies.
const Size = (Bits + 7) / 8

var schema = integer.Schema{Bits: Bits}

var maxUint64 = new(big.Int).SetUint64(^uint64(0))

// Max returns the largest magnitude a Value can hold, 2^235 - 1.
func Max() *big.Int {
	return schema.Max()
}

// Value is an unsigned integer of at most 235 bits that decays over time.
//
// Every operation that observes the magnitude first decays it according to
// the time elapsed since the previous observation. The magnitude lives in a
// memory.Span, where radiation may flip its bits.
//
// The zero Value holds a zero magnitude and becomes fully usable once it
// occupies storage (see Occupy). A Value must not be copied.
type Value struct {
	mu      sync.Mutex
	cfg     Config
	storage memory.Span
	updated time.Time
	handle  *radiation.Handle
}

// New returns a Value holding initial. If cfg enables radiation, a
// supervisor is started against the Value and New blocks for
// cfg.SettleDelay before returning; call Close to stop the supervisor.
// Without radiation New returns immediately and SettleDelay is ignored.
func New(initial *big.Int, cfg Config) (*Value, error) {
	if initial == nil || !schema.Contains(initial) {
		return nil, OutOfRangeError.New("%v not in [0, 2^%d-1]", initial, Bits)
	}

	cfg = cfg.withDefaults()

	v := alloc(initial, cfg.Clock.Now(), cfg)

	if cfg.RadiationEnabled {
		h := radiation.StartWeak(context.Background(), v, cfg.engine(), cfg.supervisorOptions()...)

		v.mu.Lock()
		v.handle = h
		v.mu.Unlock()

		time.Sleep(cfg.SettleDelay)
	}

	return v, nil
}

// FromUint64 returns a Value holding n. See New.
func FromUint64(n uint64, cfg Config) (*Value, error) {
	return New(new(big.Int).SetUint64(n), cfg)
}

// alloc places m in fresh private storage. It never starts radiation.
func alloc(m *big.Int, updated time.Time, cfg Config) *Value {
	v := &Value{
		cfg:     cfg,
		storage: memory.Isolated(cfg.Vicinity, Size, cfg.regionOptions()...),
		updated: updated,
	}

	encode(v.storage, m)

	return v
}

func encode(s memory.Span, m *big.Int) {
	s.Update(func(b []byte) {
		err := schema.Encode(b, m)
		if err != nil {
			// Storage is always exactly Size bytes.
			panic(err)
		}
	})
}

func (v *Value) clock() Clock {
	if v.cfg.Clock == nil {
		return SystemClock
	}

	return v.cfg.Clock
}

// decayLocked applies the decay law for the time since the last update. The
// caller must hold v.mu.
func (v *Value) decayLocked() {
	now := v.clock().Now()

	elapsed := now.Sub(v.updated)
	if elapsed <= 0 {
		return
	}

	law := decay.Law{HalfLife: v.cfg.HalfLife}

	v.storage.Update(func(b []byte) {
		m := law.Apply(schema.Decode(b), elapsed)

		err := schema.Encode(b, m)
		if err != nil {
			panic(err)
		}
	})

	v.updated = now
}

// settle decays v and returns its magnitude, timestamp and config.
func (v *Value) settle() (*big.Int, time.Time, Config) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.decayLocked()

	return schema.Decode(v.storage.Load()), v.updated, v.cfg
}

// peek returns the stored magnitude without decaying.
func (v *Value) peek() *big.Int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return schema.Decode(v.storage.Load())
}

// Magnitude decays v and returns a copy of its magnitude.
func (v *Value) Magnitude() *big.Int {
	m, _, _ := v.settle()

	return m
}

// Updated returns the time of the last decay without decaying.
func (v *Value) Updated() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.updated
}

// Add decays both operands and returns (v + other) mod 2^235. The result
// carries v's timestamp.
func (v *Value) Add(other *Value) *Value {
	a, updated, cfg := v.settle()
	b, _, _ := other.settle()

	return alloc(schema.Mask(a.Add(a, b)), updated, cfg)
}

// Sub decays both operands and returns v - other, or an UnderflowError if
// other is larger.
func (v *Value) Sub(other *Value) (*Value, error) {
	a, updated, cfg := v.settle()
	b, _, _ := other.settle()

	if b.Cmp(a) > 0 {
		return nil, UnderflowError.New("%s - %s", a, b)
	}

	return alloc(a.Sub(a, b), updated, cfg), nil
}

// Rem decays both operands and returns v mod other, or a DivideByZeroError
// if other is zero.
func (v *Value) Rem(other *Value) (*Value, error) {
	a, updated, cfg := v.settle()
	b, _, _ := other.settle()

	if b.Sign() == 0 {
		return nil, DivideByZeroError.New("%s mod 0", a)
	}

	return alloc(a.Mod(a, b), updated, cfg), nil
}

// Equal reports whether v and other hold the same magnitude. Timestamps are
// not compared.
//
// Equal is not a pure predicate: it decays both operands before comparing,
// so v.Equal(v) decays v twice.
func (v *Value) Equal(other *Value) bool {
	a := v.Magnitude()
	b := other.Magnitude()

	return a.Cmp(b) == 0
}

// Uint64 decays v and returns its magnitude, or a RangeOverflowError if it
// does not fit in a uint64.
func (v *Value) Uint64() (uint64, error) {
	m := v.Magnitude()
	if !m.IsUint64() {
		return 0, RangeOverflowError.New("%s exceeds 2^64-1", m)
	}

	return m.Uint64(), nil
}

// TruncatedUint64 decays v and returns the low 64 bits of its magnitude.
func (v *Value) TruncatedUint64() uint64 {
	m := v.Magnitude()

	return m.And(m, maxUint64).Uint64()
}

// InspectNearbyBytes returns rng bytes on either side of v's storage, and
// the storage itself if includeSelf, in address order. It neither decays
// nor modifies anything.
func (v *Value) InspectNearbyBytes(rng int, includeSelf bool) []byte {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.storage.Nearby(rng, includeSelf)
}

// Storage returns the span currently holding v's magnitude.
func (v *Value) Storage() memory.Span {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.storage
}

// Footprint returns the number of bytes of storage v needs.
func (v *Value) Footprint() int {
	return Size
}

// Occupy moves v into s, copying its current bytes. A zero Value starts
// out in s with a zero magnitude.
func (v *Value) Occupy(s memory.Span) (err error) {
	defer Error.WrapP(&err)

	if s.Len() != Size {
		return Error.New("span of %d bytes cannot hold %d", s.Len(), Size)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	data := v.storage.Load()
	if data == nil {
		data = make([]byte, Size)
	}

	err = s.Store(data)
	if err != nil {
		return err
	}

	if v.updated.IsZero() {
		v.updated = v.clock().Now()
	}

	v.storage = s

	return nil
}

// Radiating reports whether a supervisor is attached to v.
func (v *Value) Radiating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.handle != nil
}

// Close stops v's supervisor, if any. Once Close returns v is no longer
// radiated. It is safe to call Close more than once.
func (v *Value) Close() {
	v.mu.Lock()
	h := v.handle
	v.handle = nil
	v.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}

// String returns the stored magnitude in decimal without decaying it.
func (v *Value) String() string {
	return v.peek().String()
}
