package containment

import (
	"sync"

	"github.com/zeebo/errs"

	"github.com/calebcase/u235/memory"
	"github.com/calebcase/u235/radiation"
)

// DefaultBaseReach is the padding per side of a Standard buffer.
const DefaultBaseReach = radiation.DefaultReach

// DefaultVicinity is the number of bytes of unrelated memory on either side
// of a buffer's padding.
const DefaultVicinity = 64

// Occupant is implemented by pointer types whose storage can be moved into
// a buffer.
type Occupant[T any] interface {
	*T

	// Footprint is the number of bytes of storage the item needs.
	Footprint() int

	// Occupy moves the item's storage into s.
	Occupy(s memory.Span) error
}

type settings struct {
	baseReach int
	vicinity  int
}

// Option configures a buffer.
type Option func(s *settings)

// WithBaseReach overrides DefaultBaseReach.
func WithBaseReach(n int) Option {
	return func(s *settings) {
		s.baseReach = n
	}
}

// WithVicinity overrides DefaultVicinity.
func WithVicinity(n int) Option {
	return func(s *settings) {
		s.vicinity = n
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		baseReach: DefaultBaseReach,
		vicinity:  DefaultVicinity,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Buffer holds a single item between two padding regions.
type Buffer[T any, PT Occupant[T]] struct {
	mu       sync.Mutex
	region   *memory.Region
	reach    int
	vicinity int
	slot     memory.Span
	item     PT
}

// New returns a buffer with reach bytes of padding per side holding a zero
// T.
func New[T any, PT Occupant[T]](reach int, opts ...Option) (_ *Buffer[T, PT], err error) {
	defer Error.WrapP(&err)

	s := newSettings(opts)

	if reach <= 0 {
		return nil, Error.New("invalid reach: %d", reach)
	}
	if s.vicinity < 0 {
		return nil, Error.New("invalid vicinity: %d", s.vicinity)
	}

	item := PT(new(T))
	size := item.Footprint()

	region, err := memory.NewRegion(2*s.vicinity + 2*reach + size)
	if err != nil {
		return nil, err
	}

	slot, err := region.Span(s.vicinity+reach, size)
	if err != nil {
		return nil, err
	}

	err = item.Occupy(slot)
	if err != nil {
		return nil, err
	}

	return &Buffer[T, PT]{
		region:   region,
		reach:    reach,
		vicinity: s.vicinity,
		slot:     slot,
		item:     item,
	}, nil
}

// Make returns a buffer of the given strength.
func Make[T any, PT Occupant[T]](strength Strength, opts ...Option) (*Buffer[T, PT], error) {
	s := newSettings(opts)

	return New[T, PT](strength.Reach(s.baseReach), opts...)
}

// NewStandard returns a Standard buffer.
func NewStandard[T any, PT Occupant[T]](opts ...Option) (*Buffer[T, PT], error) {
	return Make[T, PT](Standard, opts...)
}

// NewReinforced returns a Reinforced buffer.
func NewReinforced[T any, PT Occupant[T]](opts ...Option) (*Buffer[T, PT], error) {
	return Make[T, PT](Reinforced, opts...)
}

// NewHeavy returns a Heavy buffer.
func NewHeavy[T any, PT Occupant[T]](opts ...Option) (*Buffer[T, PT], error) {
	return Make[T, PT](Heavy, opts...)
}

// Contain replaces the held item. The previous item is moved out to private
// storage of its own and remains usable.
func (b *Buffer[T, PT]) Contain(item PT) (err error) {
	defer Error.WrapP(&err)

	if item == nil {
		return Error.New("nil item")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if item == b.item {
		return nil
	}

	if size := item.Footprint(); size != b.slot.Len() {
		return Error.New("item needs %d bytes, slot holds %d", size, b.slot.Len())
	}

	err = b.item.Occupy(memory.Isolated(0, b.slot.Len()))
	if err != nil {
		return err
	}

	err = item.Occupy(b.slot)
	if err != nil {
		restoreErr := b.item.Occupy(b.slot)
		if restoreErr != nil {
			return errs.Combine(err, restoreErr)
		}

		return err
	}

	b.item = item

	return nil
}

// Item returns the held item.
func (b *Buffer[T, PT]) Item() PT {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.item
}

// Reach returns the padding per side in bytes.
func (b *Buffer[T, PT]) Reach() int {
	return b.reach
}

// Region returns the region backing the buffer.
func (b *Buffer[T, PT]) Region() *memory.Region {
	return b.region
}

// Slot returns the span reserved for the item.
func (b *Buffer[T, PT]) Slot() memory.Span {
	return b.slot
}

// Bounds returns the region offsets of the padded allocation: the first
// byte of the leading padding and one past the last byte of the trailing
// padding.
func (b *Buffer[T, PT]) Bounds() (start, end int) {
	return b.slot.Base() - b.reach, b.slot.End() + b.reach
}

// Padding returns copies of the leading and trailing padding.
func (b *Buffer[T, PT]) Padding() (before, after []byte) {
	return b.region.Read(b.slot.Base()-b.reach, b.reach), b.region.Read(b.slot.End(), b.reach)
}
