package radiation

import (
	"fmt"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/u235/memory"
)

type cell struct {
	span memory.Span
}

func (c *cell) Storage() memory.Span {
	return c.span
}

// newCell places size bytes of storage in the middle of a region with pad
// bytes on either side.
func newCell(t *testing.T, pad, size int) *cell {
	t.Helper()

	r, err := memory.NewRegion(2*pad + size)
	require.NoError(t, err)

	s, err := r.Span(pad, size)
	require.NoError(t, err)

	return &cell{span: s}
}

func TestLocate(t *testing.T) {
	type TC struct {
		offset int
		delta  int
		bit    uint
		ok     bool
	}

	const size = 30

	tcs := []TC{
		{offset: 0, ok: false},

		{offset: -1, delta: 0, bit: 7, ok: true},
		{offset: -2, delta: -1, bit: 6, ok: true},
		{offset: -7, delta: -1, bit: 1, ok: true},
		{offset: -8, delta: -1, bit: 0, ok: true},
		{offset: -9, delta: -1, bit: 7, ok: true},
		{offset: -10, delta: -2, bit: 6, ok: true},
		{offset: -16, delta: -2, bit: 0, ok: true},
		{offset: -17, delta: -2, bit: 7, ok: true},
		{offset: -18, delta: -3, bit: 6, ok: true},

		{offset: 1, delta: size + 1, bit: 0, ok: true},
		{offset: 7, delta: size + 1, bit: 6, ok: true},
		{offset: 8, delta: size + 1, bit: 7, ok: true},
		{offset: 9, delta: size + 2, bit: 0, ok: true},
		{offset: 16, delta: size + 2, bit: 7, ok: true},
		{offset: 17, delta: size + 3, bit: 0, ok: true},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%d", i, tc.offset), func(t *testing.T) {
			delta, bit, ok := Locate(tc.offset, size)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}

			require.Equal(t, tc.delta, delta)
			require.Equal(t, tc.bit, bit)
		})
	}
}

func TestFloorDiv(t *testing.T) {
	require.Equal(t, 0, floorDiv(0, 8))
	require.Equal(t, -1, floorDiv(-1, 8))
	require.Equal(t, -1, floorDiv(-8, 8))
	require.Equal(t, -2, floorDiv(-9, 8))
	require.Equal(t, 1, floorDiv(9, 8))
}

func TestOffset(t *testing.T) {
	e := NewEngine(16, NewSource(1))

	require.Equal(t, 16, e.Reach())
	require.Equal(t, 0, e.Offset(0))
	require.Equal(t, 16, e.Offset(1))
	require.Equal(t, -16, e.Offset(-1))
	require.Equal(t, 8, e.Offset(0.5))
	require.Equal(t, -3, e.Offset(-0.2))

	require.Equal(t, DefaultReach, NewEngine(0, nil).Reach())
}

func TestSourceDeterministic(t *testing.T) {
	a := NewEngine(16, NewSource(42))
	b := NewEngine(16, NewSource(42))

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Sample(), b.Sample())
	}
}

func TestRadiateOffset(t *testing.T) {
	type TC struct {
		offset int
		zone   Zone
		before []byte
		after  []byte
	}

	// Two bytes of storage with four bytes on either side.
	tcs := []TC{
		{
			offset: 0,
			zone:   ZoneNone,
			before: []byte{0, 0, 0, 0},
			after:  []byte{0, 0, 0, 0},
		},
		{
			offset: -1,
			zone:   ZoneSelf,
			before: []byte{0, 0, 0, 0},
			after:  []byte{0, 0, 0, 0},
		},
		{
			offset: -2,
			zone:   ZoneNearby,
			before: []byte{0, 0, 0, 0b0100_0000},
			after:  []byte{0, 0, 0, 0},
		},
		{
			offset: 1,
			zone:   ZoneNearby,
			before: []byte{0, 0, 0, 0},
			after:  []byte{0, 0b0000_0001, 0, 0},
		},
		{
			offset: 16,
			zone:   ZoneNearby,
			before: []byte{0, 0, 0, 0},
			after:  []byte{0, 0, 0b1000_0000, 0},
		},
		{
			offset: -40,
			zone:   ZoneEscaped,
			before: []byte{0, 0, 0, 0},
			after:  []byte{0, 0, 0, 0},
		},
		{
			offset: 40,
			zone:   ZoneEscaped,
			before: []byte{0, 0, 0, 0},
			after:  []byte{0, 0, 0, 0},
		},
	}

	e := NewEngine(16, NewSource(1))

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%d", i, tc.offset), func(t *testing.T) {
			c := newCell(t, 4, 2)

			o := e.RadiateOffset(c, tc.offset)
			require.Equal(t, tc.zone, o.Zone, spew.Sdump(o))
			require.Equal(t, tc.offset, o.Offset)

			before := c.span.Region().Read(0, 4)
			after := c.span.Region().Read(6, 4)
			require.Equal(t, tc.before, before)
			require.Equal(t, tc.after, after)

			if tc.zone == ZoneSelf {
				require.Equal(t, []byte{0b1000_0000, 0}, c.span.Load())
			} else {
				require.Equal(t, []byte{0, 0}, c.span.Load())
			}
		})
	}
}

func TestRadiateUnbound(t *testing.T) {
	e := NewEngine(16, NewSource(1))

	o := e.RadiateOffset(&cell{}, 5)
	require.Equal(t, ZoneNone, o.Zone)
}

func TestRadiateDistribution(t *testing.T) {
	const trials = 20000

	e := NewEngine(16, NewSource(7))

	var within, self int
	for i := 0; i < trials; i++ {
		c := newCell(t, 24, 30)

		o := e.Radiate(c)
		if abs(o.Offset) <= 3*16 {
			within++
		}
		if o.Zone == ZoneSelf {
			self++
		}

		// Offsets are at most a few hundred bits, so 24 bytes of
		// padding is plenty for anything but a many sigma sample.
		if o.Zone == ZoneEscaped {
			require.Greater(t, abs(o.Offset), 8*20, spew.Sdump(o))
		}
	}

	// Three sigma covers ~99.7% of samples.
	frac := float64(within) / trials
	require.InDelta(t, 0.997, frac, 0.005)

	// Only offset -1 lands inside the storage itself.
	require.InDelta(t, 1/(16*math.Sqrt(2*math.Pi)), float64(self)/trials, 0.01)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Observe(Outcome{Zone: ZoneNone})
	m.Observe(Outcome{Zone: ZoneSelf})
	m.Observe(Outcome{Zone: ZoneNearby})
	m.Observe(Outcome{Zone: ZoneNearby})
	m.Observe(Outcome{Zone: ZoneEscaped})

	require.Equal(t, 1.0, testutil.ToFloat64(m.noops))
	require.Equal(t, 1.0, testutil.ToFloat64(m.flips.WithLabelValues("self")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.flips.WithLabelValues("nearby")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.flips.WithLabelValues("escaped")))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	var nilMetrics *Metrics
	nilMetrics.Observe(Outcome{Zone: ZoneSelf})
}

func TestZoneString(t *testing.T) {
	require.Equal(t, "none", ZoneNone.String())
	require.Equal(t, "self", ZoneSelf.String())
	require.Equal(t, "nearby", ZoneNearby.String())
	require.Equal(t, "escaped", ZoneEscaped.String())
	require.Equal(t, "invalid", Zone(42).String())
}
