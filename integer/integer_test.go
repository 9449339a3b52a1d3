package integer

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	s := Schema{Bits: 235}

	require.Equal(t, 30, s.Size())

	top := s.Max()
	require.Equal(t, 235, top.BitLen())
	require.True(t, s.Contains(top))
	require.False(t, s.Contains(new(big.Int).Add(top, big.NewInt(1))))
	require.False(t, s.Contains(big.NewInt(-1)))
	require.True(t, s.Contains(big.NewInt(0)))

	require.Equal(t, 0, s.Mask(new(big.Int).Add(top, big.NewInt(1))).Sign())
}

func TestEncodeDecode(t *testing.T) {
	type TC struct {
		name   string
		schema Schema
		value  *big.Int
		data   []byte
	}

	tcs := []TC{
		{
			name:   "0",
			schema: Schema{Bits: 12},
			value:  big.NewInt(0),
			data: []byte{
				0b0000_0000,
				0b0000_0000,
			},
		},
		{
			name:   "1",
			schema: Schema{Bits: 12},
			value:  big.NewInt(1),
			data: []byte{
				0b0000_0001,
				0b0000_0000,
			},
		},
		{
			name:   "258",
			schema: Schema{Bits: 12},
			value:  big.NewInt(258),
			data: []byte{
				0b0000_0010,
				0b0000_0001,
			},
		},
		{
			name:   "4095",
			schema: Schema{Bits: 12},
			value:  big.NewInt(4095),
			data: []byte{
				0b1111_1111,
				0b0000_1111,
			},
		},
		{
			name:   "16",
			schema: Schema{Bits: 235},
			value:  big.NewInt(16),
			data: append(
				[]byte{0b0001_0000},
				make([]byte, 29)...,
			),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			t.Run("encode", func(t *testing.T) {
				data := make([]byte, tc.schema.Size())
				err := tc.schema.Encode(data, tc.value)
				require.NoError(t, err)
				require.Equal(t, tc.data, data)
			})

			t.Run("decode", func(t *testing.T) {
				v := tc.schema.Decode(tc.data)
				require.Equal(t, 0, tc.value.Cmp(v), "got %s", v)
			})
		})
	}
}

func TestEncodeWraps(t *testing.T) {
	s := Schema{Bits: 12}

	data := make([]byte, s.Size())
	err := s.Encode(data, big.NewInt(4096+7))
	require.NoError(t, err)
	require.Equal(t, []byte{0b0000_0111, 0b0000_0000}, data)
}

func TestEncodeTooSmall(t *testing.T) {
	s := Schema{Bits: 235}

	err := s.Encode(make([]byte, 4), big.NewInt(1))
	require.Error(t, err)
	require.True(t, Error.Has(err))
}

func TestDecodeMasksUnusedBits(t *testing.T) {
	s := Schema{Bits: 12}

	v := s.Decode([]byte{0b0000_0001, 0b1111_0000})
	require.Equal(t, int64(1), v.Int64())

	v = s.Decode([]byte{0b0000_0001})
	require.Equal(t, int64(1), v.Int64())
}
