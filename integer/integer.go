package integer

import (
	"math/big"
)

// Schema for a fixed width unsigned integer.
//
// Values are laid out little endian in Size() bytes. Any bits above Bits in
// the final byte are unused and ignored when decoding.
type Schema struct {
	Bits uint64
}

// Size returns the number of bytes needed to hold Bits.
func (s Schema) Size() int {
	return int((s.Bits + 7) / 8)
}

// Max returns the largest value representable by the schema (2^Bits - 1).
func (s Schema) Max() *big.Int {
	one := big.NewInt(1)
	m := new(big.Int).Lsh(one, uint(s.Bits))

	return m.Sub(m, one)
}

// Contains reports whether i is within [0, Max].
func (s Schema) Contains(i *big.Int) bool {
	return i.Sign() >= 0 && uint64(i.BitLen()) <= s.Bits
}

// Mask returns i modulo 2^Bits.
func (s Schema) Mask(i *big.Int) *big.Int {
	return new(big.Int).And(i, s.Max())
}

// Decode reads a value from data. Bits beyond the schema width are dropped
// and a short data slice is treated as zero extended.
func (s Schema) Decode(data []byte) *big.Int {
	be := make([]byte, s.Size())
	for i := 0; i < len(be) && i < len(data); i++ {
		be[len(be)-1-i] = data[i]
	}

	i := new(big.Int).SetBytes(be)

	return i.And(i, s.Max())
}

// Encode writes i modulo 2^Bits into dst, which must be at least Size()
// bytes long.
func (s Schema) Encode(dst []byte, i *big.Int) error {
	size := s.Size()
	if len(dst) < size {
		return Error.New("too small: len=%d size=%d", len(dst), size)
	}

	// Note: FillBytes produces big endian, but we desire the least
	// significant byte first.
	be := s.Mask(i).FillBytes(make([]byte, size))
	for n := 0; n < size; n++ {
		dst[n] = be[size-1-n]
	}

	return nil
}
