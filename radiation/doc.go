// Package radiation flips single bits in and around a value's storage.
//
// An Engine samples a standard normal deviate and scales it by the reach to
// get a signed offset. The offset is turned into a byte and bit relative to
// the storage span as follows (base is the first byte of the storage, end is
// one past its last byte, m is |offset rem 8|):
//
//	offset < 0:  byte = base + floor((offset+1)/8)  bit = 0 if m == 0 else 8-m
//	offset > 0:  byte = end + offset/8              bit = 7      (m == 0)
//	             byte = end + offset/8 + 1          bit = m-1    (m != 0)
//	offset == 0: nothing happens
//
// The chosen bit is XORed with 1. The byte may be part of the value itself,
// of containment padding around it, or of whatever else shares the region.
// Bytes outside the region are never touched; such hits are reported as
// escaped.
//
// Start and StartWeak radiate one target in a loop on their own goroutine
// until the returned Handle is stopped.
package radiation
