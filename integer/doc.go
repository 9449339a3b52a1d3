// Package integer provides the fixed width layout used to store large
// unsigned integers as raw bytes.
//
// A Schema of N bits occupies ceil(N/8) bytes, least significant byte
// first:
//
//  byte:  | 0      | 1      | ... | size-1          |
//  bits:  | 0..7   | 8..15  | ... | ..N-1 (+unused) |
//
// Unused high bits in the last byte may be set by callers that manipulate
// the bytes directly. Decode always masks them off, so a decoded value is
// guaranteed to be within [0, 2^N - 1].
package integer
