// Package u235 provides Value, a 235 bit unsigned integer that decays.
//
// A Value's magnitude halves every half-life (703.8ms by default). Decay is
// lazy: nothing happens until the Value is observed, at which point the
// magnitude is scaled by 0.5^(elapsed/half-life), rounded, and the
// timestamp is moved forward. Arithmetic and comparison are observations,
// including Equal, which decays both of its operands.
//
//	v, err := u235.FromUint64(16, u235.Config{})
//	if err != nil {
//		return err
//	}
//
//	n, _ := v.Uint64() // 16
//	time.Sleep(decay.HalfLife)
//	n, _ = v.Uint64() // 8
//
// The magnitude is stored as 30 little endian bytes inside a memory.Span.
// With Config.RadiationEnabled a background supervisor (package radiation)
// flips random bits in and around those bytes until Close is called. Place
// a Value in a containment.Buffer to give the flips somewhere harmless to
// land.
//
// # Errors
//
// Failures are reported with the error classes OutOfRangeError,
// UnderflowError, DivideByZeroError and RangeOverflowError; use Has to test
// for them:
//
//	_, err := a.Sub(b)
//	if u235.UnderflowError.Has(err) {
//		...
//	}
//
// # Concurrency
//
// All access to a Value's bytes, including radiation, is serialized by the
// region holding them, so reads are never torn. Config.Unsynchronized
// removes that lock to demonstrate unsynchronized corruption; a radiated
// Value in such a region must not be used concurrently.
package u235
