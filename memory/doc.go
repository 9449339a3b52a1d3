// Package memory provides owned byte regions that stand in for the address
// space around a value.
//
// A Region is a single allocation. Values live in Spans at known interior
// offsets so that everything "nearby" a value (padding, neighbouring values,
// unrelated bytes) is still inside the same Region. Reads and bit flips that
// would fall outside the Region are refused rather than performed.
//
// By default every access goes through the Region's mutex. A Region created
// with Unsynchronized skips the mutex entirely; concurrent use of such a
// Region is a data race and is only meant for demonstrating what
// unsynchronized corruption looks like.
package memory
