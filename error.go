package u235

import "github.com/zeebo/errs"

// Error classes.
var (
	// Error is the class of general errors returned by this package.
	Error = errs.Class("u235")

	// OutOfRangeError is returned when a magnitude does not fit in 235
	// bits.
	OutOfRangeError = errs.Class("out of range")

	// UnderflowError is returned when a subtraction would go negative.
	UnderflowError = errs.Class("underflow")

	// DivideByZeroError is returned for a remainder by zero.
	DivideByZeroError = errs.Class("divide by zero")

	// RangeOverflowError is returned when a magnitude does not fit in a
	// uint64.
	RangeOverflowError = errs.Class("range overflow")
)
