package memory

import "github.com/zeebo/errs"

// Error is the class of errors returned by this package.
var Error = errs.Class("memory")

// ErrOutOfBounds is returned when a span would not fit in its region.
var ErrOutOfBounds = Error.New("out of bounds")
