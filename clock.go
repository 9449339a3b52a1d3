package u235

import "time"

// Clock supplies the current time. Readings from Now must carry a monotonic
// component (as time.Now does) or otherwise never go backwards.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the wall clock's monotonic time.
var SystemClock Clock = systemClock{}
