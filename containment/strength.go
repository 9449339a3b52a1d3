package containment

import "fmt"

// Strength selects how much padding a buffer has, as a multiple of the base
// reach.
type Strength int

// Strengths
const (
	Standard   Strength = 1
	Reinforced Strength = 2
	Heavy      Strength = 3
)

// Reach returns the padding per side for the given base reach.
func (s Strength) Reach(base int) int {
	return int(s) * base
}

// String returns string representation.
func (s Strength) String() string {
	switch s {
	case Standard:
		return "Standard(1x)"
	case Reinforced:
		return "Reinforced(2x)"
	case Heavy:
		return "Heavy(3x)"
	default:
		return fmt.Sprintf("Strength(%dx)", int(s))
	}
}
