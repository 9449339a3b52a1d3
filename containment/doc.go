// Package containment surrounds an item with sacrificial padding.
//
// A Buffer lays out a single memory region as
//
//	| vicinity | padding (reach) | item | padding (reach) | vicinity |
//
// Radiation aimed at the item mostly lands in the padding, which is never
// read for meaning. The vicinity on either side stands in for unrelated
// memory so that anything escaping the padding can be observed.
//
// Buffers come in three strengths, each a multiple of the base reach:
//
//	Standard   1x  (16 bytes per side by default)
//	Reinforced 2x  (32)
//	Heavy      3x  (48)
package containment
