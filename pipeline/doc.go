// Package pipeline wires one stream's receive path together: listener,
// reassembler, capacity-1 hand-off slots and the decode worker.
//
// Each Stream owns its resources exclusively; the two slots are the only
// memory shared between its goroutines, and nothing is shared between
// streams. A stalled or failing stream therefore cannot delay any other
// stream or the display cadence.
package pipeline
