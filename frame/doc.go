// Package frame implements the frame reassembly and hand-off primitives
// used by the receive pipeline.
//
// An Assembler reconstructs one complete compressed frame from a sequence
// of flag-delimited datagram payloads. A Slot is a capacity-1 hand-off
// cell with overwrite-on-put semantics: the newest value always wins, and
// a slow consumer only ever costs one stale frame, never unbounded memory.
package frame
