package pipeline

import "sync/atomic"

// Stats tracks one stream's pipeline counters. All fields are updated
// atomically from the stream's goroutines and may be snapshotted at any
// time.
type Stats struct {
	framesAssembled    atomic.Uint64
	framesDecoded      atomic.Uint64
	decodeFailures     atomic.Uint64
	rawOverwritten     atomic.Uint64
	decodedOverwritten atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of a stream's counters.
type StatsSnapshot struct {
	// DatagramsReceived counts well-formed datagrams handled.
	DatagramsReceived uint64

	// DatagramsMalformed counts datagrams dropped as too short.
	DatagramsMalformed uint64

	// FramesAssembled counts completed compressed frames.
	FramesAssembled uint64

	// FramesDecoded counts frames decoded successfully.
	FramesDecoded uint64

	// DecodeFailures counts frames the decoder rejected. Under packet
	// loss this is routine, not a fault.
	DecodeFailures uint64

	// RawOverwritten counts compressed frames discarded unread because a
	// newer frame completed before the decode worker consumed them.
	RawOverwritten uint64

	// DecodedOverwritten counts decoded frames discarded unread because
	// a newer frame was decoded before the display loop polled.
	DecodedOverwritten uint64
}
