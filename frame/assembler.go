package frame

// Assembler reconstructs complete compressed frames from flag-delimited
// datagram payloads.
//
// The wire protocol carries no length prefix, sequence number or checksum:
// fragments of one frame are assumed to arrive contiguously and in order,
// which holds because each stream has exactly one sender on a single path.
// A lost fragment is not detected here; it surfaces downstream as a decode
// failure and the stream self-corrects at the next completed frame.
//
// Assembler is not safe for concurrent use. Each stream's listener owns
// its assembler exclusively; the publish boundary (typically a Slot) is
// the only hand-off to other goroutines.
type Assembler struct {
	buf     []byte
	publish func([]byte)
}

// NewAssembler creates an Assembler that hands each completed frame to
// publish, which takes ownership of the byte slice.
func NewAssembler(publish func([]byte)) *Assembler {
	return &Assembler{publish: publish}
}

// Append adds payload to the frame under assembly. When final is true the
// accumulated bytes are handed to the publish callback as one compressed
// frame and the buffer is reset. A frame completed with no accumulated
// payload is still published as a zero-length frame; the decode stage
// treats it as a decode failure. Append reports whether a frame was
// completed.
func (a *Assembler) Append(final bool, payload []byte) (completed bool) {
	a.buf = append(a.buf, payload...)
	if !final {
		return false
	}

	// Ownership of the accumulated bytes transfers out; start a fresh
	// buffer rather than reslicing the published one.
	data := a.buf
	if data == nil {
		data = []byte{}
	}
	a.buf = nil

	a.publish(data)
	return true
}

// Reset discards any partially assembled frame. Called after a socket
// error so a desynchronized fragment sequence is not carried forward.
func (a *Assembler) Reset() {
	a.buf = nil
}

// Pending returns the number of bytes accumulated toward the current frame.
func (a *Assembler) Pending() int {
	return len(a.buf)
}
