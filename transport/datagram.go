package transport

// Continuation flag values carried in the first byte of every datagram.
const (
	// FlagMore marks a fragment with more fragments to follow.
	FlagMore byte = 0
	// FlagFinal marks the fragment that completes the current frame.
	FlagFinal byte = 1
)

// MaxDatagramSize is the largest UDP payload the protocol can carry.
const MaxDatagramSize = 65535

// MinDatagramSize is the smallest valid datagram: the flag byte plus at
// least one payload byte. Anything shorter is malformed and dropped.
const MinDatagramSize = 2

// ParseDatagram splits a raw datagram into its continuation flag and
// payload fragment. It reports false for datagrams too short to carry
// both; those are dropped silently by the caller.
//
// Flag values other than FlagFinal are treated as "more fragments follow"
// so that future flag assignments do not truncate frames on old receivers.
func ParseDatagram(data []byte) (final bool, payload []byte, ok bool) {
	if len(data) < MinDatagramSize {
		return false, nil, false
	}
	return data[0] == FlagFinal, data[1:], true
}
