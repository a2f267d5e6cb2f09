package sender

import (
	"github.com/visionward/camview/transport"
)

// DefaultChunkSize is the payload bytes carried per datagram. Kept under
// the 65535-byte UDP ceiling with room for the flag byte and headers.
const DefaultChunkSize = 60000

// Chunk splits one encoded frame into wire datagrams: each at most
// chunkSize payload bytes prefixed with the continuation flag, the last
// one flagged final. chunkSize <= 0 selects DefaultChunkSize. An empty
// frame yields a single final datagram with no payload; the receiver
// drops it as malformed, matching the protocol's 2-byte minimum.
func Chunk(data []byte, chunkSize int) [][]byte {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var out [][]byte
	for {
		n := chunkSize
		last := n >= len(data)
		if last {
			n = len(data)
		}

		flag := transport.FlagMore
		if last {
			flag = transport.FlagFinal
		}

		dgram := make([]byte, 1+n)
		dgram[0] = flag
		copy(dgram[1:], data[:n])
		out = append(out, dgram)

		if last {
			return out
		}
		data = data[n:]
	}
}
