package sender

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visionward/camview/frame"
	"github.com/visionward/camview/transport"
)

func TestChunkSingleDatagram(t *testing.T) {
	data := []byte("fits in one")
	chunks := Chunk(data, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, transport.FlagFinal, chunks[0][0])
	assert.Equal(t, data, chunks[0][1:])
}

func TestChunkSplitsAndFlags(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, 250)
	chunks := Chunk(data, 100)

	require.Len(t, chunks, 3)
	assert.Equal(t, transport.FlagMore, chunks[0][0])
	assert.Equal(t, transport.FlagMore, chunks[1][0])
	assert.Equal(t, transport.FlagFinal, chunks[2][0])
	assert.Len(t, chunks[0], 101)
	assert.Len(t, chunks[1], 101)
	assert.Len(t, chunks[2], 51)
}

func TestChunkExactMultiple(t *testing.T) {
	data := bytes.Repeat([]byte{0x01}, 200)
	chunks := Chunk(data, 100)

	require.Len(t, chunks, 2)
	assert.Equal(t, transport.FlagFinal, chunks[1][0])
	assert.Len(t, chunks[1], 101)
}

func TestChunkEmptyFrame(t *testing.T) {
	chunks := Chunk(nil, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, []byte{transport.FlagFinal}, chunks[0])
}

// The chunker and the receive-side assembler must agree on the wire
// format: any frame chunked then reassembled comes back byte-identical.
func TestChunkAssembleRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		chunkSize int
	}{
		{name: "sub_chunk_frame", size: 50, chunkSize: 100},
		{name: "multi_chunk_frame", size: 2500, chunkSize: 512},
		{name: "exact_boundary", size: 1024, chunkSize: 512},
		{name: "single_byte", size: 1, chunkSize: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, tt.size)
			for i := range data {
				data[i] = byte(i * 7)
			}

			out := frame.NewSlot[[]byte]()
			asm := frame.NewAssembler(func(b []byte) { out.Put(b) })

			for _, dgram := range Chunk(data, tt.chunkSize) {
				final, payload, ok := transport.ParseDatagram(dgram)
				require.True(t, ok)
				asm.Append(final, payload)
			}

			got, ok := out.TryTake()
			require.True(t, ok)
			assert.Equal(t, data, got)
		})
	}
}
