package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDatagram(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		wantOK      bool
		wantFinal   bool
		wantPayload []byte
	}{
		{
			name:   "empty_datagram",
			data:   nil,
			wantOK: false,
		},
		{
			name:   "flag_only",
			data:   []byte{FlagFinal},
			wantOK: false,
		},
		{
			name:        "continuation_fragment",
			data:        []byte{FlagMore, 0xaa, 0xbb},
			wantOK:      true,
			wantFinal:   false,
			wantPayload: []byte{0xaa, 0xbb},
		},
		{
			name:        "final_fragment",
			data:        []byte{FlagFinal, 0x01},
			wantOK:      true,
			wantFinal:   true,
			wantPayload: []byte{0x01},
		},
		{
			name:        "unknown_flag_treated_as_continuation",
			data:        []byte{0x7f, 0x01, 0x02},
			wantOK:      true,
			wantFinal:   false,
			wantPayload: []byte{0x01, 0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, payload, ok := ParseDatagram(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantFinal, final)
			assert.Equal(t, tt.wantPayload, payload)
		})
	}
}
