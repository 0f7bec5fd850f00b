package packet

import (
	"strings"
	"testing"

	"radio-lab/domain/morse"
	"radio-lab/errors"

	"github.com/stretchr/testify/require"
)

func TestPacket_Encode(t *testing.T) {
	req := require.New(t)
	p := New("SOS", morse.Encode("SOS"))
	req.Equal("SOS|... --- ...", string(p.Encode()))
}

func TestPacket_ValidateNeverPanics(t *testing.T) {
	req := require.New(t)

	req.NotPanics(func() { _ = New("SOS", "... --- ...").Validate() })
	req.NoError(New("SOS", "... --- ...").Validate())
	req.ErrorIs(New("SOS|CQD", "... --- ...").Validate(), errors.ErrDelimiterInText)
}

func TestPacket_Parse(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		input    string
		expected Packet
		err      error
	}{
		{name: "Regular packet", input: "SOS|... --- ...", expected: Packet{Text: "SOS", Morse: "... --- ..."}},
		{name: "Split on the first delimiter", input: "A|B|.-", expected: Packet{Text: "A", Morse: "B|.-"}},
		{name: "Empty morse", input: "HELLO|", expected: Packet{Text: "HELLO", Morse: ""}},
		{name: "Missing delimiter", input: "... --- ...", err: errors.ErrMalformedPacket},
		{name: "Empty payload", input: "", err: errors.ErrMalformedPacket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.input))
			if tt.err != nil {
				req.ErrorIs(err, tt.err)
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, p)
		})
	}
}

func TestPacket_Validate(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name   string
		packet Packet
		err    error
	}{
		{name: "Valid packet", packet: New("SOS", "... --- ...")},
		{name: "Noisy morse is still morse", packet: New("SOS", "..  --- .-.")},
		{name: "Empty text", packet: New("", ""), err: errors.ErrEmptyMessage},
		{name: "Delimiter in text", packet: New("A|B", ".-"), err: errors.ErrDelimiterInText},
		{name: "Morse with foreign characters", packet: New("SOS", "SOS"), err: errors.ErrInvalidPacket},
		{name: "Invalid UTF-8", packet: New(string([]byte{0xff, 0xfe}), ""), err: errors.ErrInvalidPacket},
		{name: "Too large", packet: New(strings.Repeat("E", MaxPacketSize), "."), err: errors.ErrPacketTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.packet.Validate()
			if tt.err == nil {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, tt.err)
		})
	}
}

func TestPacket_RoundTrip(t *testing.T) {
	req := require.New(t)
	p := New("WE HAVE STRUCK ICEBERG", morse.Encode("WE HAVE STRUCK ICEBERG"))
	req.NoError(p.Validate())

	parsed, err := Parse(p.Encode())
	req.NoError(err)
	req.Equal(p, parsed)
}
