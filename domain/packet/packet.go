// Package packet defines the wire format exchanged between two stations:
// the message text and its Morse transcription joined by a single '|'.
// There is no length prefix; a connection carries exactly one packet.
package packet

import (
	stderrors "errors"
	"fmt"
	"radio-lab/domain/morse"
	"radio-lab/errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	Delimiter = "|"
	// MaxPacketSize is the number of bytes a listener reads from one connection.
	MaxPacketSize = 2048
)

var validate = newValidator()

type Packet struct {
	Text  string `validate:"required,excludes=0x7C"`
	Morse string `validate:"morse"`
}

func New(text, code string) Packet {
	return Packet{Text: text, Morse: code}
}

// Encode returns the wire representation "<text>|<morse>".
func (p Packet) Encode() []byte {
	return []byte(p.Text + Delimiter + p.Morse)
}

// Validate rejects packets that would corrupt the framing on the peer side.
// A '|' in the text is refused rather than escaped.
func (p Packet) Validate() error {
	if err := validate.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if !stderrors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %v", errors.ErrInvalidPacket, err)
		}
		for _, fe := range validationErrors {
			switch fe.Tag() {
			case "required":
				return errors.ErrEmptyMessage
			case "excludes":
				return errors.ErrDelimiterInText
			}
		}
		return fmt.Errorf("%w: %v", errors.ErrInvalidPacket, validationErrors)
	}
	if !utf8.ValidString(p.Text) {
		return fmt.Errorf("%w: text is not valid UTF-8", errors.ErrInvalidPacket)
	}
	if size := len(p.Text) + len(Delimiter) + len(p.Morse); size > MaxPacketSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", errors.ErrPacketTooLarge, size, MaxPacketSize)
	}
	return nil
}

// Parse splits a received payload on its first delimiter.
// The Morse part is kept as received, noise included.
func Parse(data []byte) (Packet, error) {
	text, code, found := strings.Cut(string(data), Delimiter)
	if !found {
		return Packet{}, errors.ErrMalformedPacket
	}
	return Packet{Text: text, Morse: code}, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("morse", func(fl validator.FieldLevel) bool {
		return morse.IsMorse(fl.Field().String())
	})
	return v
}
