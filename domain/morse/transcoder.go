// Package morse converts text to and from international Morse code.
//
// Encoded strings use four tokens: '.' and '-' for the signals, a single space
// between the letters of a word and '/' between words.
package morse

import (
	"strings"
	"unicode"
)

// DefaultPlaceholder replaces Morse tokens that have no character.
const DefaultPlaceholder = '?'

// Transcoder holds the decoding policy. The zero value decodes unknown tokens
// to DefaultPlaceholder.
type Transcoder struct {
	Placeholder rune
}

func NewTranscoder(placeholder rune) Transcoder {
	return Transcoder{Placeholder: placeholder}
}

// Encode upper-cases text and converts it to Morse.
// Characters without a Morse token are skipped, and so are words left empty by
// that skipping.
func (t Transcoder) Encode(text string) string {
	words := strings.Fields(strings.ToUpper(text))
	groups := make([]string, 0, len(words))

	for _, word := range words {
		tokens := make([]string, 0, len(word))
		for _, r := range word {
			if code, ok := alphabet[r]; ok {
				tokens = append(tokens, code)
			}
		}
		if len(tokens) == 0 {
			continue
		}
		groups = append(groups, strings.Join(tokens, string(LetterGap)))
	}
	return strings.Join(groups, string(WordGap))
}

// Decode converts Morse back to upper-case text, one space per word gap.
// Unknown tokens decode to the placeholder and empty tokens are ignored.
func (t Transcoder) Decode(code string) string {
	placeholder := t.Placeholder
	if placeholder == 0 {
		placeholder = DefaultPlaceholder
	}

	var words []string
	for _, group := range strings.Split(code, string(WordGap)) {
		var sb strings.Builder
		for _, token := range strings.Fields(group) {
			if r, ok := reverse[token]; ok {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(placeholder)
			}
		}
		if sb.Len() > 0 {
			words = append(words, sb.String())
		}
	}
	return strings.Join(words, " ")
}

// Supported reports whether every non-space rune of text has a Morse token.
func Supported(text string) bool {
	for _, r := range strings.ToUpper(text) {
		if unicode.IsSpace(r) {
			continue
		}
		if _, ok := alphabet[r]; !ok {
			return false
		}
	}
	return true
}

// IsMorse reports whether s only uses the Morse alphabet.
func IsMorse(s string) bool {
	for _, r := range s {
		switch r {
		case Dot, Dash, LetterGap, WordGap:
		default:
			return false
		}
	}
	return true
}

// Encode uses the default Transcoder.
func Encode(text string) string {
	return Transcoder{}.Encode(text)
}

// Decode uses the default Transcoder.
func Decode(code string) string {
	return Transcoder{}.Decode(code)
}
