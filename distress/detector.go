// Package distress spots distress calls in received messages.
package distress

import (
	"radio-lab/errors"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// DefaultSignals are the distress calls of the era, SOS and its predecessor CQD.
var DefaultSignals = []string{"SOS", "CQD", "MAYDAY"}

type Detector struct {
	matcher *goahocorasick.Machine
}

// NewDetector builds the Aho-Corasick automaton over the normalized signals.
func NewDetector(signals []string) (Detector, error) {
	patterns := lo.FilterMap(signals, func(s string, _ int) ([]rune, bool) {
		p := normalize(s)
		return p, len(p) > 0
	})
	if len(patterns) == 0 {
		return Detector{}, errors.ErrEmptyDistressList
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Detector{}, err
	}
	return Detector{matcher: m}, nil
}

// Detect returns the distress signals found in text, in order of appearance.
// Case and punctuation are ignored, so "s.o.s" is a match. A signal must stand
// as a whole word: "ISOSCELES" is not a distress call.
func (d Detector) Detect(text string) []string {
	if d.matcher == nil {
		return nil
	}
	content := normalize(text)
	if len(content) == 0 {
		return nil
	}
	terms := lo.Filter(d.matcher.MultiPatternSearch(content, false), func(term *goahocorasick.Term, _ int) bool {
		return isWord(content, term.Pos, term.Pos+len(term.Word))
	})
	if len(terms) == 0 {
		return nil
	}
	return lo.Map(terms, func(term *goahocorasick.Term, _ int) string {
		return strings.ToUpper(string(term.Word))
	})
}

// isWord reports whether content[start:end] is not glued to a letter or digit.
func isWord(content []rune, start, end int) bool {
	if start > 0 && isWordRune(content[start-1]) {
		return false
	}
	return end >= len(content) || !isWordRune(content[end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (d Detector) IsDistress(text string) bool {
	return len(d.Detect(text)) > 0
}

// normalize folds case and drops punctuation, keeping word boundaries.
func normalize(input string) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return out
}
