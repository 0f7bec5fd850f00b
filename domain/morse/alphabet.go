package morse

// Morse tokens.
const (
	Dot       = '.'
	Dash      = '-'
	LetterGap = ' '
	WordGap   = '/'
)

// alphabet is the international Morse table. Read-only after init.
var alphabet = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",

	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.", '!': "-.-.--",
	'/': "-..-.", '(': "-.--.", ')': "-.--.-", '&': ".-...", ':': "---...",
	';': "-.-.-.", '=': "-...-", '+': ".-.-.", '-': "-....-", '_': "..--.-",
	'"': ".-..-.", '$': "...-..-", '@': ".--.-.",
}

// reverse maps a Morse token back to its character.
var reverse = func() map[string]rune {
	m := make(map[string]rune, len(alphabet))
	for r, code := range alphabet {
		m[code] = r
	}
	return m
}()

// Lookup returns the Morse token of r, if any.
func Lookup(r rune) (string, bool) {
	code, ok := alphabet[r]
	return code, ok
}
