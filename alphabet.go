package crosstalk

import "unicode"

const (
	asciiLower  = "abcdefghijklmnopqrstuvwxyz"
	asciiUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	cyrillic    = "ецьюлтйждбпфчгъукроазхвсямэиныщёшієї"
	digits      = "0123456789"
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// sourceAlphabet is the ordered set of plaintext characters. The order fixes
// which codeword each character gets, so it must never change.
var sourceAlphabet = buildAlphabet()

var sourceIndex = func() map[rune]int {
	m := make(map[rune]int, len(sourceAlphabet))
	for i, r := range sourceAlphabet {
		m[r] = i
	}
	return m
}()

func buildAlphabet() []rune {
	out := make([]rune, 0, 2*len(asciiLower)+2*len([]rune(cyrillic))+len(digits)+len(punctuation)+1)
	out = append(out, []rune(asciiLower)...)
	out = append(out, []rune(asciiUpper)...)
	out = append(out, []rune(cyrillic)...)
	for _, r := range cyrillic {
		out = append(out, unicode.ToUpper(r))
	}
	out = append(out, []rune(digits)...)
	out = append(out, []rune(punctuation)...)
	out = append(out, ' ')
	return out
}

// SourceAlphabet returns a copy of the characters a Translator can encode,
// in codeword order.
func SourceAlphabet() []rune {
	out := make([]rune, len(sourceAlphabet))
	copy(out, sourceAlphabet)
	return out
}

// Supports reports whether r can be encoded.
func Supports(r rune) bool {
	_, ok := sourceIndex[r]
	return ok
}
