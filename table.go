package crosstalk

import (
	"fmt"

	"github.com/unkn0wn-root/crosstalk/internal/wire"
)

// codeword is one encoded character: three language symbols.
type codeword [wire.CodewordLen]rune

func (c codeword) String() string { return string(c[:]) }

// codewordSpace is the number of distinct codewords a language yields.
const codewordSpace = LanguageSize * LanguageSize * LanguageSize

// codewordAt treats i as a three digit base-6 number over l, outer digit
// first. Index 0 is L0 L0 L0, index 1 is L0 L0 L1, and so on.
func codewordAt(l Language, i int) codeword {
	return codeword{
		l[(i/(LanguageSize*LanguageSize))%LanguageSize],
		l[(i/LanguageSize)%LanguageSize],
		l[i%LanguageSize],
	}
}

// buildTables assigns codewords to the source alphabet in order and derives
// the inverse.
func buildTables(l Language) (map[rune]codeword, map[codeword]rune, error) {
	if err := l.Validate(); err != nil {
		return nil, nil, err
	}
	if len(sourceAlphabet) > codewordSpace {
		return nil, nil, &ConfigError{Reason: fmt.Sprintf(
			"alphabet of %d characters exceeds %d codewords", len(sourceAlphabet), codewordSpace)}
	}

	enc := make(map[rune]codeword, len(sourceAlphabet))
	dec := make(map[codeword]rune, len(sourceAlphabet))
	for i, r := range sourceAlphabet {
		cw := codewordAt(l, i)
		if _, dup := dec[cw]; dup {
			return nil, nil, &ConfigError{Reason: fmt.Sprintf("codeword %q assigned twice", cw.String())}
		}
		enc[r] = cw
		dec[cw] = r
	}
	return enc, dec, nil
}
