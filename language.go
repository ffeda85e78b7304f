package crosstalk

import (
	"fmt"
	"strings"

	"github.com/unkn0wn-root/crosstalk/internal/util"
	"github.com/unkn0wn-root/crosstalk/internal/wire"
)

// LanguageSize is the number of symbols in every language.
const LanguageSize = 6

// Language is the ordered symbol set a Translator renders messages with.
// Position matters: translation pairs symbols by index, and the head/tail
// markers are derived from indices 0, 1 and 5.
type Language [LanguageSize]rune

// Preset languages. Common and Orcish differ only at index 3, Debug shares
// nothing with them except '2' at index 1.
var (
	Common = Language{'1', '2', '3', 'ц', '0', 'й'}
	Orcish = Language{'1', '2', '3', '6', '0', 'й'}
	Debug  = Language{'s', '2', 'ю', 'b', 'a', '7'}
)

// Presets maps preset names to languages.
var Presets = map[string]Language{
	"common": Common,
	"orcish": Orcish,
	"debug":  Debug,
}

// NewLanguage builds a Language from exactly six distinct symbols.
func NewLanguage(symbols ...rune) (Language, error) {
	var l Language
	if len(symbols) != LanguageSize {
		return l, &ConfigError{Reason: fmt.Sprintf("language needs %d symbols, got %d", LanguageSize, len(symbols))}
	}
	copy(l[:], symbols)
	if err := l.Validate(); err != nil {
		return Language{}, err
	}
	return l, nil
}

// ParseLanguage accepts the symbols packed ("12360й") or separated by
// spaces ("1 2 3 6 0 й"), matching how an announcement looks on the wire.
func ParseLanguage(s string) (Language, error) {
	return NewLanguage(wire.Strip(strings.TrimSpace(s))...)
}

// MustLanguage is like ParseLanguage but panics on error.
// Handy for package-level variables and tests.
func MustLanguage(s string) Language {
	l, err := ParseLanguage(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Validate enforces distinct symbols. The separator rune is reserved for
// transport and cannot be a symbol.
func (l Language) Validate() error {
	seen := make(map[rune]int, LanguageSize)
	for i, r := range l {
		if r == wire.Separator {
			return &ConfigError{Reason: fmt.Sprintf("symbol %d is the wire separator", i)}
		}
		if r == 0 {
			return &ConfigError{Reason: fmt.Sprintf("symbol %d is unset", i)}
		}
		if j, dup := seen[r]; dup {
			return &ConfigError{Reason: fmt.Sprintf("symbol %q repeats at positions %d and %d", r, j, i)}
		}
		seen[r] = i
	}
	return nil
}

// Head is L5 L5 L1.
func (l Language) Head() []rune {
	return []rune{l[5], l[5], l[1]}
}

// Tail is L5 L5 L0.
func (l Language) Tail() []rune {
	return []rune{l[5], l[5], l[0]}
}

// Index returns the position of r in l, or -1.
func (l Language) Index(r rune) int {
	for i, s := range l {
		if s == r {
			return i
		}
	}
	return -1
}

// String renders the language the way it is announced on the wire.
func (l Language) String() string {
	return wire.Join(l[:])
}

// Fingerprint is a short stable identifier for logs and hooks.
func (l Language) Fingerprint() string {
	return util.Fingerprint("lang", string(l[:]))
}
