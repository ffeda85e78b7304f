package crosstalk

import "fmt"

// Entry pairs one source character with its codeword.
type Entry struct {
	Char     string `json:"char" cbor:"1,keyasint" msgpack:"char"`
	Codeword string `json:"codeword" cbor:"2,keyasint" msgpack:"codeword"`
}

// Codebook is the full public description of a dialect: the language as
// announced on the wire, its markers, and every entry in alphabet order.
// Parties can exchange it to agree on a language out of band.
type Codebook struct {
	Language string  `json:"language" cbor:"1,keyasint" msgpack:"language"`
	Head     string  `json:"head" cbor:"2,keyasint" msgpack:"head"`
	Tail     string  `json:"tail" cbor:"3,keyasint" msgpack:"tail"`
	Entries  []Entry `json:"entries" cbor:"4,keyasint" msgpack:"entries"`
}

// Codebook exports the translator's tables.
func (t *Translator) Codebook() Codebook {
	cb := Codebook{
		Language: t.lang.String(),
		Head:     string(t.head),
		Tail:     string(t.tail),
		Entries:  make([]Entry, 0, len(sourceAlphabet)),
	}
	for _, r := range sourceAlphabet {
		cb.Entries = append(cb.Entries, Entry{Char: string(r), Codeword: t.enc[r].String()})
	}
	return cb
}

// NewFromCodebook builds a Translator for cb.Language and checks that every
// entry, head and tail agree with the derived tables. A codebook produced by
// another build with a different alphabet order is rejected.
func NewFromCodebook(cb Codebook, opts Options) (*Translator, error) {
	l, err := ParseLanguage(cb.Language)
	if err != nil {
		return nil, err
	}
	opts.Language = l
	t, err := New(opts)
	if err != nil {
		return nil, err
	}
	if cb.Head != string(t.head) || cb.Tail != string(t.tail) {
		return nil, &ConfigError{Reason: fmt.Sprintf("codebook markers %q/%q do not match %q/%q",
			cb.Head, cb.Tail, string(t.head), string(t.tail))}
	}
	if len(cb.Entries) != len(sourceAlphabet) {
		return nil, &ConfigError{Reason: fmt.Sprintf("codebook has %d entries, want %d", len(cb.Entries), len(sourceAlphabet))}
	}
	for i, e := range cb.Entries {
		r := []rune(e.Char)
		if len(r) != 1 || r[0] != sourceAlphabet[i] {
			return nil, &ConfigError{Reason: fmt.Sprintf("codebook entry %d is %q, want %q", i, e.Char, sourceAlphabet[i])}
		}
		if want := t.enc[r[0]].String(); e.Codeword != want {
			return nil, &ConfigError{Reason: fmt.Sprintf("codebook maps %q to %q, want %q", e.Char, e.Codeword, want)}
		}
	}
	return t, nil
}
