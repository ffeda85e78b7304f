package crosstalk

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/crosstalk/internal/wire"
)

// Translator encodes text into its language and decodes frames announced in
// any language. All fields are set once in New; a Translator is safe for
// concurrent use.
type Translator struct {
	lang       Language
	head       []rune
	tail       []rune
	enc        map[rune]codeword
	dec        map[codeword]rune
	log        Logger
	hooks      Hooks
	maxSymbols int
	fp         string
}

func newTranslator(opts Options) (*Translator, error) {
	enc, dec, err := buildTables(opts.Language)
	if err != nil {
		return nil, err
	}
	l := opts.Language
	t := &Translator{
		lang:       l,
		head:       l.Head(),
		tail:       l.Tail(),
		enc:        enc,
		dec:        dec,
		maxSymbols: maxSymbols(opts.MaxSymbols),
		fp:         l.Fingerprint(),
	}
	t.log = coalesce[Logger](opts.Logger, NopLogger{})
	t.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return t, nil
}

func (t *Translator) Language() Language { return t.lang }

// Encode frames message in the translator's language. The first character
// outside the source alphabet aborts with *UnsupportedCharError.
func (t *Translator) Encode(message string) (string, error) {
	body := make([]rune, 0, len(message)*wire.CodewordLen)
	for off, r := range message {
		cw, ok := t.enc[r]
		if !ok {
			return "", &UnsupportedCharError{Char: r, Offset: off}
		}
		body = append(body, cw[:]...)
	}
	return wire.Assemble(t.head, t.lang[:], body, t.tail), nil
}

// Decode reverses Encode for frames produced in any valid language.
func (t *Translator) Decode(wireText string) (string, error) {
	msg, err := t.decode(wireText)
	if err != nil {
		t.hooks.DecodeFailed(errKind(err), err)
		t.log.Debug("decode failed", Fields{"lang": t.fp, "err": err})
		return "", err
	}
	return msg, nil
}

// IsEncoded runs only the fast shape check. It never decodes and never fails:
// malformed input is reported as false.
func (t *Translator) IsEncoded(wireText string) bool {
	if _, err := t.accept(wireText); err != nil {
		t.hooks.Rejected(rejectReason(err))
		return false
	}
	return true
}

func (t *Translator) decode(wireText string) (string, error) {
	syms, err := t.accept(wireText)
	if err != nil {
		return "", err
	}

	local, err := t.rewrite(syms)
	if err != nil {
		return "", err
	}
	if err := t.verify(local); err != nil {
		return "", err
	}

	body, ok := wire.TrimFrame(local, t.head, t.tail)
	if !ok {
		return "", &InvariantError{Reason: "frame markers missing after translation"}
	}
	// verify guarantees len(body) is a multiple of the codeword length.
	out := make([]rune, 0, len(body)/wire.CodewordLen)
	for i := 0; i < len(body); i += wire.CodewordLen {
		var cw codeword
		copy(cw[:], body[i:i+wire.CodewordLen])
		r, ok := t.dec[cw]
		if !ok {
			return "", &LookupError{Codeword: cw.String(), Index: i / wire.CodewordLen}
		}
		out = append(out, r)
	}
	return string(out), nil
}

// accept strips spacing and applies the fast check.
func (t *Translator) accept(wireText string) ([]rune, error) {
	if t.maxSymbols > 0 && countSymbols(wireText) > t.maxSymbols {
		return nil, fmt.Errorf("%w: more than %d symbols", ErrTooLarge, t.maxSymbols)
	}
	syms := wire.Strip(wireText)
	if err := wire.FastVerify(syms); err != nil {
		return nil, &StructureError{Reason: "fast check failed", Err: err}
	}
	return syms, nil
}

// rewrite drops the announcement and maps every announced symbol onto the
// local symbol at the same position. The map is applied in one pass so a
// symbol that is already local is never substituted twice, e.g. when the
// foreign language is the local one with two symbols swapped.
func (t *Translator) rewrite(syms []rune) ([]rune, error) {
	var from Language
	copy(from[:], wire.Announcement(syms))
	for i, r := range from {
		if j := from.Index(r); j != i {
			return nil, &StructureError{Reason: fmt.Sprintf("announcement repeats symbol %q at positions %d and %d", r, j, i)}
		}
	}

	out := wire.WithoutAnnouncement(syms)
	if from == t.lang {
		return out, nil
	}

	remap := make(map[rune]rune, LanguageSize)
	for i, r := range from {
		remap[r] = t.lang[i]
	}
	for i, r := range out {
		if m, ok := remap[r]; ok {
			out[i] = m
		}
	}

	ffp := from.Fingerprint()
	t.hooks.Translated(ffp, t.fp)
	t.log.Debug("translated frame", Fields{"from": ffp, "to": t.fp, "symbols": len(out)})
	return out, nil
}

// verify is the strict, language specific check on a translated frame.
func (t *Translator) verify(local []rune) error {
	if len(local)%wire.CodewordLen != 0 {
		return &InvariantError{Reason: fmt.Sprintf("length %d is not a multiple of %d", len(local), wire.CodewordLen)}
	}
	if !wire.HasFrame(local, t.head, t.tail) {
		return &InvariantError{Reason: fmt.Sprintf("expected head %q and tail %q", string(t.head), string(t.tail))}
	}
	return nil
}

func countSymbols(s string) int {
	n := 0
	for _, r := range s {
		if r != wire.Separator {
			n++
		}
	}
	return n
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, wire.ErrTooShort):
		return "too_short"
	case errors.Is(err, wire.ErrFramePattern):
		return "frame_pattern"
	case errors.Is(err, wire.ErrBodyLength):
		return "body_length"
	default:
		return "unknown"
	}
}
