package wire

import (
	"errors"
	"strings"
)

const (
	Separator = ' '

	HeadLen         = 3
	TailLen         = 3
	AnnouncementLen = 6
	CodewordLen     = 3

	// MinSymbols is an empty body: head | announcement | tail.
	MinSymbols = HeadLen + AnnouncementLen + TailLen
)

var (
	ErrTooShort     = errors.New("crosstalk: frame shorter than head, announcement and tail")
	ErrFramePattern = errors.New("crosstalk: doubled head/tail symbols missing")
	ErrBodyLength   = errors.New("crosstalk: body length is not a whole number of codewords")
)

// Layout (symbols, separated by single spaces on the wire):
//
//	head(3) | announcement(6) | codeword(3) * n | tail(3)
//
// head = L5 L5 L1, tail = L5 L5 L0 for the encoding language L.

// Strip removes the transport separator. Spacing carries no data.
func Strip(text string) []rune {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if r == Separator {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Join renders symbols for transport with one separator between each pair.
func Join(symbols []rune) string {
	if len(symbols) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(symbols) * 3)
	for i, r := range symbols {
		if i > 0 {
			b.WriteRune(Separator)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Assemble lays out a frame and renders it for transport.
func Assemble(head, announcement, body, tail []rune) string {
	syms := make([]rune, 0, len(head)+len(announcement)+len(body)+len(tail))
	syms = append(syms, head...)
	syms = append(syms, announcement...)
	syms = append(syms, body...)
	syms = append(syms, tail...)
	return Join(syms)
}

// FastVerify is the language independent shape check. Every language doubles
// its last symbol in both head and tail, so s[0]==s[1]==s[-2]==s[-3] holds no
// matter which language produced the frame.
func FastVerify(s []rune) error {
	n := len(s)
	if n < MinSymbols {
		return ErrTooShort
	}
	if s[0] != s[1] || s[1] != s[n-2] || s[n-2] != s[n-3] {
		return ErrFramePattern
	}
	if (n-AnnouncementLen)%CodewordLen != 0 {
		return ErrBodyLength
	}
	return nil
}

// Announcement returns the announced language. Callers must run FastVerify first.
func Announcement(s []rune) []rune {
	return s[HeadLen : HeadLen+AnnouncementLen]
}

// WithoutAnnouncement returns a copy of s with the announcement cut out.
// Head and tail stay in place.
func WithoutAnnouncement(s []rune) []rune {
	out := make([]rune, 0, len(s)-AnnouncementLen)
	out = append(out, s[:HeadLen]...)
	out = append(out, s[HeadLen+AnnouncementLen:]...)
	return out
}

// HasFrame reports whether s starts with head and ends with tail.
func HasFrame(s, head, tail []rune) bool {
	if len(s) < len(head)+len(tail) {
		return false
	}
	return equal(s[:len(head)], head) && equal(s[len(s)-len(tail):], tail)
}

// TrimFrame drops head and tail. ok is false when s is not framed by them.
func TrimFrame(s, head, tail []rune) (body []rune, ok bool) {
	if !HasFrame(s, head, tail) {
		return nil, false
	}
	return s[len(head) : len(s)-len(tail)], true
}

func equal(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
