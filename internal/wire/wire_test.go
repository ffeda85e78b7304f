package wire

import (
	"errors"
	"testing"
)

func TestStripAndJoin(t *testing.T) {
	in := "й й 2 1 2 3"
	got := Strip(in)
	want := []rune("йй2123")
	if string(got) != string(want) {
		t.Fatalf("Strip: got %q want %q", string(got), string(want))
	}
	if back := Join(got); back != in {
		t.Fatalf("Join: got %q want %q", back, in)
	}
	if Join(nil) != "" {
		t.Fatalf("Join(nil) should be empty")
	}
}

func TestStripDropsRepeatedSeparators(t *testing.T) {
	if got := string(Strip("  a  b ")); got != "ab" {
		t.Fatalf("got %q", got)
	}
}

func TestAssembleLayout(t *testing.T) {
	head := []rune("йй2")
	ann := []rune("12360й")
	body := []rune("111")
	tail := []rune("йй1")
	got := Assemble(head, ann, body, tail)
	want := "й й 2 1 2 3 6 0 й 1 1 1 й й 1"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFastVerify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrTooShort},
		{"one symbol", "й", ErrTooShort},
		{"empty body", "йй212360ййй1", nil},
		{"one codeword", "йй212360й111йй1", nil},
		{"head not doubled", "й1212360й111йй1", ErrFramePattern},
		{"tail not doubled", "йй212360й1111й1", ErrFramePattern},
		{"body off by one", "йй212360й1111йй1", ErrBodyLength},
		{"missing tail", "йй212360й606063й60", ErrFramePattern},
	}
	for _, tc := range cases {
		err := FastVerify([]rune(tc.in))
		if !errors.Is(err, tc.want) && !(err == nil && tc.want == nil) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
	}
}

func TestAnnouncementAndRemoval(t *testing.T) {
	s := []rune("йй212360й111йй1")
	if got := string(Announcement(s)); got != "12360й" {
		t.Fatalf("Announcement: %q", got)
	}
	rest := WithoutAnnouncement(s)
	if got := string(rest); got != "йй2111йй1" {
		t.Fatalf("WithoutAnnouncement: %q", got)
	}
	// source must stay intact
	if string(s) != "йй212360й111йй1" {
		t.Fatalf("input mutated: %q", string(s))
	}
}

func TestTrimFrame(t *testing.T) {
	head, tail := []rune("йй2"), []rune("йй1")
	body, ok := TrimFrame([]rune("йй2111222йй1"), head, tail)
	if !ok || string(body) != "111222" {
		t.Fatalf("TrimFrame: ok=%v body=%q", ok, string(body))
	}
	if _, ok := TrimFrame([]rune("йй1111йй2"), head, tail); ok {
		t.Fatalf("expected mismatch on swapped markers")
	}
	if _, ok := TrimFrame([]rune("йй"), head, tail); ok {
		t.Fatalf("expected mismatch on short input")
	}
}
