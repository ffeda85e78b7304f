package util

import (
	"strings"
	"testing"
)

func TestFingerprintStableAndShort(t *testing.T) {
	a := Fingerprint("lang", "12360й")
	b := Fingerprint("lang", "12360й")
	if a != b {
		t.Fatalf("not stable: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "lang:") || len(a) != len("lang:")+16 {
		t.Fatalf("unexpected shape %q", a)
	}
	if a == Fingerprint("lang", "123ц0й") {
		t.Fatalf("different inputs collided")
	}
}
