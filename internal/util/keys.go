package util

import (
	"crypto/sha256"
	"fmt"
)

// Fingerprint returns prefix + ":" + the first 16 hex chars of sha256(s).
func Fingerprint(prefix, s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%s:%x", prefix, sum)[:len(prefix)+1+16]
}
