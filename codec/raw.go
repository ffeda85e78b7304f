package codec

import "github.com/unkn0wn-root/crosstalk"

// Bytes is an identity codec for []byte values.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String converts between string and []byte without validation.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

// Frames stores plaintext as a framed wire message: Encode runs the dialect's
// Encode, Decode runs its Decode. Bytes at rest are always a valid frame, so
// any party holding them can read them with their own language.
type Frames struct {
	Dialect crosstalk.Dialect
}

func (c Frames) Encode(message string) ([]byte, error) {
	w, err := c.Dialect.Encode(message)
	if err != nil {
		return nil, err
	}
	return []byte(w), nil
}

func (c Frames) Decode(b []byte) (string, error) {
	return c.Dialect.Decode(string(b))
}
