// Package codec serialises values to bytes for storage and exchange:
// codebooks shared between parties, relay envelopes, and framed messages.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
