package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/crosstalk"
	"github.com/unkn0wn-root/crosstalk/internal/util"
)

// CBOR serialises with fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// With deterministic=true the encoding is RFC 8949 Core Deterministic, so two
// parties exporting the same codebook get identical bytes and can compare
// digests instead of full tables. Otherwise PreferredUnsortedEncOptions are used.
// Time values (relay envelopes) are encoded as RFC3339Nano.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[struct{}] = CBOR[struct{}]{}

func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano
	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	// Duplicate map keys would let two encodings of one codebook disagree.
	dm, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) { return c.enc.Marshal(v) }

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.dec.Unmarshal(b, &v)
	return v, err
}

var codebookCBOR = MustCBOR[crosstalk.Codebook](true)

// CodebookDigest fingerprints the deterministic CBOR form of cb. Two peers
// holding the same table get the same digest.
func CodebookDigest(cb crosstalk.Codebook) (string, error) {
	b, err := codebookCBOR.Encode(cb)
	if err != nil {
		return "", err
	}
	return util.Fingerprint("cb", string(b)), nil
}
