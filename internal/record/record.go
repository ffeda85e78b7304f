package record

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version  byte = 1
	kindPost byte = 1
	hdrLen        = 4 + 1 + 1 + 8 + 4
)

var (
	ErrCorrupt = errors.New("crosstalk: corrupt relay record")
	magic4     = [...]byte{'X', 'T', 'L', 'K'}
)

// Post: magic(4) | ver(1) | kind(1=post) | seq(u64 be) | plen(u32 be) | payload(plen)
//
// seq is repeated in the storage key; Decode callers compare both to detect
// records written under the wrong key.
func Encode(seq uint64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindPost)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], seq)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode returns a payload slice aliasing b. Trailing bytes are corruption.
func Decode(b []byte) (seq uint64, payload []byte, err error) {
	if len(b) < hdrLen || !bytes.Equal(b[:4], magic4[:]) || b[4] != version || b[5] != kindPost {
		return 0, nil, ErrCorrupt
	}
	seq = binary.BigEndian.Uint64(b[6:14])
	plen := int(binary.BigEndian.Uint32(b[14:18]))
	if plen < 0 || plen != len(b)-hdrLen {
		return 0, nil, ErrCorrupt
	}
	return seq, b[hdrLen:], nil
}
