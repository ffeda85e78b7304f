package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serialises with vmihailenco/msgpack/v5. The zero value is ready to use.
// Compact and fast; the default relay envelope codec.
// Use `msgpack:"name"` tags for explicit field names.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
