package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/unkn0wn-root/crosstalk"
)

// Protobuf serialises any proto.Message. ctor returns an empty message to
// decode into, e.g. func() *structpb.Struct { return &structpb.Struct{} }.
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// CodebookProto carries a codebook as a well-known structpb.Struct so peers
// without generated types can still read it.
type CodebookProto struct {
	inner Protobuf[*structpb.Struct]
}

var _ Codec[crosstalk.Codebook] = CodebookProto{}

func NewCodebookProto() CodebookProto {
	return CodebookProto{inner: NewProtobuf(func() *structpb.Struct { return &structpb.Struct{} })}
}

func (c CodebookProto) Encode(cb crosstalk.Codebook) ([]byte, error) {
	s, err := CodebookToStruct(cb)
	if err != nil {
		return nil, err
	}
	return c.inner.Encode(s)
}

func (c CodebookProto) Decode(b []byte) (crosstalk.Codebook, error) {
	s, err := c.inner.Decode(b)
	if err != nil {
		return crosstalk.Codebook{}, err
	}
	return CodebookFromStruct(s)
}

func CodebookToStruct(cb crosstalk.Codebook) (*structpb.Struct, error) {
	entries := make([]any, 0, len(cb.Entries))
	for _, e := range cb.Entries {
		entries = append(entries, map[string]any{"char": e.Char, "codeword": e.Codeword})
	}
	return structpb.NewStruct(map[string]any{
		"language": cb.Language,
		"head":     cb.Head,
		"tail":     cb.Tail,
		"entries":  entries,
	})
}

func CodebookFromStruct(s *structpb.Struct) (crosstalk.Codebook, error) {
	f := s.GetFields()
	cb := crosstalk.Codebook{
		Language: f["language"].GetStringValue(),
		Head:     f["head"].GetStringValue(),
		Tail:     f["tail"].GetStringValue(),
	}
	list := f["entries"].GetListValue().GetValues()
	cb.Entries = make([]crosstalk.Entry, 0, len(list))
	for i, v := range list {
		ef := v.GetStructValue().GetFields()
		if ef == nil {
			return crosstalk.Codebook{}, fmt.Errorf("codec: codebook entry %d is not a struct", i)
		}
		cb.Entries = append(cb.Entries, crosstalk.Entry{
			Char:     ef["char"].GetStringValue(),
			Codeword: ef["codeword"].GetStringValue(),
		})
	}
	return cb, nil
}
