package crosstalk

import (
	"errors"
	"fmt"
)

var (
	ErrConfig          = errors.New("crosstalk: invalid configuration")
	ErrUnsupportedChar = errors.New("crosstalk: unsupported character")
	ErrStructure       = errors.New("crosstalk: malformed frame")
	ErrInvariant       = errors.New("crosstalk: frame does not match local language")
	ErrLookup          = errors.New("crosstalk: unknown codeword")
	ErrTooLarge        = errors.New("crosstalk: input too large")
)

// ConfigError is returned at construction. errors.Is(err, ErrConfig) holds.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "crosstalk: invalid configuration: " + e.Reason }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// UnsupportedCharError names the first character Encode could not map.
// Offset is a byte offset into the message.
type UnsupportedCharError struct {
	Char   rune
	Offset int
}

func (e *UnsupportedCharError) Error() string {
	return fmt.Sprintf("crosstalk: unsupported character %q at offset %d", e.Char, e.Offset)
}
func (e *UnsupportedCharError) Is(target error) bool { return target == ErrUnsupportedChar }

// StructureError means the input is not shaped like a frame.
// Err carries the wire level cause when there is one.
type StructureError struct {
	Reason string
	Err    error
}

func (e *StructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crosstalk: malformed frame: %s: %v", e.Reason, e.Err)
	}
	return "crosstalk: malformed frame: " + e.Reason
}

func (e *StructureError) Is(target error) bool { return target == ErrStructure }
func (e *StructureError) Unwrap() error         { return e.Err }

// InvariantError means translation succeeded but the result is not a frame
// in the local language.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "crosstalk: frame does not match local language: " + e.Reason
}
func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }

// LookupError is a body chunk with no decode table entry. Index counts
// codewords from the start of the body.
type LookupError struct {
	Codeword string
	Index    int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("crosstalk: unknown codeword %q at position %d", e.Codeword, e.Index)
}
func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// errKind names the class of a decode failure for hooks.
func errKind(err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrStructure):
		return "structure"
	case errors.Is(err, ErrInvariant):
		return "invariant"
	case errors.Is(err, ErrLookup):
		return "lookup"
	default:
		return "unknown"
	}
}
