package crosstalk

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking: IsEncoded calls Rejected
// on every malformed input.
type Hooks interface {
	// Input failed the fast shape check.
	// reason ∈ {"too_large", "too_short", "frame_pattern", "body_length"}
	Rejected(reason string)

	// A frame announced in a foreign language was rewritten to the local one.
	// from and to are language fingerprints.
	Translated(from, to string)

	// Decode failed after the input was accepted for decoding.
	// kind ∈ {"too_large", "structure", "invariant", "lookup"}
	DecodeFailed(kind string, err error)

	// The relay refused a post. reason ∈ {"not_encoded", "too_large", "store_pressure"}
	RelayRejected(channel, reason string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Rejected(string)              {}
func (NopHooks) Translated(string, string)    {}
func (NopHooks) DecodeFailed(string, error)   {}
func (NopHooks) RelayRejected(string, string) {}
