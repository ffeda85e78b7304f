package crosstalk

// Dialect is the codec surface collaborators depend on.
// *Translator implements it.
type Dialect interface {
	Language() Language
	Encode(message string) (string, error)
	Decode(wireText string) (string, error)
	IsEncoded(wireText string) bool
}

// Options configure a Translator. Only Language is required.
type Options struct {
	// Required
	Language Language

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// MaxSymbols caps the rune length of wire input accepted by Decode and
	// IsEncoded. 0 => 1<<20, negative => no cap.
	MaxSymbols int
}

var _ Dialect = (*Translator)(nil)

// New builds a Translator. It fails with a *ConfigError when the language
// repeats a symbol, uses the separator, or leaves a symbol unset.
func New(opts Options) (*Translator, error) {
	return newTranslator(opts)
}

// MustNew is like New but panics on error.
func MustNew(l Language) *Translator {
	t, err := New(Options{Language: l})
	if err != nil {
		panic(err)
	}
	return t
}
