package crosstalk

// Wire input above this many runes is refused when Options.MaxSymbols is unset.
const defaultMaxSymbols = 1 << 20

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// maxSymbols resolves Options.MaxSymbols: 0 picks the default, negative
// disables the cap (reported as 0).
func maxSymbols(v int) int {
	if v < 0 {
		return 0
	}
	return coalesce(v, defaultMaxSymbols)
}
