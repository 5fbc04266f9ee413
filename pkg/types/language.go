package types

// LanguageValidator decides whether a language code may key labels,
// descriptions and aliases.
type LanguageValidator interface {
	IsSupported(code string) bool
}

// LanguageFunc adapts a plain predicate to LanguageValidator.
type LanguageFunc func(code string) bool

// IsSupported calls f(code).
func (f LanguageFunc) IsSupported(code string) bool { return f(code) }
