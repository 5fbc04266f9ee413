// Package language decides which language codes may key schema labels,
// descriptions and aliases.
package language

import (
	"bufio"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	xlanguage "golang.org/x/text/language"
)

//go:embed languages.txt
var builtinCodes string

// Registry is a fixed set of supported language codes. The zero value
// supports nothing.
type Registry struct {
	codes map[string]bool
}

// NewRegistry returns a registry holding the built-in codes plus extra.
// Extra codes must be well-formed BCP 47 tags; they are stored lower-cased.
func NewRegistry(extra ...string) (*Registry, error) {
	r := &Registry{codes: make(map[string]bool)}

	scanner := bufio.NewScanner(strings.NewReader(builtinCodes))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.codes[line] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading built-in language codes: %w", err)
	}

	for _, code := range extra {
		if _, err := xlanguage.Parse(code); err != nil {
			return nil, fmt.Errorf("extra language %q: %w", code, err)
		}
		r.codes[strings.ToLower(code)] = true
	}
	return r, nil
}

// IsSupported reports whether code is in the registry. Codes are
// case-sensitive; stored codes are lower case.
func (r *Registry) IsSupported(code string) bool {
	return r.codes[code]
}

// Codes returns all supported codes in ascending order.
func (r *Registry) Codes() []string {
	out := make([]string, 0, len(r.codes))
	for code := range r.codes {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}
