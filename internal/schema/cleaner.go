package schema

import (
	"slices"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// trimmable reports whether r belongs to Unicode categories Z*, Cc or Cf.
func trimmable(r rune) bool {
	return unicode.In(r, unicode.Z, unicode.Cc, unicode.Cf)
}

// TrimWhitespaceAndControlChars strips leading and trailing separators,
// control characters and format characters.
func TrimWhitespaceAndControlChars(s string) string {
	return strings.TrimFunc(s, trimmable)
}

// CleanStringMap trims every value and drops entries that end up empty.
// The result is a new map; encoders and iterators order it by key.
func CleanStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for lang, value := range in {
		if v := TrimWhitespaceAndControlChars(value); v != "" {
			out[lang] = v
		}
	}
	return out
}

// CleanupArrayOfStrings trims every element, drops empty ones and removes
// duplicates, keeping the first occurrence.
func CleanupArrayOfStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = TrimWhitespaceAndControlChars(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// CleanAliasGroups cleans each language's aliases and drops languages whose
// group ends up empty.
func CleanAliasGroups(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for lang, group := range in {
		if cleaned := CleanupArrayOfStrings(group); len(cleaned) > 0 {
			out[lang] = cleaned
		}
	}
	return out
}

// CleanupParameters returns cleaned copies of all four schema values. Schema
// text is trimmed but never dropped.
func CleanupParameters(
	labels, descriptions map[string]string,
	aliasGroups map[string][]string,
	schemaText string,
) (map[string]string, map[string]string, map[string][]string, string) {
	return CleanStringMap(labels),
		CleanStringMap(descriptions),
		CleanAliasGroups(aliasGroups),
		TrimWhitespaceAndControlChars(schemaText)
}

// Clean returns a cleaned copy of d.
func Clean(d types.FullArraySchemaData) types.FullArraySchemaData {
	labels, descriptions, aliases, text := CleanupParameters(d.Labels, d.Descriptions, d.Aliases, d.SchemaText)
	return types.FullArraySchemaData{
		Labels:       labels,
		Descriptions: descriptions,
		Aliases:      aliases,
		SchemaText:   text,
	}
}
