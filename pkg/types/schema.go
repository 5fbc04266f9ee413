package types

import (
	"maps"
	"regexp"
	"slices"
)

// Schema ID prefixes. Current schemas use E; O is kept for legacy data.
const (
	SchemaIDPrefix       = "E"
	LegacySchemaIDPrefix = "O"
)

var schemaIDPattern = regexp.MustCompile(`^[EO][1-9][0-9]*$`)

// SchemaID identifies a schema, e.g. "E42".
type SchemaID string

// NewSchemaID validates s and returns it as a SchemaID.
// Returns ErrInvalidSchemaID if s does not match the ID pattern.
func NewSchemaID(s string) (SchemaID, error) {
	if !schemaIDPattern.MatchString(s) {
		return "", ErrInvalidSchemaID
	}
	return SchemaID(s), nil
}

// String returns the ID text.
func (id SchemaID) String() string { return string(id) }

// NameBadge is the label, description and aliases of a schema in one language.
type NameBadge struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
}

// IsEmpty reports whether the badge carries no label, description or alias.
func (b NameBadge) IsEmpty() bool {
	return b.Label == "" && b.Description == "" && len(b.Aliases) == 0
}

// FullArraySchemaData is the flat, diffable representation of a schema.
// A language appears in a map only when its value is non-empty; the converter
// enforces that, the type does not.
type FullArraySchemaData struct {
	Labels       map[string]string   `json:"labels"`
	Descriptions map[string]string   `json:"descriptions"`
	Aliases      map[string][]string `json:"aliases"`
	SchemaText   string              `json:"schemaText"`
}

// NewFullArraySchemaData returns data with all maps allocated.
func NewFullArraySchemaData() FullArraySchemaData {
	return FullArraySchemaData{
		Labels:       map[string]string{},
		Descriptions: map[string]string{},
		Aliases:      map[string][]string{},
	}
}

// Clone returns a deep copy. Nil maps in d come back allocated.
func (d FullArraySchemaData) Clone() FullArraySchemaData {
	out := NewFullArraySchemaData()
	maps.Copy(out.Labels, d.Labels)
	maps.Copy(out.Descriptions, d.Descriptions)
	for lang, group := range d.Aliases {
		out.Aliases[lang] = slices.Clone(group)
	}
	out.SchemaText = d.SchemaText
	return out
}

// Equal reports whether d and other hold the same data. Nil and empty maps
// compare equal.
func (d FullArraySchemaData) Equal(other FullArraySchemaData) bool {
	if d.SchemaText != other.SchemaText {
		return false
	}
	if !maps.Equal(d.Labels, other.Labels) || !maps.Equal(d.Descriptions, other.Descriptions) {
		return false
	}
	return maps.EqualFunc(d.Aliases, other.Aliases, func(a, b []string) bool {
		return slices.Equal(a, b)
	})
}

// Languages returns the sorted union of language codes used in labels,
// descriptions and aliases.
func (d FullArraySchemaData) Languages() []string {
	seen := make(map[string]bool)
	for lang := range d.Labels {
		seen[lang] = true
	}
	for lang := range d.Descriptions {
		seen[lang] = true
	}
	for lang := range d.Aliases {
		seen[lang] = true
	}
	return slices.Sorted(maps.Keys(seen))
}

// NameBadge returns the badge for lang; missing values come back empty.
func (d FullArraySchemaData) NameBadge(lang string) NameBadge {
	return NameBadge{
		Label:       d.Labels[lang],
		Description: d.Descriptions[lang],
		Aliases:     slices.Clone(d.Aliases[lang]),
	}
}

// SetNameBadge replaces the badge for lang. Empty values remove the
// corresponding entry so maps only hold non-empty values.
func (d *FullArraySchemaData) SetNameBadge(lang string, badge NameBadge) {
	if d.Labels == nil {
		d.Labels = map[string]string{}
	}
	if d.Descriptions == nil {
		d.Descriptions = map[string]string{}
	}
	if d.Aliases == nil {
		d.Aliases = map[string][]string{}
	}
	setOrDelete(d.Labels, lang, badge.Label)
	setOrDelete(d.Descriptions, lang, badge.Description)
	if len(badge.Aliases) == 0 {
		delete(d.Aliases, lang)
	} else {
		d.Aliases[lang] = slices.Clone(badge.Aliases)
	}
}

// ToPersistence converts d to the write-back record.
func (d FullArraySchemaData) ToPersistence() PersistenceSchemaData {
	c := d.Clone()
	return PersistenceSchemaData{
		Labels:       c.Labels,
		Descriptions: c.Descriptions,
		Aliases:      c.Aliases,
		SchemaText:   c.SchemaText,
	}
}

func setOrDelete(m map[string]string, key, value string) {
	if value == "" {
		delete(m, key)
		return
	}
	m[key] = value
}

// FullViewSchemaData groups schema data by language for display. Every
// requested language has an entry, possibly with all fields empty.
type FullViewSchemaData struct {
	NameBadges map[string]NameBadge `json:"nameBadges"`
	SchemaText string               `json:"schemaText"`
}

// PersistenceSchemaData is the flat record rewritten through the encoder.
type PersistenceSchemaData struct {
	Labels       map[string]string   `json:"labels"`
	Descriptions map[string]string   `json:"descriptions"`
	Aliases      map[string][]string `json:"aliases"`
	SchemaText   string              `json:"schemaText"`
}

// ToFullArray converts the record back to the diffable shape.
func (p PersistenceSchemaData) ToFullArray() FullArraySchemaData {
	return FullArraySchemaData{
		Labels:       p.Labels,
		Descriptions: p.Descriptions,
		Aliases:      p.Aliases,
		SchemaText:   p.SchemaText,
	}.Clone()
}
