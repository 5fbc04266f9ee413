package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// document holds the fields shared by every serialization version. The
// name badge fields stay raw until the version is known.
type document struct {
	ID                   *string         `json:"id"`
	SerializationVersion *string         `json:"serializationVersion"`
	Labels               json.RawMessage `json:"labels"`
	Descriptions         json.RawMessage `json:"descriptions"`
	Aliases              json.RawMessage `json:"aliases"`
	Schema               string          `json:"schema"`
	SchemaText           string          `json:"schemaText"`
}

// termV1 is a version 1.0 label, description or alias.
type termV1 struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// parsedSchema is a persisted document normalized across versions.
type parsedSchema struct {
	id           string
	hasID        bool
	labels       map[string]string
	descriptions map[string]string
	aliases      map[string][]string
	schemaText   string
}

func parse(content string) (*parsedSchema, error) {
	var doc document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedContent, err)
	}

	tag := ""
	if doc.SerializationVersion != nil {
		tag = *doc.SerializationVersion
	}
	version, err := ParseSerializationVersion(tag)
	if err != nil {
		return nil, err
	}

	p := &parsedSchema{
		labels:       map[string]string{},
		descriptions: map[string]string{},
		aliases:      map[string][]string{},
	}
	if doc.ID != nil {
		p.id, p.hasID = *doc.ID, true
	}

	switch version {
	case Version1:
		err = p.decodeV1(&doc)
		p.schemaText = doc.Schema
	case Version2:
		err = p.decodeFlat(&doc)
		p.schemaText = doc.Schema
	case Version3:
		err = p.decodeFlat(&doc)
		p.schemaText = doc.SchemaText
	default:
		err = fmt.Errorf("%w: %s", types.ErrUnknownSerializationVersion, version)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parsedSchema) decodeV1(doc *document) error {
	var labels, descriptions map[string]termV1
	var aliases map[string][]termV1
	if err := decodeObject(doc.Labels, &labels); err != nil {
		return err
	}
	if err := decodeObject(doc.Descriptions, &descriptions); err != nil {
		return err
	}
	if err := decodeObject(doc.Aliases, &aliases); err != nil {
		return err
	}
	for lang, term := range labels {
		p.labels[lang] = term.Value
	}
	for lang, term := range descriptions {
		p.descriptions[lang] = term.Value
	}
	for lang, terms := range aliases {
		group := make([]string, 0, len(terms))
		for _, term := range terms {
			group = append(group, term.Value)
		}
		p.aliases[lang] = group
	}
	return nil
}

func (p *parsedSchema) decodeFlat(doc *document) error {
	if err := decodeObject(doc.Labels, &p.labels); err != nil {
		return err
	}
	if err := decodeObject(doc.Descriptions, &p.descriptions); err != nil {
		return err
	}
	return decodeObject(doc.Aliases, &p.aliases)
}

// decodeObject unmarshals a JSON object into v. A missing field, null, or
// an empty array (how older writers stored empty maps) leaves v untouched.
func decodeObject(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrMalformedContent, err)
	}
	return nil
}

// fullArray keeps only non-empty values.
func (p *parsedSchema) fullArray() types.FullArraySchemaData {
	out := types.NewFullArraySchemaData()
	for lang, label := range p.labels {
		if label != "" {
			out.Labels[lang] = label
		}
	}
	for lang, description := range p.descriptions {
		if description != "" {
			out.Descriptions[lang] = description
		}
	}
	for lang, group := range p.aliases {
		if len(group) > 0 {
			out.Aliases[lang] = slices.Clone(group)
		}
	}
	out.SchemaText = p.schemaText
	return out
}

// FullArray parses content into the flat, diffable representation.
func FullArray(content string) (types.FullArraySchemaData, error) {
	p, err := parse(content)
	if err != nil {
		return types.FullArraySchemaData{}, err
	}
	return p.fullArray(), nil
}

// FullView parses content into one name badge per language. Every language
// in requestedLanguages gets a badge, as does every language with data.
func FullView(content string, requestedLanguages []string) (types.FullViewSchemaData, error) {
	p, err := parse(content)
	if err != nil {
		return types.FullViewSchemaData{}, err
	}
	data := p.fullArray()

	langs := make(map[string]bool)
	for _, lang := range data.Languages() {
		langs[lang] = true
	}
	for _, lang := range requestedLanguages {
		langs[lang] = true
	}

	view := types.FullViewSchemaData{
		NameBadges: make(map[string]types.NameBadge, len(langs)),
		SchemaText: data.SchemaText,
	}
	for _, lang := range slices.Sorted(maps.Keys(langs)) {
		view.NameBadges[lang] = badgeFor(data, lang)
	}
	return view, nil
}

// MonolingualNameBadge returns the badge for a single language, all empty
// when the schema has no data in that language.
func MonolingualNameBadge(content, lang string) (types.NameBadge, error) {
	p, err := parse(content)
	if err != nil {
		return types.NameBadge{}, err
	}
	return badgeFor(p.fullArray(), lang), nil
}

// Persistence parses content into the write-back record.
func Persistence(content string) (types.PersistenceSchemaData, error) {
	p, err := parse(content)
	if err != nil {
		return types.PersistenceSchemaData{}, err
	}
	return p.fullArray().ToPersistence(), nil
}

// SchemaText returns the schema text of content.
func SchemaText(content string) (string, error) {
	p, err := parse(content)
	if err != nil {
		return "", err
	}
	return p.schemaText, nil
}

// SchemaID returns the ID stored in content. ok is false when the document
// has no id field.
func SchemaID(content string) (id types.SchemaID, ok bool, err error) {
	p, err := parse(content)
	if err != nil {
		return "", false, err
	}
	return types.SchemaID(p.id), p.hasID, nil
}

// badgeFor never returns nil aliases so views serialize as [].
func badgeFor(data types.FullArraySchemaData, lang string) types.NameBadge {
	badge := data.NameBadge(lang)
	if badge.Aliases == nil {
		badge.Aliases = []string{}
	}
	return badge
}
