package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// SchemaType is the only schema language stored so far.
const SchemaType = "ShExC"

// persistedSchema is the serialization version 3.0 document. Field order is
// the order written to disk.
type persistedSchema struct {
	ID                   string              `json:"id"`
	SerializationVersion string              `json:"serializationVersion"`
	Labels               map[string]string   `json:"labels"`
	Descriptions         map[string]string   `json:"descriptions"`
	Aliases              map[string][]string `json:"aliases"`
	SchemaText           string              `json:"schemaText"`
	Type                 string              `json:"type"`
}

// Encoder validates schema data and serializes it to persisted JSON.
type Encoder struct {
	languages          types.LanguageValidator
	maxNameBadgeChars  int
	maxSchemaTextBytes int
}

// NewEncoder returns an Encoder that accepts language codes approved by
// languages, name badge values of at most maxNameBadgeChars characters, and
// schema text of at most maxSchemaTextBytes bytes.
func NewEncoder(languages types.LanguageValidator, maxNameBadgeChars, maxSchemaTextBytes int) *Encoder {
	return &Encoder{
		languages:          languages,
		maxNameBadgeChars:  maxNameBadgeChars,
		maxSchemaTextBytes: maxSchemaTextBytes,
	}
}

// Encode validates the values, cleans them and returns the persisted JSON.
// Validation failures wrap types.ErrInvalidArgument.
func (e *Encoder) Encode(
	id types.SchemaID,
	labels, descriptions map[string]string,
	aliases map[string][]string,
	schemaText string,
) (string, error) {
	if err := e.validate(labels, descriptions, aliases, schemaText); err != nil {
		return "", err
	}

	labels, descriptions, aliases, schemaText = CleanupParameters(labels, descriptions, aliases, schemaText)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(persistedSchema{
		ID:                   id.String(),
		SerializationVersion: CurrentVersion.String(),
		Labels:               labels,
		Descriptions:         descriptions,
		Aliases:              aliases,
		SchemaText:           schemaText,
		Type:                 SchemaType,
	})
	if err != nil {
		return "", fmt.Errorf("encoding schema %s: %w", id, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// EncodePersistence encodes a write-back record.
func (e *Encoder) EncodePersistence(id types.SchemaID, data types.PersistenceSchemaData) (string, error) {
	return e.Encode(id, data.Labels, data.Descriptions, data.Aliases, data.SchemaText)
}

// EncodeRaw is Encode for values decoded from request JSON. Labels and
// descriptions must be objects of strings, aliases an object of string
// arrays, and schemaText a string; nil stands for an empty value.
func (e *Encoder) EncodeRaw(id types.SchemaID, labels, descriptions, aliases, schemaText any) (string, error) {
	l, err := rawStringMap(labels)
	if err != nil {
		return "", err
	}
	d, err := rawStringMap(descriptions)
	if err != nil {
		return "", err
	}
	a, err := rawAliasGroups(aliases)
	if err != nil {
		return "", err
	}
	text := ""
	if schemaText != nil {
		s, ok := schemaText.(string)
		if !ok {
			return "", errWrongTypes
		}
		text = s
	}
	return e.Encode(id, l, d, a, text)
}

var (
	errWrongTypes = fmt.Errorf("%w: labels, descriptions and schema text must be strings and aliases must be lists of strings",
		types.ErrInvalidArgument)
	errAliasesNotList = fmt.Errorf("%w: aliases must be sequential lists of strings", types.ErrInvalidArgument)
)

func rawStringMap(v any) (map[string]string, error) {
	if v == nil {
		return map[string]string{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errWrongTypes
	}
	out := make(map[string]string, len(m))
	for lang, value := range m {
		s, ok := value.(string)
		if !ok {
			return nil, errWrongTypes
		}
		out[lang] = s
	}
	return out, nil
}

func rawAliasGroups(v any) (map[string][]string, error) {
	if v == nil {
		return map[string][]string{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errWrongTypes
	}
	out := make(map[string][]string, len(m))
	for lang, value := range m {
		list, ok := value.([]any)
		if !ok {
			if _, isMap := value.(map[string]any); isMap {
				return nil, errAliasesNotList
			}
			return nil, errWrongTypes
		}
		group := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, errWrongTypes
			}
			group = append(group, s)
		}
		out[lang] = group
	}
	return out, nil
}

func (e *Encoder) validate(
	labels, descriptions map[string]string,
	aliases map[string][]string,
	schemaText string,
) error {
	if err := e.validateLanguageCodes(labels, descriptions, aliases); err != nil {
		return err
	}
	if err := e.validateNameBadgeLengths(labels, descriptions, aliases); err != nil {
		return err
	}
	if len(schemaText) > e.maxSchemaTextBytes {
		return fmt.Errorf("%w: schema text is longer than the allowed max of %d bytes",
			types.ErrInvalidArgument, e.maxSchemaTextBytes)
	}
	return nil
}

func (e *Encoder) validateLanguageCodes(
	labels, descriptions map[string]string,
	aliases map[string][]string,
) error {
	codes := slices.Concat(
		slices.Collect(maps.Keys(labels)),
		slices.Collect(maps.Keys(descriptions)),
		slices.Collect(maps.Keys(aliases)),
	)
	slices.Sort(codes)
	for _, code := range codes {
		if !e.languages.IsSupported(code) {
			return fmt.Errorf("%w: language codes must be valid (got %q)", types.ErrInvalidArgument, code)
		}
	}
	return nil
}

func (e *Encoder) validateNameBadgeLengths(
	labels, descriptions map[string]string,
	aliases map[string][]string,
) error {
	texts := slices.Concat(slices.Collect(maps.Values(labels)), slices.Collect(maps.Values(descriptions)))
	for _, group := range aliases {
		texts = append(texts, strings.Join(group, ""))
	}
	for _, text := range texts {
		if utf8.RuneCountInString(text) > e.maxNameBadgeChars {
			return fmt.Errorf("%w: identifying information is longer than the allowed max of %d characters",
				types.ErrInvalidArgument, e.maxNameBadgeChars)
		}
	}
	return nil
}
