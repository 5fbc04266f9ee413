package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

const (
	docV1 = `{
		"id": "O1",
		"serializationVersion": "1.0",
		"labels": {"en": {"language": "en", "value": "cat"}, "de": {"language": "de", "value": ""}},
		"descriptions": {"de": {"language": "de", "value": "Katze"}},
		"aliases": {"en": [{"language": "en", "value": "kitty"}, {"language": "en", "value": "feline"}]},
		"schema": "<cat> {}"
	}`

	docV2 = `{
		"id": "E2",
		"serializationVersion": "2.0",
		"labels": {"en": "cat"},
		"descriptions": {"de": "Katze"},
		"aliases": {"en": ["kitty", "feline"], "fr": []},
		"schema": "<cat> {}",
		"type": "ShExC"
	}`

	docV3 = `{
		"id": "E3",
		"serializationVersion": "3.0",
		"labels": {"en": "cat"},
		"descriptions": {"de": "Katze"},
		"aliases": {"en": ["kitty", "feline"]},
		"schemaText": "<cat> {}",
		"type": "ShExC"
	}`
)

func expectedCat() types.FullArraySchemaData {
	return types.FullArraySchemaData{
		Labels:       map[string]string{"en": "cat"},
		Descriptions: map[string]string{"de": "Katze"},
		Aliases:      map[string][]string{"en": {"kitty", "feline"}},
		SchemaText:   "<cat> {}",
	}
}

func TestFullArrayAcrossVersions(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "version 1.0 term objects", content: docV1},
		{name: "version 2.0 schema field", content: docV2},
		{name: "version 3.0 schemaText field", content: docV3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FullArray(tt.content)
			require.NoError(t, err)
			assert.Equal(t, expectedCat(), got)
		})
	}
}

func TestFullArrayAcceptsEmptyArraysForMaps(t *testing.T) {
	got, err := FullArray(`{"id":"E9","serializationVersion":"3.0","labels":[],"descriptions":[],"aliases":[],"schemaText":"","type":"ShExC"}`)
	require.NoError(t, err)
	assert.True(t, got.Equal(types.NewFullArraySchemaData()))
}

func TestUnknownSerializationVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "future version", content: `{"serializationVersion":"9.9","labels":{"en":"cat"}}`},
		{name: "missing version", content: `{"labels":{"en":"cat"}}`},
		{name: "empty version", content: `{"serializationVersion":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FullArray(tt.content)
			assert.ErrorIs(t, err, types.ErrUnknownSerializationVersion)
			assert.Equal(t, types.FullArraySchemaData{}, got, "no partial result")

			_, err = FullView(tt.content, []string{"en"})
			assert.ErrorIs(t, err, types.ErrUnknownSerializationVersion)
			_, err = MonolingualNameBadge(tt.content, "en")
			assert.ErrorIs(t, err, types.ErrUnknownSerializationVersion)
			_, err = Persistence(tt.content)
			assert.ErrorIs(t, err, types.ErrUnknownSerializationVersion)
			_, err = SchemaText(tt.content)
			assert.ErrorIs(t, err, types.ErrUnknownSerializationVersion)
			_, _, err = SchemaID(tt.content)
			assert.ErrorIs(t, err, types.ErrUnknownSerializationVersion)
		})
	}
}

func TestMalformedContent(t *testing.T) {
	tests := []string{
		`not json`,
		`{"serializationVersion":"3.0","labels":{"en":5}}`,
		`{"serializationVersion":"3.0","aliases":{"en":"cat"}}`,
		`{"serializationVersion":3}`,
	}
	for _, content := range tests {
		_, err := FullArray(content)
		assert.ErrorIs(t, err, types.ErrMalformedContent, content)
	}
}

func TestFullView(t *testing.T) {
	got, err := FullView(docV3, []string{"fr", "en"})
	require.NoError(t, err)

	assert.Equal(t, "<cat> {}", got.SchemaText)
	assert.Equal(t, map[string]types.NameBadge{
		"de": {Label: "", Description: "Katze", Aliases: []string{}},
		"en": {Label: "cat", Description: "", Aliases: []string{"kitty", "feline"}},
		"fr": {Label: "", Description: "", Aliases: []string{}},
	}, got.NameBadges)
}

func TestFullViewWithoutRequestedLanguages(t *testing.T) {
	got, err := FullView(docV1, nil)
	require.NoError(t, err)
	assert.Len(t, got.NameBadges, 2, "only languages with non-empty data")
	assert.Contains(t, got.NameBadges, "en")
	assert.Contains(t, got.NameBadges, "de")
}

func TestMonolingualNameBadge(t *testing.T) {
	got, err := MonolingualNameBadge(docV2, "en")
	require.NoError(t, err)
	assert.Equal(t, types.NameBadge{Label: "cat", Aliases: []string{"kitty", "feline"}}, got)

	missing, err := MonolingualNameBadge(docV2, "ja")
	require.NoError(t, err)
	assert.Equal(t, types.NameBadge{Aliases: []string{}}, missing)
}

func TestPersistence(t *testing.T) {
	got, err := Persistence(docV1)
	require.NoError(t, err)
	assert.Equal(t, expectedCat().ToPersistence(), got)
}

func TestScalarAccessors(t *testing.T) {
	text, err := SchemaText(docV2)
	require.NoError(t, err)
	assert.Equal(t, "<cat> {}", text)

	id, ok, err := SchemaID(docV1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.SchemaID("O1"), id)

	_, ok, err = SchemaID(`{"serializationVersion":"3.0"}`)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseSerializationVersion(t *testing.T) {
	for _, tag := range []string{"1.0", "2.0", "3.0"} {
		v, err := ParseSerializationVersion(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, v.String())
	}
	_, err := ParseSerializationVersion("3")
	assert.ErrorIs(t, err, types.ErrUnknownSerializationVersion)
}
