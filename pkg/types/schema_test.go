package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "current prefix", input: "E1"},
		{name: "multi digit", input: "E12345"},
		{name: "legacy prefix", input: "O7"},
		{name: "empty", input: "", wantErr: true},
		{name: "leading zero", input: "E012", wantErr: true},
		{name: "lower case prefix", input: "e1", wantErr: true},
		{name: "wrong prefix", input: "Q42", wantErr: true},
		{name: "prefix only", input: "E", wantErr: true},
		{name: "trailing text", input: "E1x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewSchemaID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchemaID)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestFullArraySchemaDataClone(t *testing.T) {
	orig := FullArraySchemaData{
		Labels:       map[string]string{"en": "cat"},
		Descriptions: map[string]string{"de": "Katze"},
		Aliases:      map[string][]string{"en": {"kitty", "feline"}},
		SchemaText:   "<cat> {}",
	}

	clone := orig.Clone()
	require.True(t, orig.Equal(clone))

	clone.Labels["en"] = "dog"
	clone.Aliases["en"][0] = "puppy"
	clone.Descriptions["fr"] = "chat"

	assert.Equal(t, "cat", orig.Labels["en"])
	assert.Equal(t, "kitty", orig.Aliases["en"][0])
	assert.NotContains(t, orig.Descriptions, "fr")
}

func TestFullArraySchemaDataEqualTreatsNilAsEmpty(t *testing.T) {
	assert.True(t, FullArraySchemaData{}.Equal(NewFullArraySchemaData()))
	assert.False(t, FullArraySchemaData{SchemaText: "a"}.Equal(NewFullArraySchemaData()))
}

func TestFullArraySchemaDataLanguages(t *testing.T) {
	d := FullArraySchemaData{
		Labels:       map[string]string{"en": "a", "de": "b"},
		Descriptions: map[string]string{"fr": "c"},
		Aliases:      map[string][]string{"en": {"x"}, "ar": {"y"}},
	}
	assert.Equal(t, []string{"ar", "de", "en", "fr"}, d.Languages())
}

func TestSetNameBadge(t *testing.T) {
	var d FullArraySchemaData
	d.SetNameBadge("en", NameBadge{Label: "cat", Aliases: []string{"kitty"}})

	assert.Equal(t, map[string]string{"en": "cat"}, d.Labels)
	assert.Empty(t, d.Descriptions)
	assert.Equal(t, []string{"kitty"}, d.Aliases["en"])

	d.SetNameBadge("en", NameBadge{Description: "a small feline"})
	assert.NotContains(t, d.Labels, "en", "empty label removes the entry")
	assert.NotContains(t, d.Aliases, "en", "empty aliases remove the group")
	assert.Equal(t, "a small feline", d.Descriptions["en"])
}

func TestNameBadgeAccessorReturnsCopy(t *testing.T) {
	d := FullArraySchemaData{Aliases: map[string][]string{"en": {"a"}}}
	badge := d.NameBadge("en")
	badge.Aliases[0] = "b"
	assert.Equal(t, "a", d.Aliases["en"][0])

	assert.True(t, d.NameBadge("de").IsEmpty())
}

func TestPersistenceRoundTrip(t *testing.T) {
	d := FullArraySchemaData{
		Labels:     map[string]string{"en": "cat"},
		Aliases:    map[string][]string{"en": {"kitty"}},
		SchemaText: "text",
	}
	p := d.ToPersistence()
	assert.Equal(t, "text", p.SchemaText)
	assert.True(t, d.Equal(p.ToFullArray()))
}
