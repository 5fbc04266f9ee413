package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

func TestRegistryBuiltinCodes(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	var v types.LanguageValidator = r
	for _, code := range []string{"en", "de", "fr", "ja", "zh-hans", "be-tarask", "pt-br"} {
		assert.True(t, v.IsSupported(code), code)
	}
	for _, code := range []string{"", "xx-notreal", "EN", "# Language codes accepted for labels, descriptions and aliases."} {
		assert.False(t, v.IsSupported(code), code)
	}
}

func TestRegistryExtraCodes(t *testing.T) {
	r, err := NewRegistry("en-AU", "fr-CA")
	require.NoError(t, err)
	assert.True(t, r.IsSupported("en-au"))
	assert.True(t, r.IsSupported("fr-ca"))
}

func TestRegistryRejectsMalformedExtraCodes(t *testing.T) {
	_, err := NewRegistry("not a language")
	assert.Error(t, err)
}

func TestRegistryCodesSorted(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	codes := r.Codes()
	assert.IsIncreasing(t, codes)
	assert.Contains(t, codes, "en")
}

func TestZeroRegistrySupportsNothing(t *testing.T) {
	var r Registry
	assert.False(t, r.IsSupported("en"))
}
