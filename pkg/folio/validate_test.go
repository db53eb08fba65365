package folio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio"
)

func TestValidateEntry(t *testing.T) {
	desc := folio.DefaultRegistry().Get(folio.SectionTypeStarMemo)
	require.NotNil(t, desc)

	t.Run("all required fields present", func(t *testing.T) {
		result := folio.ValidateEntry(map[string]any{
			"situation": "incident",
			"task":      "restore service",
			"action":    "rolled back",
			"result":    "resolved in 20m",
		}, desc)
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("missing required field", func(t *testing.T) {
		result := folio.ValidateEntry(map[string]any{
			"situation": "incident",
			"task":      "restore service",
			"action":    "rolled back",
		}, desc)
		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Required field 'result' is missing", result.Errors[0])
	})

	t.Run("errors follow template field order", func(t *testing.T) {
		result := folio.ValidateEntry(map[string]any{}, desc)
		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 4)
		assert.Equal(t, "Required field 'situation' is missing", result.Errors[0])
		assert.Equal(t, "Required field 'result' is missing", result.Errors[3])
	})

	t.Run("empty values count as missing", func(t *testing.T) {
		tests := []struct {
			name  string
			value any
		}{
			{"empty string", ""},
			{"nil", nil},
			{"empty string slice", []string{}},
			{"empty any slice", []any{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				result := folio.ValidateEntry(map[string]any{
					"situation": tt.value,
					"task":      "t",
					"action":    "a",
					"result":    "r",
				}, desc)
				assert.False(t, result.IsValid)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, "Required field 'situation' is missing", result.Errors[0])
			})
		}
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		showcase := folio.DefaultRegistry().Get(folio.SectionTypeProjectShowcase)
		require.NotNil(t, showcase)
		result := folio.ValidateEntry(map[string]any{
			"title":       "folio",
			"description": "portfolio backend",
		}, showcase)
		assert.True(t, result.IsValid)
	})

	t.Run("nil descriptor accepts anything", func(t *testing.T) {
		result := folio.ValidateEntry(map[string]any{}, nil)
		assert.True(t, result.IsValid)
	})
}

func TestValidateContent(t *testing.T) {
	desc := folio.DefaultRegistry().Get(folio.SectionTypeCertifications)
	require.NotNil(t, desc)

	content := desc.NewContent()
	content, _ = folio.AddEntry(content, folio.Entry{Fields: map[string]any{
		"name":   "CKA",
		"issuer": "CNCF",
	}})

	result := folio.ValidateContent(content, desc)
	assert.True(t, result.IsValid)

	content, _ = folio.AddEntry(content, folio.Entry{Fields: map[string]any{
		"name": "incomplete",
	}})

	result = folio.ValidateContent(content, desc)
	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "Required field 'issuer' is missing", result.Errors[0])
}
