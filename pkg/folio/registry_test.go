package folio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio"
)

func TestDefaultRegistryTypes(t *testing.T) {
	reg := folio.DefaultRegistry()

	expected := []string{
		folio.SectionTypeStarMemo,
		folio.SectionTypeProjectShowcase,
		folio.SectionTypeCertifications,
		folio.SectionTypeWorkTimeline,
		folio.SectionTypeTestimonials,
		folio.SectionTypeCustom,
	}
	assert.Equal(t, expected, reg.Types())

	// Types order is stable across calls
	assert.Equal(t, reg.Types(), reg.Types())
}

func TestRegistryGet(t *testing.T) {
	reg := folio.DefaultRegistry()

	t.Run("known type", func(t *testing.T) {
		desc := reg.Get(folio.SectionTypeStarMemo)
		require.NotNil(t, desc)
		assert.Equal(t, folio.SectionTypeStarMemo, desc.Type)
		assert.Equal(t, []string{"situation", "task", "action", "result"}, desc.Fields)
		for _, name := range desc.Fields {
			cfg, ok := desc.Template[name]
			require.True(t, ok, "field %q missing from template", name)
			assert.True(t, cfg.Required, "field %q should be required", name)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		assert.Nil(t, reg.Get("does-not-exist"))
	})

	t.Run("custom type has no fields", func(t *testing.T) {
		desc := reg.Get(folio.SectionTypeCustom)
		require.NotNil(t, desc)
		assert.Empty(t, desc.Fields)
	})

	t.Run("testimonials caps entries", func(t *testing.T) {
		desc := reg.Get(folio.SectionTypeTestimonials)
		require.NotNil(t, desc)
		assert.Equal(t, 12, desc.MaxEntries)
	})
}

func TestRegistryDescriptorSnapshot(t *testing.T) {
	reg := folio.DefaultRegistry()
	desc := reg.Get(folio.SectionTypeProjectShowcase)
	require.NotNil(t, desc)

	content := desc.NewContent()
	assert.Equal(t, desc.Fields, content.Fields)
	assert.Equal(t, desc.Version, content.Version)
	assert.NotNil(t, content.Entries)
	assert.Empty(t, content.Entries)

	// The snapshot is independent of the descriptor
	content.Fields[0] = "mutated"
	content.Template["title"] = folio.FieldConfig{Label: "Mutated"}
	fresh := desc.NewContent()
	assert.Equal(t, "title", fresh.Fields[0])
	assert.Equal(t, "Title", fresh.Template["title"].Label)
}

func TestNewRegistryOrderAndOverride(t *testing.T) {
	a := &folio.TemplateDescriptor{Type: "a", Name: "A"}
	b := &folio.TemplateDescriptor{Type: "b", Name: "B"}
	a2 := &folio.TemplateDescriptor{Type: "a", Name: "A v2"}

	reg := folio.NewRegistry(a, b, a2)

	assert.Equal(t, []string{"a", "b"}, reg.Types())
	require.NotNil(t, reg.Get("a"))
	assert.Equal(t, "A v2", reg.Get("a").Name)
}
