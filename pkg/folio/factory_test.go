package folio_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio"
)

func TestBuildSection(t *testing.T) {
	reg := folio.DefaultRegistry()
	ownerID := uuid.New()

	t.Run("builds from descriptor defaults", func(t *testing.T) {
		section, err := folio.BuildSection(reg, ownerID, folio.SectionTypeProjectShowcase, "My Projects", "things I built")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, section.ID)
		assert.Equal(t, ownerID, section.OwnerID)
		assert.Equal(t, "My Projects", section.Title)
		assert.Equal(t, "my-projects", section.Slug)
		assert.Equal(t, folio.SectionTypeProjectShowcase, section.Type)
		assert.Equal(t, folio.LayoutGrid, section.Layout)
		assert.True(t, section.IsPublic)
		assert.Equal(t, int64(1), section.Revision)
		assert.Equal(t, "things I built", section.Description)
		assert.False(t, section.CreatedAt.IsZero())

		// Content is a fresh template snapshot
		assert.Equal(t, []string{"title", "description", "technologies", "repoUrl", "demoUrl", "images"}, section.Content.Fields)
		assert.Empty(t, section.Content.Entries)
	})

	t.Run("private by default unless descriptor says otherwise", func(t *testing.T) {
		section, err := folio.BuildSection(reg, ownerID, folio.SectionTypeStarMemo, "Interview Prep", "")
		require.NoError(t, err)
		assert.False(t, section.IsPublic)
		assert.Equal(t, folio.LayoutList, section.Layout)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := folio.BuildSection(reg, ownerID, "blog-posts", "Blog", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, folio.ErrUnknownSectionType))
		assert.Contains(t, err.Error(), "blog-posts")
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := folio.BuildSection(reg, ownerID, folio.SectionTypeStarMemo, "", "")
		assert.Error(t, err)
	})

	t.Run("sections do not share content", func(t *testing.T) {
		a, err := folio.BuildSection(reg, ownerID, folio.SectionTypeCertifications, "Certs A", "")
		require.NoError(t, err)
		b, err := folio.BuildSection(reg, ownerID, folio.SectionTypeCertifications, "Certs B", "")
		require.NoError(t, err)

		a.Content.Template["name"] = folio.FieldConfig{Label: "Mutated"}
		assert.Equal(t, "Certification", b.Content.Template["name"].Label)
	})
}
