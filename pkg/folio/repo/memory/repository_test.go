package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio"
	"github.com/folioworks/folio/pkg/folio/repo/memory"
)

func testSection(ownerID uuid.UUID, title string, position int) *folio.Section {
	desc := folio.DefaultRegistry().Get(folio.SectionTypeStarMemo)
	now := time.Now().UTC()
	return &folio.Section{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Slug:      folio.GenerateSlug(title),
		Type:      desc.Type,
		Layout:    desc.Layout,
		Position:  position,
		Revision:  1,
		Content:   desc.NewContent(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSectionCRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	ownerID := uuid.New()

	section := testSection(ownerID, "Stories", 0)
	require.NoError(t, repo.CreateSection(ctx, section))

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetSection(ctx, section.ID)
		require.NoError(t, err)
		assert.Equal(t, section.Title, got.Title)
	})

	t.Run("get by slug", func(t *testing.T) {
		got, err := repo.GetSectionBySlug(ctx, ownerID, "stories")
		require.NoError(t, err)
		assert.Equal(t, section.ID, got.ID)

		_, err = repo.GetSectionBySlug(ctx, uuid.New(), "stories")
		assert.True(t, errors.Is(err, folio.ErrSectionNotFound))
	})

	t.Run("stored copy is isolated", func(t *testing.T) {
		got, err := repo.GetSection(ctx, section.ID)
		require.NoError(t, err)
		got.Title = "mutated"
		got.Content.Fields[0] = "mutated"

		again, err := repo.GetSection(ctx, section.ID)
		require.NoError(t, err)
		assert.Equal(t, "Stories", again.Title)
		assert.Equal(t, "situation", again.Content.Fields[0])
	})

	t.Run("missing section", func(t *testing.T) {
		_, err := repo.GetSection(ctx, uuid.New())
		assert.True(t, errors.Is(err, folio.ErrSectionNotFound))
	})
}

func TestUpdateSectionRevision(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	ownerID := uuid.New()

	section := testSection(ownerID, "Stories", 0)
	require.NoError(t, repo.CreateSection(ctx, section))

	t.Run("matching revision succeeds and bumps", func(t *testing.T) {
		loaded, err := repo.GetSection(ctx, section.ID)
		require.NoError(t, err)

		loaded.Title = "Renamed"
		require.NoError(t, repo.UpdateSection(ctx, loaded))
		assert.Equal(t, int64(2), loaded.Revision)

		stored, err := repo.GetSection(ctx, section.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", stored.Title)
		assert.Equal(t, int64(2), stored.Revision)
	})

	t.Run("stale revision is rejected", func(t *testing.T) {
		stale := testSection(ownerID, "whatever", 0)
		stale.ID = section.ID
		stale.Revision = 1 // stored is now at 2

		err := repo.UpdateSection(ctx, stale)
		assert.True(t, errors.Is(err, folio.ErrRevisionMismatch))
	})

	t.Run("missing section", func(t *testing.T) {
		ghost := testSection(ownerID, "Ghost", 0)
		err := repo.UpdateSection(ctx, ghost)
		assert.True(t, errors.Is(err, folio.ErrSectionNotFound))
	})
}

func TestDeleteAndListSections(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	ownerID := uuid.New()

	first := testSection(ownerID, "First", 1)
	second := testSection(ownerID, "Second", 0)
	other := testSection(uuid.New(), "Other Owner", 0)
	require.NoError(t, repo.CreateSection(ctx, first))
	require.NoError(t, repo.CreateSection(ctx, second))
	require.NoError(t, repo.CreateSection(ctx, other))

	t.Run("list is owner-scoped and position-ordered", func(t *testing.T) {
		sections, err := repo.ListSections(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, sections, 2)
		assert.Equal(t, second.ID, sections[0].ID)
		assert.Equal(t, first.ID, sections[1].ID)
	})

	t.Run("delete hides the section", func(t *testing.T) {
		require.NoError(t, repo.DeleteSection(ctx, first.ID))

		_, err := repo.GetSection(ctx, first.ID)
		assert.True(t, errors.Is(err, folio.ErrSectionNotFound))

		sections, err := repo.ListSections(ctx, ownerID)
		require.NoError(t, err)
		assert.Len(t, sections, 1)

		// Deleting again fails
		err = repo.DeleteSection(ctx, first.ID)
		assert.True(t, errors.Is(err, folio.ErrSectionNotFound))
	})
}

func TestProfileSlugIndex(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	ownerID := uuid.New()
	now := time.Now().UTC()

	profile := &folio.Profile{
		OwnerID:     ownerID,
		DisplayName: "Dana",
		Slug:        "dana",
		IsPublic:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.SaveProfile(ctx, profile))

	got, err := repo.GetProfileBySlug(ctx, "dana")
	require.NoError(t, err)
	assert.Equal(t, ownerID, got.OwnerID)

	// Changing the slug moves the index entry
	profile.Slug = "dana-dev"
	require.NoError(t, repo.SaveProfile(ctx, profile))

	_, err = repo.GetProfileBySlug(ctx, "dana")
	assert.True(t, errors.Is(err, folio.ErrProfileNotFound))

	got, err = repo.GetProfileBySlug(ctx, "dana-dev")
	require.NoError(t, err)
	assert.Equal(t, ownerID, got.OwnerID)

	got, err = repo.GetProfile(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "dana-dev", got.Slug)
}

func TestExperienceOwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	ownerID := uuid.New()
	now := time.Now().UTC()

	exp := &folio.Experience{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Role:      "SRE",
		Company:   "Acme",
		StartDate: "2021-02",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateExperience(ctx, exp))

	t.Run("cross-owner update is rejected", func(t *testing.T) {
		foreign := *exp
		foreign.OwnerID = uuid.New()
		foreign.Role = "Hijacked"
		err := repo.UpdateExperience(ctx, &foreign)
		assert.True(t, errors.Is(err, folio.ErrExperienceNotFound))
	})

	t.Run("cross-owner delete is rejected", func(t *testing.T) {
		err := repo.DeleteExperience(ctx, uuid.New(), exp.ID)
		assert.True(t, errors.Is(err, folio.ErrExperienceNotFound))
	})

	t.Run("owner delete hides the row", func(t *testing.T) {
		require.NoError(t, repo.DeleteExperience(ctx, ownerID, exp.ID))

		rows, err := repo.ListExperience(ctx, ownerID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestMediaCRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	ownerID := uuid.New()
	now := time.Now().UTC()

	media := &folio.Media{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		StoreName: "memory",
		ObjectKey: "u/" + ownerID.String() + "/x/avatar.png",
		FileName:  "avatar.png",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateMedia(ctx, media))

	got, err := repo.GetMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, media.ObjectKey, got.ObjectKey)

	records, err := repo.ListMedia(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, repo.DeleteMedia(ctx, media.ID))
	_, err = repo.GetMedia(ctx, media.ID)
	assert.True(t, errors.Is(err, folio.ErrMediaNotFound))
}
