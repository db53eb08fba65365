package folio_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio"
)

func starMemoContent(t *testing.T) folio.SectionContent {
	t.Helper()
	desc := folio.DefaultRegistry().Get(folio.SectionTypeStarMemo)
	require.NotNil(t, desc)
	return desc.NewContent()
}

func TestAddEntry(t *testing.T) {
	content := starMemoContent(t)

	next, stored := folio.AddEntry(content, folio.Entry{Fields: map[string]any{
		"situation": "legacy batch job kept failing",
		"task":      "stabilize the nightly run",
		"action":    "added retries and alerting",
		"result":    "zero failed runs in a quarter",
	}})

	require.Len(t, next.Entries, 1)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	assert.Equal(t, "stabilize the nightly run", stored.Fields["task"])

	// The input content is untouched
	assert.Empty(t, content.Entries)
}

func TestAddEntryInitializesEntries(t *testing.T) {
	content := folio.SectionContent{}

	next, stored := folio.AddEntry(content, folio.Entry{Fields: map[string]any{"note": "hello"}})

	require.NotNil(t, next.Entries)
	require.Len(t, next.Entries, 1)
	assert.Equal(t, stored.ID, next.Entries[0].ID)
}

func TestUpdateEntry(t *testing.T) {
	content := starMemoContent(t)
	content, first := folio.AddEntry(content, folio.Entry{Fields: map[string]any{"situation": "a", "result": "ok"}})
	content, second := folio.AddEntry(content, folio.Entry{Fields: map[string]any{"situation": "b"}})

	t.Run("patched keys overwrite, others survive", func(t *testing.T) {
		next, err := folio.UpdateEntry(content, first.ID, map[string]any{"result": "better"})
		require.NoError(t, err)

		entry := folio.GetEntry(next, first.ID)
		require.NotNil(t, entry)
		assert.Equal(t, "better", entry.Fields["result"])
		assert.Equal(t, "a", entry.Fields["situation"])

		// List position preserved
		assert.Equal(t, first.ID, next.Entries[0].ID)
		assert.Equal(t, second.ID, next.Entries[1].ID)

		// Original content untouched
		orig := folio.GetEntry(content, first.ID)
		require.NotNil(t, orig)
		assert.Equal(t, "ok", orig.Fields["result"])
	})

	t.Run("missing entry is an error", func(t *testing.T) {
		_, err := folio.UpdateEntry(content, "entry_nope", map[string]any{"result": "x"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, folio.ErrEntryNotFound))
		assert.Contains(t, err.Error(), "entry with ID entry_nope")
	})

	t.Run("uninitialized entries collection", func(t *testing.T) {
		_, err := folio.UpdateEntry(folio.SectionContent{}, first.ID, map[string]any{"result": "x"})
		assert.True(t, errors.Is(err, folio.ErrNoEntries))
	})
}

func TestRemoveEntry(t *testing.T) {
	content := starMemoContent(t)
	content, first := folio.AddEntry(content, folio.Entry{Fields: map[string]any{"situation": "a"}})
	content, second := folio.AddEntry(content, folio.Entry{Fields: map[string]any{"situation": "b"}})

	t.Run("removes matching entry", func(t *testing.T) {
		next, err := folio.RemoveEntry(content, first.ID)
		require.NoError(t, err)
		require.Len(t, next.Entries, 1)
		assert.Equal(t, second.ID, next.Entries[0].ID)

		// Original untouched
		assert.Len(t, content.Entries, 2)
	})

	t.Run("removing a missing id is a no-op", func(t *testing.T) {
		next, err := folio.RemoveEntry(content, "entry_gone")
		require.NoError(t, err)
		assert.Len(t, next.Entries, 2)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		once, err := folio.RemoveEntry(content, first.ID)
		require.NoError(t, err)
		twice, err := folio.RemoveEntry(once, first.ID)
		require.NoError(t, err)
		assert.Equal(t, len(once.Entries), len(twice.Entries))
	})

	t.Run("uninitialized entries collection", func(t *testing.T) {
		_, err := folio.RemoveEntry(folio.SectionContent{}, first.ID)
		assert.True(t, errors.Is(err, folio.ErrNoEntries))
	})
}

func TestGetEntry(t *testing.T) {
	content := starMemoContent(t)
	content, stored := folio.AddEntry(content, folio.Entry{Fields: map[string]any{"situation": "a"}})

	found := folio.GetEntry(content, stored.ID)
	require.NotNil(t, found)
	assert.Equal(t, stored.ID, found.ID)

	assert.Nil(t, folio.GetEntry(content, "entry_missing"))

	// The returned entry is a copy
	found.Fields["situation"] = "mutated"
	again := folio.GetEntry(content, stored.ID)
	require.NotNil(t, again)
	assert.Equal(t, "a", again.Fields["situation"])
}

func TestEntryJSONRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	entry := folio.Entry{
		ID:        "entry_abc",
		CreatedAt: created,
		UpdatedAt: created,
		Fields: map[string]any{
			"situation": "on call",
			"result":    "resolved",
		},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	// Fields are flattened next to the envelope keys
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "entry_abc", raw["id"])
	assert.Equal(t, "on call", raw["situation"])
	assert.Contains(t, raw, "createdAt")
	assert.Contains(t, raw, "updatedAt")

	var decoded folio.Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry.ID, decoded.ID)
	assert.True(t, entry.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, "resolved", decoded.Fields["result"])
	assert.NotContains(t, decoded.Fields, "id")
	assert.NotContains(t, decoded.Fields, "createdAt")
}

func TestReconcileContent(t *testing.T) {
	oldDesc := &folio.TemplateDescriptor{
		Type:    "work-timeline",
		Version: 1,
		Fields:  []string{"role", "company"},
		Template: map[string]folio.FieldConfig{
			"role":    {Label: "Role", Type: folio.FieldTypeText, Required: true},
			"company": {Label: "Company", Type: folio.FieldTypeText, Required: true},
		},
	}
	newDesc := &folio.TemplateDescriptor{
		Type:    "work-timeline",
		Version: 2,
		Fields:  []string{"role", "company", "location"},
		Template: map[string]folio.FieldConfig{
			"role":     {Label: "Role", Type: folio.FieldTypeText, Required: true},
			"company":  {Label: "Company", Type: folio.FieldTypeText, Required: true},
			"location": {Label: "Location", Type: folio.FieldTypeText},
		},
	}

	content := oldDesc.NewContent()
	content, _ = folio.AddEntry(content, folio.Entry{Fields: map[string]any{"role": "SRE", "company": "Acme"}})

	t.Run("appends new fields and bumps version", func(t *testing.T) {
		next := folio.ReconcileContent(content, newDesc)
		assert.Equal(t, []string{"role", "company", "location"}, next.Fields)
		assert.Equal(t, 2, next.Version)
		assert.Contains(t, next.Template, "location")
		// Entries survive untouched
		require.Len(t, next.Entries, 1)
		assert.Equal(t, "SRE", next.Entries[0].Fields["role"])
	})

	t.Run("same version is a no-op", func(t *testing.T) {
		upToDate := folio.ReconcileContent(content, oldDesc)
		assert.Equal(t, content.Fields, upToDate.Fields)
		assert.Equal(t, 1, upToDate.Version)
	})

	t.Run("nil descriptor is a no-op", func(t *testing.T) {
		same := folio.ReconcileContent(content, nil)
		assert.Equal(t, content.Version, same.Version)
	})
}

func TestCloneIsDeep(t *testing.T) {
	content := starMemoContent(t)
	content, stored := folio.AddEntry(content, folio.Entry{Fields: map[string]any{"situation": "a"}})

	clone := content.Clone()
	clone.Fields[0] = "mutated"
	clone.Template["situation"] = folio.FieldConfig{Label: "Mutated"}
	clone.Entries[0] = folio.Entry{ID: "entry_other"}

	assert.Equal(t, "situation", content.Fields[0])
	assert.Equal(t, "Situation", content.Template["situation"].Label)
	assert.Equal(t, stored.ID, content.Entries[0].ID)
}
