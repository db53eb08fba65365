package folio

import (
	"fmt"
	"time"
)

// Entry lifecycle helpers.
//
// Every transform is copy-on-write: the input content is never mutated
// and the returned value shares no entries slice with it, so callers can
// keep references to the prior state (optimistic UI, audit trails).
//
// Removing an id that is not present is a no-op while updating one is an
// error. The asymmetry is deliberate: remove is declarative ("this id
// must be gone") and safe to repeat, update of a missing entry always
// signals a stale client.

// Clone copies the content value deeply enough for copy-on-write use:
// field list, template map, and entries slice are fresh allocations.
func (c SectionContent) Clone() SectionContent {
	return cloneContent(c)
}

func cloneContent(c SectionContent) SectionContent {
	fields := make([]string, len(c.Fields))
	copy(fields, c.Fields)

	template := make(map[string]FieldConfig, len(c.Template))
	for name, cfg := range c.Template {
		template[name] = cfg
	}

	var entries []Entry
	if c.Entries != nil {
		entries = make([]Entry, len(c.Entries))
		copy(entries, c.Entries)
	}

	c.Fields = fields
	c.Template = template
	c.Entries = entries
	return c
}

// AddEntry appends an entry to the content's entries list, initializing
// the list when absent. A missing entry id is generated, createdAt is
// set when absent, and updatedAt is always stamped. Returns the new
// content value and the entry as stored.
func AddEntry(content SectionContent, entry Entry) (SectionContent, Entry) {
	now := time.Now().UTC()

	stored := entry.clone()
	if stored.Fields == nil {
		stored.Fields = make(map[string]any)
	}
	if stored.ID == "" {
		stored.ID = NewEntryID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	next := cloneContent(content)
	if next.Entries == nil {
		next.Entries = []Entry{}
	}
	next.Entries = append(next.Entries, stored)
	return next, stored
}

// UpdateEntry shallow-merges patch onto the entry with the given id:
// patched keys overwrite, absent keys are preserved, list position is
// kept, and updatedAt is stamped.
//
// Fails with ErrNoEntries when the entries collection was never
// initialized and ErrEntryNotFound when no entry matches the id.
func UpdateEntry(content SectionContent, entryID string, patch map[string]any) (SectionContent, error) {
	if content.Entries == nil {
		return SectionContent{}, ErrNoEntries
	}

	idx := -1
	for i := range content.Entries {
		if content.Entries[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SectionContent{}, fmt.Errorf("entry with ID %s: %w", entryID, ErrEntryNotFound)
	}

	next := cloneContent(content)
	updated := next.Entries[idx].clone()
	for k, v := range patch {
		updated.Fields[k] = v
	}
	updated.UpdatedAt = time.Now().UTC()
	next.Entries[idx] = updated
	return next, nil
}

// RemoveEntry filters the entry with the given id out of the entries
// list. Removing an id that is not present is a no-op, not an error.
// Fails with ErrNoEntries when the entries collection was never
// initialized.
func RemoveEntry(content SectionContent, entryID string) (SectionContent, error) {
	if content.Entries == nil {
		return SectionContent{}, ErrNoEntries
	}

	next := cloneContent(content)
	filtered := next.Entries[:0]
	for _, e := range next.Entries {
		if e.ID != entryID {
			filtered = append(filtered, e)
		}
	}
	next.Entries = filtered
	return next, nil
}

// GetEntry returns the entry with the given id, or nil when no entry
// matches. Never fails.
func GetEntry(content SectionContent, entryID string) *Entry {
	for i := range content.Entries {
		if content.Entries[i].ID == entryID {
			e := content.Entries[i].clone()
			return &e
		}
	}
	return nil
}

// ReconcileContent brings a stored content value up to date with the
// current descriptor for its section type. Template fields the stored
// snapshot does not know yet are appended, in descriptor order, after
// the stored field list; stored fields and entries are never removed or
// reordered. Content already at the descriptor version is returned
// unchanged.
func ReconcileContent(content SectionContent, desc *TemplateDescriptor) SectionContent {
	if desc == nil || content.Version >= desc.Version {
		return content
	}

	next := cloneContent(content)
	if next.Template == nil {
		next.Template = make(map[string]FieldConfig, len(desc.Template))
	}
	for _, name := range desc.Fields {
		if _, exists := next.Template[name]; exists {
			continue
		}
		next.Template[name] = desc.Template[name]
		next.Fields = append(next.Fields, name)
	}
	next.Version = desc.Version
	return next
}
