package folio

import (
    "encoding/json"
    "fmt"
    "time"

    "github.com/google/uuid"
)

// Layout is the domain type for section presentation layouts.
type Layout string

// Section layout constants (typed).
const (
    LayoutGrid     Layout = "grid"
    LayoutList     Layout = "list"
    LayoutTimeline Layout = "timeline"
    LayoutCards    Layout = "cards"
)

// IsValid reports whether the layout is one of the known presentation layouts.
func (l Layout) IsValid() bool {
    switch l {
    case LayoutGrid, LayoutList, LayoutTimeline, LayoutCards:
        return true
    }
    return false
}

// FieldType is the domain type for template field kinds.
type FieldType string

// Field type constants (typed).
const (
    FieldTypeText         FieldType = "text"
    FieldTypeTextarea     FieldType = "textarea"
    FieldTypeDate         FieldType = "date"
    FieldTypeURL          FieldType = "url"
    FieldTypeTags         FieldType = "tags"
    FieldTypeImageGallery FieldType = "image-gallery"
)

// FieldConfig describes a single field of a section template.
type FieldConfig struct {
    Label       string    `json:"label"`
    Type        FieldType `json:"type"`
    Required    bool      `json:"required"`
    Placeholder string    `json:"placeholder,omitempty"`
    Validation  string    `json:"validation,omitempty"`
}

// TemplateDescriptor is the static schema for one section type: the
// ordered field list, per-field configuration, and creation defaults.
// Descriptors are immutable after registry construction; callers must
// not modify a descriptor returned by a Registry.
type TemplateDescriptor struct {
    Type          string                 `json:"type"`
    Name          string                 `json:"name"`
    Description   string                 `json:"description,omitempty"`
    Layout        Layout                 `json:"layout"`
    MaxEntries    int                    `json:"max_entries"` // 0 means unlimited
    Fields        []string               `json:"fields"`
    Template      map[string]FieldConfig `json:"template"`
    DefaultPublic bool                   `json:"default_public"`
    Version       int                    `json:"version"`
}

// NewContent returns a fresh content value snapshotted from the
// descriptor: the field list and template map are deep-copied and the
// entries list starts empty.
func (d *TemplateDescriptor) NewContent() SectionContent {
    fields := make([]string, len(d.Fields))
    copy(fields, d.Fields)

    template := make(map[string]FieldConfig, len(d.Template))
    for name, cfg := range d.Template {
        template[name] = cfg
    }

    return SectionContent{
        Fields:   fields,
        Template: template,
        Entries:  []Entry{},
        Version:  d.Version,
    }
}

// SectionContent is the JSON value persisted per section: the template
// snapshot taken at creation time plus the live list of entries.
//
// Invariant: every name in Fields has a FieldConfig in Template. Entry
// field keys are assumed, not enforced, to be a subset of Fields.
type SectionContent struct {
    Fields   []string               `json:"fields"`
    Template map[string]FieldConfig `json:"template"`
    Entries  []Entry                `json:"entries"`
    Version  int                    `json:"version,omitempty"`
}

// Entry is one record inside a section's content. The envelope carries
// identity and timestamps; the template-specific values live in Fields
// and are free-form (strings, string lists for tags and galleries).
//
// Entries marshal flat: id, createdAt and updatedAt sit beside the field
// values in a single JSON object, matching the at-rest shape.
type Entry struct {
    ID        string
    CreatedAt time.Time
    UpdatedAt time.Time
    Fields    map[string]any
}

// reserved envelope keys inside a marshalled entry
const (
    entryKeyID        = "id"
    entryKeyCreatedAt = "createdAt"
    entryKeyUpdatedAt = "updatedAt"
)

// MarshalJSON flattens the envelope and the free-form fields into one
// object. Field values never shadow the envelope keys.
func (e Entry) MarshalJSON() ([]byte, error) {
    flat := make(map[string]any, len(e.Fields)+3)
    for k, v := range e.Fields {
        flat[k] = v
    }
    flat[entryKeyID] = e.ID
    if !e.CreatedAt.IsZero() {
        flat[entryKeyCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339Nano)
    }
    if !e.UpdatedAt.IsZero() {
        flat[entryKeyUpdatedAt] = e.UpdatedAt.UTC().Format(time.RFC3339Nano)
    }
    return json.Marshal(flat)
}

// UnmarshalJSON splits the flat object back into envelope and fields.
func (e *Entry) UnmarshalJSON(data []byte) error {
    var flat map[string]any
    if err := json.Unmarshal(data, &flat); err != nil {
        return err
    }

    if v, ok := flat[entryKeyID].(string); ok {
        e.ID = v
    }
    if v, ok := flat[entryKeyCreatedAt].(string); ok {
        t, err := time.Parse(time.RFC3339Nano, v)
        if err != nil {
            return fmt.Errorf("entry createdAt: %w", err)
        }
        e.CreatedAt = t
    }
    if v, ok := flat[entryKeyUpdatedAt].(string); ok {
        t, err := time.Parse(time.RFC3339Nano, v)
        if err != nil {
            return fmt.Errorf("entry updatedAt: %w", err)
        }
        e.UpdatedAt = t
    }

    delete(flat, entryKeyID)
    delete(flat, entryKeyCreatedAt)
    delete(flat, entryKeyUpdatedAt)
    e.Fields = flat
    return nil
}

// clone returns a deep-enough copy of the entry for copy-on-write
// transforms: the fields map is copied, values are shared.
func (e Entry) clone() Entry {
    fields := make(map[string]any, len(e.Fields))
    for k, v := range e.Fields {
        fields[k] = v
    }
    e.Fields = fields
    return e
}

// Section represents one logical content block on a user's portfolio.
type Section struct {
    ID          uuid.UUID      `json:"id"`
    OwnerID     uuid.UUID      `json:"owner_id"`
    Title       string         `json:"title"`
    Slug        string         `json:"slug"`
    Type        string         `json:"type"`
    Description string         `json:"description,omitempty"`
    Layout      Layout         `json:"layout"`
    IsPublic    bool           `json:"is_public"`
    Position    int            `json:"position"`
    Revision    int64          `json:"revision"`
    Content     SectionContent `json:"content"`
    CreatedAt   time.Time      `json:"created_at"`
    UpdatedAt   time.Time      `json:"updated_at"`
    DeletedAt   *time.Time     `json:"deleted_at,omitempty"`
}

// Profile holds the dashboard-editable identity of a portfolio owner.
// Slug is the public handle the portfolio page is served under.
type Profile struct {
    OwnerID     uuid.UUID         `json:"owner_id"`
    DisplayName string            `json:"display_name"`
    Slug        string            `json:"slug"`
    Headline    string            `json:"headline,omitempty"`
    Bio         string            `json:"bio,omitempty"`
    AvatarKey   string            `json:"avatar_key,omitempty"`
    Links       map[string]string `json:"links,omitempty"`
    IsPublic    bool              `json:"is_public"`
    CreatedAt   time.Time         `json:"created_at"`
    UpdatedAt   time.Time         `json:"updated_at"`
}

// Experience is one work-history row on a portfolio.
type Experience struct {
    ID        uuid.UUID  `json:"id"`
    OwnerID   uuid.UUID  `json:"owner_id"`
    Role      string     `json:"role"`
    Company   string     `json:"company"`
    Location  string     `json:"location,omitempty"`
    StartDate string     `json:"start_date"`
    EndDate   string     `json:"end_date,omitempty"` // empty means current
    Summary   string     `json:"summary,omitempty"`
    Position  int        `json:"position"`
    CreatedAt time.Time  `json:"created_at"`
    UpdatedAt time.Time  `json:"updated_at"`
    DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Skill is one skill row on a portfolio.
type Skill struct {
    ID        uuid.UUID `json:"id"`
    OwnerID   uuid.UUID `json:"owner_id"`
    Name      string    `json:"name"`
    Category  string    `json:"category,omitempty"`
    Level     int       `json:"level"` // 0-100
    Position  int       `json:"position"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

// Media represents an uploaded asset (avatar, entry image) tracked by
// the repository and stored in a named media store.
type Media struct {
    ID        uuid.UUID `json:"id"`
    OwnerID   uuid.UUID `json:"owner_id"`
    StoreName string    `json:"store_name"`
    ObjectKey string    `json:"object_key"`
    FileName  string    `json:"file_name,omitempty"`
    MimeType  string    `json:"mime_type,omitempty"`
    SizeBytes int64     `json:"size_bytes,omitempty"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

// Portfolio is the public, read-only aggregate rendered for a profile
// slug: the profile plus its visible sections in display order.
type Portfolio struct {
    Profile   *Profile   `json:"profile"`
    Sections  []*Section `json:"sections"`
    AvatarURL string     `json:"avatar_url,omitempty"`
}
