package folio

import "github.com/google/uuid"

// Request/Response DTOs

// CreateSectionRequest contains parameters for creating a new section
type CreateSectionRequest struct {
	OwnerID     uuid.UUID
	Type        string
	Title       string
	Description string
}

// UpdateSectionRequest contains parameters for updating section
// settings. Nil fields are left untouched.
type UpdateSectionRequest struct {
	OwnerID     uuid.UUID
	SectionID   uuid.UUID
	Title       *string
	Description *string
	Layout      *Layout
	IsPublic    *bool
}

// AddEntryRequest contains parameters for adding an entry to a section
type AddEntryRequest struct {
	OwnerID   uuid.UUID
	SectionID uuid.UUID
	Fields    map[string]any
}

// UpdateEntryRequest contains parameters for patching an entry in place
type UpdateEntryRequest struct {
	OwnerID   uuid.UUID
	SectionID uuid.UUID
	EntryID   string
	Fields    map[string]any
}

// RemoveEntryRequest contains parameters for removing an entry
type RemoveEntryRequest struct {
	OwnerID   uuid.UUID
	SectionID uuid.UUID
	EntryID   string
}

// UpsertProfileRequest contains parameters for creating or updating a profile
type UpsertProfileRequest struct {
	OwnerID     uuid.UUID
	DisplayName string
	Slug        string
	Headline    string
	Bio         string
	AvatarKey   string
	Links       map[string]string
	IsPublic    bool
}

// SaveExperienceRequest contains parameters for creating or updating an
// experience row. A nil ID creates a new row.
type SaveExperienceRequest struct {
	ID        *uuid.UUID
	OwnerID   uuid.UUID
	Role      string
	Company   string
	Location  string
	StartDate string
	EndDate   string
	Summary   string
	Position  int
}

// SaveSkillRequest contains parameters for creating or updating a skill
// row. A nil ID creates a new row.
type SaveSkillRequest struct {
	ID       *uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Category string
	Level    int
	Position int
}

// UploadMediaRequest contains parameters for uploading a media asset
type UploadMediaRequest struct {
	OwnerID   uuid.UUID
	FileName  string
	MimeType  string
	StoreName string // empty selects the service default store
}
