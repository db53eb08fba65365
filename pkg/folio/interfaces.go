package folio

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// MediaStore defines the interface for media storage backends.
type MediaStore interface {
	// Upload stores the content read from reader under the object key
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// Download returns a reader over the stored content
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete removes the stored content
	Delete(ctx context.Context, objectKey string) error

	// GetUploadURL returns a URL a client can upload to directly
	GetUploadURL(ctx context.Context, objectKey string) (string, error)

	// GetDownloadURL returns a URL for downloading the content,
	// optionally forcing the given download filename
	GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error)

	// GetMeta retrieves storage-level metadata for the object
	GetMeta(ctx context.Context, objectKey string) (*StoreObjectMeta, error)
}

// StoreObjectMeta contains metadata about an object held by a media store.
type StoreObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// Repository defines the interface for portfolio persistence.
//
// UpdateSection is a conditional write: it matches on the section's
// current Revision and bumps it on success, failing with
// ErrRevisionMismatch when a concurrent writer got there first. All
// other operations are unconditional.
type Repository interface {
	// Section operations
	CreateSection(ctx context.Context, section *Section) error
	GetSection(ctx context.Context, id uuid.UUID) (*Section, error)
	GetSectionBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*Section, error)
	UpdateSection(ctx context.Context, section *Section) error
	DeleteSection(ctx context.Context, id uuid.UUID) error
	ListSections(ctx context.Context, ownerID uuid.UUID) ([]*Section, error)

	// Profile operations
	SaveProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	GetProfileBySlug(ctx context.Context, slug string) (*Profile, error)

	// Experience operations. Update and delete match on owner and id
	// so a row can never be touched across owners.
	CreateExperience(ctx context.Context, exp *Experience) error
	UpdateExperience(ctx context.Context, exp *Experience) error
	DeleteExperience(ctx context.Context, ownerID, id uuid.UUID) error
	ListExperience(ctx context.Context, ownerID uuid.UUID) ([]*Experience, error)

	// Skill operations, owner-scoped like experience
	CreateSkill(ctx context.Context, skill *Skill) error
	UpdateSkill(ctx context.Context, skill *Skill) error
	DeleteSkill(ctx context.Context, ownerID, id uuid.UUID) error
	ListSkills(ctx context.Context, ownerID uuid.UUID) ([]*Skill, error)

	// Media operations
	CreateMedia(ctx context.Context, media *Media) error
	GetMedia(ctx context.Context, id uuid.UUID) (*Media, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
	ListMedia(ctx context.Context, ownerID uuid.UUID) ([]*Media, error)
}

// EventSink defines the interface for event handling.
type EventSink interface {
	// SectionCreated is fired when a section is created
	SectionCreated(ctx context.Context, section *Section) error

	// SectionUpdated is fired when a section's settings or content change
	SectionUpdated(ctx context.Context, section *Section) error

	// SectionDeleted is fired when a section is deleted
	SectionDeleted(ctx context.Context, sectionID uuid.UUID) error

	// EntryAdded is fired when an entry lands in a section
	EntryAdded(ctx context.Context, section *Section, entryID string) error

	// EntryRemoved is fired when an entry is removed from a section
	EntryRemoved(ctx context.Context, section *Section, entryID string) error

	// ProfileUpdated is fired when a profile is created or updated
	ProfileUpdated(ctx context.Context, profile *Profile) error

	// MediaUploaded is fired when a media upload completes
	MediaUploaded(ctx context.Context, media *Media) error
}
