package folio

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Service defines the main interface for the folio library
type Service interface {
	// Section operations
	CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error)
	GetSection(ctx context.Context, ownerID, id uuid.UUID) (*Section, error)
	ListSections(ctx context.Context, ownerID uuid.UUID) ([]*Section, error)
	UpdateSection(ctx context.Context, req UpdateSectionRequest) (*Section, error)
	ReorderSections(ctx context.Context, ownerID uuid.UUID, orderedIDs []uuid.UUID) error
	DeleteSection(ctx context.Context, ownerID, id uuid.UUID) error

	// Entry operations
	AddEntry(ctx context.Context, req AddEntryRequest) (*Section, *Entry, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*Section, error)
	RemoveEntry(ctx context.Context, req RemoveEntryRequest) (*Section, error)
	GetEntry(ctx context.Context, ownerID, sectionID uuid.UUID, entryID string) (*Entry, error)

	// Profile operations
	UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*Profile, error)
	GetProfile(ctx context.Context, ownerID uuid.UUID) (*Profile, error)

	// Experience operations
	SaveExperience(ctx context.Context, req SaveExperienceRequest) (*Experience, error)
	DeleteExperience(ctx context.Context, ownerID, id uuid.UUID) error
	ListExperience(ctx context.Context, ownerID uuid.UUID) ([]*Experience, error)

	// Skill operations
	SaveSkill(ctx context.Context, req SaveSkillRequest) (*Skill, error)
	DeleteSkill(ctx context.Context, ownerID, id uuid.UUID) error
	ListSkills(ctx context.Context, ownerID uuid.UUID) ([]*Skill, error)

	// Public portfolio view
	GetPortfolio(ctx context.Context, slug string) (*Portfolio, error)

	// Media operations
	UploadMedia(ctx context.Context, reader io.Reader, req UploadMediaRequest) (*Media, error)
	DownloadMedia(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, error)
	ListMedia(ctx context.Context, ownerID uuid.UUID) ([]*Media, error)
	GetMediaURL(ctx context.Context, id uuid.UUID) (string, error)
	DeleteMedia(ctx context.Context, ownerID, id uuid.UUID) error

	// Template registry access
	Registry() *Registry

	// Media store registration
	RegisterStore(name string, store MediaStore)
	GetStore(name string) (MediaStore, error)
}
