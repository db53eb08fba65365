package folio

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrUnknownSectionType indicates a section type tag not present in the registry
	ErrUnknownSectionType = errors.New("unknown section type")

	// ErrSectionNotFound indicates a section was not found
	ErrSectionNotFound = errors.New("section not found")

	// ErrNoEntries indicates an entry operation on a content value whose
	// entries collection was never initialized
	ErrNoEntries = errors.New("section has no entries")

	// ErrEntryNotFound indicates an entry id absent from the entries list
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryLimit indicates the template's maximum entry count was reached
	ErrEntryLimit = errors.New("section entry limit reached")

	// ErrRevisionMismatch indicates a conditional write lost against a
	// concurrent update of the same section
	ErrRevisionMismatch = errors.New("section revision mismatch")

	// ErrProfileNotFound indicates a profile was not found
	ErrProfileNotFound = errors.New("profile not found")

	// ErrExperienceNotFound indicates an experience row was not found
	ErrExperienceNotFound = errors.New("experience not found")

	// ErrSkillNotFound indicates a skill row was not found
	ErrSkillNotFound = errors.New("skill not found")

	// ErrMediaNotFound indicates a media record was not found
	ErrMediaNotFound = errors.New("media not found")

	// ErrMediaStoreNotFound indicates a media store name is not registered
	ErrMediaStoreNotFound = errors.New("media store not found")
)

// SectionError represents an error related to section operations
type SectionError struct {
	SectionID uuid.UUID
	Op        string
	Err       error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section operation %s failed for section %s: %v", e.Op, e.SectionID, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// MediaError represents an error related to media operations
type MediaError struct {
	MediaID uuid.UUID
	Op      string
	Err     error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media operation %s failed for media %s: %v", e.Op, e.MediaID, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// StoreError represents an error related to media store operations
type StoreError struct {
	Store string
	Key   string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed for key %s on store %s: %v", e.Op, e.Key, e.Store, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
