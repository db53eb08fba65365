package folio

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuildSection constructs a persistable Section from a registered type
// tag. The content value is a fresh snapshot of the descriptor, the slug
// is derived from the title, and layout/visibility come from the
// descriptor defaults. Pure construction; the caller persists the record.
//
// Fails with ErrUnknownSectionType when the registry does not know the
// tag, and with a plain error when the title is empty.
func BuildSection(reg *Registry, ownerID uuid.UUID, sectionType, title, description string) (*Section, error) {
	if title == "" {
		return nil, errors.New("section title is required")
	}

	desc := reg.Get(sectionType)
	if desc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSectionType, sectionType)
	}

	now := time.Now().UTC()
	return &Section{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Slug:        GenerateSlug(title),
		Type:        desc.Type,
		Description: description,
		Layout:      desc.Layout,
		IsPublic:    desc.DefaultPublic,
		Revision:    1,
		Content:     desc.NewContent(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
