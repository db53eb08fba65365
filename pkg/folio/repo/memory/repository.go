// Package memory provides an in-memory folio.Repository, used in tests
// and for zero-setup local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/folioworks/folio/pkg/folio"
)

// Repository implements folio.Repository using in-memory storage
type Repository struct {
	mu             sync.RWMutex
	sections       map[uuid.UUID]*folio.Section
	profiles       map[uuid.UUID]*folio.Profile
	profilesBySlug map[string]uuid.UUID // slug -> owner_id
	experience     map[uuid.UUID]*folio.Experience
	skills         map[uuid.UUID]*folio.Skill
	media          map[uuid.UUID]*folio.Media
}

// New creates a new in-memory repository
func New() folio.Repository {
	return &Repository{
		sections:       make(map[uuid.UUID]*folio.Section),
		profiles:       make(map[uuid.UUID]*folio.Profile),
		profilesBySlug: make(map[string]uuid.UUID),
		experience:     make(map[uuid.UUID]*folio.Experience),
		skills:         make(map[uuid.UUID]*folio.Skill),
		media:          make(map[uuid.UUID]*folio.Media),
	}
}

func copySection(section *folio.Section) *folio.Section {
	sectionCopy := *section
	sectionCopy.Content = section.Content.Clone()
	return &sectionCopy
}

// Section operations

func (r *Repository) CreateSection(ctx context.Context, section *folio.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sections[section.ID] = copySection(section)
	return nil
}

func (r *Repository) GetSection(ctx context.Context, id uuid.UUID) (*folio.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	section, exists := r.sections[id]
	if !exists || section.DeletedAt != nil {
		return nil, folio.ErrSectionNotFound
	}
	return copySection(section), nil
}

func (r *Repository) GetSectionBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*folio.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, section := range r.sections {
		if section.OwnerID == ownerID && section.Slug == slug && section.DeletedAt == nil {
			return copySection(section), nil
		}
	}
	return nil, folio.ErrSectionNotFound
}

// UpdateSection is a conditional write keyed on the caller's revision.
// On success the stored and the caller's revision are both bumped.
func (r *Repository) UpdateSection(ctx context.Context, section *folio.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.sections[section.ID]
	if !exists || stored.DeletedAt != nil {
		return folio.ErrSectionNotFound
	}
	if stored.Revision != section.Revision {
		return folio.ErrRevisionMismatch
	}

	section.Revision++
	r.sections[section.ID] = copySection(section)
	return nil
}

func (r *Repository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	section, exists := r.sections[id]
	if !exists || section.DeletedAt != nil {
		return folio.ErrSectionNotFound
	}

	now := time.Now().UTC()
	section.DeletedAt = &now
	section.UpdatedAt = now
	return nil
}

func (r *Repository) ListSections(ctx context.Context, ownerID uuid.UUID) ([]*folio.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*folio.Section
	for _, section := range r.sections {
		if section.OwnerID == ownerID && section.DeletedAt == nil {
			result = append(result, copySection(section))
		}
	}

	// Sort by display position, creation time as tiebreaker
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Profile operations

func (r *Repository) SaveProfile(ctx context.Context, profile *folio.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[profile.OwnerID]; ok {
		delete(r.profilesBySlug, existing.Slug)
	}

	profileCopy := *profile
	r.profiles[profile.OwnerID] = &profileCopy
	r.profilesBySlug[profile.Slug] = profile.OwnerID
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, ownerID uuid.UUID) (*folio.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[ownerID]
	if !exists {
		return nil, folio.ErrProfileNotFound
	}
	profileCopy := *profile
	return &profileCopy, nil
}

func (r *Repository) GetProfileBySlug(ctx context.Context, slug string) (*folio.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ownerID, exists := r.profilesBySlug[slug]
	if !exists {
		return nil, folio.ErrProfileNotFound
	}
	profile, exists := r.profiles[ownerID]
	if !exists {
		return nil, folio.ErrProfileNotFound
	}
	profileCopy := *profile
	return &profileCopy, nil
}

// Experience operations

func (r *Repository) CreateExperience(ctx context.Context, exp *folio.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	expCopy := *exp
	r.experience[exp.ID] = &expCopy
	return nil
}

func (r *Repository) UpdateExperience(ctx context.Context, exp *folio.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.experience[exp.ID]
	if !exists || stored.OwnerID != exp.OwnerID || stored.DeletedAt != nil {
		return folio.ErrExperienceNotFound
	}

	expCopy := *exp
	expCopy.CreatedAt = stored.CreatedAt
	r.experience[exp.ID] = &expCopy
	return nil
}

func (r *Repository) DeleteExperience(ctx context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, exists := r.experience[id]
	if !exists || exp.OwnerID != ownerID || exp.DeletedAt != nil {
		return folio.ErrExperienceNotFound
	}

	now := time.Now().UTC()
	exp.DeletedAt = &now
	exp.UpdatedAt = now
	return nil
}

func (r *Repository) ListExperience(ctx context.Context, ownerID uuid.UUID) ([]*folio.Experience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*folio.Experience
	for _, exp := range r.experience {
		if exp.OwnerID == ownerID && exp.DeletedAt == nil {
			expCopy := *exp
			result = append(result, &expCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].StartDate > result[j].StartDate
	})

	return result, nil
}

// Skill operations

func (r *Repository) CreateSkill(ctx context.Context, skill *folio.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	skillCopy := *skill
	r.skills[skill.ID] = &skillCopy
	return nil
}

func (r *Repository) UpdateSkill(ctx context.Context, skill *folio.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.skills[skill.ID]
	if !exists || stored.OwnerID != skill.OwnerID {
		return folio.ErrSkillNotFound
	}

	skillCopy := *skill
	skillCopy.CreatedAt = stored.CreatedAt
	r.skills[skill.ID] = &skillCopy
	return nil
}

func (r *Repository) DeleteSkill(ctx context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	skill, exists := r.skills[id]
	if !exists || skill.OwnerID != ownerID {
		return folio.ErrSkillNotFound
	}

	delete(r.skills, id)
	return nil
}

func (r *Repository) ListSkills(ctx context.Context, ownerID uuid.UUID) ([]*folio.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*folio.Skill
	for _, skill := range r.skills {
		if skill.OwnerID == ownerID {
			skillCopy := *skill
			result = append(result, &skillCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// Media operations

func (r *Repository) CreateMedia(ctx context.Context, media *folio.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mediaCopy := *media
	r.media[media.ID] = &mediaCopy
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id uuid.UUID) (*folio.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	media, exists := r.media[id]
	if !exists {
		return nil, folio.ErrMediaNotFound
	}
	mediaCopy := *media
	return &mediaCopy, nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.media[id]; !exists {
		return folio.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

func (r *Repository) ListMedia(ctx context.Context, ownerID uuid.UUID) ([]*folio.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*folio.Media
	for _, media := range r.media {
		if media.OwnerID == ownerID {
			mediaCopy := *media
			result = append(result, &mediaCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
