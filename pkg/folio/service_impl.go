package folio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// maxRevisionRetries caps the read-modify-write retry loop around
// conditional section updates. Conflicts come from a user editing the
// same section in two tabs, so contention is low and a few attempts
// are enough.
const maxRevisionRetries = 3

// service implements the Service interface
type service struct {
	repository   Repository
	registry     *Registry
	mediaStores  map[string]MediaStore
	defaultStore string
	eventSink    EventSink
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithRegistry sets the template registry for the service
func WithRegistry(reg *Registry) Option {
	return func(s *service) {
		s.registry = reg
	}
}

// WithMediaStore adds a media storage backend. The first registered
// store becomes the default unless WithDefaultStore overrides it.
func WithMediaStore(name string, store MediaStore) Option {
	return func(s *service) {
		if s.mediaStores == nil {
			s.mediaStores = make(map[string]MediaStore)
		}
		if len(s.mediaStores) == 0 && s.defaultStore == "" {
			s.defaultStore = name
		}
		s.mediaStores[name] = store
	}
}

// WithDefaultStore selects the media store used when a request does not
// name one
func WithDefaultStore(name string) Option {
	return func(s *service) {
		s.defaultStore = name
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		mediaStores: make(map[string]MediaStore),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.registry == nil {
		s.registry = DefaultRegistry()
	}

	return s, nil
}

// Section operations

func (s *service) CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error) {
	section, err := BuildSection(s.registry, req.OwnerID, req.Type, req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	existing, err := s.repository.ListSections(ctx, req.OwnerID)
	if err != nil {
		return nil, &SectionError{SectionID: section.ID, Op: "create", Err: err}
	}
	section.Position = len(existing)

	if err := s.repository.CreateSection(ctx, section); err != nil {
		return nil, &SectionError{SectionID: section.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.SectionCreated(ctx, section)
	}

	return section, nil
}

func (s *service) GetSection(ctx context.Context, ownerID, id uuid.UUID) (*Section, error) {
	section, err := s.ownedSection(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	s.reconcile(section)
	return section, nil
}

func (s *service) ListSections(ctx context.Context, ownerID uuid.UUID) ([]*Section, error) {
	sections, err := s.repository.ListSections(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, section := range sections {
		s.reconcile(section)
	}
	return sections, nil
}

func (s *service) UpdateSection(ctx context.Context, req UpdateSectionRequest) (*Section, error) {
	if req.Layout != nil && !req.Layout.IsValid() {
		return nil, fmt.Errorf("invalid layout %q", *req.Layout)
	}

	var updated *Section
	err := s.withRevisionRetry(ctx, req.OwnerID, req.SectionID, "update", func(section *Section) error {
		if req.Title != nil {
			if *req.Title == "" {
				return errors.New("section title is required")
			}
			section.Title = *req.Title
			section.Slug = GenerateSlug(*req.Title)
		}
		if req.Description != nil {
			section.Description = *req.Description
		}
		if req.Layout != nil {
			section.Layout = *req.Layout
		}
		if req.IsPublic != nil {
			section.IsPublic = *req.IsPublic
		}
		updated = section
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.eventSink != nil {
		_ = s.eventSink.SectionUpdated(ctx, updated)
	}
	return updated, nil
}

func (s *service) ReorderSections(ctx context.Context, ownerID uuid.UUID, orderedIDs []uuid.UUID) error {
	positions := make(map[uuid.UUID]int, len(orderedIDs))
	for i, id := range orderedIDs {
		positions[id] = i
	}

	sections, err := s.repository.ListSections(ctx, ownerID)
	if err != nil {
		return err
	}

	for _, section := range sections {
		pos, ok := positions[section.ID]
		if !ok || section.Position == pos {
			continue
		}
		err := s.withRevisionRetry(ctx, ownerID, section.ID, "reorder", func(sec *Section) error {
			sec.Position = pos
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *service) DeleteSection(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.ownedSection(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repository.DeleteSection(ctx, id); err != nil {
		return &SectionError{SectionID: id, Op: "delete", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.SectionDeleted(ctx, id)
	}
	return nil
}

// Entry operations

func (s *service) AddEntry(ctx context.Context, req AddEntryRequest) (*Section, *Entry, error) {
	var (
		section *Section
		stored  Entry
	)
	err := s.withRevisionRetry(ctx, req.OwnerID, req.SectionID, "add_entry", func(sec *Section) error {
		desc := s.registry.Get(sec.Type)
		if desc != nil && desc.MaxEntries > 0 && len(sec.Content.Entries) >= desc.MaxEntries {
			return fmt.Errorf("%w: %d entries allowed for %s", ErrEntryLimit, desc.MaxEntries, sec.Type)
		}
		sec.Content, stored = AddEntry(sec.Content, Entry{Fields: req.Fields})
		section = sec
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if s.eventSink != nil {
		_ = s.eventSink.EntryAdded(ctx, section, stored.ID)
	}
	return section, &stored, nil
}

func (s *service) UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*Section, error) {
	var section *Section
	err := s.withRevisionRetry(ctx, req.OwnerID, req.SectionID, "update_entry", func(sec *Section) error {
		content, err := UpdateEntry(sec.Content, req.EntryID, req.Fields)
		if err != nil {
			return err
		}
		sec.Content = content
		section = sec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.eventSink != nil {
		_ = s.eventSink.SectionUpdated(ctx, section)
	}
	return section, nil
}

func (s *service) RemoveEntry(ctx context.Context, req RemoveEntryRequest) (*Section, error) {
	var section *Section
	err := s.withRevisionRetry(ctx, req.OwnerID, req.SectionID, "remove_entry", func(sec *Section) error {
		content, err := RemoveEntry(sec.Content, req.EntryID)
		if err != nil {
			return err
		}
		sec.Content = content
		section = sec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.eventSink != nil {
		_ = s.eventSink.EntryRemoved(ctx, section, req.EntryID)
	}
	return section, nil
}

func (s *service) GetEntry(ctx context.Context, ownerID, sectionID uuid.UUID, entryID string) (*Entry, error) {
	section, err := s.ownedSection(ctx, ownerID, sectionID)
	if err != nil {
		return nil, err
	}
	entry := GetEntry(section.Content, entryID)
	if entry == nil {
		return nil, fmt.Errorf("entry with ID %s: %w", entryID, ErrEntryNotFound)
	}
	return entry, nil
}

// Profile operations

func (s *service) UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*Profile, error) {
	if req.DisplayName == "" {
		return nil, errors.New("display name is required")
	}

	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.DisplayName)
	}

	now := time.Now().UTC()
	profile := &Profile{
		OwnerID:     req.OwnerID,
		DisplayName: req.DisplayName,
		Slug:        slug,
		Headline:    req.Headline,
		Bio:         req.Bio,
		AvatarKey:   req.AvatarKey,
		Links:       req.Links,
		IsPublic:    req.IsPublic,
		UpdatedAt:   now,
	}

	if existing, err := s.repository.GetProfile(ctx, req.OwnerID); err == nil {
		profile.CreatedAt = existing.CreatedAt
		if profile.AvatarKey == "" {
			profile.AvatarKey = existing.AvatarKey
		}
	} else {
		profile.CreatedAt = now
	}

	if err := s.repository.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if s.eventSink != nil {
		_ = s.eventSink.ProfileUpdated(ctx, profile)
	}
	return profile, nil
}

func (s *service) GetProfile(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	return s.repository.GetProfile(ctx, ownerID)
}

// Experience operations

func (s *service) SaveExperience(ctx context.Context, req SaveExperienceRequest) (*Experience, error) {
	if req.Role == "" || req.Company == "" {
		return nil, errors.New("role and company are required")
	}

	now := time.Now().UTC()
	exp := &Experience{
		OwnerID:   req.OwnerID,
		Role:      req.Role,
		Company:   req.Company,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Summary:   req.Summary,
		Position:  req.Position,
		UpdatedAt: now,
	}

	if req.ID == nil {
		exp.ID = uuid.New()
		exp.CreatedAt = now
		if err := s.repository.CreateExperience(ctx, exp); err != nil {
			return nil, fmt.Errorf("create experience: %w", err)
		}
		return exp, nil
	}

	exp.ID = *req.ID
	if err := s.repository.UpdateExperience(ctx, exp); err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	return exp, nil
}

func (s *service) DeleteExperience(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repository.DeleteExperience(ctx, ownerID, id)
}

func (s *service) ListExperience(ctx context.Context, ownerID uuid.UUID) ([]*Experience, error) {
	return s.repository.ListExperience(ctx, ownerID)
}

// Skill operations

func (s *service) SaveSkill(ctx context.Context, req SaveSkillRequest) (*Skill, error) {
	if req.Name == "" {
		return nil, errors.New("skill name is required")
	}
	if req.Level < 0 || req.Level > 100 {
		return nil, fmt.Errorf("skill level %d out of range", req.Level)
	}

	now := time.Now().UTC()
	skill := &Skill{
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Category:  req.Category,
		Level:     req.Level,
		Position:  req.Position,
		UpdatedAt: now,
	}

	if req.ID == nil {
		skill.ID = uuid.New()
		skill.CreatedAt = now
		if err := s.repository.CreateSkill(ctx, skill); err != nil {
			return nil, fmt.Errorf("create skill: %w", err)
		}
		return skill, nil
	}

	skill.ID = *req.ID
	if err := s.repository.UpdateSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return skill, nil
}

func (s *service) DeleteSkill(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repository.DeleteSkill(ctx, ownerID, id)
}

func (s *service) ListSkills(ctx context.Context, ownerID uuid.UUID) ([]*Skill, error) {
	return s.repository.ListSkills(ctx, ownerID)
}

// Public portfolio view

func (s *service) GetPortfolio(ctx context.Context, slug string) (*Portfolio, error) {
	profile, err := s.repository.GetProfileBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !profile.IsPublic {
		// A private profile is indistinguishable from a missing one.
		return nil, ErrProfileNotFound
	}

	all, err := s.repository.ListSections(ctx, profile.OwnerID)
	if err != nil {
		return nil, err
	}

	var sections []*Section
	for _, section := range all {
		if !section.IsPublic {
			continue
		}
		s.reconcile(section)
		sections = append(sections, section)
	}

	portfolio := &Portfolio{
		Profile:  profile,
		Sections: sections,
	}

	if profile.AvatarKey != "" {
		if store, err := s.GetStore(s.defaultStore); err == nil {
			if url, err := store.GetDownloadURL(ctx, profile.AvatarKey, ""); err == nil {
				portfolio.AvatarURL = url
			}
		}
	}

	return portfolio, nil
}

// Media operations

func (s *service) UploadMedia(ctx context.Context, reader io.Reader, req UploadMediaRequest) (*Media, error) {
	storeName := req.StoreName
	if storeName == "" {
		storeName = s.defaultStore
	}
	store, err := s.GetStore(storeName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	media := &Media{
		ID:        uuid.New(),
		OwnerID:   req.OwnerID,
		StoreName: storeName,
		FileName:  req.FileName,
		MimeType:  req.MimeType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	media.ObjectKey = mediaObjectKey(media)

	if err := store.Upload(ctx, media.ObjectKey, reader); err != nil {
		return nil, &StoreError{Store: storeName, Key: media.ObjectKey, Op: "upload", Err: err}
	}

	// Best effort: fill size/mime from what the store actually saw.
	if meta, err := store.GetMeta(ctx, media.ObjectKey); err == nil {
		media.SizeBytes = meta.Size
		if media.MimeType == "" {
			media.MimeType = meta.ContentType
		}
	}

	if err := s.repository.CreateMedia(ctx, media); err != nil {
		return nil, &MediaError{MediaID: media.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.MediaUploaded(ctx, media)
	}
	return media, nil
}

func (s *service) DownloadMedia(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, error) {
	media, err := s.ownedMedia(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	store, err := s.GetStore(media.StoreName)
	if err != nil {
		return nil, err
	}

	reader, err := store.Download(ctx, media.ObjectKey)
	if err != nil {
		return nil, &StoreError{Store: media.StoreName, Key: media.ObjectKey, Op: "download", Err: err}
	}
	return reader, nil
}

func (s *service) ListMedia(ctx context.Context, ownerID uuid.UUID) ([]*Media, error) {
	return s.repository.ListMedia(ctx, ownerID)
}

func (s *service) GetMediaURL(ctx context.Context, id uuid.UUID) (string, error) {
	media, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return "", &MediaError{MediaID: id, Op: "get_url", Err: err}
	}

	store, err := s.GetStore(media.StoreName)
	if err != nil {
		return "", err
	}
	return store.GetDownloadURL(ctx, media.ObjectKey, media.FileName)
}

func (s *service) DeleteMedia(ctx context.Context, ownerID, id uuid.UUID) error {
	media, err := s.ownedMedia(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if store, err := s.GetStore(media.StoreName); err == nil {
		// A dangling blob is acceptable; a dangling record is not.
		_ = store.Delete(ctx, media.ObjectKey)
	}

	if err := s.repository.DeleteMedia(ctx, id); err != nil {
		return &MediaError{MediaID: id, Op: "delete", Err: err}
	}
	return nil
}

// Registry and media store access

func (s *service) Registry() *Registry {
	return s.registry
}

func (s *service) RegisterStore(name string, store MediaStore) {
	if len(s.mediaStores) == 0 && s.defaultStore == "" {
		s.defaultStore = name
	}
	s.mediaStores[name] = store
}

func (s *service) GetStore(name string) (MediaStore, error) {
	store, exists := s.mediaStores[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrMediaStoreNotFound, name)
	}
	return store, nil
}

// Helper methods

// ownedSection loads a section and verifies ownership. A section owned
// by someone else reads as not found.
func (s *service) ownedSection(ctx context.Context, ownerID, id uuid.UUID) (*Section, error) {
	section, err := s.repository.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}
	if section.OwnerID != ownerID {
		return nil, ErrSectionNotFound
	}
	return section, nil
}

func (s *service) ownedMedia(ctx context.Context, ownerID, id uuid.UUID) (*Media, error) {
	media, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	if media.OwnerID != ownerID {
		return nil, ErrMediaNotFound
	}
	return media, nil
}

// reconcile catches a section's content snapshot up with the current
// descriptor for its type. Read-side only; the result is persisted by
// whichever write touches the section next.
func (s *service) reconcile(section *Section) {
	if desc := s.registry.Get(section.Type); desc != nil {
		section.Content = ReconcileContent(section.Content, desc)
	}
}

// withRevisionRetry runs the read-modify-conditional-write cycle for a
// section: load, apply mutate, write keyed on the loaded revision, and
// start over when a concurrent writer bumped it first.
func (s *service) withRevisionRetry(ctx context.Context, ownerID, sectionID uuid.UUID, op string, mutate func(*Section) error) error {
	for attempt := 0; attempt < maxRevisionRetries; attempt++ {
		section, err := s.ownedSection(ctx, ownerID, sectionID)
		if err != nil {
			return err
		}

		if err := mutate(section); err != nil {
			return err
		}
		section.UpdatedAt = time.Now().UTC()

		err = s.repository.UpdateSection(ctx, section)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrRevisionMismatch) {
			continue
		}
		return &SectionError{SectionID: sectionID, Op: op, Err: err}
	}
	return &SectionError{SectionID: sectionID, Op: op, Err: ErrRevisionMismatch}
}
