package folio

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// SectionCreated does nothing and returns nil
func (n *NoopEventSink) SectionCreated(ctx context.Context, section *Section) error {
	return nil
}

// SectionUpdated does nothing and returns nil
func (n *NoopEventSink) SectionUpdated(ctx context.Context, section *Section) error {
	return nil
}

// SectionDeleted does nothing and returns nil
func (n *NoopEventSink) SectionDeleted(ctx context.Context, sectionID uuid.UUID) error {
	return nil
}

// EntryAdded does nothing and returns nil
func (n *NoopEventSink) EntryAdded(ctx context.Context, section *Section, entryID string) error {
	return nil
}

// EntryRemoved does nothing and returns nil
func (n *NoopEventSink) EntryRemoved(ctx context.Context, section *Section, entryID string) error {
	return nil
}

// ProfileUpdated does nothing and returns nil
func (n *NoopEventSink) ProfileUpdated(ctx context.Context, profile *Profile) error {
	return nil
}

// MediaUploaded does nothing and returns nil
func (n *NoopEventSink) MediaUploaded(ctx context.Context, media *Media) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other
// action. Useful for development and debugging.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink logging through the given
// slog logger. A nil logger falls back to slog.Default.
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) SectionCreated(ctx context.Context, section *Section) error {
	l.logger.InfoContext(ctx, "section created", "section_id", section.ID, "type", section.Type, "owner_id", section.OwnerID)
	return nil
}

func (l *LoggingEventSink) SectionUpdated(ctx context.Context, section *Section) error {
	l.logger.InfoContext(ctx, "section updated", "section_id", section.ID, "revision", section.Revision)
	return nil
}

func (l *LoggingEventSink) SectionDeleted(ctx context.Context, sectionID uuid.UUID) error {
	l.logger.InfoContext(ctx, "section deleted", "section_id", sectionID)
	return nil
}

func (l *LoggingEventSink) EntryAdded(ctx context.Context, section *Section, entryID string) error {
	l.logger.InfoContext(ctx, "entry added", "section_id", section.ID, "entry_id", entryID)
	return nil
}

func (l *LoggingEventSink) EntryRemoved(ctx context.Context, section *Section, entryID string) error {
	l.logger.InfoContext(ctx, "entry removed", "section_id", section.ID, "entry_id", entryID)
	return nil
}

func (l *LoggingEventSink) ProfileUpdated(ctx context.Context, profile *Profile) error {
	l.logger.InfoContext(ctx, "profile updated", "owner_id", profile.OwnerID, "slug", profile.Slug)
	return nil
}

func (l *LoggingEventSink) MediaUploaded(ctx context.Context, media *Media) error {
	l.logger.InfoContext(ctx, "media uploaded", "media_id", media.ID, "store", media.StoreName, "size", media.SizeBytes)
	return nil
}
