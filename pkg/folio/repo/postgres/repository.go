// Package postgres provides a folio.Repository backed by PostgreSQL.
// Section content and profile links are stored as JSONB; see
// migrations/postgres/schema.sql for the expected tables.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/folioworks/folio/pkg/folio"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements folio.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) folio.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) folio.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "profile") {
				return fmt.Errorf("profile slug already taken")
			}
			if strings.Contains(pgErr.ConstraintName, "section") {
				return fmt.Errorf("section already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("record not found")
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Section operations

func (r *Repository) CreateSection(ctx context.Context, section *folio.Section) error {
	content, err := json.Marshal(section.Content)
	if err != nil {
		return fmt.Errorf("marshal section content: %w", err)
	}

	query := `
		INSERT INTO section (
			id, owner_id, title, slug, type, description, layout,
			is_public, position, revision, content, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.db.Exec(ctx, query,
		section.ID, section.OwnerID, section.Title, section.Slug,
		section.Type, section.Description, section.Layout,
		section.IsPublic, section.Position, section.Revision,
		content, section.CreatedAt, section.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create section", err)
	}

	return nil
}

const sectionColumns = `id, owner_id, title, slug, type, description, layout,
	       is_public, position, revision, content, created_at, updated_at`

func scanSection(row pgx.Row) (*folio.Section, error) {
	var (
		section folio.Section
		content []byte
	)
	err := row.Scan(
		&section.ID, &section.OwnerID, &section.Title, &section.Slug,
		&section.Type, &section.Description, &section.Layout,
		&section.IsPublic, &section.Position, &section.Revision,
		&content, &section.CreatedAt, &section.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &section.Content); err != nil {
		return nil, fmt.Errorf("unmarshal section content: %w", err)
	}
	return &section, nil
}

func (r *Repository) GetSection(ctx context.Context, id uuid.UUID) (*folio.Section, error) {
	query := `
		SELECT ` + sectionColumns + `
		FROM section WHERE id = $1 AND deleted_at IS NULL`

	section, err := scanSection(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, folio.ErrSectionNotFound
		}
		return nil, err
	}

	return section, nil
}

func (r *Repository) GetSectionBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*folio.Section, error) {
	query := `
		SELECT ` + sectionColumns + `
		FROM section WHERE owner_id = $1 AND slug = $2 AND deleted_at IS NULL`

	section, err := scanSection(r.db.QueryRow(ctx, query, ownerID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, folio.ErrSectionNotFound
		}
		return nil, err
	}

	return section, nil
}

// UpdateSection is a conditional write: the row is matched on id and on
// the caller's revision, and the stored revision is bumped in the same
// statement. Zero rows affected means either the section is gone or a
// concurrent writer bumped the revision first.
func (r *Repository) UpdateSection(ctx context.Context, section *folio.Section) error {
	content, err := json.Marshal(section.Content)
	if err != nil {
		return fmt.Errorf("marshal section content: %w", err)
	}

	query := `
		UPDATE section SET
			title = $3, slug = $4, description = $5, layout = $6,
			is_public = $7, position = $8, content = $9, updated_at = $10,
			revision = revision + 1
		WHERE id = $1 AND revision = $2 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		section.ID, section.Revision, section.Title, section.Slug,
		section.Description, section.Layout, section.IsPublic,
		section.Position, content, section.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update section", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM section WHERE id = $1 AND deleted_at IS NULL)`,
			section.ID).Scan(&exists)
		if err != nil {
			return r.handlePostgresError("update section", err)
		}
		if !exists {
			return folio.ErrSectionNotFound
		}
		return folio.ErrRevisionMismatch
	}

	section.Revision++
	return nil
}

func (r *Repository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	// Soft delete: keep the row for audit, hide it from every query
	query := `UPDATE section SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return r.handlePostgresError("delete section", err)
	}
	if tag.RowsAffected() == 0 {
		return folio.ErrSectionNotFound
	}
	return nil
}

func (r *Repository) ListSections(ctx context.Context, ownerID uuid.UUID) ([]*folio.Section, error) {
	query := `
		SELECT ` + sectionColumns + `
		FROM section WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY position ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, r.handlePostgresError("list sections", err)
	}
	defer rows.Close()

	var sections []*folio.Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan section", err)
		}
		sections = append(sections, section)
	}

	if err = rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate section rows", err)
	}

	return sections, nil
}

// Profile operations

func (r *Repository) SaveProfile(ctx context.Context, profile *folio.Profile) error {
	links, err := json.Marshal(profile.Links)
	if err != nil {
		return fmt.Errorf("marshal profile links: %w", err)
	}

	query := `
		INSERT INTO profile (
			owner_id, display_name, slug, headline, bio, avatar_key,
			links, is_public, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (owner_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			slug = EXCLUDED.slug,
			headline = EXCLUDED.headline,
			bio = EXCLUDED.bio,
			avatar_key = EXCLUDED.avatar_key,
			links = EXCLUDED.links,
			is_public = EXCLUDED.is_public,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query,
		profile.OwnerID, profile.DisplayName, profile.Slug, profile.Headline,
		profile.Bio, profile.AvatarKey, links, profile.IsPublic,
		profile.CreatedAt, profile.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("save profile", err)
	}

	return nil
}

const profileColumns = `owner_id, display_name, slug, headline, bio, avatar_key,
	       links, is_public, created_at, updated_at`

func scanProfile(row pgx.Row) (*folio.Profile, error) {
	var (
		profile folio.Profile
		links   []byte
	)
	err := row.Scan(
		&profile.OwnerID, &profile.DisplayName, &profile.Slug,
		&profile.Headline, &profile.Bio, &profile.AvatarKey,
		&links, &profile.IsPublic, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &profile.Links); err != nil {
			return nil, fmt.Errorf("unmarshal profile links: %w", err)
		}
	}
	return &profile, nil
}

func (r *Repository) GetProfile(ctx context.Context, ownerID uuid.UUID) (*folio.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profile WHERE owner_id = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, folio.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *Repository) GetProfileBySlug(ctx context.Context, slug string) (*folio.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profile WHERE slug = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, folio.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Experience operations

func (r *Repository) CreateExperience(ctx context.Context, exp *folio.Experience) error {
	query := `
		INSERT INTO experience (
			id, owner_id, role, company, location, start_date, end_date,
			summary, position, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		exp.ID, exp.OwnerID, exp.Role, exp.Company, exp.Location,
		exp.StartDate, exp.EndDate, exp.Summary, exp.Position,
		exp.CreatedAt, exp.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create experience", err)
	}
	return nil
}

func (r *Repository) UpdateExperience(ctx context.Context, exp *folio.Experience) error {
	query := `
		UPDATE experience SET
			role = $3, company = $4, location = $5, start_date = $6,
			end_date = $7, summary = $8, position = $9, updated_at = $10
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		exp.ID, exp.OwnerID, exp.Role, exp.Company, exp.Location,
		exp.StartDate, exp.EndDate, exp.Summary, exp.Position, exp.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update experience", err)
	}
	if tag.RowsAffected() == 0 {
		return folio.ErrExperienceNotFound
	}
	return nil
}

func (r *Repository) DeleteExperience(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `UPDATE experience SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`
	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return r.handlePostgresError("delete experience", err)
	}
	if tag.RowsAffected() == 0 {
		return folio.ErrExperienceNotFound
	}
	return nil
}

func (r *Repository) ListExperience(ctx context.Context, ownerID uuid.UUID) ([]*folio.Experience, error) {
	query := `
		SELECT id, owner_id, role, company, location, start_date, end_date,
		       summary, position, created_at, updated_at
		FROM experience WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY position ASC, start_date DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, r.handlePostgresError("list experience", err)
	}
	defer rows.Close()

	var result []*folio.Experience
	for rows.Next() {
		var exp folio.Experience
		if err := rows.Scan(
			&exp.ID, &exp.OwnerID, &exp.Role, &exp.Company, &exp.Location,
			&exp.StartDate, &exp.EndDate, &exp.Summary, &exp.Position,
			&exp.CreatedAt, &exp.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan experience", err)
		}
		result = append(result, &exp)
	}

	if err = rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate experience rows", err)
	}

	return result, nil
}

// Skill operations

func (r *Repository) CreateSkill(ctx context.Context, skill *folio.Skill) error {
	query := `
		INSERT INTO skill (
			id, owner_id, name, category, level, position, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		skill.ID, skill.OwnerID, skill.Name, skill.Category,
		skill.Level, skill.Position, skill.CreatedAt, skill.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create skill", err)
	}
	return nil
}

func (r *Repository) UpdateSkill(ctx context.Context, skill *folio.Skill) error {
	query := `
		UPDATE skill SET
			name = $3, category = $4, level = $5, position = $6, updated_at = $7
		WHERE id = $1 AND owner_id = $2`

	tag, err := r.db.Exec(ctx, query,
		skill.ID, skill.OwnerID, skill.Name, skill.Category,
		skill.Level, skill.Position, skill.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update skill", err)
	}
	if tag.RowsAffected() == 0 {
		return folio.ErrSkillNotFound
	}
	return nil
}

func (r *Repository) DeleteSkill(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM skill WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return r.handlePostgresError("delete skill", err)
	}
	if tag.RowsAffected() == 0 {
		return folio.ErrSkillNotFound
	}
	return nil
}

func (r *Repository) ListSkills(ctx context.Context, ownerID uuid.UUID) ([]*folio.Skill, error) {
	query := `
		SELECT id, owner_id, name, category, level, position, created_at, updated_at
		FROM skill WHERE owner_id = $1
		ORDER BY position ASC, name ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, r.handlePostgresError("list skills", err)
	}
	defer rows.Close()

	var result []*folio.Skill
	for rows.Next() {
		var skill folio.Skill
		if err := rows.Scan(
			&skill.ID, &skill.OwnerID, &skill.Name, &skill.Category,
			&skill.Level, &skill.Position, &skill.CreatedAt, &skill.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan skill", err)
		}
		result = append(result, &skill)
	}

	if err = rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate skill rows", err)
	}

	return result, nil
}

// Media operations

func (r *Repository) CreateMedia(ctx context.Context, media *folio.Media) error {
	query := `
		INSERT INTO media (
			id, owner_id, store_name, object_key, file_name, mime_type,
			size_bytes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		media.ID, media.OwnerID, media.StoreName, media.ObjectKey,
		media.FileName, media.MimeType, media.SizeBytes,
		media.CreatedAt, media.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create media", err)
	}
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id uuid.UUID) (*folio.Media, error) {
	query := `
		SELECT id, owner_id, store_name, object_key, file_name, mime_type,
		       size_bytes, created_at, updated_at
		FROM media WHERE id = $1`

	var media folio.Media
	err := r.db.QueryRow(ctx, query, id).Scan(
		&media.ID, &media.OwnerID, &media.StoreName, &media.ObjectKey,
		&media.FileName, &media.MimeType, &media.SizeBytes,
		&media.CreatedAt, &media.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, folio.ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete media", err)
	}
	if tag.RowsAffected() == 0 {
		return folio.ErrMediaNotFound
	}
	return nil
}

func (r *Repository) ListMedia(ctx context.Context, ownerID uuid.UUID) ([]*folio.Media, error) {
	query := `
		SELECT id, owner_id, store_name, object_key, file_name, mime_type,
		       size_bytes, created_at, updated_at
		FROM media WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, r.handlePostgresError("list media", err)
	}
	defer rows.Close()

	var result []*folio.Media
	for rows.Next() {
		var media folio.Media
		if err := rows.Scan(
			&media.ID, &media.OwnerID, &media.StoreName, &media.ObjectKey,
			&media.FileName, &media.MimeType, &media.SizeBytes,
			&media.CreatedAt, &media.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan media", err)
		}
		result = append(result, &media)
	}

	if err = rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate media rows", err)
	}

	return result, nil
}
