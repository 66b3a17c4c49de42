package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ProgramFilter narrows program listings. Zero values mean "no filter".
type ProgramFilter struct {
	Status    string
	CountryID int64
	CityID    int64
	Featured  *bool
	Limit     int
	Offset    int
}

// SQLProgramRepository is a concrete implementation of the program
// repository using sqlx.
type SQLProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository creates a new SQLProgramRepository.
func NewProgramRepository(db *sqlx.DB) *SQLProgramRepository {
	return &SQLProgramRepository{db: db}
}

const programColumns = `id, slug, status, title, subtitle, description, highlights, itinerary,
	requirements, academics, sessions, types, grade_levels, gallery, featured, featured_image,
	duration_days, price_cents, apply_deadline, city_id, country_id, language, created_at, updated_at`

// List returns a page of programs matching the filter plus the total
// match count for the pagination envelope.
func (r *SQLProgramRepository) List(ctx context.Context, f ProgramFilter) ([]*Program, int, error) {
	where := "1=1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.CountryID != 0 {
		where += " AND country_id = ?"
		args = append(args, f.CountryID)
	}
	if f.CityID != 0 {
		where += " AND city_id = ?"
		args = append(args, f.CityID)
	}
	if f.Featured != nil {
		where += " AND featured = ?"
		args = append(args, *f.Featured)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM programs WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count programs: %w", err)
	}

	query := "SELECT " + programColumns + " FROM programs WHERE " + where + " ORDER BY featured DESC, created_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	var programs []*Program
	if err := r.db.SelectContext(ctx, &programs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list programs: %w", err)
	}
	return programs, total, nil
}

// GetBySlug retrieves a single program by its slug.
func (r *SQLProgramRepository) GetBySlug(ctx context.Context, slug string) (*Program, error) {
	var program Program
	query := "SELECT " + programColumns + " FROM programs WHERE slug = ?"
	if err := r.db.GetContext(ctx, &program, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("program %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get program by slug: %w", err)
	}
	return &program, nil
}

// GetByID retrieves a single program by its ID.
func (r *SQLProgramRepository) GetByID(ctx context.Context, id int64) (*Program, error) {
	var program Program
	query := "SELECT " + programColumns + " FROM programs WHERE id = ?"
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("program %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get program by id: %w", err)
	}
	return &program, nil
}

// SlugExists reports whether a slug is taken by a program other than excludeID.
func (r *SQLProgramRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM programs WHERE slug = ? AND id != ?", slug, excludeID); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new program and sets its generated ID.
func (r *SQLProgramRepository) Create(ctx context.Context, p *Program) error {
	query := `INSERT INTO programs (slug, status, title, subtitle, description, highlights, itinerary,
		requirements, academics, sessions, types, grade_levels, gallery, featured, featured_image,
		duration_days, price_cents, apply_deadline, city_id, country_id, language)
		VALUES (:slug, :status, :title, :subtitle, :description, :highlights, :itinerary,
		:requirements, :academics, :sessions, :types, :grade_levels, :gallery, :featured, :featured_image,
		:duration_days, :price_cents, :apply_deadline, :city_id, :country_id, :language)`
	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get created program id: %w", err)
	}
	p.ID = id
	return nil
}

// Update rewrites an existing program row.
func (r *SQLProgramRepository) Update(ctx context.Context, p *Program) error {
	query := `UPDATE programs SET slug = :slug, status = :status, title = :title, subtitle = :subtitle,
		description = :description, highlights = :highlights, itinerary = :itinerary,
		requirements = :requirements, academics = :academics, sessions = :sessions, types = :types,
		grade_levels = :grade_levels, gallery = :gallery, featured = :featured,
		featured_image = :featured_image, duration_days = :duration_days, price_cents = :price_cents,
		apply_deadline = :apply_deadline, city_id = :city_id, country_id = :country_id,
		updated_at = CURRENT_TIMESTAMP WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("program %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a program. Translation rows cascade at the schema level.
func (r *SQLProgramRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM programs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("program %d: %w", id, ErrNotFound)
	}
	return nil
}

// Translations returns all translation rows for a program, earliest
// first so duplicate-language anomalies resolve deterministically.
func (r *SQLProgramRepository) Translations(ctx context.Context, programID int64) ([]*ProgramTranslation, error) {
	var rows []*ProgramTranslation
	query := `SELECT id, program_id, language, title, subtitle, description, highlights, itinerary,
		requirements, academics, sessions, types, grade_levels, created_at
		FROM program_translations WHERE program_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, programID); err != nil {
		return nil, fmt.Errorf("failed to get program translations: %w", err)
	}
	return rows, nil
}

// UpsertTranslation writes the translation row for (program, language),
// replacing an existing one.
func (r *SQLProgramRepository) UpsertTranslation(ctx context.Context, t *ProgramTranslation) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE program_translations SET title = :title,
		subtitle = :subtitle, description = :description, highlights = :highlights,
		itinerary = :itinerary, requirements = :requirements, academics = :academics,
		sessions = :sessions, types = :types, grade_levels = :grade_levels
		WHERE program_id = :program_id AND language = :language`, t)
	if err != nil {
		return fmt.Errorf("failed to update program translation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO program_translations (program_id, language,
		title, subtitle, description, highlights, itinerary, requirements, academics, sessions,
		types, grade_levels) VALUES (:program_id, :language, :title, :subtitle, :description,
		:highlights, :itinerary, :requirements, :academics, :sessions, :types, :grade_levels)`, t)
	if err != nil {
		return fmt.Errorf("failed to insert program translation: %w", err)
	}
	return nil
}

// DeleteTranslation clears the translation for (program, language).
// Deleting a missing row is a no-op.
func (r *SQLProgramRepository) DeleteTranslation(ctx context.Context, programID int64, language string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM program_translations WHERE program_id = ? AND language = ?", programID, language)
	if err != nil {
		return fmt.Errorf("failed to delete program translation: %w", err)
	}
	return nil
}
