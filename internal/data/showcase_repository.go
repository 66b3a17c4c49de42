package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ShowcaseFilter narrows testimonial, FAQ and video listings. These
// entities share the same listing shape: optional status, optional
// category, ordered by display_order.
type ShowcaseFilter struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

// SQLShowcaseRepository handles database operations for testimonials,
// FAQs and videos, the small display-ordered content types.
type SQLShowcaseRepository struct {
	db *sqlx.DB
}

// NewShowcaseRepository creates a new SQLShowcaseRepository.
func NewShowcaseRepository(db *sqlx.DB) *SQLShowcaseRepository {
	return &SQLShowcaseRepository{db: db}
}

// --- Testimonials ---

// ListTestimonials returns testimonials matching the filter plus the total count.
func (r *SQLShowcaseRepository) ListTestimonials(ctx context.Context, f ShowcaseFilter) ([]*Testimonial, int, error) {
	where := "1=1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM testimonials WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count testimonials: %w", err)
	}

	query := `SELECT id, status, student_name, quote, program_title, avatar_image, rating,
		display_order, language, created_at, updated_at FROM testimonials WHERE ` + where +
		" ORDER BY display_order, id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	var rows []*Testimonial
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return rows, total, nil
}

// GetTestimonial retrieves one testimonial by ID.
func (r *SQLShowcaseRepository) GetTestimonial(ctx context.Context, id int64) (*Testimonial, error) {
	var row Testimonial
	query := `SELECT id, status, student_name, quote, program_title, avatar_image, rating,
		display_order, language, created_at, updated_at FROM testimonials WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("testimonial %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}
	return &row, nil
}

// CreateTestimonial inserts a testimonial and sets its generated ID.
func (r *SQLShowcaseRepository) CreateTestimonial(ctx context.Context, m *Testimonial) error {
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO testimonials (status, student_name, quote,
		program_title, avatar_image, rating, display_order, language) VALUES (:status, :student_name,
		:quote, :program_title, :avatar_image, :rating, :display_order, :language)`, m)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get created testimonial id: %w", err)
	}
	m.ID = id
	return nil
}

// UpdateTestimonial rewrites an existing testimonial row.
func (r *SQLShowcaseRepository) UpdateTestimonial(ctx context.Context, m *Testimonial) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE testimonials SET status = :status,
		student_name = :student_name, quote = :quote, program_title = :program_title,
		avatar_image = :avatar_image, rating = :rating, display_order = :display_order,
		updated_at = CURRENT_TIMESTAMP WHERE id = :id`, m)
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}
	return requireRow(result, fmt.Sprintf("testimonial %d", m.ID))
}

// DeleteTestimonial removes a testimonial; translations cascade.
func (r *SQLShowcaseRepository) DeleteTestimonial(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return requireRow(result, fmt.Sprintf("testimonial %d", id))
}

// TestimonialTranslations returns translation rows, earliest first.
func (r *SQLShowcaseRepository) TestimonialTranslations(ctx context.Context, id int64) ([]*TestimonialTranslation, error) {
	var rows []*TestimonialTranslation
	query := `SELECT id, testimonial_id, language, student_name, quote, program_title, created_at
		FROM testimonial_translations WHERE testimonial_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, fmt.Errorf("failed to get testimonial translations: %w", err)
	}
	return rows, nil
}

// UpsertTestimonialTranslation writes the translation row for (testimonial, language).
func (r *SQLShowcaseRepository) UpsertTestimonialTranslation(ctx context.Context, t *TestimonialTranslation) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE testimonial_translations SET
		student_name = :student_name, quote = :quote, program_title = :program_title
		WHERE testimonial_id = :testimonial_id AND language = :language`, t)
	if err != nil {
		return fmt.Errorf("failed to update testimonial translation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO testimonial_translations (testimonial_id,
		language, student_name, quote, program_title) VALUES (:testimonial_id, :language,
		:student_name, :quote, :program_title)`, t)
	if err != nil {
		return fmt.Errorf("failed to insert testimonial translation: %w", err)
	}
	return nil
}

// DeleteTestimonialTranslation clears the translation for (testimonial, language).
func (r *SQLShowcaseRepository) DeleteTestimonialTranslation(ctx context.Context, id int64, language string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM testimonial_translations WHERE testimonial_id = ? AND language = ?", id, language)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial translation: %w", err)
	}
	return nil
}

// --- FAQs ---

// ListFAQs returns FAQs matching the filter plus the total count.
func (r *SQLShowcaseRepository) ListFAQs(ctx context.Context, f ShowcaseFilter) ([]*FAQ, int, error) {
	where := "1=1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.Category != "" {
		where += " AND category = ?"
		args = append(args, f.Category)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM faqs WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count faqs: %w", err)
	}

	query := `SELECT id, status, question, answer, category, display_order, language, created_at,
		updated_at FROM faqs WHERE ` + where + " ORDER BY display_order, id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	var rows []*FAQ
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list faqs: %w", err)
	}
	return rows, total, nil
}

// GetFAQ retrieves one FAQ by ID.
func (r *SQLShowcaseRepository) GetFAQ(ctx context.Context, id int64) (*FAQ, error) {
	var row FAQ
	query := `SELECT id, status, question, answer, category, display_order, language, created_at,
		updated_at FROM faqs WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("faq %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get faq: %w", err)
	}
	return &row, nil
}

// CreateFAQ inserts an FAQ and sets its generated ID.
func (r *SQLShowcaseRepository) CreateFAQ(ctx context.Context, f *FAQ) error {
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO faqs (status, question, answer, category,
		display_order, language) VALUES (:status, :question, :answer, :category, :display_order,
		:language)`, f)
	if err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get created faq id: %w", err)
	}
	f.ID = id
	return nil
}

// UpdateFAQ rewrites an existing FAQ row.
func (r *SQLShowcaseRepository) UpdateFAQ(ctx context.Context, f *FAQ) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE faqs SET status = :status,
		question = :question, answer = :answer, category = :category,
		display_order = :display_order, updated_at = CURRENT_TIMESTAMP WHERE id = :id`, f)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
	}
	return requireRow(result, fmt.Sprintf("faq %d", f.ID))
}

// DeleteFAQ removes an FAQ; translations cascade.
func (r *SQLShowcaseRepository) DeleteFAQ(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM faqs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	return requireRow(result, fmt.Sprintf("faq %d", id))
}

// FAQTranslations returns translation rows, earliest first.
func (r *SQLShowcaseRepository) FAQTranslations(ctx context.Context, id int64) ([]*FAQTranslation, error) {
	var rows []*FAQTranslation
	query := `SELECT id, faq_id, language, question, answer, category, created_at
		FROM faq_translations WHERE faq_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, fmt.Errorf("failed to get faq translations: %w", err)
	}
	return rows, nil
}

// UpsertFAQTranslation writes the translation row for (faq, language).
func (r *SQLShowcaseRepository) UpsertFAQTranslation(ctx context.Context, t *FAQTranslation) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE faq_translations SET question = :question,
		answer = :answer, category = :category WHERE faq_id = :faq_id AND language = :language`, t)
	if err != nil {
		return fmt.Errorf("failed to update faq translation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO faq_translations (faq_id, language, question,
		answer, category) VALUES (:faq_id, :language, :question, :answer, :category)`, t)
	if err != nil {
		return fmt.Errorf("failed to insert faq translation: %w", err)
	}
	return nil
}

// DeleteFAQTranslation clears the translation for (faq, language).
func (r *SQLShowcaseRepository) DeleteFAQTranslation(ctx context.Context, id int64, language string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM faq_translations WHERE faq_id = ? AND language = ?", id, language)
	if err != nil {
		return fmt.Errorf("failed to delete faq translation: %w", err)
	}
	return nil
}

// --- Videos ---

// ListVideos returns videos matching the filter plus the total count.
func (r *SQLShowcaseRepository) ListVideos(ctx context.Context, f ShowcaseFilter) ([]*Video, int, error) {
	where := "1=1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.Category != "" {
		where += " AND category = ?"
		args = append(args, f.Category)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM videos WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	query := `SELECT id, status, title, description, video_url, thumbnail, duration_seconds,
		category, display_order, language, created_at, updated_at FROM videos WHERE ` + where +
		" ORDER BY display_order, id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	var rows []*Video
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	return rows, total, nil
}

// GetVideo retrieves one video by ID.
func (r *SQLShowcaseRepository) GetVideo(ctx context.Context, id int64) (*Video, error) {
	var row Video
	query := `SELECT id, status, title, description, video_url, thumbnail, duration_seconds,
		category, display_order, language, created_at, updated_at FROM videos WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("video %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &row, nil
}

// CreateVideo inserts a video and sets its generated ID.
func (r *SQLShowcaseRepository) CreateVideo(ctx context.Context, v *Video) error {
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO videos (status, title, description,
		video_url, thumbnail, duration_seconds, category, display_order, language)
		VALUES (:status, :title, :description, :video_url, :thumbnail, :duration_seconds,
		:category, :display_order, :language)`, v)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get created video id: %w", err)
	}
	v.ID = id
	return nil
}

// UpdateVideo rewrites an existing video row.
func (r *SQLShowcaseRepository) UpdateVideo(ctx context.Context, v *Video) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE videos SET status = :status, title = :title,
		description = :description, video_url = :video_url, thumbnail = :thumbnail,
		duration_seconds = :duration_seconds, category = :category,
		display_order = :display_order, updated_at = CURRENT_TIMESTAMP WHERE id = :id`, v)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return requireRow(result, fmt.Sprintf("video %d", v.ID))
}

// DeleteVideo removes a video; translations cascade.
func (r *SQLShowcaseRepository) DeleteVideo(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return requireRow(result, fmt.Sprintf("video %d", id))
}

// VideoTranslations returns translation rows, earliest first.
func (r *SQLShowcaseRepository) VideoTranslations(ctx context.Context, id int64) ([]*VideoTranslation, error) {
	var rows []*VideoTranslation
	query := `SELECT id, video_id, language, title, description, created_at
		FROM video_translations WHERE video_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, fmt.Errorf("failed to get video translations: %w", err)
	}
	return rows, nil
}

// UpsertVideoTranslation writes the translation row for (video, language).
func (r *SQLShowcaseRepository) UpsertVideoTranslation(ctx context.Context, t *VideoTranslation) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE video_translations SET title = :title,
		description = :description WHERE video_id = :video_id AND language = :language`, t)
	if err != nil {
		return fmt.Errorf("failed to update video translation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO video_translations (video_id, language, title,
		description) VALUES (:video_id, :language, :title, :description)`, t)
	if err != nil {
		return fmt.Errorf("failed to insert video translation: %w", err)
	}
	return nil
}

// DeleteVideoTranslation clears the translation for (video, language).
func (r *SQLShowcaseRepository) DeleteVideoTranslation(ctx context.Context, id int64, language string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM video_translations WHERE video_id = ? AND language = ?", id, language)
	if err != nil {
		return fmt.Errorf("failed to delete video translation: %w", err)
	}
	return nil
}

// requireRow converts a zero-rows-affected result into ErrNotFound.
func requireRow(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
