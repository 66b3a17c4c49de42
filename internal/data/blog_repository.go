package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// BlogFilter narrows blog listings.
type BlogFilter struct {
	Status string
	Tag    string
	Limit  int
	Offset int
}

// SQLBlogRepository handles database operations for blog posts.
type SQLBlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository creates a new SQLBlogRepository.
func NewBlogRepository(db *sqlx.DB) *SQLBlogRepository {
	return &SQLBlogRepository{db: db}
}

const blogColumns = `id, slug, status, title, excerpt, content, tags, cover_image, author_name,
	published_at, language, created_at, updated_at`

// List returns a page of blog posts matching the filter plus the total count.
func (r *SQLBlogRepository) List(ctx context.Context, f BlogFilter) ([]*Blog, int, error) {
	where := "1=1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.Tag != "" {
		// Tags are stored as a JSON array of strings; a quoted substring
		// match is how the listing filter has always worked.
		where += " AND tags LIKE ?"
		args = append(args, `%"`+f.Tag+`"%`)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM blogs WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	query := "SELECT " + blogColumns + " FROM blogs WHERE " + where + " ORDER BY published_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	var blogs []*Blog
	if err := r.db.SelectContext(ctx, &blogs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, total, nil
}

// GetBySlug retrieves a single blog post by its slug.
func (r *SQLBlogRepository) GetBySlug(ctx context.Context, slug string) (*Blog, error) {
	var blog Blog
	query := "SELECT " + blogColumns + " FROM blogs WHERE slug = ?"
	if err := r.db.GetContext(ctx, &blog, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blog %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get blog by slug: %w", err)
	}
	return &blog, nil
}

// GetByID retrieves a single blog post by its ID.
func (r *SQLBlogRepository) GetByID(ctx context.Context, id int64) (*Blog, error) {
	var blog Blog
	query := "SELECT " + blogColumns + " FROM blogs WHERE id = ?"
	if err := r.db.GetContext(ctx, &blog, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blog %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get blog by id: %w", err)
	}
	return &blog, nil
}

// SlugExists reports whether a slug is taken by a post other than excludeID.
func (r *SQLBlogRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM blogs WHERE slug = ? AND id != ?", slug, excludeID); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new blog post and sets its generated ID.
func (r *SQLBlogRepository) Create(ctx context.Context, b *Blog) error {
	query := `INSERT INTO blogs (slug, status, title, excerpt, content, tags, cover_image,
		author_name, published_at, language) VALUES (:slug, :status, :title, :excerpt, :content,
		:tags, :cover_image, :author_name, :published_at, :language)`
	res, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get created blog id: %w", err)
	}
	b.ID = id
	return nil
}

// Update rewrites an existing blog row.
func (r *SQLBlogRepository) Update(ctx context.Context, b *Blog) error {
	query := `UPDATE blogs SET slug = :slug, status = :status, title = :title, excerpt = :excerpt,
		content = :content, tags = :tags, cover_image = :cover_image, author_name = :author_name,
		published_at = :published_at, updated_at = CURRENT_TIMESTAMP WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("blog %d: %w", b.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a blog post. Translation rows cascade at the schema level.
func (r *SQLBlogRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("blog %d: %w", id, ErrNotFound)
	}
	return nil
}

// Translations returns all translation rows for a post, earliest first.
func (r *SQLBlogRepository) Translations(ctx context.Context, blogID int64) ([]*BlogTranslation, error) {
	var rows []*BlogTranslation
	query := `SELECT id, blog_id, language, title, excerpt, content, tags, created_at
		FROM blog_translations WHERE blog_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, blogID); err != nil {
		return nil, fmt.Errorf("failed to get blog translations: %w", err)
	}
	return rows, nil
}

// UpsertTranslation writes the translation row for (blog, language).
func (r *SQLBlogRepository) UpsertTranslation(ctx context.Context, t *BlogTranslation) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE blog_translations SET title = :title,
		excerpt = :excerpt, content = :content, tags = :tags
		WHERE blog_id = :blog_id AND language = :language`, t)
	if err != nil {
		return fmt.Errorf("failed to update blog translation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO blog_translations (blog_id, language, title,
		excerpt, content, tags) VALUES (:blog_id, :language, :title, :excerpt, :content, :tags)`, t)
	if err != nil {
		return fmt.Errorf("failed to insert blog translation: %w", err)
	}
	return nil
}

// DeleteTranslation clears the translation for (blog, language).
func (r *SQLBlogRepository) DeleteTranslation(ctx context.Context, blogID int64, language string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM blog_translations WHERE blog_id = ? AND language = ?", blogID, language)
	if err != nil {
		return fmt.Errorf("failed to delete blog translation: %w", err)
	}
	return nil
}
