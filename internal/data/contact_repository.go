package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ContactRepository stores inbound contact-form submissions.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a submission and sets its generated ID.
func (r *ContactRepository) Create(ctx context.Context, m *ContactMessage) error {
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO contact_messages (name, email, phone,
		subject, body, program_slug) VALUES (:name, :email, :phone, :subject, :body, :program_slug)`, m)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get created contact message id: %w", err)
	}
	m.ID = id
	return nil
}

// List returns recent submissions for the admin back-office.
func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]*ContactMessage, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM contact_messages"); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	query := "SELECT * FROM contact_messages ORDER BY created_at DESC, id DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	var rows []*ContactMessage
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return rows, total, nil
}
