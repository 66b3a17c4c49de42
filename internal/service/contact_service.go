package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"edusite/internal/data"
	"edusite/internal/logger"
	"edusite/internal/mail"

	"github.com/microcosm-cc/bluemonday"
)

// ContactStore is the repository surface for contact-form submissions.
type ContactStore interface {
	Create(ctx context.Context, m *data.ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]*data.ContactMessage, int, error)
}

// ContactInput is an inbound contact-form submission.
type ContactInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	ProgramSlug string `json:"programSlug"`
}

// ContactMessageView shapes a stored submission for the admin inbox.
type ContactMessageView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Body        string    `json:"body"`
	ProgramSlug string    `json:"programSlug,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContactMessageList is the admin inbox listing payload.
type ContactMessageList struct {
	Items      []*ContactMessageView `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

// ContactService stores contact-form submissions and notifies staff.
type ContactService struct {
	store     ContactStore
	notifier  mail.Notifier
	sanitizer *bluemonday.Policy
	log       logger.Logger
}

// NewContactService creates a new ContactService with the given dependencies.
func NewContactService(store ContactStore, notifier mail.Notifier, log logger.Logger) *ContactService {
	// Contact submissions are plain text; strip all markup.
	return &ContactService{
		store:     store,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}
}

// Submit validates and stores a submission, then fires a staff
// notification. Notification failures never fail the submission.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := required("body", in.Body); err != nil {
		return err
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}

	msg := &data.ContactMessage{
		Name:        s.sanitizer.Sanitize(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       nullString(s.sanitizer.Sanitize(in.Phone)),
		Subject:     nullString(s.sanitizer.Sanitize(in.Subject)),
		Body:        s.sanitizer.Sanitize(in.Body),
		ProgramSlug: nullString(in.ProgramSlug),
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return err
	}

	subject := "New contact message from " + msg.Name
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nProgram: %s\n\n%s",
		msg.Name, msg.Email, msg.Phone.String, msg.ProgramSlug.String, msg.Body)
	s.notifier.Notify(subject, body)
	return nil
}

// List returns recent submissions for the admin inbox.
func (s *ContactService) List(ctx context.Context, page, limit int) (*ContactMessageList, error) {
	page, limit = NormalizePage(page, limit)
	rows, total, err := s.store.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	items := make([]*ContactMessageView, len(rows))
	for i, row := range rows {
		items[i] = &ContactMessageView{
			ID:          row.ID,
			Name:        row.Name,
			Email:       row.Email,
			Phone:       row.Phone.String,
			Subject:     row.Subject.String,
			Body:        row.Body,
			ProgramSlug: row.ProgramSlug.String,
			CreatedAt:   row.CreatedAt,
		}
	}
	return &ContactMessageList{Items: items, Pagination: NewPagination(page, limit, total)}, nil
}

// validateEmail is deliberately loose; deliverability is the mail
// server's problem, this only rejects obvious garbage.
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}
