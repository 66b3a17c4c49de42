package data

import (
	"database/sql"
	"time"

	"edusite/internal/i18n"
)

// Entity status values. New entities default to draft; only published
// entities are visible on public reads.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Program is the canonical row for a study program. Localizable text
// lives in the plain columns; array-valued fields (highlights,
// itinerary, ...) are stored JSON-encoded in text columns and decoded
// at the response boundary. Language is the canonical authoring locale.
type Program struct {
	ID            int64          `db:"id"`
	Slug          string         `db:"slug"`
	Status        string         `db:"status"`
	Title         string         `db:"title"`
	Subtitle      sql.NullString `db:"subtitle"`
	Description   sql.NullString `db:"description"`
	Highlights    sql.NullString `db:"highlights"`
	Itinerary     sql.NullString `db:"itinerary"`
	Requirements  sql.NullString `db:"requirements"`
	Academics     sql.NullString `db:"academics"`
	Sessions      sql.NullString `db:"sessions"`
	Types         sql.NullString `db:"types"`
	GradeLevels   sql.NullString `db:"grade_levels"`
	Gallery       sql.NullString `db:"gallery"`
	Featured      bool           `db:"featured"`
	FeaturedImage sql.NullString `db:"featured_image"`
	DurationDays  sql.NullInt64  `db:"duration_days"`
	PriceCents    sql.NullInt64  `db:"price_cents"`
	ApplyDeadline sql.NullTime   `db:"apply_deadline"`
	CityID        sql.NullInt64  `db:"city_id"`
	CountryID     sql.NullInt64  `db:"country_id"`
	Language      string         `db:"language"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Localizable returns the program's localizable fields keyed the way
// the resolution engine expects them.
func (p *Program) Localizable() i18n.Fields {
	return i18n.Fields{
		"title":        p.Title,
		"subtitle":     p.Subtitle.String,
		"description":  p.Description.String,
		"highlights":   p.Highlights.String,
		"itinerary":    p.Itinerary.String,
		"requirements": p.Requirements.String,
		"academics":    p.Academics.String,
		"sessions":     p.Sessions.String,
		"types":        p.Types.String,
		"grade_levels": p.GradeLevels.String,
	}
}

// ProgramTranslation mirrors a program's localizable fields in one
// alternate language. At most one row per (program, language) is
// intended; duplicates are tolerated and resolved deterministically.
type ProgramTranslation struct {
	ID           int64          `db:"id"`
	ProgramID    int64          `db:"program_id"`
	Language     string         `db:"language"`
	Title        sql.NullString `db:"title"`
	Subtitle     sql.NullString `db:"subtitle"`
	Description  sql.NullString `db:"description"`
	Highlights   sql.NullString `db:"highlights"`
	Itinerary    sql.NullString `db:"itinerary"`
	Requirements sql.NullString `db:"requirements"`
	Academics    sql.NullString `db:"academics"`
	Sessions     sql.NullString `db:"sessions"`
	Types        sql.NullString `db:"types"`
	GradeLevels  sql.NullString `db:"grade_levels"`
	CreatedAt    time.Time      `db:"created_at"`
}

// Resolution converts the row into the engine's generic shape.
func (t *ProgramTranslation) Resolution() i18n.Translation {
	return i18n.Translation{
		ID:        t.ID,
		Language:  t.Language,
		CreatedAt: t.CreatedAt,
		Fields: i18n.Fields{
			"title":        t.Title.String,
			"subtitle":     t.Subtitle.String,
			"description":  t.Description.String,
			"highlights":   t.Highlights.String,
			"itinerary":    t.Itinerary.String,
			"requirements": t.Requirements.String,
			"academics":    t.Academics.String,
			"sessions":     t.Sessions.String,
			"types":        t.Types.String,
			"grade_levels": t.GradeLevels.String,
		},
	}
}

// Blog is the canonical row for a blog post. Content is markdown and
// rendered to sanitized HTML at the response boundary.
type Blog struct {
	ID          int64          `db:"id"`
	Slug        string         `db:"slug"`
	Status      string         `db:"status"`
	Title       string         `db:"title"`
	Excerpt     sql.NullString `db:"excerpt"`
	Content     sql.NullString `db:"content"`
	Tags        sql.NullString `db:"tags"`
	CoverImage  sql.NullString `db:"cover_image"`
	AuthorName  sql.NullString `db:"author_name"`
	PublishedAt sql.NullTime   `db:"published_at"`
	Language    string         `db:"language"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (b *Blog) Localizable() i18n.Fields {
	return i18n.Fields{
		"title":   b.Title,
		"excerpt": b.Excerpt.String,
		"content": b.Content.String,
		"tags":    b.Tags.String,
	}
}

// BlogTranslation mirrors a blog post's localizable fields.
type BlogTranslation struct {
	ID        int64          `db:"id"`
	BlogID    int64          `db:"blog_id"`
	Language  string         `db:"language"`
	Title     sql.NullString `db:"title"`
	Excerpt   sql.NullString `db:"excerpt"`
	Content   sql.NullString `db:"content"`
	Tags      sql.NullString `db:"tags"`
	CreatedAt time.Time      `db:"created_at"`
}

func (t *BlogTranslation) Resolution() i18n.Translation {
	return i18n.Translation{
		ID:        t.ID,
		Language:  t.Language,
		CreatedAt: t.CreatedAt,
		Fields: i18n.Fields{
			"title":   t.Title.String,
			"excerpt": t.Excerpt.String,
			"content": t.Content.String,
			"tags":    t.Tags.String,
		},
	}
}

// Testimonial is a student quote shown on the site.
type Testimonial struct {
	ID           int64          `db:"id"`
	Status       string         `db:"status"`
	StudentName  string         `db:"student_name"`
	Quote        sql.NullString `db:"quote"`
	ProgramTitle sql.NullString `db:"program_title"`
	AvatarImage  sql.NullString `db:"avatar_image"`
	Rating       sql.NullInt64  `db:"rating"`
	DisplayOrder int            `db:"display_order"`
	Language     string         `db:"language"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m *Testimonial) Localizable() i18n.Fields {
	return i18n.Fields{
		"student_name":  m.StudentName,
		"quote":         m.Quote.String,
		"program_title": m.ProgramTitle.String,
	}
}

// TestimonialTranslation mirrors a testimonial's localizable fields.
type TestimonialTranslation struct {
	ID            int64          `db:"id"`
	TestimonialID int64          `db:"testimonial_id"`
	Language      string         `db:"language"`
	StudentName   sql.NullString `db:"student_name"`
	Quote         sql.NullString `db:"quote"`
	ProgramTitle  sql.NullString `db:"program_title"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (t *TestimonialTranslation) Resolution() i18n.Translation {
	return i18n.Translation{
		ID:        t.ID,
		Language:  t.Language,
		CreatedAt: t.CreatedAt,
		Fields: i18n.Fields{
			"student_name":  t.StudentName.String,
			"quote":         t.Quote.String,
			"program_title": t.ProgramTitle.String,
		},
	}
}

// FAQ is a question/answer pair grouped by category.
type FAQ struct {
	ID           int64          `db:"id"`
	Status       string         `db:"status"`
	Question     string         `db:"question"`
	Answer       sql.NullString `db:"answer"`
	Category     sql.NullString `db:"category"`
	DisplayOrder int            `db:"display_order"`
	Language     string         `db:"language"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (f *FAQ) Localizable() i18n.Fields {
	return i18n.Fields{
		"question": f.Question,
		"answer":   f.Answer.String,
		"category": f.Category.String,
	}
}

// FAQTranslation mirrors an FAQ's localizable fields.
type FAQTranslation struct {
	ID        int64          `db:"id"`
	FAQID     int64          `db:"faq_id"`
	Language  string         `db:"language"`
	Question  sql.NullString `db:"question"`
	Answer    sql.NullString `db:"answer"`
	Category  sql.NullString `db:"category"`
	CreatedAt time.Time      `db:"created_at"`
}

func (t *FAQTranslation) Resolution() i18n.Translation {
	return i18n.Translation{
		ID:        t.ID,
		Language:  t.Language,
		CreatedAt: t.CreatedAt,
		Fields: i18n.Fields{
			"question": t.Question.String,
			"answer":   t.Answer.String,
			"category": t.Category.String,
		},
	}
}

// Video is an embedded promotional or informational video.
type Video struct {
	ID              int64          `db:"id"`
	Status          string         `db:"status"`
	Title           string         `db:"title"`
	Description     sql.NullString `db:"description"`
	VideoURL        string         `db:"video_url"`
	Thumbnail       sql.NullString `db:"thumbnail"`
	DurationSeconds sql.NullInt64  `db:"duration_seconds"`
	Category        sql.NullString `db:"category"`
	DisplayOrder    int            `db:"display_order"`
	Language        string         `db:"language"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (v *Video) Localizable() i18n.Fields {
	return i18n.Fields{
		"title":       v.Title,
		"description": v.Description.String,
	}
}

// VideoTranslation mirrors a video's localizable fields.
type VideoTranslation struct {
	ID          int64          `db:"id"`
	VideoID     int64          `db:"video_id"`
	Language    string         `db:"language"`
	Title       sql.NullString `db:"title"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (t *VideoTranslation) Resolution() i18n.Translation {
	return i18n.Translation{
		ID:        t.ID,
		Language:  t.Language,
		CreatedAt: t.CreatedAt,
		Fields: i18n.Fields{
			"title":       t.Title.String,
			"description": t.Description.String,
		},
	}
}

// Country is shared reference data. NameEn is optional; label
// translation falls back to Name when it is empty.
type Country struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	NameEn       sql.NullString `db:"name_en"`
	Code         sql.NullString `db:"code"`
	Active       bool           `db:"active"`
	DisplayOrder int            `db:"display_order"`
}

// City is shared reference data; its country must exist first.
type City struct {
	ID           int64          `db:"id"`
	CountryID    int64          `db:"country_id"`
	Name         string         `db:"name"`
	NameEn       sql.NullString `db:"name_en"`
	Active       bool           `db:"active"`
	DisplayOrder int            `db:"display_order"`
}

// GradeLevel is shared reference data (e.g. middle school, high school).
type GradeLevel struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	NameEn       sql.NullString `db:"name_en"`
	Active       bool           `db:"active"`
	DisplayOrder int            `db:"display_order"`
}

// ProgramType is shared reference data (e.g. STEM, business).
type ProgramType struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	NameEn       sql.NullString `db:"name_en"`
	Active       bool           `db:"active"`
	DisplayOrder int            `db:"display_order"`
}

// ContactMessage is an inbound contact-form submission.
type ContactMessage struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Email       string         `db:"email"`
	Phone       sql.NullString `db:"phone"`
	Subject     sql.NullString `db:"subject"`
	Body        string         `db:"body"`
	ProgramSlug sql.NullString `db:"program_slug"`
	CreatedAt   time.Time      `db:"created_at"`
}
