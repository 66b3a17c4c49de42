package service

import (
	"time"

	"edusite/internal/i18n"
)

// Entity type tags. They name cache buckets and resolution
// descriptors, so every mutation path and every cache key agree on
// the same strings.
const (
	EntityProgram     = "program"
	EntityBlog        = "blog"
	EntityTestimonial = "testimonial"
	EntityFAQ         = "faq"
	EntityVideo       = "video"
	EntityLookup      = "lookup"
)

// Per-entity localizable field descriptors. One generic resolver
// parameterized by these replaces the per-route merge logic each
// entity type would otherwise duplicate.
var (
	programFields = i18n.Descriptor{
		Entity:     EntityProgram,
		TextFields: []string{"title", "subtitle", "description"},
		ListFields: []string{"highlights", "itinerary", "requirements", "academics", "sessions", "types", "grade_levels"},
	}
	blogFields = i18n.Descriptor{
		Entity:     EntityBlog,
		TextFields: []string{"title", "excerpt", "content"},
		ListFields: []string{"tags"},
	}
	testimonialFields = i18n.Descriptor{
		Entity:     EntityTestimonial,
		TextFields: []string{"student_name", "quote", "program_title"},
	}
	faqFields = i18n.Descriptor{
		Entity:     EntityFAQ,
		TextFields: []string{"question", "answer", "category"},
	}
	videoFields = i18n.Descriptor{
		Entity:     EntityVideo,
		TextFields: []string{"title", "description"},
	}
)

// QueryCache is the slice of the cache layer services depend on.
// Injected so tests can substitute a fake.
type QueryCache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	InvalidateType(entityType string) error
	DefaultTTL() time.Duration
}

// localizedName picks the display name for a lookup row.
func localizedName(name, nameEn, lang, canonical string) string {
	if lang != canonical && nameEn != "" {
		return nameEn
	}
	return name
}
