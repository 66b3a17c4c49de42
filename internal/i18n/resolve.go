package i18n

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"edusite/internal/logger"
)

// Descriptor names the localizable fields of one entity type. TextFields
// hold plain prose; ListFields hold JSON-encoded arrays of text-bearing
// values. Everything not listed here is non-localizable and passes
// through resolution untouched.
type Descriptor struct {
	Entity     string
	TextFields []string
	ListFields []string
}

// Fields maps localizable field names to their raw stored values.
// List-typed fields carry their JSON encoding; the codec decodes them
// at response-shaping time.
type Fields map[string]string

// Translation is one satellite row holding an alternate-language
// rendition of an entity's localizable fields.
type Translation struct {
	ID        int64
	Language  string
	Fields    Fields
	CreatedAt time.Time
}

// Resolved is the language-consistent view produced by Resolve.
// Language is the language actually used for text content, which may
// differ from the entity's stored canonical language. Fallback is set
// when a non-canonical language was requested and no translation row
// existed, i.e. the localizable fields were blanked.
type Resolved struct {
	Language string
	Fallback bool
	Fields   Fields
}

// Resolve merges an entity's canonical localizable fields with its
// translation rows for the requested language.
//
// Requesting the canonical language returns the canonical fields
// verbatim. When a translation row exists for the requested language,
// each localizable field takes the translation's value; a field the
// translator left empty falls back to the canonical value so partial
// translations stay usable. When no row exists, every localizable
// field resolves empty so untranslated content is visible instead of
// silently served in the wrong language.
//
// Duplicate rows for one language violate the data model; Resolve
// keeps the earliest row, logs the anomaly, and carries on.
func Resolve(d Descriptor, canonical Fields, translations []Translation, requested, canonicalLang string, log logger.Logger) Resolved {
	lang := NormalizeLanguage(requested, canonicalLang)
	if lang == canonicalLang {
		return Resolved{Language: canonicalLang, Fields: cloneFields(canonical)}
	}

	tr := pickTranslation(d, translations, lang, log)
	if tr == nil {
		blank := make(Fields, len(d.TextFields)+len(d.ListFields))
		for _, f := range d.TextFields {
			blank[f] = ""
		}
		for _, f := range d.ListFields {
			blank[f] = ""
		}
		return Resolved{Language: lang, Fallback: true, Fields: blank}
	}

	merged := make(Fields, len(d.TextFields)+len(d.ListFields))
	for _, f := range append(append([]string{}, d.TextFields...), d.ListFields...) {
		v := tr.Fields[f]
		if strings.TrimSpace(v) == "" {
			v = canonical[f]
		}
		merged[f] = v
	}
	return Resolved{Language: lang, Fields: merged}
}

// pickTranslation returns the row matching lang, deterministically
// keeping the earliest one when the uniqueness invariant is violated.
func pickTranslation(d Descriptor, translations []Translation, lang string, log logger.Logger) *Translation {
	var matches []Translation
	for _, tr := range translations {
		if tr.Language == lang {
			matches = append(matches, tr)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > 1 {
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
				return matches[i].ID < matches[j].ID
			}
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		})
		if log != nil {
			log.Warn(fmt.Sprintf("duplicate %s translations for language %q, keeping row %d", d.Entity, lang, matches[0].ID))
		}
	}
	return &matches[0]
}

func cloneFields(in Fields) Fields {
	out := make(Fields, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
