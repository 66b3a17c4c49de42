package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLanguage reduces a requested language code to its base form
// ("en-US" -> "en"). A missing or malformed code behaves as a request
// for the canonical language; a well-formed but unsupported code is
// returned as-is so resolution can apply the missing-translation
// policy instead of guessing.
func NormalizeLanguage(requested, canonical string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return canonical
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return canonical
	}
	base, conf := tag.Base()
	if conf == language.No {
		return canonical
	}
	return base.String()
}
