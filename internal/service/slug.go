package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"
)

// Slugify builds a URL slug from a title. Chinese titles are
// transliterated first so canonical-language content still gets a
// readable ASCII slug.
func Slugify(title string) string {
	s := unidecode.Unidecode(title)
	s = strings.ToLower(s)
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "item-" + uuid.NewString()[:8]
	}
	return out
}

// uniqueSlug appends a numeric suffix until the slug is free. After a
// handful of collisions it falls back to a random suffix so the loop
// stays bounded.
func uniqueSlug(ctx context.Context, base string, excludeID int64, exists func(context.Context, string, int64) (bool, error)) (string, error) {
	slug := base
	for i := 2; i <= 6; i++ {
		taken, err := exists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
	return base + "-" + uuid.NewString()[:8], nil
}
