package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"edusite/internal/cache"
	"edusite/internal/data"
	"edusite/internal/i18n"
	"edusite/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// BlogRepository defines the interface for database operations on blog posts.
type BlogRepository interface {
	List(ctx context.Context, f data.BlogFilter) ([]*data.Blog, int, error)
	GetBySlug(ctx context.Context, slug string) (*data.Blog, error)
	GetByID(ctx context.Context, id int64) (*data.Blog, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Create(ctx context.Context, b *data.Blog) error
	Update(ctx context.Context, b *data.Blog) error
	Delete(ctx context.Context, id int64) error
	Translations(ctx context.Context, blogID int64) ([]*data.BlogTranslation, error)
	UpsertTranslation(ctx context.Context, t *data.BlogTranslation) error
	DeleteTranslation(ctx context.Context, blogID int64, language string) error
}

// BlogView is the API-facing shape of a resolved blog post. Content is
// markdown rendered to sanitized HTML; ContentMarkdown carries the raw
// source only on admin reads.
type BlogView struct {
	ID              int64             `json:"id"`
	Slug            string            `json:"slug"`
	Status          string            `json:"status"`
	Language        string            `json:"language"`
	Fallback        bool              `json:"fallback,omitempty"`
	Title           string            `json:"title"`
	Excerpt         string            `json:"excerpt"`
	Content         string            `json:"content"`
	ContentMarkdown string            `json:"contentMarkdown,omitempty"`
	Tags            []string          `json:"tags"`
	CoverImage      string            `json:"coverImage,omitempty"`
	AuthorName      string            `json:"authorName,omitempty"`
	PublishedAt     *time.Time        `json:"publishedAt,omitempty"`
	Translations    []TranslationView `json:"translations,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// BlogInput carries canonical-language fields plus the optional English
// payload.
type BlogInput struct {
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	CoverImage  string     `json:"coverImage"`
	AuthorName  string     `json:"authorName"`
	PublishedAt *time.Time `json:"publishedAt"`

	TitleEn   string   `json:"titleEn"`
	ExcerptEn string   `json:"excerptEn"`
	ContentEn string   `json:"contentEn"`
	TagsEn    []string `json:"tagsEn"`
}

// ListBlogsParams narrows and paginates blog listings.
type ListBlogsParams struct {
	Language      string
	Page          int
	Limit         int
	Status        string
	Tag           string
	IncludeDrafts bool
}

// BlogList is the listing payload, cached as a whole.
type BlogList struct {
	Items      []*BlogView `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// BlogService provides business logic for managing blog posts.
type BlogService struct {
	repo      BlogRepository
	cache     QueryCache
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	log       logger.Logger
	canonical string
}

// NewBlogService creates a new BlogService with the given dependencies.
func NewBlogService(repo BlogRepository, qc QueryCache, log logger.Logger, canonical string) *BlogService {
	return &BlogService{
		repo: repo,
		cache: qc,
		// GFM covers the tables and strikethrough that imported posts use.
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
		canonical: canonical,
	}
}

// List returns resolved blog posts. Excerpts are served as-is; full
// content rendering happens on single-post reads only. Public listings
// are cached by query signature.
func (s *BlogService) List(ctx context.Context, p ListBlogsParams) (*BlogList, error) {
	page, limit := NormalizePage(p.Page, p.Limit)
	lang := i18n.NormalizeLanguage(p.Language, s.canonical)

	status := p.Status
	if !p.IncludeDrafts {
		status = data.StatusPublished
	}

	key := cache.Key(EntityBlog, "list", lang, status, p.Tag, strconv.Itoa(page), strconv.Itoa(limit))
	cacheable := !p.IncludeDrafts
	if cacheable {
		if cached, err := s.cache.Get(key); err != nil {
			s.log.Error(err, "Blog list cache read failed")
		} else if cached != nil {
			var list BlogList
			if err := json.Unmarshal(cached, &list); err == nil {
				return &list, nil
			}
			s.log.Warn("Discarding unreadable blog list cache entry")
		}
	}

	blogs, total, err := s.repo.List(ctx, data.BlogFilter{
		Status: status,
		Tag:    p.Tag,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*BlogView, 0, len(blogs))
	for _, blog := range blogs {
		view, err := s.resolveView(ctx, blog, lang, false, false)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}

	list := &BlogList{Items: items, Pagination: NewPagination(page, limit, total)}
	if cacheable {
		if encoded, err := json.Marshal(list); err == nil {
			if err := s.cache.Set(key, encoded, s.cache.DefaultTTL()); err != nil {
				s.log.Error(err, "Blog list cache write failed")
			}
		}
	}
	return list, nil
}

// GetBySlug returns one published post with its content rendered to
// sanitized HTML in the requested language.
func (s *BlogService) GetBySlug(ctx context.Context, slug, language string) (*BlogView, error) {
	blog, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if blog.Status != data.StatusPublished {
		return nil, data.ErrNotFound
	}
	lang := i18n.NormalizeLanguage(language, s.canonical)
	return s.resolveView(ctx, blog, lang, true, false)
}

// AdminGet returns a post in its canonical language regardless of
// status, with raw markdown and translation rows for the edit form.
func (s *BlogService) AdminGet(ctx context.Context, id int64) (*BlogView, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, blog, s.canonical, true, true)
}

// Create inserts a new post and its optional English translation.
func (s *BlogService) Create(ctx context.Context, in BlogInput) (*BlogView, error) {
	if err := required("title", in.Title); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}

	base := in.Slug
	if base == "" {
		base = Slugify(in.Title)
	}
	slug, err := uniqueSlugOrConflict(ctx, base, in.Slug != "", 0, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	blog := &data.Blog{Slug: slug, Status: status, Language: s.canonical}
	if err := s.applyInput(blog, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, err
	}
	if err := s.syncTranslation(ctx, blog.ID, in); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.AdminGet(ctx, blog.ID)
}

// Update rewrites a post and upserts or clears its English translation.
func (s *BlogService) Update(ctx context.Context, id int64, in BlogInput) (*BlogView, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := required("title", in.Title); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	blog.Status = status

	if in.Slug != "" && in.Slug != blog.Slug {
		slug, err := uniqueSlugOrConflict(ctx, in.Slug, true, id, s.repo.SlugExists)
		if err != nil {
			return nil, err
		}
		blog.Slug = slug
	}
	if err := s.applyInput(blog, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}
	if err := s.syncTranslation(ctx, id, in); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.AdminGet(ctx, id)
}

// Delete removes a post; translation rows cascade at the schema level.
func (s *BlogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *BlogService) applyInput(blog *data.Blog, in BlogInput) error {
	tags, err := i18n.EncodeList(in.Tags)
	if err != nil {
		return err
	}
	// Markdown source is stored raw; sanitization happens at render
	// time so the stored document survives policy changes.
	blog.Title = s.sanitizer.Sanitize(in.Title)
	blog.Excerpt = nullString(s.sanitizer.Sanitize(in.Excerpt))
	blog.Content = nullString(in.Content)
	blog.Tags = nullString(tags)
	blog.CoverImage = nullString(in.CoverImage)
	blog.AuthorName = nullString(in.AuthorName)
	blog.PublishedAt = nullTime(in.PublishedAt)
	return nil
}

func (in BlogInput) hasEnglish() bool {
	return in.TitleEn != "" || in.ExcerptEn != "" || in.ContentEn != "" || len(in.TagsEn) > 0
}

func (s *BlogService) syncTranslation(ctx context.Context, blogID int64, in BlogInput) error {
	if !in.hasEnglish() {
		return s.repo.DeleteTranslation(ctx, blogID, alternateLanguage)
	}
	tags, err := i18n.EncodeList(in.TagsEn)
	if err != nil {
		return err
	}
	return s.repo.UpsertTranslation(ctx, &data.BlogTranslation{
		BlogID:   blogID,
		Language: alternateLanguage,
		Title:    nullString(s.sanitizer.Sanitize(in.TitleEn)),
		Excerpt:  nullString(s.sanitizer.Sanitize(in.ExcerptEn)),
		Content:  nullString(in.ContentEn),
		Tags:     nullString(tags),
	})
}

// resolveView runs resolution and shapes the post for the API. When
// renderContent is set the resolved markdown is converted to sanitized
// HTML; listings skip the conversion.
func (s *BlogService) resolveView(ctx context.Context, blog *data.Blog, lang string, renderContent, withTranslations bool) (*BlogView, error) {
	rows, err := s.repo.Translations(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	translations := make([]i18n.Translation, len(rows))
	for i, row := range rows {
		translations[i] = row.Resolution()
	}

	resolved := i18n.Resolve(blogFields, blog.Localizable(), translations, lang, s.canonical, s.log)

	tags, err := i18n.DecodeList("tags", resolved.Fields["tags"])
	if err != nil {
		return nil, err
	}

	view := &BlogView{
		ID:          blog.ID,
		Slug:        blog.Slug,
		Status:      blog.Status,
		Language:    resolved.Language,
		Fallback:    resolved.Fallback,
		Title:       resolved.Fields["title"],
		Excerpt:     resolved.Fields["excerpt"],
		Tags:        tags,
		CoverImage:  blog.CoverImage.String,
		AuthorName:  blog.AuthorName.String,
		PublishedAt: timePtr(blog.PublishedAt),
		CreatedAt:   blog.CreatedAt,
		UpdatedAt:   blog.UpdatedAt,
	}

	if renderContent {
		html, err := s.renderMarkdown(resolved.Fields["content"])
		if err != nil {
			return nil, err
		}
		view.Content = html
	}
	if withTranslations {
		view.ContentMarkdown = resolved.Fields["content"]
		view.Translations = make([]TranslationView, len(translations))
		for i, tr := range translations {
			view.Translations[i] = TranslationView{Language: tr.Language, Fields: tr.Fields}
		}
	}
	return view, nil
}

func (s *BlogService) renderMarkdown(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return s.sanitizer.Sanitize(buf.String()), nil
}

func (s *BlogService) invalidate() {
	if err := s.cache.InvalidateType(EntityBlog); err != nil {
		s.log.Error(err, "Blog cache invalidation failed")
	}
}
