package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"edusite/internal/cache"
	"edusite/internal/data"
	"edusite/internal/i18n"
	"edusite/internal/logger"

	"github.com/microcosm-cc/bluemonday"
)

// ShowcaseRepository defines the interface for database operations on
// testimonials, FAQs and videos.
type ShowcaseRepository interface {
	ListTestimonials(ctx context.Context, f data.ShowcaseFilter) ([]*data.Testimonial, int, error)
	GetTestimonial(ctx context.Context, id int64) (*data.Testimonial, error)
	CreateTestimonial(ctx context.Context, m *data.Testimonial) error
	UpdateTestimonial(ctx context.Context, m *data.Testimonial) error
	DeleteTestimonial(ctx context.Context, id int64) error
	TestimonialTranslations(ctx context.Context, id int64) ([]*data.TestimonialTranslation, error)
	UpsertTestimonialTranslation(ctx context.Context, t *data.TestimonialTranslation) error
	DeleteTestimonialTranslation(ctx context.Context, id int64, language string) error

	ListFAQs(ctx context.Context, f data.ShowcaseFilter) ([]*data.FAQ, int, error)
	GetFAQ(ctx context.Context, id int64) (*data.FAQ, error)
	CreateFAQ(ctx context.Context, f *data.FAQ) error
	UpdateFAQ(ctx context.Context, f *data.FAQ) error
	DeleteFAQ(ctx context.Context, id int64) error
	FAQTranslations(ctx context.Context, id int64) ([]*data.FAQTranslation, error)
	UpsertFAQTranslation(ctx context.Context, t *data.FAQTranslation) error
	DeleteFAQTranslation(ctx context.Context, id int64, language string) error

	ListVideos(ctx context.Context, f data.ShowcaseFilter) ([]*data.Video, int, error)
	GetVideo(ctx context.Context, id int64) (*data.Video, error)
	CreateVideo(ctx context.Context, v *data.Video) error
	UpdateVideo(ctx context.Context, v *data.Video) error
	DeleteVideo(ctx context.Context, id int64) error
	VideoTranslations(ctx context.Context, id int64) ([]*data.VideoTranslation, error)
	UpsertVideoTranslation(ctx context.Context, t *data.VideoTranslation) error
	DeleteVideoTranslation(ctx context.Context, id int64, language string) error
}

// ListShowcaseParams narrows and paginates testimonial, FAQ and video
// listings.
type ListShowcaseParams struct {
	Language      string
	Page          int
	Limit         int
	Status        string
	Category      string
	IncludeDrafts bool
}

// TestimonialView is the API-facing shape of a resolved testimonial.
type TestimonialView struct {
	ID           int64             `json:"id"`
	Status       string            `json:"status"`
	Language     string            `json:"language"`
	Fallback     bool              `json:"fallback,omitempty"`
	StudentName  string            `json:"studentName"`
	Quote        string            `json:"quote"`
	ProgramTitle string            `json:"programTitle"`
	AvatarImage  string            `json:"avatarImage,omitempty"`
	Rating       int64             `json:"rating,omitempty"`
	DisplayOrder int               `json:"displayOrder"`
	Translations []TranslationView `json:"translations,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// TestimonialInput carries canonical-language fields plus the optional
// English payload.
type TestimonialInput struct {
	Status       string `json:"status"`
	StudentName  string `json:"studentName"`
	Quote        string `json:"quote"`
	ProgramTitle string `json:"programTitle"`
	AvatarImage  string `json:"avatarImage"`
	Rating       int64  `json:"rating"`
	DisplayOrder int    `json:"displayOrder"`

	StudentNameEn  string `json:"studentNameEn"`
	QuoteEn        string `json:"quoteEn"`
	ProgramTitleEn string `json:"programTitleEn"`
}

// FAQView is the API-facing shape of a resolved FAQ.
type FAQView struct {
	ID           int64             `json:"id"`
	Status       string            `json:"status"`
	Language     string            `json:"language"`
	Fallback     bool              `json:"fallback,omitempty"`
	Question     string            `json:"question"`
	Answer       string            `json:"answer"`
	Category     string            `json:"category"`
	DisplayOrder int               `json:"displayOrder"`
	Translations []TranslationView `json:"translations,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// FAQInput carries canonical-language fields plus the optional English
// payload.
type FAQInput struct {
	Status       string `json:"status"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"displayOrder"`

	QuestionEn string `json:"questionEn"`
	AnswerEn   string `json:"answerEn"`
	CategoryEn string `json:"categoryEn"`
}

// VideoView is the API-facing shape of a resolved video.
type VideoView struct {
	ID              int64             `json:"id"`
	Status          string            `json:"status"`
	Language        string            `json:"language"`
	Fallback        bool              `json:"fallback,omitempty"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	VideoURL        string            `json:"videoUrl"`
	Thumbnail       string            `json:"thumbnail,omitempty"`
	DurationSeconds int64             `json:"durationSeconds,omitempty"`
	Category        string            `json:"category,omitempty"`
	DisplayOrder    int               `json:"displayOrder"`
	Translations    []TranslationView `json:"translations,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// VideoInput carries canonical-language fields plus the optional
// English payload.
type VideoInput struct {
	Status          string `json:"status"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"videoUrl"`
	Thumbnail       string `json:"thumbnail"`
	DurationSeconds int64  `json:"durationSeconds"`
	Category        string `json:"category"`
	DisplayOrder    int    `json:"displayOrder"`

	TitleEn       string `json:"titleEn"`
	DescriptionEn string `json:"descriptionEn"`
}

// TestimonialList is the testimonial listing payload, cached as a whole.
type TestimonialList struct {
	Items      []*TestimonialView `json:"items"`
	Pagination Pagination         `json:"pagination"`
}

// FAQList is the FAQ listing payload, cached as a whole.
type FAQList struct {
	Items      []*FAQView `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// VideoList is the video listing payload, cached as a whole.
type VideoList struct {
	Items      []*VideoView `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// ShowcaseService provides business logic for testimonials, FAQs and
// videos. The three share one service because their lifecycles are
// identical: display-ordered rows with a handful of localizable fields.
type ShowcaseService struct {
	repo      ShowcaseRepository
	cache     QueryCache
	sanitizer *bluemonday.Policy
	log       logger.Logger
	canonical string
}

// NewShowcaseService creates a new ShowcaseService with the given dependencies.
func NewShowcaseService(repo ShowcaseRepository, qc QueryCache, log logger.Logger, canonical string) *ShowcaseService {
	return &ShowcaseService{
		repo:      repo,
		cache:     qc,
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
		canonical: canonical,
	}
}

// listSetup normalizes shared listing parameters and builds the cache key.
func (s *ShowcaseService) listSetup(entity string, p ListShowcaseParams) (lang, status, key string, page, limit int, cacheable bool) {
	page, limit = NormalizePage(p.Page, p.Limit)
	lang = i18n.NormalizeLanguage(p.Language, s.canonical)
	status = p.Status
	if !p.IncludeDrafts {
		status = data.StatusPublished
	}
	key = cache.Key(entity, "list", lang, status, p.Category, strconv.Itoa(page), strconv.Itoa(limit))
	cacheable = !p.IncludeDrafts
	return
}

func (s *ShowcaseService) cachedList(key string, cacheable bool, out interface{}) bool {
	if !cacheable {
		return false
	}
	cached, err := s.cache.Get(key)
	if err != nil {
		s.log.Error(err, "Showcase list cache read failed")
		return false
	}
	if cached == nil {
		return false
	}
	if err := json.Unmarshal(cached, out); err != nil {
		s.log.Warn("Discarding unreadable showcase list cache entry")
		return false
	}
	return true
}

func (s *ShowcaseService) storeList(key string, cacheable bool, list interface{}) {
	if !cacheable {
		return
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, encoded, s.cache.DefaultTTL()); err != nil {
		s.log.Error(err, "Showcase list cache write failed")
	}
}

func (s *ShowcaseService) invalidate(entity string) {
	if err := s.cache.InvalidateType(entity); err != nil {
		s.log.Error(err, "Showcase cache invalidation failed")
	}
}

// --- Testimonials ---

// ListTestimonials returns resolved testimonials ordered for display.
func (s *ShowcaseService) ListTestimonials(ctx context.Context, p ListShowcaseParams) (*TestimonialList, error) {
	lang, status, key, page, limit, cacheable := s.listSetup(EntityTestimonial, p)
	var list TestimonialList
	if s.cachedList(key, cacheable, &list) {
		return &list, nil
	}

	rows, total, err := s.repo.ListTestimonials(ctx, data.ShowcaseFilter{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]*TestimonialView, 0, len(rows))
	for _, row := range rows {
		view, err := s.testimonialView(ctx, row, lang, false)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	list = TestimonialList{Items: items, Pagination: NewPagination(page, limit, total)}
	s.storeList(key, cacheable, &list)
	return &list, nil
}

// GetTestimonial returns one testimonial for the admin edit form.
func (s *ShowcaseService) GetTestimonial(ctx context.Context, id int64) (*TestimonialView, error) {
	row, err := s.repo.GetTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.testimonialView(ctx, row, s.canonical, true)
}

// CreateTestimonial inserts a testimonial and its optional English translation.
func (s *ShowcaseService) CreateTestimonial(ctx context.Context, in TestimonialInput) (*TestimonialView, error) {
	if err := required("studentName", in.StudentName); err != nil {
		return nil, err
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row := &data.Testimonial{Status: status, Language: s.canonical}
	s.applyTestimonial(row, in)
	if err := s.repo.CreateTestimonial(ctx, row); err != nil {
		return nil, err
	}
	if err := s.syncTestimonialTranslation(ctx, row.ID, in); err != nil {
		return nil, err
	}
	s.invalidate(EntityTestimonial)
	return s.GetTestimonial(ctx, row.ID)
}

// UpdateTestimonial rewrites a testimonial and syncs its English translation.
func (s *ShowcaseService) UpdateTestimonial(ctx context.Context, id int64, in TestimonialInput) (*TestimonialView, error) {
	row, err := s.repo.GetTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := required("studentName", in.StudentName); err != nil {
		return nil, err
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row.Status = status
	s.applyTestimonial(row, in)
	if err := s.repo.UpdateTestimonial(ctx, row); err != nil {
		return nil, err
	}
	if err := s.syncTestimonialTranslation(ctx, id, in); err != nil {
		return nil, err
	}
	s.invalidate(EntityTestimonial)
	return s.GetTestimonial(ctx, id)
}

// DeleteTestimonial removes a testimonial; translations cascade.
func (s *ShowcaseService) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTestimonial(ctx, id); err != nil {
		return err
	}
	s.invalidate(EntityTestimonial)
	return nil
}

func (s *ShowcaseService) applyTestimonial(row *data.Testimonial, in TestimonialInput) {
	row.StudentName = s.sanitizer.Sanitize(in.StudentName)
	row.Quote = nullString(s.sanitizer.Sanitize(in.Quote))
	row.ProgramTitle = nullString(s.sanitizer.Sanitize(in.ProgramTitle))
	row.AvatarImage = nullString(in.AvatarImage)
	row.Rating = nullInt(in.Rating)
	row.DisplayOrder = in.DisplayOrder
}

func (in TestimonialInput) hasEnglish() bool {
	return in.StudentNameEn != "" || in.QuoteEn != "" || in.ProgramTitleEn != ""
}

func (s *ShowcaseService) syncTestimonialTranslation(ctx context.Context, id int64, in TestimonialInput) error {
	if !in.hasEnglish() {
		return s.repo.DeleteTestimonialTranslation(ctx, id, alternateLanguage)
	}
	return s.repo.UpsertTestimonialTranslation(ctx, &data.TestimonialTranslation{
		TestimonialID: id,
		Language:      alternateLanguage,
		StudentName:   nullString(s.sanitizer.Sanitize(in.StudentNameEn)),
		Quote:         nullString(s.sanitizer.Sanitize(in.QuoteEn)),
		ProgramTitle:  nullString(s.sanitizer.Sanitize(in.ProgramTitleEn)),
	})
}

func (s *ShowcaseService) testimonialView(ctx context.Context, row *data.Testimonial, lang string, withTranslations bool) (*TestimonialView, error) {
	trRows, err := s.repo.TestimonialTranslations(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	translations := make([]i18n.Translation, len(trRows))
	for i, tr := range trRows {
		translations[i] = tr.Resolution()
	}
	resolved := i18n.Resolve(testimonialFields, row.Localizable(), translations, lang, s.canonical, s.log)

	view := &TestimonialView{
		ID:           row.ID,
		Status:       row.Status,
		Language:     resolved.Language,
		Fallback:     resolved.Fallback,
		StudentName:  resolved.Fields["student_name"],
		Quote:        resolved.Fields["quote"],
		ProgramTitle: resolved.Fields["program_title"],
		AvatarImage:  row.AvatarImage.String,
		Rating:       row.Rating.Int64,
		DisplayOrder: row.DisplayOrder,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if withTranslations {
		view.Translations = make([]TranslationView, len(translations))
		for i, tr := range translations {
			view.Translations[i] = TranslationView{Language: tr.Language, Fields: tr.Fields}
		}
	}
	return view, nil
}

func validateRating(rating int64) error {
	if rating < 0 || rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}
	return nil
}

// --- FAQs ---

// ListFAQs returns resolved FAQs ordered for display.
func (s *ShowcaseService) ListFAQs(ctx context.Context, p ListShowcaseParams) (*FAQList, error) {
	lang, status, key, page, limit, cacheable := s.listSetup(EntityFAQ, p)
	var list FAQList
	if s.cachedList(key, cacheable, &list) {
		return &list, nil
	}

	rows, total, err := s.repo.ListFAQs(ctx, data.ShowcaseFilter{
		Status:   status,
		Category: p.Category,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]*FAQView, 0, len(rows))
	for _, row := range rows {
		view, err := s.faqView(ctx, row, lang, false)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	list = FAQList{Items: items, Pagination: NewPagination(page, limit, total)}
	s.storeList(key, cacheable, &list)
	return &list, nil
}

// GetFAQ returns one FAQ for the admin edit form.
func (s *ShowcaseService) GetFAQ(ctx context.Context, id int64) (*FAQView, error) {
	row, err := s.repo.GetFAQ(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.faqView(ctx, row, s.canonical, true)
}

// CreateFAQ inserts an FAQ and its optional English translation.
func (s *ShowcaseService) CreateFAQ(ctx context.Context, in FAQInput) (*FAQView, error) {
	if err := required("question", in.Question); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row := &data.FAQ{Status: status, Language: s.canonical}
	s.applyFAQ(row, in)
	if err := s.repo.CreateFAQ(ctx, row); err != nil {
		return nil, err
	}
	if err := s.syncFAQTranslation(ctx, row.ID, in); err != nil {
		return nil, err
	}
	s.invalidate(EntityFAQ)
	return s.GetFAQ(ctx, row.ID)
}

// UpdateFAQ rewrites an FAQ and syncs its English translation.
func (s *ShowcaseService) UpdateFAQ(ctx context.Context, id int64, in FAQInput) (*FAQView, error) {
	row, err := s.repo.GetFAQ(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := required("question", in.Question); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row.Status = status
	s.applyFAQ(row, in)
	if err := s.repo.UpdateFAQ(ctx, row); err != nil {
		return nil, err
	}
	if err := s.syncFAQTranslation(ctx, id, in); err != nil {
		return nil, err
	}
	s.invalidate(EntityFAQ)
	return s.GetFAQ(ctx, id)
}

// DeleteFAQ removes an FAQ; translations cascade.
func (s *ShowcaseService) DeleteFAQ(ctx context.Context, id int64) error {
	if err := s.repo.DeleteFAQ(ctx, id); err != nil {
		return err
	}
	s.invalidate(EntityFAQ)
	return nil
}

func (s *ShowcaseService) applyFAQ(row *data.FAQ, in FAQInput) {
	row.Question = s.sanitizer.Sanitize(in.Question)
	row.Answer = nullString(s.sanitizer.Sanitize(in.Answer))
	row.Category = nullString(s.sanitizer.Sanitize(in.Category))
	row.DisplayOrder = in.DisplayOrder
}

func (in FAQInput) hasEnglish() bool {
	return in.QuestionEn != "" || in.AnswerEn != "" || in.CategoryEn != ""
}

func (s *ShowcaseService) syncFAQTranslation(ctx context.Context, id int64, in FAQInput) error {
	if !in.hasEnglish() {
		return s.repo.DeleteFAQTranslation(ctx, id, alternateLanguage)
	}
	return s.repo.UpsertFAQTranslation(ctx, &data.FAQTranslation{
		FAQID:    id,
		Language: alternateLanguage,
		Question: nullString(s.sanitizer.Sanitize(in.QuestionEn)),
		Answer:   nullString(s.sanitizer.Sanitize(in.AnswerEn)),
		Category: nullString(s.sanitizer.Sanitize(in.CategoryEn)),
	})
}

func (s *ShowcaseService) faqView(ctx context.Context, row *data.FAQ, lang string, withTranslations bool) (*FAQView, error) {
	trRows, err := s.repo.FAQTranslations(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	translations := make([]i18n.Translation, len(trRows))
	for i, tr := range trRows {
		translations[i] = tr.Resolution()
	}
	resolved := i18n.Resolve(faqFields, row.Localizable(), translations, lang, s.canonical, s.log)

	view := &FAQView{
		ID:           row.ID,
		Status:       row.Status,
		Language:     resolved.Language,
		Fallback:     resolved.Fallback,
		Question:     resolved.Fields["question"],
		Answer:       resolved.Fields["answer"],
		Category:     resolved.Fields["category"],
		DisplayOrder: row.DisplayOrder,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if withTranslations {
		view.Translations = make([]TranslationView, len(translations))
		for i, tr := range translations {
			view.Translations[i] = TranslationView{Language: tr.Language, Fields: tr.Fields}
		}
	}
	return view, nil
}

// --- Videos ---

// ListVideos returns resolved videos ordered for display.
func (s *ShowcaseService) ListVideos(ctx context.Context, p ListShowcaseParams) (*VideoList, error) {
	lang, status, key, page, limit, cacheable := s.listSetup(EntityVideo, p)
	var list VideoList
	if s.cachedList(key, cacheable, &list) {
		return &list, nil
	}

	rows, total, err := s.repo.ListVideos(ctx, data.ShowcaseFilter{
		Status:   status,
		Category: p.Category,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]*VideoView, 0, len(rows))
	for _, row := range rows {
		view, err := s.videoView(ctx, row, lang, false)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	list = VideoList{Items: items, Pagination: NewPagination(page, limit, total)}
	s.storeList(key, cacheable, &list)
	return &list, nil
}

// GetVideo returns one video for the admin edit form.
func (s *ShowcaseService) GetVideo(ctx context.Context, id int64) (*VideoView, error) {
	row, err := s.repo.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.videoView(ctx, row, s.canonical, true)
}

// CreateVideo inserts a video and its optional English translation.
func (s *ShowcaseService) CreateVideo(ctx context.Context, in VideoInput) (*VideoView, error) {
	if err := required("title", in.Title); err != nil {
		return nil, err
	}
	if err := required("videoUrl", in.VideoURL); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row := &data.Video{Status: status, Language: s.canonical}
	s.applyVideo(row, in)
	if err := s.repo.CreateVideo(ctx, row); err != nil {
		return nil, err
	}
	if err := s.syncVideoTranslation(ctx, row.ID, in); err != nil {
		return nil, err
	}
	s.invalidate(EntityVideo)
	return s.GetVideo(ctx, row.ID)
}

// UpdateVideo rewrites a video and syncs its English translation.
func (s *ShowcaseService) UpdateVideo(ctx context.Context, id int64, in VideoInput) (*VideoView, error) {
	row, err := s.repo.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := required("title", in.Title); err != nil {
		return nil, err
	}
	if err := required("videoUrl", in.VideoURL); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row.Status = status
	s.applyVideo(row, in)
	if err := s.repo.UpdateVideo(ctx, row); err != nil {
		return nil, err
	}
	if err := s.syncVideoTranslation(ctx, id, in); err != nil {
		return nil, err
	}
	s.invalidate(EntityVideo)
	return s.GetVideo(ctx, id)
}

// DeleteVideo removes a video; translations cascade.
func (s *ShowcaseService) DeleteVideo(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVideo(ctx, id); err != nil {
		return err
	}
	s.invalidate(EntityVideo)
	return nil
}

func (s *ShowcaseService) applyVideo(row *data.Video, in VideoInput) {
	row.Title = s.sanitizer.Sanitize(in.Title)
	row.Description = nullString(s.sanitizer.Sanitize(in.Description))
	row.VideoURL = in.VideoURL
	row.Thumbnail = nullString(in.Thumbnail)
	row.DurationSeconds = nullInt(in.DurationSeconds)
	row.Category = nullString(in.Category)
	row.DisplayOrder = in.DisplayOrder
}

func (in VideoInput) hasEnglish() bool {
	return in.TitleEn != "" || in.DescriptionEn != ""
}

func (s *ShowcaseService) syncVideoTranslation(ctx context.Context, id int64, in VideoInput) error {
	if !in.hasEnglish() {
		return s.repo.DeleteVideoTranslation(ctx, id, alternateLanguage)
	}
	return s.repo.UpsertVideoTranslation(ctx, &data.VideoTranslation{
		VideoID:     id,
		Language:    alternateLanguage,
		Title:       nullString(s.sanitizer.Sanitize(in.TitleEn)),
		Description: nullString(s.sanitizer.Sanitize(in.DescriptionEn)),
	})
}

func (s *ShowcaseService) videoView(ctx context.Context, row *data.Video, lang string, withTranslations bool) (*VideoView, error) {
	trRows, err := s.repo.VideoTranslations(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	translations := make([]i18n.Translation, len(trRows))
	for i, tr := range trRows {
		translations[i] = tr.Resolution()
	}
	resolved := i18n.Resolve(videoFields, row.Localizable(), translations, lang, s.canonical, s.log)

	view := &VideoView{
		ID:              row.ID,
		Status:          row.Status,
		Language:        resolved.Language,
		Fallback:        resolved.Fallback,
		Title:           resolved.Fields["title"],
		Description:     resolved.Fields["description"],
		VideoURL:        row.VideoURL,
		Thumbnail:       row.Thumbnail.String,
		DurationSeconds: row.DurationSeconds.Int64,
		Category:        row.Category.String,
		DisplayOrder:    row.DisplayOrder,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if withTranslations {
		view.Translations = make([]TranslationView, len(translations))
		for i, tr := range translations {
			view.Translations[i] = TranslationView{Language: tr.Language, Fields: tr.Fields}
		}
	}
	return view, nil
}
