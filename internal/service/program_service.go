package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"edusite/internal/cache"
	"edusite/internal/data"
	"edusite/internal/i18n"
	"edusite/internal/logger"

	"github.com/microcosm-cc/bluemonday"
)

// alternateLanguage is the locale the admin API's *En payload fields
// target. Resolution itself is N-locale; only the write contract is
// bilingual.
const alternateLanguage = "en"

// ProgramRepository defines the interface for database operations on programs.
type ProgramRepository interface {
	List(ctx context.Context, f data.ProgramFilter) ([]*data.Program, int, error)
	GetBySlug(ctx context.Context, slug string) (*data.Program, error)
	GetByID(ctx context.Context, id int64) (*data.Program, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Create(ctx context.Context, p *data.Program) error
	Update(ctx context.Context, p *data.Program) error
	Delete(ctx context.Context, id int64) error
	Translations(ctx context.Context, programID int64) ([]*data.ProgramTranslation, error)
	UpsertTranslation(ctx context.Context, t *data.ProgramTranslation) error
	DeleteTranslation(ctx context.Context, programID int64, language string) error
}

// LookupReader is the read-only slice of the lookup repository that
// content services need for label translation and reference checks.
type LookupReader interface {
	Countries(ctx context.Context) ([]*data.Country, error)
	Cities(ctx context.Context, countryID int64) ([]*data.City, error)
	CountryByID(ctx context.Context, id int64) (*data.Country, error)
	CityByID(ctx context.Context, id int64) (*data.City, error)
	GradeLevels(ctx context.Context) ([]*data.GradeLevel, error)
	ProgramTypes(ctx context.Context) ([]*data.ProgramType, error)
}

// LabelView is a lookup reference shaped for API responses.
type LabelView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TranslationView exposes a raw translation row on admin reads so the
// back-office can populate its edit forms.
type TranslationView struct {
	Language string            `json:"language"`
	Fields   map[string]string `json:"fields"`
}

// ProgramView is the API-facing shape of a resolved program.
type ProgramView struct {
	ID            int64             `json:"id"`
	Slug          string            `json:"slug"`
	Status        string            `json:"status"`
	Language      string            `json:"language"`
	Fallback      bool              `json:"fallback,omitempty"`
	Title         string            `json:"title"`
	Subtitle      string            `json:"subtitle"`
	Description   string            `json:"description"`
	Highlights    []string          `json:"highlights"`
	Itinerary     json.RawMessage   `json:"itinerary"`
	Requirements  []string          `json:"requirements"`
	Academics     []string          `json:"academics"`
	Sessions      json.RawMessage   `json:"sessions"`
	Types         []string          `json:"types"`
	GradeLevels   []string          `json:"gradeLevels"`
	Gallery       []string          `json:"gallery"`
	Featured      bool              `json:"featured"`
	FeaturedImage string            `json:"featuredImage,omitempty"`
	DurationDays  int64             `json:"durationDays,omitempty"`
	PriceCents    int64             `json:"priceCents,omitempty"`
	ApplyDeadline *time.Time        `json:"applyDeadline,omitempty"`
	City          *LabelView        `json:"city,omitempty"`
	Country       *LabelView        `json:"country,omitempty"`
	Translations  []TranslationView `json:"translations,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ProgramInput carries canonical-language fields plus the optional
// English payload. Clearing every *En field deletes the English
// translation row.
type ProgramInput struct {
	Slug          string          `json:"slug"`
	Status        string          `json:"status"`
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle"`
	Description   string          `json:"description"`
	Highlights    []string        `json:"highlights"`
	Itinerary     json.RawMessage `json:"itinerary"`
	Requirements  []string        `json:"requirements"`
	Academics     []string        `json:"academics"`
	Sessions      json.RawMessage `json:"sessions"`
	Types         []string        `json:"types"`
	GradeLevels   []string        `json:"gradeLevels"`
	Gallery       []string        `json:"gallery"`
	Featured      bool            `json:"featured"`
	FeaturedImage string          `json:"featuredImage"`
	DurationDays  int64           `json:"durationDays"`
	PriceCents    int64           `json:"priceCents"`
	ApplyDeadline *time.Time      `json:"applyDeadline"`
	CityID        int64           `json:"cityId"`
	CountryID     int64           `json:"countryId"`

	TitleEn        string          `json:"titleEn"`
	SubtitleEn     string          `json:"subtitleEn"`
	DescriptionEn  string          `json:"descriptionEn"`
	HighlightsEn   []string        `json:"highlightsEn"`
	ItineraryEn    json.RawMessage `json:"itineraryEn"`
	RequirementsEn []string        `json:"requirementsEn"`
	AcademicsEn    []string        `json:"academicsEn"`
	SessionsEn     json.RawMessage `json:"sessionsEn"`
	TypesEn        []string        `json:"typesEn"`
	GradeLevelsEn  []string        `json:"gradeLevelsEn"`
}

// ListProgramsParams narrows and paginates program listings.
type ListProgramsParams struct {
	Language      string
	Page          int
	Limit         int
	Status        string
	CountryID     int64
	CityID        int64
	Featured      *bool
	IncludeDrafts bool
}

// ProgramList is the listing payload, cached as a whole.
type ProgramList struct {
	Items      []*ProgramView `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// ProgramService provides business logic for managing programs.
type ProgramService struct {
	repo      ProgramRepository
	lookups   LookupReader
	cache     QueryCache
	sanitizer *bluemonday.Policy
	log       logger.Logger
	canonical string
}

// NewProgramService creates a new ProgramService with the given dependencies.
func NewProgramService(repo ProgramRepository, lookups LookupReader, qc QueryCache, log logger.Logger, canonical string) *ProgramService {
	// UGCPolicy allows basic formatting in rich-text fields while
	// stripping out dangerous HTML.
	return &ProgramService{
		repo:      repo,
		lookups:   lookups,
		cache:     qc,
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
		canonical: canonical,
	}
}

// List returns resolved programs for the public site or the admin
// back-office. Public listings (published only) are cached by query
// signature; admin listings always hit the database.
func (s *ProgramService) List(ctx context.Context, p ListProgramsParams) (*ProgramList, error) {
	page, limit := NormalizePage(p.Page, p.Limit)
	lang := i18n.NormalizeLanguage(p.Language, s.canonical)

	status := p.Status
	if !p.IncludeDrafts {
		status = data.StatusPublished
	}

	featured := ""
	if p.Featured != nil {
		featured = strconv.FormatBool(*p.Featured)
	}
	key := cache.Key(EntityProgram, "list", lang, status,
		strconv.FormatInt(p.CountryID, 10), strconv.FormatInt(p.CityID, 10), featured,
		strconv.Itoa(page), strconv.Itoa(limit))

	cacheable := !p.IncludeDrafts
	if cacheable {
		if cached, err := s.cache.Get(key); err != nil {
			s.log.Error(err, "Program list cache read failed")
		} else if cached != nil {
			var list ProgramList
			if err := json.Unmarshal(cached, &list); err == nil {
				return &list, nil
			}
			s.log.Warn("Discarding unreadable program list cache entry")
		}
	}

	programs, total, err := s.repo.List(ctx, data.ProgramFilter{
		Status:    status,
		CountryID: p.CountryID,
		CityID:    p.CityID,
		Featured:  p.Featured,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	typeLabels, gradeLabels, err := s.labelTables(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*ProgramView, 0, len(programs))
	for _, program := range programs {
		view, err := s.resolveView(ctx, program, lang, typeLabels, gradeLabels, false)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}

	list := &ProgramList{Items: items, Pagination: NewPagination(page, limit, total)}
	if cacheable {
		if encoded, err := json.Marshal(list); err == nil {
			if err := s.cache.Set(key, encoded, s.cache.DefaultTTL()); err != nil {
				s.log.Error(err, "Program list cache write failed")
			}
		}
	}
	return list, nil
}

// GetBySlug returns one published program resolved into the requested
// language. Unpublished programs are invisible to the public read path.
func (s *ProgramService) GetBySlug(ctx context.Context, slug, language string) (*ProgramView, error) {
	program, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if program.Status != data.StatusPublished {
		return nil, data.ErrNotFound
	}
	lang := i18n.NormalizeLanguage(language, s.canonical)
	typeLabels, gradeLabels, err := s.labelTables(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, program, lang, typeLabels, gradeLabels, false)
}

// AdminGet returns a program in its canonical language regardless of
// status, with raw translation rows attached for the edit form.
func (s *ProgramService) AdminGet(ctx context.Context, id int64) (*ProgramView, error) {
	program, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	typeLabels, gradeLabels, err := s.labelTables(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, program, s.canonical, typeLabels, gradeLabels, true)
}

// Create inserts a new program (status defaults to draft) and its
// optional English translation, then invalidates the program cache.
func (s *ProgramService) Create(ctx context.Context, in ProgramInput) (*ProgramView, error) {
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

	program := &data.Program{Slug: slug, Status: status, Language: s.canonical}
	if err := s.applyInput(ctx, program, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, program); err != nil {
		return nil, err
	}
	if err := s.syncTranslation(ctx, program.ID, in); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.AdminGet(ctx, program.ID)
}

// Update rewrites a program and upserts or clears its English
// translation, then invalidates the program cache.
func (s *ProgramService) Update(ctx context.Context, id int64, in ProgramInput) (*ProgramView, error) {
	program, err := s.repo.GetByID(ctx, id)
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
	program.Status = status

	if in.Slug != "" && in.Slug != program.Slug {
		slug, err := uniqueSlugOrConflict(ctx, in.Slug, true, id, s.repo.SlugExists)
		if err != nil {
			return nil, err
		}
		program.Slug = slug
	}
	if err := s.applyInput(ctx, program, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, program); err != nil {
		return nil, err
	}
	if err := s.syncTranslation(ctx, id, in); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.AdminGet(ctx, id)
}

// Delete removes a program; its translation rows cascade at the schema
// level, so a subsequent lookup finds nothing, not a dangling translation.
func (s *ProgramService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// applyInput copies validated, encoded input onto the canonical row.
func (s *ProgramService) applyInput(ctx context.Context, program *data.Program, in ProgramInput) error {
	if in.CityID != 0 {
		city, err := s.lookups.CityByID(ctx, in.CityID)
		if err != nil {
			return err
		}
		if city == nil {
			return &ValidationError{Field: "cityId", Reason: "unknown city"}
		}
	}
	if in.CountryID != 0 {
		country, err := s.lookups.CountryByID(ctx, in.CountryID)
		if err != nil {
			return err
		}
		if country == nil {
			return &ValidationError{Field: "countryId", Reason: "unknown country"}
		}
	}

	highlights, err := i18n.EncodeList(in.Highlights)
	if err != nil {
		return err
	}
	requirements, err := i18n.EncodeList(in.Requirements)
	if err != nil {
		return err
	}
	academics, err := i18n.EncodeList(in.Academics)
	if err != nil {
		return err
	}
	types, err := i18n.EncodeList(in.Types)
	if err != nil {
		return err
	}
	gradeLevels, err := i18n.EncodeList(in.GradeLevels)
	if err != nil {
		return err
	}
	gallery, err := i18n.EncodeList(in.Gallery)
	if err != nil {
		return err
	}
	itinerary, err := i18n.EncodeRaw("itinerary", in.Itinerary)
	if err != nil {
		return err
	}
	sessions, err := i18n.EncodeRaw("sessions", in.Sessions)
	if err != nil {
		return err
	}

	program.Title = s.sanitizer.Sanitize(in.Title)
	program.Subtitle = nullString(s.sanitizer.Sanitize(in.Subtitle))
	program.Description = nullString(s.sanitizer.Sanitize(in.Description))
	program.Highlights = nullString(highlights)
	program.Itinerary = nullString(itinerary)
	program.Requirements = nullString(requirements)
	program.Academics = nullString(academics)
	program.Sessions = nullString(sessions)
	program.Types = nullString(types)
	program.GradeLevels = nullString(gradeLevels)
	program.Gallery = nullString(gallery)
	program.Featured = in.Featured
	program.FeaturedImage = nullString(in.FeaturedImage)
	program.DurationDays = nullInt(in.DurationDays)
	program.PriceCents = nullInt(in.PriceCents)
	program.ApplyDeadline = nullTime(in.ApplyDeadline)
	program.CityID = nullInt(in.CityID)
	program.CountryID = nullInt(in.CountryID)
	return nil
}

// hasEnglish reports whether any alternate-language field was supplied.
func (in ProgramInput) hasEnglish() bool {
	return in.TitleEn != "" || in.SubtitleEn != "" || in.DescriptionEn != "" ||
		len(in.HighlightsEn) > 0 || len(in.ItineraryEn) > 0 || len(in.RequirementsEn) > 0 ||
		len(in.AcademicsEn) > 0 || len(in.SessionsEn) > 0 || len(in.TypesEn) > 0 ||
		len(in.GradeLevelsEn) > 0
}

// syncTranslation upserts the English translation row, or deletes it
// when every alternate field was cleared.
func (s *ProgramService) syncTranslation(ctx context.Context, programID int64, in ProgramInput) error {
	if !in.hasEnglish() {
		return s.repo.DeleteTranslation(ctx, programID, alternateLanguage)
	}
	highlights, err := i18n.EncodeList(in.HighlightsEn)
	if err != nil {
		return err
	}
	requirements, err := i18n.EncodeList(in.RequirementsEn)
	if err != nil {
		return err
	}
	academics, err := i18n.EncodeList(in.AcademicsEn)
	if err != nil {
		return err
	}
	types, err := i18n.EncodeList(in.TypesEn)
	if err != nil {
		return err
	}
	gradeLevels, err := i18n.EncodeList(in.GradeLevelsEn)
	if err != nil {
		return err
	}
	itinerary, err := i18n.EncodeRaw("itineraryEn", in.ItineraryEn)
	if err != nil {
		return err
	}
	sessions, err := i18n.EncodeRaw("sessionsEn", in.SessionsEn)
	if err != nil {
		return err
	}
	return s.repo.UpsertTranslation(ctx, &data.ProgramTranslation{
		ProgramID:    programID,
		Language:     alternateLanguage,
		Title:        nullString(s.sanitizer.Sanitize(in.TitleEn)),
		Subtitle:     nullString(s.sanitizer.Sanitize(in.SubtitleEn)),
		Description:  nullString(s.sanitizer.Sanitize(in.DescriptionEn)),
		Highlights:   nullString(highlights),
		Itinerary:    nullString(itinerary),
		Requirements: nullString(requirements),
		Academics:    nullString(academics),
		Sessions:     nullString(sessions),
		Types:        nullString(types),
		GradeLevels:  nullString(gradeLevels),
	})
}

// resolveView runs the resolution engine and shapes the result for the
// API: structured fields decoded, lookup labels translated, relation
// fields renamed, internal columns dropped.
func (s *ProgramService) resolveView(ctx context.Context, program *data.Program, lang string, typeLabels, gradeLabels []i18n.LabelRow, withTranslations bool) (*ProgramView, error) {
	rows, err := s.repo.Translations(ctx, program.ID)
	if err != nil {
		return nil, err
	}
	translations := make([]i18n.Translation, len(rows))
	for i, row := range rows {
		translations[i] = row.Resolution()
	}

	resolved := i18n.Resolve(programFields, program.Localizable(), translations, lang, s.canonical, s.log)

	highlights, err := i18n.DecodeList("highlights", resolved.Fields["highlights"])
	if err != nil {
		return nil, err
	}
	requirements, err := i18n.DecodeList("requirements", resolved.Fields["requirements"])
	if err != nil {
		return nil, err
	}
	academics, err := i18n.DecodeList("academics", resolved.Fields["academics"])
	if err != nil {
		return nil, err
	}
	types, err := i18n.DecodeList("types", resolved.Fields["types"])
	if err != nil {
		return nil, err
	}
	gradeLevels, err := i18n.DecodeList("grade_levels", resolved.Fields["grade_levels"])
	if err != nil {
		return nil, err
	}
	itinerary, err := i18n.DecodeRaw("itinerary", resolved.Fields["itinerary"])
	if err != nil {
		return nil, err
	}
	sessions, err := i18n.DecodeRaw("sessions", resolved.Fields["sessions"])
	if err != nil {
		return nil, err
	}
	gallery, err := i18n.DecodeList("gallery", program.Gallery.String)
	if err != nil {
		return nil, err
	}

	view := &ProgramView{
		ID:            program.ID,
		Slug:          program.Slug,
		Status:        program.Status,
		Language:      resolved.Language,
		Fallback:      resolved.Fallback,
		Title:         resolved.Fields["title"],
		Subtitle:      resolved.Fields["subtitle"],
		Description:   resolved.Fields["description"],
		Highlights:    highlights,
		Itinerary:     itinerary,
		Requirements:  requirements,
		Academics:     academics,
		Sessions:      sessions,
		Types:         i18n.TranslateLabels(types, typeLabels, resolved.Language, s.canonical),
		GradeLevels:   i18n.TranslateLabels(gradeLevels, gradeLabels, resolved.Language, s.canonical),
		Gallery:       gallery,
		Featured:      program.Featured,
		FeaturedImage: program.FeaturedImage.String,
		DurationDays:  program.DurationDays.Int64,
		PriceCents:    program.PriceCents.Int64,
		ApplyDeadline: timePtr(program.ApplyDeadline),
		CreatedAt:     program.CreatedAt,
		UpdatedAt:     program.UpdatedAt,
	}

	if program.CityID.Valid {
		city, err := s.lookups.CityByID(ctx, program.CityID.Int64)
		if err != nil {
			return nil, err
		}
		if city != nil {
			view.City = &LabelView{ID: city.ID, Name: localizedName(city.Name, city.NameEn.String, lang, s.canonical)}
		}
	}
	if program.CountryID.Valid {
		country, err := s.lookups.CountryByID(ctx, program.CountryID.Int64)
		if err != nil {
			return nil, err
		}
		if country != nil {
			view.Country = &LabelView{ID: country.ID, Name: localizedName(country.Name, country.NameEn.String, lang, s.canonical)}
		}
	}

	if withTranslations {
		view.Translations = make([]TranslationView, len(translations))
		for i, tr := range translations {
			view.Translations[i] = TranslationView{Language: tr.Language, Fields: tr.Fields}
		}
	}
	return view, nil
}

func (s *ProgramService) labelTables(ctx context.Context) ([]i18n.LabelRow, []i18n.LabelRow, error) {
	programTypes, err := s.lookups.ProgramTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	gradeLevels, err := s.lookups.GradeLevels(ctx)
	if err != nil {
		return nil, nil, err
	}
	return data.ProgramTypeLabels(programTypes), data.GradeLevelLabels(gradeLevels), nil
}

func (s *ProgramService) invalidate() {
	if err := s.cache.InvalidateType(EntityProgram); err != nil {
		s.log.Error(err, "Program cache invalidation failed")
	}
}

// normalizeStatus defaults empty to draft and rejects unknown values.
func normalizeStatus(status string) (string, error) {
	switch status {
	case "":
		return data.StatusDraft, nil
	case data.StatusDraft, data.StatusPublished, data.StatusArchived:
		return status, nil
	default:
		return "", &ValidationError{Field: "status", Reason: "must be draft, published or archived"}
	}
}

// uniqueSlugOrConflict generates a free slug, or reports a conflict
// when the caller explicitly chose a taken one.
func uniqueSlugOrConflict(ctx context.Context, base string, explicit bool, excludeID int64, exists func(context.Context, string, int64) (bool, error)) (string, error) {
	if explicit {
		taken, err := exists(ctx, base, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", errors.Join(data.ErrConflict, errors.New("slug "+base+" already in use"))
		}
		return base, nil
	}
	return uniqueSlug(ctx, base, excludeID, exists)
}
