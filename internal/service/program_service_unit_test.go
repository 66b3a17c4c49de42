//go:build unit

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"edusite/internal/cache"
	"edusite/internal/config"
	"edusite/internal/data"
	"edusite/internal/logger"
)

// newTestCache creates a new in-memory cache for testing.
func newTestCache(t *testing.T) (*cache.Cache, func()) {
	t.Helper()
	cfg := config.CacheConfig{
		FilePath:   "file::memory:",
		DefaultTTL: 60,
	}
	c, err := cache.New(cfg)
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	teardown := func() {
		c.Close()
	}
	return c, teardown
}

// mockProgramRepository is a mock implementation of the ProgramRepository interface.
type mockProgramRepository struct {
	programToReturn      *data.Program
	programsToReturn     []*data.Program
	translationsToReturn []*data.ProgramTranslation
	errToReturn          error

	listCalled              int
	createCalled            int
	updateCalled            int
	deleteCalled            int
	upsertTranslationCalled int
	deleteTranslationCalled int
	lastProgramPassed       *data.Program
	lastTranslationPassed   *data.ProgramTranslation
	lastDeletedLanguage     string
}

var _ ProgramRepository = (*mockProgramRepository)(nil)

func (m *mockProgramRepository) List(ctx context.Context, f data.ProgramFilter) ([]*data.Program, int, error) {
	m.listCalled++
	if m.errToReturn != nil {
		return nil, 0, m.errToReturn
	}
	return m.programsToReturn, len(m.programsToReturn), nil
}

func (m *mockProgramRepository) GetBySlug(ctx context.Context, slug string) (*data.Program, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	if m.programToReturn != nil && m.programToReturn.Slug == slug {
		return m.programToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockProgramRepository) GetByID(ctx context.Context, id int64) (*data.Program, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	if m.programToReturn != nil && m.programToReturn.ID == id {
		return m.programToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockProgramRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return false, nil
}

func (m *mockProgramRepository) Create(ctx context.Context, p *data.Program) error {
	m.createCalled++
	m.lastProgramPassed = p
	if m.errToReturn != nil {
		return m.errToReturn
	}
	p.ID = 1
	m.programToReturn = p
	return nil
}

func (m *mockProgramRepository) Update(ctx context.Context, p *data.Program) error {
	m.updateCalled++
	m.lastProgramPassed = p
	return m.errToReturn
}

func (m *mockProgramRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalled++
	return m.errToReturn
}

func (m *mockProgramRepository) Translations(ctx context.Context, programID int64) ([]*data.ProgramTranslation, error) {
	return m.translationsToReturn, nil
}

func (m *mockProgramRepository) UpsertTranslation(ctx context.Context, t *data.ProgramTranslation) error {
	m.upsertTranslationCalled++
	m.lastTranslationPassed = t
	return m.errToReturn
}

func (m *mockProgramRepository) DeleteTranslation(ctx context.Context, programID int64, language string) error {
	m.deleteTranslationCalled++
	m.lastDeletedLanguage = language
	return nil
}

// mockLookupReader is a mock implementation of the LookupReader interface.
type mockLookupReader struct {
	countries    []*data.Country
	cities       []*data.City
	gradeLevels  []*data.GradeLevel
	programTypes []*data.ProgramType
}

var _ LookupReader = (*mockLookupReader)(nil)

func (m *mockLookupReader) Countries(ctx context.Context) ([]*data.Country, error) {
	return m.countries, nil
}

func (m *mockLookupReader) Cities(ctx context.Context, countryID int64) ([]*data.City, error) {
	return m.cities, nil
}

func (m *mockLookupReader) CountryByID(ctx context.Context, id int64) (*data.Country, error) {
	for _, c := range m.countries {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockLookupReader) CityByID(ctx context.Context, id int64) (*data.City, error) {
	for _, c := range m.cities {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockLookupReader) GradeLevels(ctx context.Context) ([]*data.GradeLevel, error) {
	return m.gradeLevels, nil
}

func (m *mockLookupReader) ProgramTypes(ctx context.Context) ([]*data.ProgramType, error) {
	return m.programTypes, nil
}

func testProgram() *data.Program {
	return &data.Program{
		ID:          1,
		Slug:        "summer-boston",
		Status:      data.StatusPublished,
		Title:       "波士顿夏令营",
		Subtitle:    sql.NullString{String: "两周浸入式课程", Valid: true},
		Highlights:  sql.NullString{String: `["哈佛参访","MIT实验室"]`, Valid: true},
		Types:       sql.NullString{String: `["STEM"]`, Valid: true},
		Language:    "zh",
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func newProgramService(repo *mockProgramRepository, lookups *mockLookupReader, qc QueryCache) *ProgramService {
	if lookups == nil {
		lookups = &mockLookupReader{}
	}
	return NewProgramService(repo, lookups, qc, logger.Discard(), "zh")
}

func TestProgramService_GetBySlug_CanonicalLanguage(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{programToReturn: testProgram()}
	svc := newProgramService(repo, nil, testCache)

	view, err := svc.GetBySlug(context.Background(), "summer-boston", "zh")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if view.Title != "波士顿夏令营" {
		t.Errorf("expected canonical title, got %q", view.Title)
	}
	if view.Language != "zh" || view.Fallback {
		t.Errorf("expected zh without fallback, got %q fallback=%v", view.Language, view.Fallback)
	}
	if len(view.Highlights) != 2 {
		t.Errorf("expected 2 decoded highlights, got %d", len(view.Highlights))
	}
}

func TestProgramService_GetBySlug_TranslatedWithPartialFallback(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{
		programToReturn: testProgram(),
		translationsToReturn: []*data.ProgramTranslation{{
			ID:        10,
			ProgramID: 1,
			Language:  "en",
			Title:     sql.NullString{String: "Boston Summer Camp", Valid: true},
			// Subtitle left empty, should fall back to canonical.
		}},
	}
	svc := newProgramService(repo, nil, testCache)

	view, err := svc.GetBySlug(context.Background(), "summer-boston", "en")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if view.Title != "Boston Summer Camp" {
		t.Errorf("expected translated title, got %q", view.Title)
	}
	if view.Subtitle != "两周浸入式课程" {
		t.Errorf("expected canonical subtitle fallback, got %q", view.Subtitle)
	}
	if view.Fallback {
		t.Error("expected no fallback flag when a translation row exists")
	}
}

func TestProgramService_GetBySlug_MissingTranslationBlanksFields(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{programToReturn: testProgram()}
	svc := newProgramService(repo, nil, testCache)

	view, err := svc.GetBySlug(context.Background(), "summer-boston", "en")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if view.Title != "" || view.Subtitle != "" {
		t.Errorf("expected blanked localizable fields, got title=%q subtitle=%q", view.Title, view.Subtitle)
	}
	if !view.Fallback {
		t.Error("expected fallback flag")
	}
	if view.Slug != "summer-boston" {
		t.Errorf("non-localizable slug must survive, got %q", view.Slug)
	}
}

func TestProgramService_GetBySlug_GalleryNeverBlanked(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	program := testProgram()
	program.Gallery = sql.NullString{String: `["a.jpg","b.jpg"]`, Valid: true}
	repo := &mockProgramRepository{programToReturn: program}
	svc := newProgramService(repo, nil, testCache)

	view, err := svc.GetBySlug(context.Background(), "summer-boston", "en")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if len(view.Gallery) != 2 {
		t.Errorf("gallery is not localizable and must survive fallback, got %v", view.Gallery)
	}
}

func TestProgramService_GetBySlug_DraftHidden(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	program := testProgram()
	program.Status = data.StatusDraft
	repo := &mockProgramRepository{programToReturn: program}
	svc := newProgramService(repo, nil, testCache)

	if _, err := svc.GetBySlug(context.Background(), "summer-boston", "zh"); err == nil {
		t.Fatal("expected draft program to be invisible on the public read path")
	}
}

func TestProgramService_GetBySlug_LabelTranslation(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{
		programToReturn: testProgram(),
		translationsToReturn: []*data.ProgramTranslation{{
			ID: 10, ProgramID: 1, Language: "en",
			Title: sql.NullString{String: "Boston Summer Camp", Valid: true},
			Types: sql.NullString{String: `["理工"]`, Valid: true},
		}},
	}
	lookups := &mockLookupReader{
		programTypes: []*data.ProgramType{
			{ID: 1, Name: "理工", NameEn: sql.NullString{String: "STEM", Valid: true}, Active: true},
		},
	}
	svc := newProgramService(repo, lookups, testCache)

	view, err := svc.GetBySlug(context.Background(), "summer-boston", "en")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if len(view.Types) != 1 || view.Types[0] != "STEM" {
		t.Errorf("expected type label translated to English, got %v", view.Types)
	}
}

func TestProgramService_List_CachesPublicQueries(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{programsToReturn: []*data.Program{testProgram()}}
	svc := newProgramService(repo, nil, testCache)
	ctx := context.Background()

	params := ListProgramsParams{Language: "zh", Page: 1, Limit: 10}
	if _, err := svc.List(ctx, params); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if _, err := svc.List(ctx, params); err != nil {
		t.Fatalf("second List failed: %v", err)
	}
	if repo.listCalled != 1 {
		t.Errorf("expected one repository hit, got %d", repo.listCalled)
	}

	// Admin listings bypass the cache.
	if _, err := svc.List(ctx, ListProgramsParams{Language: "zh", IncludeDrafts: true}); err != nil {
		t.Fatalf("admin List failed: %v", err)
	}
	if repo.listCalled != 2 {
		t.Errorf("expected admin listing to bypass cache, got %d repository hits", repo.listCalled)
	}
}

func TestProgramService_Create_InvalidatesCache(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{programsToReturn: []*data.Program{testProgram()}}
	svc := newProgramService(repo, nil, testCache)
	ctx := context.Background()

	params := ListProgramsParams{Language: "zh"}
	if _, err := svc.List(ctx, params); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if _, err := svc.Create(ctx, ProgramInput{Title: "新项目", Status: "published"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.List(ctx, params); err != nil {
		t.Fatalf("List after create failed: %v", err)
	}
	if repo.listCalled != 2 {
		t.Errorf("expected cache invalidation to force a fresh read, got %d repository hits", repo.listCalled)
	}
}

func TestProgramService_Create_UpsertsEnglishTranslation(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{}
	svc := newProgramService(repo, nil, testCache)

	_, err := svc.Create(context.Background(), ProgramInput{
		Title:   "波士顿夏令营",
		TitleEn: "Boston Summer Camp",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if repo.upsertTranslationCalled != 1 {
		t.Fatalf("expected one translation upsert, got %d", repo.upsertTranslationCalled)
	}
	tr := repo.lastTranslationPassed
	if tr.Language != "en" || tr.Title.String != "Boston Summer Camp" {
		t.Errorf("unexpected translation row: %+v", tr)
	}
}

func TestProgramService_Update_ClearsTranslationWhenEnglishEmpty(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{programToReturn: testProgram()}
	svc := newProgramService(repo, nil, testCache)

	_, err := svc.Update(context.Background(), 1, ProgramInput{Title: "波士顿夏令营", Status: "published"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if repo.deleteTranslationCalled != 1 || repo.lastDeletedLanguage != "en" {
		t.Errorf("expected the English translation to be cleared, deletes=%d lang=%q",
			repo.deleteTranslationCalled, repo.lastDeletedLanguage)
	}
}

func TestProgramService_Create_Validation(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{}
	svc := newProgramService(repo, nil, testCache)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ProgramInput{}); err == nil {
		t.Error("expected missing title to be rejected")
	}
	if _, err := svc.Create(ctx, ProgramInput{Title: "x", Status: "bogus"}); err == nil {
		t.Error("expected unknown status to be rejected")
	}
	if _, err := svc.Create(ctx, ProgramInput{Title: "x", CityID: 99}); err == nil {
		t.Error("expected unknown city reference to be rejected")
	}
	if repo.createCalled != 0 {
		t.Errorf("no create should reach the repository, got %d", repo.createCalled)
	}
}

func TestProgramService_Create_SanitizesHTML(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{}
	svc := newProgramService(repo, nil, testCache)

	_, err := svc.Create(context.Background(), ProgramInput{
		Title:       `营地<script>alert(1)</script>`,
		Description: `<p>安全</p><script>x()</script>`,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	saved := repo.lastProgramPassed
	if saved.Title != "营地" {
		t.Errorf("expected script stripped from title, got %q", saved.Title)
	}
	if saved.Description.String != "<p>安全</p>" {
		t.Errorf("expected script stripped from description, got %q", saved.Description.String)
	}
}

func TestProgramService_Create_GeneratesSlugFromChineseTitle(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockProgramRepository{}
	svc := newProgramService(repo, nil, testCache)

	view, err := svc.Create(context.Background(), ProgramInput{Title: "波士顿夏令营"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if view.Slug == "" {
		t.Fatal("expected a generated slug")
	}
	for _, r := range view.Slug {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			t.Fatalf("slug %q contains non-ASCII or uppercase characters", view.Slug)
		}
	}
}
