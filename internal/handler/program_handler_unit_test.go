//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edusite/internal/data"
	"edusite/internal/logger"
	mw "edusite/internal/middleware"
	"edusite/internal/service"

	"github.com/go-chi/chi/v5"
)

// mockProgramManager is a mock implementation of the ProgramManager interface.
type mockProgramManager struct {
	viewToReturn *service.ProgramView
	listToReturn *service.ProgramList
	errToReturn  error
	lastParams   service.ListProgramsParams
	lastInput    service.ProgramInput
	lastLanguage string
}

var _ ProgramManager = (*mockProgramManager)(nil)

func (m *mockProgramManager) List(ctx context.Context, p service.ListProgramsParams) (*service.ProgramList, error) {
	m.lastParams = p
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	if m.listToReturn != nil {
		return m.listToReturn, nil
	}
	return &service.ProgramList{Items: []*service.ProgramView{}}, nil
}

func (m *mockProgramManager) GetBySlug(ctx context.Context, slug, language string) (*service.ProgramView, error) {
	m.lastLanguage = language
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.viewToReturn, nil
}

func (m *mockProgramManager) AdminGet(ctx context.Context, id int64) (*service.ProgramView, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.viewToReturn, nil
}

func (m *mockProgramManager) Create(ctx context.Context, in service.ProgramInput) (*service.ProgramView, error) {
	m.lastInput = in
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.viewToReturn, nil
}

func (m *mockProgramManager) Update(ctx context.Context, id int64, in service.ProgramInput) (*service.ProgramView, error) {
	m.lastInput = in
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.viewToReturn, nil
}

func (m *mockProgramManager) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

// newProgramRouter mounts the program handler the way the real router does.
func newProgramRouter(programs ProgramManager) *chi.Mux {
	h := NewProgramHandler(programs, "zh")
	wrap := mw.Error(logger.Discard())
	r := chi.NewRouter()
	r.Use(mw.Language("zh"))
	r.Method(http.MethodGet, "/api/programs", wrap(h.list))
	r.Method(http.MethodGet, "/api/programs/{slug}", wrap(h.get))
	r.Method(http.MethodPost, "/api/admin/programs", wrap(h.create))
	r.Method(http.MethodDelete, "/api/admin/programs/{id}", wrap(h.delete))
	return r
}

func TestProgramHandler_Get_LanguageQuery(t *testing.T) {
	mgr := &mockProgramManager{viewToReturn: &service.ProgramView{ID: 1, Slug: "x", Title: "Camp"}}
	router := newProgramRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/programs/x?language=en-US", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if mgr.lastLanguage != "en" {
		t.Errorf("expected normalized language en, got %q", mgr.lastLanguage)
	}
	var body service.ProgramView
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Title != "Camp" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestProgramHandler_Get_NotFound(t *testing.T) {
	mgr := &mockProgramManager{errToReturn: data.ErrNotFound}
	router := newProgramRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/programs/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not valid JSON: %v", err)
	}
	if body["code"] != mw.CodeNotFound {
		t.Errorf("expected code %s, got %q", mw.CodeNotFound, body["code"])
	}
}

func TestProgramHandler_Create_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &service.ValidationError{Field: "title", Reason: "is required"}, http.StatusBadRequest, mw.CodeValidation},
		{"conflict", data.ErrConflict, http.StatusConflict, mw.CodeConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError, mw.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mgr := &mockProgramManager{errToReturn: tc.err}
			router := newProgramRouter(mgr)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/programs", strings.NewReader(`{"title":"x"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not valid JSON: %v", err)
			}
			if body["code"] != tc.wantCode {
				t.Errorf("expected code %s, got %q", tc.wantCode, body["code"])
			}
		})
	}
}

func TestProgramHandler_Create_BadJSON(t *testing.T) {
	router := newProgramRouter(&mockProgramManager{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/programs", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProgramHandler_Delete(t *testing.T) {
	router := newProgramRouter(&mockProgramManager{})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/programs/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/programs/abc", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-numeric id, got %d", rec.Code)
	}
}

func TestProgramHandler_List_Filters(t *testing.T) {
	mgr := &mockProgramManager{}
	router := newProgramRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/programs?countryId=2&featured=true&page=3&limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p := mgr.lastParams
	if p.CountryID != 2 || p.Featured == nil || !*p.Featured || p.Page != 3 || p.Limit != 5 {
		t.Errorf("unexpected listing params: %+v", p)
	}
	if p.IncludeDrafts {
		t.Error("public listing must not include drafts")
	}
}
