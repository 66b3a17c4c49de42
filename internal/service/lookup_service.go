package service

import (
	"context"
	"encoding/json"

	"edusite/internal/cache"
	"edusite/internal/data"
	"edusite/internal/i18n"
	"edusite/internal/logger"
)

// LookupStore is the full lookup repository surface, reads plus admin
// writes.
type LookupStore interface {
	LookupReader
	SaveCountry(ctx context.Context, c *data.Country) (int64, error)
	UpdateCountry(ctx context.Context, c *data.Country) error
	DeleteCountry(ctx context.Context, id int64) error
	SaveCity(ctx context.Context, c *data.City) (int64, error)
	UpdateCity(ctx context.Context, c *data.City) error
	DeleteCity(ctx context.Context, id int64) error
	SaveGradeLevel(ctx context.Context, g *data.GradeLevel) (int64, error)
	UpdateGradeLevel(ctx context.Context, g *data.GradeLevel) error
	DeleteGradeLevel(ctx context.Context, id int64) error
	SaveProgramType(ctx context.Context, p *data.ProgramType) (int64, error)
	UpdateProgramType(ctx context.Context, p *data.ProgramType) error
	DeleteProgramType(ctx context.Context, id int64) error
}

// LookupView is a lookup row shaped for API responses. Name carries
// the locale-appropriate label; NameEn is included so admin forms can
// edit both columns.
type LookupView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	NameEn       string `json:"nameEn,omitempty"`
	Code         string `json:"code,omitempty"`
	CountryID    int64  `json:"countryId,omitempty"`
	Active       bool   `json:"active"`
	DisplayOrder int    `json:"displayOrder"`
}

// LookupInput carries admin writes for any lookup table.
type LookupInput struct {
	Name         string `json:"name"`
	NameEn       string `json:"nameEn"`
	Code         string `json:"code"`
	CountryID    int64  `json:"countryId"`
	Active       *bool  `json:"active"`
	DisplayOrder int    `json:"displayOrder"`
}

func (in LookupInput) active() bool {
	if in.Active == nil {
		return true
	}
	return *in.Active
}

// LookupBundle is the combined public payload: every lookup table in
// one response, since the site's filters need all of them at once.
type LookupBundle struct {
	Countries    []*LookupView `json:"countries"`
	Cities       []*LookupView `json:"cities"`
	GradeLevels  []*LookupView `json:"gradeLevels"`
	ProgramTypes []*LookupView `json:"programTypes"`
}

// LookupService provides business logic for the shared reference tables.
type LookupService struct {
	store     LookupStore
	cache     QueryCache
	log       logger.Logger
	canonical string
}

// NewLookupService creates a new LookupService with the given dependencies.
func NewLookupService(store LookupStore, qc QueryCache, log logger.Logger, canonical string) *LookupService {
	return &LookupService{store: store, cache: qc, log: log, canonical: canonical}
}

// Bundle returns every lookup table localized for the requested
// language, cached per language. Inactive rows are filtered out; the
// admin endpoints read the tables unfiltered instead.
func (s *LookupService) Bundle(ctx context.Context, language string) (*LookupBundle, error) {
	lang := i18n.NormalizeLanguage(language, s.canonical)
	key := cache.Key(EntityLookup, "bundle", lang)
	if cached, err := s.cache.Get(key); err != nil {
		s.log.Error(err, "Lookup bundle cache read failed")
	} else if cached != nil {
		var bundle LookupBundle
		if err := json.Unmarshal(cached, &bundle); err == nil {
			return &bundle, nil
		}
		s.log.Warn("Discarding unreadable lookup bundle cache entry")
	}

	countries, err := s.Countries(ctx, lang, false)
	if err != nil {
		return nil, err
	}
	cities, err := s.Cities(ctx, 0, lang, false)
	if err != nil {
		return nil, err
	}
	gradeLevels, err := s.GradeLevels(ctx, lang, false)
	if err != nil {
		return nil, err
	}
	programTypes, err := s.ProgramTypes(ctx, lang, false)
	if err != nil {
		return nil, err
	}

	bundle := &LookupBundle{
		Countries:    countries,
		Cities:       cities,
		GradeLevels:  gradeLevels,
		ProgramTypes: programTypes,
	}
	if encoded, err := json.Marshal(bundle); err == nil {
		if err := s.cache.Set(key, encoded, s.cache.DefaultTTL()); err != nil {
			s.log.Error(err, "Lookup bundle cache write failed")
		}
	}
	return bundle, nil
}

// Countries lists countries, localized. includeInactive is for the
// admin table view.
func (s *LookupService) Countries(ctx context.Context, language string, includeInactive bool) ([]*LookupView, error) {
	lang := i18n.NormalizeLanguage(language, s.canonical)
	rows, err := s.store.Countries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*LookupView, 0, len(rows))
	for _, r := range rows {
		if !includeInactive && !r.Active {
			continue
		}
		out = append(out, &LookupView{
			ID:           r.ID,
			Name:         localizedName(r.Name, r.NameEn.String, lang, s.canonical),
			NameEn:       r.NameEn.String,
			Code:         r.Code.String,
			Active:       r.Active,
			DisplayOrder: r.DisplayOrder,
		})
	}
	return out, nil
}

// Cities lists cities, localized, optionally limited to one country.
func (s *LookupService) Cities(ctx context.Context, countryID int64, language string, includeInactive bool) ([]*LookupView, error) {
	lang := i18n.NormalizeLanguage(language, s.canonical)
	rows, err := s.store.Cities(ctx, countryID)
	if err != nil {
		return nil, err
	}
	out := make([]*LookupView, 0, len(rows))
	for _, r := range rows {
		if !includeInactive && !r.Active {
			continue
		}
		out = append(out, &LookupView{
			ID:           r.ID,
			Name:         localizedName(r.Name, r.NameEn.String, lang, s.canonical),
			NameEn:       r.NameEn.String,
			CountryID:    r.CountryID,
			Active:       r.Active,
			DisplayOrder: r.DisplayOrder,
		})
	}
	return out, nil
}

// GradeLevels lists grade levels, localized.
func (s *LookupService) GradeLevels(ctx context.Context, language string, includeInactive bool) ([]*LookupView, error) {
	lang := i18n.NormalizeLanguage(language, s.canonical)
	rows, err := s.store.GradeLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*LookupView, 0, len(rows))
	for _, r := range rows {
		if !includeInactive && !r.Active {
			continue
		}
		out = append(out, &LookupView{
			ID:           r.ID,
			Name:         localizedName(r.Name, r.NameEn.String, lang, s.canonical),
			NameEn:       r.NameEn.String,
			Active:       r.Active,
			DisplayOrder: r.DisplayOrder,
		})
	}
	return out, nil
}

// ProgramTypes lists program types, localized.
func (s *LookupService) ProgramTypes(ctx context.Context, language string, includeInactive bool) ([]*LookupView, error) {
	lang := i18n.NormalizeLanguage(language, s.canonical)
	rows, err := s.store.ProgramTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*LookupView, 0, len(rows))
	for _, r := range rows {
		if !includeInactive && !r.Active {
			continue
		}
		out = append(out, &LookupView{
			ID:           r.ID,
			Name:         localizedName(r.Name, r.NameEn.String, lang, s.canonical),
			NameEn:       r.NameEn.String,
			Active:       r.Active,
			DisplayOrder: r.DisplayOrder,
		})
	}
	return out, nil
}

// CreateCountry inserts a country.
func (s *LookupService) CreateCountry(ctx context.Context, in LookupInput) (int64, error) {
	if err := required("name", in.Name); err != nil {
		return 0, err
	}
	id, err := s.store.SaveCountry(ctx, &data.Country{
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Code:         nullString(in.Code),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateCountry rewrites a country.
func (s *LookupService) UpdateCountry(ctx context.Context, id int64, in LookupInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	err := s.store.UpdateCountry(ctx, &data.Country{
		ID:           id,
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Code:         nullString(in.Code),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteCountry removes a country; refused while cities reference it.
func (s *LookupService) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.store.DeleteCountry(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// CreateCity inserts a city under an existing country.
func (s *LookupService) CreateCity(ctx context.Context, in LookupInput) (int64, error) {
	if err := required("name", in.Name); err != nil {
		return 0, err
	}
	if in.CountryID == 0 {
		return 0, &ValidationError{Field: "countryId", Reason: "is required"}
	}
	id, err := s.store.SaveCity(ctx, &data.City{
		CountryID:    in.CountryID,
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateCity rewrites a city.
func (s *LookupService) UpdateCity(ctx context.Context, id int64, in LookupInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if in.CountryID == 0 {
		return &ValidationError{Field: "countryId", Reason: "is required"}
	}
	err := s.store.UpdateCity(ctx, &data.City{
		ID:           id,
		CountryID:    in.CountryID,
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteCity removes a city.
func (s *LookupService) DeleteCity(ctx context.Context, id int64) error {
	if err := s.store.DeleteCity(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// CreateGradeLevel inserts a grade level.
func (s *LookupService) CreateGradeLevel(ctx context.Context, in LookupInput) (int64, error) {
	if err := required("name", in.Name); err != nil {
		return 0, err
	}
	id, err := s.store.SaveGradeLevel(ctx, &data.GradeLevel{
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateGradeLevel rewrites a grade level.
func (s *LookupService) UpdateGradeLevel(ctx context.Context, id int64, in LookupInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	err := s.store.UpdateGradeLevel(ctx, &data.GradeLevel{
		ID:           id,
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteGradeLevel removes a grade level.
func (s *LookupService) DeleteGradeLevel(ctx context.Context, id int64) error {
	if err := s.store.DeleteGradeLevel(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// CreateProgramType inserts a program type.
func (s *LookupService) CreateProgramType(ctx context.Context, in LookupInput) (int64, error) {
	if err := required("name", in.Name); err != nil {
		return 0, err
	}
	id, err := s.store.SaveProgramType(ctx, &data.ProgramType{
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateProgramType rewrites a program type.
func (s *LookupService) UpdateProgramType(ctx context.Context, id int64, in LookupInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	err := s.store.UpdateProgramType(ctx, &data.ProgramType{
		ID:           id,
		Name:         in.Name,
		NameEn:       nullString(in.NameEn),
		Active:       in.active(),
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteProgramType removes a program type.
func (s *LookupService) DeleteProgramType(ctx context.Context, id int64) error {
	if err := s.store.DeleteProgramType(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// invalidate drops cached lookup bundles and the program listings
// whose labels they feed.
func (s *LookupService) invalidate() {
	if err := s.cache.InvalidateType(EntityLookup); err != nil {
		s.log.Error(err, "Lookup cache invalidation failed")
	}
	if err := s.cache.InvalidateType(EntityProgram); err != nil {
		s.log.Error(err, "Program cache invalidation failed")
	}
}
