package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edusite/internal/i18n"

	"github.com/jmoiron/sqlx"
)

// LookupRepository handles database operations for the shared
// reference tables: countries, cities, grade levels and program types.
// These rows are long-lived; creates are rare and deletes are blocked
// while content references them.
type LookupRepository struct {
	DB *sqlx.DB
}

// NewLookupRepository creates a new LookupRepository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{DB: db}
}

// Countries returns all countries in display order.
func (r *LookupRepository) Countries(ctx context.Context) ([]*Country, error) {
	var rows []*Country
	err := r.DB.SelectContext(ctx, &rows, "SELECT * FROM countries ORDER BY display_order, name")
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountryByID finds a country by its ID. Not found is not an error.
func (r *LookupRepository) CountryByID(ctx context.Context, id int64) (*Country, error) {
	var row Country
	err := r.DB.GetContext(ctx, &row, "SELECT * FROM countries WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// SaveCountry creates a new country and returns its ID.
func (r *LookupRepository) SaveCountry(ctx context.Context, c *Country) (int64, error) {
	res, err := r.DB.NamedExecContext(ctx, `INSERT INTO countries (name, name_en, code, active,
		display_order) VALUES (:name, :name_en, :code, :active, :display_order)`, c)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateCountry rewrites an existing country row.
func (r *LookupRepository) UpdateCountry(ctx context.Context, c *Country) error {
	result, err := r.DB.NamedExecContext(ctx, `UPDATE countries SET name = :name, name_en = :name_en,
		code = :code, active = :active, display_order = :display_order WHERE id = :id`, c)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("country %d", c.ID))
}

// DeleteCountry removes a country. It refuses while cities still
// reference it, mirroring the schema-level RESTRICT.
func (r *LookupRepository) DeleteCountry(ctx context.Context, id int64) error {
	var cities int
	if err := r.DB.GetContext(ctx, &cities, "SELECT COUNT(*) FROM cities WHERE country_id = ?", id); err != nil {
		return err
	}
	if cities > 0 {
		return fmt.Errorf("country %d still has %d cities: %w", id, cities, ErrConflict)
	}
	result, err := r.DB.ExecContext(ctx, "DELETE FROM countries WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("country %d", id))
}

// Cities returns all cities in display order, optionally limited to one country.
func (r *LookupRepository) Cities(ctx context.Context, countryID int64) ([]*City, error) {
	var rows []*City
	var err error
	if countryID == 0 {
		err = r.DB.SelectContext(ctx, &rows, "SELECT * FROM cities ORDER BY display_order, name")
	} else {
		err = r.DB.SelectContext(ctx, &rows, "SELECT * FROM cities WHERE country_id = ? ORDER BY display_order, name", countryID)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CityByID finds a city by its ID. Not found is not an error.
func (r *LookupRepository) CityByID(ctx context.Context, id int64) (*City, error) {
	var row City
	err := r.DB.GetContext(ctx, &row, "SELECT * FROM cities WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// SaveCity creates a new city after verifying its country exists.
func (r *LookupRepository) SaveCity(ctx context.Context, c *City) (int64, error) {
	country, err := r.CountryByID(ctx, c.CountryID)
	if err != nil {
		return 0, err
	}
	if country == nil {
		return 0, fmt.Errorf("country %d for city %q: %w", c.CountryID, c.Name, ErrNotFound)
	}
	res, err := r.DB.NamedExecContext(ctx, `INSERT INTO cities (country_id, name, name_en, active,
		display_order) VALUES (:country_id, :name, :name_en, :active, :display_order)`, c)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateCity rewrites an existing city row.
func (r *LookupRepository) UpdateCity(ctx context.Context, c *City) error {
	result, err := r.DB.NamedExecContext(ctx, `UPDATE cities SET country_id = :country_id,
		name = :name, name_en = :name_en, active = :active, display_order = :display_order
		WHERE id = :id`, c)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("city %d", c.ID))
}

// DeleteCity removes a city.
func (r *LookupRepository) DeleteCity(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM cities WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("city %d", id))
}

// GradeLevels returns all grade levels in display order.
func (r *LookupRepository) GradeLevels(ctx context.Context) ([]*GradeLevel, error) {
	var rows []*GradeLevel
	err := r.DB.SelectContext(ctx, &rows, "SELECT * FROM grade_levels ORDER BY display_order, name")
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveGradeLevel creates a new grade level and returns its ID.
func (r *LookupRepository) SaveGradeLevel(ctx context.Context, g *GradeLevel) (int64, error) {
	res, err := r.DB.NamedExecContext(ctx, `INSERT INTO grade_levels (name, name_en, active,
		display_order) VALUES (:name, :name_en, :active, :display_order)`, g)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateGradeLevel rewrites an existing grade level row.
func (r *LookupRepository) UpdateGradeLevel(ctx context.Context, g *GradeLevel) error {
	result, err := r.DB.NamedExecContext(ctx, `UPDATE grade_levels SET name = :name,
		name_en = :name_en, active = :active, display_order = :display_order WHERE id = :id`, g)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("grade level %d", g.ID))
}

// DeleteGradeLevel removes a grade level.
func (r *LookupRepository) DeleteGradeLevel(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM grade_levels WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("grade level %d", id))
}

// ProgramTypes returns all program types in display order.
func (r *LookupRepository) ProgramTypes(ctx context.Context) ([]*ProgramType, error) {
	var rows []*ProgramType
	err := r.DB.SelectContext(ctx, &rows, "SELECT * FROM program_types ORDER BY display_order, name")
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveProgramType creates a new program type and returns its ID.
func (r *LookupRepository) SaveProgramType(ctx context.Context, p *ProgramType) (int64, error) {
	res, err := r.DB.NamedExecContext(ctx, `INSERT INTO program_types (name, name_en, active,
		display_order) VALUES (:name, :name_en, :active, :display_order)`, p)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateProgramType rewrites an existing program type row.
func (r *LookupRepository) UpdateProgramType(ctx context.Context, p *ProgramType) error {
	result, err := r.DB.NamedExecContext(ctx, `UPDATE program_types SET name = :name,
		name_en = :name_en, active = :active, display_order = :display_order WHERE id = :id`, p)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("program type %d", p.ID))
}

// DeleteProgramType removes a program type.
func (r *LookupRepository) DeleteProgramType(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM program_types WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Sprintf("program type %d", id))
}

// GradeLevelLabels shapes grade levels for the label resolver.
func GradeLevelLabels(rows []*GradeLevel) []i18n.LabelRow {
	out := make([]i18n.LabelRow, len(rows))
	for i, r := range rows {
		out[i] = i18n.LabelRow{Name: r.Name, NameEn: r.NameEn.String}
	}
	return out
}

// ProgramTypeLabels shapes program types for the label resolver.
func ProgramTypeLabels(rows []*ProgramType) []i18n.LabelRow {
	out := make([]i18n.LabelRow, len(rows))
	for i, r := range rows {
		out[i] = i18n.LabelRow{Name: r.Name, NameEn: r.NameEn.String}
	}
	return out
}
