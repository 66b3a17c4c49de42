//go:build integration

package data

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func setupLookupTest(t *testing.T) (*LookupRepository, func()) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	schema := `
	CREATE TABLE countries (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		name_en TEXT,
		code TEXT,
		active BOOLEAN NOT NULL DEFAULT 1,
		display_order INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE cities (
		id INTEGER PRIMARY KEY,
		country_id INTEGER NOT NULL REFERENCES countries(id) ON DELETE RESTRICT,
		name TEXT NOT NULL,
		name_en TEXT,
		active BOOLEAN NOT NULL DEFAULT 1,
		display_order INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE grade_levels (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		name_en TEXT,
		active BOOLEAN NOT NULL DEFAULT 1,
		display_order INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE program_types (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		name_en TEXT,
		active BOOLEAN NOT NULL DEFAULT 1,
		display_order INTEGER NOT NULL DEFAULT 0
	);`
	db.MustExec(schema)

	repo := NewLookupRepository(db)
	teardown := func() {
		db.Close()
	}
	return repo, teardown
}

func TestLookupRepository_CountryLifecycle(t *testing.T) {
	repo, teardown := setupLookupTest(t)
	defer teardown()
	ctx := context.Background()

	id, err := repo.SaveCountry(ctx, &Country{
		Name:   "美国",
		NameEn: sql.NullString{String: "United States", Valid: true},
		Code:   sql.NullString{String: "US", Valid: true},
		Active: true,
	})
	if err != nil {
		t.Fatalf("SaveCountry failed: %v", err)
	}

	got, err := repo.CountryByID(ctx, id)
	if err != nil {
		t.Fatalf("CountryByID failed: %v", err)
	}
	if got == nil || got.Name != "美国" || got.NameEn.String != "United States" {
		t.Errorf("unexpected country: %+v", got)
	}

	got.Active = false
	if err := repo.UpdateCountry(ctx, got); err != nil {
		t.Fatalf("UpdateCountry failed: %v", err)
	}
	got, err = repo.CountryByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active {
		t.Error("expected country to be inactive after update")
	}

	if err := repo.DeleteCountry(ctx, id); err != nil {
		t.Fatalf("DeleteCountry failed: %v", err)
	}
	got, err = repo.CountryByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expected deleted country to be gone")
	}
}

func TestLookupRepository_CountryByID_Missing(t *testing.T) {
	repo, teardown := setupLookupTest(t)
	defer teardown()

	got, err := repo.CountryByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("CountryByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing country, got %+v", got)
	}
}

func TestLookupRepository_SaveCity_RequiresCountry(t *testing.T) {
	repo, teardown := setupLookupTest(t)
	defer teardown()
	ctx := context.Background()

	_, err := repo.SaveCity(ctx, &City{CountryID: 99, Name: "波士顿", Active: true})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for an orphan city, got %v", err)
	}

	countryID, err := repo.SaveCountry(ctx, &Country{Name: "美国", Active: true})
	if err != nil {
		t.Fatalf("SaveCountry failed: %v", err)
	}
	cityID, err := repo.SaveCity(ctx, &City{CountryID: countryID, Name: "波士顿", Active: true})
	if err != nil {
		t.Fatalf("SaveCity failed: %v", err)
	}
	if cityID == 0 {
		t.Error("expected generated city id")
	}
}

func TestLookupRepository_DeleteCountry_BlockedByCities(t *testing.T) {
	repo, teardown := setupLookupTest(t)
	defer teardown()
	ctx := context.Background()

	countryID, err := repo.SaveCountry(ctx, &Country{Name: "美国", Active: true})
	if err != nil {
		t.Fatalf("SaveCountry failed: %v", err)
	}
	cityID, err := repo.SaveCity(ctx, &City{CountryID: countryID, Name: "波士顿", Active: true})
	if err != nil {
		t.Fatalf("SaveCity failed: %v", err)
	}

	if err := repo.DeleteCountry(ctx, countryID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict while a city references the country, got %v", err)
	}

	if err := repo.DeleteCity(ctx, cityID); err != nil {
		t.Fatalf("DeleteCity failed: %v", err)
	}
	if err := repo.DeleteCountry(ctx, countryID); err != nil {
		t.Errorf("expected delete to succeed once cities are gone, got %v", err)
	}
}

func TestLookupRepository_Cities_FilterByCountry(t *testing.T) {
	repo, teardown := setupLookupTest(t)
	defer teardown()
	ctx := context.Background()

	us, err := repo.SaveCountry(ctx, &Country{Name: "美国", Active: true})
	if err != nil {
		t.Fatal(err)
	}
	uk, err := repo.SaveCountry(ctx, &Country{Name: "英国", Active: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []*City{
		{CountryID: us, Name: "波士顿", Active: true},
		{CountryID: us, Name: "纽约", Active: true},
		{CountryID: uk, Name: "伦敦", Active: true},
	} {
		if _, err := repo.SaveCity(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.Cities(ctx, 0)
	if err != nil {
		t.Fatalf("Cities failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 cities, got %d", len(all))
	}

	usOnly, err := repo.Cities(ctx, us)
	if err != nil {
		t.Fatalf("Cities failed: %v", err)
	}
	if len(usOnly) != 2 {
		t.Errorf("expected 2 cities for country %d, got %d", us, len(usOnly))
	}
}

func TestLookupRepository_DisplayOrder(t *testing.T) {
	repo, teardown := setupLookupTest(t)
	defer teardown()
	ctx := context.Background()

	for _, g := range []*GradeLevel{
		{Name: "高中", Active: true, DisplayOrder: 2},
		{Name: "初中", Active: true, DisplayOrder: 1},
	} {
		if _, err := repo.SaveGradeLevel(ctx, g); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := repo.GradeLevels(ctx)
	if err != nil {
		t.Fatalf("GradeLevels failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "初中" {
		t.Errorf("expected display_order sorting, got %+v", rows)
	}
}

func TestLookupRepository_ProgramTypeLifecycle(t *testing.T) {
	repo, teardown := setupLookupTest(t)
	defer teardown()
	ctx := context.Background()

	id, err := repo.SaveProgramType(ctx, &ProgramType{
		Name:   "理工",
		NameEn: sql.NullString{String: "STEM", Valid: true},
		Active: true,
	})
	if err != nil {
		t.Fatalf("SaveProgramType failed: %v", err)
	}

	if err := repo.UpdateProgramType(ctx, &ProgramType{ID: id, Name: "理工科", Active: true}); err != nil {
		t.Fatalf("UpdateProgramType failed: %v", err)
	}
	if err := repo.UpdateProgramType(ctx, &ProgramType{ID: 999, Name: "x", Active: true}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound updating a missing row, got %v", err)
	}

	if err := repo.DeleteProgramType(ctx, id); err != nil {
		t.Fatalf("DeleteProgramType failed: %v", err)
	}
	if err := repo.DeleteProgramType(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
