package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ListingStore persists the local dataset.
type ListingStore interface {
	LoadListings(ctx context.Context) ([]Job, error)
	SaveListings(ctx context.Context, listings []Job) error
	Close() error
}

const sqliteListingsSchema = `CREATE TABLE IF NOT EXISTS listings (
	id                 TEXT PRIMARY KEY,
	position           INTEGER NOT NULL,
	title              TEXT NOT NULL,
	company            TEXT NOT NULL,
	location           TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	required_skills    TEXT NOT NULL DEFAULT '[]',
	preferred_skills   TEXT NOT NULL DEFAULT '[]',
	salary_range       TEXT NOT NULL DEFAULT '',
	remote             INTEGER NOT NULL DEFAULT 0,
	clearance_level    TEXT NOT NULL DEFAULT '',
	mos_code           TEXT NOT NULL DEFAULT '',
	required_mos_codes TEXT NOT NULL DEFAULT '[]',
	job_type           TEXT NOT NULL DEFAULT '',
	industry           TEXT NOT NULL DEFAULT '',
	experience_level   TEXT NOT NULL DEFAULT '',
	education_level    TEXT NOT NULL DEFAULT '',
	company_size       TEXT NOT NULL DEFAULT '',
	company_rating     REAL,
	benefits           TEXT NOT NULL DEFAULT '[]',
	posted_at          TEXT NOT NULL,
	source             TEXT NOT NULL DEFAULT 'local',
	url                TEXT NOT NULL DEFAULT ''
)`

const listingColumns = `id, title, company, location, description, required_skills, preferred_skills,
	salary_range, remote, clearance_level, mos_code, required_mos_codes, job_type, industry,
	experience_level, education_level, company_size, company_rating, benefits, posted_at, source, url`

// SQLiteStore keeps listings in a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for a throwaway store.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer; also keeps :memory: on one connection
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteListingsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// LoadListings returns every stored listing, normalized, in insertion order.
func (s *SQLiteStore) LoadListings(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var (
			r                          RawJob
			source, posted             string
			reqSkills, prefSkills, mos string
			benefits                   string
			remote                     bool
			rating                     sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Company, &r.Location, &r.Description,
			&reqSkills, &prefSkills, &r.SalaryRange, &remote, &r.ClearanceLevel, &r.MOSCode,
			&mos, &r.JobType, &r.Industry, &r.ExperienceLevel, &r.EducationLevel, &r.CompanySize,
			&rating, &benefits, &posted, &source, &r.URL); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		for _, l := range []struct {
			src string
			dst *[]string
		}{{reqSkills, &r.RequiredSkills}, {prefSkills, &r.PreferredSkills}, {mos, &r.RequiredMOSCodes}, {benefits, &r.Benefits}} {
			if err := json.Unmarshal([]byte(l.src), l.dst); err != nil {
				return nil, fmt.Errorf("listing %s: decode list: %w", r.ID, err)
			}
		}
		r.Remote = &remote
		if rating.Valid {
			r.CompanyRating = &rating.Float64
		}
		r.Posted = posted
		out = append(out, Normalize(r, source))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}

// SaveListings replaces the stored dataset with listings, keeping their order.
func (s *SQLiteStore) SaveListings(ctx context.Context, listings []Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO listings (position, `+listingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, j := range listings {
		lists := make([]string, 4)
		for k, l := range [][]string{j.RequiredSkills, j.PreferredSkills, j.RequiredMOSCodes, j.Benefits} {
			b, err := json.Marshal(nonNil(l))
			if err != nil {
				return err
			}
			lists[k] = string(b)
		}
		var rating any
		if j.CompanyRating != nil {
			rating = *j.CompanyRating
		}
		if _, err := stmt.ExecContext(ctx, i, j.ID, j.Title, j.Company, j.Location, j.Description,
			lists[0], lists[1], string(j.SalaryRange), j.Remote, string(j.ClearanceLevel), j.MOSCode,
			lists[2], j.JobType, j.Industry, j.ExperienceLevel, j.EducationLevel, j.CompanySize,
			rating, lists[3], j.Date.UTC().Format(time.RFC3339), j.Source, j.URL); err != nil {
			return fmt.Errorf("insert listing %s: %w", j.ID, err)
		}
	}
	return tx.Commit()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
