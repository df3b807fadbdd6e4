package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgListingsSchema = `CREATE TABLE IF NOT EXISTS vet_listings (
	id                 TEXT PRIMARY KEY,
	position           INTEGER NOT NULL,
	title              TEXT NOT NULL,
	company            TEXT NOT NULL,
	location           TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	required_skills    TEXT[] NOT NULL DEFAULT '{}',
	preferred_skills   TEXT[] NOT NULL DEFAULT '{}',
	salary_range       TEXT NOT NULL DEFAULT '',
	remote             BOOLEAN NOT NULL DEFAULT FALSE,
	clearance_level    TEXT NOT NULL DEFAULT '',
	mos_code           TEXT NOT NULL DEFAULT '',
	required_mos_codes TEXT[] NOT NULL DEFAULT '{}',
	job_type           TEXT NOT NULL DEFAULT '',
	industry           TEXT NOT NULL DEFAULT '',
	experience_level   TEXT NOT NULL DEFAULT '',
	education_level    TEXT NOT NULL DEFAULT '',
	company_size       TEXT NOT NULL DEFAULT '',
	company_rating     DOUBLE PRECISION,
	benefits           TEXT[] NOT NULL DEFAULT '{}',
	posted_at          TIMESTAMPTZ NOT NULL,
	source             TEXT NOT NULL DEFAULT 'local',
	url                TEXT NOT NULL DEFAULT ''
)`

// PGStore keeps listings in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

// ConnectPGStore creates a pgx pool and ensures the listings table exists.
func ConnectPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgListingsSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create listings table: %w", err)
	}

	slog.Info("listings postgres connected", slog.String("addr", config.ConnConfig.Host))
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

// LoadListings returns every stored listing, normalized, in insertion order.
func (s *PGStore) LoadListings(ctx context.Context) ([]Job, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+listingColumns+` FROM vet_listings ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Job, error) {
		var (
			r      RawJob
			source string
			remote bool
		)
		err := row.Scan(&r.ID, &r.Title, &r.Company, &r.Location, &r.Description,
			&r.RequiredSkills, &r.PreferredSkills, &r.SalaryRange, &remote, &r.ClearanceLevel, &r.MOSCode,
			&r.RequiredMOSCodes, &r.JobType, &r.Industry, &r.ExperienceLevel, &r.EducationLevel, &r.CompanySize,
			&r.CompanyRating, &r.Benefits, &r.Date, &source, &r.URL)
		if err != nil {
			return Job{}, fmt.Errorf("scan listing: %w", err)
		}
		r.Remote = &remote
		return Normalize(r, source), nil
	})
}

// SaveListings replaces the stored dataset with listings, keeping their order.
func (s *PGStore) SaveListings(ctx context.Context, listings []Job) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM vet_listings`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}

	batch := &pgx.Batch{}
	for i, j := range listings {
		batch.Queue(`INSERT INTO vet_listings (position, `+listingColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
			i, j.ID, j.Title, j.Company, j.Location, j.Description,
			nonNil(j.RequiredSkills), nonNil(j.PreferredSkills), string(j.SalaryRange), j.Remote,
			string(j.ClearanceLevel), j.MOSCode, nonNil(j.RequiredMOSCodes), j.JobType, j.Industry,
			j.ExperienceLevel, j.EducationLevel, j.CompanySize, j.CompanyRating, nonNil(j.Benefits),
			j.Date, j.Source, j.URL)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert listings: %w", err)
	}
	return tx.Commit(ctx)
}
