package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/romangod6/pseo-builder/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing connection pool.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pages (
            id UUID PRIMARY KEY,
            route VARCHAR(1024) UNIQUE NOT NULL,
            locale VARCHAR(16) NOT NULL,
            country VARCHAR(255) NOT NULL,
            state VARCHAR(255) NOT NULL,
            city VARCHAR(255) NOT NULL,
            category VARCHAR(255) NOT NULL,
            tier VARCHAR(16) NOT NULL,
            seed INTEGER NOT NULL,
            price_min BIGINT NOT NULL,
            price_max BIGINT NOT NULL,
            currency VARCHAR(8) NOT NULL,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_pages_tier ON pages(tier)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_country_category ON pages(country, category)`,
		`CREATE TABLE IF NOT EXISTS leads (
            id UUID PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            email VARCHAR(320) NOT NULL,
            company VARCHAR(255),
            message TEXT,
            page_route VARCHAR(1024),
            locale VARCHAR(16),
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS generation_runs (
            id UUID PRIMARY KEY,
            kind VARCHAR(32) NOT NULL,
            status VARCHAR(32) NOT NULL,
            pages INTEGER NOT NULL DEFAULT 0,
            files INTEGER NOT NULL DEFAULT 0,
            errors TEXT[],
            started_at TIMESTAMP NOT NULL,
            finished_at TIMESTAMP
        )`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

const postgresUpsertPage = `
        INSERT INTO pages (id, route, locale, country, state, city, category, tier, seed, price_min, price_max, currency, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        ON CONFLICT (route) DO UPDATE SET
            tier = EXCLUDED.tier,
            seed = EXCLUDED.seed,
            price_min = EXCLUDED.price_min,
            price_max = EXCLUDED.price_max,
            currency = EXCLUDED.currency,
            updated_at = EXCLUDED.updated_at
    `

func (s *PostgresStore) UpsertPage(ctx context.Context, page *models.PageRecord) error {
	_, err := s.db.ExecContext(ctx, postgresUpsertPage, postgresPageArgs(page)...)
	return err
}

func (s *PostgresStore) UpsertPages(ctx context.Context, pages []*models.PageRecord) error {
	return upsertInTx(ctx, s.db, postgresUpsertPage, pages, postgresPageArgs)
}

func postgresPageArgs(page *models.PageRecord) []interface{} {
	return []interface{}{
		page.ID,
		page.Route,
		page.Locale,
		page.Country,
		page.State,
		page.City,
		page.Category,
		page.Tier,
		page.Seed,
		page.PriceMin,
		page.PriceMax,
		page.Currency,
		page.CreatedAt,
		page.UpdatedAt,
	}
}

func (s *PostgresStore) GetPage(ctx context.Context, id uuid.UUID) (*models.PageRecord, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = $1`
	return s.getPage(ctx, query, id)
}

func (s *PostgresStore) GetPageByRoute(ctx context.Context, route string) (*models.PageRecord, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE route = $1`
	return s.getPage(ctx, query, route)
}

func (s *PostgresStore) getPage(ctx context.Context, query string, arg interface{}) (*models.PageRecord, error) {
	page, err := scanPostgresPage(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *PostgresStore) ListPages(ctx context.Context, limit, offset int) ([]*models.PageRecord, error) {
	query := `SELECT ` + pageColumns + ` FROM pages ORDER BY route LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*models.PageRecord
	for rows.Next() {
		page, err := scanPostgresPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

func (s *PostgresStore) CountPagesByTier(ctx context.Context) (map[string]int, error) {
	return countByTier(ctx, s.db)
}

func scanPostgresPage(row rowScanner) (*models.PageRecord, error) {
	page := &models.PageRecord{}
	err := row.Scan(
		&page.ID,
		&page.Route,
		&page.Locale,
		&page.Country,
		&page.State,
		&page.City,
		&page.Category,
		&page.Tier,
		&page.Seed,
		&page.PriceMin,
		&page.PriceMax,
		&page.Currency,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *PostgresStore) CreateLead(ctx context.Context, lead *models.Lead) error {
	query := `
        INSERT INTO leads (id, name, email, company, message, page_route, locale, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := s.db.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Company,
		lead.Message,
		lead.PageRoute,
		lead.Locale,
		lead.CreatedAt,
	)

	return err
}

func (s *PostgresStore) ListLeads(ctx context.Context, limit, offset int) ([]*models.Lead, error) {
	query := `
        SELECT id, name, email, company, message, page_route, locale, created_at
        FROM leads
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead := &models.Lead{}
		var company, message, route, locale sql.NullString

		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &company, &message, &route, &locale, &lead.CreatedAt); err != nil {
			return nil, err
		}

		lead.Company = company.String
		lead.Message = message.String
		lead.PageRoute = route.String
		lead.Locale = locale.String
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *models.GenerationRun) error {
	query := `
        INSERT INTO generation_runs (id, kind, status, pages, files, errors, started_at, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.Kind,
		run.Status,
		run.Pages,
		run.Files,
		pq.Array(run.Errors),
		run.StartedAt,
		run.FinishedAt,
	)

	return err
}

func (s *PostgresStore) UpdateRun(ctx context.Context, run *models.GenerationRun) error {
	query := `
        UPDATE generation_runs
        SET status = $1, pages = $2, files = $3, errors = $4, finished_at = $5
        WHERE id = $6
    `

	res, err := s.db.ExecContext(ctx, query,
		run.Status,
		run.Pages,
		run.Files,
		pq.Array(run.Errors),
		run.FinishedAt,
		run.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]*models.GenerationRun, error) {
	query := `
        SELECT id, kind, status, pages, files, errors, started_at, finished_at
        FROM generation_runs
        ORDER BY started_at DESC
        LIMIT $1
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.GenerationRun
	for rows.Next() {
		run := &models.GenerationRun{}
		var errs []string
		var finished sql.NullTime

		if err := rows.Scan(&run.ID, &run.Kind, &run.Status, &run.Pages, &run.Files, pq.Array(&errs), &run.StartedAt, &finished); err != nil {
			return nil, err
		}

		run.Errors = errs
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
