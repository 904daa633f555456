package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/romangod6/pseo-builder/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pages (
            id TEXT PRIMARY KEY,
            route TEXT UNIQUE NOT NULL,
            locale TEXT NOT NULL,
            country TEXT NOT NULL,
            state TEXT NOT NULL,
            city TEXT NOT NULL,
            category TEXT NOT NULL,
            tier TEXT NOT NULL,
            seed INTEGER NOT NULL,
            price_min INTEGER NOT NULL,
            price_max INTEGER NOT NULL,
            currency TEXT NOT NULL,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_pages_tier ON pages(tier)`,
		`CREATE TABLE IF NOT EXISTS leads (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            company TEXT,
            message TEXT,
            page_route TEXT,
            locale TEXT,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS generation_runs (
            id TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            status TEXT NOT NULL,
            pages INTEGER NOT NULL DEFAULT 0,
            files INTEGER NOT NULL DEFAULT 0,
            errors TEXT,
            started_at DATETIME NOT NULL,
            finished_at DATETIME
        )`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

const sqliteUpsertPage = `
        INSERT INTO pages (id, route, locale, country, state, city, category, tier, seed, price_min, price_max, currency, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(route) DO UPDATE SET
            tier = excluded.tier,
            seed = excluded.seed,
            price_min = excluded.price_min,
            price_max = excluded.price_max,
            currency = excluded.currency,
            updated_at = excluded.updated_at
    `

func (s *SQLiteStore) UpsertPage(ctx context.Context, page *models.PageRecord) error {
	_, err := s.db.ExecContext(ctx, sqliteUpsertPage, sqlitePageArgs(page)...)
	return err
}

func (s *SQLiteStore) UpsertPages(ctx context.Context, pages []*models.PageRecord) error {
	return upsertInTx(ctx, s.db, sqliteUpsertPage, pages, sqlitePageArgs)
}

func sqlitePageArgs(page *models.PageRecord) []interface{} {
	return []interface{}{
		page.ID.String(),
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

const pageColumns = `id, route, locale, country, state, city, category, tier, seed, price_min, price_max, currency, created_at, updated_at`

func (s *SQLiteStore) GetPage(ctx context.Context, id uuid.UUID) (*models.PageRecord, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = ?`
	return s.getPage(ctx, query, id.String())
}

func (s *SQLiteStore) GetPageByRoute(ctx context.Context, route string) (*models.PageRecord, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE route = ?`
	return s.getPage(ctx, query, route)
}

func (s *SQLiteStore) getPage(ctx context.Context, query string, arg interface{}) (*models.PageRecord, error) {
	page, err := scanSQLitePage(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *SQLiteStore) ListPages(ctx context.Context, limit, offset int) ([]*models.PageRecord, error) {
	query := `SELECT ` + pageColumns + ` FROM pages ORDER BY route LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*models.PageRecord
	for rows.Next() {
		page, err := scanSQLitePage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

func (s *SQLiteStore) CountPagesByTier(ctx context.Context) (map[string]int, error) {
	return countByTier(ctx, s.db)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSQLitePage(row rowScanner) (*models.PageRecord, error) {
	var page models.PageRecord
	var idStr string

	err := row.Scan(
		&idStr,
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

	page.ID, _ = uuid.Parse(idStr)
	return &page, nil
}

func (s *SQLiteStore) CreateLead(ctx context.Context, lead *models.Lead) error {
	query := `
        INSERT INTO leads (id, name, email, company, message, page_route, locale, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		lead.ID.String(),
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

func (s *SQLiteStore) ListLeads(ctx context.Context, limit, offset int) ([]*models.Lead, error) {
	query := `
        SELECT id, name, email, company, message, page_route, locale, created_at
        FROM leads
        ORDER BY created_at DESC
        LIMIT ? OFFSET ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var lead models.Lead
		var idStr string
		var company, message, route, locale sql.NullString

		if err := rows.Scan(&idStr, &lead.Name, &lead.Email, &company, &message, &route, &locale, &lead.CreatedAt); err != nil {
			return nil, err
		}

		lead.ID, _ = uuid.Parse(idStr)
		lead.Company = company.String
		lead.Message = message.String
		lead.PageRoute = route.String
		lead.Locale = locale.String
		leads = append(leads, &lead)
	}

	return leads, rows.Err()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *models.GenerationRun) error {
	query := `
        INSERT INTO generation_runs (id, kind, status, pages, files, errors, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `

	errorsJSON, err := json.Marshal(run.Errors)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		run.ID.String(),
		run.Kind,
		run.Status,
		run.Pages,
		run.Files,
		string(errorsJSON),
		run.StartedAt,
		run.FinishedAt,
	)

	return err
}

func (s *SQLiteStore) UpdateRun(ctx context.Context, run *models.GenerationRun) error {
	query := `
        UPDATE generation_runs
        SET status = ?, pages = ?, files = ?, errors = ?, finished_at = ?
        WHERE id = ?
    `

	errorsJSON, err := json.Marshal(run.Errors)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query,
		run.Status,
		run.Pages,
		run.Files,
		string(errorsJSON),
		run.FinishedAt,
		run.ID.String(),
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*models.GenerationRun, error) {
	query := `
        SELECT id, kind, status, pages, files, errors, started_at, finished_at
        FROM generation_runs
        ORDER BY started_at DESC
        LIMIT ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.GenerationRun
	for rows.Next() {
		var run models.GenerationRun
		var idStr string
		var errorsJSON sql.NullString
		var finished sql.NullTime

		if err := rows.Scan(&idStr, &run.Kind, &run.Status, &run.Pages, &run.Files, &errorsJSON, &run.StartedAt, &finished); err != nil {
			return nil, err
		}

		run.ID, _ = uuid.Parse(idStr)
		if errorsJSON.Valid {
			json.Unmarshal([]byte(errorsJSON.String), &run.Errors)
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
