package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/romangod6/pseo-builder/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

type Store interface {
	Initialize() error
	Close() error

	// Page manifest operations
	UpsertPage(ctx context.Context, page *models.PageRecord) error
	// UpsertPages writes every page in a single transaction.
	UpsertPages(ctx context.Context, pages []*models.PageRecord) error
	GetPage(ctx context.Context, id uuid.UUID) (*models.PageRecord, error)
	GetPageByRoute(ctx context.Context, route string) (*models.PageRecord, error)
	ListPages(ctx context.Context, limit, offset int) ([]*models.PageRecord, error)
	CountPagesByTier(ctx context.Context) (map[string]int, error)

	// Lead operations
	CreateLead(ctx context.Context, lead *models.Lead) error
	ListLeads(ctx context.Context, limit, offset int) ([]*models.Lead, error)

	// Generation run operations
	CreateRun(ctx context.Context, run *models.GenerationRun) error
	UpdateRun(ctx context.Context, run *models.GenerationRun) error
	ListRuns(ctx context.Context, limit int) ([]*models.GenerationRun, error)
}

// Open returns the store for a driver name. "none" or "" returns nil.
func Open(driver, url string) (Store, error) {
	switch driver {
	case "", "none":
		return nil, nil
	case "sqlite", "sqlite3":
		s, err := NewSQLiteStore(url)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "postgresql":
		s, err := NewPostgresStore(url)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
