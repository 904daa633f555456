package models

import (
	"time"

	"github.com/google/uuid"
)

// Run status values.
const (
	RunStatusRunning   = "Running"
	RunStatusCompleted = "Completed"
	RunStatusError     = "Error"
)

// Run kinds.
const (
	RunKindContent = "content"
	RunKindSitemap = "sitemap"
)

// PageRecord is the manifest row stored for every generated page.
type PageRecord struct {
	ID        uuid.UUID `json:"id"`
	Route     string    `json:"route"`
	Locale    string    `json:"locale"`
	Country   string    `json:"country"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	Category  string    `json:"category"`
	Tier      string    `json:"tier"`
	Seed      int32     `json:"seed"`
	PriceMin  int64     `json:"price_min"`
	PriceMax  int64     `json:"price_max"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lead is a contact form submission. Leads are stored, never emailed.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" binding:"required,max=200"`
	Email     string    `json:"email" binding:"required,email"`
	Company   string    `json:"company,omitempty" binding:"max=200"`
	Message   string    `json:"message" binding:"max=5000"`
	PageRoute string    `json:"page_route,omitempty"`
	Locale    string    `json:"locale,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerationRun records one content or sitemap build.
type GenerationRun struct {
	ID         uuid.UUID  `json:"id"`
	Kind       string     `json:"kind"`
	Status     string     `json:"status"`
	Pages      int        `json:"pages"`
	Files      int        `json:"files"`
	Errors     []string   `json:"errors,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewPageRecord creates a manifest row with a generated UUID and timestamps.
func NewPageRecord(route string) *PageRecord {
	now := time.Now()
	return &PageRecord{
		ID:        uuid.New(),
		Route:     route,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewGenerationRun starts a run of the given kind.
func NewGenerationRun(kind string) *GenerationRun {
	return &GenerationRun{
		ID:        uuid.New(),
		Kind:      kind,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
}

// Finish marks the run completed, or errored when errs is non-empty.
func (r *GenerationRun) Finish(errs ...error) {
	now := time.Now()
	r.FinishedAt = &now
	r.Status = RunStatusCompleted
	for _, err := range errs {
		if err == nil {
			continue
		}
		r.Status = RunStatusError
		r.Errors = append(r.Errors, err.Error())
	}
}
