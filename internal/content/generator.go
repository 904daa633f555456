package content

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/romangod6/pseo-builder/internal/catalog"
	"github.com/romangod6/pseo-builder/internal/metrics"
	"github.com/romangod6/pseo-builder/internal/models"
	"github.com/romangod6/pseo-builder/internal/pricing"
	"github.com/romangod6/pseo-builder/internal/sitemap"
	"github.com/romangod6/pseo-builder/internal/storage"
	"github.com/romangod6/pseo-builder/internal/variation"
)

const (
	DefaultWorkers           = 8
	DefaultSameCategoryLinks = 3
	DefaultSameCityLinks     = 3
)

// Options configures a generation run.
type Options struct {
	ContentDir        string
	Locales           []string
	Workers           int
	SameCategoryLinks int
	SameCityLinks     int
	Classifier        *sitemap.Classifier
	// Store is optional. When set, every page is recorded along with the run.
	Store  storage.Store
	Logger *zap.Logger
}

// Result summarizes a generation run.
type Result struct {
	Pages     int
	Written   int
	Unchanged int
	Run       *models.GenerationRun
}

type Generator struct {
	catalog *catalog.Catalog
	opts    Options
	logger  *zap.Logger
}

func New(c *catalog.Catalog, opts Options) *Generator {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if len(opts.Locales) == 0 {
		opts.Locales = variation.Locales()
	}
	if opts.Classifier == nil {
		opts.Classifier = sitemap.DefaultClassifier()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{catalog: c, opts: opts, logger: logger}
}

// Locales are the locales pages are generated for.
func (g *Generator) Locales() []string {
	return g.opts.Locales
}

// HasLocale reports whether locale is one of the generated locales.
func (g *Generator) HasLocale(locale string) bool {
	for _, l := range g.opts.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// Build assembles the page for one triple. It is a pure function of the
// triple and the generator options.
func (g *Generator) Build(t catalog.Triple) Page {
	loc, cat := t.Location, t.Category
	categoryName := cat.Name(t.Locale)

	text := variation.Compose(loc.City, cat.Slug, t.Locale, loc.CityName, categoryName)
	price := pricing.Synthesize(
		pricing.Range{Min: cat.PriceMin, Max: cat.PriceMax},
		text.Seed, loc.Country, t.Locale,
	)

	return Page{
		Route: sitemap.Route{
			Locale:   t.Locale,
			Country:  loc.Country,
			State:    loc.State,
			City:     loc.City,
			Category: cat.Slug,
		},
		CountryName:  loc.CountryName,
		StateName:    loc.StateName,
		CityName:     loc.CityName,
		CategoryName: categoryName,
		Tier:         g.opts.Classifier.Tier(loc.Country, cat.Slug),
		Text:         text,
		Price:        price,
		Related: RelatedLinks(g.catalog, t, int(variation.Abs(text.Seed)),
			g.opts.SameCategoryLinks, g.opts.SameCityLinks),
	}
}

// Run writes every page of the catalog under ContentDir. Files whose content
// is already up to date are left untouched.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	triples := g.catalog.Expand(g.opts.Locales)
	run := models.NewGenerationRun(models.RunKindContent)
	res := &Result{Pages: len(triples), Run: run}

	if g.opts.Store != nil {
		if err := g.opts.Store.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record generation run: %w", err)
		}
	}

	g.logger.Info("generating content",
		zap.Int("pages", len(triples)),
		zap.Strings("locales", g.opts.Locales),
		zap.Int("workers", g.opts.Workers),
	)

	records := make([]*models.PageRecord, len(triples))
	var written, unchanged atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, t := range triples {
		i, t := i, t
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			page := g.Build(t)
			changed, err := g.write(page)
			if err != nil {
				return err
			}
			if changed {
				written.Add(1)
			} else {
				unchanged.Add(1)
			}
			metrics.PagesGenerated.WithLabelValues(t.Locale, page.Tier.String()).Inc()
			records[i] = record(page)
			return nil
		})
	}
	genErr := eg.Wait()

	res.Written = int(written.Load())
	res.Unchanged = int(unchanged.Load())
	run.Files = res.Written

	// One transaction after the workers finish, so sqlite never sees
	// concurrent writers.
	var storeErr error
	if g.opts.Store != nil && genErr == nil {
		if err := g.opts.Store.UpsertPages(ctx, records); err != nil {
			storeErr = fmt.Errorf("failed to record pages: %w", err)
		} else {
			run.Pages = len(records)
		}
	} else {
		for _, r := range records {
			if r != nil {
				run.Pages++
			}
		}
	}

	run.Finish(genErr, storeErr)
	if g.opts.Store != nil {
		if err := g.opts.Store.UpdateRun(ctx, run); err != nil {
			g.logger.Error("failed to update generation run", zap.Error(err))
		}
	}

	if genErr != nil {
		return res, genErr
	}
	if storeErr != nil {
		return res, storeErr
	}

	g.logger.Info("content generated",
		zap.Int("pages", res.Pages),
		zap.Int("written", res.Written),
		zap.Int("unchanged", res.Unchanged),
	)
	return res, nil
}

// write renders the page and reports whether the file on disk changed.
func (g *Generator) write(page Page) (bool, error) {
	doc, err := page.Render()
	if err != nil {
		return false, err
	}

	path := filepath.Join(g.opts.ContentDir, filepath.FromSlash(page.File()))
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, doc) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", page.File(), err)
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", page.File(), err)
	}
	return true, nil
}

func record(page Page) *models.PageRecord {
	r := models.NewPageRecord(page.Route.Path())
	r.Locale = page.Route.Locale
	r.Country = page.Route.Country
	r.State = page.Route.State
	r.City = page.Route.City
	r.Category = page.Route.Category
	r.Tier = page.Tier.String()
	r.Seed = page.Text.Seed
	r.PriceMin = page.Price.Min
	r.PriceMax = page.Price.Max
	r.Currency = page.Price.Currency
	return r
}
