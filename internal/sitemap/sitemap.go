package sitemap

import (
	"time"

	"go.uber.org/zap"
)

// Options configures a full sitemap build.
type Options struct {
	ContentDir string
	PublicDir  string
	BaseURL    string
	Locales    []string
	Classifier *Classifier
	// Now stamps lastmod; zero means time.Now().
	Now       time.Time
	BatchSize int
	Logger    *zap.Logger
}

// Generate collects routes from ContentDir and writes the tiered sitemaps.
func Generate(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	lastmod := now.UTC().Format("2006-01-02")

	routes, err := Collect(opts.ContentDir, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("collected content routes", zap.Int("routes", len(routes)), zap.String("dir", opts.ContentDir))

	b := NewBuilder(opts.BaseURL, opts.Locales, opts.Classifier, lastmod)
	w := NewWriter(opts.PublicDir, opts.BaseURL, logger)
	if opts.BatchSize > 0 {
		w.BatchSize = opts.BatchSize
	}
	return w.Write(b.Entries(routes), lastmod)
}
