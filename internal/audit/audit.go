// Package audit crawls a published sitemap and checks it against the
// protocol limits and the page-level SEO signals the generator promises.
package audit

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/romangod6/pseo-builder/internal/sitemap"
)

const (
	DefaultSample    = 20
	DefaultUserAgent = "pSEO Sitemap Auditor v1.0"
)

type Config struct {
	IndexURL  string
	UserAgent string
	// Sample is the number of page URLs fetched and parsed. Zero skips pages.
	Sample int
	// BatchCap flags batch files holding more URLs. Zero means the protocol cap.
	BatchCap    int
	Parallelism int
	Delay       time.Duration
}

// BatchReport describes one sitemap batch file.
type BatchReport struct {
	Loc        string `json:"loc"`
	Tier       string `json:"tier"`
	URLs       int    `json:"urls"`
	Alternates int    `json:"alternates"`
	OverCap    bool   `json:"over_cap"`
}

// PageReport describes one sampled page.
type PageReport struct {
	URL             string   `json:"url"`
	Status          int      `json:"status"`
	Title           string   `json:"title"`
	Canonical       string   `json:"canonical"`
	Hreflangs       []string `json:"hreflangs"`
	WordCount       int      `json:"word_count"`
	MissingXDefault bool     `json:"missing_x_default"`
}

type Report struct {
	IndexURL string         `json:"index_url"`
	Batches  []BatchReport  `json:"batches"`
	URLs     map[string]int `json:"urls"`
	Total    int            `json:"total"`
	// TierOrderOK is false when the index lists a lower tier before a higher one.
	TierOrderOK bool         `json:"tier_order_ok"`
	Pages       []PageReport `json:"pages"`
	Errors      []string     `json:"errors,omitempty"`
}

// OverCap returns the batches exceeding the cap.
func (r *Report) OverCap() []BatchReport {
	var out []BatchReport
	for _, b := range r.Batches {
		if b.OverCap {
			out = append(out, b)
		}
	}
	return out
}

var batchName = regexp.MustCompile(`sitemap-(tier\d+)-\d+\.xml$`)

// TierOf extracts the tier from a batch file URL, or "" when it does not
// follow the batch naming scheme.
func TierOf(loc string) string {
	m := batchName.FindStringSubmatch(loc)
	if m == nil {
		return ""
	}
	return m[1]
}

type Auditor struct {
	config *Config
	logger *zap.Logger
}

func NewAuditor(config *Config, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.BatchCap <= 0 {
		config.BatchCap = sitemap.MaxURLsPerFile
	}
	if config.Parallelism <= 0 {
		config.Parallelism = 2
	}
	return &Auditor{config: config, logger: logger}
}

func (a *Auditor) newCollector(host string) (*colly.Collector, error) {
	c := colly.NewCollector(
		colly.UserAgent(a.config.UserAgent),
		colly.AllowedDomains(host),
		// Full batches with alternates exceed the default 10MB body limit.
		colly.MaxBodySize(0),
	)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: a.config.Parallelism,
		Delay:       a.config.Delay,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

// Run fetches the index, every batch it lists and a sample of pages.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	index, err := url.Parse(a.config.IndexURL)
	if err != nil || index.Host == "" {
		return nil, fmt.Errorf("invalid sitemap index URL %q", a.config.IndexURL)
	}

	c, err := a.newCollector(index.Hostname())
	if err != nil {
		return nil, err
	}

	report := &Report{
		IndexURL:    a.config.IndexURL,
		URLs:        make(map[string]int),
		TierOrderOK: true,
	}

	var mu sync.Mutex
	var batchLocs []string
	batches := make(map[string]*BatchReport)
	var pageLocs []string
	pages := make(map[string]*PageReport)

	c.OnXML("//sitemapindex/sitemap/loc", func(e *colly.XMLElement) {
		mu.Lock()
		defer mu.Unlock()
		batchLocs = append(batchLocs, strings.TrimSpace(e.Text))
	})

	c.OnXML("//urlset/url", func(e *colly.XMLElement) {
		mu.Lock()
		defer mu.Unlock()
		b, ok := batches[e.Request.URL.String()]
		if !ok {
			return
		}
		b.URLs++
		b.Alternates += len(e.ChildAttrs("xhtml:link", "hreflang"))
		if loc := e.ChildText("loc"); loc != "" && len(pageLocs) < a.config.Sample {
			pageLocs = append(pageLocs, loc)
		}
	})

	c.OnHTML("html", func(e *colly.HTMLElement) {
		parsed, err := ParsePage(string(e.Response.Body))
		mu.Lock()
		defer mu.Unlock()
		p, ok := pages[e.Request.URL.String()]
		if !ok {
			return
		}
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", p.URL, err))
			return
		}
		p.Title = parsed.Title
		p.Canonical = parsed.Canonical
		p.WordCount = parsed.WordCount
		for lang := range parsed.Hreflangs {
			p.Hreflangs = append(p.Hreflangs, lang)
		}
		sort.Strings(p.Hreflangs)
		_, hasDefault := parsed.Hreflangs[sitemap.XDefault]
		p.MissingXDefault = !hasDefault
	})

	c.OnResponse(func(r *colly.Response) {
		mu.Lock()
		defer mu.Unlock()
		if p, ok := pages[r.Request.URL.String()]; ok {
			p.Status = r.StatusCode
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		mu.Lock()
		defer mu.Unlock()
		u := r.Request.URL.String()
		if p, ok := pages[u]; ok {
			p.Status = r.StatusCode
		}
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", u, err))
		a.logger.Warn("audit fetch failed", zap.String("url", u), zap.Int("status", r.StatusCode), zap.Error(err))
	})

	a.logger.Info("auditing sitemap index", zap.String("url", a.config.IndexURL))
	if err := c.Visit(a.config.IndexURL); err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap index: %w", err)
	}
	c.Wait()

	if len(batchLocs) == 0 {
		return nil, fmt.Errorf("sitemap index %s lists no batch files", a.config.IndexURL)
	}

	lastRank := 0
	for _, loc := range batchLocs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tier := TierOf(loc)
		if rank := tierRank(tier); rank < lastRank {
			report.TierOrderOK = false
		} else {
			lastRank = rank
		}

		mu.Lock()
		batches[loc] = &BatchReport{Loc: loc, Tier: tier}
		mu.Unlock()

		if err := c.Visit(loc); err != nil {
			mu.Lock()
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", loc, err))
			mu.Unlock()
		}
	}
	c.Wait()

	for _, loc := range batchLocs {
		b := batches[loc]
		b.OverCap = b.URLs > a.config.BatchCap
		report.URLs[b.Tier] += b.URLs
		report.Total += b.URLs
		report.Batches = append(report.Batches, *b)
		if b.OverCap {
			a.logger.Warn("sitemap batch over cap", zap.String("loc", loc), zap.Int("urls", b.URLs), zap.Int("cap", a.config.BatchCap))
		}
	}

	for _, loc := range pageLocs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mu.Lock()
		pages[loc] = &PageReport{URL: loc}
		mu.Unlock()
		if err := c.Visit(loc); err != nil {
			mu.Lock()
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", loc, err))
			mu.Unlock()
		}
	}
	c.Wait()

	for _, loc := range pageLocs {
		report.Pages = append(report.Pages, *pages[loc])
	}

	a.logger.Info("audit finished",
		zap.Int("batches", len(report.Batches)),
		zap.Int("urls", report.Total),
		zap.Int("pages", len(report.Pages)),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// tierRank orders tier names; unknown names sort last.
func tierRank(tier string) int {
	for _, t := range sitemap.Tiers {
		if t.String() == tier {
			return int(t)
		}
	}
	return len(sitemap.Tiers) + 1
}
