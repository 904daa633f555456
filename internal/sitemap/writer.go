package sitemap

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/romangod6/pseo-builder/internal/metrics"
	"github.com/romangod6/pseo-builder/internal/models"
)

const (
	// MaxURLsPerFile is the sitemap protocol limit per file.
	MaxURLsPerFile = 50000
	// SitemapsDir is the batch directory under the public root.
	SitemapsDir = "sitemaps"
	// IndexFile is the index file name under the public root.
	IndexFile = "sitemap-index.xml"

	batchPrefix = "sitemap-tier"
)

// BatchName is the file name for the nth (1-based) batch of a tier.
func BatchName(t Tier, n int) string {
	return fmt.Sprintf("sitemap-%s-%d.xml", t, n)
}

// Batch is one written sitemap file.
type Batch struct {
	Tier Tier
	N    int
	Path string
	Loc  string
	URLs int
}

// Result summarizes a write.
type Result struct {
	Batches   []Batch
	IndexPath string
	URLs      map[Tier]int
}

// Total is the number of URLs written across all batches.
func (r *Result) Total() int {
	n := 0
	for _, c := range r.URLs {
		n += c
	}
	return n
}

// Writer emits batch files and the index under PublicDir.
type Writer struct {
	PublicDir string
	BaseURL   string
	BatchSize int
	Logger    *zap.Logger
}

// NewWriter returns a writer using the protocol batch cap.
func NewWriter(publicDir, baseURL string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		PublicDir: publicDir,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		BatchSize: MaxURLsPerFile,
		Logger:    logger,
	}
}

func (w *Writer) batchSize() int {
	if w.BatchSize <= 0 || w.BatchSize > MaxURLsPerFile {
		return MaxURLsPerFile
	}
	return w.BatchSize
}

// Write removes stale batch files, writes each tier in batches and then the
// index ordered tier1, tier2, tier3. With no entries nothing is written.
func (w *Writer) Write(entries []Entry, lastmod string) (*Result, error) {
	res := &Result{URLs: make(map[Tier]int, len(Tiers))}
	if len(entries) == 0 {
		w.Logger.Warn("no sitemap entries, skipping write")
		return res, nil
	}

	dir := filepath.Join(w.PublicDir, SitemapsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sitemaps directory: %w", err)
	}
	if err := removeStale(dir); err != nil {
		return nil, err
	}

	size := w.batchSize()
	byTier := Partition(entries)
	for _, tier := range Tiers {
		list := byTier[tier]
		for n, start := 1, 0; start < len(list); n, start = n+1, start+size {
			end := start + size
			if end > len(list) {
				end = len(list)
			}
			name := BatchName(tier, n)
			path := filepath.Join(dir, name)
			if err := writeURLSet(path, list[start:end]); err != nil {
				return nil, err
			}

			count := end - start
			res.Batches = append(res.Batches, Batch{
				Tier: tier,
				N:    n,
				Path: path,
				Loc:  w.BaseURL + "/" + SitemapsDir + "/" + name,
				URLs: count,
			})
			res.URLs[tier] += count
			metrics.SitemapFiles.Inc()
			metrics.SitemapURLs.WithLabelValues(tier.String()).Add(float64(count))
			w.Logger.Debug("wrote sitemap batch", zap.String("file", name), zap.Int("urls", count))
		}
	}

	index := models.SitemapIndex{XMLNS: models.SitemapNamespace}
	for _, b := range res.Batches {
		index.Sitemaps = append(index.Sitemaps, models.SitemapRef{Loc: b.Loc, LastMod: lastmod})
	}
	res.IndexPath = filepath.Join(w.PublicDir, IndexFile)
	if err := writeXML(res.IndexPath, index); err != nil {
		return nil, err
	}

	w.Logger.Info("sitemap written",
		zap.Int("files", len(res.Batches)),
		zap.Int("tier1", res.URLs[Tier1]),
		zap.Int("tier2", res.URLs[Tier2]),
		zap.Int("tier3", res.URLs[Tier3]),
	)
	return res, nil
}

func removeStale(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, batchPrefix+"*.xml"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("failed to remove stale sitemap %s: %w", m, err)
		}
	}
	return nil
}

func writeURLSet(path string, entries []Entry) error {
	set := models.Sitemap{
		XMLNS: models.SitemapNamespace,
		XHTML: models.XHTMLNamespace,
		URLs:  make([]models.URL, 0, len(entries)),
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, e.URL())
	}
	return writeXML(path, set)
}

func writeXML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if _, err := buf.WriteString(xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := buf.WriteByte('\n'); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	return f.Close()
}
