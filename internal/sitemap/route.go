// Package sitemap turns generated content files into tiered, batched XML
// sitemaps and a sitemap index.
package sitemap

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ContentExt is the extension of generated content files.
const ContentExt = ".mdx"

// Route is the decomposed path of one generated page.
type Route struct {
	Locale   string
	Country  string
	State    string
	City     string
	Category string
}

// Path returns "locale/country/state/city/category".
func (r Route) Path() string {
	return path.Join(r.Locale, r.Country, r.State, r.City, r.Category)
}

// WithLocale returns the same page in another locale.
func (r Route) WithLocale(locale string) Route {
	r.Locale = locale
	return r
}

// ParseRoute decomposes a slash separated path relative to the content root.
// Anything that is not exactly five non-empty segments is rejected.
func ParseRoute(rel string) (Route, bool) {
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	rel = strings.TrimSuffix(rel, ContentExt)

	parts := strings.Split(rel, "/")
	if len(parts) != 5 {
		return Route{}, false
	}
	for _, p := range parts {
		if p == "" {
			return Route{}, false
		}
	}
	return Route{
		Locale:   parts[0],
		Country:  parts[1],
		State:    parts[2],
		City:     parts[3],
		Category: parts[4],
	}, true
}

// Collect walks contentDir for content files and returns their routes sorted
// by path. A missing directory logs a warning and yields no routes.
func Collect(contentDir string, logger *zap.Logger) ([]Route, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := os.Stat(contentDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("content directory not found, no sitemap entries", zap.String("dir", contentDir))
			return nil, nil
		}
		return nil, err
	}

	var routes []Route
	err := filepath.WalkDir(contentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ContentExt {
			return nil
		}
		rel, err := filepath.Rel(contentDir, p)
		if err != nil {
			return err
		}
		if r, ok := ParseRoute(rel); ok {
			routes = append(routes, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(routes, func(i, j int) bool { return routes[i].Path() < routes[j].Path() })
	return routes, nil
}
