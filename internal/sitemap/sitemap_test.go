package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type parsedURLSet struct {
	URLs []struct {
		Loc        string `xml:"loc"`
		ChangeFreq string `xml:"changefreq"`
		Priority   string `xml:"priority"`
		Links      []struct {
			Hreflang string `xml:"hreflang,attr"`
			Href     string `xml:"href,attr"`
		} `xml:"http://www.w3.org/1999/xhtml link"`
	} `xml:"url"`
}

type parsedIndex struct {
	Sitemaps []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	} `xml:"sitemap"`
}

func readXML(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, xml.Unmarshal(data, v))
}

func TestParseRoute(t *testing.T) {
	r, ok := ParseRoute("en/united-states/texas/austin/web-design.mdx")
	require.True(t, ok)
	assert.Equal(t, Route{"en", "united-states", "texas", "austin", "web-design"}, r)
	assert.Equal(t, "en/united-states/texas/austin/web-design", r.Path())

	_, ok = ParseRoute("/en/united-states/texas/austin/seo/")
	assert.True(t, ok)

	for _, bad := range []string{
		"",
		"en/united-states/texas/web-design.mdx",
		"en/united-states/texas/austin/extra/web-design.mdx",
		"en//texas/austin/web-design.mdx",
		"blog/post.mdx",
	} {
		_, ok := ParseRoute(bad)
		assert.False(t, ok, bad)
	}
}

func TestClassifier_Tier(t *testing.T) {
	c := DefaultClassifier()

	assert.Equal(t, Tier1, c.Tier("united-states", "web-design"))
	assert.Equal(t, Tier2, c.Tier("brazil", "web-design"))
	assert.Equal(t, Tier2, c.Tier("united-states", "branding"))
	assert.Equal(t, Tier3, c.Tier("brazil", "branding"))

	empty := NewClassifier(nil, nil)
	assert.Equal(t, Tier3, empty.Tier("united-states", "web-design"))
}

func TestTier_Attributes(t *testing.T) {
	assert.Equal(t, "tier1", Tier1.String())
	assert.Equal(t, "daily", Tier1.ChangeFreq())
	assert.Equal(t, "0.7", Tier2.Priority())
	assert.Equal(t, "monthly", Tier3.ChangeFreq())
}

func TestBuilder_Entry(t *testing.T) {
	b := NewBuilder("https://example.com/", []string{"en", "es", "fr"}, nil, "2026-10-19")
	r := Route{"es", "brazil", "sao-paulo", "sao-paulo", "web-design"}

	e := b.Entry(r)
	assert.Equal(t, "https://example.com/es/brazil/sao-paulo/sao-paulo/web-design", e.Loc)
	assert.Equal(t, Tier2, e.Tier)
	assert.Equal(t, "weekly", e.ChangeFreq)
	assert.Equal(t, "2026-10-19", e.LastMod)

	require.Len(t, e.Alternates, 4)
	assert.Equal(t, "en", e.Alternates[0].Hreflang)
	assert.Equal(t, "https://example.com/fr/brazil/sao-paulo/sao-paulo/web-design", e.Alternates[2].Href)
	assert.Equal(t, XDefault, e.Alternates[3].Hreflang)
	assert.Equal(t, "https://example.com/en/brazil/sao-paulo/sao-paulo/web-design", e.Alternates[3].Href)
}

func TestCollect_MissingDir(t *testing.T) {
	routes, err := Collect(filepath.Join(t.TempDir(), "nope"), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func writeContent(t *testing.T, root string, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte("---\ntitle: x\n---\n"), 0644))
}

func TestCollect_SkipsMalformed(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "en/united-states/texas/dallas/seo.mdx")
	writeContent(t, root, "en/united-states/texas/austin/seo.mdx")
	writeContent(t, root, "en/united-states/texas/austin/notes.txt")
	writeContent(t, root, "en/blog/hello.mdx")
	writeContent(t, root, "en/united-states/texas/austin/deep/seo.mdx")

	routes, err := Collect(root, nil)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "austin", routes[0].City)
	assert.Equal(t, "dallas", routes[1].City)
}

func tierRoutes(n int, country, category string) []Route {
	out := make([]Route, n)
	for i := range out {
		out[i] = Route{"en", country, "state", fmt.Sprintf("city-%06d", i), category}
	}
	return out
}

func TestWriter_BatchesAndIndexOrder(t *testing.T) {
	public := t.TempDir()
	b := NewBuilder("https://example.com", []string{"en"}, nil, "2026-10-19")

	var routes []Route
	routes = append(routes, tierRoutes(10, "brazil", "branding")...)
	routes = append(routes, tierRoutes(120000, "united-states", "web-design")...)
	routes = append(routes, tierRoutes(5, "brazil", "seo")...)

	w := NewWriter(public, "https://example.com", zaptest.NewLogger(t))
	res, err := w.Write(b.Entries(routes), "2026-10-19")
	require.NoError(t, err)

	require.Len(t, res.Batches, 5)
	assert.Equal(t, 120000, res.URLs[Tier1])
	assert.Equal(t, 5, res.URLs[Tier2])
	assert.Equal(t, 10, res.URLs[Tier3])
	assert.Equal(t, 120015, res.Total())

	wantSizes := []int{50000, 50000, 20000}
	for i, size := range wantSizes {
		batch := res.Batches[i]
		assert.Equal(t, Tier1, batch.Tier)
		assert.Equal(t, i+1, batch.N)

		var set parsedURLSet
		readXML(t, batch.Path, &set)
		assert.Len(t, set.URLs, size)
		assert.LessOrEqual(t, len(set.URLs), MaxURLsPerFile)
	}

	var idx parsedIndex
	readXML(t, filepath.Join(public, IndexFile), &idx)
	require.Len(t, idx.Sitemaps, 5)
	assert.Equal(t, "https://example.com/sitemaps/sitemap-tier1-1.xml", idx.Sitemaps[0].Loc)
	assert.Equal(t, "https://example.com/sitemaps/sitemap-tier1-3.xml", idx.Sitemaps[2].Loc)
	assert.Equal(t, "https://example.com/sitemaps/sitemap-tier2-1.xml", idx.Sitemaps[3].Loc)
	assert.Equal(t, "https://example.com/sitemaps/sitemap-tier3-1.xml", idx.Sitemaps[4].Loc)
	assert.Equal(t, "2026-10-19", idx.Sitemaps[0].LastMod)
}

func TestWriter_IndexCompletenessAndStaleRemoval(t *testing.T) {
	public := t.TempDir()
	dir := filepath.Join(public, SitemapsDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	stale := filepath.Join(dir, "sitemap-tier3-9.xml")
	require.NoError(t, os.WriteFile(stale, []byte("<urlset/>"), 0644))

	b := NewBuilder("https://example.com", []string{"en", "de"}, nil, "2026-10-19")
	routes := append(tierRoutes(7, "germany", "seo"), tierRoutes(3, "india", "branding")...)

	w := NewWriter(public, "https://example.com", nil)
	w.BatchSize = 4
	_, err := w.Write(b.Entries(routes), "2026-10-19")
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))

	var idx parsedIndex
	readXML(t, filepath.Join(public, IndexFile), &idx)
	listed := map[string]int{}
	for _, s := range idx.Sitemaps {
		listed[s.Loc[strings.LastIndex(s.Loc, "/")+1:]]++
	}

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		assert.Equal(t, 1, listed[f.Name()], f.Name())
	}
	assert.Len(t, listed, len(files))
}

func TestWriter_AlternatesInXML(t *testing.T) {
	public := t.TempDir()
	b := NewBuilder("https://example.com", []string{"en", "es"}, nil, "2026-10-19")
	routes := []Route{{"es", "canada", "ontario", "toronto", "seo"}}

	res, err := NewWriter(public, "https://example.com", nil).Write(b.Entries(routes), "2026-10-19")
	require.NoError(t, err)
	require.Len(t, res.Batches, 1)

	var set parsedURLSet
	readXML(t, res.Batches[0].Path, &set)
	require.Len(t, set.URLs, 1)
	u := set.URLs[0]
	assert.Equal(t, "https://example.com/es/canada/ontario/toronto/seo", u.Loc)
	assert.Equal(t, "daily", u.ChangeFreq)
	assert.Equal(t, "0.9", u.Priority)
	require.Len(t, u.Links, 3)
	assert.Equal(t, "es", u.Links[1].Hreflang)
	assert.Equal(t, "x-default", u.Links[2].Hreflang)
	assert.Equal(t, "https://example.com/en/canada/ontario/toronto/seo", u.Links[2].Href)
}

func TestWriter_NoEntriesWritesNothing(t *testing.T) {
	public := t.TempDir()
	res, err := NewWriter(public, "https://example.com", nil).Write(nil, "2026-10-19")
	require.NoError(t, err)
	assert.Empty(t, res.Batches)

	_, err = os.Stat(filepath.Join(public, IndexFile))
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_BatchSizeClampedToProtocolCap(t *testing.T) {
	w := NewWriter(t.TempDir(), "", nil)
	w.BatchSize = MaxURLsPerFile * 2
	assert.Equal(t, MaxURLsPerFile, w.batchSize())
}

func TestGenerate_EndToEnd(t *testing.T) {
	content := t.TempDir()
	public := t.TempDir()
	writeContent(t, content, "en/united-states/texas/austin/web-design.mdx")
	writeContent(t, content, "en/brazil/sao-paulo/sao-paulo/branding.mdx")
	writeContent(t, content, "en/brazil/sao-paulo/sao-paulo/web-design.mdx")

	res, err := Generate(Options{
		ContentDir: content,
		PublicDir:  public,
		BaseURL:    "https://example.com",
		Locales:    []string{"en"},
		Now:        time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Logger:     zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.URLs[Tier1])
	assert.Equal(t, 1, res.URLs[Tier2])
	assert.Equal(t, 1, res.URLs[Tier3])
	require.Len(t, res.Batches, 3)
	assert.FileExists(t, filepath.Join(public, SitemapsDir, "sitemap-tier2-1.xml"))
}

func TestGenerate_MissingContentWritesNothing(t *testing.T) {
	public := t.TempDir()
	res, err := Generate(Options{
		ContentDir: filepath.Join(t.TempDir(), "content"),
		PublicDir:  public,
		BaseURL:    "https://example.com",
		Locales:    []string{"en"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total())
	_, err = os.Stat(filepath.Join(public, SitemapsDir))
	assert.True(t, os.IsNotExist(err))
}
