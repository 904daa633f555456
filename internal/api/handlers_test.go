package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/pseo-builder/internal/cache"
	"github.com/romangod6/pseo-builder/internal/catalog"
	"github.com/romangod6/pseo-builder/internal/content"
	"github.com/romangod6/pseo-builder/internal/models"
	"github.com/romangod6/pseo-builder/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Initialize())
	return s
}

func newTestServer(t *testing.T, store storage.Store, previews PreviewCache) http.Handler {
	t.Helper()
	cat := catalog.Default()
	gen := content.New(cat, content.Options{SameCategoryLinks: 2, SameCityLinks: 2})
	return NewServer(0, NewHandler(store, cat, gen, previews, nil), nil).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t, nil, nil), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	w := do(t, newTestServer(t, nil, nil), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pseo_leads_received_total")
}

func TestPages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, route := range []string{"en/a/b/c/seo", "en/a/b/c/web-design", "de/a/b/c/seo"} {
		p := models.NewPageRecord(route)
		p.Tier = "tier2"
		require.NoError(t, store.UpsertPage(ctx, p))
	}
	srv := newTestServer(t, store, nil)

	w := do(t, srv, http.MethodGet, "/api/pages?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data  []models.PageRecord `json:"data"`
		Page  int                 `json:"page"`
		Limit int                 `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)
	assert.Equal(t, 2, list.Limit)

	w = do(t, srv, http.MethodGet, "/api/pages/"+list.Data[0].ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), list.Data[0].Route)

	w = do(t, srv, http.MethodGet, "/api/pages/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/api/pages/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/api/pages/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tiers":{"tier2":3},"total":3}`, w.Body.String())
}

func TestNoStore(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	for _, target := range []string{"/api/pages", "/api/pages/stats", "/api/leads", "/api/runs"} {
		w := do(t, srv, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
	}
}

type failingStore struct {
	storage.Store
}

func (failingStore) ListPages(context.Context, int, int) ([]*models.PageRecord, error) {
	return nil, errors.New("connection reset")
}

func TestListPagesStoreError(t *testing.T) {
	w := do(t, newTestServer(t, failingStore{}, nil), http.MethodGet, "/api/pages", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLeads(t *testing.T) {
	srv := newTestServer(t, newTestStore(t), nil)

	w := do(t, srv, http.MethodPost, "/api/leads", map[string]string{
		"name":       "Grace",
		"email":      "grace@example.com",
		"message":    "Quote for SEO please",
		"page_route": "en/united-states/texas/austin/seo",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/leads", map[string]string{"name": "NoEmail"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/leads", map[string]string{"name": "Bad", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/api/leads", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []models.Lead `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "grace@example.com", list.Data[0].Email)
}

func TestRuns(t *testing.T) {
	store := newTestStore(t)
	run := models.NewGenerationRun(models.RunKindSitemap)
	require.NoError(t, store.CreateRun(context.Background(), run))

	w := do(t, newTestServer(t, store, nil), http.MethodGet, "/api/runs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), run.ID.String())
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := do(t, srv, http.MethodGet, "/api/preview?city=austin&category=web-design&country=united-states", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "en/united-states/texas/austin/web-design", resp.Route)
	assert.Equal(t, "tier1", resp.Tier)
	assert.Equal(t, "USD", resp.Price.Currency)
	assert.True(t, strings.Contains(resp.HTML, "<h1"), resp.HTML)
	assert.Len(t, resp.Related, 4)
	assert.False(t, resp.Cached)

	w = do(t, srv, http.MethodGet, "/api/preview?city=austin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/api/preview?city=atlantis&category=seo", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/api/preview?city=austin&category=plumbing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	previews := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	srv := newTestServer(t, nil, previews)
	target := "/api/preview?city=berlin&category=seo&locale=de"

	first := do(t, srv, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.True(t, mr.Exists(cache.PreviewKey("de", "germany", "berlin", "seo")))

	second := do(t, srv, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b PreviewResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.False(t, a.Cached)
	assert.True(t, b.Cached)
	assert.Equal(t, "EUR", b.Price.Currency)
	a.Cached, b.Cached = false, false
	assert.Equal(t, a, b)

	w := do(t, srv, http.MethodGet, "/api/preview?city=berlin&category=seo&locale=xx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, mr.Keys(), 1)
}

func TestPreview_OnlyConfiguredLocales(t *testing.T) {
	cat := catalog.Default()
	gen := content.New(cat, content.Options{Locales: []string{"en", "fr"}})
	srv := NewServer(0, NewHandler(nil, cat, gen, nil, nil), nil).Handler()

	w := do(t, srv, http.MethodGet, "/api/preview?city=paris&category=seo&locale=fr", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, locale := range []string{"de", "EN", "", "../en"} {
		w = do(t, srv, http.MethodGet, "/api/preview?city=paris&category=seo&locale="+url.QueryEscape(locale), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, locale)
	}
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query       string
		page, limit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0&limit=500", 1, 10},
		{"page=x&limit=-1", 1, 10},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		page, limit := getPaginationParams(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.limit, limit, tt.query)
	}
}
