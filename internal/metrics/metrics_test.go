package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(PagesGenerated.WithLabelValues("en", "tier1"))
	PagesGenerated.WithLabelValues("en", "tier1").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PagesGenerated.WithLabelValues("en", "tier1")))

	before = testutil.ToFloat64(PreviewCache.WithLabelValues("hit"))
	PreviewCache.WithLabelValues("hit").Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(PreviewCache.WithLabelValues("hit")))
}

func TestHandler(t *testing.T) {
	LeadsReceived.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pseo_leads_received_total")
	assert.Contains(t, string(body), "go_goroutines")
}
