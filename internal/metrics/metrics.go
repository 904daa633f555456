// Package metrics exposes build and API counters for prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector in this package.
var Registry = prometheus.NewRegistry()

var (
	PagesGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pseo",
		Name:      "pages_generated_total",
		Help:      "Content pages written by the generator.",
	}, []string{"locale", "tier"})

	SitemapURLs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pseo",
		Name:      "sitemap_urls_total",
		Help:      "URLs written to sitemap batch files.",
	}, []string{"tier"})

	SitemapFiles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pseo",
		Name:      "sitemap_files_written_total",
		Help:      "Sitemap batch files written.",
	})

	LeadsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pseo",
		Name:      "leads_received_total",
		Help:      "Contact form submissions stored.",
	})

	PreviewCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pseo",
		Name:      "preview_cache_total",
		Help:      "Preview cache lookups by result.",
	}, []string{"result"})
)

func init() {
	Registry.MustRegister(
		PagesGenerated,
		SitemapURLs,
		SitemapFiles,
		LeadsReceived,
		PreviewCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
