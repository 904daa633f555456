package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.uber.org/zap"

	"github.com/romangod6/pseo-builder/internal/cache"
	"github.com/romangod6/pseo-builder/internal/catalog"
	"github.com/romangod6/pseo-builder/internal/content"
	"github.com/romangod6/pseo-builder/internal/metrics"
	"github.com/romangod6/pseo-builder/internal/pricing"
	"github.com/romangod6/pseo-builder/internal/variation"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// PreviewResponse is the generated content of one page without writing it.
type PreviewResponse struct {
	Route   string                `json:"route"`
	Tier    string                `json:"tier"`
	Text    variation.Composition `json:"text"`
	Price   pricing.PriceRange    `json:"price"`
	Related []content.Link        `json:"related"`
	HTML    string                `json:"html"`
	Cached  bool                  `json:"cached"`
}

// Preview renders the page for ?city=&category=&locale=&country=.
func (h *Handler) Preview(c *gin.Context) {
	city := c.Query("city")
	category := c.Query("category")
	if city == "" || category == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "city and category are required"})
		return
	}
	locale := c.DefaultQuery("locale", variation.DefaultLocale)
	if !h.generator.HasLocale(locale) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported locale"})
		return
	}
	country := c.Query("country")

	loc, ok := h.catalog.Location(country, city)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown city"})
		return
	}
	cat, ok := h.catalog.Category(category)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown category"})
		return
	}

	ctx := c.Request.Context()
	key := cache.PreviewKey(locale, loc.Country, loc.City, cat.Slug)
	if h.cache != nil {
		var cached PreviewResponse
		err := h.cache.Get(ctx, key, &cached)
		if err == nil {
			metrics.PreviewCache.WithLabelValues("hit").Inc()
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}
		if !errors.Is(err, cache.ErrMiss) {
			h.logger.Warn("preview cache read failed", zap.String("key", key), zap.Error(err))
		}
		metrics.PreviewCache.WithLabelValues("miss").Inc()
	}

	page := h.generator.Build(catalog.Triple{Locale: locale, Location: loc, Category: cat})

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(page.Body()), &buf); err != nil {
		h.logger.Error("render preview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render preview"})
		return
	}

	resp := PreviewResponse{
		Route:   page.Route.Path(),
		Tier:    page.Tier.String(),
		Text:    page.Text,
		Price:   page.Price,
		Related: page.Related,
		HTML:    buf.String(),
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, resp); err != nil {
			h.logger.Warn("preview cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, resp)
}
