package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/romangod6/pseo-builder/internal/catalog"
	"github.com/romangod6/pseo-builder/internal/content"
	"github.com/romangod6/pseo-builder/internal/metrics"
	"github.com/romangod6/pseo-builder/internal/models"
	"github.com/romangod6/pseo-builder/internal/storage"
)

// PreviewCache stores rendered previews. *cache.PreviewCache satisfies it.
type PreviewCache interface {
	Get(ctx context.Context, key string, v any) error
	Set(ctx context.Context, key string, v any) error
}

type Handler struct {
	store     storage.Store
	catalog   *catalog.Catalog
	generator *content.Generator
	cache     PreviewCache
	logger    *zap.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count,omitempty"`
}

// NewHandler wires the API. store and previews may be nil; endpoints that
// need a store then answer 503.
func NewHandler(store storage.Store, cat *catalog.Catalog, gen *content.Generator, previews PreviewCache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:     store,
		catalog:   cat,
		generator: gen,
		cache:     previews,
		logger:    logger,
	}
}

func (h *Handler) requireStore(c *gin.Context) bool {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "No database configured"})
		return false
	}
	return true
}

func (h *Handler) ListPages(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	pages, err := h.store.ListPages(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list pages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch pages"})
		return
	}
	if pages == nil {
		pages = []*models.PageRecord{}
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  pages,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetPage(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid page ID"})
		return
	}

	page, err := h.store.GetPage(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Page not found"})
		return
	}
	if err != nil {
		h.logger.Error("get page", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch page"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// PageStats reports the number of recorded pages per tier.
func (h *Handler) PageStats(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	counts, err := h.store.CountPagesByTier(c.Request.Context())
	if err != nil {
		h.logger.Error("count pages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to count pages"})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{"tiers": counts, "total": total})
}

func (h *Handler) ListRuns(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	_, limit := getPaginationParams(c)

	runs, err := h.store.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch runs"})
		return
	}
	if runs == nil {
		runs = []*models.GenerationRun{}
	}
	c.JSON(http.StatusOK, runs)
}

func (h *Handler) CreateLead(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid lead: " + err.Error()})
		return
	}

	lead.ID = uuid.New()
	lead.CreatedAt = time.Now()

	if err := h.store.CreateLead(c.Request.Context(), &lead); err != nil {
		h.logger.Error("create lead", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store lead"})
		return
	}

	metrics.LeadsReceived.Inc()
	h.logger.Info("lead received", zap.String("id", lead.ID.String()), zap.String("route", lead.PageRoute))
	c.JSON(http.StatusCreated, lead)
}

func (h *Handler) ListLeads(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	leads, err := h.store.ListLeads(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list leads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch leads"})
		return
	}
	if leads == nil {
		leads = []*models.Lead{}
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  leads,
		Page:  page,
		Limit: limit,
	})
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
