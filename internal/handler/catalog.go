package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/aerohub/internal/cache"
	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/store"
)

type CatalogHandler struct {
	store  store.Store
	cache  cache.Cache
	logger *slog.Logger
}

func NewCatalogHandler(s store.Store, c cache.Cache, logger *slog.Logger) *CatalogHandler {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{
		store:  s,
		cache:  c,
		logger: logger,
	}
}

// Register mounts the catalog routes on g, normally the /api/v1 group.
func (h *CatalogHandler) Register(g *echo.Group) {
	g.GET("/airports", h.List)
	g.POST("/airports", h.Create)
}

func (h *CatalogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var q models.ListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse query: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := q.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if page, found := h.cache.Get(ctx, q); found {
		c.Response().Header().Set("X-Cache", "hit")
		return c.JSON(http.StatusOK, page)
	}

	page, err := h.store.List(ctx, q)
	if err != nil {
		h.logger.Error("list airports failed", "err", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "list_error",
			Message: "Failed to list airports: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if err := h.cache.Set(ctx, q, page); err != nil {
		h.logger.Warn("cache page failed", "err", err)
	}
	c.Response().Header().Set("X-Cache", "miss")
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var in models.AirportInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := in.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	created, err := h.store.Create(ctx, in)
	if errors.Is(err, store.ErrDuplicateKey) {
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "duplicate_key",
			Message: "Airport " + in.Key + " already exists",
			Code:    http.StatusConflict,
		})
	}
	if err != nil {
		h.logger.Error("create airport failed", "key", in.Key, "err", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "create_error",
			Message: "Failed to create airport: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.Warn("invalidate page cache failed", "err", err)
	}
	h.logger.Info("airport created", "key", created.Key, "region", created.Region())
	return c.JSON(http.StatusCreated, created)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
