// Package query keeps the local view parameters and the current page of the remote
// airport catalog consistent with each other.
package query

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/notify"
)

// Lister is the remote paged-list endpoint.
type Lister interface {
	List(ctx context.Context, q models.ListQuery) (models.Page, error)
}

type Config struct {
	Lister   Lister
	PageSize int
	Notifier notify.Sink
	Logger   *slog.Logger
}

// Controller owns ViewParameters and the current Page. Every parameter change issues
// exactly one fetch. Fetches carry a sequence token: only the newest one may apply its
// result or clear the loading flag, so a superseded response never overwrites a newer one.
type Controller struct {
	lister  Lister
	sink    notify.Sink
	logger  *slog.Logger
	changes *notify.Broadcaster

	mu      sync.Mutex
	params  ViewParameters
	page    models.Page
	loading bool
	lastErr error
	seq     uint64
}

func New(cfg Config) (*Controller, error) {
	params := DefaultViewParameters()
	if cfg.PageSize != 0 {
		if !models.IsAllowedPageSize(cfg.PageSize) {
			return nil, models.ErrInvalidPageSize
		}
		params.PageSize = cfg.PageSize
	}
	sink := cfg.Notifier
	if sink == nil {
		sink = notify.Discard{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		lister:  cfg.Lister,
		sink:    sink,
		logger:  logger,
		changes: notify.NewBroadcaster(),
		params:  params,
		page:    models.Page{Content: []models.Airport{}},
	}, nil
}

func (c *Controller) Params() ViewParameters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Page returns a copy of the current page; callers cannot mutate controller state through it.
func (c *Controller) Page() models.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.page
	p.Content = append([]models.Airport(nil), c.page.Content...)
	return p
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err is the error of the last settled fetch, nil after a success.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) Changes() *notify.Broadcaster {
	return c.changes
}

// SetSort advances the sort cycle for field. The page index is preserved.
func (c *Controller) SetSort(ctx context.Context, field models.SortField) error {
	if _, err := models.ParseSortField(string(field)); err != nil {
		return err
	}
	return c.update(ctx, func(v *ViewParameters) {
		v.SortField, v.SortDirection = nextSort(*v, field)
	})
}

// SetSearch stores text verbatim. The page index is preserved.
func (c *Controller) SetSearch(ctx context.Context, text string) error {
	return c.update(ctx, func(v *ViewParameters) {
		v.SearchText = text
	})
}

// SetStateFilter restricts the list to one state; empty clears the filter.
func (c *Controller) SetStateFilter(ctx context.Context, state string) error {
	return c.update(ctx, func(v *ViewParameters) {
		v.State = state
	})
}

// SetPageSize sets a size from models.AllowedPageSizes and returns to the first page.
func (c *Controller) SetPageSize(ctx context.Context, n int) error {
	if !models.IsAllowedPageSize(n) {
		return models.ErrInvalidPageSize
	}
	return c.update(ctx, func(v *ViewParameters) {
		v.PageSize = n
		v.PageIndex = 0
	})
}

// SetPageIndex moves to page n, clamped to the known page range.
func (c *Controller) SetPageIndex(ctx context.Context, n int) error {
	return c.update(ctx, func(v *ViewParameters) {
		v.PageIndex = clampPage(n, c.page.TotalPages)
	})
}

// Refresh re-issues the fetch for the current parameters.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// update applies mutate under the lock and fetches only when the parameters changed.
func (c *Controller) update(ctx context.Context, mutate func(*ViewParameters)) error {
	c.mu.Lock()
	next := c.params
	mutate(&next)
	if next == c.params {
		c.mu.Unlock()
		return nil
	}
	c.params = next
	c.mu.Unlock()

	c.logger.Debug("view parameters changed",
		"page", next.PageIndex, "size", next.PageSize, "sort", next.SortField, "dir", next.SortDirection, "search", next.SearchText)
	return c.fetch(ctx)
}

func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	token := c.seq
	q := c.params.Query()
	c.loading = true
	c.mu.Unlock()
	c.changes.Broadcast()

	page, err := c.lister.List(ctx, q)

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		c.logger.Debug("dropping superseded fetch", "token", token)
		return nil
	}
	c.loading = false
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		c.changes.Broadcast()

		c.logger.Warn("airport list fetch failed", "err", err)
		c.sink.Notify(notify.New(notify.KindError, "Could not load airports", err.Error()))
		return err
	}
	if page.Content == nil {
		page.Content = []models.Airport{}
	}
	c.page = page
	c.lastErr = nil
	c.mu.Unlock()
	c.changes.Broadcast()
	return nil
}
