// Package catalog talks to the remote airport catalog: the paged list endpoint and
// the create endpoint.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/ratelimit"
)

type Config struct {
	// BaseURL points at the API root, e.g. http://localhost:8080/api/v1.
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Limiter    *ratelimit.EndpointLimiter
	Logger     *slog.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.EndpointLimiter
	logger  *slog.Logger
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		limiter: cfg.Limiter,
		logger:  logger,
	}
}

func (c *Client) airportsURL() string {
	return c.baseURL + "/airports"
}

// List fetches one page. Every failure is returned as *FetchError.
func (c *Client) List(ctx context.Context, q models.ListQuery) (models.Page, error) {
	if err := c.limiter.Wait(ctx, ratelimit.EndpointList); err != nil {
		return models.Page{}, &FetchError{Err: err}
	}

	url := c.airportsURL() + "?" + q.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Page{}, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Page{}, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Page{}, &FetchError{Status: resp.StatusCode, Err: errors.New(readReason(resp.Body, "unexpected status"))}
	}

	var page models.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return models.Page{}, &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("decode page: %w", err)}
	}
	if page.Content == nil {
		page.Content = []models.Airport{}
	}

	c.logger.Debug("fetched airports page",
		"page", q.PageNumber, "size", q.PageSize, "records", len(page.Content), "total", page.TotalElements)
	return page, nil
}

// Create posts a new airport and returns the server's version of it. Every failure is
// returned as *CreateError.
func (c *Client) Create(ctx context.Context, in models.AirportInput) (models.Airport, error) {
	if err := c.limiter.Wait(ctx, ratelimit.EndpointCreate); err != nil {
		return models.Airport{}, &CreateError{Err: err}
	}

	body, err := json.Marshal(in)
	if err != nil {
		return models.Airport{}, &CreateError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.airportsURL(), bytes.NewReader(body))
	if err != nil {
		return models.Airport{}, &CreateError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Airport{}, &CreateError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Airport{}, &CreateError{Status: resp.StatusCode, Reason: readReason(resp.Body, "")}
	}

	var created models.Airport
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return models.Airport{}, &CreateError{Status: resp.StatusCode, Err: fmt.Errorf("decode airport: %w", err)}
	}
	return created, nil
}

// readReason pulls the message out of an ErrorResponse body, or returns fallback.
func readReason(r io.Reader, fallback string) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return fallback
	}
	var er models.ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Message != "" {
		return er.Message
	}
	return fallback
}
