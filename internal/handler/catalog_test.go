package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/store"
	"github.com/dharmasatrya/aerohub/internal/testutil"
)

type memoryCache struct {
	mu          sync.Mutex
	pages       map[models.ListQuery]models.Page
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[models.ListQuery]models.Page{}}
}

func (c *memoryCache) Get(_ context.Context, q models.ListQuery) (models.Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[q]
	return p, ok
}

func (c *memoryCache) Set(_ context.Context, q models.ListQuery, p models.Page) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[q] = p
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = map[models.ListQuery]models.Page{}
	c.invalidated++
	return nil
}

func (c *memoryCache) Close() error { return nil }

func newServer(t *testing.T) (*echo.Echo, *memoryCache) {
	t.Helper()
	s, err := store.NewSeededMemory()
	require.NoError(t, err)
	c := newMemoryCache()

	e := echo.New()
	NewCatalogHandler(s, c, testutil.NewTestLogger(t)).Register(e.Group("/api/v1"))
	e.GET("/health", HealthHandler)
	return e, c
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type wirePage struct {
	Content []struct {
		Key    string `json:"key"`
		Region string `json:"region"`
	} `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) wirePage {
	t.Helper()
	var p wirePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestList_PagesAndSorts(t *testing.T) {
	e, _ := newServer(t)

	rec := do(e, http.MethodGet, "/api/v1/airports?pageSize=10&pageNumber=0&sortField=elevation&sortDirection=desc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	p := decodePage(t, rec)
	require.Len(t, p.Content, 10)
	assert.Equal(t, "01ID", p.Content[0].Key)
	assert.Equal(t, "US-Idaho", p.Content[0].Region)
	assert.Equal(t, 21, p.TotalElements)
	assert.Equal(t, 3, p.TotalPages)
}

func TestList_SearchAndState(t *testing.T) {
	e, _ := newServer(t)

	rec := do(e, http.MethodGet, "/api/v1/airports?pageSize=10&pageNumber=0&state=Texas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodePage(t, rec).TotalElements)

	rec = do(e, http.MethodGet, "/api/v1/airports?pageSize=10&pageNumber=0&search=lowell", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodePage(t, rec)
	require.Len(t, p.Content, 1)
	assert.Equal(t, "00AK", p.Content[0].Key)
}

func TestList_RejectsBadQuery(t *testing.T) {
	e, _ := newServer(t)

	for _, target := range []string{
		"/api/v1/airports?pageSize=15",
		"/api/v1/airports?pageSize=10&sortField=region",
		"/api/v1/airports?pageSize=10&pageNumber=-1",
		"/api/v1/airports?pageSize=abc",
	} {
		rec := do(e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadRequest, body.Code)
	}
}

func TestList_ServesFromCache(t *testing.T) {
	e, _ := newServer(t)

	first := do(e, http.MethodGet, "/api/v1/airports?pageSize=20&pageNumber=0", "")
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))

	second := do(e, http.MethodGet, "/api/v1/airports?pageSize=20&pageNumber=0", "")
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestCreate_ComputesRegionAndInvalidates(t *testing.T) {
	e, c := newServer(t)
	do(e, http.MethodGet, "/api/v1/airports?pageSize=10&pageNumber=0", "")

	body := `{"key":" KDEN ","icao":"","iata":"DEN","name":"Denver International","city":"Denver",
		"state":"Colorado","country":"US","elevation":5434,"lat":39.86,"lon":-104.67,"timezone":"America/Denver"}`
	rec := do(e, http.MethodPost, "/api/v1/airports", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "KDEN", created["key"])
	assert.Equal(t, "KDEN", created["icao"])
	assert.Equal(t, "US-Colorado", created["region"])
	assert.Equal(t, 1, c.invalidated)

	list := do(e, http.MethodGet, "/api/v1/airports?pageSize=10&pageNumber=0&search=denver", "")
	assert.Equal(t, "miss", list.Header().Get("X-Cache"))
	assert.Equal(t, 1, decodePage(t, list).TotalElements)
}

func TestCreate_Errors(t *testing.T) {
	e, c := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/airports", `{"key":"00AK","name":"Lowell Field","country":"US","timezone":"America/Anchorage"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var conflict models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conflict))
	assert.Equal(t, "Airport 00AK already exists", conflict.Message)

	rec = do(e, http.MethodPost, "/api/v1/airports", `{"key":"ZZZZ","country":"US","timezone":"UTC"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/airports", `{"key":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, c.invalidated)
}

func TestHealth(t *testing.T) {
	e, _ := newServer(t)
	rec := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
