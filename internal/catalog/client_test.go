package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/testutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api/v1/", Logger: testutil.NewTestLogger(t)})
}

func TestClient_List(t *testing.T) {
	var gotPath, gotQuery, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"key":"00AK","icao":"00AK","name":"Lowell Field","country":"US","state":"Alaska","elevation":450,"region":"stale"}],"totalPages":3,"totalElements":21}`))
	})

	page, err := c.List(context.Background(), models.ListQuery{PageSize: 10, PageNumber: 2, SortField: models.SortName, SortDirection: models.SortAsc, Search: " low "})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/airports", gotPath)
	assert.Equal(t, "pageNumber=2&pageSize=10&search=low&sortDirection=asc&sortField=name", gotQuery)
	assert.NotEmpty(t, gotRequestID)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "US-Alaska", page.Content[0].Region())
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 21, page.TotalElements)
}

func TestClient_ListEmptyContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"totalPages":0,"totalElements":0}`))
	})

	page, err := c.List(context.Background(), models.ListQuery{PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
}

func TestClient_ListNon2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.List(context.Background(), models.ListQuery{PageSize: 10})
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusBadGateway, fe.Status)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_ListTransportError(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := c.List(context.Background(), models.ListQuery{PageSize: 10})
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.Status)
}

func TestClient_Create(t *testing.T) {
	var got models.AirportInput
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, hasRegion := raw["region"]
		assert.False(t, hasRegion)

		b, _ := json.Marshal(raw)
		require.NoError(t, json.Unmarshal(b, &got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(got.Airport())
	})

	in := models.AirportInput{Key: "KXYZ", ICAO: "KXYZ", Name: "Test Field", City: "Van", State: "Texas", Country: "US", Elevation: 545, Lat: 32.5, Lon: -95.6, Timezone: "America/Chicago"}
	created, err := c.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Equal(t, "KXYZ", created.Key)
	assert.Equal(t, "US-Texas", created.Region())
}

func TestClient_CreateFailureSurfacesStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "duplicate_key", Message: "airport KXYZ already exists", Code: 409})
	})

	_, err := c.Create(context.Background(), models.AirportInput{Key: "KXYZ"})
	var ce *CreateError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusConflict, ce.Status)
	assert.Equal(t, "airport KXYZ already exists", ce.Reason)
	assert.Equal(t, "create airport: HTTP 409: airport KXYZ already exists", err.Error())
}

func TestClient_CreateFailureWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Create(context.Background(), models.AirportInput{Key: "KXYZ"})
	assert.Equal(t, "create airport: HTTP 500 Internal Server Error", err.Error())
}

func TestClient_CreateCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Create(ctx, models.AirportInput{Key: "KXYZ"})
	var ce *CreateError
	require.ErrorAs(t, err, &ce)
	assert.True(t, errors.Is(err, context.Canceled))
}
