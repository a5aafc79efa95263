package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/aerohub/internal/models"
)

func TestGenerateKey(t *testing.T) {
	q := models.ListQuery{PageSize: 10, PageNumber: 1, SortField: models.SortName, SortDirection: models.SortAsc, Search: "field"}

	assert.Equal(t, generateKey(3, q), generateKey(3, q))
	assert.True(t, strings.HasPrefix(generateKey(3, q), "airports:page:3:"))
	assert.NotEqual(t, generateKey(3, q), generateKey(4, q), "a new generation must not reuse old pages")

	other := q
	other.State = "Texas"
	assert.NotEqual(t, generateKey(3, q), generateKey(3, other))

	other = q
	other.SortDirection = models.SortDesc
	assert.NotEqual(t, generateKey(3, q), generateKey(3, other))
}

func TestNoOpCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NewNoOpCache()
	q := models.ListQuery{PageSize: 10}

	require.NoError(t, c.Set(ctx, q, models.Page{TotalElements: 1}))
	_, ok := c.Get(ctx, q)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
	assert.NoError(t, c.Close())
}

func TestDefaultRedisConfig(t *testing.T) {
	cfg := DefaultRedisConfig()
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Positive(t, cfg.TTL)
}
