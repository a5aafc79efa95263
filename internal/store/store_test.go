package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/aerohub/internal/models"
)

func TestSeedAirports(t *testing.T) {
	seed, err := SeedAirports()
	require.NoError(t, err)
	require.NotEmpty(t, seed)

	seen := map[string]bool{}
	for _, a := range seed {
		assert.False(t, seen[a.Key], "duplicate seed key %s", a.Key)
		seen[a.Key] = true
		assert.Equal(t, a.Key, a.ICAO)
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Timezone)
	}
	assert.True(t, seen["01ID"])
}

func TestMemory_ListAndCreate(t *testing.T) {
	ctx := context.Background()
	m, err := NewSeededMemory()
	require.NoError(t, err)

	before, err := m.List(ctx, models.ListQuery{PageSize: 10})
	require.NoError(t, err)

	in := models.AirportInput{
		Key: "ZZZZ", ICAO: "ZZZZ", Name: "Test Field", City: "Nowhere",
		State: "Nevada", Country: "US", Timezone: "America/Los_Angeles",
	}
	created, err := m.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "US-Nevada", created.Region())

	after, err := m.List(ctx, models.ListQuery{PageSize: 10, Search: "test field"})
	require.NoError(t, err)
	require.Len(t, after.Content, 1)
	assert.Equal(t, "ZZZZ", after.Content[0].Key)

	all, err := m.List(ctx, models.ListQuery{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, before.TotalElements+1, all.TotalElements)
}

func TestMemory_DuplicateKey(t *testing.T) {
	m := NewMemory([]models.Airport{{Key: "KDEN", Name: "Denver"}, {Key: "KDEN", Name: "Again"}})

	p, err := m.List(context.Background(), models.ListQuery{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, p.Content, 1)
	assert.Equal(t, "Denver", p.Content[0].Name)

	_, err = m.Create(context.Background(), models.AirportInput{Key: "KDEN", Name: "Denver"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestBuildListQuery(t *testing.T) {
	where, args, orderBy := buildListQuery(models.ListQuery{})
	assert.Empty(t, where)
	assert.Empty(t, args)
	assert.Equal(t, " ORDER BY key ASC", orderBy)

	where, args, orderBy = buildListQuery(models.ListQuery{
		Search:        " Low ",
		State:         "Alaska",
		SortField:     models.SortElevation,
		SortDirection: models.SortDesc,
	})
	assert.Equal(t, []any{"%low%", "alaska"}, args)
	assert.True(t, strings.HasPrefix(where, " WHERE (lower(key) LIKE $1"))
	assert.Contains(t, where, "AND lower(state) = $2")
	assert.Equal(t, " ORDER BY elevation DESC, key ASC", orderBy)

	_, _, orderBy = buildListQuery(models.ListQuery{SortField: "region; DROP TABLE airports"})
	assert.Equal(t, " ORDER BY key ASC", orderBy)
}
