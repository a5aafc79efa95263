package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionLabel(t *testing.T) {
	tests := []struct {
		country, state, want string
	}{
		{"US", "Alaska", "US-Alaska"},
		{"US", "", "US"},
		{"", "Alaska", "Alaska"},
		{"", "", ""},
	}
	for _, tt := range tests {
		a := Airport{Country: tt.country, State: tt.state}
		assert.Equal(t, tt.want, a.Region(), "country=%q state=%q", tt.country, tt.state)
	}
}

func TestAirport_RegionFollowsFields(t *testing.T) {
	a := Airport{Country: "US", State: "Texas"}
	assert.Equal(t, "US-Texas", a.Region())

	a.State = "Ohio"
	assert.Equal(t, "US-Ohio", a.Region())
}

func TestAirport_MarshalIncludesRegion(t *testing.T) {
	a := Airport{Key: "00AK", ICAO: "00AK", Name: "Lowell Field", Country: "US", State: "Alaska", Elevation: 450}

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "US-Alaska", m["region"])
	assert.Equal(t, "00AK", m["key"])
	assert.EqualValues(t, 450, m["elevation"])
}

func TestListQuery_Values(t *testing.T) {
	q := ListQuery{PageSize: 20, PageNumber: 3}
	v := q.Values()
	assert.Equal(t, "20", v.Get("pageSize"))
	assert.Equal(t, "3", v.Get("pageNumber"))
	assert.False(t, v.Has("sortField"))
	assert.False(t, v.Has("sortDirection"))
	assert.False(t, v.Has("search"))
	assert.False(t, v.Has("state"))

	q = ListQuery{PageSize: 10, SortField: SortName, SortDirection: SortDesc, Search: "  field ", State: "Texas"}
	v = q.Values()
	assert.Equal(t, "name", v.Get("sortField"))
	assert.Equal(t, "desc", v.Get("sortDirection"))
	assert.Equal(t, "field", v.Get("search"))
	assert.Equal(t, "Texas", v.Get("state"))

	q = ListQuery{PageSize: 10, Search: "   "}
	assert.False(t, q.Values().Has("search"))
}

func TestListQuery_Validate(t *testing.T) {
	q := ListQuery{SortField: SortCity, Search: " x "}
	require.NoError(t, q.Validate())
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, SortAsc, q.SortDirection)
	assert.Equal(t, "x", q.Search)

	q = ListQuery{PageSize: 10, SortField: "region"}
	assert.ErrorIs(t, q.Validate(), ErrUnknownSortField)

	q = ListQuery{PageSize: 15}
	assert.ErrorIs(t, q.Validate(), ErrInvalidPageSize)

	q = ListQuery{PageSize: 10, PageNumber: -1}
	assert.ErrorIs(t, q.Validate(), ErrInvalidPageNumber)

	q = ListQuery{PageSize: 10, SortField: SortLat, SortDirection: "up"}
	assert.ErrorIs(t, q.Validate(), ErrInvalidSortDirection)
}

func TestAirportInput_Validate(t *testing.T) {
	in := AirportInput{Key: "00AK", Name: "Lowell Field", Country: "US", Timezone: "America/Anchorage", Lat: 59.9, Lon: -151.7}
	require.NoError(t, in.Validate())
	assert.Equal(t, "00AK", in.ICAO)

	in.Lat = 91
	assert.ErrorIs(t, in.Validate(), ErrLatitudeRange)
}

func TestTotalPagesFor(t *testing.T) {
	assert.Equal(t, 0, TotalPagesFor(0, 10))
	assert.Equal(t, 1, TotalPagesFor(10, 10))
	assert.Equal(t, 2, TotalPagesFor(11, 10))
	assert.Equal(t, 0, TotalPagesFor(5, 0))
}
