// Package filter searches, sorts and pages airports held in memory.
package filter

import (
	"cmp"
	"sort"
	"strings"

	"github.com/dharmasatrya/aerohub/internal/models"
)

// Apply returns the page q asks for. The input slice is not modified.
func Apply(airports []models.Airport, q models.ListQuery) models.Page {
	filtered := applyFilters(airports, q.Search, q.State)
	sorted := applySort(filtered, q.SortField, q.SortDirection)
	return paginate(sorted, q.PageSize, q.PageNumber)
}

func applyFilters(airports []models.Airport, search, state string) []models.Airport {
	search = strings.ToLower(strings.TrimSpace(search))
	state = strings.TrimSpace(state)

	result := make([]models.Airport, 0, len(airports))
	for _, a := range airports {
		if matches(a, search, state) {
			result = append(result, a)
		}
	}
	return result
}

func matches(a models.Airport, search, state string) bool {
	if state != "" && !strings.EqualFold(a.State, state) {
		return false
	}
	if search == "" {
		return true
	}
	for _, v := range []string{a.Key, a.IATA, a.Name, a.City, a.State, a.Country} {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

// applySort orders by field with the key as tiebreaker. An unset field keeps key order.
func applySort(airports []models.Airport, field models.SortField, dir models.SortDirection) []models.Airport {
	if len(airports) == 0 {
		return airports
	}

	descending := dir == models.SortDesc

	sort.SliceStable(airports, func(i, j int) bool {
		c := compare(airports[i], airports[j], field)
		if c == 0 {
			return airports[i].Key < airports[j].Key
		}
		if descending {
			return c > 0
		}
		return c < 0
	})
	return airports
}

func compare(a, b models.Airport, field models.SortField) int {
	switch field {
	case models.SortICAO:
		return strings.Compare(a.ICAO, b.ICAO)
	case models.SortIATA:
		return strings.Compare(a.IATA, b.IATA)
	case models.SortName:
		return strings.Compare(a.Name, b.Name)
	case models.SortCity:
		return strings.Compare(a.City, b.City)
	case models.SortState:
		return strings.Compare(a.State, b.State)
	case models.SortCountry:
		return strings.Compare(a.Country, b.Country)
	case models.SortElevation:
		return cmp.Compare(a.Elevation, b.Elevation)
	case models.SortLat:
		return cmp.Compare(a.Lat, b.Lat)
	case models.SortLon:
		return cmp.Compare(a.Lon, b.Lon)
	case models.SortTimezone:
		return strings.Compare(a.Timezone, b.Timezone)
	default:
		return strings.Compare(a.Key, b.Key)
	}
}

func paginate(airports []models.Airport, pageSize, pageNumber int) models.Page {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	page := models.Page{
		Content:       []models.Airport{},
		TotalPages:    models.TotalPagesFor(len(airports), pageSize),
		TotalElements: len(airports),
	}

	start := pageNumber * pageSize
	if pageNumber < 0 || start >= len(airports) {
		return page
	}
	end := min(start+pageSize, len(airports))
	page.Content = append(page.Content, airports[start:end]...)
	return page
}
