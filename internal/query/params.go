package query

import (
	"strings"

	"github.com/dharmasatrya/aerohub/internal/models"
)

// ViewParameters is the client's current page, sort and search intent.
// SortDirection is empty whenever SortField is models.SortNone.
type ViewParameters struct {
	PageIndex     int
	PageSize      int
	SortField     models.SortField
	SortDirection models.SortDirection
	SearchText    string
	State         string
}

func DefaultViewParameters() ViewParameters {
	return ViewParameters{PageSize: models.DefaultPageSize}
}

func (v ViewParameters) Sorted() bool {
	return v.SortField != models.SortNone
}

// Query derives the remote list query. Search text is trimmed here and only here.
func (v ViewParameters) Query() models.ListQuery {
	q := models.ListQuery{
		PageSize:   v.PageSize,
		PageNumber: v.PageIndex,
		Search:     strings.TrimSpace(v.SearchText),
		State:      strings.TrimSpace(v.State),
	}
	if v.Sorted() {
		q.SortField = v.SortField
		q.SortDirection = v.SortDirection
	}
	return q
}

// nextSort advances field through unsorted -> asc -> desc -> unsorted.
// Requesting a different field starts that field at asc.
func nextSort(v ViewParameters, field models.SortField) (models.SortField, models.SortDirection) {
	if v.SortField != field {
		return field, models.SortAsc
	}
	if v.SortDirection == models.SortAsc {
		return field, models.SortDesc
	}
	return models.SortNone, ""
}

func clampPage(n, totalPages int) int {
	if totalPages <= 0 || n < 0 {
		return 0
	}
	if n > totalPages-1 {
		return totalPages - 1
	}
	return n
}
