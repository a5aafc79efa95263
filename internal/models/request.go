package models

import (
	"net/url"
	"strconv"
	"strings"
)

type SortField string

const (
	SortNone      SortField = ""
	SortKey       SortField = "key"
	SortICAO      SortField = "icao"
	SortIATA      SortField = "iata"
	SortName      SortField = "name"
	SortCity      SortField = "city"
	SortState     SortField = "state"
	SortCountry   SortField = "country"
	SortElevation SortField = "elevation"
	SortLat       SortField = "lat"
	SortLon       SortField = "lon"
	SortTimezone  SortField = "timezone"
)

var SortFields = []SortField{
	SortKey, SortICAO, SortIATA, SortName, SortCity, SortState,
	SortCountry, SortElevation, SortLat, SortLon, SortTimezone,
}

func ParseSortField(s string) (SortField, error) {
	for _, f := range SortFields {
		if string(f) == s {
			return f, nil
		}
	}
	return SortNone, ErrUnknownSortField
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var AllowedPageSizes = []int{10, 20, 50}

const DefaultPageSize = 10

func IsAllowedPageSize(n int) bool {
	for _, size := range AllowedPageSizes {
		if size == n {
			return true
		}
	}
	return false
}

// ListQuery is the remote list query derived from the current view parameters.
type ListQuery struct {
	PageSize      int           `query:"pageSize"`
	PageNumber    int           `query:"pageNumber"`
	SortField     SortField     `query:"sortField"`
	SortDirection SortDirection `query:"sortDirection"`
	Search        string        `query:"search"`
	State         string        `query:"state"`
}

// Values encodes the query. Unset sort, blank search and blank state are omitted.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	v.Set("pageNumber", strconv.Itoa(q.PageNumber))
	if q.SortField != SortNone {
		v.Set("sortField", string(q.SortField))
		if q.SortDirection != "" {
			v.Set("sortDirection", string(q.SortDirection))
		}
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if s := strings.TrimSpace(q.State); s != "" {
		v.Set("state", s)
	}
	return v
}

// Validate normalizes a query received by the server.
func (q *ListQuery) Validate() error {
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if !IsAllowedPageSize(q.PageSize) {
		return ErrInvalidPageSize
	}
	if q.PageNumber < 0 {
		return ErrInvalidPageNumber
	}
	if q.SortField != SortNone {
		if _, err := ParseSortField(string(q.SortField)); err != nil {
			return err
		}
		if q.SortDirection == "" {
			q.SortDirection = SortAsc
		}
	}
	if q.SortDirection != "" && q.SortDirection != SortAsc && q.SortDirection != SortDesc {
		return ErrInvalidSortDirection
	}
	q.Search = strings.TrimSpace(q.Search)
	q.State = strings.TrimSpace(q.State)
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrInvalidPageSize      ValidationError = "pageSize must be one of 10, 20, 50"
	ErrInvalidPageNumber    ValidationError = "pageNumber must not be negative"
	ErrUnknownSortField     ValidationError = "unknown sort field"
	ErrInvalidSortDirection ValidationError = "sortDirection must be asc or desc"
	ErrMissingKey           ValidationError = "key is required"
	ErrMissingName          ValidationError = "name is required"
	ErrMissingCountry       ValidationError = "country is required"
	ErrMissingTimezone      ValidationError = "timezone is required"
	ErrLatitudeRange        ValidationError = "lat must be between -90 and 90"
	ErrLongitudeRange       ValidationError = "lon must be between -180 and 180"
	ErrUnknownField         ValidationError = "unknown form field"
	ErrReadOnlyField        ValidationError = "field is derived and cannot be edited"
	ErrFormClosed           ValidationError = "add-airport form is not open"
	ErrSubmitInProgress     ValidationError = "a submission is already in progress"
)
