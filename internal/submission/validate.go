package submission

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dharmasatrya/aerohub/internal/timezone"
)

// FieldErrors maps a field to its inline message.
type FieldErrors map[Field]string

func (e FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ValidationFailure is returned by Submit when the draft fails validation.
// The draft never reaches the network in that case.
type ValidationFailure struct {
	Errors FieldErrors
}

func (v *ValidationFailure) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for f := range v.Errors {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	return "invalid airport: " + strings.Join(fields, ", ")
}

var statePattern = regexp.MustCompile(`^[A-Za-z ]+$`)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate runs every field check and returns all failures at once.
func Validate(d Draft) FieldErrors {
	errs := FieldErrors{}

	if blank(d.Key) {
		errs[FieldKey] = "Airport code is required"
	}
	if blank(d.Name) {
		errs[FieldName] = "Airport name is required"
	}
	if blank(d.City) {
		errs[FieldCity] = "City is required"
	}
	if blank(d.State) {
		errs[FieldState] = "State is required"
	} else if !statePattern.MatchString(strings.TrimSpace(d.State)) {
		errs[FieldState] = "State may only contain letters and spaces"
	}
	if blank(d.Country) {
		errs[FieldCountry] = "Country is required"
	}

	if blank(d.Elevation) {
		errs[FieldElevation] = "Elevation is required"
	} else if _, ok := parseNumber(d.Elevation); !ok {
		errs[FieldElevation] = "Elevation must be a number"
	}

	if blank(d.Lat) {
		errs[FieldLat] = "Latitude is required"
	} else if v, ok := parseNumber(d.Lat); !ok || v < -90 || v > 90 {
		errs[FieldLat] = "Latitude must be a number between -90 and 90"
	}

	if blank(d.Lon) {
		errs[FieldLon] = "Longitude is required"
	} else if v, ok := parseNumber(d.Lon); !ok || v < -180 || v > 180 {
		errs[FieldLon] = "Longitude must be a number between -180 and 180"
	}

	if blank(d.Timezone) {
		errs[FieldTimezone] = "Timezone is required"
	} else if !timezone.ValidName(strings.TrimSpace(d.Timezone)) {
		errs[FieldTimezone] = "Timezone may only contain letters, '/' and '_'"
	}

	return errs
}

// TabFor picks the tab holding the first failing field; basic fields come first.
func TabFor(errs FieldErrors) Tab {
	for _, f := range Fields {
		if _, ok := errs[f]; ok {
			return TabOf(f)
		}
	}
	return TabBasic
}
