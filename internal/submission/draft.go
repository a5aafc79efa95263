package submission

import (
	"math"
	"strconv"
	"strings"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/timezone"
)

type Field string

const (
	FieldKey       Field = "key"
	FieldICAO      Field = "icao"
	FieldIATA      Field = "iata"
	FieldName      Field = "name"
	FieldCity      Field = "city"
	FieldState     Field = "state"
	FieldCountry   Field = "country"
	FieldElevation Field = "elevation"
	FieldLat       Field = "lat"
	FieldLon       Field = "lon"
	FieldTimezone  Field = "timezone"
)

// Fields lists the form fields in display order.
var Fields = []Field{
	FieldKey, FieldICAO, FieldIATA, FieldName, FieldCity, FieldState,
	FieldCountry, FieldElevation, FieldLat, FieldLon, FieldTimezone,
}

type Tab string

const (
	TabBasic   Tab = "basic"
	TabDetails Tab = "details"
)

// TabOf reports which form tab shows the field.
func TabOf(f Field) Tab {
	switch f {
	case FieldElevation, FieldLat, FieldLon, FieldTimezone:
		return TabDetails
	default:
		return TabBasic
	}
}

// Draft is the add-airport form as raw text. ICAO mirrors Key and is not edited directly.
type Draft struct {
	Key       string
	ICAO      string
	IATA      string
	Name      string
	City      string
	State     string
	Country   string
	Elevation string
	Lat       string
	Lon       string
	Timezone  string
}

func NewDraft() Draft {
	return Draft{
		Country:  "US",
		Timezone: timezone.Default,
	}
}

func (d Draft) Get(f Field) string {
	switch f {
	case FieldKey:
		return d.Key
	case FieldICAO:
		return d.ICAO
	case FieldIATA:
		return d.IATA
	case FieldName:
		return d.Name
	case FieldCity:
		return d.City
	case FieldState:
		return d.State
	case FieldCountry:
		return d.Country
	case FieldElevation:
		return d.Elevation
	case FieldLat:
		return d.Lat
	case FieldLon:
		return d.Lon
	case FieldTimezone:
		return d.Timezone
	}
	return ""
}

func (d *Draft) set(f Field, value string) error {
	switch f {
	case FieldKey:
		d.Key = value
		d.ICAO = value
	case FieldICAO:
		return models.ErrReadOnlyField
	case FieldIATA:
		d.IATA = value
	case FieldName:
		d.Name = value
	case FieldCity:
		d.City = value
	case FieldState:
		d.State = value
	case FieldCountry:
		d.Country = value
	case FieldElevation:
		d.Elevation = value
	case FieldLat:
		d.Lat = value
	case FieldLon:
		d.Lon = value
	case FieldTimezone:
		d.Timezone = value
	default:
		return models.ErrUnknownField
	}
	return nil
}

// Input coerces a validated draft into the create payload.
func (d Draft) Input() models.AirportInput {
	elevation, _ := parseNumber(d.Elevation)
	lat, _ := parseNumber(d.Lat)
	lon, _ := parseNumber(d.Lon)
	key := strings.TrimSpace(d.Key)
	return models.AirportInput{
		Key:       key,
		ICAO:      key,
		IATA:      strings.TrimSpace(d.IATA),
		Name:      strings.TrimSpace(d.Name),
		City:      strings.TrimSpace(d.City),
		State:     strings.TrimSpace(d.State),
		Country:   strings.TrimSpace(d.Country),
		Elevation: int(math.Round(elevation)),
		Lat:       lat,
		Lon:       lon,
		Timezone:  strings.TrimSpace(d.Timezone),
	}
}

// parseNumber accepts any finite decimal number surrounded by optional whitespace.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
