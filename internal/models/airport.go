package models

import (
	"encoding/json"
	"strings"
)

// Airport is one catalog entry. Key is the unique identifying code and ICAO mirrors it.
type Airport struct {
	Key       string  `json:"key"`
	ICAO      string  `json:"icao"`
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Elevation int     `json:"elevation"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timezone  string  `json:"timezone"`
}

// Region derives the region label from country and state. It is never stored.
func (a Airport) Region() string {
	return RegionLabel(a.Country, a.State)
}

func RegionLabel(country, state string) string {
	switch {
	case country != "" && state != "":
		return country + "-" + state
	case country != "":
		return country
	default:
		return state
	}
}

// MarshalJSON adds the derived region label to the wire form.
func (a Airport) MarshalJSON() ([]byte, error) {
	type plain Airport
	return json.Marshal(struct {
		plain
		Region string `json:"region"`
	}{
		plain:  plain(a),
		Region: a.Region(),
	})
}

// AirportInput is the create payload: every Airport field except the region label.
type AirportInput struct {
	Key       string  `json:"key"`
	ICAO      string  `json:"icao"`
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Elevation int     `json:"elevation"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timezone  string  `json:"timezone"`
}

func (in AirportInput) Airport() Airport {
	return Airport{
		Key:       in.Key,
		ICAO:      in.ICAO,
		IATA:      in.IATA,
		Name:      in.Name,
		City:      in.City,
		State:     in.State,
		Country:   in.Country,
		Elevation: in.Elevation,
		Lat:       in.Lat,
		Lon:       in.Lon,
		Timezone:  in.Timezone,
	}
}

// Validate checks the payload on the server side. Normalization of ICAO happens here.
func (in *AirportInput) Validate() error {
	for _, f := range []*string{&in.Key, &in.IATA, &in.Name, &in.City, &in.State, &in.Country, &in.Timezone} {
		*f = strings.TrimSpace(*f)
	}
	if in.Key == "" {
		return ErrMissingKey
	}
	if in.Name == "" {
		return ErrMissingName
	}
	if in.Country == "" {
		return ErrMissingCountry
	}
	if in.Timezone == "" {
		return ErrMissingTimezone
	}
	if in.Lat < -90 || in.Lat > 90 {
		return ErrLatitudeRange
	}
	if in.Lon < -180 || in.Lon > 180 {
		return ErrLongitudeRange
	}
	in.ICAO = in.Key
	return nil
}
