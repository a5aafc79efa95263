// Package store persists the airport catalog behind the reference server.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/store/data"
)

var ErrDuplicateKey = errors.New("airport key already exists")

type Store interface {
	List(ctx context.Context, q models.ListQuery) (models.Page, error)
	Create(ctx context.Context, in models.AirportInput) (models.Airport, error)
	Close() error
}

// SeedAirports decodes the embedded sample catalog.
func SeedAirports() ([]models.Airport, error) {
	var airports []models.Airport
	if err := json.Unmarshal(data.Airports, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}
