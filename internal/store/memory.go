package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dharmasatrya/aerohub/internal/filter"
	"github.com/dharmasatrya/aerohub/internal/models"
)

type Memory struct {
	mu       sync.RWMutex
	airports []models.Airport
	keys     map[string]struct{}
}

func NewMemory(seed []models.Airport) *Memory {
	m := &Memory{
		airports: make([]models.Airport, 0, len(seed)),
		keys:     make(map[string]struct{}, len(seed)),
	}
	for _, a := range seed {
		if _, dup := m.keys[a.Key]; dup {
			continue
		}
		m.keys[a.Key] = struct{}{}
		m.airports = append(m.airports, a)
	}
	return m
}

func NewSeededMemory() (*Memory, error) {
	seed, err := SeedAirports()
	if err != nil {
		return nil, fmt.Errorf("decode seed airports: %w", err)
	}
	return NewMemory(seed), nil
}

func (m *Memory) List(_ context.Context, q models.ListQuery) (models.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filter.Apply(m.airports, q), nil
}

func (m *Memory) Create(_ context.Context, in models.AirportInput) (models.Airport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.keys[in.Key]; dup {
		return models.Airport{}, ErrDuplicateKey
	}
	a := in.Airport()
	m.keys[a.Key] = struct{}{}
	m.airports = append(m.airports, a)
	return a, nil
}

func (m *Memory) Close() error {
	return nil
}
