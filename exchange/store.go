package exchange

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Store persists backends and their rates.
type Store interface {
	// BaseCurrency returns the base currency of backend.
	BaseCurrency(ctx context.Context, backend string) (string, error)

	// Rates returns the rates of backend for the given currencies.
	// Currencies without a rate are omitted.
	Rates(ctx context.Context, backend string, currencies ...string) ([]Rate, error)

	// UpdateRates replaces the rates of backend.
	UpdateRates(
		ctx context.Context,
		backend string,
		baseCurrency string,
		rates map[string]decimal.Decimal,
	) error

	// ClearRates deletes the rates of backend,
	// or of every backend if backend is empty.
	ClearRates(ctx context.Context, backend string) error
}

// ensure MemoryStore implements the Store interface.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is a Store keeping rates in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	backends map[string]Backend
	rates    map[string]map[string]decimal.Decimal
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		backends: make(map[string]Backend),
		rates:    make(map[string]map[string]decimal.Decimal),
	}
}

// BaseCurrency implements the Store interface.
func (s *MemoryStore) BaseCurrency(_ context.Context, backend string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.backends[backend]
	if !ok {
		return "", fmt.Errorf("%w: \"%s\"", ErrBackendNotFound, backend)
	}

	return b.BaseCurrency, nil
}

// Rates implements the Store interface.
func (s *MemoryStore) Rates(
	_ context.Context,
	backend string,
	currencies ...string,
) ([]Rate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rates []Rate

	for _, c := range slices.Compact(slices.Sorted(slices.Values(currencies))) {
		v, ok := s.rates[backend][c]
		if !ok {
			continue
		}

		rates = append(rates, Rate{
			BackendName: backend,
			Currency:    c,
			Value:       v,
		})
	}

	return rates, nil
}

// UpdateRates implements the Store interface.
func (s *MemoryStore) UpdateRates(
	_ context.Context,
	backend string,
	baseCurrency string,
	rates map[string]decimal.Decimal,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backends[backend] = Backend{
		Name:         backend,
		BaseCurrency: baseCurrency,
		LastUpdate:   time.Now(),
	}

	stored := make(map[string]decimal.Decimal, len(rates))

	for c, v := range rates {
		stored[c] = v
	}

	s.rates[backend] = stored

	return nil
}

// ClearRates implements the Store interface.
func (s *MemoryStore) ClearRates(_ context.Context, backend string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if backend == "" {
		s.rates = make(map[string]map[string]decimal.Decimal)

		return nil
	}

	delete(s.rates, backend)

	return nil
}
