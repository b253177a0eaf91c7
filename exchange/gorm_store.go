package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ensure GormStore implements the Store interface.
var _ Store = (*GormStore)(nil)

// GormStore is a Store persisting backends and rates with gorm.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormStore returns a GormStore over db.
func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GormStore{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the backends and rates tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(&Backend{}, &Rate{})
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

// BaseCurrency implements the Store interface.
func (s *GormStore) BaseCurrency(ctx context.Context, backend string) (string, error) {
	var b Backend

	err := s.db.WithContext(ctx).
		Where("name = ?", backend).
		Take(&b).
		Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", fmt.Errorf("%w: \"%s\"", ErrBackendNotFound, backend)

	case err != nil:
		return "", fmt.Errorf("find backend: %w", err)
	}

	return b.BaseCurrency, nil
}

// Rates implements the Store interface.
func (s *GormStore) Rates(
	ctx context.Context,
	backend string,
	currencies ...string,
) ([]Rate, error) {
	var rates []Rate

	err := s.db.WithContext(ctx).
		Where("backend_name = ? AND currency IN ?", backend, currencies).
		Order("currency").
		Find(&rates).
		Error
	if err != nil {
		return nil, fmt.Errorf("find rates: %w", err)
	}

	return rates, nil
}

// UpdateRates implements the Store interface.
func (s *GormStore) UpdateRates(
	ctx context.Context,
	backend string,
	baseCurrency string,
	rates map[string]decimal.Decimal,
) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"base_currency", "last_update"}),
		}).Create(&Backend{
			Name:         backend,
			BaseCurrency: baseCurrency,
			LastUpdate:   time.Now().UTC(),
		}).Error
		if err != nil {
			return fmt.Errorf("upsert backend: %w", err)
		}

		err = tx.Where("backend_name = ?", backend).Delete(&Rate{}).Error
		if err != nil {
			return fmt.Errorf("delete rates: %w", err)
		}

		if len(rates) == 0 {
			return nil
		}

		rows := make([]Rate, 0, len(rates))

		for c, v := range rates {
			rows = append(rows, Rate{
				BackendName: backend,
				Currency:    c,
				Value:       v,
			})
		}

		err = tx.Create(&rows).Error
		if err != nil {
			return fmt.Errorf("create rates: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("update rates: %w", err)
	}

	s.logger.Info(
		"exchange rates updated",
		zap.String("backend", backend),
		zap.String("base_currency", baseCurrency),
		zap.Int("rates", len(rates)),
	)

	return nil
}

// ClearRates implements the Store interface.
func (s *GormStore) ClearRates(ctx context.Context, backend string) error {
	tx := s.db.WithContext(ctx)

	if backend == "" {
		tx = tx.Where("1 = 1")
	} else {
		tx = tx.Where("backend_name = ?", backend)
	}

	res := tx.Delete(&Rate{})
	if res.Error != nil {
		return fmt.Errorf("delete rates: %w", res.Error)
	}

	s.logger.Info(
		"exchange rates cleared",
		zap.String("backend", backend),
		zap.Int64("rates", res.RowsAffected),
	)

	return nil
}
