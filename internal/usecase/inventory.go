package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeplug-audit/internal/domain"
)

// FallbackInventory asks the primary provider first and falls back to a
// secondary one, usually a local export, when the primary fails.
type FallbackInventory struct {
	primary  InventoryProvider
	fallback InventoryProvider
	logger   *slog.Logger
}

// NewFallbackInventory chains two providers. Either may be nil.
func NewFallbackInventory(primary, fallback InventoryProvider, logger *slog.Logger) *FallbackInventory {
	return &FallbackInventory{primary: primary, fallback: fallback, logger: logger}
}

// Assets implements InventoryProvider.
func (f *FallbackInventory) Assets(ctx context.Context) ([]domain.Asset, error) {
	if f.primary == nil && f.fallback == nil {
		return nil, errors.New("no inventory source configured")
	}

	var primaryErr error
	if f.primary != nil {
		assets, err := f.primary.Assets(ctx)
		if err == nil {
			return assets, nil
		}
		primaryErr = err
		if f.fallback == nil {
			return nil, fmt.Errorf("remote inventory: %w", err)
		}
		f.logger.Warn("remote inventory failed, using local fallback", "error", err)
	}

	assets, err := f.fallback.Assets(ctx)
	if err != nil {
		if primaryErr != nil {
			return nil, errors.Join(fmt.Errorf("remote inventory: %w", primaryErr), fmt.Errorf("local inventory: %w", err))
		}
		return nil, fmt.Errorf("local inventory: %w", err)
	}
	return assets, nil
}
