package usecase

import (
	"context"

	"codeplug-audit/internal/document"
	"codeplug-audit/internal/domain"
)

// DocumentRepository discovers and loads codeplug documents.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type DocumentRepository interface {
	// Discover returns the paths of the documents under dir, sorted by name.
	Discover(ctx context.Context, dir string) ([]string, error)
	// Load parses the document at path. Malformed input wraps document.ErrMalformed.
	Load(ctx context.Context, path string) (*document.Document, error)
}

// InventoryProvider returns the asset records used to enrich the report.
type InventoryProvider interface {
	Assets(ctx context.Context) ([]domain.Asset, error)
}
