package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// SearchFilter carries the query parameters for searching sweets.
// Zero-value fields are no-ops; filters combine conjunctively.
type SearchFilter struct {
	Name     string   // case-insensitive substring match on name or description
	Category string   // exact match against the closed category set
	MaxPrice *float64 // inclusive upper bound on price
}

// SweetRepository defines persistence operations for inventory records.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// FindByName performs a case-insensitive exact-name lookup.
	// When excludeID is non-empty, that record is ignored (rename checks).
	FindByName(ctx context.Context, name, excludeID string) (*domain.Sweet, error)
	// List returns all sweets sorted by most recently created first.
	List(ctx context.Context) ([]*domain.Sweet, error)
	// Search returns sweets matching filter, newest first.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// AdjustQuantity atomically applies delta to the record's quantity and
	// returns the updated record. A negative delta only succeeds when the
	// current quantity covers it; otherwise an InsufficientStockError
	// reporting the exact available count is returned. The check and the
	// write are a single conditional update, so concurrent purchases can
	// never drive quantity negative.
	AdjustQuantity(ctx context.Context, id string, delta int) (*domain.Sweet, error)
}
