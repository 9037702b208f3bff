package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// CreateSweetInput carries all data needed to create an inventory record.
type CreateSweetInput struct {
	Name        string
	Category    string
	Price       float64
	Quantity    int
	Description string
	Image       string
}

// UpdateSweetInput applies partial update semantics: nil pointers mean
// "leave the field unchanged".
type UpdateSweetInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Quantity    *int
	Description *string
	Image       *string
}

// PurchaseResult is returned after a successful purchase.
type PurchaseResult struct {
	Sweet          *domain.Sweet
	Purchased      int
	RemainingStock int
}

// RestockResult is returned after a successful restock.
type RestockResult struct {
	Sweet         *domain.Sweet
	Restocked     int
	PreviousStock int
	NewStock      int
}

// SweetService defines the inventory use cases.
type SweetService interface {
	List(ctx context.Context) ([]*domain.Sweet, error)
	Get(ctx context.Context, id string) (*domain.Sweet, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	Create(ctx context.Context, in CreateSweetInput) (*domain.Sweet, error)
	Update(ctx context.Context, id string, in UpdateSweetInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// Purchase decrements stock by quantity (>= 1). The stock check and
	// decrement are atomic at the repository.
	Purchase(ctx context.Context, id string, quantity int) (*PurchaseResult, error)
	// Restock increments stock by quantity (>= 1).
	Restock(ctx context.Context, id string, quantity int) (*RestockResult, error)
}
