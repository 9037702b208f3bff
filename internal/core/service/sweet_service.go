package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// SweetService implements the inventory use cases: CRUD, search, and the
// purchase/restock stock state machine.
type SweetService struct {
	repo ports.SweetRepository
	log  zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, log zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, log: log}
}

func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.repo.List(ctx)
}

func (s *SweetService) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SweetService) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	if filter.Category != "" && !domain.ValidCategory(filter.Category) {
		return nil, domain.NewValidationError(categoryMessage())
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, domain.NewValidationError("maxPrice must be a non-negative number")
	}
	return s.repo.Search(ctx, filter)
}

// Create validates and persists a new sweet. Names are unique
// case-insensitively across the collection.
func (s *SweetService) Create(ctx context.Context, in ports.CreateSweetInput) (*domain.Sweet, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if err := validateSweetFields(in.Name, in.Category, in.Price, in.Quantity, in.Description, in.Image); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, in.Name, ""); err == nil {
		return nil, domain.ErrSweetExists
	} else if !errors.Is(err, domain.ErrSweetNotFound) {
		return nil, fmt.Errorf("create sweet: check name: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Sweet{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("sweet_id", created.ID).Str("name", created.Name).Str("category", created.Category).Msg("sweet created")
	return created, nil
}

// Update applies partial update semantics: only non-nil fields change.
// A renamed sweet is re-checked for name collisions, excluding itself.
func (s *SweetService) Update(ctx context.Context, id string, in ports.UpdateSweetInput) (*domain.Sweet, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if !strings.EqualFold(name, sweet.Name) {
			if _, err := s.repo.FindByName(ctx, name, sweet.ID); err == nil {
				return nil, domain.ErrSweetExists
			} else if !errors.Is(err, domain.ErrSweetNotFound) {
				return nil, fmt.Errorf("update sweet: check name: %w", err)
			}
		}
		sweet.Name = name
	}
	if in.Category != nil {
		sweet.Category = *in.Category
	}
	if in.Price != nil {
		sweet.Price = *in.Price
	}
	if in.Quantity != nil {
		sweet.Quantity = *in.Quantity
	}
	if in.Description != nil {
		sweet.Description = strings.TrimSpace(*in.Description)
	}
	if in.Image != nil {
		sweet.Image = *in.Image
	}

	if err := validateSweetFields(sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, sweet.Description, sweet.Image); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, sweet)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("sweet_id", updated.ID).Msg("sweet updated")
	return updated, nil
}

func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}

// Purchase atomically decrements stock by quantity. The stock check and the
// decrement are one conditional update at the repository, so two concurrent
// purchases of the last unit cannot both succeed.
func (s *SweetService) Purchase(ctx context.Context, id string, quantity int) (*ports.PurchaseResult, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("Purchase quantity must be positive")
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, -quantity)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("sweet_id", sweet.ID).Int("quantity", quantity).Int("remaining", sweet.Quantity).Msg("sweet purchased")

	return &ports.PurchaseResult{
		Sweet:          sweet,
		Purchased:      quantity,
		RemainingStock: sweet.Quantity,
	}, nil
}

// Restock atomically increments stock by quantity.
func (s *SweetService) Restock(ctx context.Context, id string, quantity int) (*ports.RestockResult, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("Restock quantity must be positive")
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("sweet_id", sweet.ID).Int("quantity", quantity).Int("new_stock", sweet.Quantity).Msg("sweet restocked")

	return &ports.RestockResult{
		Sweet:         sweet,
		Restocked:     quantity,
		PreviousStock: sweet.Quantity - quantity,
		NewStock:      sweet.Quantity,
	}, nil
}

func validateSweetFields(name, category string, price float64, quantity int, description, image string) error {
	var violations []string

	if name == "" {
		violations = append(violations, "Sweet name is required")
	} else if len(name) > domain.MaxNameLength {
		violations = append(violations, "Sweet name cannot exceed 100 characters")
	}

	if !domain.ValidCategory(category) {
		violations = append(violations, categoryMessage())
	}

	if price < 0 {
		violations = append(violations, "Price cannot be negative")
	}
	if quantity < 0 {
		violations = append(violations, "Quantity must be a non-negative integer")
	}

	if description == "" {
		violations = append(violations, "Description is required")
	} else if len(description) > domain.MaxDescriptionLength {
		violations = append(violations, "Description cannot exceed 500 characters")
	}

	if image != "" {
		if u, err := url.Parse(image); err != nil || u.Scheme == "" || u.Host == "" {
			violations = append(violations, "Image must be a valid URL")
		}
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func categoryMessage() string {
	return "Category must be one of: " + strings.Join(domain.Categories, ", ")
}
