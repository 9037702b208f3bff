package handler

import (
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createSweetRequest) ports.CreateSweetInput {
	in := ports.CreateSweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	return in
}

func toUpdateInput(req updateSweetRequest) ports.UpdateSweetInput {
	return ports.UpdateSweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		Image:       req.Image,
	}
}

// --- Domain → Response ---

func toSweetResponse(s *domain.Sweet) sweetResponse {
	return sweetResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		Image:       s.Image,
		InStock:     s.InStock(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toSweetResponses(sweets []*domain.Sweet) []sweetResponse {
	out := make([]sweetResponse, 0, len(sweets))
	for _, s := range sweets {
		out = append(out, toSweetResponse(s))
	}
	return out
}
