package domain

import "time"

// Categories is the fixed closed set of sweet categories.
var Categories = []string{
	"Bengali Sweets",
	"Dry Fruit Sweets",
	"Milk Sweets",
	"Pure Ghee Sweets",
	"Sugarless Sweets",
	"Chocolates",
}

// ValidCategory reports whether category belongs to the closed set.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Sweet is the core inventory record.
type Sweet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InStock reports whether any units are available for purchase.
// Derived from quantity; never persisted.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}
