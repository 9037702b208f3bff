package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createSweetRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Category    string  `json:"category"    validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Quantity    *int    `json:"quantity"    validate:"omitempty,gte=0"`
	Description string  `json:"description" validate:"required,max=500"`
	Image       string  `json:"image"       validate:"omitempty,url"`
}

// updateSweetRequest uses pointers throughout so that an absent field can be
// told apart from a zero value: nil means "leave unchanged".
type updateSweetRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,max=100"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity"    validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Image       *string  `json:"image"       validate:"omitempty,url"`
}

type purchaseRequest struct {
	// Quantity defaults to 1 when absent.
	Quantity *int `json:"quantity"`
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// --- Response types ---
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal changes.

type sweetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type listSweetsResponse struct {
	Count int             `json:"count"`
	Data  []sweetResponse `json:"data"`
}

type searchCriteria struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
	MaxPrice string `json:"maxPrice,omitempty"`
}

type searchSweetsResponse struct {
	Count          int             `json:"count"`
	Data           []sweetResponse `json:"data"`
	SearchCriteria searchCriteria  `json:"searchCriteria"`
}

type purchaseResponse struct {
	Sweet             sweetResponse `json:"sweet"`
	PurchasedQuantity int           `json:"purchasedQuantity"`
	RemainingStock    int           `json:"remainingStock"`
}

type restockResponse struct {
	Sweet             sweetResponse `json:"sweet"`
	RestockedQuantity int           `json:"restockedQuantity"`
	PreviousStock     int           `json:"previousStock"`
	NewStock          int           `json:"newStock"`
}

type deleteSweetResponse struct {
	Message string `json:"message"`
}
