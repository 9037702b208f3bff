package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-system/internal/api/metrics"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// SweetHandler handles HTTP requests for inventory operations.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// List handles GET /api/sweets.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listSweetsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	data := toSweetResponses(sweets)
	return c.JSON(http.StatusOK, listSweetsResponse{Count: len(data), Data: data})
}

// Search handles GET /api/sweets/search?name=&category=&maxPrice=.
//
// @Summary      Search sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "Substring match on name or description"
// @Param        category  query     string  false  "Exact category match"
// @Param        maxPrice  query     number  false  "Inclusive price upper bound"
// @Success      200       {object}  searchSweetsResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	filter := ports.SearchFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}

	rawMaxPrice := c.QueryParam("maxPrice")
	if rawMaxPrice != "" {
		maxPrice, err := strconv.ParseFloat(rawMaxPrice, 64)
		if err != nil {
			return domain.NewValidationError("maxPrice must be a valid number")
		}
		filter.MaxPrice = &maxPrice
	}

	sweets, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	data := toSweetResponses(sweets)
	return c.JSON(http.StatusOK, searchSweetsResponse{
		Count: len(data),
		Data:  data,
		SearchCriteria: searchCriteria{
			Name:     filter.Name,
			Category: filter.Category,
			MaxPrice: rawMaxPrice,
		},
	})
}

// Get handles GET /api/sweets/:id.
//
// @Summary      Get a sweet by id
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet id"
// @Success      200  {object}  sweetResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id} [get]
func (h *SweetHandler) Get(c echo.Context) error {
	sweet, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Create handles POST /api/sweets (admin only).
//
// @Summary      Create a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet details"
// @Success      201   {object}  sweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(sweet.Category).Inc()
	return c.JSON(http.StatusCreated, toSweetResponse(sweet))
}

// Update handles PUT /api/sweets/:id (admin only). Absent body fields are
// left unchanged.
//
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to change"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Delete handles DELETE /api/sweets/:id (admin only).
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet id"
// @Success      200  {object}  deleteSweetResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteSweetResponse{Message: "Sweet deleted successfully"})
}

// Purchase handles POST /api/sweets/:id/purchase.
//
// @Summary      Purchase units of a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true   "Sweet id"
// @Param        body  body      purchaseRequest  false  "Quantity to purchase (default 1)"
// @Success      200   {object}  purchaseResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	result, err := h.service.Purchase(c.Request().Context(), c.Param("id"), quantity)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues(purchaseResult(err)).Inc()
		return err
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	metrics.PurchaseUnits.Observe(float64(result.Purchased))

	return c.JSON(http.StatusOK, purchaseResponse{
		Sweet:             toSweetResponse(result.Sweet),
		PurchasedQuantity: result.Purchased,
		RemainingStock:    result.RemainingStock,
	})
}

// Restock handles POST /api/sweets/:id/restock (admin only).
//
// @Summary      Restock units of a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Sweet id"
// @Param        body  body      restockRequest  true  "Quantity to add"
// @Success      200   {object}  restockResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	var req restockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Restock(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}

	metrics.RestocksTotal.Inc()

	return c.JSON(http.StatusOK, restockResponse{
		Sweet:             toSweetResponse(result.Sweet),
		RestockedQuantity: result.Restocked,
		PreviousStock:     result.PreviousStock,
		NewStock:          result.NewStock,
	})
}

func purchaseResult(err error) string {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return "insufficient_stock"
	}
	return "error"
}
