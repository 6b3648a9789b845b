package handlers

import (
	"net/http"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service services.OrderService
}

func NewCartHandler(service services.OrderService) *CartHandler {
	return &CartHandler{service: service}
}

// getDealerID extracts the dealer identity from context - fails if not present.
// All cart operations are scoped to the authenticated dealer.
func getDealerID(c *gin.Context) (string, bool) {
	dealerID := c.GetString("dealer_id")
	if dealerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DEALER_REQUIRED",
				"message": "Dealer context is required for this operation",
			},
		})
		return "", false
	}
	return dealerID, true
}

// GetCart retrieves the dealer's draft order, creating it on first touch
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} models.OrderResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(dealerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// AddToCart adds a variant line to the cart
// @Summary Add to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body models.AddToCartRequest true "Item"
// @Success 200 {object} models.OrderResponse
// @Router /cart/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.service.AddToCart(dealerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// UpdateCartItem sets a cart line quantity; zero or less removes the line
// @Summary Update cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.OrderResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.service.UpdateCartItem(dealerID, itemID, req.Quantity)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// RemoveCartItem deletes a cart line
// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.OrderResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := h.service.RemoveCartItem(dealerID, itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// Checkout submits the draft cart, computing tax and assigning a PO number
// @Summary Checkout
// @Tags cart
// @Accept json
// @Produce json
// @Param checkout body models.CheckoutRequest true "Observed row version"
// @Success 200 {object} models.OrderResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.service.Checkout(dealerID, req.RowVersion)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}
