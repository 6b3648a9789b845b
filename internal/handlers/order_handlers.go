package handlers

import (
	"net/http"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service         services.OrderService
	documentService services.DocumentService
}

func NewOrderHandler(service services.OrderService, documentService services.DocumentService) *OrderHandler {
	return &OrderHandler{service: service, documentService: documentService}
}

// ListMyOrders retrieves the dealer's submitted orders
// @Summary List my orders
// @Tags orders
// @Produce json
// @Success 200 {object} models.OrderListResponse
// @Router /orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}

	orders, err := h.service.ListMyOrders(dealerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

// ListAllOrders retrieves every order for the back-office view
// @Summary List all orders
// @Tags orders
// @Produce json
// @Success 200 {object} models.OrderListResponse
// @Router /orders/all [get]
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.service.ListAllOrders()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

// GetOrder retrieves one of the dealer's orders
// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.OrderResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(dealerID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// UpsertShipping records shipping details on a submitted order
// @Summary Upsert shipping
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param shipping body models.UpsertShippingRequest true "Shipping"
// @Success 200 {object} models.OrderResponse
// @Router /orders/{id}/shipping [put]
func (h *OrderHandler) UpsertShipping(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpsertShippingRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.service.UpsertShipping(dealerID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// DownloadPurchaseOrder streams the purchase-order PDF
// @Summary Purchase order PDF
// @Tags orders
// @Produce application/pdf
// @Param id path string true "Order ID"
// @Success 200 {file} binary
// @Router /orders/{id}/document [get]
func (h *OrderHandler) DownloadPurchaseOrder(c *gin.Context) {
	dealerID, ok := getDealerID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.documentService.GeneratePurchaseOrder(dealerID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
