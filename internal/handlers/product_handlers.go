package handlers

import (
	"net/http"
	"strconv"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service         services.ProductService
	defaultPageSize int
	maxPageSize     int
}

func NewProductHandler(service services.ProductService, defaultPageSize, maxPageSize int) *ProductHandler {
	return &ProductHandler{service: service, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// CreateProduct creates a new product
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.ProductResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// GetProduct retrieves a product with its variant graph
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// ListProducts retrieves the active listing with search, filter and sort
// @Summary List products
// @Tags products
// @Produce json
// @Param search query string false "Name search"
// @Param categoryId query string false "Category filter"
// @Param vendorId query string false "Vendor filter"
// @Param sort query string false "Sort field"
// @Param desc query bool false "Sort descending"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} models.ProductListResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, limit := pageParams(c, h.defaultPageSize, h.maxPageSize)

	filters := models.ProductFilters{
		Search:     c.Query("search"),
		CategoryID: optionalUUIDQuery(c, "categoryId"),
		VendorID:   optionalUUIDQuery(c, "vendorId"),
		SortField:  c.Query("sort"),
		SortDesc:   c.Query("desc") == "true",
		Page:       page,
		Limit:      limit,
	}

	products, total, err := h.service.ListProducts(filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       products,
		"pagination": paginationInfo(page, limit, total),
	})
}

// ListArchivedProducts retrieves archived products
// @Summary List archived products
// @Tags products
// @Produce json
// @Success 200 {object} models.ProductListResponse
// @Router /products/archived [get]
func (h *ProductHandler) ListArchivedProducts(c *gin.Context) {
	products, err := h.service.ListArchivedProducts()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// GetProductOptions retrieves the product selection list
// @Summary Product selection options
// @Tags products
// @Produce json
// @Param selected query string false "Selected product ID"
// @Success 200 {array} models.SelectOption
// @Router /products/options [get]
func (h *ProductHandler) GetProductOptions(c *gin.Context) {
	options, err := h.service.ProductOptions(optionalUUIDQuery(c, "selected"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": options})
}

// UpdateProduct applies a product edit, resolving concurrent-edit conflicts
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Product"
// @Success 200 {object} models.ProductResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// ArchiveProduct soft-deletes a product
// @Summary Archive product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) ArchiveProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.ArchiveProduct(id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddVariant adds a variant with its option set to a product
// @Summary Add variant
// @Tags variants
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param variant body models.CreateVariantRequest true "Variant"
// @Success 201 {object} models.VariantResponse
// @Router /products/{id}/variants [post]
func (h *ProductHandler) AddVariant(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateVariantRequest
	if !bindJSON(c, &req) {
		return
	}

	variant, err := h.service.AddVariant(productID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": variant})
}

// ListVariants retrieves all variants of a product
// @Summary List variants
// @Tags variants
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.VariantListResponse
// @Router /products/{id}/variants [get]
func (h *ProductHandler) ListVariants(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	variants, err := h.service.ListVariants(productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": variants})
}

// GetVariant retrieves a variant
// @Summary Get variant
// @Tags variants
// @Produce json
// @Param id path string true "Variant ID"
// @Success 200 {object} models.VariantResponse
// @Router /variants/{id} [get]
func (h *ProductHandler) GetVariant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	variant, err := h.service.GetVariant(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": variant})
}

// UpdateVariant applies a variant edit, replacing its option set
// @Summary Update variant
// @Tags variants
// @Accept json
// @Produce json
// @Param id path string true "Variant ID"
// @Param variant body models.UpdateVariantRequest true "Variant"
// @Success 200 {object} models.VariantResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /variants/{id} [put]
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateVariantRequest
	if !bindJSON(c, &req) {
		return
	}

	variant, err := h.service.UpdateVariant(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": variant})
}

// DeleteVariant removes a variant, keyed on the observed row version
// @Summary Delete variant
// @Tags variants
// @Produce json
// @Param id path string true "Variant ID"
// @Param rowVersion query int true "Observed row version"
// @Success 200 {object} models.VariantResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /variants/{id} [delete]
func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	rowVersion, err := strconv.ParseInt(c.Query("rowVersion"), 10, 64)
	if err != nil || rowVersion < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "rowVersion query parameter is required",
				"field":   "rowVersion",
			},
		})
		return
	}

	if err := h.service.DeleteVariant(id, rowVersion); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
