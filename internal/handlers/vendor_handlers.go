package handlers

import (
	"net/http"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	service        services.VendorService
	productService services.ProductService
}

func NewVendorHandler(service services.VendorService, productService services.ProductService) *VendorHandler {
	return &VendorHandler{service: service, productService: productService}
}

// CreateVendor creates a new vendor
// @Summary Create vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor body models.CreateVendorRequest true "Vendor"
// @Success 201 {object} models.VendorResponse
// @Router /vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req models.CreateVendorRequest
	if !bindJSON(c, &req) {
		return
	}

	vendor, err := h.service.CreateVendor(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": vendor})
}

// GetVendor retrieves a vendor
// @Summary Get vendor
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} models.VendorResponse
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	vendor, err := h.service.GetVendor(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": vendor})
}

// ListVendors retrieves active vendors
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Success 200 {object} models.VendorListResponse
// @Router /vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	vendors, err := h.service.ListVendors()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": vendors})
}

// ListArchivedVendors retrieves archived vendors
// @Summary List archived vendors
// @Tags vendors
// @Produce json
// @Success 200 {object} models.VendorListResponse
// @Router /vendors/archived [get]
func (h *VendorHandler) ListArchivedVendors(c *gin.Context) {
	vendors, err := h.service.ListArchivedVendors()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": vendors})
}

// GetVendorOptions retrieves the vendor selection list
// @Summary Vendor selection options
// @Tags vendors
// @Produce json
// @Param selected query string false "Selected vendor ID"
// @Success 200 {array} models.SelectOption
// @Router /vendors/options [get]
func (h *VendorHandler) GetVendorOptions(c *gin.Context) {
	options, err := h.service.VendorOptions(optionalUUIDQuery(c, "selected"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": options})
}

// ListVendorProducts retrieves a vendor's products
// @Summary List vendor products
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} models.ProductListResponse
// @Router /vendors/{id}/products [get]
func (h *VendorHandler) ListVendorProducts(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.GetVendor(id); err != nil {
		handleServiceError(c, err)
		return
	}

	products, err := h.productService.ListProductsByVendor(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// UpdateVendor applies a vendor edit, resolving concurrent-edit conflicts
// @Summary Update vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param vendor body models.UpdateVendorRequest true "Vendor"
// @Success 200 {object} models.VendorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateVendorRequest
	if !bindJSON(c, &req) {
		return
	}

	vendor, err := h.service.UpdateVendor(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": vendor})
}

// ArchiveVendor archives a vendor
// @Summary Archive vendor
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} models.VendorResponse
// @Router /vendors/{id} [delete]
func (h *VendorHandler) ArchiveVendor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.ArchiveVendor(id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
