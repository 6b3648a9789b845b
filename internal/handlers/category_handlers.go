package handlers

import (
	"net/http"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service         services.CategoryService
	defaultPageSize int
	maxPageSize     int
}

func NewCategoryHandler(service services.CategoryService, defaultPageSize, maxPageSize int) *CategoryHandler {
	return &CategoryHandler{service: service, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// CreateCategory creates a new category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.CategoryResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.service.CreateCategory(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

// GetCategory retrieves a category with its full ancestor path
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.CategoryResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	category, path, err := h.service.GetCategory(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"category": category,
			"fullPath": path,
		},
	})
}

// ListCategories retrieves categories with pagination
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} models.CategoryListResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, limit := pageParams(c, h.defaultPageSize, h.maxPageSize)

	categories, total, err := h.service.ListCategories(page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       categories,
		"pagination": paginationInfo(page, limit, total),
	})
}

// GetCategoryTree retrieves the nested category hierarchy
// @Summary Category tree
// @Tags categories
// @Produce json
// @Success 200 {object} models.CategoryTreeResponse
// @Router /categories/tree [get]
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	tree, err := h.service.GetTree()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tree})
}

// GetCategoryOptions retrieves the flat, depth-indented selection list
// @Summary Category selection options
// @Tags categories
// @Produce json
// @Param selected query string false "Selected category ID"
// @Success 200 {object} models.CategoryOptionsResponse
// @Router /categories/options [get]
func (h *CategoryHandler) GetCategoryOptions(c *gin.Context) {
	selected := optionalUUIDQuery(c, "selected")

	options, err := h.service.SelectableTree(selected)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": options})
}

// UpdateCategory renames and/or reparents a category
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.UpdateCategoryRequest true "Category"
// @Success 200 {object} models.CategoryResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.service.UpdateCategory(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// DeleteCategory removes a childless, unreferenced category
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.CategoryResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
