package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondValidation writes a 400 carrying every field message so the
// client can re-render the form with all problems at once
func respondValidation(c *gin.Context, verr *services.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Validation failed",
			"fields":  verr.Fields,
		},
	})
}

// respondConflict writes a 409 conflict report. A concurrent delete and
// a concurrent edit are distinct codes: the first has nothing left to
// merge against, the second carries the per-field current values and
// the refreshed row version for a retry.
func respondConflict(c *gin.Context, cerr *services.VersionConflictError) {
	if cerr.Deleted {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RECORD_DELETED",
				"message": cerr.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusConflict, gin.H{
		"success": false,
		"error": gin.H{
			"code":          "VERSION_CONFLICT",
			"message":       cerr.Error(),
			"conflicts":     cerr.Conflicts,
			"newRowVersion": cerr.CurrentVersion,
		},
	})
}

// handleServiceError maps domain errors onto the HTTP error taxonomy
func handleServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		respondValidation(c, verr)
		return
	}

	var cerr *services.VersionConflictError
	if errors.As(err, &cerr) {
		respondConflict(c, cerr)
		return
	}

	switch {
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrVariantNotFound),
		errors.Is(err, repository.ErrVendorNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrOrderItemNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrCategoryHasChildren):
		respondError(c, http.StatusConflict, "CATEGORY_HAS_CHILDREN",
			"Cannot delete this category because it has subcategories")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		respondError(c, http.StatusConflict, "REFERENTIAL_INTEGRITY",
			"The record is referenced by other records and cannot be removed")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// parseUUIDParam parses a path parameter as a UUID, responding 400 on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid id",
				"field":   name,
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body, responding 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return false
	}
	return true
}

// pageParams reads the page/limit query parameters, falling back to the
// configured default and clamping the limit to the configured maximum
func pageParams(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// paginationInfo derives the pagination envelope from a page query
func paginationInfo(page, limit int, total int64) models.PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return models.PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// optionalUUIDQuery parses an optional uuid query parameter
func optionalUUIDQuery(c *gin.Context, name string) *uuid.UUID {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
