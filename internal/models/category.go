package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCategoryDepth bounds every ancestor walk. The tree has no fixed
// level limit, but a corrupt parent chain must never loop forever.
const MaxCategoryDepth = 64

// Category represents a product category. The hierarchy is a
// self-reference through ParentID; children are resolved by lookup and
// deleting a parent never cascades to them.
type Category struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Name      string     `json:"name" gorm:"not null"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" gorm:"index"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Relationships
	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name     *string    `json:"name,omitempty"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

// CategoryResponse represents a single category response
type CategoryResponse struct {
	Success  bool      `json:"success"`
	Data     *Category `json:"data"`
	FullPath string    `json:"fullPath,omitempty"`
	Message  *string   `json:"message,omitempty"`
}

// CategoryListResponse represents a list of categories response
type CategoryListResponse struct {
	Success    bool            `json:"success"`
	Data       []Category      `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// CategoryTreeResponse represents hierarchical category tree response
type CategoryTreeResponse struct {
	Success bool       `json:"success"`
	Data    []Category `json:"data"`
}

// CategoryOptionsResponse carries the indented selection list used to
// populate hierarchical dropdowns without a recursive UI component.
type CategoryOptionsResponse struct {
	Success bool           `json:"success"`
	Data    []SelectOption `json:"data"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
