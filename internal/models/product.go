package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryPolicy controls whether a variant may be sold past zero stock
type InventoryPolicy string

const (
	InventoryPolicyContinue InventoryPolicy = "CONTINUE" // oversell allowed
	InventoryPolicyDeny     InventoryPolicy = "DENY"     // blocked at zero stock
)

// VariantStatus represents the status of a product variant
type VariantStatus string

const (
	VariantStatusActive   VariantStatus = "ACTIVE"
	VariantStatusInactive VariantStatus = "INACTIVE"
)

// Product represents a catalog product. Products are never hard-deleted;
// archiving flips IsActive and removes them from the active listing.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	Handle      string    `json:"handle" gorm:"not null;uniqueIndex:idx_product_handle"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CategoryID  uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;index"`
	VendorID    uuid.UUID `json:"vendorId" gorm:"type:uuid;not null;index"`
	RowVersion  int64     `json:"rowVersion" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relationships
	Category *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Vendor   *Vendor          `json:"vendor,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:RESTRICT"`
	Variants []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductVariant represents a sellable variation of a product
type ProductVariant struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	ProductID       uuid.UUID       `json:"productId" gorm:"type:uuid;not null;index"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode"`
	UnitPrice       float64         `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	CompareAtPrice  *float64        `json:"compareAtPrice,omitempty" gorm:"type:decimal(10,2)"`
	Weight          *float64        `json:"weight,omitempty" gorm:"type:decimal(10,2)"`
	StockQuantity   int             `json:"stockQuantity" gorm:"not null;default:0"`
	InventoryPolicy InventoryPolicy `json:"inventoryPolicy" gorm:"type:varchar(20);not null;default:'DENY'"`
	Status          VariantStatus   `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	RowVersion      int64           `json:"rowVersion" gorm:"not null;default:1"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	// Relationships
	Product *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Options []VariantOption `json:"options" gorm:"foreignKey:ProductVariantID;constraint:OnDelete:CASCADE"`
}

// VariantOption is a name/value pair describing one axis of a variant
// (e.g. Size=Large). The collection is replaced wholesale on update.
type VariantOption struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ProductVariantID uuid.UUID `json:"productVariantId" gorm:"type:uuid;not null;index"`
	Name             string    `json:"name" gorm:"not null"`
	Value            string    `json:"value" gorm:"not null"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string    `json:"name" binding:"required"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	IsActive    *bool     `json:"isActive,omitempty"`
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	VendorID    uuid.UUID `json:"vendorId" binding:"required"`
}

// UpdateProductRequest carries a product edit together with the row
// version the client last observed.
type UpdateProductRequest struct {
	Name        string    `json:"name" binding:"required"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	IsActive    *bool     `json:"isActive,omitempty"`
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	VendorID    uuid.UUID `json:"vendorId" binding:"required"`
	RowVersion  int64     `json:"rowVersion" binding:"required"`
}

// VariantOptionInput is one option pair of a variant create/update request
type VariantOptionInput struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// CreateVariantRequest represents a request to add a variant to a product
type CreateVariantRequest struct {
	SKU             string               `json:"sku"`
	Barcode         string               `json:"barcode"`
	UnitPrice       float64              `json:"unitPrice" binding:"required"`
	CompareAtPrice  *float64             `json:"compareAtPrice,omitempty"`
	Weight          *float64             `json:"weight,omitempty"`
	StockQuantity   int                  `json:"stockQuantity"`
	InventoryPolicy InventoryPolicy      `json:"inventoryPolicy"`
	Status          VariantStatus        `json:"status"`
	Options         []VariantOptionInput `json:"options" binding:"required,min=1"`
}

// UpdateVariantRequest carries a variant edit. Options replace the
// persisted collection in full rather than being diffed.
type UpdateVariantRequest struct {
	SKU             string               `json:"sku"`
	Barcode         string               `json:"barcode"`
	UnitPrice       float64              `json:"unitPrice" binding:"required"`
	CompareAtPrice  *float64             `json:"compareAtPrice,omitempty"`
	Weight          *float64             `json:"weight,omitempty"`
	StockQuantity   int                  `json:"stockQuantity"`
	InventoryPolicy InventoryPolicy      `json:"inventoryPolicy"`
	Status          VariantStatus        `json:"status"`
	Options         []VariantOptionInput `json:"options" binding:"required,min=1"`
	RowVersion      int64                `json:"rowVersion" binding:"required"`
}

// ProductFilters represents filters for product list queries
type ProductFilters struct {
	Search     string
	CategoryID *uuid.UUID
	VendorID   *uuid.UUID
	SortField  string
	SortDesc   bool
	Page       int
	Limit      int
}

// ProductResponse represents a single product response
type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

// ProductListResponse represents a list of products response
type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// VariantResponse represents a single variant response
type VariantResponse struct {
	Success bool            `json:"success"`
	Data    *ProductVariant `json:"data"`
	Message *string         `json:"message,omitempty"`
}

// VariantListResponse represents a list of variants response
type VariantListResponse struct {
	Success bool             `json:"success"`
	Data    []ProductVariant `json:"data"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the ProductVariant model
func (ProductVariant) TableName() string {
	return "product_variants"
}

// TableName returns the table name for the VariantOption model
func (VariantOption) TableName() string {
	return "variant_options"
}
