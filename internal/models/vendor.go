package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a supplier of catalog products. Vendors are
// archived rather than deleted to preserve referential history.
type Vendor struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	ContactName string    `json:"contactName"`
	Phone       string    `json:"phone" gorm:"type:varchar(10)"`
	Email       string    `json:"email"`
	EIN         string    `json:"ein" gorm:"type:varchar(50)"`
	IsTaxExempt bool      `json:"isTaxExempt" gorm:"default:false"`
	IsArchived  bool      `json:"isArchived" gorm:"default:false"`
	RowVersion  int64     `json:"rowVersion" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:VendorID"`
}

// CreateVendorRequest represents a request to create a new vendor
type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	EIN         string `json:"ein"`
	IsTaxExempt bool   `json:"isTaxExempt"`
}

// UpdateVendorRequest carries a vendor edit together with the row
// version the client last observed.
type UpdateVendorRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	EIN         string `json:"ein"`
	IsTaxExempt bool   `json:"isTaxExempt"`
	RowVersion  int64  `json:"rowVersion" binding:"required"`
}

// VendorResponse represents a single vendor response
type VendorResponse struct {
	Success bool    `json:"success"`
	Data    *Vendor `json:"data"`
	Message *string `json:"message,omitempty"`
}

// VendorListResponse represents a list of vendors response
type VendorListResponse struct {
	Success bool     `json:"success"`
	Data    []Vendor `json:"data"`
}

// TableName returns the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
