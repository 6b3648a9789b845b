package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle status of an order.
// A DRAFT order is the dealer's mutable cart; SUBMITTED is reached
// through checkout and is terminal here.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusSubmitted OrderStatus = "SUBMITTED"
)

// ValidOrderTransitions defines valid state transitions for OrderStatus
var ValidOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:     {OrderStatusSubmitted},
	OrderStatusSubmitted: {}, // Terminal state
}

// CanTransitionOrderStatus checks if a transition from one order status to another is valid
func CanTransitionOrderStatus(from, to OrderStatus) bool {
	validTransitions, exists := ValidOrderTransitions[from]
	if !exists {
		return false
	}
	for _, validTo := range validTransitions {
		if validTo == to {
			return true
		}
	}
	return false
}

// ValidateOrderStatusTransition returns an error if the transition is invalid
func ValidateOrderStatusTransition(from, to OrderStatus) error {
	if !CanTransitionOrderStatus(from, to) {
		return fmt.Errorf("invalid order status transition from %s to %s", from, to)
	}
	return nil
}

// Order represents a dealer purchase order. At most one DRAFT order
// exists per dealer and acts as that dealer's cart; a partial unique
// index backs that invariant in storage. TaxAmount and TotalAmount are
// derived from the items and recomputed on every mutation, never
// edited directly.
type Order struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	PONumber    string      `json:"poNumber" gorm:"type:varchar(50);index"`
	DealerID    string      `json:"dealerId" gorm:"type:varchar(255);not null;index:idx_orders_dealer_status;uniqueIndex:idx_orders_one_draft,where:status = 'DRAFT'"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_orders_dealer_status"`
	TaxAmount   float64     `json:"taxAmount" gorm:"type:decimal(10,2);default:0"`
	TotalAmount float64     `json:"totalAmount" gorm:"type:decimal(10,2);default:0"`
	RowVersion  int64       `json:"rowVersion" gorm:"not null;default:1"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	// Relationships
	Items    []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipping *OrderShipping `json:"shipping,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem represents a line of an order. UnitPrice is snapshotted
// from the variant at add-time; later price changes do not touch it.
type OrderItem struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID  `json:"orderId" gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID  `json:"productId" gorm:"type:uuid;not null"`
	VariantID  *uuid.UUID `json:"variantId,omitempty" gorm:"type:uuid"`
	Quantity   int        `json:"quantity" gorm:"not null"`
	UnitPrice  float64    `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	TotalPrice float64    `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Relationships
	Product *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Variant *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}

// OrderShipping represents shipping information for a submitted order
type OrderShipping struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OrderID        uuid.UUID `json:"orderId" gorm:"type:uuid;not null;unique"`
	Address        string    `json:"address" gorm:"not null"`
	Phone          string    `json:"phone" gorm:"not null"`
	Email          string    `json:"email" gorm:"not null"`
	TrackingNumber *string   `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AddToCartRequest represents a request to add a variant to the cart
type AddToCartRequest struct {
	ProductID uuid.UUID  `json:"productId" binding:"required"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	Quantity  int        `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest sets a cart line quantity; zero or less removes the line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest submits the draft cart, keyed on the row version the
// client last observed so two concurrent checkouts cannot both succeed
type CheckoutRequest struct {
	RowVersion int64 `json:"rowVersion" binding:"required"`
}

// UpsertShippingRequest represents shipping info for a submitted order
type UpsertShippingRequest struct {
	Address        string  `json:"address" binding:"required"`
	Phone          string  `json:"phone" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	TrackingNumber *string `json:"trackingNumber,omitempty"`
}

// OrderResponse represents a single order response
type OrderResponse struct {
	Success bool    `json:"success"`
	Data    *Order  `json:"data"`
	Message *string `json:"message,omitempty"`
}

// OrderListResponse represents a list of orders response
type OrderListResponse struct {
	Success bool    `json:"success"`
	Data    []Order `json:"data"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// TableName returns the table name for the OrderShipping model
func (OrderShipping) TableName() string {
	return "order_shipping"
}
