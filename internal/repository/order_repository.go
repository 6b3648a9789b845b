package repository

import (
	"errors"

	"backoffice-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetDraftByDealer returns the dealer's single draft order (the cart)
// with the full item graph, or nil when no cart exists yet.
func (r *OrderRepository) GetDraftByDealer(dealerID string) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items.Product").
		Preload("Items.Variant.Options").
		Where("dealer_id = ? AND status = ?", dealerID, models.OrderStatusDraft).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create creates an order
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order with items, product/variant snapshots and shipping
func (r *OrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items.Product").
		Preload("Items.Variant.Options").
		Preload("Shipping").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListSubmittedByDealer retrieves a dealer's non-draft orders, newest first
func (r *OrderRepository) ListSubmittedByDealer(dealerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Items.Product").
		Preload("Shipping").
		Where("dealer_id = ? AND status <> ?", dealerID, models.OrderStatusDraft).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListAll retrieves every order for the admin view, newest first
func (r *OrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Items.Product").
		Preload("Shipping").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetItem retrieves a single order item
func (r *OrderRepository) GetItem(itemID uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AddItem appends an item to an order
func (r *OrderRepository) AddItem(item *models.OrderItem) error {
	if err := r.db.Create(item).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKeyViolation
		}
		return err
	}
	return nil
}

// SaveItem persists item mutations
func (r *OrderRepository) SaveItem(item *models.OrderItem) error {
	return r.db.Save(item).Error
}

// RemoveItem deletes an order item
func (r *OrderRepository) RemoveItem(itemID uuid.UUID) error {
	result := r.db.Where("id = ?", itemID).Delete(&models.OrderItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderItemNotFound
	}
	return nil
}

// UpdateTotals writes recomputed order totals. Like every other order
// mutation it advances the row version.
func (r *OrderRepository) UpdateTotals(orderID uuid.UUID, taxAmount, totalAmount float64) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"tax_amount":   taxAmount,
			"total_amount": totalAmount,
			"row_version":  gorm.Expr("row_version + 1"),
		}).Error
}

// SubmitConditional performs the checkout transition as a single
// conditioned write: the draft becomes SUBMITTED with its purchase-order
// number and computed totals, keyed on the observed row version so two
// concurrent checkouts cannot both succeed.
func (r *OrderRepository) SubmitConditional(id uuid.UUID, observedVersion int64, poNumber string, taxAmount, totalAmount float64) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND row_version = ? AND status = ?", id, observedVersion, models.OrderStatusDraft).
		Updates(map[string]interface{}{
			"status":       models.OrderStatusSubmitted,
			"po_number":    poNumber,
			"tax_amount":   taxAmount,
			"total_amount": totalAmount,
			"row_version":  gorm.Expr("row_version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Order{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return ErrOrderNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

// UpsertShipping creates or updates the shipping record of an order
func (r *OrderRepository) UpsertShipping(orderID uuid.UUID, shipping *models.OrderShipping) error {
	var existing models.OrderShipping
	err := r.db.Where("order_id = ?", orderID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		shipping.OrderID = orderID
		if shipping.ID == uuid.Nil {
			shipping.ID = uuid.New()
		}
		return r.db.Create(shipping).Error
	}

	existing.Address = shipping.Address
	existing.Phone = shipping.Phone
	existing.Email = shipping.Email
	existing.TrackingNumber = shipping.TrackingNumber
	return r.db.Save(&existing).Error
}
