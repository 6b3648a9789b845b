package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"backoffice-service/internal/events"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
)

// TaxRate is the flat rate applied to the cart subtotal at checkout
const TaxRate = 0.13

// OrderService handles the dealer cart and the order lifecycle. A
// dealer's cart IS their single DRAFT order; checkout transitions that
// same order to SUBMITTED, it never creates a second record.
type OrderService interface {
	GetCart(dealerID string) (*models.Order, error)
	AddToCart(dealerID string, req *models.AddToCartRequest) (*models.Order, error)
	UpdateCartItem(dealerID string, itemID uuid.UUID, quantity int) (*models.Order, error)
	RemoveCartItem(dealerID string, itemID uuid.UUID) (*models.Order, error)
	Checkout(dealerID string, observedVersion int64) (*models.Order, error)

	GetOrder(dealerID string, id uuid.UUID) (*models.Order, error)
	ListMyOrders(dealerID string) ([]models.Order, error)
	ListAllOrders() ([]models.Order, error)
	UpsertShipping(dealerID string, orderID uuid.UUID, req *models.UpsertShippingRequest) (*models.Order, error)
}

type orderService struct {
	repo            *repository.OrderRepository
	productRepo     *repository.ProductRepository
	eventsPublisher *events.Publisher
}

// NewOrderService creates a new order service
func NewOrderService(repo *repository.OrderRepository, productRepo *repository.ProductRepository, eventsPublisher *events.Publisher) OrderService {
	return &orderService{repo: repo, productRepo: productRepo, eventsPublisher: eventsPublisher}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetCart returns the dealer's draft order, creating an empty one on
// first touch so the client always has a cart to render.
func (s *orderService) GetCart(dealerID string) (*models.Order, error) {
	cart, err := s.repo.GetDraftByDealer(dealerID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Order{
		ID:         uuid.New(),
		DealerID:   dealerID,
		Status:     models.OrderStatusDraft,
		RowVersion: 1,
	}
	if err := s.repo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddToCart adds a variant line to the dealer's cart. Adding a variant
// already in the cart increments that line instead of duplicating it.
// Variants with a DENY inventory policy refuse quantities the stock on
// hand cannot cover, counting what the cart already holds.
func (s *orderService) AddToCart(dealerID string, req *models.AddToCartRequest) (*models.Order, error) {
	if req.Quantity < 1 {
		return nil, validationError("quantity", "Quantity must be at least 1")
	}
	if req.VariantID == nil {
		return nil, validationError("variantId", "A variant must be selected")
	}

	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, validationError("productId", "This product is no longer available")
	}

	variant, err := s.productRepo.GetVariantByID(*req.VariantID)
	if err != nil {
		return nil, err
	}
	if variant.ProductID != product.ID {
		return nil, validationError("variantId", "Variant does not belong to this product")
	}
	if variant.Status != models.VariantStatusActive {
		return nil, validationError("variantId", "This variant is no longer available")
	}

	cart, err := s.GetCart(dealerID)
	if err != nil {
		return nil, err
	}

	var existing *models.OrderItem
	inCart := 0
	for i := range cart.Items {
		if cart.Items[i].VariantID != nil && *cart.Items[i].VariantID == variant.ID {
			existing = &cart.Items[i]
			inCart = cart.Items[i].Quantity
		}
	}

	if variant.InventoryPolicy == models.InventoryPolicyDeny && inCart+req.Quantity > variant.StockQuantity {
		return nil, validationError("quantity", fmt.Sprintf("Only %d in stock", variant.StockQuantity))
	}

	if existing != nil {
		existing.Quantity += req.Quantity
		existing.TotalPrice = roundMoney(float64(existing.Quantity) * existing.UnitPrice)
		if err := s.repo.SaveItem(existing); err != nil {
			return nil, err
		}
	} else {
		item := &models.OrderItem{
			ID:         uuid.New(),
			OrderID:    cart.ID,
			ProductID:  product.ID,
			VariantID:  &variant.ID,
			Quantity:   req.Quantity,
			UnitPrice:  variant.UnitPrice,
			TotalPrice: roundMoney(float64(req.Quantity) * variant.UnitPrice),
		}
		if err := s.repo.AddItem(item); err != nil {
			return nil, err
		}
	}

	return s.recomputeCart(dealerID)
}

// UpdateCartItem sets a cart line quantity. A quantity of zero or less
// removes the line.
func (s *orderService) UpdateCartItem(dealerID string, itemID uuid.UUID, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return s.RemoveCartItem(dealerID, itemID)
	}

	item, err := s.cartItem(dealerID, itemID)
	if err != nil {
		return nil, err
	}

	if item.VariantID != nil {
		variant, err := s.productRepo.GetVariantByID(*item.VariantID)
		if err == nil && variant.InventoryPolicy == models.InventoryPolicyDeny && quantity > variant.StockQuantity {
			return nil, validationError("quantity", fmt.Sprintf("Only %d in stock", variant.StockQuantity))
		}
	}

	item.Quantity = quantity
	item.TotalPrice = roundMoney(float64(quantity) * item.UnitPrice)
	if err := s.repo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.recomputeCart(dealerID)
}

// RemoveCartItem deletes a cart line
func (s *orderService) RemoveCartItem(dealerID string, itemID uuid.UUID) (*models.Order, error) {
	item, err := s.cartItem(dealerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(item.ID); err != nil {
		return nil, err
	}
	return s.recomputeCart(dealerID)
}

// cartItem resolves an item id against the dealer's own draft order;
// items on other dealers' carts are indistinguishable from missing.
func (s *orderService) cartItem(dealerID string, itemID uuid.UUID) (*models.OrderItem, error) {
	cart, err := s.repo.GetDraftByDealer(dealerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, repository.ErrOrderItemNotFound
	}
	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.OrderID != cart.ID {
		return nil, repository.ErrOrderItemNotFound
	}
	return item, nil
}

// recomputeCart rewrites the draft totals from its lines. A draft
// carries no tax; tax is computed once, at checkout.
func (s *orderService) recomputeCart(dealerID string) (*models.Order, error) {
	cart, err := s.repo.GetDraftByDealer(dealerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, repository.ErrOrderNotFound
	}

	subtotal := 0.0
	for _, item := range cart.Items {
		subtotal += item.TotalPrice
	}
	subtotal = roundMoney(subtotal)

	if err := s.repo.UpdateTotals(cart.ID, 0, subtotal); err != nil {
		return nil, err
	}
	cart.TaxAmount = 0
	cart.TotalAmount = subtotal
	cart.RowVersion++
	return cart, nil
}

// Checkout submits the dealer's draft order: it validates the cart is
// non-empty, computes tax on the subtotal, assigns a purchase-order
// number and transitions the same record DRAFT -> SUBMITTED through a
// conditioned write keyed on the observed row version.
func (s *orderService) Checkout(dealerID string, observedVersion int64) (*models.Order, error) {
	cart, err := s.repo.GetDraftByDealer(dealerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, validationError("items", "Cannot check out an empty cart")
	}

	if err := models.ValidateOrderStatusTransition(cart.Status, models.OrderStatusSubmitted); err != nil {
		return nil, validationError("status", err.Error())
	}

	subtotal := 0.0
	for _, item := range cart.Items {
		subtotal += item.TotalPrice
	}
	subtotal = roundMoney(subtotal)
	tax := roundMoney(subtotal * TaxRate)
	total := roundMoney(subtotal + tax)

	poNumber := "PO-" + time.Now().Format("20060102150405")

	err = s.repo.SubmitConditional(cart.ID, observedVersion, poNumber, tax, total)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, retryConflict()
		}
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, deletedConflict()
		}
		return nil, err
	}

	order, err := s.repo.GetByID(cart.ID)
	if err != nil {
		return nil, err
	}

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishOrderSubmitted(context.Background(), order.ID.String(), dealerID, order.PONumber, order.TotalAmount)
	}
	return order, nil
}

// GetOrder retrieves one of the dealer's own orders
func (s *orderService) GetOrder(dealerID string, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.DealerID != dealerID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

// ListMyOrders retrieves the dealer's submitted orders, newest first
func (s *orderService) ListMyOrders(dealerID string) ([]models.Order, error) {
	return s.repo.ListSubmittedByDealer(dealerID)
}

// ListAllOrders retrieves every order for the back-office view
func (s *orderService) ListAllOrders() ([]models.Order, error) {
	return s.repo.ListAll()
}

// UpsertShipping records shipping details on a submitted order. Drafts
// have no shipping; the cart is still mutable.
func (s *orderService) UpsertShipping(dealerID string, orderID uuid.UUID, req *models.UpsertShippingRequest) (*models.Order, error) {
	order, err := s.GetOrder(dealerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusSubmitted {
		return nil, validationError("status", "Shipping can only be set on a submitted order")
	}

	shipping := &models.OrderShipping{
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		TrackingNumber: req.TrackingNumber,
	}
	if err := s.repo.UpsertShipping(order.ID, shipping); err != nil {
		return nil, err
	}
	return s.repo.GetByID(order.ID)
}
