package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Event types
const (
	CategoryCreated = "category.created"
	CategoryUpdated = "category.updated"
	CategoryDeleted = "category.deleted"
	ProductArchived = "product.archived"
	VendorArchived  = "vendor.archived"
	OrderSubmitted  = "order.submitted"
)

const channel = "backoffice.events"

// BaseEvent carries the fields common to every published event
type BaseEvent struct {
	EventType string    `json:"eventType"`
	SourceID  string    `json:"sourceId"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogEvent represents a category, product or vendor lifecycle event
type CatalogEvent struct {
	BaseEvent
	Name string `json:"name,omitempty"`
}

// OrderEvent represents an order lifecycle event
type OrderEvent struct {
	BaseEvent
	DealerID    string  `json:"dealerId"`
	PONumber    string  `json:"poNumber"`
	TotalAmount float64 `json:"totalAmount"`
}

// Publisher emits domain events on a redis pub/sub channel. A nil redis
// client disables publishing; every method degrades to a no-op so
// callers never have to branch on whether eventing is configured.
type Publisher struct {
	client *redis.Client
	logger *logrus.Entry
}

// NewPublisher creates a new events publisher
func NewPublisher(client *redis.Client, logger *logrus.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger.WithField("component", "events.publisher"),
	}
}

func (p *Publisher) publish(ctx context.Context, eventType string, event interface{}) error {
	if p == nil || p.client == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.WithError(err).WithField("event_type", eventType).Warn("Failed to publish event")
		return err
	}
	p.logger.WithField("event_type", eventType).Debug("Published event")
	return nil
}

func (p *Publisher) publishCatalog(ctx context.Context, eventType, sourceID, name string) error {
	return p.publish(ctx, eventType, &CatalogEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			SourceID:  sourceID,
			Timestamp: time.Now().UTC(),
		},
		Name: name,
	})
}

// PublishCategoryCreated publishes a category created event
func (p *Publisher) PublishCategoryCreated(ctx context.Context, categoryID, name string) error {
	return p.publishCatalog(ctx, CategoryCreated, categoryID, name)
}

// PublishCategoryUpdated publishes a category updated event
func (p *Publisher) PublishCategoryUpdated(ctx context.Context, categoryID, name string) error {
	return p.publishCatalog(ctx, CategoryUpdated, categoryID, name)
}

// PublishCategoryDeleted publishes a category deleted event
func (p *Publisher) PublishCategoryDeleted(ctx context.Context, categoryID, name string) error {
	return p.publishCatalog(ctx, CategoryDeleted, categoryID, name)
}

// PublishProductArchived publishes a product archived event
func (p *Publisher) PublishProductArchived(ctx context.Context, productID, name string) error {
	return p.publishCatalog(ctx, ProductArchived, productID, name)
}

// PublishVendorArchived publishes a vendor archived event
func (p *Publisher) PublishVendorArchived(ctx context.Context, vendorID, name string) error {
	return p.publishCatalog(ctx, VendorArchived, vendorID, name)
}

// PublishOrderSubmitted publishes an order submitted event
func (p *Publisher) PublishOrderSubmitted(ctx context.Context, orderID, dealerID, poNumber string, totalAmount float64) error {
	return p.publish(ctx, OrderSubmitted, &OrderEvent{
		BaseEvent: BaseEvent{
			EventType: OrderSubmitted,
			SourceID:  orderID,
			Timestamp: time.Now().UTC(),
		},
		DealerID:    dealerID,
		PONumber:    poNumber,
		TotalAmount: totalAmount,
	})
}
