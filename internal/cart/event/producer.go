// Package event publishes cart domain events to Kafka.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marves/pcpartstore/internal/cart/domain"
	pkgkafka "github.com/marves/pcpartstore/pkg/kafka"
)

// Kafka topics for cart domain events.
const (
	TopicCartUpdated = "pcpartstore.cart.updated"
	TopicCartCleared = "pcpartstore.cart.cleared"
)

const aggregateTypeCart = "cart"

const sourceStorefront = "pcpartstore"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID   string         `json:"session_id"`
	Items       []CartItemData `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount float64        `json:"total_amount"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// Producer publishes cart events. A nil Producer is valid and drops all
// events, so event publishing stays optional.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new cart event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event with the full cart state.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	if p == nil {
		return nil
	}

	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID:   cart.SessionID,
		Items:       items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, aggregateTypeCart, sourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	if p == nil {
		return nil
	}

	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, aggregateTypeCart, sourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}
