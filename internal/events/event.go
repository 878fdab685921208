package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
)

type Type string

const (
	ProductCreated Type = "product.created"
	ProductUpdated Type = "product.updated"
	ProductDeleted Type = "product.deleted"
)

// ProductEvent describes a product write that has already been persisted.
type ProductEvent struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	ProductID  int            `json:"productId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Product    models.Product `json:"product"`
}

func NewProductEvent(t Type, p models.Product) ProductEvent {
	return ProductEvent{
		ID:         uuid.NewString(),
		Type:       t,
		ProductID:  p.ID,
		OccurredAt: time.Now().UTC(),
		Product:    p,
	}
}

// Publisher delivers product events to a sink.
type Publisher interface {
	Publish(ctx context.Context, ev ProductEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

type timeoutPublisher struct {
	Publisher
	timeout time.Duration
}

// WithTimeout bounds every Publish call of p by d.
func WithTimeout(p Publisher, d time.Duration) Publisher {
	if d <= 0 {
		return p
	}
	return &timeoutPublisher{Publisher: p, timeout: d}
}

func (p *timeoutPublisher) Publish(ctx context.Context, ev ProductEvent) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.Publisher.Publish(ctx, ev)
}
