package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aq2208/gorder-workflow/internal/adapter/dto"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PublishChannel is the part of *amqp.Channel the publisher needs.
type PublishChannel interface {
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
}

// RabbitPublisher implements usecase.EventPublisher.
type RabbitPublisher struct {
	ch       PublishChannel
	exchange string
	now      func() time.Time
}

// NewRabbitPublisher expects the exchange to exist. Put the channel in
// confirm mode (ch.Confirm(false)) to have Publish wait for broker acks.
func NewRabbitPublisher(ch PublishChannel, exchange string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange, now: time.Now}
}

// RoutingKey is the topic an event is published under.
func RoutingKey(ev usecase.PlaceOrderEvent) string {
	switch ev.(type) {
	case usecase.OrderAcknowledgmentSent:
		return "order.acknowledgment.sent"
	case usecase.ShippableOrderPlaced:
		return "order.shippable.placed"
	case usecase.BillableOrderPlaced:
		return "order.billable.placed"
	}
	panic("queue: unknown place order event")
}

// Publish sends the events in order and stops at the first failure.
func (p *RabbitPublisher) Publish(ctx context.Context, events []usecase.PlaceOrderEvent) error {
	for _, ev := range events {
		name := usecase.EventName(ev)
		body, err := json.Marshal(dto.FromEvent(ev))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}

		pub := amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // survive broker restarts
			MessageId:    uuid.NewString(),
			Type:         name,
			Timestamp:    p.now().UTC(),
			Body:         body,
		}

		confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, RoutingKey(ev), false, false, pub)
		if err != nil {
			return fmt.Errorf("publish %s: %w", name, err)
		}
		// nil when the channel is not in confirm mode
		if confirm == nil {
			continue
		}
		acked, err := confirm.WaitContext(ctx)
		if err != nil {
			return fmt.Errorf("confirm %s: %w", name, err)
		}
		if !acked {
			return fmt.Errorf("confirm %s: broker nacked", name)
		}
	}
	return nil
}

var _ usecase.EventPublisher = (*RabbitPublisher)(nil)
