package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PlaceOrderRoutingKey binds the intake queue to the exchange.
const PlaceOrderRoutingKey = "order.place"

// DeclareTopology sets up the exchange, the intake queue and its binding
// once at startup.
func DeclareTopology(ch *amqp.Channel, exchange, placeOrderQueue string) error {
	// 1. declare exchange (topic type, durable)
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// 2. declare queue
	q, err := ch.QueueDeclare(
		placeOrderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// 3. bind queue → exchange
	if err := ch.QueueBind(q.Name, PlaceOrderRoutingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}
	return nil
}
