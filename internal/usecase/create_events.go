package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CreateEvents assembles the outbound events in their fixed order:
// acknowledgment, shipment, billing.
func CreateEvents(order PricedOrder, ack *OrderAcknowledgmentSent) []PlaceOrderEvent {
	events := make([]PlaceOrderEvent, 0, 3)
	if ack != nil {
		events = append(events, *ack)
	}
	events = append(events, createShippingEvent(order))
	if billing, ok := createBillingEvent(order); ok {
		events = append(events, billing)
	}
	return events
}

func createShippingEvent(order PricedOrder) ShippableOrderPlaced {
	lines := make([]ShipmentLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		if pl, ok := line.(PricedOrderProductLine); ok {
			lines = append(lines, ShipmentLine{ProductCode: pl.ProductCode, Quantity: pl.Quantity})
		}
	}
	return ShippableOrderPlaced{
		OrderId:         order.OrderId,
		ShippingAddress: order.ShippingAddress,
		ShipmentLines:   lines,
		Pdf: PdfAttachment{
			Name:  fmt.Sprintf("Order%s.pdf", order.OrderId),
			Bytes: []byte{},
		},
	}
}

func createBillingEvent(order PricedOrder) (BillableOrderPlaced, bool) {
	if !order.AmountToBill.Value().GreaterThan(decimal.Zero) {
		return BillableOrderPlaced{}, false
	}
	return BillableOrderPlaced{
		OrderId:        order.OrderId,
		BillingAddress: order.BillingAddress,
		AmountToBill:   order.AmountToBill,
	}, true
}
