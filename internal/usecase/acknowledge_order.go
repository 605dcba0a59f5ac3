package usecase

import "context"

// AcknowledgeOrder renders and sends the acknowledgment letter. It returns nil
// when the sender reports NotSent.
func AcknowledgeOrder(ctx context.Context, letters AcknowledgmentLetterWriter, sender AcknowledgmentSender, order PricedOrderWithShippingMethod) *OrderAcknowledgmentSent {
	priced := order.PricedOrder
	ack := OrderAcknowledgment{
		EmailAddress: priced.CustomerInfo.EmailAddress,
		Letter:       letters.CreateAcknowledgmentLetter(order),
	}

	switch sender.SendAcknowledgment(ctx, ack) {
	case Sent:
		return &OrderAcknowledgmentSent{
			OrderId:      priced.OrderId,
			EmailAddress: priced.CustomerInfo.EmailAddress,
		}
	case NotSent:
		return nil
	}
	panic("usecase: unknown send result")
}
