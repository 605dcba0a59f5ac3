package usecase

import domain "github.com/aq2208/gorder-workflow/internal/entity"

// PlaceOrderEvent is one of OrderAcknowledgmentSent, ShippableOrderPlaced
// or BillableOrderPlaced.
type PlaceOrderEvent interface {
	placeOrderEvent()
}

type OrderAcknowledgmentSent struct {
	OrderId      domain.OrderId
	EmailAddress domain.EmailAddress
}

type ShipmentLine struct {
	ProductCode domain.ProductCode
	Quantity    domain.OrderQuantity
}

type PdfAttachment struct {
	Name  string
	Bytes []byte
}

type ShippableOrderPlaced struct {
	OrderId         domain.OrderId
	ShippingAddress domain.Address
	ShipmentLines   []ShipmentLine
	Pdf             PdfAttachment
}

// BillableOrderPlaced is only raised when there is something to bill.
type BillableOrderPlaced struct {
	OrderId        domain.OrderId
	BillingAddress domain.Address
	AmountToBill   domain.BillingAmount
}

func (OrderAcknowledgmentSent) placeOrderEvent() {}
func (ShippableOrderPlaced) placeOrderEvent()    {}
func (BillableOrderPlaced) placeOrderEvent()     {}

// EventName is the stable wire name of an event.
func EventName(ev PlaceOrderEvent) string {
	switch ev.(type) {
	case OrderAcknowledgmentSent:
		return "OrderAcknowledgmentSent"
	case ShippableOrderPlaced:
		return "ShippableOrderPlaced"
	case BillableOrderPlaced:
		return "BillableOrderPlaced"
	}
	panic("usecase: unknown place order event")
}
