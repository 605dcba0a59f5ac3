package dto

import (
	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/shopspring/decimal"
)

type ShipmentLineDto struct {
	ProductCode string          `json:"productCode"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type PdfAttachmentDto struct {
	Name  string `json:"name"`
	Bytes []byte `json:"bytes"`
}

type ShippableOrderPlacedDto struct {
	OrderId         string            `json:"orderId"`
	ShippingAddress AddressDto        `json:"shippingAddress"`
	ShipmentLines   []ShipmentLineDto `json:"shipmentLines"`
	Pdf             PdfAttachmentDto  `json:"pdf"`
}

type BillableOrderPlacedDto struct {
	OrderId        string          `json:"orderId"`
	BillingAddress AddressDto      `json:"billingAddress"`
	AmountToBill   decimal.Decimal `json:"amountToBill"`
}

type OrderAcknowledgmentSentDto struct {
	OrderId      string `json:"orderId"`
	EmailAddress string `json:"emailAddress"`
}

// PlaceOrderEventDto is a single-key object: {"<EventName>": payload}.
type PlaceOrderEventDto map[string]any

func fromAddress(a domain.Address) AddressDto {
	return AddressDto{
		AddressLine1: a.AddressLine1.String(),
		AddressLine2: domain.OptionalString(a.AddressLine2),
		AddressLine3: domain.OptionalString(a.AddressLine3),
		AddressLine4: domain.OptionalString(a.AddressLine4),
		City:         a.City.String(),
		ZipCode:      a.ZipCode.String(),
		State:        a.State.String(),
		Country:      a.Country.String(),
	}
}

// EventPayload converts an event to its DTO, without the name wrapper.
func EventPayload(ev usecase.PlaceOrderEvent) any {
	switch e := ev.(type) {
	case usecase.OrderAcknowledgmentSent:
		return OrderAcknowledgmentSentDto{
			OrderId:      e.OrderId.String(),
			EmailAddress: e.EmailAddress.String(),
		}
	case usecase.ShippableOrderPlaced:
		lines := make([]ShipmentLineDto, 0, len(e.ShipmentLines))
		for _, l := range e.ShipmentLines {
			lines = append(lines, ShipmentLineDto{ProductCode: l.ProductCode.String(), Quantity: l.Quantity.Value()})
		}
		return ShippableOrderPlacedDto{
			OrderId:         e.OrderId.String(),
			ShippingAddress: fromAddress(e.ShippingAddress),
			ShipmentLines:   lines,
			Pdf:             PdfAttachmentDto{Name: e.Pdf.Name, Bytes: e.Pdf.Bytes},
		}
	case usecase.BillableOrderPlaced:
		return BillableOrderPlacedDto{
			OrderId:        e.OrderId.String(),
			BillingAddress: fromAddress(e.BillingAddress),
			AmountToBill:   e.AmountToBill.Value(),
		}
	}
	panic("dto: unknown place order event")
}

func FromEvent(ev usecase.PlaceOrderEvent) PlaceOrderEventDto {
	return PlaceOrderEventDto{usecase.EventName(ev): EventPayload(ev)}
}

func FromEvents(events []usecase.PlaceOrderEvent) []PlaceOrderEventDto {
	out := make([]PlaceOrderEventDto, 0, len(events))
	for _, ev := range events {
		out = append(out, FromEvent(ev))
	}
	return out
}
