package usecase

import (
	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/shopspring/decimal"
)

// Unvalidated shapes carry primitives exactly as a transport received them.

type UnvalidatedCustomerInfo struct {
	FirstName    string
	LastName     string
	EmailAddress string
	VipStatus    string
}

type UnvalidatedAddress struct {
	AddressLine1 string
	AddressLine2 string
	AddressLine3 string
	AddressLine4 string
	City         string
	ZipCode      string
	State        string
	Country      string
}

type UnvalidatedOrderLine struct {
	OrderLineId string
	ProductCode string
	Quantity    decimal.Decimal
}

type UnvalidatedOrder struct {
	OrderId         string
	CustomerInfo    UnvalidatedCustomerInfo
	ShippingAddress UnvalidatedAddress
	BillingAddress  UnvalidatedAddress
	Lines           []UnvalidatedOrderLine
	PromotionCode   string
}

// CheckedAddress is an address the address service confirmed exists.
// Its fields are still unconstrained.
type CheckedAddress UnvalidatedAddress

type ValidatedOrderLine struct {
	OrderLineId domain.OrderLineId
	ProductCode domain.ProductCode
	Quantity    domain.OrderQuantity
}

type ValidatedOrder struct {
	OrderId         domain.OrderId
	CustomerInfo    domain.CustomerInfo
	ShippingAddress domain.Address
	BillingAddress  domain.Address
	Lines           []ValidatedOrderLine
	PricingMethod   domain.PricingMethod
}

// PricedOrderLine is either a PricedOrderProductLine or a CommentLine.
type PricedOrderLine interface {
	pricedOrderLine()
}

type PricedOrderProductLine struct {
	OrderLineId domain.OrderLineId
	ProductCode domain.ProductCode
	Quantity    domain.OrderQuantity
	LinePrice   domain.Price
}

// CommentLine is free text attached to an order, e.g. an applied promotion.
// It has no quantity or price.
type CommentLine string

func (PricedOrderProductLine) pricedOrderLine() {}
func (CommentLine) pricedOrderLine()            {}

type PricedOrder struct {
	OrderId         domain.OrderId
	CustomerInfo    domain.CustomerInfo
	ShippingAddress domain.Address
	BillingAddress  domain.Address
	AmountToBill    domain.BillingAmount
	Lines           []PricedOrderLine
	PricingMethod   domain.PricingMethod
}

type ShippingMethod int

const (
	PostalService ShippingMethod = iota
	Fedex24
	Fedex48
	Ups48
)

func (m ShippingMethod) String() string {
	switch m {
	case PostalService:
		return "PostalService"
	case Fedex24:
		return "Fedex24"
	case Fedex48:
		return "Fedex48"
	case Ups48:
		return "Ups48"
	}
	panic("usecase: unknown shipping method")
}

type ShippingInfo struct {
	ShippingMethod ShippingMethod
	ShippingCost   domain.Price
}

type PricedOrderWithShippingMethod struct {
	ShippingInfo ShippingInfo
	PricedOrder  PricedOrder
}

type HTMLString string

type OrderAcknowledgment struct {
	EmailAddress domain.EmailAddress
	Letter       HTMLString
}

// SendResult is the outcome of an acknowledgment delivery. NotSent is not an
// error for the workflow; it only suppresses the acknowledgment event.
type SendResult int

const (
	Sent SendResult = iota
	NotSent
)
