// Package dto holds the JSON shapes exchanged with clients and brokers and
// their conversions to and from the workflow types.
package dto

import (
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/shopspring/decimal"
)

type CustomerInfoDto struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	VipStatus    string `json:"vipStatus"`
}

type AddressDto struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	AddressLine3 string `json:"addressLine3,omitempty"`
	AddressLine4 string `json:"addressLine4,omitempty"`
	City         string `json:"city"`
	ZipCode      string `json:"zipCode"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type OrderFormLineDto struct {
	OrderLineId string          `json:"orderLineId"`
	ProductCode string          `json:"productCode"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// OrderFormDto is the body of a place-order request.
type OrderFormDto struct {
	OrderId         string             `json:"orderId"`
	CustomerInfo    CustomerInfoDto    `json:"customerInfo"`
	ShippingAddress AddressDto         `json:"shippingAddress"`
	BillingAddress  AddressDto         `json:"billingAddress"`
	Lines           []OrderFormLineDto `json:"lines"`
	PromotionCode   string             `json:"promotionCode,omitempty"`
}

func (a AddressDto) toUnvalidated() usecase.UnvalidatedAddress {
	return usecase.UnvalidatedAddress{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		AddressLine3: a.AddressLine3,
		AddressLine4: a.AddressLine4,
		City:         a.City,
		ZipCode:      a.ZipCode,
		State:        a.State,
		Country:      a.Country,
	}
}

// ToUnvalidatedOrder copies the form into the workflow input. No checks happen here.
func (d OrderFormDto) ToUnvalidatedOrder() usecase.UnvalidatedOrder {
	lines := make([]usecase.UnvalidatedOrderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, usecase.UnvalidatedOrderLine{
			OrderLineId: l.OrderLineId,
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
		})
	}
	return usecase.UnvalidatedOrder{
		OrderId: d.OrderId,
		CustomerInfo: usecase.UnvalidatedCustomerInfo{
			FirstName:    d.CustomerInfo.FirstName,
			LastName:     d.CustomerInfo.LastName,
			EmailAddress: d.CustomerInfo.EmailAddress,
			VipStatus:    d.CustomerInfo.VipStatus,
		},
		ShippingAddress: d.ShippingAddress.toUnvalidated(),
		BillingAddress:  d.BillingAddress.toUnvalidated(),
		Lines:           lines,
		PromotionCode:   d.PromotionCode,
	}
}
