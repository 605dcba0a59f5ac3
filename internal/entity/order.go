package domain

import "strings"

type OrderId struct{ v string }

func NewOrderId(field, s string) (OrderId, error) {
	v, err := createString(field, s, 50)
	return OrderId{v}, err
}

func (o OrderId) String() string { return o.v }

type OrderLineId struct{ v string }

func NewOrderLineId(field, s string) (OrderLineId, error) {
	v, err := createString(field, s, 50)
	return OrderLineId{v}, err
}

func (o OrderLineId) String() string { return o.v }

type PromotionCode string

// PricingMethod selects the price list used for an order:
// StandardPricing or PromotionPricing.
type PricingMethod interface {
	pricingMethod()
}

type StandardPricing struct{}

type PromotionPricing struct {
	Code PromotionCode
}

func (StandardPricing) pricingMethod()  {}
func (PromotionPricing) pricingMethod() {}

// NewPricingMethod derives the pricing method from a raw promotion code.
// A blank code means standard pricing.
func NewPricingMethod(promotionCode string) PricingMethod {
	if strings.TrimSpace(promotionCode) == "" {
		return StandardPricing{}
	}
	return PromotionPricing{Code: PromotionCode(promotionCode)}
}
