package usecase

import (
	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/shopspring/decimal"
)

type shippingRegion int

const (
	usLocalState shippingRegion = iota
	usRemoteState
	international
)

var shippingCosts = map[shippingRegion]domain.Price{
	usLocalState:  domain.MustPrice(decimal.NewFromInt(5)),
	usRemoteState: domain.MustPrice(decimal.NewFromInt(10)),
	international: domain.MustPrice(decimal.NewFromInt(20)),
}

func classifyAddress(addr domain.Address) shippingRegion {
	if addr.Country.String() != "US" {
		return international
	}
	switch addr.State.String() {
	case "CA", "OR", "AZ", "NV":
		return usLocalState
	}
	return usRemoteState
}

// CalculateShippingCost prices shipping from the destination alone.
func CalculateShippingCost(order PricedOrder) domain.Price {
	return shippingCosts[classifyAddress(order.ShippingAddress)]
}

func AddShippingInfo(order PricedOrder) PricedOrderWithShippingMethod {
	return PricedOrderWithShippingMethod{
		ShippingInfo: ShippingInfo{
			ShippingMethod: Fedex24,
			ShippingCost:   CalculateShippingCost(order),
		},
		PricedOrder: order,
	}
}

// FreeVipShipping zeroes the shipping cost for VIP customers.
func FreeVipShipping(order PricedOrderWithShippingMethod) PricedOrderWithShippingMethod {
	switch order.PricedOrder.CustomerInfo.VipStatus {
	case domain.Normal:
		return order
	case domain.Vip:
		order.ShippingInfo.ShippingCost = domain.MustPrice(decimal.Zero)
		return order
	}
	panic("usecase: unknown vip status")
}
