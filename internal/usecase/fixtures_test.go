package usecase

import (
	"context"
	"sync/atomic"
	"testing"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func givenAddress(state, country string) UnvalidatedAddress {
	return UnvalidatedAddress{
		AddressLine1: "123 Main Street",
		City:         "Springfield",
		ZipCode:      "95814",
		State:        state,
		Country:      country,
	}
}

func givenLine(id, code, qty string) UnvalidatedOrderLine {
	return UnvalidatedOrderLine{OrderLineId: id, ProductCode: code, Quantity: dec(qty)}
}

// givenOrder is a normal customer in California ordering two W1234 widgets.
func givenOrder() UnvalidatedOrder {
	return UnvalidatedOrder{
		OrderId: "order-001",
		CustomerInfo: UnvalidatedCustomerInfo{
			FirstName:    "Jane",
			LastName:     "Doe",
			EmailAddress: "jane@example.com",
			VipStatus:    "Normal",
		},
		ShippingAddress: givenAddress("CA", "US"),
		BillingAddress:  givenAddress("CA", "US"),
		Lines:           []UnvalidatedOrderLine{givenLine("line-1", "W1234", "2")},
	}
}

var allProductsExist = ProductCatalogFunc(func(domain.ProductCode) bool { return true })

var addressesExist = AddressCheckerFunc(func(_ context.Context, addr UnvalidatedAddress) (CheckedAddress, error) {
	return CheckedAddress(addr), nil
})

func addressRejected(err error) AddressChecker {
	return AddressCheckerFunc(func(context.Context, UnvalidatedAddress) (CheckedAddress, error) {
		return CheckedAddress{}, err
	})
}

// flatPrice prices every product at p, regardless of pricing method.
func flatPrice(p string) PriceLister {
	price := domain.MustPrice(dec(p))
	return PriceListerFunc(func(domain.PricingMethod) GetProductPrice {
		return func(domain.ProductCode) domain.Price { return price }
	})
}

var plainLetter = AcknowledgmentLetterFunc(func(PricedOrderWithShippingMethod) HTMLString {
	return "<p>thanks</p>"
})

type recordingSender struct {
	result SendResult
	calls  atomic.Int32
	last   OrderAcknowledgment
}

func (s *recordingSender) SendAcknowledgment(_ context.Context, ack OrderAcknowledgment) SendResult {
	s.calls.Add(1)
	s.last = ack
	return s.result
}

func mustValidate(t *testing.T, in UnvalidatedOrder) ValidatedOrder {
	t.Helper()
	v, err := ValidateOrder(context.Background(), allProductsExist, addressesExist, in)
	require.NoError(t, err)
	return v
}

func mustPrice(t *testing.T, in UnvalidatedOrder, pricing PriceLister) PricedOrder {
	t.Helper()
	p, err := PriceOrder(pricing, mustValidate(t, in))
	require.NoError(t, err)
	return p
}
