package dto

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderForm = `{
  "orderId": "order-042",
  "customerInfo": {"firstName": "Ada", "lastName": "Lovelace", "emailAddress": "ada@example.com", "vipStatus": "Normal"},
  "shippingAddress": {"addressLine1": "1 Loop Rd", "addressLine2": "Unit 2", "city": "Austin", "zipCode": "73301", "state": "TX", "country": "US"},
  "billingAddress": {"addressLine1": "1 Loop Rd", "city": "Austin", "zipCode": "73301", "state": "TX", "country": "US"},
  "lines": [{"orderLineId": "l1", "productCode": "G123", "quantity": 1.25}],
  "promotionCode": "SPRING25"
}`

func TestOrderFormDto_ToUnvalidatedOrder(t *testing.T) {
	var form OrderFormDto
	require.NoError(t, json.Unmarshal([]byte(orderForm), &form))

	got := form.ToUnvalidatedOrder()

	assert.Equal(t, "order-042", got.OrderId)
	assert.Equal(t, "Ada", got.CustomerInfo.FirstName)
	assert.Equal(t, "Unit 2", got.ShippingAddress.AddressLine2)
	assert.Equal(t, "", got.BillingAddress.AddressLine2)
	assert.Equal(t, "SPRING25", got.PromotionCode)
	require.Len(t, got.Lines, 1)
	assert.True(t, decimal.RequireFromString("1.25").Equal(got.Lines[0].Quantity))
}

func placeOrder(t *testing.T, form OrderFormDto) []usecase.PlaceOrderEvent {
	t.Helper()
	uc := usecase.NewPlaceOrder(
		usecase.ProductCatalogFunc(func(domain.ProductCode) bool { return true }),
		usecase.AddressCheckerFunc(func(_ context.Context, a usecase.UnvalidatedAddress) (usecase.CheckedAddress, error) {
			return usecase.CheckedAddress(a), nil
		}),
		usecase.PriceListerFunc(func(domain.PricingMethod) usecase.GetProductPrice {
			return func(domain.ProductCode) domain.Price { return domain.MustPrice(decimal.NewFromInt(8)) }
		}),
		usecase.AcknowledgmentLetterFunc(func(usecase.PricedOrderWithShippingMethod) usecase.HTMLString { return "" }),
		usecase.AcknowledgmentSenderFunc(func(context.Context, usecase.OrderAcknowledgment) usecase.SendResult { return usecase.Sent }),
	)
	events, err := uc.Execute(context.Background(), form.ToUnvalidatedOrder())
	require.NoError(t, err)
	return events
}

func TestFromEvents(t *testing.T) {
	var form OrderFormDto
	require.NoError(t, json.Unmarshal([]byte(orderForm), &form))

	raw, err := json.Marshal(FromEvents(placeOrder(t, form)))
	require.NoError(t, err)

	var decoded []map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, "ada@example.com", decoded[0]["OrderAcknowledgmentSent"]["emailAddress"])

	shippable := decoded[1]["ShippableOrderPlaced"]
	require.NotNil(t, shippable)
	assert.Equal(t, "Orderorder-042.pdf", shippable["pdf"].(map[string]any)["name"])
	lines := shippable["shipmentLines"].([]any)
	require.Len(t, lines, 1, "comment line is not shipped")
	assert.Equal(t, "G123", lines[0].(map[string]any)["productCode"])
	assert.Equal(t, "Unit 2", shippable["shippingAddress"].(map[string]any)["addressLine2"])

	assert.Equal(t, "10", decoded[2]["BillableOrderPlaced"]["amountToBill"])
}

func TestFromError(t *testing.T) {
	assert.Equal(t,
		PlaceOrderErrorDto{Code: "ValidationError", Message: "ShippingAddress.ZipCode: must not be null or empty"},
		FromError(usecase.ValidationError{Field: "ShippingAddress.ZipCode", Message: "must not be null or empty"}))

	assert.Equal(t,
		PlaceOrderErrorDto{Code: "PricingError", Message: "BillingAmount: must not be greater than 10000"},
		FromError(usecase.PricingError{Field: "BillingAmount", Message: "must not be greater than 10000"}))

	got := FromError(usecase.RemoteServiceError{Service: usecase.ServiceInfo{Name: "AddressCheck"}, Err: errors.New("timeout")})
	assert.Equal(t, "RemoteServiceError", got.Code)
	assert.Equal(t, "remote service AddressCheck: timeout", got.Message)
}
