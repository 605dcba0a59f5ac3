package usecase

import (
	"context"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
)

// ProductCatalog answers whether a product code is sold.
type ProductCatalog interface {
	ProductCodeExists(code domain.ProductCode) bool
}

// AddressChecker asks the address service whether an address exists.
// A rejected address is reported as an AddressValidationError; any other
// error means the service could not be reached or failed.
type AddressChecker interface {
	CheckAddressExists(ctx context.Context, addr UnvalidatedAddress) (CheckedAddress, error)
}

type GetProductPrice func(code domain.ProductCode) domain.Price

// PriceLister selects the price lookup for a pricing method.
type PriceLister interface {
	PricingFunction(method domain.PricingMethod) GetProductPrice
}

type AcknowledgmentLetterWriter interface {
	CreateAcknowledgmentLetter(order PricedOrderWithShippingMethod) HTMLString
}

type AcknowledgmentSender interface {
	SendAcknowledgment(ctx context.Context, ack OrderAcknowledgment) SendResult
}

// EventPublisher forwards the events of a successful run downstream.
type EventPublisher interface {
	Publish(ctx context.Context, events []PlaceOrderEvent) error
}

// OrderPlacer runs the workflow. *PlaceOrder implements it; transports
// depend on this so the run can be decorated.
type OrderPlacer interface {
	Execute(ctx context.Context, in UnvalidatedOrder) ([]PlaceOrderEvent, error)
}

// IdempotencyStore guards a request key so a retried request replays the
// first response instead of running the workflow twice.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	// Release drops the lock of a request that produced no answer, so a
	// retry can run.
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// Function adapters, in the style of http.HandlerFunc.

type ProductCatalogFunc func(code domain.ProductCode) bool

func (f ProductCatalogFunc) ProductCodeExists(code domain.ProductCode) bool { return f(code) }

type AddressCheckerFunc func(ctx context.Context, addr UnvalidatedAddress) (CheckedAddress, error)

func (f AddressCheckerFunc) CheckAddressExists(ctx context.Context, addr UnvalidatedAddress) (CheckedAddress, error) {
	return f(ctx, addr)
}

type PriceListerFunc func(method domain.PricingMethod) GetProductPrice

func (f PriceListerFunc) PricingFunction(method domain.PricingMethod) GetProductPrice { return f(method) }

type AcknowledgmentLetterFunc func(order PricedOrderWithShippingMethod) HTMLString

func (f AcknowledgmentLetterFunc) CreateAcknowledgmentLetter(order PricedOrderWithShippingMethod) HTMLString {
	return f(order)
}

type AcknowledgmentSenderFunc func(ctx context.Context, ack OrderAcknowledgment) SendResult

func (f AcknowledgmentSenderFunc) SendAcknowledgment(ctx context.Context, ack OrderAcknowledgment) SendResult {
	return f(ctx, ack)
}

var _ OrderPlacer = (*PlaceOrder)(nil)
