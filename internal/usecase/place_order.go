package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aq2208/gorder-workflow/internal/logging"
)

// PlaceOrder is the order-taking workflow: validate, price, add shipping,
// apply the VIP adjustment, acknowledge and assemble events.
type PlaceOrder struct {
	products  ProductCatalog
	addresses AddressChecker
	pricing   PriceLister
	letters   AcknowledgmentLetterWriter
	sender    AcknowledgmentSender
	publisher EventPublisher
}

type Option func(*PlaceOrder)

// WithPublisher forwards the events of successful runs. Publishing is best
// effort: a failure is logged and the run still succeeds.
func WithPublisher(p EventPublisher) Option {
	return func(uc *PlaceOrder) { uc.publisher = p }
}

func NewPlaceOrder(
	products ProductCatalog,
	addresses AddressChecker,
	pricing PriceLister,
	letters AcknowledgmentLetterWriter,
	sender AcknowledgmentSender,
	opts ...Option,
) *PlaceOrder {
	uc := &PlaceOrder{
		products:  products,
		addresses: addresses,
		pricing:   pricing,
		letters:   letters,
		sender:    sender,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the workflow once. A non-nil error is always a PlaceOrderError.
func (uc *PlaceOrder) Execute(ctx context.Context, in UnvalidatedOrder) ([]PlaceOrderEvent, error) {
	start := time.Now()
	l := logging.FromCtx(ctx).With("order_id", in.OrderId)

	validated, err := ValidateOrder(ctx, uc.products, uc.addresses, in)
	if err != nil {
		logFailure(ctx, l, "validate", err)
		return nil, err
	}
	l.DebugContext(ctx, "order validated", "lines", len(validated.Lines))

	priced, err := PriceOrder(uc.pricing, validated)
	if err != nil {
		logFailure(ctx, l, "price", err)
		return nil, err
	}
	l.DebugContext(ctx, "order priced", "amount_to_bill", priced.AmountToBill.Value().String())

	withShipping := FreeVipShipping(AddShippingInfo(priced))
	l.DebugContext(ctx, "shipping added",
		"method", withShipping.ShippingInfo.ShippingMethod.String(),
		"cost", withShipping.ShippingInfo.ShippingCost.Value().String())

	ack := AcknowledgeOrder(ctx, uc.letters, uc.sender, withShipping)
	if ack == nil {
		l.WarnContext(ctx, "acknowledgment not sent")
	}

	events := CreateEvents(withShipping.PricedOrder, ack)
	l.InfoContext(ctx, "order placed", "events", len(events), "dur_ms", time.Since(start).Milliseconds())

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, events); err != nil {
			l.ErrorContext(ctx, "publish events failed", "error", err)
		}
	}
	return events, nil
}

func logFailure(ctx context.Context, l *slog.Logger, stage string, err error) {
	var poe PlaceOrderError
	if errors.As(err, &poe) {
		l.WarnContext(ctx, "place order rejected", "stage", stage, "code", ErrorCode(poe), "error", poe.Error())
		return
	}
	l.ErrorContext(ctx, "place order failed", "stage", stage, "error", err)
}
