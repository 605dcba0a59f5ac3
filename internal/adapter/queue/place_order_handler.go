package queue

import (
	"context"
	"errors"

	"github.com/aq2208/gorder-workflow/internal/adapter/dto"
	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/aq2208/gorder-workflow/internal/usecase"
)

// PlaceOrderHandler runs order forms taken from the intake queue through the
// workflow.
type PlaceOrderHandler struct {
	place usecase.OrderPlacer
}

func NewPlaceOrderHandler(place usecase.OrderPlacer) *PlaceOrderHandler {
	return &PlaceOrderHandler{place: place}
}

// HandlePlaceOrder is intended to be used with the JSON adapter
// (queue.JSONHandler[dto.OrderFormDto]). Any PlaceOrderError, a failed remote
// check included, is terminal for the delivery: it is logged and acked.
// Other errors are returned to the Router.
func (h *PlaceOrderHandler) HandlePlaceOrder(ctx context.Context, form dto.OrderFormDto) error {
	l := logging.FromCtx(ctx).With("order_id", form.OrderId)

	_, err := h.place.Execute(ctx, form.ToUnvalidatedOrder())
	if err == nil {
		return nil
	}

	var poe usecase.PlaceOrderError
	if !errors.As(err, &poe) {
		return err
	}
	l.WarnContext(ctx, "queued order rejected", "code", usecase.ErrorCode(poe), "error", poe.Error())
	return nil
}

// Handler wires HandlePlaceOrder to raw deliveries.
func (h *PlaceOrderHandler) Handler() Handler {
	return JSONHandler[dto.OrderFormDto]{HandleFunc: h.HandlePlaceOrder}
}
