package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aq2208/gorder-workflow/internal/adapter/dto"
	"github.com/aq2208/gorder-workflow/internal/adapter/http/middleware"
	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/gin-gonic/gin"
)

const (
	idempotencyHeader = "X-Idempotency-Key"
	idempotencyScope  = "place_order"
	jsonContentType   = "application/json; charset=utf-8"
)

type OrderHandler struct {
	place   usecase.OrderPlacer
	idem    usecase.IdempotencyStore
	timeout time.Duration
}

// NewOrderHandler builds the place-order handler. idem may be nil, in which
// case X-Idempotency-Key is ignored.
func NewOrderHandler(place usecase.OrderPlacer, idem usecase.IdempotencyStore, timeout time.Duration) *OrderHandler {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &OrderHandler{place: place, idem: idem, timeout: timeout}
}

// PlaceOrder handler: 200 with the event list, 401 with {code, message} when
// the workflow rejects the order.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var form dto.OrderFormDto
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	l := logging.From(c).With("order_id", form.OrderId)

	idemKey := c.GetHeader(idempotencyHeader) // prevent duplicated requests
	scope := idempotencyScopeFor(c)
	if idemKey != "" && h.idem != nil {
		if body, ok, err := h.idem.Recall(ctx, scope, idemKey); err != nil {
			l.ErrorContext(ctx, "idempotency recall failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		} else if ok {
			l.InfoContext(ctx, "idempotent replay", "idempotency_key", idemKey)
			c.Data(http.StatusOK, jsonContentType, []byte(body))
			return
		}

		locked, err := h.idem.TryLock(ctx, scope, idemKey)
		if err != nil {
			l.ErrorContext(ctx, "idempotency lock failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		if !locked {
			c.JSON(http.StatusConflict, gin.H{"error": usecase.ErrDuplicate.Error()})
			return
		}
	}

	events, err := h.place.Execute(ctx, form.ToUnvalidatedOrder())
	if err != nil {
		h.release(ctx, l, scope, idemKey)
		var poe usecase.PlaceOrderError
		if errors.As(err, &poe) {
			c.JSON(http.StatusUnauthorized, dto.FromError(poe))
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	body, err := json.Marshal(dto.FromEvents(events))
	if err != nil {
		h.release(ctx, l, scope, idemKey)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	if idemKey != "" && h.idem != nil {
		// replay must not depend on the caller's deadline
		if err := h.idem.Remember(context.WithoutCancel(ctx), scope, idemKey, string(body)); err != nil {
			l.WarnContext(ctx, "idempotency remember failed", "error", err)
		}
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// idempotencyScopeFor keys replays by caller so one client never receives
// another client's stored response.
func idempotencyScopeFor(c *gin.Context) string {
	return idempotencyScope + ":" + middleware.ClientID(c)
}

func (h *OrderHandler) release(ctx context.Context, l *slog.Logger, scope, idemKey string) {
	if idemKey == "" || h.idem == nil {
		return
	}
	if err := h.idem.Release(context.WithoutCancel(ctx), scope, idemKey); err != nil {
		l.WarnContext(ctx, "idempotency release failed", "error", err)
	}
}
