package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/aq2208/gorder-workflow/internal/adapter/dto"
	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	acked, requeued bool
}

type fakeAcker struct {
	mu       sync.Mutex
	outcomes map[uint64]outcome
}

func (a *fakeAcker) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outcomes[tag] = outcome{acked: true}
	return nil
}

func (a *fakeAcker) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outcomes[tag] = outcome{requeued: requeue}
	return nil
}

func (a *fakeAcker) Reject(tag uint64, requeue bool) error { return a.Nack(tag, false, requeue) }

type fakeConsumeChannel struct {
	prefetch int
	queues   map[string]chan amqp.Delivery
}

func (f *fakeConsumeChannel) Qos(n, _ int, _ bool) error { f.prefetch = n; return nil }

func (f *fakeConsumeChannel) Consume(queue, _ string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	q, ok := f.queues[queue]
	if !ok {
		return nil, errors.New("no queue " + queue)
	}
	return q, nil
}

func runRouter(t *testing.T, h Handler, bodies ...string) map[uint64]outcome {
	t.Helper()
	acker := &fakeAcker{outcomes: map[uint64]outcome{}}
	q := make(chan amqp.Delivery, len(bodies))
	for i, b := range bodies {
		q <- amqp.Delivery{Acknowledger: acker, DeliveryTag: uint64(i + 1), Body: []byte(b)}
	}
	close(q)

	ch := &fakeConsumeChannel{queues: map[string]chan amqp.Delivery{"order.place.q": q}}
	r := NewRouter(ch, WithPrefetch(7), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Register("order.place.q", h)
	require.NoError(t, r.Start(context.Background()))
	r.Wait()

	assert.Equal(t, 7, ch.prefetch)
	return acker.outcomes
}

func TestRouter_AckNackAndPoison(t *testing.T) {
	h := JSONHandler[map[string]string]{HandleFunc: func(_ context.Context, m map[string]string) error {
		if m["fail"] == "yes" {
			return errors.New("downstream unavailable")
		}
		return nil
	}}

	got := runRouter(t, h, `{"fail":"no"}`, `{"fail":"yes"}`, `not json`)

	assert.Equal(t, outcome{acked: true}, got[1])
	assert.Equal(t, outcome{requeued: true}, got[2])
	assert.Equal(t, outcome{}, got[3], "poison is dropped, not requeued")
}

func TestRouter_RedeliveredFailureIsDropped(t *testing.T) {
	acker := &fakeAcker{outcomes: map[uint64]outcome{}}
	q := make(chan amqp.Delivery, 2)
	q <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: []byte(`{}`)}
	q <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 2, Body: []byte(`{}`), Redelivered: true}
	close(q)

	ch := &fakeConsumeChannel{queues: map[string]chan amqp.Delivery{"order.place.q": q}}
	r := NewRouter(ch, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Register("order.place.q", HandlerFunc(func(context.Context, amqp.Delivery) error {
		return errors.New("downstream unavailable")
	}))
	require.NoError(t, r.Start(context.Background()))
	r.Wait()

	assert.Equal(t, outcome{requeued: true}, acker.outcomes[1])
	assert.Equal(t, outcome{}, acker.outcomes[2])
}

func TestRouter_UnknownQueue(t *testing.T) {
	r := NewRouter(&fakeConsumeChannel{queues: map[string]chan amqp.Delivery{}})
	r.Register("missing.q", HandlerFunc(func(context.Context, amqp.Delivery) error { return nil }))
	require.Error(t, r.Start(context.Background()))
}

type placerFunc func(ctx context.Context, in usecase.UnvalidatedOrder) ([]usecase.PlaceOrderEvent, error)

func (f placerFunc) Execute(ctx context.Context, in usecase.UnvalidatedOrder) ([]usecase.PlaceOrderEvent, error) {
	return f(ctx, in)
}

func TestPlaceOrderHandler_Outcomes(t *testing.T) {
	form, err := json.Marshal(dto.OrderFormDto{OrderId: "order-9"})
	require.NoError(t, err)

	tests := []struct {
		name string
		err  error
		want outcome
	}{
		{"placed", nil, outcome{acked: true}},
		{"rejected", usecase.ValidationError{Field: "OrderId", Message: "bad"}, outcome{acked: true}},
		{"pricing", usecase.PricingError{Field: "BillingAmount", Message: "too big"}, outcome{acked: true}},
		{"remote", usecase.RemoteServiceError{Service: usecase.ServiceInfo{Name: "AddressCheck"}, Err: errors.New("unavailable")}, outcome{acked: true}},
		{"infra", errors.New("boom"), outcome{requeued: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := NewPlaceOrderHandler(placerFunc(func(_ context.Context, in usecase.UnvalidatedOrder) ([]usecase.PlaceOrderEvent, error) {
				seen = in.OrderId
				return nil, tt.err
			}))

			got := runRouter(t, h.Handler(), string(form))

			assert.Equal(t, tt.want, got[1])
			assert.Equal(t, "order-9", seen)
		})
	}
}

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakePublishChannel struct {
	sent   []published
	failAt int
}

func (f *fakePublishChannel) PublishWithDeferredConfirmWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error) {
	if f.failAt > 0 && len(f.sent)+1 == f.failAt {
		return nil, errors.New("channel closed")
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil, nil
}

func sampleEvents(t *testing.T) []usecase.PlaceOrderEvent {
	t.Helper()
	id, err := domain.NewOrderId("OrderId", "order-1")
	require.NoError(t, err)
	email, err := domain.NewEmailAddress("EmailAddress", "a@b.c")
	require.NoError(t, err)
	amount, err := domain.NewBillingAmount(decimal.NewFromInt(42))
	require.NoError(t, err)
	return []usecase.PlaceOrderEvent{
		usecase.OrderAcknowledgmentSent{OrderId: id, EmailAddress: email},
		usecase.ShippableOrderPlaced{OrderId: id, Pdf: usecase.PdfAttachment{Name: "Orderorder-1.pdf"}},
		usecase.BillableOrderPlaced{OrderId: id, AmountToBill: amount},
	}
}

func TestRabbitPublisher_PublishesInOrder(t *testing.T) {
	ch := &fakePublishChannel{}
	p := NewRabbitPublisher(ch, "order.events")

	require.NoError(t, p.Publish(context.Background(), sampleEvents(t)))

	require.Len(t, ch.sent, 3)
	assert.Equal(t, []string{"order.acknowledgment.sent", "order.shippable.placed", "order.billable.placed"},
		[]string{ch.sent[0].key, ch.sent[1].key, ch.sent[2].key})
	for _, s := range ch.sent {
		assert.Equal(t, "order.events", s.exchange)
		assert.Equal(t, amqp.Persistent, s.msg.DeliveryMode)
		assert.Len(t, s.msg.MessageId, 36)
	}
	assert.Equal(t, "BillableOrderPlaced", ch.sent[2].msg.Type)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(ch.sent[2].msg.Body, &body))
	assert.Equal(t, "42", body["BillableOrderPlaced"]["amountToBill"])
}

func TestRabbitPublisher_StopsAtFirstFailure(t *testing.T) {
	ch := &fakePublishChannel{failAt: 2}
	err := NewRabbitPublisher(ch, "order.events").Publish(context.Background(), sampleEvents(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish ShippableOrderPlaced")
	assert.Len(t, ch.sent, 1)
}
