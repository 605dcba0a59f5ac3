package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aq2208/gorder-workflow/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumeChannel is the part of *amqp.Channel the Router needs.
type ConsumeChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Router manages multiple consumers (one per registered queue) on a single AMQP channel.
type Router struct {
	ch            ConsumeChannel
	log           *slog.Logger
	prefetch      int
	callTimeout   time.Duration
	requeueOnErr  bool
	registrations []registration
	wg            sync.WaitGroup
}

type registration struct {
	queueName   string
	handler     Handler
	consumerTag string
}

// --- Options ---

type RouterOption func(*Router)

func WithPrefetch(n int) RouterOption          { return func(r *Router) { r.prefetch = n } }
func WithTimeout(d time.Duration) RouterOption { return func(r *Router) { r.callTimeout = d } }
func WithRequeue(b bool) RouterOption          { return func(r *Router) { r.requeueOnErr = b } }
func WithLogger(l *slog.Logger) RouterOption   { return func(r *Router) { r.log = l } }

// NewRouter constructs a Router. Defaults: prefetch=50, timeout=10s, requeueOnErr=true.
func NewRouter(ch ConsumeChannel, opts ...RouterOption) *Router {
	r := &Router{
		ch:           ch,
		prefetch:     50,
		callTimeout:  10 * time.Second,
		requeueOnErr: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logging.New("rmq-router")
	}
	return r
}

// Register associates a queue with a handler. Call multiple times for multiple queues.
func (r *Router) Register(queueName string, h Handler) {
	r.registrations = append(r.registrations, registration{
		queueName:   queueName,
		handler:     h,
		consumerTag: "c_" + queueName,
	})
}

// Start begins consuming; non-blocking (spawns one goroutine per queue).
// QoS (prefetch) is set per-channel and applies to all consumers on this channel.
// Handler contexts derive from ctx; consumers stop when the channel closes.
func (r *Router) Start(ctx context.Context) error {
	if err := r.ch.Qos(r.prefetch, 0, false); err != nil {
		return err
	}

	for _, reg := range r.registrations {
		deliveries, err := r.ch.Consume(
			reg.queueName,
			reg.consumerTag,
			false, // manual ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return err
		}

		r.wg.Add(1)
		go func(reg registration, msgs <-chan amqp.Delivery) {
			defer r.wg.Done()
			l := r.log.With("queue", reg.queueName, "tag", reg.consumerTag)
			for d := range msgs {
				r.dispatch(ctx, l, reg.handler, d)
			}
			l.Info("consumer stopped")
		}(reg, deliveries)
	}

	return nil
}

// Wait blocks until every consumer goroutine has returned.
func (r *Router) Wait() { r.wg.Wait() }

func (r *Router) dispatch(parent context.Context, l *slog.Logger, h Handler, d amqp.Delivery) {
	dl := l.With("rk", d.RoutingKey, "msg_id", d.MessageId)
	ctx, cancel := context.WithTimeout(logging.WithCtx(parent, dl), r.callTimeout)
	err := h.Handle(ctx, d)
	cancel()

	if err == nil {
		_ = d.Ack(false)
		return
	}
	// one redelivery at most; a second failure drops the message
	requeue := r.requeueOnErr && !d.Redelivered && !errors.Is(err, ErrPoison)
	dl.Error("handler error", "error", err, "requeue", requeue)
	_ = d.Nack(false, requeue)
}
