package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aq2208/gorder-workflow/configs"
	"github.com/aq2208/gorder-workflow/internal/adapter/cache"
	grpcadapter "github.com/aq2208/gorder-workflow/internal/adapter/grpc"
	httpadapter "github.com/aq2208/gorder-workflow/internal/adapter/http"
	"github.com/aq2208/gorder-workflow/internal/adapter/http/middleware"
	"github.com/aq2208/gorder-workflow/internal/adapter/kafka"
	"github.com/aq2208/gorder-workflow/internal/adapter/letter"
	"github.com/aq2208/gorder-workflow/internal/adapter/observ"
	"github.com/aq2208/gorder-workflow/internal/adapter/queue"
	"github.com/aq2208/gorder-workflow/internal/adapter/repo"
	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/aq2208/gorder-workflow/internal/security"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

const catalogRefreshInterval = time.Minute

type App struct {
	Router *gin.Engine
}

// InitWithConfig connects every collaborator and builds the HTTP router and
// queue consumer. ctx bounds the background workers; cleanup closes
// connections in reverse order.
func InitWithConfig(ctx context.Context, cfg configs.Config) (_ *App, _ func(), err error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	defer func() {
		if err != nil {
			closeAll()
		}
	}()

	l := logging.Init(logging.Options{Component: cfg.App.Name, FilePath: cfg.App.LogFile, Level: cfg.App.LogLevel})
	if logging.ParseLevel(cfg.App.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	l.Info("order-api: starting up")

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// catalog database
	db, err := repo.Open(startCtx, cfg.Catalog.Driver, cfg.Catalog.DSN, repo.PoolConfig{
		MaxOpenConns:    cfg.Catalog.MaxOpenConns,
		MaxIdleConns:    cfg.Catalog.MaxIdleConns,
		ConnMaxLifetime: cfg.Catalog.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() { _ = db.Close() })
	if err := repo.EnsureSchema(startCtx, db); err != nil {
		return nil, nil, err
	}
	catalog := repo.NewSQLCatalog(db)
	if err := catalog.Refresh(startCtx); err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	go catalog.Run(ctx, catalogRefreshInterval)

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	closers = append(closers, func() { _ = rdb.Close() })
	if err := rdb.Ping(startCtx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	// gRPC: remote address verification
	grpcConn, err := grpcadapter.Dial(cfg.AddressService)
	if err != nil {
		return nil, nil, fmt.Errorf("dial address service: %w", err)
	}
	closers = append(closers, func() { _ = grpcConn.Close() })
	var addresses usecase.AddressChecker = grpcadapter.NewAddressClient(grpcConn, cfg.AddressService.Timeout, cfg.App.Name)
	if cfg.AddressCache.TTL > 0 {
		addresses = cache.NewAddressCache(rdb, addresses, cfg.AddressCache.TTL)
	}

	// kafka: acknowledgment letters
	producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers, cfg.App.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	closers = append(closers, func() { _ = producer.Close() })
	sender := kafka.NewAckSender(producer, cfg.Kafka.AckTopic)

	// rabbitmq: event publishing + order intake
	amqpConn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	closers = append(closers, func() { _ = amqpConn.Close() })
	pubCh, err := amqpConn.Channel()
	if err != nil {
		return nil, nil, err
	}
	if err := queue.DeclareTopology(pubCh, cfg.Rabbit.Exchange, cfg.Rabbit.PlaceOrderQueue); err != nil {
		return nil, nil, err
	}
	if err := pubCh.Confirm(false); err != nil {
		return nil, nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	metrics := observ.NewMetrics(prometheus.DefaultRegisterer)
	placeOrder := usecase.NewPlaceOrder(
		catalog,
		addresses,
		usecase.NewPricingFunction(catalog, catalog),
		letter.NewWriter(),
		sender,
		usecase.WithPublisher(metrics.CountFailures(queue.NewRabbitPublisher(pubCh, cfg.Rabbit.Exchange))),
	)

	consCh, err := amqpConn.Channel()
	if err != nil {
		return nil, nil, err
	}
	intake := queue.NewPlaceOrderHandler(metrics.Instrument(placeOrder, "queue"))
	consumer := queue.NewRouter(consCh, queue.WithPrefetch(cfg.Rabbit.Prefetch), queue.WithLogger(logging.New("rmq-router")))
	consumer.Register(cfg.Rabbit.PlaceOrderQueue, intake.Handler())
	if err := consumer.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("start consumer: %w", err)
	}

	// init handlers + routers + middleware
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	h := httpadapter.NewOrderHandler(metrics.Instrument(placeOrder, "http"), idem, cfg.HTTP.RequestTimeout)
	th := httpadapter.NewTokenHandler(cfg.Security, security.NewClients(toClients(cfg.Security.Clients)))
	authz := middleware.NewAuthz(cfg.Security)
	router := httpadapter.NewRouter(logging.New("http"), h, th, authz)

	return &App{Router: router}, closeAll, nil
}

func toClients(in []configs.Client) []security.Client {
	out := make([]security.Client, 0, len(in))
	for _, c := range in {
		out = append(out, security.Client{ID: c.ID, Secret: c.Secret, Perms: c.Perms, Enabled: c.Enabled})
	}
	return out
}
