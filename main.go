package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/cache"
	"github.com/nikolayk812/shopcart/internal/checkout"
	"github.com/nikolayk812/shopcart/internal/config"
	"github.com/nikolayk812/shopcart/internal/db"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/event"
	api "github.com/nikolayk812/shopcart/internal/http"
	"github.com/nikolayk812/shopcart/internal/logging"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
	"github.com/nikolayk812/shopcart/internal/service"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("shopcart stopped", "error", err)
		os.Exit(1)
	}
}

type storage struct {
	products port.ProductRepository
	carts    port.CartRepository
	orders   port.OrderRepository
	uow      port.UnitOfWork
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer closeStore()

	cartCache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("openCache: %w", err)
	}
	defer closeCache()

	publisher, closePublisher, err := openPublisher(cfg, logger)
	if err != nil {
		return fmt.Errorf("openPublisher: %w", err)
	}
	defer closePublisher()

	catalog, err := service.NewCatalogService(store.products, logger)
	if err != nil {
		return fmt.Errorf("service.NewCatalogService: %w", err)
	}

	carts, err := service.NewCartService(store.carts, store.products, cartCache, logger)
	if err != nil {
		return fmt.Errorf("service.NewCartService: %w", err)
	}

	pipeline, err := checkout.NewPipeline(store.uow, domain.DefaultPricing)
	if err != nil {
		return fmt.Errorf("checkout.NewPipeline: %w", err)
	}

	orders, err := service.NewOrderService(pipeline, store.orders, carts, publisher, logger)
	if err != nil {
		return fmt.Errorf("service.NewOrderService: %w", err)
	}

	router := api.NewRouter(api.Handlers{
		Products: api.NewProductHandler(catalog, logger, cfg.RequestTimeout),
		Carts:    api.NewCartHandler(carts, logger, cfg.RequestTimeout),
		Orders:   api.NewOrderHandler(orders, logger, cfg.RequestTimeout),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.HTTPPort)),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL is empty, using in-memory storage")

		store := repository.NewMemoryStore()
		return storage{
			products: store.Products(),
			carts:    store.Carts(),
			orders:   store.Orders(),
			uow:      store,
		}, func() {}, nil
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return storage{}, nil, fmt.Errorf("db.Migrate: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return storage{}, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return storage{}, nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return storage{
		products: repository.NewProduct(pool),
		carts:    repository.NewCart(pool),
		orders:   repository.NewOrder(pool),
		uow:      repository.NewUnitOfWork(pool),
	}, pool.Close, nil
}

func openCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.CartCache, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is empty, cart cache disabled")
		return cache.Noop{}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn("redis close failed", "error", err)
		}
	}

	if err := client.Ping(ctx).Err(); err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("client.Ping: %w", err)
	}

	cartCache, err := cache.NewRedisCache(client, cfg.CartCacheTTL)
	if err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("cache.NewRedisCache: %w", err)
	}

	return cartCache, closeClient, nil
}

func openPublisher(cfg config.Config, logger *slog.Logger) (port.EventPublisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS is empty, order events are not published")
		return event.Noop{}, func() {}, nil
	}

	writer, err := event.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	if err != nil {
		return nil, nil, fmt.Errorf("event.NewKafkaWriter: %w", err)
	}

	publisher, err := event.NewKafkaPublisher(writer)
	if err != nil {
		return nil, nil, fmt.Errorf("event.NewKafkaPublisher: %w", err)
	}

	closeWriter := func() {
		if err := writer.Close(); err != nil {
			logger.Warn("kafka writer close failed", "error", err)
		}
	}

	return publisher, closeWriter, nil
}
