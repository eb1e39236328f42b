package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/transport"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "run the HTTP API",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := openPool(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	pricing := cfg.Pricing()
	logger := log.StandardLogger()

	products := repository.NewProduct(pool)
	carts := service.NewCartService(repository.NewCart(pool, pricing.Currency), products, pricing.Currency, logger)

	var orderOpts []service.OrderOption
	if cfg.Redis.Addr != "" {
		rdb, err := openRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()

		orderOpts = append(orderOpts, service.WithIdempotency(repository.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)))
	} else {
		log.Warn("redis.addr is empty, order idempotency keys are ignored")
	}

	orders := service.NewOrderService(repository.NewOrder(pool), products, carts, pricing, logger, orderOpts...)
	catalog := service.NewCatalogService(products, pricing.Currency, logger)
	contact := service.NewContactService(repository.NewContact(pool), logger)

	handler := transport.NewHandler(carts, orders, catalog, contact, logger)
	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Router()}

	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"addr": cfg.HTTP.Addr}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	case <-ctx.Done():
		log.Info("Got shutdown signal...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

func openRedis(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("rdb.Ping: %w", err)
	}

	return rdb, nil
}
