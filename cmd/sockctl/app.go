package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sockshoplabs/storefront-go/internal/admins"
	"github.com/sockshoplabs/storefront-go/internal/auth"
	"github.com/sockshoplabs/storefront-go/internal/cart"
	"github.com/sockshoplabs/storefront-go/internal/catalog"
	"github.com/sockshoplabs/storefront-go/internal/checkout"
	"github.com/sockshoplabs/storefront-go/internal/newsletter"
	"github.com/sockshoplabs/storefront-go/internal/orders"
	"github.com/sockshoplabs/storefront-go/pkg/config"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
	"github.com/sockshoplabs/storefront-go/pkg/metrics"
	"github.com/sockshoplabs/storefront-go/pkg/querycache"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
	"github.com/sockshoplabs/storefront-go/pkg/storage"
)

// app wires the storefront clients over a shared transport, cache, and
// durable store. Built once per invocation.
type app struct {
	cfg  *config.Config
	logg *logger.Logger

	cart       *cart.Manager
	auth       *auth.Client
	catalog    *catalog.Client
	orders     *orders.Client
	admins     *admins.Client
	newsletter *newsletter.Client
	checkout   *checkout.Client

	close func() error
}

func newApp(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*app, error) {
	var (
		store    storage.Store
		closeFn  = func() error { return nil }
	)
	if cfg.Storage.IsRedis() {
		redisStore, err := storage.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis storage: %w", err)
		}
		store = redisStore
		closeFn = redisStore.Close
	} else {
		fileStore, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("bootstrap file storage: %w", err)
		}
		store = fileStore
	}

	sessions, err := auth.NewSessionStore(store)
	if err != nil {
		return nil, err
	}
	transport, err := rest.NewClient(cfg.API, sessions, logg)
	if err != nil {
		return nil, err
	}
	cache := querycache.New(cfg.Cache, metrics.NewQueryCacheMetrics(prometheus.NewRegistry()))

	manager, err := cart.NewManager(store, logg)
	if err != nil {
		return nil, err
	}
	restored, err := manager.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore cart: %w", err)
	}
	if restored.Recovered {
		fmt.Println("Your saved cart could not be restored and was reset.")
	}

	authClient, err := auth.NewClient(transport, sessions, logg)
	if err != nil {
		return nil, err
	}
	catalogClient, err := catalog.NewClient(transport, cache)
	if err != nil {
		return nil, err
	}
	ordersClient, err := orders.NewClient(transport, cache)
	if err != nil {
		return nil, err
	}
	adminsClient, err := admins.NewClient(transport, cache)
	if err != nil {
		return nil, err
	}
	newsletterClient, err := newsletter.NewClient(transport)
	if err != nil {
		return nil, err
	}
	checkoutClient, err := checkout.NewClient(transport, manager, cache, cfg.Checkout, logg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		logg:       logg,
		cart:       manager,
		auth:       authClient,
		catalog:    catalogClient,
		orders:     ordersClient,
		admins:     adminsClient,
		newsletter: newsletterClient,
		checkout:   checkoutClient,
		close:      closeFn,
	}, nil
}
