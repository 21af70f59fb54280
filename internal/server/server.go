// Package server boots the whole application: configuration, database,
// cache, storage, event listeners, the HTTP server and the optional gRPC
// side server, then blocks until shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rrboots/storefront/app/routes"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/config"
	"github.com/rrboots/storefront/database/seeders"
	"github.com/rrboots/storefront/pkg/cache"
	"github.com/rrboots/storefront/pkg/database"
	rpc "github.com/rrboots/storefront/pkg/grpc"
	"github.com/rrboots/storefront/pkg/logger"
	"github.com/rrboots/storefront/pkg/metrics"
	"github.com/rrboots/storefront/pkg/middleware"
	"github.com/rrboots/storefront/pkg/migration"
	"github.com/rrboots/storefront/pkg/reqid"
	"github.com/rrboots/storefront/pkg/router"
	"github.com/rrboots/storefront/pkg/storage"
	"github.com/rrboots/storefront/pkg/ws"
)

const shutdownGrace = 10 * time.Second

// Start boots every subsystem and serves until SIGINT or SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.LogMongoURI(); uri != "" {
		if sink, err := logger.AttachMongoSink(uri); err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			defer sink.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	// The settings row must exist before the first login attempt.
	if err := seeders.SeedSiteConfig(database.DB); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("running without cache", "error", err)
	}
	storage.Connect()

	services.WireCache()
	services.RegisterCacheInvalidation()
	services.RegisterSaleListeners()
	go ws.OrderFeed.Run()

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.Register(r)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err := rpc.Start(port)
		if err != nil {
			return err
		}
		defer rpc.Stop(grpcSrv)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}
