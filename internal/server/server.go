// Package server boots the application: configuration, database, cache,
// storage and the HTTP and gRPC listeners, with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoparts/app/routes"
	"autoparts/config"
	_ "autoparts/database/migrations" // register migrations
	"autoparts/pkg/cache"
	"autoparts/pkg/database"
	grpcserver "autoparts/pkg/grpc"
	"autoparts/pkg/logger"
	"autoparts/pkg/metrics"
	"autoparts/pkg/middleware"
	"autoparts/pkg/migration"
	"autoparts/pkg/reqid"
	"autoparts/pkg/router"
	"autoparts/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// mongoSink is the optional Mongo log tee, closed on shutdown.
var mongoSink *logger.MongoHandler

// Boot loads configuration and connects every backing service. Redis is
// optional: without it the app runs with caching disabled.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.NewMongoHandler(slog.Default().Handler(), uri, config.MongoLogDB(), "logs")
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			logger.SetHandler(h)
			mongoSink = h
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	return migration.New(database.DB).Run()
}

// BuildHandler assembles the global middleware stack and mounts every
// route. Exposed separately so tests can drive the full handler without
// binding a port.
//
// Stack order (outermost first):
//  1. Prometheus metrics, outermost for accurate total latency
//  2. Recovery, catches panics before they kill the goroutine
//  3. Request ID, injected before anything logs
//  4. Logger, logs request_id from context
//  5. CORS
//  6. Rate limiter
func BuildHandler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.CORSOptionsFor(config.CORSAllowedOrigins())))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus endpoint, no auth and no rate limit.
	r.HandleFunc("/metrics", metrics.Handler())

	// Product images from the local disk.
	r.Static("/uploads", storage.LocalRoot())

	routes.RegisterAPI(r)

	return r.Handler()
}

// Start boots the app and serves until SIGINT/SIGTERM.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("http server started", "addr", httpSrv.Addr, "env", config.AppEnv())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		grpcserver.Stop(grpcSrv)
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcserver.Stop(grpcSrv)
	err = httpSrv.Shutdown(ctx)

	if mongoSink != nil {
		mongoSink.Close() //nolint:errcheck
	}

	return err
}
