package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/torchtask/taskhub/internal/config"
	"github.com/torchtask/taskhub/internal/db"
	httpx "github.com/torchtask/taskhub/internal/http"
	"github.com/torchtask/taskhub/internal/observability"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing is opt-in; a dev box without a collector should still boot
	if cfg.TracingEnabled {
		ctx, cancel := config.WithTimeout(5 * time.Second)

		shutdownTracer, err := observability.InitTracer(ctx, "taskhub", cfg.OTLPEndpoint)

		cancel()

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("database connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	migrateCtx, cancelMigrate := config.WithTimeout(10 * time.Second)

	err = db.Migrate(migrateCtx, pool)

	cancelMigrate()

	if err != nil {
		log.Error("schema migration failed", "err", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(registry)

	router := httpx.NewRouter(log, pool, cfg, prom, registry)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
