package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	casehandler "casefile/internal/casefile/handler"
	casemetrics "casefile/internal/casefile/metrics"
	"casefile/internal/casefile/reconcile"
	"casefile/internal/casefile/service"
	"casefile/internal/platform/config"
	"casefile/internal/platform/httpserver"
	"casefile/internal/platform/logger"
	platmetrics "casefile/internal/platform/metrics"
	httptransport "casefile/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	processMetrics := platmetrics.New()
	engineMetrics := casemetrics.New()

	// Detail catalogs are supplied by the surrounding application; the
	// server starts without any and hydration degrades to bare ids.
	svc := service.New(log, engineMetrics, cfg.ReferenceDate, reconcile.DetailCatalogs{})
	router := httptransport.NewRouter(casehandler.New(svc, log, processMetrics))

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting casefile server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
