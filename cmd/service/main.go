package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dlukin/weather-lookup-service/internal/client"
	"github.com/dlukin/weather-lookup-service/internal/config"
	httphandler "github.com/dlukin/weather-lookup-service/internal/http"
	"github.com/dlukin/weather-lookup-service/internal/observability"
	"github.com/dlukin/weather-lookup-service/internal/store"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	recordStore, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("store", zap.Error(err))
	}
	logger.Info("store ready", zap.String("path", cfg.DatabasePath))

	weatherClient := client.NewOpenMeteoClient(
		cfg.UpstreamURL,
		cfg.UpstreamStatusURL,
		cfg.UpstreamTimeout,
		cfg.ProbeTimeout,
	)

	handler := httphandler.NewHandler(weatherClient, recordStore, logger, cfg.Provider)

	router := mux.NewRouter()
	router.Use(httphandler.RequestIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/", handler.GetRoot).Methods("GET")
	router.HandleFunc("/weather/{city}", handler.GetWeather).Methods("GET")
	router.HandleFunc("/history/", handler.GetHistory).Methods("GET")
	router.HandleFunc("/weather-codes", handler.GetWeatherCodes).Methods("GET")
	router.HandleFunc("/available-cities", handler.GetAvailableCities).Methods("GET")
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// The exporter also listens on its own port so scrapers stay off the
	// application listener.
	metricsSrv := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: observability.MetricsHandler(),
	}

	go func() {
		logger.Info("metrics server starting", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("provider", cfg.Provider))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
