package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/farmwise/crop-advisor/internal/adapter/geocode"
	httpadapter "github.com/farmwise/crop-advisor/internal/adapter/http"
	kafkaadapter "github.com/farmwise/crop-advisor/internal/adapter/kafka"
	"github.com/farmwise/crop-advisor/internal/adapter/market"
	"github.com/farmwise/crop-advisor/internal/adapter/openmeteo"
	"github.com/farmwise/crop-advisor/internal/balance"
	"github.com/farmwise/crop-advisor/internal/config"
	"github.com/farmwise/crop-advisor/internal/domain"
	"github.com/farmwise/crop-advisor/internal/engine"
	"github.com/farmwise/crop-advisor/internal/groundwater"
	"github.com/farmwise/crop-advisor/internal/observability"
	"github.com/farmwise/crop-advisor/internal/risk"
	"github.com/farmwise/crop-advisor/internal/satellite"
	"github.com/farmwise/crop-advisor/internal/watercost"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	catalog := domain.CropCatalog()
	index := domain.NewStaticBlockIndex(domain.BlockCatalog())

	// Reverse geocoder is feature-flagged; the spatial index answers alone
	// when it is off.
	var geocoder domain.ReverseGeocoder
	if cfg.GeocoderEnabled {
		client := geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderTimeout, logger)
		geocoder = geocode.NewCachedGeocoder(client, cfg.GeocoderCacheSize)
		logger.Info("reverse geocoding enabled", "cache_size", cfg.GeocoderCacheSize, "timeout", cfg.GeocoderTimeout)
	} else {
		logger.Info("reverse geocoding disabled, using spatial index only")
	}

	status := groundwater.NewProvider(logger, groundwater.WithClock(clock), groundwater.WithMetrics(metrics))
	sat := satellite.NewProvider(satellite.DefaultGrid(clock.Now()))
	climate := openmeteo.NewClient(cfg.ClimateURL, cfg.ClimateTimeout, logger)
	estimator := balance.New(index, status, sat, climate, geocoder, clock, logger,
		balance.WithMetrics(metrics), balance.WithTrendMonths(cfg.SatelliteTrendMonths))

	var publisher engine.Publisher
	var sink *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		sink = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaAdvisoryTopic, logger)
		publisher = sink
		logger.Info("advisory kafka sink enabled", "topic", cfg.KafkaAdvisoryTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("advisory kafka sink disabled")
	}

	eng := engine.New(
		catalog,
		estimator,
		market.NewStaticSource(catalog),
		watercost.New(),
		risk.New(),
		publisher,
		clock,
		logger,
		metrics,
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, eng, estimator, eng, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
