package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"marketsnap/internal/adapters/cache"
	"marketsnap/internal/adapters/httpclient"
	"marketsnap/internal/api"
	"marketsnap/internal/config"
	"marketsnap/internal/market"
	"marketsnap/internal/market/handler"
	httpserver "marketsnap/internal/platform/http"
)

// Run wires the application components, starts the refresh scheduler, the
// pruner and the HTTP server.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Rate-limit tracker, fed by every provider response
	limits := market.NewRateLimitTracker(appCfg.Provider.SafetyMargin)

	// Provider client; per-call timeouts are the only cancellation points
	baseHTTPClient := &http.Client{}
	bitvavoClient := httpclient.NewBitvavoClient(
		baseHTTPClient,
		appCfg.Provider.BaseURL,
		time.Duration(appCfg.Provider.ListTimeoutSeconds)*time.Second,
		time.Duration(appCfg.Provider.FetchTimeoutSeconds)*time.Second,
		limits,
	)

	// Snapshot store, single instance for the process lifetime
	store := market.NewStore(nil)

	// Refresh scheduler
	enrichCfg := market.EnrichConfig{
		Workers:       appCfg.Enrich.Workers,
		DepthFraction: appCfg.Enrich.DepthFraction,
		CandleWindow:  time.Duration(appCfg.Enrich.CandleWindowSeconds) * time.Second,
		RequestCost:   appCfg.Enrich.RequestCost,
	}
	scheduler := market.NewScheduler(
		store,
		bitvavoClient,
		limits,
		time.Duration(appCfg.Scheduler.RefreshSeconds)*time.Second,
		time.Duration(appCfg.Scheduler.BootstrapBackoffSeconds)*time.Second,
		enrichCfg,
	)
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Refresh scheduler activation successful")

	// TTL pruner on its own timer
	pruner := market.NewPruner(
		store,
		time.Duration(appCfg.Pruner.TTLSeconds)*time.Second,
		time.Duration(appCfg.Pruner.IntervalSeconds)*time.Second,
	)
	defer func() {
		if shutDownErr := pruner.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Pruner shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := pruner.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start pruner")
		return startErr
	}
	logrus.Info("✅ Pruner activation successful")

	// View cache for the query surface
	viewCache, err := cache.NewViewCache(appCfg.ViewCache.MaxItems, time.Duration(appCfg.ViewCache.TTLSeconds)*time.Second)
	if err != nil {
		logrus.WithError(err).Error("Failed to create view cache")
		return err
	}
	defer viewCache.Close()

	// Handlers and router
	marketService := market.NewService(store, viewCache)
	marketValidator := market.NewValidator()
	marketHandler := handler.NewMarketHandler(marketValidator, marketService)
	router := api.NewRouter(marketHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
