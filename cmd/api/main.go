package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wklejka/docs"
	"wklejka/internal/blob"
	bloblocal "wklejka/internal/blob/local"
	blobminio "wklejka/internal/blob/minio"
	"wklejka/internal/bus"
	"wklejka/internal/config"
	"wklejka/internal/docstore"
	handlers "wklejka/internal/http/handler"
	"wklejka/internal/http/middleware"
	"wklejka/internal/logging"
	"wklejka/internal/otel"
	"wklejka/internal/service"
)

// @title Wklejka API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)

	shutdownTracing, err := otel.Init(context.Background(), logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}

	// Select the blob store backend (local filesystem by default)
	var blobs blob.Store
	switch cfg.BlobBackend {
	case config.BlobBackendMinIO:
		blobs, err = blobminio.New(cfg.MinIO)
	default:
		blobs, err = bloblocal.New(cfg.DataDir)
	}
	if err != nil {
		log.Fatalf("failed to initialize blob store: %v", err)
	}

	// The JSON document store bootstraps the default board on first run
	store, err := docstore.Open(cfg.StorePath(), cfg.FlushDebounce, logger)
	if err != nil {
		log.Fatalf("failed to open document store: %v", err)
	}

	svc := service.NewClipboardService(store, blobs, logger)
	events := bus.NewBroadcaster(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ws_subscribers",
		Help: "Number of currently connected websocket viewers.",
	}, func() float64 { return float64(events.SubscriberCount()) }))

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    50 * 1024 * 1024, // data URLs for pasted images/files
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, svc, blobs, events, cfg.DataDir)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Browser UI, when a public directory is deployed alongside the binary
	if st, err := os.Stat(cfg.PublicDir); err == nil && st.IsDir() {
		app.Static("/", cfg.PublicDir)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	// Final flush so the debounce window cannot drop the last mutations
	if err := store.Close(); err != nil {
		logger.Error("document store close failed", "error", err)
	}
	if err := shutdownTracing(context.Background()); err != nil {
		logger.Error("tracing shutdown failed", "error", err)
	}
}
