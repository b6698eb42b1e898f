package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ardentsoft/stroypos/internal/application/service"
	"github.com/ardentsoft/stroypos/internal/backend"
	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/presentation/http/handler"
	"github.com/ardentsoft/stroypos/internal/presentation/http/routes"
	"github.com/ardentsoft/stroypos/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	var logger *zap.Logger
	var err error
	if cfg.App.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the sales backend
	client := backend.NewClient(&cfg.Backend, logger)
	defer client.Close()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.Warn("failed to initialize printer, falling back to backend relay", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	cartService := service.NewCartService(logger)
	orderService := service.NewOrderService(cartService, client, logger)
	printerService := service.NewPrinterService(thermalPrinter, client, &cfg.Shop, &cfg.Printer, logger)
	dashboardService := service.NewDashboardService(client, logger)

	// Start the pending-order poller
	poller := service.NewPendingPoller(client, &cfg.Poll, logger)
	go poller.Run(ctx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:   handler.NewProductHandler(client),
		Cart:      handler.NewCartHandler(cartService, client),
		Order:     handler.NewOrderHandler(orderService, printerService, poller, client),
		Receipt:   handler.NewReceiptHandler(printerService),
		Printer:   handler.NewPrinterHandler(printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:    cfg,
		Logger: logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8090"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("starting terminal",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
