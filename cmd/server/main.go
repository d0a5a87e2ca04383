package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lavanderia/backend/internal/config"
	"github.com/lavanderia/backend/internal/database"
	"github.com/lavanderia/backend/internal/handler"
	"github.com/lavanderia/backend/internal/middleware"
	"github.com/lavanderia/backend/internal/repository"
	"github.com/lavanderia/backend/internal/service"
	"github.com/lavanderia/backend/internal/templates"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	handler.SetupSwagger(router)
	setupAPIRoutes(router, pool)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, pool *pgxpool.Pool) {
	clientRepo := repository.NewClientRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	stockRepo := repository.NewStockRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	clientService := service.NewClientService(clientRepo)
	orderService := service.NewOrderService(orderRepo, clientRepo)
	stockService := service.NewStockService(stockRepo)
	ledgerService := service.NewLedgerService(ledgerRepo)
	feeStore := service.NewFeeConfigStore(settingsRepo)
	reconciler := service.NewPaymentReconciler(orderRepo, feeStore)
	dashboardService := service.NewDashboardService(dashboardRepo)
	reportService := service.NewReportService(ledgerRepo, orderRepo, templates.ReportHTML)

	clientHandler := handler.NewClientHandler(clientService)
	orderHandler := handler.NewOrderHandler(orderService)
	stockHandler := handler.NewStockHandler(stockService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	paymentHandler := handler.NewPaymentHandler(reconciler, feeStore, dashboardService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService)

	api := router.Group("/api/v1")
	{
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients", clientHandler.List)
		api.GET("/clients/:id", clientHandler.Get)
		api.PUT("/clients/:id", clientHandler.Update)
		api.DELETE("/clients/:id", clientHandler.Delete)

		api.POST("/orders", orderHandler.Create)
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		api.DELETE("/orders/:id", orderHandler.Delete)

		api.POST("/orders/:id/payment", paymentHandler.Confirm)
		api.DELETE("/orders/:id/payment", paymentHandler.Revert)
		api.POST("/payments/recalculate", paymentHandler.RecalculateAll)
		api.GET("/settings/fees", paymentHandler.GetFees)
		api.PUT("/settings/fees", paymentHandler.SaveFees)

		api.POST("/stock", stockHandler.Create)
		api.GET("/stock", stockHandler.List)
		api.GET("/stock/:id", stockHandler.Get)
		api.PUT("/stock/:id", stockHandler.Update)
		api.POST("/stock/:id/movements", stockHandler.ApplyMovement)
		api.DELETE("/stock/:id", stockHandler.Delete)

		api.POST("/ledger", ledgerHandler.Create)
		api.GET("/ledger", ledgerHandler.List)
		api.GET("/ledger/:id", ledgerHandler.Get)
		api.DELETE("/ledger/:id", ledgerHandler.Delete)
		api.GET("/ledger-summary", ledgerHandler.MonthlySummary)

		api.GET("/dashboard", dashboardHandler.Get)
		api.GET("/reports/financial", reportHandler.GetFinancialReport)
	}
}
