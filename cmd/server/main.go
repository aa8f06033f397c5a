package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/loanworks/loan-engine/internal/application/usecase"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/service"
	"github.com/loanworks/loan-engine/internal/infrastructure/config"
	"github.com/loanworks/loan-engine/internal/infrastructure/messaging"
	"github.com/loanworks/loan-engine/internal/infrastructure/observability"
	pgRepo "github.com/loanworks/loan-engine/internal/infrastructure/persistence/postgres"
	"github.com/loanworks/loan-engine/internal/presentation/rest"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(cfg.Log)
	logger.Info("starting loan engine", "http_port", cfg.HTTPPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database -----------------------------------------------------------
	pool, err := pgRepo.NewPool(ctx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if cfg.MigrationsDir != "" {
		if err := pgRepo.RunMigrations(pgRepo.DSN(cfg.DB), cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied", "dir", cfg.MigrationsDir)
	}

	// --- Observability ------------------------------------------------------
	meterProvider, metrics, metricsHandler, err := observability.InitMetrics(cfg.ServiceName)
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("meter provider shutdown error", "error", err)
		}
	}()

	// --- Infrastructure adapters -------------------------------------------
	loanRepo := pgRepo.NewLoanRepo(pool)
	producer := messaging.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)

	// --- Domain services ----------------------------------------------------
	rounder := money.New(cfg.Engine.Precision)
	distributor := service.NewDistributor(rounder)
	generator := service.NewScheduleGenerator(distributor)
	classifier := service.NewDelinquencyClassifier(rounder)

	// --- Use cases ----------------------------------------------------------
	createUC := usecase.NewCreateLoanUseCase(generator, rounder, loanRepo, publisher)
	repaymentUC := usecase.NewMakeRepaymentUseCase(rounder, loanRepo, publisher)
	delinquencyUC := usecase.NewCheckDelinquencyUseCase(classifier, loanRepo)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)

	// --- HTTP server --------------------------------------------------------
	router := mux.NewRouter()
	loanHandler := rest.NewLoanHandler(createUC, repaymentUC, delinquencyUC, getLoanUC, cfg.Engine, metrics, logger)
	loanHandler.RegisterRoutes(router)
	healthHandler := rest.NewHealthHandler(pool)
	healthHandler.RegisterRoutes(router)
	router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan engine stopped")
}
