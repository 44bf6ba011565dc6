package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	httpAdapter "github.com/curaclinic/ledger/internal/adapter/http"
	"github.com/curaclinic/ledger/internal/adapter/http/handler"
	"github.com/curaclinic/ledger/internal/adapter/http/middleware"
	postgresRepo "github.com/curaclinic/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/curaclinic/ledger/internal/adapter/repository/redis"
	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/infrastructure/auth"
	"github.com/curaclinic/ledger/internal/infrastructure/config"
	"github.com/curaclinic/ledger/internal/infrastructure/logger"
	"github.com/curaclinic/ledger/internal/infrastructure/metrics"
	"github.com/curaclinic/ledger/internal/infrastructure/postgres"
	"github.com/curaclinic/ledger/internal/infrastructure/redis"
	"github.com/curaclinic/ledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "ledger"})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	patientRepo := postgresRepo.NewPatientRepository(pool)
	doctorRepo := postgresRepo.NewDoctorRepository(pool)
	supplierRepo := postgresRepo.NewSupplierRepository(pool)
	treatmentRepo := postgresRepo.NewTreatmentRepository(pool)
	appointmentRepo := postgresRepo.NewAppointmentRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	voucherRepo := postgresRepo.NewVoucherRepository(pool)
	activityRepo := postgresRepo.NewActivityRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	rules := domain.PostingRules{SupplierBalanceTracking: cfg.SupplierBalanceTracking}
	defaultDoctorPct := decimal.NewFromFloat(cfg.DefaultDoctorPercentage)

	// Use cases
	registryUC := usecase.NewRegistryUseCase(txManager, accountRepo, activityRepo, idGen)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, txRepo, activityRepo, idGen, retrier, rules, m)
	appointmentUC := usecase.NewAppointmentUseCase(txManager, accountRepo, txRepo, appointmentRepo,
		patientRepo, doctorRepo, treatmentRepo, activityRepo, idGen, rules)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, txRepo, paymentRepo, appointmentRepo,
		patientRepo, doctorRepo, supplierRepo, treatmentRepo, expenseRepo, voucherRepo, activityRepo,
		idGen, retrier, rules, m)
	directoryUC := usecase.NewDirectoryUseCase(txManager, accountRepo, patientRepo, doctorRepo,
		supplierRepo, treatmentRepo, activityRepo, idGen, defaultDoctorPct)
	summaryUC := usecase.NewSummaryUseCase(accountRepo, txRepo, patientRepo, doctorRepo, supplierRepo, reportRepo, cache)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, txRepo, rules)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(registryUC),
		TransactionHandler:    handler.NewTransactionHandler(postingUC),
		AppointmentHandler:    handler.NewAppointmentHandler(appointmentUC),
		PaymentHandler:        handler.NewPaymentHandler(paymentUC),
		DirectoryHandler:      handler.NewDirectoryHandler(directoryUC),
		SummaryHandler:        handler.NewSummaryHandler(summaryUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		ActivityHandler:       handler.NewActivityHandler(activityRepo),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		JWTManager:            jwtManager,
		AuthEnabled:           cfg.AuthEnabled,
		RateLimiter:           rateLimiter,
		Logger:                log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
