package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/curaclinic/ledger/internal/adapter/http/handler"
	"github.com/curaclinic/ledger/internal/adapter/http/middleware"
	"github.com/curaclinic/ledger/internal/infrastructure/auth"
	"github.com/curaclinic/ledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	TransactionHandler    *handler.TransactionHandler
	AppointmentHandler    *handler.AppointmentHandler
	PaymentHandler        *handler.PaymentHandler
	DirectoryHandler      *handler.DirectoryHandler
	SummaryHandler        *handler.SummaryHandler
	ReconciliationHandler *handler.ReconciliationHandler
	ActivityHandler       *handler.ActivityHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	JWTManager            *auth.JWTManager
	AuthEnabled           bool
	RateLimiter           *middleware.RateLimiter
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.GetOrCreate)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/overview", cfg.SummaryHandler.Overview)
			r.Get("/by-holder/{type}/{holderID}", cfg.AccountHandler.GetByHolder)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/statement", cfg.SummaryHandler.Statement)
			r.Get("/{id}/reconcile", cfg.ReconciliationHandler.Account)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Post)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Post("/{id}/reverse", cfg.TransactionHandler.Reverse)
		})

		// Appointments
		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", cfg.AppointmentHandler.Create)
			r.Get("/{id}", cfg.AppointmentHandler.Get)
			r.Put("/{id}/status", cfg.AppointmentHandler.UpdateStatus)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/{id}", cfg.PaymentHandler.Get)
		})

		// Patients
		r.Route("/patients", func(r chi.Router) {
			r.Post("/", cfg.DirectoryHandler.CreatePatient)
			r.Get("/", cfg.DirectoryHandler.ListPatients)
			r.Get("/{id}", cfg.DirectoryHandler.GetPatient)
			r.Get("/{id}/appointments", cfg.AppointmentHandler.ListByPatient)
			r.Get("/{id}/payments", cfg.PaymentHandler.ListByPatient)
			r.Get("/{id}/summary", cfg.SummaryHandler.Patient)
		})

		// Doctors
		r.Route("/doctors", func(r chi.Router) {
			r.Post("/", cfg.DirectoryHandler.CreateDoctor)
			r.Get("/", cfg.DirectoryHandler.ListDoctors)
			r.Get("/{id}", cfg.DirectoryHandler.GetDoctor)
			r.Get("/{id}/summary", cfg.SummaryHandler.Doctor)
			r.Post("/{id}/withdrawals", cfg.PaymentHandler.Withdraw)
		})

		// Suppliers
		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", cfg.DirectoryHandler.CreateSupplier)
			r.Get("/", cfg.DirectoryHandler.ListSuppliers)
			r.Get("/{id}", cfg.DirectoryHandler.GetSupplier)
			r.Get("/{id}/summary", cfg.SummaryHandler.Supplier)
			r.Post("/{id}/purchases", cfg.PaymentHandler.RecordPurchase)
			r.Post("/{id}/payments", cfg.PaymentHandler.PaySupplier)
		})

		// Treatments
		r.Route("/treatments", func(r chi.Router) {
			r.Post("/", cfg.DirectoryHandler.CreateTreatment)
			r.Get("/", cfg.DirectoryHandler.ListTreatments)
			r.Get("/{id}", cfg.DirectoryHandler.GetTreatment)
		})

		// Expenses
		r.Post("/expenses", cfg.PaymentHandler.RecordExpense)

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/clinic", cfg.SummaryHandler.Clinic)
			r.Get("/cashflow", cfg.SummaryHandler.Cashflow)
			r.Get("/reconciliation", cfg.ReconciliationHandler.All)
		})

		// Activity log
		r.Get("/activity", cfg.ActivityHandler.List)
	})

	return r
}
