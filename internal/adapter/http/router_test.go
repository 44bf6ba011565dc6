package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/adapter/http/handler"
	apimiddleware "github.com/curaclinic/ledger/internal/adapter/http/middleware"
	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
	"github.com/curaclinic/ledger/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"account_type":"patient","holder_id":"patient-1","holder_name":"Sara"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/statement",
		"POST /api/v1/transactions/",
		"POST /api/v1/transactions/{id}/reverse",
		"POST /api/v1/appointments/",
		"POST /api/v1/payments/",
		"POST /api/v1/doctors/{id}/withdrawals",
		"POST /api/v1/suppliers/{id}/purchases",
		"GET /api/v1/patients/{id}/summary",
		"GET /api/v1/reports/clinic",
		"GET /api/v1/reports/cashflow",
		"GET /api/v1/reports/reconciliation",
		"POST /api/v1/expenses",
		"GET /api/v1/activity",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	patientRepo := mocks.NewMockPatientRepository()
	doctorRepo := mocks.NewMockDoctorRepository()
	supplierRepo := mocks.NewMockSupplierRepository()
	treatmentRepo := mocks.NewMockTreatmentRepository()
	appointmentRepo := mocks.NewMockAppointmentRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	voucherRepo := mocks.NewMockVoucherRepository()
	activityRepo := mocks.NewMockActivityRepository()
	reportRepo := mocks.NewMockReportRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()
	retrier := mocks.NewMockRetrier()
	rules := domain.PostingRules{}

	registryUC := usecase.NewRegistryUseCase(txManager, accountRepo, activityRepo, idGen)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, txRepo, activityRepo, idGen, retrier, rules, nil)
	appointmentUC := usecase.NewAppointmentUseCase(txManager, accountRepo, txRepo, appointmentRepo, patientRepo, doctorRepo, treatmentRepo, activityRepo, idGen, rules)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, txRepo, paymentRepo, appointmentRepo, patientRepo, doctorRepo, supplierRepo, treatmentRepo, expenseRepo, voucherRepo, activityRepo, idGen, retrier, rules, nil)
	directoryUC := usecase.NewDirectoryUseCase(txManager, accountRepo, patientRepo, doctorRepo, supplierRepo, treatmentRepo, activityRepo, idGen, decimal.NewFromInt(60))
	summaryUC := usecase.NewSummaryUseCase(accountRepo, txRepo, patientRepo, doctorRepo, supplierRepo, reportRepo, mocks.NewMockCache())
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, txRepo, rules)

	cfg := RouterConfig{
		AccountHandler:        handler.NewAccountHandler(registryUC),
		TransactionHandler:    handler.NewTransactionHandler(postingUC),
		AppointmentHandler:    handler.NewAppointmentHandler(appointmentUC),
		PaymentHandler:        handler.NewPaymentHandler(paymentUC),
		DirectoryHandler:      handler.NewDirectoryHandler(directoryUC),
		SummaryHandler:        handler.NewSummaryHandler(summaryUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		ActivityHandler:       handler.NewActivityHandler(activityRepo),
		HealthHandler:         &handler.HealthHandler{},
		Logger:                zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
