package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	TransactionsPosted   *prometheus.CounterVec
	TransactionsReversed prometheus.Counter
	PostingDuration      prometheus.Histogram
	PostingErrors        *prometheus.CounterVec
	PostingRetries       prometheus.Counter

	// Payment metrics
	PaymentsRecorded prometheus.Counter
	PaymentAmount    prometheus.Histogram
	DoctorShareTotal prometheus.Counter
	ClinicShareTotal prometheus.Counter
	Withdrawals      prometheus.Counter
	VouchersIssued   *prometheus.CounterVec

	// Account metrics
	AccountsCreated   *prometheus.CounterVec
	AccountOperations *prometheus.CounterVec

	// Appointment metrics
	AppointmentsCreated prometheus.Counter
	AppointmentsBilled  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Cache metrics
	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns          prometheus.Counter
	ReconciliationDiscrepancies prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Activity metrics
	ActivityLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Posting metrics
		TransactionsPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_posted_total",
				Help: "Total number of ledger transactions posted by type",
			},
			[]string{"transaction_type"},
		),
		TransactionsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transactions_reversed_total",
			Help: "Total number of transactions reversed",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),
		PostingRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_posting_retries_total",
			Help: "Total number of posting attempts retried after conflicts",
		}),

		// Payment metrics
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_payments_recorded_total",
			Help: "Total number of patient payments recorded",
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_payment_amount",
			Help:    "Patient payment amounts",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		}),
		DoctorShareTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_doctor_share_total",
			Help: "Cumulative doctor share credited from payments",
		}),
		ClinicShareTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_clinic_share_total",
			Help: "Cumulative clinic share credited from payments",
		}),
		Withdrawals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_withdrawals_total",
			Help: "Total number of doctor withdrawals",
		}),
		VouchersIssued: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_vouchers_issued_total",
				Help: "Total vouchers issued by type",
			},
			[]string{"voucher_type"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_accounts_created_total",
				Help: "Total number of accounts created by type",
			},
			[]string{"account_type"},
		),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// Appointment metrics
		AppointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_appointments_created_total",
			Help: "Total number of appointments created",
		}),
		AppointmentsBilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_appointments_billed_total",
			Help: "Total number of appointments that produced a debit",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Cache metrics
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_summary_cache_hits_total",
			Help: "Summary view cache hits",
		}),
		SummaryCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_summary_cache_misses_total",
			Help: "Summary view cache misses",
		}),

		// Reconciliation metrics
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_reconciliation_runs_total",
			Help: "Total reconciliation runs",
		}),
		ReconciliationDiscrepancies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_reconciliation_discrepancies_total",
			Help: "Total accounts whose stored balance drifted from the replay",
		}),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Activity metrics
		ActivityLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_activity_logs_total",
				Help: "Total activity log entries created",
			},
			[]string{"action"},
		),
	}
}
