package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

// ReportRepository implements usecase.ReportRepository with aggregate SQL.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// PatientBilled sums a patient's non-cancelled appointment costs.
func (r *ReportRepository) PatientBilled(ctx context.Context, patientID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_cost), 0)
		FROM appointments
		WHERE patient_id = $1 AND status <> $2`

	return r.sumQuery(ctx, query, patientID, domain.AppointmentCancelled)
}

// PatientPaid sums a patient's completed payments.
func (r *ReportRepository) PatientPaid(ctx context.Context, patientID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE patient_id = $1 AND status = $2`

	return r.sumQuery(ctx, query, patientID, domain.PaymentCompleted)
}

// DoctorEarnings sums the doctor shares frozen on completed payments for the
// doctor's appointments.
func (r *ReportRepository) DoctorEarnings(ctx context.Context, doctorID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.doctor_share), 0)
		FROM payments p
		JOIN appointments a ON a.id = p.appointment_id
		WHERE a.doctor_id = $1 AND p.status = $2`

	return r.sumQuery(ctx, query, doctorID, domain.PaymentCompleted)
}

// DoctorWithdrawn sums a doctor's withdrawals from the ledger. Reversed
// withdrawals subtract back out.
func (r *ReportRepository) DoctorWithdrawn(ctx context.Context, doctorID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN t.reference_type = $3 THEN -t.amount ELSE t.amount END
		), 0)
		FROM financial_transactions t
		JOIN accounts acc ON acc.id = t.account_id
		WHERE acc.account_type = $1
		  AND acc.account_holder_id = $2
		  AND t.transaction_type = $4`

	return r.sumQuery(ctx, query,
		domain.AccountTypeDoctor, doctorID, domain.ReferenceReversal, domain.TransactionWithdrawal)
}

// ClinicTotals aggregates completed payments clinic-wide.
func (r *ReportRepository) ClinicTotals(ctx context.Context) (usecase.ClinicTotals, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(clinic_share), 0),
		       COALESCE(SUM(doctor_share), 0)
		FROM payments
		WHERE status = $1`

	var revenue, clinicShare, doctorShare pgtype.Numeric
	err := r.pool.QueryRow(ctx, query, domain.PaymentCompleted).
		Scan(&revenue, &clinicShare, &doctorShare)
	if err != nil {
		return usecase.ClinicTotals{}, err
	}

	return usecase.ClinicTotals{
		TotalRevenue: numericToDecimal(revenue),
		ClinicShare:  numericToDecimal(clinicShare),
		DoctorShare:  numericToDecimal(doctorShare),
	}, nil
}

// TotalExpenses sums all recorded expenses.
func (r *ReportRepository) TotalExpenses(ctx context.Context) (decimal.Decimal, error) {
	return r.sumQuery(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses`)
}

// MonthlyCashflow compares revenue against expenses per calendar month for
// the trailing window, newest month first. Months with no rows report zeros.
func (r *ReportRepository) MonthlyCashflow(ctx context.Context, months int) ([]usecase.MonthlyCashflow, error) {
	now := time.Now().UTC()
	// anchor at the first of the month so stepping back never skips short months
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := anchor.AddDate(0, -(months - 1), 0)

	revenue, err := r.monthlySums(ctx, `
		SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM'), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = $1 AND payment_date >= $2
		GROUP BY 1`, domain.PaymentCompleted, since)
	if err != nil {
		return nil, err
	}

	expenses, err := r.monthlySums(ctx, `
		SELECT to_char(date_trunc('month', expense_date), 'YYYY-MM'), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE expense_date >= $1
		GROUP BY 1`, since)
	if err != nil {
		return nil, err
	}

	out := make([]usecase.MonthlyCashflow, 0, months)
	for i := 0; i < months; i++ {
		month := anchor.AddDate(0, -i, 0).Format("2006-01")
		rev := revenue[month]
		exp := expenses[month]
		out = append(out, usecase.MonthlyCashflow{
			Month:    month,
			Revenue:  rev,
			Expenses: exp,
			Profit:   rev.Sub(exp),
		})
	}

	return out, nil
}

// AccountsOverview aggregates accounts by type.
func (r *ReportRepository) AccountsOverview(ctx context.Context) ([]usecase.AccountTypeOverview, error) {
	query := `
		SELECT account_type, COUNT(*),
		       COALESCE(SUM(total_dues), 0),
		       COALESCE(SUM(total_paid), 0),
		       COALESCE(SUM(balance), 0)
		FROM accounts
		GROUP BY account_type
		ORDER BY account_type`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overviews []usecase.AccountTypeOverview
	for rows.Next() {
		var (
			o     usecase.AccountTypeOverview
			dues  pgtype.Numeric
			paid  pgtype.Numeric
			total pgtype.Numeric
		)
		if err := rows.Scan(&o.AccountType, &o.Count, &dues, &paid, &total); err != nil {
			return nil, err
		}
		o.TotalDues = numericToDecimal(dues)
		o.TotalPaid = numericToDecimal(paid)
		o.TotalBalance = numericToDecimal(total)
		overviews = append(overviews, o)
	}

	return overviews, rows.Err()
}

func (r *ReportRepository) sumQuery(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func (r *ReportRepository) monthlySums(ctx context.Context, query string, args ...any) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			month string
			sum   pgtype.Numeric
		)
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, err
		}
		sums[month] = numericToDecimal(sum)
	}

	return sums, rows.Err()
}
