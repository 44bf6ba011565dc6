package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks whether a payment settled.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment is money received from a patient, optionally against an
// appointment. The doctor/clinic shares are frozen on the row at creation
// time so later treatment-percentage edits never rewrite history.
type Payment struct {
	ID               string
	AppointmentID    string
	PatientID        string
	Amount           decimal.Decimal
	PaymentMethod    string
	PaymentDate      time.Time
	Status           PaymentStatus
	DoctorShare      decimal.Decimal
	ClinicShare      decimal.Decimal
	DoctorPercentage decimal.Decimal
	ClinicPercentage decimal.Decimal
	Notes            string
	CreatedAt        time.Time
}

// Expense is an operating cost subtracted from the clinic's share to get net
// profit. Expenses live outside the account ledger.
type Expense struct {
	ID            string
	Category      string
	Description   string
	Amount        decimal.Decimal
	ExpenseDate   time.Time
	PaymentMethod string
	ReceiptNumber string
	Notes         string
	CreatedAt     time.Time
}
