package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType encodes the direction of a money movement. Amounts are
// always positive; the type decides how the balance updater applies them.
type TransactionType string

const (
	// TransactionDebit charges a patient (or accrues a supplier purchase).
	TransactionDebit TransactionType = "debit"
	// TransactionCredit accrues earnings to a doctor or the clinic.
	TransactionCredit TransactionType = "credit"
	// TransactionPayment records money received from a patient or paid to a supplier.
	TransactionPayment TransactionType = "payment"
	// TransactionWithdrawal pays out a doctor's accumulated share.
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDebit, TransactionCredit, TransactionPayment, TransactionWithdrawal:
		return true
	}
	return false
}

// Reference types linking a transaction back to the record that caused it.
const (
	ReferenceAppointment = "appointment"
	ReferencePayment     = "payment"
	ReferenceWithdrawal  = "withdrawal"
	ReferencePurchase    = "purchase"
	ReferenceReversal    = "reversal"
)

// Transaction is one immutable posted money movement against an account.
// Corrections never mutate history: they are new transactions with reference
// type "reversal" pointing at the original, and the balance updater applies
// the inverse rule for them.
type Transaction struct {
	ID              string
	AccountID       string
	TransactionType TransactionType
	Amount          decimal.Decimal
	Description     string
	ReferenceType   string
	ReferenceID     string
	TransactionDate time.Time
	PaymentMethod   string
	Notes           string
	CreatedAt       time.Time
}

// IsReversal reports whether this transaction offsets an earlier one.
func (t *Transaction) IsReversal() bool {
	return t.ReferenceType == ReferenceReversal
}

// Validate checks the invariants every posted transaction must hold.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return ErrAccountNotFound
	}
	if !t.TransactionType.Valid() {
		return ErrUnsupportedPosting
	}
	return ValidateAmount(t.Amount)
}
