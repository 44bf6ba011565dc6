package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies which party a ledger account belongs to.
type AccountType string

const (
	AccountTypePatient  AccountType = "patient"
	AccountTypeDoctor   AccountType = "doctor"
	AccountTypeClinic   AccountType = "clinic"
	AccountTypeSupplier AccountType = "supplier"
)

// ClinicHolderID is the fixed holder id of the single clinic account.
const ClinicHolderID = "clinic"

// Valid reports whether t is one of the four account kinds.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypePatient, AccountTypeDoctor, AccountTypeClinic, AccountTypeSupplier:
		return true
	}
	return false
}

// Account is one ledger per (account type, holder) pair. Balance is a signed
// running total: for patients it equals TotalPaid - TotalDues (negative while
// money is owed), for doctors it is earned minus withdrawn, for the clinic it
// is accumulated revenue share. Accounts are created lazily on the first money
// event and never deleted.
type Account struct {
	ID                  string
	AccountType         AccountType
	HolderID            string
	HolderName          string
	TotalDues           decimal.Decimal
	TotalPaid           decimal.Decimal
	Balance             decimal.Decimal
	LastTransactionDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PostingRules configures the optional parts of the balance-update table.
type PostingRules struct {
	// SupplierBalanceTracking makes supplier debits and payments move the
	// supplier account balance in addition to the dues/paid totals.
	SupplierBalanceTracking bool
}

// Apply mutates the account's balance and totals for one posted transaction,
// according to the (account type, transaction type) rule table. The inverse of
// the rule is applied when the transaction is a reversal. Pairs outside the
// table fail with ErrUnsupportedPosting so a typo can never become a silent
// no-op.
func (a *Account) Apply(t *Transaction, rules PostingRules) error {
	amount := t.Amount
	if t.IsReversal() {
		amount = amount.Neg()
	}

	switch a.AccountType {
	case AccountTypePatient:
		switch t.TransactionType {
		case TransactionPayment:
			a.Balance = a.Balance.Add(amount)
			a.TotalPaid = a.TotalPaid.Add(amount)
		case TransactionDebit:
			a.Balance = a.Balance.Sub(amount)
			a.TotalDues = a.TotalDues.Add(amount)
		default:
			return ErrUnsupportedPosting
		}

	case AccountTypeDoctor:
		switch t.TransactionType {
		case TransactionCredit:
			a.Balance = a.Balance.Add(amount)
		case TransactionWithdrawal:
			a.Balance = a.Balance.Sub(amount)
		default:
			return ErrUnsupportedPosting
		}

	case AccountTypeClinic:
		if t.TransactionType != TransactionCredit {
			return ErrUnsupportedPosting
		}
		a.Balance = a.Balance.Add(amount)

	case AccountTypeSupplier:
		switch t.TransactionType {
		case TransactionDebit:
			a.TotalDues = a.TotalDues.Add(amount)
			if rules.SupplierBalanceTracking {
				a.Balance = a.Balance.Sub(amount)
			}
		case TransactionPayment:
			a.TotalPaid = a.TotalPaid.Add(amount)
			if rules.SupplierBalanceTracking {
				a.Balance = a.Balance.Add(amount)
			}
		default:
			return ErrUnsupportedPosting
		}

	default:
		return ErrUnsupportedPosting
	}

	at := t.TransactionDate
	a.LastTransactionDate = &at

	return nil
}

// ValidateWithdrawal checks that a doctor account can fund a payout.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if a.AccountType != AccountTypeDoctor {
		return ErrUnsupportedPosting
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}
	return nil
}

// Outstanding is the amount a patient (or supplier) still owes.
func (a *Account) Outstanding() decimal.Decimal {
	return a.TotalDues.Sub(a.TotalPaid)
}
