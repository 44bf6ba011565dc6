package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType distinguishes money received from money paid out.
type VoucherType string

const (
	// VoucherReceipt documents money coming in (patient payments).
	VoucherReceipt VoucherType = "receipt"
	// VoucherPayment documents money going out (withdrawals, supplier payments).
	VoucherPayment VoucherType = "payment"
)

// Voucher is the printable receipt/disbursement record issued alongside a
// posting. Voucher numbers are sequential per type.
type Voucher struct {
	ID            string
	VoucherType   VoucherType
	VoucherNumber string
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string
	Description   string
	VoucherDate   time.Time
	CreatedBy     string
	Notes         string
	CreatedAt     time.Time
}

// FormatVoucherNumber renders the sequential number for a voucher type,
// e.g. REC-000042 or PAY-000007.
func FormatVoucherNumber(t VoucherType, seq int64) string {
	prefix := "PAY"
	if t == VoucherReceipt {
		prefix = "REC"
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}
