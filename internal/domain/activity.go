package domain

import "time"

// ActivityLog is one append-only audit trail entry recorded alongside every
// money-moving operation.
type ActivityLog struct {
	ID           string
	Action       string
	ResourceType string
	ResourceID   string
	Details      string
	RequestID    string
	CreatedAt    time.Time
}

// Auditable actions.
const (
	ActivityAccountCreate     = "account.create"
	ActivityTransactionPost   = "transaction.post"
	ActivityTransactionRevert = "transaction.reverse"
	ActivityAppointmentCreate = "appointment.create"
	ActivityPaymentCreate     = "payment.create"
	ActivityWithdrawalCreate  = "withdrawal.create"
	ActivitySupplierPayment   = "supplier.payment"
	ActivityExpenseCreate     = "expense.create"
)

// ActivityFilter narrows activity log queries.
type ActivityFilter struct {
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
