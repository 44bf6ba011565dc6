package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Patient is a clinic patient record. Only the fields the accounting core
// reads are modeled; the full medical record lives outside this service.
type Patient struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}

// Doctor is a practicing doctor with a revenue-share arrangement.
type Doctor struct {
	ID             string
	Name           string
	Specialization string
	Phone          string
	Email          string
	IsActive       bool
	CreatedAt      time.Time
}

// Supplier provides inventory on credit terms.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	PaymentTerms  string
	IsActive      bool
	CreatedAt     time.Time
}

// Treatment is a billable procedure carrying the configured doctor/clinic
// revenue percentages applied to payments for it.
type Treatment struct {
	ID               string
	Name             string
	Description      string
	BasePrice        decimal.Decimal
	DurationMinutes  int
	Category         string
	DoctorPercentage decimal.Decimal
	ClinicPercentage decimal.Decimal
	IsActive         bool
	CreatedAt        time.Time
}
