package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus tracks an appointment through its lifecycle.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment books a treatment for a patient with a doctor. Creating one
// with a positive total cost accrues that cost as a debit on the patient's
// ledger account.
type Appointment struct {
	ID              string
	PatientID       string
	DoctorID        string
	TreatmentID     string
	AppointmentDate time.Time
	Status          AppointmentStatus
	Notes           string
	TotalCost       decimal.Decimal
	CreatedAt       time.Time
}

// Billable reports whether booking this appointment owes the clinic money.
func (a *Appointment) Billable() bool {
	return a.TotalCost.IsPositive()
}

// CountsTowardBilling reports whether the appointment's cost is part of the
// patient's billed total. Cancelled bookings are excluded.
func (a *Appointment) CountsTowardBilling() bool {
	return a.Status != AppointmentCancelled
}
