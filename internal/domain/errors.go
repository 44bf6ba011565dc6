package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrMissingParty       = errors.New("missing required party id")
	ErrInvalidAccountType = errors.New("unknown account type")
	ErrInvalidPercentage  = errors.New("percentage must be between 0 and 100")

	// Not-found errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrTreatmentNotFound   = errors.New("treatment not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	// Posting errors
	ErrUnsupportedPosting  = errors.New("no balance rule for this account and transaction type")
	ErrInsufficientBalance = errors.New("withdrawal exceeds available balance")
	ErrAlreadyReversed     = errors.New("transaction already reversed")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
