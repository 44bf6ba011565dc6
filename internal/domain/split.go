package domain

import "github.com/shopspring/decimal"

// Split is the doctor/clinic division of one payment.
type Split struct {
	DoctorShare      decimal.Decimal
	ClinicShare      decimal.Decimal
	DoctorPercentage decimal.Decimal
	ClinicPercentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// SplitPayment divides amount between doctor and clinic. The doctor share is
// amount x doctorPercentage / 100 rounded to cents; the clinic share is the
// remainder, so the two always sum to amount exactly even when the configured
// percentages do not sum to 100.
func SplitPayment(amount, doctorPercentage decimal.Decimal) (Split, error) {
	if err := ValidateAmount(amount); err != nil {
		return Split{}, err
	}
	if err := ValidatePercentage(doctorPercentage); err != nil {
		return Split{}, err
	}

	doctorShare := amount.Mul(doctorPercentage).Div(hundred).Round(2)
	clinicShare := amount.Sub(doctorShare)

	return Split{
		DoctorShare:      doctorShare,
		ClinicShare:      clinicShare,
		DoctorPercentage: doctorPercentage,
		ClinicPercentage: hundred.Sub(doctorPercentage),
	}, nil
}

// StandalonePaymentSplit is the split for a payment with no treatment
// attached: the clinic keeps everything, since there is no doctor to credit.
func StandalonePaymentSplit(amount decimal.Decimal) (Split, error) {
	if err := ValidateAmount(amount); err != nil {
		return Split{}, err
	}

	return Split{
		DoctorShare:      decimal.Zero,
		ClinicShare:      amount,
		DoctorPercentage: decimal.Zero,
		ClinicPercentage: hundred,
	}, nil
}
