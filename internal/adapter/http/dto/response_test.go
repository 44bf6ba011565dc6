package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	last := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	account := &domain.Account{
		ID:                  "acc-1",
		AccountType:         domain.AccountTypeDoctor,
		HolderID:            "doc-1",
		HolderName:          "Dr. Hana",
		TotalDues:           decimal.NewFromInt(0),
		TotalPaid:           decimal.NewFromInt(600),
		Balance:             decimal.NewFromInt(350),
		LastTransactionDate: &last,
	}

	resp := AccountFromDomain(account)
	require.Equal(t, "acc-1", resp.ID)
	require.Equal(t, "doctor", resp.AccountType)
	require.True(t, resp.Balance.Equal(decimal.NewFromInt(350)))
	require.NotNil(t, resp.LastTransactionDate)
}

func TestPaymentResultFromUseCase(t *testing.T) {
	result := &usecase.PaymentResult{
		Payment: &domain.Payment{
			ID:          "pay-1",
			PatientID:   "patient-1",
			Amount:      decimal.NewFromInt(1000),
			DoctorShare: decimal.NewFromInt(600),
			ClinicShare: decimal.NewFromInt(400),
			Status:      domain.PaymentCompleted,
		},
		Voucher: &domain.Voucher{
			ID:            "v-1",
			VoucherType:   domain.VoucherReceipt,
			VoucherNumber: "REC-000001",
			Amount:        decimal.NewFromInt(1000),
		},
	}

	resp := PaymentResultFromUseCase(result)
	require.Equal(t, "pay-1", resp.Payment.ID)
	require.True(t, resp.Payment.DoctorShare.Equal(decimal.NewFromInt(600)))
	require.Equal(t, "REC-000001", resp.Voucher.VoucherNumber)
	require.Equal(t, "receipt", resp.Voucher.VoucherType)
}

func TestTransactionResponseJSONOmitsEmptyReference(t *testing.T) {
	resp := TransactionFromDomain(&domain.Transaction{
		ID:              "tx-1",
		AccountID:       "acc-1",
		TransactionType: domain.TransactionCredit,
		Amount:          decimal.NewFromInt(42),
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "reference_type")
	require.Contains(t, string(raw), `"transaction_type":"credit"`)
}

func TestReconciliationReportFromUseCase(t *testing.T) {
	report := &usecase.ReconciliationReport{
		TotalAccounts:      3,
		ReconciledAccounts: 2,
		Discrepancies: []*usecase.ReconciliationResult{
			{
				AccountID:     "acc-2",
				AccountType:   domain.AccountTypePatient,
				StoredBalance: decimal.NewFromInt(-250),
				Difference:    decimal.NewFromInt(50),
				IsReconciled:  false,
			},
		},
	}

	resp := ReconciliationReportFromUseCase(report)
	require.Equal(t, 3, resp.TotalAccounts)
	require.Len(t, resp.Discrepancies, 1)
	require.Equal(t, "patient", resp.Discrepancies[0].AccountType)
	require.True(t, resp.Discrepancies[0].Difference.Equal(decimal.NewFromInt(50)))
}
