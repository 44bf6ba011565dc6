package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
	"github.com/curaclinic/ledger/internal/usecase/mocks"
)

func seedHistory(ctx context.Context, txRepo *mocks.MockTransactionRepository, accountID string, entries []*domain.Transaction) {
	for _, t := range entries {
		_ = txRepo.Create(ctx, nil, t)
	}
}

func TestReconcileAccountMatches(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txRepo, domain.PostingRules{})

	accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
		TotalDues:   decimal.NewFromInt(300),
		TotalPaid:   decimal.NewFromInt(200),
		Balance:     decimal.NewFromInt(-100),
	})
	seedHistory(ctx, txRepo, "acc-1", []*domain.Transaction{
		{ID: "t1", AccountID: "acc-1", TransactionType: domain.TransactionDebit, Amount: decimal.NewFromInt(300)},
		{ID: "t2", AccountID: "acc-1", TransactionType: domain.TransactionPayment, Amount: decimal.NewFromInt(200)},
	})

	result, err := uc.ReconcileAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.IsReconciled {
		t.Errorf("expected reconciled, difference = %s", result.Difference)
	}
	if result.TransactionCount != 2 {
		t.Errorf("transaction count = %d", result.TransactionCount)
	}
}

func TestReconcileAccountDetectsDrift(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txRepo, domain.PostingRules{})

	// stored balance drifted by 50 from what the history supports
	accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
		TotalDues:   decimal.NewFromInt(300),
		Balance:     decimal.NewFromInt(-250),
	})
	seedHistory(ctx, txRepo, "acc-1", []*domain.Transaction{
		{ID: "t1", AccountID: "acc-1", TransactionType: domain.TransactionDebit, Amount: decimal.NewFromInt(300)},
	})

	result, err := uc.ReconcileAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IsReconciled {
		t.Error("expected drift to be detected")
	}
	if !result.Difference.Equal(decimal.NewFromInt(50)) {
		t.Errorf("difference = %s, want 50", result.Difference)
	}
	if !result.ReplayedBalance.Equal(decimal.NewFromInt(-300)) {
		t.Errorf("replayed balance = %s, want -300", result.ReplayedBalance)
	}
}

func TestReconcileAccountReplaysReversals(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txRepo, domain.PostingRules{})

	accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
	})
	seedHistory(ctx, txRepo, "acc-1", []*domain.Transaction{
		{ID: "t1", AccountID: "acc-1", TransactionType: domain.TransactionDebit, Amount: decimal.NewFromInt(300)},
		{
			ID: "t2", AccountID: "acc-1", TransactionType: domain.TransactionDebit,
			Amount: decimal.NewFromInt(300), ReferenceType: domain.ReferenceReversal, ReferenceID: "t1",
		},
	})

	result, err := uc.ReconcileAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.IsReconciled {
		t.Errorf("reversal replay drifted: replayed balance = %s", result.ReplayedBalance)
	}
	if !result.ReplayedBalance.IsZero() {
		t.Errorf("replayed balance = %s, want 0", result.ReplayedBalance)
	}
}

func TestReconcileAllAccounts(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txRepo, domain.PostingRules{})

	accountRepo.Seed(&domain.Account{
		ID:          "acc-ok",
		AccountType: domain.AccountTypeDoctor,
		HolderID:    "doctor-1",
		Balance:     decimal.NewFromInt(600),
	})
	seedHistory(ctx, txRepo, "acc-ok", []*domain.Transaction{
		{ID: "t1", AccountID: "acc-ok", TransactionType: domain.TransactionCredit, Amount: decimal.NewFromInt(600)},
	})

	accountRepo.Seed(&domain.Account{
		ID:          "acc-bad",
		AccountType: domain.AccountTypeClinic,
		HolderID:    domain.ClinicHolderID,
		Balance:     decimal.NewFromInt(999),
	})

	report, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalAccounts != 2 {
		t.Errorf("total accounts = %d", report.TotalAccounts)
	}
	if report.ReconciledAccounts != 1 {
		t.Errorf("reconciled = %d, want 1", report.ReconciledAccounts)
	}
	if len(report.Discrepancies) != 1 || report.Discrepancies[0].AccountID != "acc-bad" {
		t.Errorf("discrepancies = %+v", report.Discrepancies)
	}
}
