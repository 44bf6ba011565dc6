package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
)

// ReconciliationUseCase verifies that stored account balances match what
// replaying the transaction history from zero produces.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	txRepo      TransactionRepository
	rules       domain.PostingRules
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	rules domain.PostingRules,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		rules:       rules,
	}
}

// ReconciliationResult compares an account's stored balance against the
// balance replayed from its transaction history.
type ReconciliationResult struct {
	AccountID        string
	AccountType      domain.AccountType
	HolderID         string
	StoredBalance    decimal.Decimal
	ReplayedBalance  decimal.Decimal
	StoredDues       decimal.Decimal
	ReplayedDues     decimal.Decimal
	StoredPaid       decimal.Decimal
	ReplayedPaid     decimal.Decimal
	Difference       decimal.Decimal
	TransactionCount int
	IsReconciled     bool
	CheckedAt        time.Time
}

// ReconcileAccount replays an account's full history oldest first through
// the same posting rules live postings use and compares the result to the
// stored balances.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	history, err := uc.txRepo.ListByAccountOldestFirst(ctx, accountID)
	if err != nil {
		return nil, err
	}

	replayed := &domain.Account{
		ID:          account.ID,
		AccountType: account.AccountType,
		HolderID:    account.HolderID,
	}

	for _, t := range history {
		if err := replayed.Apply(t, uc.rules); err != nil {
			return nil, fmt.Errorf("replay transaction %s: %w", t.ID, err)
		}
	}

	result := &ReconciliationResult{
		AccountID:        account.ID,
		AccountType:      account.AccountType,
		HolderID:         account.HolderID,
		StoredBalance:    account.Balance,
		ReplayedBalance:  replayed.Balance,
		StoredDues:       account.TotalDues,
		ReplayedDues:     replayed.TotalDues,
		StoredPaid:       account.TotalPaid,
		ReplayedPaid:     replayed.TotalPaid,
		Difference:       account.Balance.Sub(replayed.Balance),
		TransactionCount: len(history),
		CheckedAt:        time.Now().UTC(),
	}

	result.IsReconciled = result.Difference.IsZero() &&
		account.TotalDues.Equal(replayed.TotalDues) &&
		account.TotalPaid.Equal(replayed.TotalPaid)

	return result, nil
}

// ReconciliationReport is the outcome of reconciling every account.
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// reconcileBatchSize bounds how many accounts one List call pulls.
const reconcileBatchSize = 500

// ReconcileAllAccounts replays every account and reports the ones whose
// stored balances drifted from their history.
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for offset := 0; ; offset += reconcileBatchSize {
		accounts, err := uc.accountRepo.List(ctx, reconcileBatchSize, offset)
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			result, err := uc.ReconcileAccount(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("reconcile account %s: %w", account.ID, err)
			}

			report.TotalAccounts++
			if result.IsReconciled {
				report.ReconciledAccounts++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(accounts) < reconcileBatchSize {
			break
		}
	}

	return report, nil
}
