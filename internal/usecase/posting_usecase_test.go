package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
	"github.com/curaclinic/ledger/internal/usecase/mocks"
)

type postingFixture struct {
	uc           *usecase.PostingUseCase
	accountRepo  *mocks.MockAccountRepository
	txRepo       *mocks.MockTransactionRepository
	activityRepo *mocks.MockActivityRepository
}

func newPostingFixture() *postingFixture {
	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	activityRepo := mocks.NewMockActivityRepository()

	uc := usecase.NewPostingUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		txRepo,
		activityRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		domain.PostingRules{},
		nil,
	)

	return &postingFixture{
		uc:           uc,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		activityRepo: activityRepo,
	}
}

func TestPostTransactionUpdatesBalance(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
	})

	posted, err := f.uc.PostTransaction(ctx, usecase.PostTransactionInput{
		AccountID:       "acc-1",
		TransactionType: domain.TransactionDebit,
		Amount:          decimal.NewFromInt(300),
		Description:     "consultation",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account, err := f.accountRepo.GetByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(-300)) {
		t.Errorf("balance = %s, want -300", account.Balance)
	}
	if !account.TotalDues.Equal(decimal.NewFromInt(300)) {
		t.Errorf("total dues = %s, want 300", account.TotalDues)
	}

	stored, err := f.txRepo.GetByID(ctx, posted.ID)
	if err != nil {
		t.Fatalf("transaction not persisted: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("stored amount = %s", stored.Amount)
	}

	logs := f.activityRepo.Logs()
	if len(logs) != 1 || logs[0].Action != domain.ActivityTransactionPost {
		t.Errorf("expected one transaction.post log, got %+v", logs)
	}
}

func TestPostTransactionRejectsWithoutSideEffects(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
	})

	tests := []struct {
		name    string
		input   usecase.PostTransactionInput
		wantErr error
	}{
		{
			name: "zero amount",
			input: usecase.PostTransactionInput{
				AccountID:       "acc-1",
				TransactionType: domain.TransactionDebit,
				Amount:          decimal.Zero,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: usecase.PostTransactionInput{
				AccountID:       "acc-1",
				TransactionType: domain.TransactionDebit,
				Amount:          decimal.NewFromInt(-10),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "unsupported pair",
			input: usecase.PostTransactionInput{
				AccountID:       "acc-1",
				TransactionType: domain.TransactionCredit,
				Amount:          decimal.NewFromInt(10),
			},
			wantErr: domain.ErrUnsupportedPosting,
		},
		{
			name: "unknown account",
			input: usecase.PostTransactionInput{
				AccountID:       "acc-404",
				TransactionType: domain.TransactionDebit,
				Amount:          decimal.NewFromInt(10),
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.PostTransaction(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	account, _ := f.accountRepo.GetByID(ctx, "acc-1")
	if !account.Balance.IsZero() {
		t.Errorf("rejected postings moved the balance to %s", account.Balance)
	}
}

func TestReverseTransaction(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
	})

	original, err := f.uc.PostTransaction(ctx, usecase.PostTransactionInput{
		AccountID:       "acc-1",
		TransactionType: domain.TransactionDebit,
		Amount:          decimal.NewFromInt(300),
		Description:     "consultation",
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	reversal, err := f.uc.ReverseTransaction(ctx, original.ID, "booked in error")
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}

	if reversal.ReferenceType != domain.ReferenceReversal || reversal.ReferenceID != original.ID {
		t.Errorf("reversal does not point at original: %+v", reversal)
	}

	account, _ := f.accountRepo.GetByID(ctx, "acc-1")
	if !account.Balance.IsZero() || !account.TotalDues.IsZero() {
		t.Errorf("reversal did not restore balances: balance=%s dues=%s",
			account.Balance, account.TotalDues)
	}

	// the original row is untouched
	stored, _ := f.txRepo.GetByID(ctx, original.ID)
	if !stored.Amount.Equal(decimal.NewFromInt(300)) || stored.ReferenceType == domain.ReferenceReversal {
		t.Error("original transaction was modified")
	}
}

func TestReverseTransactionOnlyOnce(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
	})

	original, err := f.uc.PostTransaction(ctx, usecase.PostTransactionInput{
		AccountID:       "acc-1",
		TransactionType: domain.TransactionDebit,
		Amount:          decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	reversal, err := f.uc.ReverseTransaction(ctx, original.ID, "")
	if err != nil {
		t.Fatalf("first reverse: %v", err)
	}

	if _, err := f.uc.ReverseTransaction(ctx, original.ID, ""); !errors.Is(err, domain.ErrAlreadyReversed) {
		t.Errorf("expected ErrAlreadyReversed, got %v", err)
	}

	if _, err := f.uc.ReverseTransaction(ctx, reversal.ID, ""); !errors.Is(err, domain.ErrUnsupportedPosting) {
		t.Errorf("expected ErrUnsupportedPosting for reversing a reversal, got %v", err)
	}
}

func TestReverseTransactionConcurrentRequestsPostOnce(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
	})

	original, err := f.uc.PostTransaction(ctx, usecase.PostTransactionInput{
		AccountID:       "acc-1",
		TransactionType: domain.TransactionDebit,
		Amount:          decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	// Both requests read committed state before either posts, so the
	// unlocked pre-check sees no reversal for either of them. The check
	// under the account lock is what must reject the loser.
	f.txRepo.HasReversalFunc = func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}

	if _, err := f.uc.ReverseTransaction(ctx, original.ID, ""); err != nil {
		t.Fatalf("first reverse: %v", err)
	}

	if _, err := f.uc.ReverseTransaction(ctx, original.ID, ""); !errors.Is(err, domain.ErrAlreadyReversed) {
		t.Fatalf("expected ErrAlreadyReversed for the second request, got %v", err)
	}

	history, _ := f.txRepo.ListByAccount(ctx, "acc-1", 100, 0)
	reversals := 0
	for _, tr := range history {
		if tr.ReferenceType == domain.ReferenceReversal && tr.ReferenceID == original.ID {
			reversals++
		}
	}
	if reversals != 1 {
		t.Errorf("expected exactly one reversal row, got %d", reversals)
	}

	account, _ := f.accountRepo.GetByID(ctx, "acc-1")
	if !account.Balance.IsZero() {
		t.Errorf("account double-credited: balance = %s", account.Balance)
	}
}

func TestPostTransactionNotCommittedOnFailure(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
	})

	storeErr := errors.New("write failed")
	f.txRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
		return storeErr
	}

	committed := false
	txManager := mocks.NewMockTransactionManager()
	txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(ctx context.Context) error {
				committed = true
				return nil
			},
		}, nil
	}

	uc := usecase.NewPostingUseCase(
		txManager,
		f.accountRepo,
		f.txRepo,
		f.activityRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		domain.PostingRules{},
		nil,
	)

	_, err := uc.PostTransaction(ctx, usecase.PostTransactionInput{
		AccountID:       "acc-1",
		TransactionType: domain.TransactionDebit,
		Amount:          decimal.NewFromInt(50),
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if committed {
		t.Error("transaction committed despite ledger write failing")
	}
}
