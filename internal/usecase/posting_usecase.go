package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/infrastructure/metrics"
)

// PostingUseCase handles posting transactions to the ledger and keeping
// account balances in lockstep with the transaction history.
type PostingUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	txRepo       TransactionRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
	retrier      Retrier
	rules        domain.PostingRules
	metrics      *metrics.Metrics
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	retrier Retrier,
	rules domain.PostingRules,
	m *metrics.Metrics,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
		retrier:      retrier,
		rules:        rules,
		metrics:      m,
	}
}

// PostTransactionInput represents input for posting a single transaction.
type PostTransactionInput struct {
	AccountID       string
	TransactionType domain.TransactionType
	Amount          decimal.Decimal
	Description     string
	ReferenceType   string
	ReferenceID     string
	PaymentMethod   string
	Notes           string
	TransactionDate *time.Time
}

// PostTransaction appends a transaction to the ledger and applies it to the
// account's balance and running totals atomically. The account row is locked
// for the duration, so concurrent postings to the same account serialize.
func (uc *PostingUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	txDate := now
	if input.TransactionDate != nil {
		txDate = input.TransactionDate.UTC()
	}

	t := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		AccountID:       input.AccountID,
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		Description:     input.Description,
		ReferenceType:   input.ReferenceType,
		ReferenceID:     input.ReferenceID,
		TransactionDate: txDate,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		CreatedAt:       now,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := uc.retrier.Retry(ctx, func() error {
		return uc.postOne(ctx, t, domain.ActivityTransactionPost)
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.PostingErrors.WithLabelValues("post").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsPosted.WithLabelValues(string(t.TransactionType)).Inc()
		uc.metrics.PostingDuration.Observe(time.Since(now).Seconds())
	}

	return t, nil
}

// ReverseTransaction posts a new transaction that undoes the balance effect
// of an earlier one. The original row is never modified, and a transaction
// can be reversed at most once.
func (uc *PostingUseCase) ReverseTransaction(ctx context.Context, originalID, reason string) (*domain.Transaction, error) {
	original, err := uc.txRepo.GetByID(ctx, originalID)
	if err != nil {
		return nil, err
	}

	if original.IsReversal() {
		return nil, fmt.Errorf("reversal transactions cannot be reversed: %w", domain.ErrUnsupportedPosting)
	}

	// Fast fail on already-reversed originals. This read runs outside the
	// posting transaction, so reverseOne repeats it under the account lock.
	reversed, err := uc.txRepo.HasReversal(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if reversed {
		return nil, domain.ErrAlreadyReversed
	}

	now := time.Now().UTC()
	description := "reversal: " + original.Description
	if reason != "" {
		description = fmt.Sprintf("reversal (%s): %s", reason, original.Description)
	}

	reversal := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		AccountID:       original.AccountID,
		TransactionType: original.TransactionType,
		Amount:          original.Amount,
		Description:     description,
		ReferenceType:   domain.ReferenceReversal,
		ReferenceID:     original.ID,
		TransactionDate: now,
		PaymentMethod:   original.PaymentMethod,
		CreatedAt:       now,
	}

	if err := reversal.Validate(); err != nil {
		return nil, err
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.reverseOne(ctx, reversal)
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.PostingErrors.WithLabelValues("reverse").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsReversed.Inc()
		uc.metrics.PostingDuration.Observe(time.Since(now).Seconds())
	}

	return reversal, nil
}

// postOne runs the lock, append, apply, update sequence in one database
// transaction. It re-reads the account on every attempt so a retry starts
// from committed state.
func (uc *PostingUseCase) postOne(ctx context.Context, t *domain.Transaction, action string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, t.AccountID)
	if err != nil {
		return err
	}

	if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, account, t, uc.rules); err != nil {
		return err
	}

	log := &domain.ActivityLog{
		ID:           uc.idGen.Generate(),
		Action:       action,
		ResourceType: "transaction",
		ResourceID:   t.ID,
		Details:      fmt.Sprintf("%s %s on account %s", t.TransactionType, t.Amount, t.AccountID),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// reverseOne posts a reversal like postOne, with one extra step: once the
// account row is locked it re-checks that no reversal for the original has
// been committed in the meantime. Two concurrent requests can both pass the
// unlocked pre-check; only the first to take the lock posts.
func (uc *PostingUseCase) reverseOne(ctx context.Context, reversal *domain.Transaction) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, reversal.AccountID)
	if err != nil {
		return err
	}

	reversed, err := uc.txRepo.HasReversalTx(ctx, tx, reversal.ReferenceID)
	if err != nil {
		return err
	}
	if reversed {
		return domain.ErrAlreadyReversed
	}

	if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, account, reversal, uc.rules); err != nil {
		return err
	}

	log := &domain.ActivityLog{
		ID:           uc.idGen.Generate(),
		Action:       domain.ActivityTransactionRevert,
		ResourceType: "transaction",
		ResourceID:   reversal.ID,
		Details:      fmt.Sprintf("%s %s on account %s", reversal.TransactionType, reversal.Amount, reversal.AccountID),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// postToAccount applies a transaction to an already-locked account: append
// the ledger row, move the balances, persist the account. Callers own the
// surrounding database transaction.
func postToAccount(
	ctx context.Context,
	tx Transaction,
	txRepo TransactionRepository,
	accountRepo AccountRepository,
	account *domain.Account,
	t *domain.Transaction,
	rules domain.PostingRules,
) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if err := account.Apply(t, rules); err != nil {
		return err
	}

	if err := txRepo.Create(ctx, tx, t); err != nil {
		return err
	}

	return accountRepo.UpdateBalances(ctx, tx, account)
}

// GetTransaction retrieves a transaction by ID.
func (uc *PostingUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing account history.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists an account's transactions newest first.
func (uc *PostingUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
