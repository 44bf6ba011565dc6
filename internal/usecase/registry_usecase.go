package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/curaclinic/ledger/internal/domain"
)

// RegistryUseCase handles ledger account registration and lookup.
type RegistryUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
}

// NewRegistryUseCase creates a new RegistryUseCase.
func NewRegistryUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
) *RegistryUseCase {
	return &RegistryUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
	}
}

// GetOrCreateAccountInput represents input for account registration.
type GetOrCreateAccountInput struct {
	AccountType domain.AccountType
	HolderID    string
	HolderName  string
}

// GetOrCreateAccount returns the account for a (type, holder) pair, creating
// it with zero balances on first use. Calling it again for the same pair
// returns the existing account untouched.
func (uc *RegistryUseCase) GetOrCreateAccount(ctx context.Context, input GetOrCreateAccountInput) (*domain.Account, error) {
	if !input.AccountType.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	// The clinic has exactly one account.
	if input.AccountType == domain.AccountTypeClinic {
		input.HolderID = domain.ClinicHolderID
	}

	if input.HolderID == "" {
		return nil, domain.ErrMissingParty
	}

	if err := domain.ValidateName(input.HolderName); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	candidate := &domain.Account{
		ID:          uc.idGen.Generate(),
		AccountType: input.AccountType,
		HolderID:    input.HolderID,
		HolderName:  input.HolderName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetOrCreate(ctx, tx, candidate)
	if err != nil {
		return nil, err
	}

	// The candidate ID survives only when the insert won.
	if account.ID == candidate.ID {
		log := &domain.ActivityLog{
			ID:           uc.idGen.Generate(),
			Action:       domain.ActivityAccountCreate,
			ResourceType: "account",
			ResourceID:   account.ID,
			Details:      fmt.Sprintf("%s account for holder %s", account.AccountType, account.HolderID),
			CreatedAt:    now,
		}
		if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *RegistryUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByHolder retrieves an account by its (type, holder) key. A
// holder with no financial activity yet gets an unsaved zero account rather
// than a not-found error, mirroring how the summary views treat them.
func (uc *RegistryUseCase) GetAccountByHolder(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error) {
	if !accountType.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	if accountType == domain.AccountTypeClinic {
		holderID = domain.ClinicHolderID
	}

	account, err := uc.accountRepo.GetByHolder(ctx, accountType, holderID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return &domain.Account{AccountType: accountType, HolderID: holderID}, nil
	}

	return account, err
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *RegistryUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}
