package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/metrics"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

const defaultAccountLimit = 20

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator Processor
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, op Processor) *AccountService {
	return &AccountService{storage: store, operator: op}
}

// CreateAccount creates a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, account Account) (uuid.UUID, error) {
	action := actions.CreateAccount(accountToStorage(account))
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// UpdateAccount overwrites the account's stored fields.
func (s *AccountService) UpdateAccount(ctx context.Context, account Account) error {
	return s.operator.Process(ctx, actions.UpdateAccount(accountToStorage(account)))
}

// DeleteAccount deletes the account and every transaction on either side
// of it, and unlinks goals that referenced it.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) (AccountDeletion, error) {
	action := &actions.DeleteAccount{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return AccountDeletion{}, err
	}
	return AccountDeletion{
		RemovedTransactions: action.RemovedTransactions,
		UnlinkedGoals:       action.UnlinkedGoals,
	}, nil
}

// GetAccount retrieves an account by ID with its current balance.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	balance, err := s.balanceOf(ctx, row)
	if err != nil {
		return nil, err
	}
	account := accountFromStorage(row, balance)
	return &account, nil
}

// Balance returns the account's current balance.
func (s *AccountService) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balanceOf(ctx, row)
}

func (s *AccountService) balanceOf(ctx context.Context, row *sqlconfig.Account) (decimal.Decimal, error) {
	id := row.ID
	txs, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{AccountID: &id})
	if err != nil {
		return decimal.Zero, err
	}
	return metrics.Balance(row, txs), nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
	}

	filter := &sqlconfig.AccountFilter{
		Limit:  limit,
		Offset: offset,
	}

	var nextCursor *AccountCursor
	rows, err := s.storage.Accounts.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedAccounts := make([]Account, len(rows))
	for i, row := range rows {
		balance, err := s.balanceOf(ctx, row)
		if err != nil {
			return nil, nil, err
		}
		convertedAccounts[i] = accountFromStorage(row, balance)
	}

	return convertedAccounts, nextCursor, nil
}

// TotalCash is the sum of every account's current balance.
func (s *AccountService) TotalCash(ctx context.Context) (decimal.Decimal, error) {
	return totalCash(ctx, s.storage)
}

func totalCash(ctx context.Context, store *storage.Storage) (decimal.Decimal, error) {
	accounts, err := store.Accounts.List(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	if len(accounts) == 0 {
		return decimal.Zero, nil
	}
	txs, err := store.Transactions.List(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(metrics.Balance(account, txs))
	}
	return total, nil
}
