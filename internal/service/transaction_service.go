package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator Processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op Processor) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// CreateTransaction creates a new transaction and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, transaction Transaction) (uuid.UUID, error) {
	action := &actions.CreateTransaction{Transaction: transaction.toStorage()}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// UpdateTransaction overwrites every field of an existing transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transaction Transaction) error {
	return s.operator.Process(ctx, &actions.UpdateTransaction{Transaction: transaction.toStorage()})
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{ID: id})
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tx := Transaction(*row)
	return &tx, nil
}

// ListTransactions returns a page of transactions matching filter, newest
// first, using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, filter TransactionFilter, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
	}

	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		AccountID:  filter.AccountID,
		CategoryID: filter.CategoryID,
		Type:       filter.Type,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = Transaction(*row)
	}

	return convertedTransactions, nextCursor, nil
}
