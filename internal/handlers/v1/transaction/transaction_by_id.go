package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
)

// GetTransactionOutput is the Huma output for fetching a transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// UpdateTransactionInput is the Huma input for replacing a transaction.
type UpdateTransactionInput struct {
	TransactionPath
	Body TransactionBody
}

type transactionStore interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction service.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// TransactionHandler handles GET, PUT and DELETE /v1/transaction/{id}.
type TransactionHandler struct {
	TransactionService transactionStore
	now                func() time.Time
}

func NewTransactionHandler(svc transactionStore) *TransactionHandler {
	return &TransactionHandler{TransactionService: svc, now: time.Now}
}

func (h *TransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get a transaction",
		Tags:        []string{"Transactions"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID:   "update-transaction",
		Method:        http.MethodPut,
		Path:          "/v1/transaction/{id}",
		Summary:       "Replace a transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete a transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleDelete)
}

func (h *TransactionHandler) handleGet(ctx context.Context, input *TransactionPath) (*GetTransactionOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := apiutil.Timing(ctx, "getTransactionMs")
	tx, err := h.TransactionService.GetTransaction(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: fromService(*tx)}, nil
}

func (h *TransactionHandler) handleUpdate(ctx context.Context, input *UpdateTransactionInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	tx, err := parseTransactionBody(input.Body, h.now())
	if err != nil {
		return nil, err
	}
	tx.ID = id

	stopTimer := apiutil.Timing(ctx, "updateTransactionMs")
	err = h.TransactionService.UpdateTransaction(ctx, tx)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to update transaction")
	}
	return nil, nil
}

func (h *TransactionHandler) handleDelete(ctx context.Context, input *TransactionPath) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := apiutil.Timing(ctx, "deleteTransactionMs")
	err = h.TransactionService.DeleteTransaction(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to delete transaction")
	}
	return nil, nil
}
