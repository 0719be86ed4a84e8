package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
)

// UpdateAccountInput is the Huma input for updating an account.
type UpdateAccountInput struct {
	AccountPath
	Body AccountBody
}

// DeleteAccountResponse reports what was removed with the account.
type DeleteAccountResponse struct {
	RemovedTransactions int64 `json:"removedTransactions" doc:"Transactions on either side of the account that were deleted"`
	UnlinkedGoals       int64 `json:"unlinkedGoals" doc:"Goals that no longer reference the account"`
}

// DeleteAccountOutput is the Huma output for deleting an account.
type DeleteAccountOutput struct {
	Body DeleteAccountResponse
}

type accountWriter interface {
	UpdateAccount(ctx context.Context, account service.Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) (service.AccountDeletion, error)
}

// UpdateAccountHandler handles PUT and DELETE /v1/account/{id}.
type UpdateAccountHandler struct {
	AccountService accountWriter
}

func NewUpdateAccountHandler(svc accountWriter) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-account",
		Method:        http.MethodPut,
		Path:          "/v1/account/{id}",
		Summary:       "Update an account",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/v1/account/{id}",
		Summary:     "Delete an account",
		Description: "Deletes the account, every transaction on either side of it, and unlinks goals that referenced it.",
		Tags:        []string{"Accounts"},
	}, h.handleDelete)
}

func (h *UpdateAccountHandler) handleUpdate(ctx context.Context, input *UpdateAccountInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	account, err := parseAccountBody(input.Body)
	if err != nil {
		return nil, err
	}
	account.ID = id

	stopTimer := apiutil.Timing(ctx, "updateAccountMs")
	err = h.AccountService.UpdateAccount(ctx, account)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to update account")
	}
	return nil, nil
}

func (h *UpdateAccountHandler) handleDelete(ctx context.Context, input *AccountPath) (*DeleteAccountOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := apiutil.Timing(ctx, "deleteAccountMs")
	deleted, err := h.AccountService.DeleteAccount(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to delete account")
	}

	apiutil.Note(ctx, "removedTransactions", deleted.RemovedTransactions)
	return &DeleteAccountOutput{Body: DeleteAccountResponse{
		RemovedTransactions: deleted.RemovedTransactions,
		UnlinkedGoals:       deleted.UnlinkedGoals,
	}}, nil
}
