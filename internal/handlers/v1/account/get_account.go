package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
)

// GetAccountOutput is the Huma output for fetching an account.
type GetAccountOutput struct {
	Body Account
}

// BalanceResponse is the response body for an account balance.
type BalanceResponse struct {
	AccountID string `json:"accountID" doc:"Account UUID"`
	Balance   string `json:"balance" doc:"Decimal balance: initial + income - expense - transfers out + transfers in"`
}

// BalanceOutput is the Huma output for an account balance.
type BalanceOutput struct {
	Body BalanceResponse
}

type accountReader interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
	Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

// GetAccountHandler handles GET /v1/account/{id} and its balance.
type GetAccountHandler struct {
	AccountService accountReader
}

func NewGetAccountHandler(svc accountReader) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "get-account-balance",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/balance",
		Summary:     "Get an account balance",
		Description: "Recomputes the balance from the full transaction history.",
		Tags:        []string{"Accounts"},
	}, h.handleBalance)
}

func (h *GetAccountHandler) handleGet(ctx context.Context, input *AccountPath) (*GetAccountOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := apiutil.Timing(ctx, "getAccountMs")
	account, err := h.AccountService.GetAccount(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to get account")
	}
	return &GetAccountOutput{Body: fromService(*account)}, nil
}

func (h *GetAccountHandler) handleBalance(ctx context.Context, input *AccountPath) (*BalanceOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := apiutil.Timing(ctx, "balanceMs")
	balance, err := h.AccountService.Balance(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute balance")
	}
	return &BalanceOutput{Body: BalanceResponse{AccountID: id.String(), Balance: balance.String()}}, nil
}
