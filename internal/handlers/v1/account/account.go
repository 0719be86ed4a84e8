package account

import (
	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID             string `json:"id" doc:"Account UUID"`
	Name           string `json:"name" doc:"Account name"`
	Type           string `json:"type" doc:"Free-form account type, e.g. bank or credit"`
	Currency       string `json:"currency" doc:"ISO currency code"`
	InitialBalance string `json:"initialBalance" doc:"Decimal opening balance"`
	Balance        string `json:"balance" doc:"Decimal current balance derived from transactions"`
}

// AccountBody is the request body for creating or updating an account.
type AccountBody struct {
	Name           string `json:"name" minLength:"1" doc:"Account name"`
	Type           string `json:"type,omitempty" doc:"Free-form account type, e.g. bank or credit"`
	Currency       string `json:"currency,omitempty" doc:"ISO currency code"`
	InitialBalance string `json:"initialBalance,omitempty" doc:"Decimal opening balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// AccountPath identifies an account in the URL.
type AccountPath struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

func fromService(a service.Account) Account {
	return Account{
		ID:             a.ID.String(),
		Name:           a.Name,
		Type:           a.Type,
		Currency:       a.Currency,
		InitialBalance: a.InitialBalance.String(),
		Balance:        a.Balance.String(),
	}
}

func parseAccountBody(body AccountBody) (service.Account, error) {
	initial, err := apiutil.OptionalDecimal("initialBalance", body.InitialBalance)
	if err != nil {
		return service.Account{}, err
	}
	return service.Account{
		Name:           body.Name,
		Type:           body.Type,
		Currency:       body.Currency,
		InitialBalance: initial,
	}, nil
}
