package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
type ListTransactionsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListTransactionsFilter narrows the listing. Absent fields match everything.
type ListTransactionsFilter struct {
	AccountID  string `json:"accountID,omitempty" format:"uuid" doc:"Matches either side of a transfer"`
	CategoryID string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	Type       string `json:"type,omitempty" enum:"income,expense,transfer" doc:"Transaction type"`
	StartDate  string `json:"startDate,omitempty" format:"date" doc:"Inclusive lower date bound"`
	EndDate    string `json:"endDate,omitempty" format:"date" doc:"Inclusive upper date bound"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	Filter *ListTransactionsFilter `json:"filter,omitempty" doc:"Filter applied to every page"`
	Cursor *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions, newest first"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, filter service.TransactionFilter, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a filtered, paginated list of transactions using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
// Without a cursor, the service uses its default limit.
func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionFilter, *service.TransactionCursor, error) {
	var filter service.TransactionFilter
	if f := input.Body.Filter; f != nil {
		if f.AccountID != "" {
			id, err := apiutil.ID("filter.accountID", f.AccountID)
			if err != nil {
				return filter, nil, err
			}
			filter.AccountID = &id
		}
		if f.CategoryID != "" {
			id, err := apiutil.ID("filter.categoryID", f.CategoryID)
			if err != nil {
				return filter, nil, err
			}
			filter.CategoryID = &id
		}
		if f.Type != "" {
			typ := sqlconfig.TransactionType(f.Type)
			filter.Type = &typ
		}
		if f.StartDate != "" {
			start, err := apiutil.Date("filter.startDate", f.StartDate)
			if err != nil {
				return filter, nil, err
			}
			filter.StartDate = &start
		}
		if f.EndDate != "" {
			end, err := apiutil.Date("filter.endDate", f.EndDate)
			if err != nil {
				return filter, nil, err
			}
			filter.EndDate = &end
		}
	}

	if input.Body.Cursor == nil {
		return filter, nil, nil
	}
	if input.Body.Cursor.Position < 0 {
		return filter, nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}
	return filter, &service.TransactionCursor{
		Position: input.Body.Cursor.Position,
		Limit:    input.Body.Cursor.Limit,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := apiutil.Timing(ctx, "listTransactionsMs")
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, filter, requestCursor)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to list transactions")
	}

	apiutil.Note(ctx, "transactionCount", len(transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = fromService(tx)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
