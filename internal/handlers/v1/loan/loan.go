package loan

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type Loan struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Lender           string `json:"lender"`
	Principal        string `json:"principal"`
	CurrentBalance   string `json:"currentBalance"`
	InterestRate     string `json:"interestRate" doc:"Annual rate in percent"`
	PaymentAmount    string `json:"paymentAmount"`
	PaymentFrequency string `json:"paymentFrequency"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate,omitempty"`
}

type LoanBody struct {
	Name             string `json:"name" minLength:"1"`
	Lender           string `json:"lender,omitempty"`
	Principal        string `json:"principal" doc:"Non-negative decimal amount borrowed"`
	CurrentBalance   string `json:"currentBalance" doc:"Non-negative decimal amount outstanding"`
	InterestRate     string `json:"interestRate" doc:"Annual rate in percent"`
	PaymentAmount    string `json:"paymentAmount,omitempty"`
	PaymentFrequency string `json:"paymentFrequency" enum:"once,weekly,monthly,yearly"`
	StartDate        string `json:"startDate" format:"date"`
	EndDate          string `json:"endDate,omitempty" format:"date"`
}

type LoanPath struct {
	ID string `path:"id" format:"uuid" doc:"Loan UUID"`
}

type CreateLoanInput struct {
	Body LoanBody
}

type CreateLoanOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created loan UUID"`
	}
}

type UpdateLoanInput struct {
	LoanPath
	Body LoanBody
}

type LoanOutput struct {
	Body Loan
}

type ListLoansOutput struct {
	Body struct {
		Loans []Loan `json:"loans"`
	}
}

type InterestOutput struct {
	Body struct {
		MonthlyInterest string `json:"monthlyInterest" doc:"Interest accrued on the current balance over one month"`
	}
}

type loanService interface {
	CreateLoan(ctx context.Context, loan *sqlconfig.Loan) (uuid.UUID, error)
	UpdateLoan(ctx context.Context, loan *sqlconfig.Loan) error
	DeleteLoan(ctx context.Context, id uuid.UUID) error
	GetLoan(ctx context.Context, id uuid.UUID) (*sqlconfig.Loan, error)
	ListLoans(ctx context.Context) ([]*sqlconfig.Loan, error)
	MonthlyInterest(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

type Handler struct {
	LoanService loanService
}

func NewHandler(svc loanService) *Handler {
	return &Handler{LoanService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Loans"}
	huma.Register(api, huma.Operation{
		OperationID: "create-loan",
		Method:      http.MethodPost,
		Path:        "/v1/loan",
		Summary:     "Create a loan",
		Tags:        tags,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-loans",
		Method:      http.MethodGet,
		Path:        "/v1/loans",
		Summary:     "List loans",
		Tags:        tags,
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-loan",
		Method:      http.MethodGet,
		Path:        "/v1/loan/{id}",
		Summary:     "Get a loan",
		Tags:        tags,
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID:   "update-loan",
		Method:        http.MethodPut,
		Path:          "/v1/loan/{id}",
		Summary:       "Update a loan",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-loan",
		Method:        http.MethodDelete,
		Path:          "/v1/loan/{id}",
		Summary:       "Delete a loan",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "get-loan-interest",
		Method:      http.MethodGet,
		Path:        "/v1/loan/{id}/interest",
		Summary:     "Get a loan's monthly interest",
		Tags:        tags,
	}, h.interest)
}

func fromStorage(l *sqlconfig.Loan) Loan {
	return Loan{
		ID:               l.ID.String(),
		Name:             l.Name,
		Lender:           l.Lender,
		Principal:        l.Principal.String(),
		CurrentBalance:   l.CurrentBalance.String(),
		InterestRate:     l.InterestRate.String(),
		PaymentAmount:    l.PaymentAmount.String(),
		PaymentFrequency: string(l.PaymentFrequency),
		StartDate:        apiutil.FormatDate(l.StartDate),
		EndDate:          apiutil.FormatDate(l.EndDate),
	}
}

func parseBody(body LoanBody) (*sqlconfig.Loan, error) {
	l := &sqlconfig.Loan{
		Name:             body.Name,
		Lender:           body.Lender,
		PaymentFrequency: sqlconfig.Cadence(body.PaymentFrequency),
	}
	var err error
	if l.Principal, err = apiutil.Decimal("principal", body.Principal); err != nil {
		return nil, err
	}
	if l.CurrentBalance, err = apiutil.Decimal("currentBalance", body.CurrentBalance); err != nil {
		return nil, err
	}
	if l.InterestRate, err = apiutil.Decimal("interestRate", body.InterestRate); err != nil {
		return nil, err
	}
	if l.PaymentAmount, err = apiutil.OptionalDecimal("paymentAmount", body.PaymentAmount); err != nil {
		return nil, err
	}
	if l.StartDate, err = apiutil.Date("startDate", body.StartDate); err != nil {
		return nil, err
	}
	if l.EndDate, err = apiutil.Date("endDate", body.EndDate); err != nil {
		return nil, err
	}
	return l, nil
}

func (h *Handler) create(ctx context.Context, input *CreateLoanInput) (*CreateLoanOutput, error) {
	l, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	id, err := h.LoanService.CreateLoan(ctx, l)
	if err != nil {
		return nil, apiutil.Error(err, "failed to create loan")
	}
	apiutil.Note(ctx, "loanID", id.String())

	out := &CreateLoanOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListLoansOutput, error) {
	loans, err := h.LoanService.ListLoans(ctx)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list loans")
	}
	out := &ListLoansOutput{}
	out.Body.Loans = make([]Loan, len(loans))
	for i, l := range loans {
		out.Body.Loans[i] = fromStorage(l)
	}
	return out, nil
}

func (h *Handler) get(ctx context.Context, input *LoanPath) (*LoanOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	l, err := h.LoanService.GetLoan(ctx, id)
	if err != nil {
		return nil, apiutil.Error(err, "failed to get loan")
	}
	return &LoanOutput{Body: fromStorage(l)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateLoanInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	l, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	l.ID = id
	if err := h.LoanService.UpdateLoan(ctx, l); err != nil {
		return nil, apiutil.Error(err, "failed to update loan")
	}
	return nil, nil
}

func (h *Handler) delete(ctx context.Context, input *LoanPath) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.LoanService.DeleteLoan(ctx, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete loan")
	}
	return nil, nil
}

func (h *Handler) interest(ctx context.Context, input *LoanPath) (*InterestOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	interest, err := h.LoanService.MonthlyInterest(ctx, id)
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute loan interest")
	}
	out := &InterestOutput{}
	out.Body.MonthlyInterest = interest.StringFixed(2)
	return out, nil
}
