package bill

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type Bill struct {
	ID          string `json:"id" doc:"Bill UUID"`
	Name        string `json:"name" doc:"Bill name"`
	Amount      string `json:"amount" doc:"Decimal amount due"`
	NextDueDate string `json:"nextDueDate" doc:"Next due date, YYYY-MM-DD"`
	Cadence     string `json:"cadence" doc:"How often the bill recurs"`
	Paid        bool   `json:"paid" doc:"Whether a one-off bill has been paid"`
	AutoPay     bool   `json:"autoPay" doc:"Whether the bill is paid automatically"`
}

type BillBody struct {
	Name        string `json:"name" minLength:"1" doc:"Bill name"`
	Amount      string `json:"amount" doc:"Non-negative decimal amount due"`
	NextDueDate string `json:"nextDueDate" format:"date" doc:"Next due date, YYYY-MM-DD"`
	Cadence     string `json:"cadence" enum:"once,weekly,monthly,yearly" doc:"How often the bill recurs"`
	Paid        bool   `json:"paid,omitempty"`
	AutoPay     bool   `json:"autoPay,omitempty"`
}

type BillPath struct {
	ID string `path:"id" format:"uuid" doc:"Bill UUID"`
}

type CreateBillInput struct {
	Body BillBody
}

type CreateBillOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created bill UUID"`
	}
}

type UpdateBillInput struct {
	BillPath
	Body BillBody
}

type BillOutput struct {
	Body Bill
}

type ListBillsOutput struct {
	Body struct {
		Bills []Bill `json:"bills"`
	}
}

type billService interface {
	CreateBill(ctx context.Context, bill *sqlconfig.Bill) (uuid.UUID, error)
	UpdateBill(ctx context.Context, bill *sqlconfig.Bill) error
	DeleteBill(ctx context.Context, id uuid.UUID) error
	GetBill(ctx context.Context, id uuid.UUID) (*sqlconfig.Bill, error)
	ListBills(ctx context.Context) ([]*sqlconfig.Bill, error)
	PayBill(ctx context.Context, id uuid.UUID) (*sqlconfig.Bill, error)
}

type Handler struct {
	BillService billService
}

func NewHandler(svc billService) *Handler {
	return &Handler{BillService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Bills"}
	huma.Register(api, huma.Operation{
		OperationID: "create-bill",
		Method:      http.MethodPost,
		Path:        "/v1/bill",
		Summary:     "Create a bill",
		Tags:        tags,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-bills",
		Method:      http.MethodGet,
		Path:        "/v1/bills",
		Summary:     "List bills",
		Tags:        tags,
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-bill",
		Method:      http.MethodGet,
		Path:        "/v1/bill/{id}",
		Summary:     "Get a bill",
		Tags:        tags,
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID:   "update-bill",
		Method:        http.MethodPut,
		Path:          "/v1/bill/{id}",
		Summary:       "Update a bill",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-bill",
		Method:        http.MethodDelete,
		Path:          "/v1/bill/{id}",
		Summary:       "Delete a bill",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "pay-bill",
		Method:      http.MethodPost,
		Path:        "/v1/bill/{id}/pay",
		Summary:     "Pay a bill",
		Description: "Marks a one-off bill paid, or advances a recurring bill's due date by one cadence step.",
		Tags:        tags,
	}, h.pay)
}

func fromStorage(b *sqlconfig.Bill) Bill {
	return Bill{
		ID:          b.ID.String(),
		Name:        b.Name,
		Amount:      b.Amount.String(),
		NextDueDate: apiutil.FormatDate(b.NextDueDate),
		Cadence:     string(b.Cadence),
		Paid:        b.Paid,
		AutoPay:     b.AutoPay,
	}
}

func parseBody(body BillBody) (*sqlconfig.Bill, error) {
	b := &sqlconfig.Bill{
		Name:    body.Name,
		Cadence: sqlconfig.Cadence(body.Cadence),
		Paid:    body.Paid,
		AutoPay: body.AutoPay,
	}
	var err error
	if b.Amount, err = apiutil.Decimal("amount", body.Amount); err != nil {
		return nil, err
	}
	if b.NextDueDate, err = apiutil.Date("nextDueDate", body.NextDueDate); err != nil {
		return nil, err
	}
	return b, nil
}

func (h *Handler) create(ctx context.Context, input *CreateBillInput) (*CreateBillOutput, error) {
	b, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	id, err := h.BillService.CreateBill(ctx, b)
	if err != nil {
		return nil, apiutil.Error(err, "failed to create bill")
	}
	apiutil.Note(ctx, "billID", id.String())

	out := &CreateBillOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListBillsOutput, error) {
	bills, err := h.BillService.ListBills(ctx)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list bills")
	}
	out := &ListBillsOutput{}
	out.Body.Bills = make([]Bill, len(bills))
	for i, b := range bills {
		out.Body.Bills[i] = fromStorage(b)
	}
	return out, nil
}

func (h *Handler) get(ctx context.Context, input *BillPath) (*BillOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	b, err := h.BillService.GetBill(ctx, id)
	if err != nil {
		return nil, apiutil.Error(err, "failed to get bill")
	}
	return &BillOutput{Body: fromStorage(b)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateBillInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	b, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	b.ID = id
	if err := h.BillService.UpdateBill(ctx, b); err != nil {
		return nil, apiutil.Error(err, "failed to update bill")
	}
	return nil, nil
}

func (h *Handler) delete(ctx context.Context, input *BillPath) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.BillService.DeleteBill(ctx, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete bill")
	}
	return nil, nil
}

func (h *Handler) pay(ctx context.Context, input *BillPath) (*BillOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	b, err := h.BillService.PayBill(ctx, id)
	if err != nil {
		return nil, apiutil.Error(err, "failed to pay bill")
	}
	return &BillOutput{Body: fromStorage(b)}, nil
}
