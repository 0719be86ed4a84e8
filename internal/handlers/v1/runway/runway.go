package runway

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/metrics"
	"github.com/carson-networks/budget-desk/internal/service"
)

// Runway is a burn-rate projection. Months is null when income covers burn.
type Runway struct {
	Cash      string  `json:"cash"`
	AvgBurn   string  `json:"avgBurn"`
	AvgIncome string  `json:"avgIncome"`
	NetBurn   string  `json:"netBurn"`
	Months    *string `json:"months" doc:"Months of runway rounded to two places, null when unbounded"`
	Unbounded bool    `json:"unbounded"`
	Status    string  `json:"status" enum:"safe,warning,danger,critical"`
}

type EstimateInput struct {
	Body struct {
		Cash        string   `json:"cash" doc:"Decimal cash on hand"`
		Expenses    []string `json:"expenses" doc:"Monthly expense totals"`
		Incomes     []string `json:"incomes,omitempty" doc:"Monthly income totals"`
		IncomeAware bool     `json:"incomeAware,omitempty" doc:"Offset burn by mean income"`
	}
}

type EstimateOutput struct {
	Body Runway
}

type HistoryInput struct {
	Months      int  `query:"months" minimum:"0" maximum:"120" doc:"Complete months to sample; 0 uses three"`
	IncomeAware bool `query:"incomeAware" doc:"Offset burn by mean income"`
}

type HistoryOutput struct {
	Body struct {
		Runway
		Expenses []string `json:"expenses" doc:"Monthly expense totals, oldest first"`
		Incomes  []string `json:"incomes" doc:"Monthly income totals, oldest first"`
		From     string   `json:"from"`
		To       string   `json:"to"`
	}
}

type runwayService interface {
	Estimate(sample service.RunwaySample) metrics.Runway
	FromHistory(ctx context.Context, months int, incomeAware bool) (*service.RunwayReport, error)
}

type Handler struct {
	RunwayService runwayService
}

func NewHandler(svc runwayService) *Handler {
	return &Handler{RunwayService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Runway"}
	huma.Register(api, huma.Operation{
		OperationID: "estimate-runway",
		Method:      http.MethodPost,
		Path:        "/v1/runway",
		Summary:     "Estimate runway from a sample",
		Tags:        tags,
	}, h.estimate)
	huma.Register(api, huma.Operation{
		OperationID: "get-runway",
		Method:      http.MethodGet,
		Path:        "/v1/runway",
		Summary:     "Estimate runway from recorded history",
		Description: "Uses the total balance of all accounts as cash and the monthly totals of recent complete months as the sample.",
		Tags:        tags,
	}, h.history)
}

func fromMetrics(r metrics.Runway) Runway {
	out := Runway{
		Cash:      r.Cash.StringFixed(2),
		AvgBurn:   r.AvgBurn.StringFixed(2),
		AvgIncome: r.AvgIncome.StringFixed(2),
		NetBurn:   r.NetBurn.StringFixed(2),
		Unbounded: r.Unbounded,
		Status:    string(r.Status),
	}
	if !r.Unbounded {
		months := r.Months.StringFixed(2)
		out.Months = &months
	}
	return out
}

func parseSample(field string, values []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		d, err := apiutil.Decimal(field, v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func formatSample(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.StringFixed(2)
	}
	return out
}

func (h *Handler) estimate(ctx context.Context, input *EstimateInput) (*EstimateOutput, error) {
	cash, err := apiutil.Decimal("cash", input.Body.Cash)
	if err != nil {
		return nil, err
	}
	expenses, err := parseSample("expenses", input.Body.Expenses)
	if err != nil {
		return nil, err
	}
	incomes, err := parseSample("incomes", input.Body.Incomes)
	if err != nil {
		return nil, err
	}

	r := h.RunwayService.Estimate(service.RunwaySample{
		Cash:        cash,
		Expenses:    expenses,
		Incomes:     incomes,
		IncomeAware: input.Body.IncomeAware,
	})
	apiutil.Note(ctx, "runwayStatus", string(r.Status))
	return &EstimateOutput{Body: fromMetrics(r)}, nil
}

func (h *Handler) history(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	stop := apiutil.Timing(ctx, "runwayHistoryMs")
	report, err := h.RunwayService.FromHistory(ctx, input.Months, input.IncomeAware)
	stop()
	if err != nil {
		return nil, apiutil.Error(err, "failed to estimate runway")
	}

	out := &HistoryOutput{}
	out.Body.Runway = fromMetrics(report.Runway)
	out.Body.Expenses = formatSample(report.Expenses)
	out.Body.Incomes = formatSample(report.Incomes)
	out.Body.From = apiutil.FormatDate(report.From)
	out.Body.To = apiutil.FormatDate(report.To)
	return out, nil
}
