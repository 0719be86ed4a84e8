package imports

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/importer"
	"github.com/carson-networks/budget-desk/internal/notify"
)

type Change struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

type Row struct {
	Line    int      `json:"line" doc:"1-based line in the source file"`
	ID      string   `json:"id,omitempty"`
	Action  string   `json:"action" enum:"add,update,error"`
	Changes []Change `json:"changes,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type Counts struct {
	Add    int `json:"add"`
	Update int `json:"update"`
	Error  int `json:"error"`
}

type Preview struct {
	ID        string    `json:"id" doc:"Preview UUID, used to apply it"`
	Kind      string    `json:"kind"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
	Rows      []Row     `json:"rows"`
	Counts    Counts    `json:"counts"`
}

type PreviewInput struct {
	Kind     string `path:"kind" enum:"accounts,categories,transactions,budgets,goals,bills,loans,plans"`
	Filename string `query:"filename" required:"true" doc:"Name of the uploaded file; its extension picks the parser (.csv, .xlsx, .docx)"`
	RawBody  []byte `contentType:"application/octet-stream"`
}

type PreviewOutput struct {
	Body Preview
}

type ApplyInput struct {
	ID string `path:"id" format:"uuid" doc:"Preview UUID"`
}

type Failure struct {
	Line    int    `json:"line"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

type ApplyOutput struct {
	Body struct {
		Proceeded bool      `json:"proceeded"`
		Added     int       `json:"added"`
		Updated   int       `json:"updated"`
		Failed    int       `json:"failed"`
		Failures  []Failure `json:"failures,omitempty"`
	}
}

type importService interface {
	Preview(ctx context.Context, kind notify.Kind, filename string, data []byte) (*importer.Preview, error)
	ApplyPreview(ctx context.Context, id uuid.UUID) (*importer.ApplyResult, error)
}

type Handler struct {
	Importer importService
	// MaxUpload caps the uploaded file in bytes; zero keeps huma's default.
	MaxUpload int64
}

func NewHandler(svc importService, maxUpload int64) *Handler {
	return &Handler{Importer: svc, MaxUpload: maxUpload}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Import"}
	huma.Register(api, huma.Operation{
		OperationID:  "preview-import",
		Method:       http.MethodPost,
		Path:         "/v1/import/{kind}",
		Summary:      "Preview an import",
		Description:  "Parses an uploaded file and classifies every row as add, update or error without writing anything.",
		Tags:         tags,
		MaxBodyBytes: h.MaxUpload,
	}, h.preview)
	huma.Register(api, huma.Operation{
		OperationID: "apply-import",
		Method:      http.MethodPost,
		Path:        "/v1/import/preview/{id}/apply",
		Summary:     "Apply an import preview",
		Description: "Writes every row of a cached preview. A preview with error rows is refused.",
		Tags:        tags,
	}, h.apply)
}

func fromPreview(p *importer.Preview) Preview {
	out := Preview{
		ID:        p.ID.String(),
		Kind:      string(p.Kind),
		Filename:  p.Filename,
		CreatedAt: p.CreatedAt,
		Rows:      make([]Row, len(p.Rows)),
		Counts:    Counts{Add: p.Counts.Add, Update: p.Counts.Update, Error: p.Counts.Error},
	}
	for i, r := range p.Rows {
		row := Row{Line: r.Line, ID: r.ID, Action: string(r.Action), Errors: r.Errors}
		for _, c := range r.Changes {
			row.Changes = append(row.Changes, Change{Field: c.Field, Before: c.Before, After: c.After})
		}
		out.Rows[i] = row
	}
	return out
}

func (h *Handler) preview(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
	kind, err := importer.ParseKind(input.Kind)
	if err != nil {
		return nil, apiutil.Error(err, "unknown import kind")
	}

	stop := apiutil.Timing(ctx, "importPreviewMs")
	preview, err := h.Importer.Preview(ctx, kind, input.Filename, input.RawBody)
	stop()
	if err != nil {
		return nil, apiutil.Error(err, "failed to preview import")
	}
	apiutil.Note(ctx, "previewID", preview.ID.String())
	return &PreviewOutput{Body: fromPreview(preview)}, nil
}

func (h *Handler) apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stop := apiutil.Timing(ctx, "importApplyMs")
	result, err := h.Importer.ApplyPreview(ctx, id)
	stop()
	if err != nil {
		return nil, apiutil.Error(err, "failed to apply import")
	}

	out := &ApplyOutput{}
	out.Body.Proceeded = result.Proceeded
	out.Body.Added = result.Added
	out.Body.Updated = result.Updated
	out.Body.Failed = result.Failed
	for _, f := range result.Failures {
		out.Body.Failures = append(out.Body.Failures, Failure{Line: f.Line, ID: f.ID, Message: f.Message})
	}
	return out, nil
}
