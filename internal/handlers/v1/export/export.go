package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/importer"
	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
)

type ExportInput struct {
	Kind string `path:"kind" enum:"accounts,categories,transactions,budgets,goals,bills,loans,plans"`
}

// FileOutput is a raw download.
type FileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type RestoreInput struct {
	Full    bool   `query:"full" doc:"Replace every collection instead of upserting"`
	RawBody []byte `contentType:"application/zip"`
}

type RestoreOutput struct {
	Body struct {
		Inserted map[string]int `json:"inserted"`
		Updated  map[string]int `json:"updated"`
	}
}

type archiveService interface {
	ExportCSV(ctx context.Context, kind notify.Kind, w io.Writer) error
	Backup(ctx context.Context, w io.Writer) error
	Restore(ctx context.Context, data []byte, full bool) (*actions.RestoreCounts, error)
}

type Handler struct {
	Archive archiveService
	// MaxUpload caps the restore body in bytes; zero keeps huma's default.
	MaxUpload int64
}

func NewHandler(svc archiveService, maxUpload int64) *Handler {
	return &Handler{Archive: svc, MaxUpload: maxUpload}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Export"}
	huma.Register(api, huma.Operation{
		OperationID: "export-csv",
		Method:      http.MethodGet,
		Path:        "/v1/export/{kind}",
		Summary:     "Export a collection as CSV",
		Description: "The CSV uses the same columns the importer reads, with names for references.",
		Tags:        tags,
	}, h.exportCSV)
	huma.Register(api, huma.Operation{
		OperationID: "download-backup",
		Method:      http.MethodGet,
		Path:        "/v1/backup",
		Summary:     "Download a backup archive",
		Tags:        tags,
	}, h.backup)
	huma.Register(api, huma.Operation{
		OperationID:  "restore-backup",
		Method:       http.MethodPost,
		Path:         "/v1/restore",
		Summary:      "Restore a backup archive",
		Description:  "Restores every collection in one transaction. Nothing is written if any record is rejected.",
		Tags:         tags,
		MaxBodyBytes: h.MaxUpload,
	}, h.restore)
}

func (h *Handler) exportCSV(ctx context.Context, input *ExportInput) (*FileOutput, error) {
	kind, err := importer.ParseKind(input.Kind)
	if err != nil {
		return nil, apiutil.Error(err, "unknown export kind")
	}
	var buf bytes.Buffer
	if err := h.Archive.ExportCSV(ctx, kind, &buf); err != nil {
		return nil, apiutil.Error(err, "failed to export")
	}
	return &FileOutput{
		ContentType:        "text/csv",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", string(kind)+".csv"),
		Body:               buf.Bytes(),
	}, nil
}

func (h *Handler) backup(ctx context.Context, _ *struct{}) (*FileOutput, error) {
	stop := apiutil.Timing(ctx, "backupMs")
	var buf bytes.Buffer
	err := h.Archive.Backup(ctx, &buf)
	stop()
	if err != nil {
		return nil, apiutil.Error(err, "failed to write backup")
	}
	apiutil.Note(ctx, "backupBytes", buf.Len())
	return &FileOutput{
		ContentType:        "application/zip",
		ContentDisposition: `attachment; filename="backup.zip"`,
		Body:               buf.Bytes(),
	}, nil
}

func (h *Handler) restore(ctx context.Context, input *RestoreInput) (*RestoreOutput, error) {
	stop := apiutil.Timing(ctx, "restoreMs")
	counts, err := h.Archive.Restore(ctx, input.RawBody, input.Full)
	stop()
	if err != nil {
		return nil, apiutil.Error(err, "failed to restore backup")
	}

	out := &RestoreOutput{}
	out.Body.Inserted = byName(counts.Inserted)
	out.Body.Updated = byName(counts.Updated)
	return out, nil
}

func byName(counts map[notify.Kind]int) map[string]int {
	out := make(map[string]int, len(counts))
	for k, n := range counts {
		out[string(k)] = n
	}
	return out
}
