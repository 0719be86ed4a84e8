package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
)

var (
	ErrUnknownKind      = errors.New("unknown import kind")
	ErrPreviewNotFound  = errors.New("import preview not found or expired")
	ErrPreviewHasErrors = errors.New("import preview has error rows")
)

// Processor runs a write action. The operator's delegator satisfies it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Importer turns uploaded files into previews and applies them.
type Importer struct {
	storage  *storage.Storage
	operator Processor
	previews *PreviewCache
	now      func() time.Time
}

func New(store *storage.Storage, op Processor, previews *PreviewCache) *Importer {
	return &Importer{
		storage:  store,
		operator: op,
		previews: previews,
		now:      time.Now,
	}
}

func unknownKind(kind notify.Kind) error {
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// ParseKind maps a collection name to its kind.
func ParseKind(name string) (notify.Kind, error) {
	kind := notify.Kind(name)
	if _, ok := codecs[kind]; !ok {
		return "", unknownKind(kind)
	}
	return kind, nil
}

// Preview parses data, classifies every row against the store and keeps
// the result until it is applied. Nothing is written.
func (im *Importer) Preview(ctx context.Context, kind notify.Kind, filename string, data []byte) (*Preview, error) {
	c, ok := codecs[kind]
	if !ok {
		return nil, unknownKind(kind)
	}

	table, err := Parse(filename, data)
	if err != nil {
		return nil, err
	}
	r, err := loadRefs(ctx, im.storage)
	if err != nil {
		return nil, err
	}
	results, err := c.reconcile(ctx, im.storage, r, Rows(table))
	if err != nil {
		return nil, err
	}

	preview := newPreview(kind, filename, results, im.now())
	if im.previews != nil {
		im.previews.Set(preview.ID.String(), preview)
	}

	logrus.WithFields(logrus.Fields{
		"previewID": preview.ID.String(),
		"kind":      kind,
		"add":       preview.Counts.Add,
		"update":    preview.Counts.Update,
		"error":     preview.Counts.Error,
	}).Info("Importer.Preview.complete")
	return preview, nil
}

// ApplyPreview applies a cached preview. A preview that proceeded is
// dropped from the cache.
func (im *Importer) ApplyPreview(ctx context.Context, id uuid.UUID) (*ApplyResult, error) {
	if im.previews == nil {
		return nil, ErrPreviewNotFound
	}
	preview, ok := im.previews.Get(id.String())
	if !ok {
		return nil, ErrPreviewNotFound
	}
	result, err := im.Apply(ctx, preview)
	if result != nil && result.Proceeded {
		im.previews.Delete(id.String())
	}
	return result, err
}

// Apply writes every row of preview in order. It refuses a preview with
// error rows. Once started it runs to the end regardless of ctx
// cancellation; a row that fails is recorded and the rest continue.
func (im *Importer) Apply(ctx context.Context, preview *Preview) (*ApplyResult, error) {
	if preview.Counts.Error > 0 {
		return &ApplyResult{}, fmt.Errorf("%w: %d of %d rows", ErrPreviewHasErrors, preview.Counts.Error, len(preview.Rows))
	}

	ctx = context.WithoutCancel(ctx)
	result := &ApplyResult{Proceeded: true}
	for _, row := range preview.Rows {
		if row.action == nil {
			continue
		}
		if err := im.operator.Process(ctx, row.action); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, RowFailure{Line: row.Line, ID: row.ID, Message: err.Error()})
			continue
		}
		switch row.Action {
		case ActionAdd:
			result.Added++
		case ActionUpdate:
			result.Updated++
		}
	}

	logrus.WithFields(logrus.Fields{
		"previewID": preview.ID.String(),
		"kind":      preview.Kind,
		"added":     result.Added,
		"updated":   result.Updated,
		"failed":    result.Failed,
	}).Info("Importer.Apply.complete")
	return result, nil
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes every classified row, including the pending write, for
// troubleshooting a file.
func Dump(w io.Writer, preview *Preview) {
	dumpConfig.Fdump(w, preview)
}
