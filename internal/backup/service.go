package backup

import (
	"context"
	"io"
	"time"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// Service binds the archive operations to one store and write path.
type Service struct {
	storage  *storage.Storage
	operator Processor
	now      func() time.Time
}

func NewService(store *storage.Storage, op Processor) *Service {
	return &Service{storage: store, operator: op, now: time.Now}
}

func (s *Service) ExportCSV(ctx context.Context, kind notify.Kind, w io.Writer) error {
	return ExportCSV(ctx, s.storage, kind, w)
}

func (s *Service) Backup(ctx context.Context, w io.Writer) error {
	return Write(ctx, s.storage, w, s.now())
}

// Restore reads an archive and writes it back in one transaction.
func (s *Service) Restore(ctx context.Context, data []byte, full bool) (*actions.RestoreCounts, error) {
	doc, err := Read(data)
	if err != nil {
		return nil, err
	}
	return Restore(ctx, s.operator, doc, full)
}
