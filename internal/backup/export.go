package backup

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-desk/internal/importer"
	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// ExportCSV writes every record of kind as CSV using the import headers,
// so the file can be edited and imported back.
func ExportCSV(ctx context.Context, store *storage.Storage, kind notify.Kind, w io.Writer) error {
	header, ok := importer.Header(kind)
	if !ok {
		return fmt.Errorf("%w: %q", importer.ErrUnknownKind, kind)
	}
	rows, err := importer.Records(ctx, store, kind)
	if err != nil {
		return fmt.Errorf("export %s: %w", kind, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("export %s: %w", kind, err)
	}
	return nil
}

// ExportAll writes <kind>.csv for every kind into dir and returns the
// paths written.
func ExportAll(ctx context.Context, store *storage.Storage, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, len(notify.AllKinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range notify.AllKinds {
		path := filepath.Join(dir, string(kind)+".csv")
		paths[i] = path
		g.Go(func() error {
			return exportFile(ctx, store, kind, path)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func exportFile(ctx context.Context, store *storage.Storage, kind notify.Kind, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return ExportCSV(ctx, store, kind, f)
}
