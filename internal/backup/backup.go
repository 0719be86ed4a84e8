package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// Version is the archive format written by Write.
const Version = 1

const documentName = "backup.json"

var (
	ErrMalformedArchive   = errors.New("malformed backup archive")
	ErrUnsupportedVersion = errors.New("unsupported backup version")
)

// Document is the JSON body of a backup archive.
type Document struct {
	Version     int              `json:"version"`
	CreatedAt   time.Time        `json:"createdAt"`
	Collections *actions.Dataset `json:"collections"`
}

// Processor runs a write action. The operator's delegator satisfies it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Snapshot reads every collection from the store.
func Snapshot(ctx context.Context, store *storage.Storage) (*actions.Dataset, error) {
	var (
		data actions.Dataset
		err  error
	)
	if data.Accounts, err = store.Accounts.List(ctx, nil); err != nil {
		return nil, fmt.Errorf("snapshot accounts: %w", err)
	}
	if data.Categories, err = store.Categories.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot categories: %w", err)
	}
	if data.Transactions, err = store.Transactions.List(ctx, nil); err != nil {
		return nil, fmt.Errorf("snapshot transactions: %w", err)
	}
	if data.Budgets, err = store.Budgets.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot budgets: %w", err)
	}
	if data.Goals, err = store.Goals.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot goals: %w", err)
	}
	if data.Bills, err = store.Bills.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot bills: %w", err)
	}
	if data.Loans, err = store.Loans.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot loans: %w", err)
	}
	if data.Plans, err = store.Plans.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot plans: %w", err)
	}
	return &data, nil
}

// Write snapshots the store into a zip archive holding backup.json.
func Write(ctx context.Context, store *storage.Storage, w io.Writer, now time.Time) error {
	data, err := Snapshot(ctx, store)
	if err != nil {
		return err
	}
	doc := Document{Version: Version, CreatedAt: now.UTC(), Collections: data}

	zw := zip.NewWriter(w)
	entry, err := zw.CreateHeader(&zip.FileHeader{
		Name:     documentName,
		Method:   zip.Deflate,
		Modified: doc.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", documentName, err)
	}
	enc := json.NewEncoder(entry)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", documentName, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"accounts":     len(data.Accounts),
		"transactions": len(data.Transactions),
	}).Info("Backup.Write.complete")
	return nil
}

// Read decodes an archive produced by Write.
func Read(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}
	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == documentName {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: no %s", ErrMalformedArchive, documentName)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}
	defer func() { _ = rc.Close() }()

	var doc Document
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArchive, documentName, err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Collections == nil {
		doc.Collections = &actions.Dataset{}
	}
	if err := checkRecords(doc.Collections); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkRecords rejects null entries in any collection.
func checkRecords(d *actions.Dataset) error {
	for name, n := range map[string]int{
		"accounts":     firstNil(d.Accounts),
		"categories":   firstNil(d.Categories),
		"transactions": firstNil(d.Transactions),
		"budgets":      firstNil(d.Budgets),
		"goals":        firstNil(d.Goals),
		"bills":        firstNil(d.Bills),
		"loans":        firstNil(d.Loans),
		"plans":        firstNil(d.Plans),
	} {
		if n >= 0 {
			return fmt.Errorf("%w: %s[%d] is null", ErrMalformedArchive, name, n)
		}
	}
	return nil
}

func firstNil[T any](rows []*T) int {
	for i, row := range rows {
		if row == nil {
			return i
		}
	}
	return -1
}

// Restore writes doc through op in a single transaction. A full restore
// replaces everything in the store.
func Restore(ctx context.Context, op Processor, doc *Document, full bool) (*actions.RestoreCounts, error) {
	action := &actions.Restore{Data: doc.Collections, Full: full}
	if err := op.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("restore backup from %s: %w", doc.CreatedAt.Format(time.RFC3339), err)
	}
	return &action.Counts, nil
}
