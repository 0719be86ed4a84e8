// Package apiutil holds the error mapping and field parsing shared by the
// v1 handlers.
package apiutil

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/backup"
	"github.com/carson-networks/budget-desk/internal/importer"
	"github.com/carson-networks/budget-desk/internal/logging"
	"github.com/carson-networks/budget-desk/internal/operator"
	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Error maps a service error onto an HTTP status.
func Error(err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, importer.ErrPreviewNotFound):
		return huma.NewError(http.StatusNotFound, msg, err)
	case errors.Is(err, service.ErrInvalid), errors.Is(err, importer.ErrPreviewHasErrors):
		return huma.NewError(http.StatusUnprocessableEntity, msg, err)
	case errors.Is(err, importer.ErrUnsupportedFile),
		errors.Is(err, importer.ErrTooFewRows),
		errors.Is(err, importer.ErrMalformed),
		errors.Is(err, importer.ErrUnknownKind),
		errors.Is(err, backup.ErrMalformedArchive),
		errors.Is(err, backup.ErrUnsupportedVersion):
		return huma.NewError(http.StatusBadRequest, msg, err)
	case errors.Is(err, operator.ErrStopped):
		return huma.NewError(http.StatusServiceUnavailable, msg, err)
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}

// Decimal parses a required decimal field.
func Decimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// OptionalDecimal parses a decimal field that defaults to zero.
func OptionalDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return Decimal(field, s)
}

// NullDecimal parses a decimal field that may be absent.
func NullDecimal(field, s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := Decimal(field, s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// Date parses a YYYY-MM-DD field; empty yields the zero time.
func Date(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(sqlconfig.DateLayout, s)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return t, nil
}

// ID parses a required UUID field.
func ID(field, s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// NullID parses a UUID field that may be absent.
func NullID(field, s string) (uuid.NullUUID, error) {
	if s == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := ID(field, s)
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(sqlconfig.DateLayout)
}

func FormatNullID(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}

func FormatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// Timing starts a named timing on the request's log data and returns the
// func that stops it. Without log data it is a no-op.
func Timing(ctx context.Context, name string) func() {
	if logData := logging.GetLogData(ctx); logData != nil {
		return logData.AddTiming(name)
	}
	return func() {}
}

// Note adds a field to the request's log data, if any.
func Note(ctx context.Context, key string, value any) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData(key, value)
	}
}
