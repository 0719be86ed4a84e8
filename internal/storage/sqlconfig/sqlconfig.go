package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/bob/dialect/sqlite/um"
	"github.com/stephenafamo/scan"
)

// DateLayout is the on-disk date format. Lexicographic order of values in
// this layout equals chronological order.
const DateLayout = "2006-01-02"

// ErrNotFound is returned when a lookup or update matches no row.
var ErrNotFound = errors.New("record not found")

func whereID(id uuid.UUID) bob.Expression {
	return sqlite.Quote("id").EQ(sqlite.Arg(id))
}

func columnsOf(cols []string) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}

func findByID[T any](ctx context.Context, exec bob.Executor, table string, cols []string, id uuid.UUID) (T, error) {
	q := sqlite.Select(
		sm.Columns(columnsOf(cols)...),
		sm.From(table),
		sm.Where(whereID(id)),
	)
	row, err := bob.One(ctx, exec, q, scan.StructMapper[T]())
	if errors.Is(err, sql.ErrNoRows) {
		return row, fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return row, err
}

func listRows[T any](ctx context.Context, exec bob.Executor, table string, cols []string, mods ...bob.Mod[*dialect.SelectQuery]) ([]T, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnsOf(cols)...),
		sm.From(table),
	}
	queryMods = append(queryMods, mods...)
	return bob.All(ctx, exec, sqlite.Select(queryMods...), scan.StructMapper[T]())
}

// pageMods fetches limit+1 rows so callers can detect a further page.
// SQLite rejects OFFSET without LIMIT, so an offset alone uses LIMIT -1.
func pageMods(limit, offset int) []bob.Mod[*dialect.SelectQuery] {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	switch {
	case limit > 0:
		queryMods = append(queryMods, sm.Limit(limit+1))
	case offset > 0:
		queryMods = append(queryMods, sm.Limit(-1))
	}
	if offset > 0 {
		queryMods = append(queryMods, sm.Offset(offset))
	}
	return queryMods
}

func insertRow(ctx context.Context, exec bob.Executor, table string, cols []string, vals []any) error {
	values := make([]bob.Expression, len(vals))
	for i, v := range vals {
		values[i] = sqlite.Arg(v)
	}
	_, err := bob.Exec(ctx, exec, sqlite.Insert(
		im.Into(table, cols...),
		im.Values(values...),
	))
	return err
}

// updateByID writes every column except the leading id column.
func updateByID(ctx context.Context, exec bob.Executor, table string, cols []string, vals []any) error {
	id, ok := vals[0].(uuid.UUID)
	if !ok {
		return fmt.Errorf("%s: first value must be the row id", table)
	}
	queryMods := []bob.Mod[*dialect.UpdateQuery]{um.Table(table)}
	for i := 1; i < len(cols); i++ {
		queryMods = append(queryMods, um.SetCol(cols[i]).ToArg(vals[i]))
	}
	queryMods = append(queryMods, um.Where(whereID(id)))

	res, err := bob.Exec(ctx, exec, sqlite.Update(queryMods...))
	if err != nil {
		return err
	}
	return requireAffected(res, table, id)
}

func deleteByID(ctx context.Context, exec bob.Executor, table string, id uuid.UUID) error {
	res, err := bob.Exec(ctx, exec, sqlite.Delete(
		dm.From(table),
		dm.Where(whereID(id)),
	))
	if err != nil {
		return err
	}
	return requireAffected(res, table, id)
}

// DeleteAll removes every row of table.
func DeleteAll(ctx context.Context, exec bob.Executor, table string) error {
	_, err := bob.Exec(ctx, exec, sqlite.Delete(dm.From(table)))
	return err
}

func requireAffected(res sql.Result, table string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func newID(id uuid.UUID) (uuid.UUID, error) {
	if id != uuid.Nil {
		return id, nil
	}
	return uuid.NewV4()
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(t), Valid: true}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseNullDate(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	return parseDate(s.String)
}
