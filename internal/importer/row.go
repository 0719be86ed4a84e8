package importer

import "strings"

// FieldState says why a field has or lacks a value.
type FieldState int

const (
	// FieldPresent means the column exists and the cell is non-blank.
	FieldPresent FieldState = iota
	// FieldEmpty means the column exists but the cell is blank or absent.
	FieldEmpty
	// FieldNoHeader means the file has no such column.
	FieldNoHeader
)

// Row is a data record keyed by normalized header name.
type Row struct {
	Line   int
	values map[string]string
}

// normalizeHeader lower-cases and trims a header cell.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Rows keys every data record of t by its header names. When a header
// repeats, the first column wins.
func Rows(t *Table) []Row {
	columns := make(map[string]int, len(t.Header.Cells))
	for i, h := range t.Header.Cells {
		name := normalizeHeader(h)
		if name == "" {
			continue
		}
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	rows := make([]Row, len(t.Records))
	for i, rec := range t.Records {
		values := make(map[string]string, len(columns))
		for name, col := range columns {
			v := ""
			if col < len(rec.Cells) {
				v = strings.TrimSpace(rec.Cells[col])
			}
			values[name] = v
		}
		rows[i] = Row{Line: rec.Line, values: values}
	}
	return rows
}

// Field returns the trimmed value of name and its state.
func (r Row) Field(name string) (string, FieldState) {
	v, ok := r.values[name]
	switch {
	case !ok:
		return "", FieldNoHeader
	case v == "":
		return "", FieldEmpty
	default:
		return v, FieldPresent
	}
}

// Value returns the field's value and whether it is present.
func (r Row) Value(name string) (string, bool) {
	v, state := r.Field(name)
	return v, state == FieldPresent
}

// missing describes why a required field has no value.
func (r Row) missing(name string) string {
	if _, state := r.Field(name); state == FieldNoHeader {
		return "column " + name + " is missing"
	}
	return name + " is required"
}
