package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Date layouts accepted in cells, tried in order. Spreadsheets often
// render dates in the US style.
var dateLayouts = []string{
	sqlconfig.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
	time.RFC3339,
}

type problems []string

func (p *problems) add(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

// cells applies non-blank fields of a row onto a record. Blank fields
// leave the destination untouched; unparseable ones are recorded as
// problems.
type cells struct {
	row Row
	p   *problems
}

func (c cells) str(name string, dst *string) {
	if v, ok := c.row.Value(name); ok {
		*dst = v
	}
}

func (c cells) lower(name string, dst *string) {
	if v, ok := c.row.Value(name); ok {
		*dst = strings.ToLower(v)
	}
}

func (c cells) decimal(name string, dst *decimal.Decimal) {
	v, ok := c.row.Value(name)
	if !ok {
		return
	}
	d, err := parseDecimal(v)
	if err != nil {
		c.p.add("%s %q is not a number", name, v)
		return
	}
	*dst = d
}

func (c cells) date(name string, dst *time.Time) {
	v, ok := c.row.Value(name)
	if !ok {
		return
	}
	t, err := parseDate(v)
	if err != nil {
		c.p.add("%s %q is not a date", name, v)
		return
	}
	*dst = t
}

func (c cells) boolean(name string, dst *bool) {
	v, ok := c.row.Value(name)
	if !ok {
		return
	}
	b, err := parseBool(v)
	if err != nil {
		c.p.add("%s %q is not true or false", name, v)
		return
	}
	*dst = b
}

func (c cells) integer(name string, dst *int) {
	v, ok := c.row.Value(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.p.add("%s %q is not a whole number", name, v)
		return
	}
	*dst = n
}

func (c cells) id(name string, dst *uuid.UUID) {
	v, ok := c.row.Value(name)
	if !ok {
		return
	}
	id, err := uuid.FromString(v)
	if err != nil {
		c.p.add("%s %q is not a valid UUID", name, v)
		return
	}
	*dst = id
}

// parseDecimal accepts thousands separators and a leading currency sign.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimLeft(s, "$€£")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(sqlconfig.DateLayout)
}
