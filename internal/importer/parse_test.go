package importer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const wordDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>%s</w:body>
</w:document>`

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(docxBody)
	require.NoError(t, err)
	_, err = w.Write([]byte(fmt.Sprintf(wordDocument, body)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func tableXML(rows ...[]string) string {
	var b bytes.Buffer
	b.WriteString("<w:tbl>")
	for _, row := range rows {
		b.WriteString("<w:tr>")
		for _, cell := range row {
			b.WriteString("<w:tc><w:p><w:r><w:t>" + cell + "</w:t></w:r></w:p></w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

func paragraphXML(lines ...string) string {
	var b bytes.Buffer
	for _, line := range lines {
		b.WriteString("<w:p><w:r><w:t>" + line + "</w:t></w:r></w:p>")
	}
	return b.String()
}

func TestParse_CSV(t *testing.T) {
	data := []byte("\xef\xbb\xbfID, Name ,Type\n" +
		"1,\"Checking, main\",bank\n" +
		"\n" +
		"2,Say \"hi\",cash\n")

	table, err := Parse("accounts.CSV", data)

	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name ", "Type"}, table.Header.Cells)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"1", "Checking, main", "bank"}, table.Records[0].Cells)
	assert.Equal(t, 2, table.Records[0].Line)
	assert.Equal(t, 4, table.Records[1].Line, "blank lines keep later line numbers")
	assert.Equal(t, `Say "hi"`, table.Records[1].Cells[1])
}

func TestParse_TooFewRows(t *testing.T) {
	_, err := Parse("only-header.csv", []byte("id,name\n\n"))
	assert.ErrorIs(t, err, ErrTooFewRows)
}

func TestParse_Unsupported(t *testing.T) {
	_, err := Parse("notes.txt", []byte("id,name\n1,a\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = Parse("noext", []byte("id\n1\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"id", "name", "initial_balance"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"a1", "Checking", "100.50"}))
	_, err := f.NewSheet("Ignored")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Ignored", "A1", &[]any{"nope"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Parse("book.xlsx", buf.Bytes())

	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "initial_balance"}, table.Header.Cells)
	require.Len(t, table.Records, 1)
	assert.Equal(t, []string{"a1", "Checking", "100.50"}, table.Records[0].Cells)
}

func TestParse_XLSXMalformed(t *testing.T) {
	_, err := Parse("broken.xlsx", []byte("not a workbook"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParse_DOCXFirstTable(t *testing.T) {
	body := paragraphXML("Statement for June") +
		tableXML([]string{"id", "name"}, []string{"1", "Rent"}) +
		tableXML([]string{"id", "name"}, []string{"2", "Second table"})

	table, err := Parse("statement.docx", docx(t, body))

	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.Header.Cells)
	require.Len(t, table.Records, 1)
	assert.Equal(t, []string{"1", "Rent"}, table.Records[0].Cells)
}

func TestParse_DOCXTextFallback(t *testing.T) {
	body := paragraphXML("id,name", "1,Rent", "2,Power")

	table, err := Parse("plain.docx", docx(t, body))

	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"2", "Power"}, table.Records[1].Cells)
}

func TestParse_DOCXWithoutBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Parse("empty.docx", buf.Bytes())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRows_FieldStates(t *testing.T) {
	table := &Table{
		Header:  Record{Line: 1, Cells: []string{" ID ", "Name", "Notes"}},
		Records: []Record{{Line: 2, Cells: []string{"x", " "}}},
	}

	rows := Rows(table)

	require.Len(t, rows, 1)
	v, state := rows[0].Field("id")
	assert.Equal(t, "x", v)
	assert.Equal(t, FieldPresent, state)
	_, state = rows[0].Field("name")
	assert.Equal(t, FieldEmpty, state)
	_, state = rows[0].Field("notes")
	assert.Equal(t, FieldEmpty, state, "short rows leave trailing fields empty")
	_, state = rows[0].Field("amount")
	assert.Equal(t, FieldNoHeader, state)
	assert.Equal(t, "column amount is missing", rows[0].missing("amount"))
	assert.Equal(t, "name is required", rows[0].missing("name"))
}

func TestCellParsing(t *testing.T) {
	d, err := parseDecimal("-$1,234.50")
	require.NoError(t, err)
	assert.Equal(t, "-1234.5", d.String())

	date, err := parseDate("3/7/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-07", formatDate(date))

	_, err = parseDate("next tuesday")
	assert.Error(t, err)

	b, err := parseBool("Yes")
	require.NoError(t, err)
	assert.True(t, b)
}
