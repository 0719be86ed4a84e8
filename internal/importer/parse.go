package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file")
	ErrTooFewRows      = errors.New("file needs a header row and at least one data row")
	ErrMalformed       = errors.New("malformed file")
)

const docxBody = "word/document.xml"

// Record is one non-blank line of the source file. Line is 1-based.
type Record struct {
	Line  int
	Cells []string
}

// Table is a parsed file: the header record followed by data records.
type Table struct {
	Header  Record
	Records []Record
}

// Parse reads a tabular file, choosing the format by the filename's
// extension. Blank lines are dropped.
func Parse(filename string, data []byte) (*Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		rows, err = parseCSV(data)
	case ".xlsx":
		rows, err = parseXLSX(data)
	case ".docx":
		rows, err = parseDOCX(data)
	default:
		return nil, fmt.Errorf("%w: %q (want .csv, .xlsx or .docx)", ErrUnsupportedFile, filename)
	}
	if err != nil {
		return nil, err
	}

	var records []Record
	for i, cells := range rows {
		if blank(cells) {
			continue
		}
		records = append(records, Record{Line: i + 1, Cells: cells})
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %q has %d", ErrTooFewRows, filename, len(records))
	}
	return &Table{Header: records[0], Records: records[1:]}, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", ErrMalformed, err)
	}
	return rows, nil
}

func parseXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrMalformed, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: xlsx: workbook has no sheets", ErrMalformed)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx sheet %q: %v", ErrMalformed, sheets[0], err)
	}
	return rows, nil
}

// parseDOCX returns the first table of a Word document. A document with no
// table is read as delimited text, one paragraph per line.
func parseDOCX(data []byte) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", ErrMalformed, err)
	}
	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return nil, fmt.Errorf("%w: docx: no %s", ErrMalformed, docxBody)
	}

	rc, err := body.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", ErrMalformed, err)
	}
	defer func() { _ = rc.Close() }()

	table, text, err := walkDocument(rc)
	if err != nil {
		return nil, err
	}
	if table != nil {
		return table, nil
	}
	return parseCSV([]byte(strings.Join(text, "\n")))
}

// walkDocument streams WordprocessingML. It returns the rows of the first
// top-level table as soon as that table closes, or every paragraph's text
// when there is no table.
func walkDocument(r io.Reader) ([][]string, []string, error) {
	dec := xml.NewDecoder(r)
	var (
		depth      int
		inText     bool
		rows       [][]string
		row        []string
		cell       strings.Builder
		paragraph  strings.Builder
		paragraphs []string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, paragraphs, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: docx: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				depth++
			case "tr":
				if depth == 1 {
					row = nil
				}
			case "tc":
				if depth == 1 {
					cell.Reset()
				}
			case "p":
				if depth > 0 && cell.Len() > 0 {
					cell.WriteByte(' ')
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				depth--
				if depth == 0 {
					if rows == nil {
						rows = [][]string{}
					}
					return rows, nil, nil
				}
			case "tr":
				if depth == 1 {
					rows = append(rows, row)
				}
			case "tc":
				if depth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
				}
			case "p":
				if depth == 0 {
					paragraphs = append(paragraphs, paragraph.String())
					paragraph.Reset()
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if !inText {
				continue
			}
			if depth > 0 {
				cell.Write(t)
			} else {
				paragraph.Write(t)
			}
		}
	}
}
