package transfer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// PreviewRows is how many data rows a Preview keeps.
const PreviewRows = 5

// Preview summarizes an arbitrary CSV without interpreting its columns.
type Preview struct {
	Columns  []string   `json:"columns"`
	RowCount int        `json:"row_count"`
	Rows     [][]string `json:"preview"`
}

// ReadPreview consumes the whole stream, counting data rows and keeping the
// first PreviewRows of them. Rows may differ in length.
func ReadPreview(r io.Reader) (*Preview, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &RowError{Line: 1, Err: errors.New("missing header row")}
		}
		return nil, wrapReadError(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	p := &Preview{Columns: header, Rows: [][]string{}}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return nil, wrapReadError(err)
		}
		p.RowCount++
		if len(p.Rows) < PreviewRows {
			p.Rows = append(p.Rows, row)
		}
	}
}
