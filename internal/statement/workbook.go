// Package statement turns bank-card statement workbooks into transaction
// candidates ready for categorization and storage.
package statement

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrBadFormat marks input that is not a readable spreadsheet. It is the
// only hard failure this package produces; individual malformed rows
// degrade instead (see parser.go).
var ErrBadFormat = errors.New("not a readable spreadsheet")

// ReadWorkbook decodes the active sheet of an xlsx workbook into a grid of
// formatted cell values. Rows may be ragged; trailing empty cells are not
// padded.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadFormat)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return rows, nil
}
