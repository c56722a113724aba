package export

import "github.com/xuri/excelize/v2"

// ReadRows returns rows [start, end) of a spreadsheet artifact,
// zero-based. An end below zero means "through the last row". An
// empty sheet name means the writer's sheet.
func (w *Writer) ReadRows(start, end int, sheet string) ([][]string, error) {
	if !w.format.IsSpreadsheet() {
		return nil, ErrNotSpreadsheet
	}
	if sheet == "" {
		sheet = w.sheet
	}

	book := w.book
	if book == nil {
		opened, err := excelize.OpenFile(w.path)
		if err != nil {
			return nil, err
		}
		defer opened.Close()
		book = opened
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if end < 0 || end > len(rows) {
		end = len(rows)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return nil, nil
	}
	return rows[start:end], nil
}
