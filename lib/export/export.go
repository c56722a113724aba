// Package export appends structured rows to a delimited-text or
// spreadsheet artifact.
//
// Spreadsheet formats have no append primitive at rest: appending
// means decoding the whole existing workbook into an editable form
// first. That read happens exactly once per Writer, on the
// unopened -> openedAppend transition, so the invariant is carried
// by the state machine instead of a boolean flag:
//
//	unopened --WriteRow--> openedWrite | openedAppend --Close--> closed
//
// Append mode against a missing artifact degenerates to overwrite.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLS  Format = "xls"
	FormatXLSX Format = "xlsx"
)

// IsSpreadsheet reports whether the format is workbook-encoded.
// Both spreadsheet extensions go through the same encoder.
func (f Format) IsSpreadsheet() bool {
	return f == FormatXLS || f == FormatXLSX
}

type Mode int

const (
	Overwrite Mode = iota
	Append
)

const DefaultSheet = "My Worksheet"

var ErrClosed = errors.New("export: writer is closed")
var ErrNotSpreadsheet = errors.New("export: read-back requires a spreadsheet format")

type writerState int

const (
	stateUnopened writerState = iota
	stateOpenedWrite
	stateOpenedAppend
	stateClosed
)

type Options struct {
	Format Format
	Mode   Mode
	// Sheet defaults to DefaultSheet. Ignored for FormatCSV.
	Sheet string
}

// Writer appends rows to {base}.{format}. The artifact is not
// touched until the first WriteRow. A Writer is not safe for
// concurrent use, and two Writers on one path will corrupt it.
type Writer struct {
	path   string
	format Format
	mode   Mode
	sheet  string

	state  writerState
	cursor int

	book *excelize.File

	file *os.File
	csv  *csv.Writer

	// number of times the existing artifact was decoded for its
	// row count, observed by tests
	appendReads int
}

func NewWriter(base string, opts Options) *Writer {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Writer{
		path:   fmt.Sprintf("%s.%s", base, opts.Format),
		format: opts.Format,
		mode:   opts.Mode,
		sheet:  sheet,
	}
}

func (w *Writer) Path() string { return w.path }

// Rows returns the current row cursor: existing rows plus rows
// written through this Writer.
func (w *Writer) Rows() int { return w.cursor }

// WriteRow appends one logical row and advances the cursor by
// exactly one. The first call opens the artifact.
func (w *Writer) WriteRow(row []string) error {
	switch w.state {
	case stateClosed:
		return ErrClosed
	case stateUnopened:
		if err := w.open(); err != nil {
			w.state = stateClosed
			return err
		}
	}
	if err := w.writeRow(row); err != nil {
		w.abort()
		return err
	}
	w.cursor++
	return nil
}

func (w *Writer) open() error {
	_, err := os.Stat(w.path)
	exists := err == nil

	if w.mode == Append && exists {
		w.appendReads++
		w.state = stateOpenedAppend
		if w.format.IsSpreadsheet() {
			return w.openWorkbookAppend()
		}
		return w.openDelimitedAppend()
	}

	w.state = stateOpenedWrite
	if w.format.IsSpreadsheet() {
		w.book = excelize.NewFile()
		return w.book.SetSheetName("Sheet1", w.sheet)
	}
	w.file, err = os.Create(w.path)
	if err != nil {
		return err
	}
	w.csv = csv.NewWriter(w.file)
	return nil
}

// decode the whole existing workbook so new rows continue after
// its last row. Falls back to the first sheet when the requested
// sheet is absent, matching how a reopened artifact from an older
// run may carry a different sheet name.
func (w *Writer) openWorkbookAppend() error {
	book, err := excelize.OpenFile(w.path)
	if err != nil {
		return err
	}
	w.book = book

	if idx, _ := book.GetSheetIndex(w.sheet); idx < 0 {
		w.sheet = book.GetSheetName(0)
	}
	rows, err := book.GetRows(w.sheet)
	if err != nil {
		return err
	}
	w.cursor = len(rows)
	return nil
}

// count existing lines once, then reopen for appending.
func (w *Writer) openDelimitedAppend() error {
	existing, err := os.Open(w.path)
	if err != nil {
		return err
	}
	records, err := csv.NewReader(existing).ReadAll()
	existing.Close()
	if err != nil {
		return err
	}
	w.cursor = len(records)

	w.file, err = os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	w.csv = csv.NewWriter(w.file)
	return nil
}

func (w *Writer) writeRow(row []string) error {
	if !w.format.IsSpreadsheet() {
		return w.csv.Write(row)
	}
	for col, value := range row {
		cell, err := excelize.CoordinatesToCellName(col+1, w.cursor+1)
		if err != nil {
			return err
		}
		err = w.book.SetCellValue(w.sheet, cell, value)
		if err != nil {
			return err
		}
	}
	return nil
}

// Save makes the rows written so far durable. For spreadsheet
// formats it serializes the workbook to disk; for delimited text
// it flushes the stream. Safe to call repeatedly; callers writing
// long exports should call it periodically to bound the window of
// unsaved work.
func (w *Writer) Save() error {
	switch w.state {
	case stateClosed:
		return ErrClosed
	case stateUnopened:
		return nil
	}
	if w.format.IsSpreadsheet() {
		return w.book.SaveAs(w.path)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// abort releases handles without saving. A row that failed to
// encode must not leave the writer half-open.
func (w *Writer) abort() {
	if w.book != nil {
		w.book.Close()
		w.book = nil
	}
	if w.file != nil {
		w.file.Close()
		w.file = nil
		w.csv = nil
	}
	w.state = stateClosed
}

// Close saves and releases the artifact. Closing twice is a
// no-op.
func (w *Writer) Close() error {
	if w.state == stateClosed || w.state == stateUnopened {
		w.state = stateClosed
		return nil
	}

	var errlist []error
	if w.format.IsSpreadsheet() {
		if err := w.book.SaveAs(w.path); err != nil {
			errlist = append(errlist, err)
		}
		if err := w.book.Close(); err != nil {
			errlist = append(errlist, err)
		}
		w.book = nil
	} else {
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			errlist = append(errlist, err)
		}
		if err := w.file.Close(); err != nil {
			errlist = append(errlist, err)
		}
		w.file = nil
		w.csv = nil
	}

	w.state = stateClosed
	return errors.Join(errlist...)
}
