// Package importer reads word lists from spreadsheets, CSV and text files.
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/wordmatch/internal/wordbank"
)

// Import errors.
var (
	ErrNoWords     = errors.New("no usable words")
	ErrMalformed   = errors.New("malformed file")
	ErrUnsupported = errors.New("unsupported file type")
)

// HeaderName is the header cell that marks the word column.
const HeaderName = "word"

// WordColumn is the zero-based column read when no header names one.
const WordColumn = 1

// Extensions lists the accepted file extensions.
func Extensions() []string {
	return []string{".xlsx", ".csv", ".txt"}
}

// File reads words from path, choosing the format by extension.
func File(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".csv", ".txt":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only import.
			_ = cerr
		}
	}()
	switch ext {
	case ".xlsx":
		return XLSX(f)
	case ".csv":
		return CSV(f)
	}
	return Text(f)
}

// XLSX reads the word column of the first sheet, below its header row.
func XLSX(r io.Reader) ([]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer func() {
		if cerr := book.Close(); cerr != nil {
			// Best-effort close of the workbook.
			_ = cerr
		}
	}()
	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromRows(rows)
}

// CSV reads the word column of a comma separated file. Rows may have
// different lengths.
func CSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromRows(rows)
}

// Text reads one word per line.
func Text(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nonEmpty(wordbank.Sanitize(lines))
}

// fromRows skips the header row and reads the second column, unless the
// header names a word column.
func fromRows(rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, ErrNoWords
	}
	col := WordColumn
	for i, cell := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(cell), HeaderName) {
			col = i
			break
		}
	}
	cells := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		cells = append(cells, row[col])
	}
	return nonEmpty(wordbank.Sanitize(cells))
}

func nonEmpty(words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}
