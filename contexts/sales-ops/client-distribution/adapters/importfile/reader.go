package importfile

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"

	"github.com/xuri/excelize/v2"
)

// DefaultMaxBytes caps uploads when no explicit limit is configured.
const DefaultMaxBytes int64 = 5 << 20

// Reader extracts candidate client names from uploaded files.
type Reader struct {
	MaxBytes int64
}

func NewReader(maxBytes int64) Reader {
	return Reader{MaxBytes: maxBytes}
}

// Extract reads .txt and .csv files as lines split on ',' and ';', and .xlsx
// workbooks as the first column of the first sheet. An empty content type
// skips the MIME check.
func (r Reader) Extract(filename string, contentType string, body io.Reader) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".csv", ".xlsx":
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", domainerrors.ErrUnsupportedFile)
	default:
		return nil, fmt.Errorf("%w: only .txt, .csv and .xlsx files are allowed", domainerrors.ErrUnsupportedFile)
	}
	if err := checkContentType(contentType); err != nil {
		return nil, err
	}

	data, err := r.readAll(body)
	if err != nil {
		return nil, err
	}
	if ext == ".xlsx" {
		return ParseWorkbook(data)
	}
	return ParseDelimited(string(data)), nil
}

func (r Reader) readAll(body io.Reader) ([]byte, error) {
	limit := r.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", domainerrors.ErrImportTooLarge, limit)
	}
	return data, nil
}

func checkContentType(contentType string) error {
	if strings.TrimSpace(contentType) == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: malformed content type %q", domainerrors.ErrUnsupportedFile, contentType)
	}
	switch mediaType {
	case "text/plain",
		"text/csv",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return nil
	default:
		return fmt.Errorf("%w: content type %q is not allowed", domainerrors.ErrUnsupportedFile, mediaType)
	}
}

// ParseDelimited splits text into lines and each line on ',' and ';'.
// Quoting is not interpreted.
func ParseDelimited(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	var names []string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';'
		})
		for _, field := range fields {
			if name := strings.TrimSpace(field); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// ParseManualText treats every line as one name.
func ParseManualText(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseWorkbook returns the non-empty text cells of the first column of the
// first sheet.
func ParseWorkbook(data []byte) ([]string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable workbook: %v", domainerrors.ErrUnsupportedFile, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var names []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		cellType, err := workbook.GetCellType(sheets[0], cell)
		if err != nil {
			return nil, fmt.Errorf("read cell %s: %w", cell, err)
		}
		if !isTextCell(cellType) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Numbers, dates and booleans in the first column are not names.
func isTextCell(cellType excelize.CellType) bool {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return true
	default:
		return false
	}
}
