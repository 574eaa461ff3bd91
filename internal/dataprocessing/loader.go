package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"invsummary/pkg/contracts/domain"
)

// Format identifies how an uploaded file is encoded
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

const excelMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LoadOptions configures how a file is turned into a row-set
type LoadOptions struct {
	// Source is the provenance label stamped on every record
	Source string
	// Kind marks the row-set flavour (inventory or RAP)
	Kind domain.RowSetKind
	// LabelColumn receives the source label; defaults to "Location"
	LabelColumn string
	// FileName is kept for display and export naming
	FileName string
	// MaxRows limits the number of data rows; 0 means unlimited
	MaxRows int
	// Logger receives load diagnostics; defaults to slog.Default()
	Logger *slog.Logger
}

// DetectFormat picks a format from a file name's extension
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatExcel, nil
	}
	return "", &UnsupportedFormatError{Indicator: filename}
}

// ParseFormat maps a declared format indicator (short name or MIME type)
// to a Format.
func ParseFormat(indicator string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(indicator))
	if i := strings.Index(normalized, ";"); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}
	switch normalized {
	case "csv", ".csv", "text/csv":
		return FormatCSV, nil
	case "xlsx", ".xlsx", "excel", "spreadsheet", excelMIME:
		return FormatExcel, nil
	}
	return "", &UnsupportedFormatError{Indicator: indicator}
}

// Load reads r according to format and returns a labelled row-set.
// The first row is the header; fully blank data rows are skipped.
func Load(r io.Reader, format Format, opts LoadOptions) (*domain.RowSet, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatCSV:
		rows, err = readCSVRows(r)
	case FormatExcel:
		rows, err = readExcelRows(r)
	default:
		return nil, &UnsupportedFormatError{Indicator: string(format)}
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	headers := normalizeHeaders(rows[0])
	labelColumn := opts.LabelColumn
	if labelColumn == "" {
		labelColumn = domain.ColumnLocation
	}

	rs := &domain.RowSet{
		Source:   opts.Source,
		Kind:     opts.Kind,
		FileName: opts.FileName,
		Columns:  appendColumn(headers, labelColumn),
		Records:  make([]domain.Record, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if opts.MaxRows > 0 && len(rs.Records) >= opts.MaxRows {
			return nil, fmt.Errorf("%w (limit %d)", ErrTooManyRows, opts.MaxRows)
		}

		values := make(map[string]any, len(headers)+1)
		for i, h := range headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			values[h] = parseCell(cell)
		}
		// The label is assigned after parsing so it wins over any uploaded column.
		values[labelColumn] = opts.Source

		rs.Records = append(rs.Records, domain.Record{Source: opts.Source, Values: values})
	}

	logger.Debug("row-set loaded",
		slog.String("source", opts.Source),
		slog.String("kind", string(opts.Kind)),
		slog.String("format", string(format)),
		slog.Int("columns", len(rs.Columns)),
		slog.Int("records", len(rs.Records)))

	return rs, nil
}

// LoadFile opens path, detects its format from the extension and loads it
func LoadFile(path string, opts LoadOptions) (*domain.RowSet, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if opts.FileName == "" {
		opts.FileName = filepath.Base(path)
	}
	return Load(f, format, opts)
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	return rows, nil
}

func readExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}

func appendColumn(headers []string, column string) []string {
	columns := make([]string, 0, len(headers)+1)
	for _, h := range headers {
		if h != column {
			columns = append(columns, h)
		}
	}
	return append(columns, column)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseCell types a raw cell: empty → nil, true/false (any case) → bool,
// anything else is kept verbatim.
func parseCell(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	return cell
}
