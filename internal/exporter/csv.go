package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"invsummary/internal/config"
	"invsummary/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DrillDownFileName names the CSV export for a metric of a source
func DrillDownFileName(metric, source string) string {
	return fmt.Sprintf("%s_%s_data.csv", sanitizeName(metric), sanitizeName(source))
}

// WriteRecordsCSV writes a header row in column order followed by one row
// per record. No index column is written.
func WriteRecordsCSV(w io.Writer, columns []string, records []domain.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	row := make([]string, len(columns))
	for i, record := range records {
		for j, column := range columns {
			row[j] = formatCell(record.Get(column))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVWriter saves exports under the configured exports directory
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Columns   []string
	Records   []domain.Record
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes records to filePath and returns the resolved path
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	if err := WriteRecordsCSV(file, options.Columns, options.Records); err != nil {
		return "", err
	}
	return fullPath, file.Close()
}

// WriteDrillDown exports the records behind a metric using the standard file name
func (w *CSVWriter) WriteDrillDown(metric, source string, columns []string, records []domain.Record) (string, error) {
	return w.WriteCSV(DrillDownFileName(metric, source), WriteOptions{
		Columns:   columns,
		Records:   records,
		BOMPrefix: true,
	})
}

// resolvePath places relative paths under the exports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetExportPath(filePath)
}

// sanitizeName keeps file names portable; spaces and '#' are preserved
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
