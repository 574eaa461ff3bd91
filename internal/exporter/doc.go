// Package exporter writes report data out of the service.
//
// WriteRecordsCSV streams drill-down records as CSV with the row-set's
// column order, rendering nil as empty and booleans as True/False.
// CSVWriter saves the same output under the configured exports directory,
// optionally prefixed with a UTF-8 BOM so Excel detects the encoding.
// WriteSummaryWorkbook renders summary tables into an XLSX workbook.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	path, err := writer.WriteDrillDown("NFW Memo", "HK", rs.Columns, records)
package exporter
