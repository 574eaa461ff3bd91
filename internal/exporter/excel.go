package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invsummary/pkg/contracts/domain"
)

// Sheet is a named summary table destined for one worksheet
type Sheet struct {
	Name  string
	Table *domain.SummaryTable
}

// WriteSummaryWorkbook writes each sheet as a worksheet whose first column
// holds row labels and whose header row holds the table's columns.
func WriteSummaryWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}
		if err := writeTable(f, sheet.Name, sheet.Table); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, table *domain.SummaryTable) error {
	if table == nil {
		return nil
	}

	header := make([]any, 0, len(table.Columns)+1)
	header = append(header, "Location")
	for _, c := range table.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}

	for i, row := range table.Rows {
		values := make([]any, 0, len(table.Columns)+1)
		values = append(values, row.Label)
		for _, c := range table.Columns {
			values = append(values, row.Counts[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %q of %q: %w", row.Label, sheet, err)
		}
	}
	return nil
}

// RapTable converts a RAP summary into a two-column table of country counts
// followed by the Total Count and Hong Kong Count figures.
func RapTable(s domain.RapSummary) *domain.SummaryTable {
	table := &domain.SummaryTable{Columns: []string{"Count"}}
	for _, cc := range s.CountryCounts {
		table.Rows = append(table.Rows, domain.SummaryRow{Label: cc.Country, Counts: domain.Counts{"Count": cc.Count}})
	}
	table.Rows = append(table.Rows,
		domain.SummaryRow{Label: "Total Count", Counts: domain.Counts{"Count": s.TotalCount}},
		domain.SummaryRow{Label: "Hong Kong Count", Counts: domain.Counts{"Count": s.HongKongCount}},
	)
	return table
}
