package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// Inventory and RAP CSV fixtures shared by service and handler tests.
const (
	// HKInventoryCSV yields Total Stones 3, NFW 2, For Web 1, On Hold 1,
	// Memo In 1, Memo Out 1, NFW Memo 1, NFW Available 0
	HKInventoryCSV = "Item CD,Not for Web,Legends\n" +
		"A1,True,Hold\n" +
		"A2,False,\n" +
		"A3,True,Memo/Consign Out\n"

	// USAInventoryCSV carries every required column
	USAInventoryCSV = "Item CD,Not for Web,Legends\n" +
		"U1,False,Memo/Consign IN->Out\n" +
		"U2,True,\n"

	// MissingLegendsCSV lacks the Legends column
	MissingLegendsCSV = "Item CD,Not for Web\n" +
		"Z,True\n"

	// RapCSV has five rows with a Stock #, two of them in Hong Kong
	RapCSV = "Rapnet Lot #,Stock #,Country\n" +
		"L1,S1,Hong Kong\n" +
		"L2,S2,USA\n" +
		"L3,,Hong Kong\n" +
		"L4,S4,Hong Kong\n" +
		"L5,S5,\n" +
		"L6,S6,India\n"
)

// WorkbookBytes builds an in-memory XLSX whose first sheet holds rows
func WorkbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
