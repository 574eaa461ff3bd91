package dataprocessing

import "invsummary/pkg/contracts/domain"

// RapColumns are the columns a RAP row-set must carry
var RapColumns = []string{domain.ColumnRapnetLot, domain.ColumnStockNo, domain.ColumnCountry}

// InventoryColumns are the columns an inventory row-set must carry
var InventoryColumns = []string{domain.ColumnItemCD, domain.ColumnNotForWeb, domain.ColumnLegends}

// ValidationResult is the outcome of a schema check
type ValidationResult struct {
	Valid   bool
	Missing []string
	Source  string
}

// Err returns a *MissingColumnsError when the result is invalid, nil otherwise
func (v ValidationResult) Err() error {
	if v.Valid {
		return nil
	}
	return &MissingColumnsError{Source: v.Source, Missing: v.Missing}
}

// Validate checks that every required column is present, by exact name.
// Missing columns are reported in the order they appear in required.
func Validate(rs *domain.RowSet, required []string) ValidationResult {
	result := ValidationResult{Valid: true}
	if rs == nil {
		return ValidationResult{Missing: append([]string(nil), required...)}
	}
	result.Source = rs.Source

	for _, column := range required {
		if !rs.HasColumn(column) {
			result.Missing = append(result.Missing, column)
		}
	}
	result.Valid = len(result.Missing) == 0
	return result
}

// RequiredColumns returns the schema for a row-set kind
func RequiredColumns(kind domain.RowSetKind) []string {
	if kind == domain.RowSetRAP {
		return RapColumns
	}
	return InventoryColumns
}
