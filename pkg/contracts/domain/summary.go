package domain

// Counts maps a metric (or category) name to a non-negative row count
type Counts map[string]int

// SummaryRow is one row of a combined summary table
type SummaryRow struct {
	Label  string `json:"label"`
	Counts Counts `json:"counts"`
}

// SummaryTable is a rectangular source × metric table whose last row is
// the column-wise total of the preceding rows.
type SummaryTable struct {
	Columns []string     `json:"columns"`
	Rows    []SummaryRow `json:"rows"`
}

// Row returns the row with the given label
func (t *SummaryTable) Row(label string) (SummaryRow, bool) {
	if t == nil {
		return SummaryRow{}, false
	}
	for _, row := range t.Rows {
		if row.Label == label {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// Total returns the synthesized total row
func (t *SummaryTable) Total() SummaryRow {
	row, _ := t.Row(TotalLabel)
	return row
}

// Sources returns the labels of the real (non-total) rows
func (t *SummaryTable) Sources() []string {
	if t == nil {
		return nil
	}
	labels := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.Label != TotalLabel {
			labels = append(labels, row.Label)
		}
	}
	return labels
}

// SourceError records why a source was excluded from a combined summary
type SourceError struct {
	Source  string   `json:"source"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

// InventoryReport bundles the tables shown for a set of inventory uploads
type InventoryReport struct {
	Summary  *SummaryTable `json:"summary"`
	ForWeb   *SummaryTable `json:"for_web"`
	Rejected []SourceError `json:"rejected,omitempty"`
}

// CountryCount is the number of RAP stock entries listed for one country
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// RapSummary holds the counts computed over a RAP upload
type RapSummary struct {
	Source        string         `json:"source"`
	TotalCount    int            `json:"total_count"`
	HongKongCount int            `json:"hong_kong_count"`
	CountryCounts []CountryCount `json:"country_counts"`
}
