package dataprocessing

import (
	"sort"

	"invsummary/pkg/contracts/domain"
)

// CombineOptions controls row and column ordering of a combined table
type CombineOptions struct {
	// ColumnOrder lists columns that come first; others follow alphabetically
	ColumnOrder []string
	// RowOrder lists source labels that come first; others follow alphabetically
	RowOrder []string
	// OmitTotal suppresses the Total row
	OmitTotal bool
}

// DefaultInventoryOptions orders columns as the inventory metric set and rows HK, USA, IND
func DefaultInventoryOptions() CombineOptions {
	return CombineOptions{
		ColumnOrder: InventoryMetrics.Names(),
		RowOrder:    domain.InventorySlots,
	}
}

// ForWebOptions orders the For Web breakdown by legend category
func ForWebOptions() CombineOptions {
	columns := make([]string, len(domain.LegendCategories))
	for i, c := range domain.LegendCategories {
		columns[i] = string(c)
	}
	return CombineOptions{ColumnOrder: columns, RowOrder: domain.InventorySlots}
}

// Combine builds a table with one row per source and one column per key
// seen in any source. Missing cells are zero. Unless OmitTotal is set a
// Total row holding column sums is appended. A source labelled "Total" is
// ignored.
func Combine(results map[string]domain.Counts, opts CombineOptions) *domain.SummaryTable {
	table := &domain.SummaryTable{Columns: []string{}, Rows: []domain.SummaryRow{}}

	keys := make(map[string]struct{})
	labels := make([]string, 0, len(results))
	for label, counts := range results {
		if label == domain.TotalLabel {
			continue
		}
		labels = append(labels, label)
		for k := range counts {
			keys[k] = struct{}{}
		}
	}
	if len(labels) == 0 {
		return table
	}

	table.Columns = orderKeys(keys, opts.ColumnOrder)

	labelSet := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		labelSet[l] = struct{}{}
	}
	total := make(domain.Counts, len(table.Columns))
	for _, label := range orderKeys(labelSet, opts.RowOrder) {
		row := domain.SummaryRow{Label: label, Counts: make(domain.Counts, len(table.Columns))}
		for _, col := range table.Columns {
			n := results[label][col]
			row.Counts[col] = n
			total[col] += n
		}
		table.Rows = append(table.Rows, row)
	}

	if !opts.OmitTotal {
		table.Rows = append(table.Rows, domain.SummaryRow{Label: domain.TotalLabel, Counts: total})
	}
	return table
}

func orderKeys(keys map[string]struct{}, preferred []string) []string {
	ordered := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range preferred {
		if _, ok := keys[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		ordered = append(ordered, k)
	}

	rest := make([]string, 0, len(keys)-len(ordered))
	for k := range keys {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}
