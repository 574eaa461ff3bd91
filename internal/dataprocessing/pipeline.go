package dataprocessing

import (
	"invsummary/pkg/contracts/domain"
)

// BuildInventoryReport validates and classifies each loaded inventory
// row-set, then combines their metric counts and For Web breakdowns.
// Row-sets failing validation are reported in Rejected and left out of
// both tables. Nil entries are skipped.
func BuildInventoryReport(sets []*domain.RowSet) *domain.InventoryReport {
	report := &domain.InventoryReport{Rejected: []domain.SourceError{}}
	counts := make(map[string]domain.Counts)
	forWeb := make(map[string]domain.Counts)

	for _, rs := range sets {
		if rs == nil {
			continue
		}
		result := Validate(rs, InventoryColumns)
		if !result.Valid {
			report.Rejected = append(report.Rejected, domain.SourceError{
				Source:  rs.Source,
				Message: result.Err().Error(),
				Missing: result.Missing,
			})
			continue
		}
		ClassifyRowSet(rs)
		counts[rs.Source] = Aggregate(rs, InventoryMetrics)
		forWeb[rs.Source] = ForWebBreakdown(rs)
	}

	report.Summary = Combine(counts, DefaultInventoryOptions())
	report.ForWeb = Combine(forWeb, ForWebOptions())
	return report
}

// PrepareRap validates a RAP row-set and returns its summary
func PrepareRap(rs *domain.RowSet) (domain.RapSummary, error) {
	if err := Validate(rs, RapColumns).Err(); err != nil {
		return domain.RapSummary{}, err
	}
	return SummarizeRap(rs), nil
}
