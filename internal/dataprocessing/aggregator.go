package dataprocessing

import (
	"sort"

	"invsummary/pkg/contracts/domain"
)

// Aggregate counts the records matching each metric in set.
// The result has one entry per metric, zero when nothing matches.
func Aggregate(rs *domain.RowSet, set MetricSet) domain.Counts {
	counts := make(domain.Counts, len(set))
	for _, m := range set {
		counts[m.Name] = 0
	}
	if rs == nil {
		return counts
	}
	for _, r := range rs.Records {
		for _, m := range set {
			if m.Match(r) {
				counts[m.Name]++
			}
		}
	}
	return counts
}

// ForWebBreakdown counts For Web records by legend category.
// Only categories that occur are present.
func ForWebBreakdown(rs *domain.RowSet) domain.Counts {
	counts := domain.Counts{}
	if rs == nil {
		return counts
	}
	for _, r := range rs.Records {
		if !forWeb(r) {
			continue
		}
		legend, _ := r.Get(domain.ColumnLegends).(string)
		if legend == "" {
			legend = string(domain.LegendOther)
		}
		counts[legend]++
	}
	return counts
}

// SummarizeRap computes the RAP totals and per-country counts.
// Country counts are sorted by country name.
func SummarizeRap(rs *domain.RowSet) domain.RapSummary {
	summary := domain.RapSummary{CountryCounts: []domain.CountryCount{}}
	if rs == nil {
		return summary
	}
	summary.Source = rs.Source

	byCountry := make(map[string]int)
	for _, r := range rs.Records {
		if !hasStock(r) {
			continue
		}
		summary.TotalCount++
		if isHongKong(r) {
			summary.HongKongCount++
		}
		if country, ok := r.Get(domain.ColumnCountry).(string); ok {
			byCountry[country]++
		}
	}

	for country, n := range byCountry {
		summary.CountryCounts = append(summary.CountryCounts, domain.CountryCount{Country: country, Count: n})
	}
	sort.Slice(summary.CountryCounts, func(i, j int) bool {
		return summary.CountryCounts[i].Country < summary.CountryCounts[j].Country
	})
	return summary
}
