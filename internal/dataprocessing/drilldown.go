package dataprocessing

import "invsummary/pkg/contracts/domain"

// Resolve returns the records behind a metric, in original order.
// An unknown metric yields an empty, non-nil slice.
func Resolve(rs *domain.RowSet, set MetricSet, metric string) []domain.Record {
	matched := []domain.Record{}
	m, ok := set.Lookup(metric)
	if !ok || rs == nil {
		return matched
	}
	for _, r := range rs.Records {
		if m.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// ResolveCountry returns RAP records for a country that carry a Stock #
func ResolveCountry(rs *domain.RowSet, country string) []domain.Record {
	matched := []domain.Record{}
	if rs == nil {
		return matched
	}
	for _, r := range rs.Records {
		c, _ := r.Get(domain.ColumnCountry).(string)
		if c == country && hasStock(r) {
			matched = append(matched, r)
		}
	}
	return matched
}
