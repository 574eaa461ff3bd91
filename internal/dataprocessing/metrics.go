package dataprocessing

import "invsummary/pkg/contracts/domain"

// Predicate decides whether a record counts toward a metric
type Predicate func(domain.Record) bool

// Metric is a named record predicate
type Metric struct {
	Name  string
	Match Predicate
}

// MetricSet is an ordered list of metrics
type MetricSet []Metric

// Names returns metric names in order
func (s MetricSet) Names() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Name
	}
	return names
}

// Lookup finds a metric by exact name
func (s MetricSet) Lookup(name string) (Metric, bool) {
	for _, m := range s {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Inventory metric names.
const (
	MetricTotalStones  = "Total Stones"
	MetricNFWMemo      = "NFW Memo"
	MetricNFWAvailable = "NFW Available"
	MetricOnHold       = "On Hold"
	MetricMemoIn       = "Memo In"
	MetricMemoOut      = "Memo Out"
	MetricNFW          = "NFW"
	MetricForWeb       = "For Web"
)

// RAP metric names.
const (
	MetricRapTotalCount    = "Total Count"
	MetricRapHongKongCount = "Hong Kong Count"
)

// HongKongCountry is the Country value counted by the Hong Kong metric
const HongKongCountry = "Hong Kong"

func notForWeb(r domain.Record) bool {
	v, ok := r.Get(domain.ColumnNotForWeb).(bool)
	return ok && v
}

func forWeb(r domain.Record) bool {
	v, ok := r.Get(domain.ColumnNotForWeb).(bool)
	return ok && !v
}

func legendIs(category domain.LegendCategory) Predicate {
	return func(r domain.Record) bool {
		v, _ := r.Get(domain.ColumnLegends).(string)
		return v == string(category)
	}
}

func hasStock(r domain.Record) bool {
	return !r.IsNull(domain.ColumnStockNo)
}

func isHongKong(r domain.Record) bool {
	country, _ := r.Get(domain.ColumnCountry).(string)
	return hasStock(r) && country == HongKongCountry
}

// InventoryMetrics is the inventory metric set in display order.
// Legend predicates expect a classified row-set.
var InventoryMetrics = MetricSet{
	{Name: MetricTotalStones, Match: func(domain.Record) bool { return true }},
	{Name: MetricNFWMemo, Match: func(r domain.Record) bool { return notForWeb(r) && legendIs(domain.LegendMemoOut)(r) }},
	{Name: MetricNFWAvailable, Match: func(r domain.Record) bool { return notForWeb(r) && legendIs(domain.LegendMemoIn)(r) }},
	{Name: MetricOnHold, Match: legendIs(domain.LegendOnHold)},
	{Name: MetricMemoIn, Match: legendIs(domain.LegendMemoIn)},
	{Name: MetricMemoOut, Match: legendIs(domain.LegendMemoOut)},
	{Name: MetricNFW, Match: notForWeb},
	{Name: MetricForWeb, Match: forWeb},
}

// RapMetrics covers the RAP summary counts that support drill-down
var RapMetrics = MetricSet{
	{Name: MetricRapTotalCount, Match: hasStock},
	{Name: MetricRapHongKongCount, Match: isHongKong},
}

// MetricsFor returns the metric set for a row-set kind
func MetricsFor(kind domain.RowSetKind) MetricSet {
	if kind == domain.RowSetRAP {
		return RapMetrics
	}
	return InventoryMetrics
}
