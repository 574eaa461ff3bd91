package dataprocessing

import (
	"fmt"
	"strings"

	"invsummary/pkg/contracts/domain"
)

// Raw legend values recognised by ClassifyLegend.
const (
	legendConsignIn    = "Memo/Consign IN"
	legendConsignInOut = "Memo/Consign IN->Out"
	legendConsignOut   = "Memo/Consign Out"
	legendHold         = "Hold"
)

// ClassifyLegend maps a raw legend value to its category. Values are
// compared exactly after trimming surrounding whitespace; a missing or blank
// legend counts as Memo in. Canonical category labels classify to
// themselves, so reclassifying an already classified value is a no-op.
func ClassifyLegend(raw any) domain.LegendCategory {
	if raw == nil {
		return domain.LegendMemoIn
	}

	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case domain.LegendCategory:
		text = string(v)
	default:
		text = fmt.Sprint(v)
	}

	switch strings.TrimSpace(text) {
	case "", legendConsignIn, string(domain.LegendMemoIn):
		return domain.LegendMemoIn
	case legendConsignInOut, legendConsignOut, string(domain.LegendMemoOut):
		return domain.LegendMemoOut
	case legendHold, string(domain.LegendOnHold):
		return domain.LegendOnHold
	}
	return domain.LegendOther
}

// ClassifyRowSet rewrites the Legends column of every record in place.
// It runs at most once per row-set.
func ClassifyRowSet(rs *domain.RowSet) {
	if rs == nil || rs.Classified {
		return
	}
	if rs.HasColumn(domain.ColumnLegends) {
		for i := range rs.Records {
			values := rs.Records[i].Values
			values[domain.ColumnLegends] = string(ClassifyLegend(values[domain.ColumnLegends]))
		}
	}
	rs.Classified = true
}
