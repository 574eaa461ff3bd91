package dataprocessing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"invsummary/pkg/contracts/domain"
)

func TestAggregate_Inventory(t *testing.T) {
	rs := loadCSV(t, hkInventoryCSV, domain.SourceHK, domain.RowSetInventory)
	ClassifyRowSet(rs)

	got := Aggregate(rs, InventoryMetrics)
	want := domain.Counts{
		MetricTotalStones:  3,
		MetricNFWMemo:      1,
		MetricNFWAvailable: 0,
		MetricOnHold:       1,
		MetricMemoIn:       1,
		MetricMemoOut:      1,
		MetricNFW:          2,
		MetricForWeb:       1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	input := "Item CD,Not for Web,Legends\n" +
		"A,true,Memo/Consign Out\n" +
		"B,false,\n" +
		"C,TRUE,random\n" +
		"D,FALSE,Hold\n" +
		"E,true,Memo/Consign IN\n" +
		"F,true,Hold\n"
	rs := loadCSV(t, input, domain.SourceUSA, domain.RowSetInventory)
	ClassifyRowSet(rs)
	c := Aggregate(rs, InventoryMetrics)

	assert.Equal(t, c[MetricTotalStones], c[MetricNFW]+c[MetricForWeb])
	assert.Equal(t, c[MetricNFW], c[MetricNFWMemo]+c[MetricNFWAvailable]+countNFWOther(rs))
	assert.LessOrEqual(t, c[MetricMemoIn]+c[MetricMemoOut]+c[MetricOnHold], c[MetricTotalStones])
	assert.Equal(t, 6, c[MetricTotalStones])
	assert.Equal(t, 1, c[MetricNFWMemo])
	assert.Equal(t, 1, c[MetricNFWAvailable])
	assert.Equal(t, 2, c[MetricOnHold])
	for name, n := range c {
		assert.GreaterOrEqual(t, n, 0, name)
	}
}

func countNFWOther(rs *domain.RowSet) int {
	n := 0
	for _, r := range rs.Records {
		if notForWeb(r) && (legendIs(domain.LegendOnHold)(r) || legendIs(domain.LegendOther)(r)) {
			n++
		}
	}
	return n
}

func TestAggregate_UnconvertedFlagMatchesNeither(t *testing.T) {
	rs := loadCSV(t, "Item CD,Not for Web,Legends\nA,yes,x\nB,,x\n", domain.SourceIND, domain.RowSetInventory)
	ClassifyRowSet(rs)
	c := Aggregate(rs, InventoryMetrics)

	assert.Equal(t, 2, c[MetricTotalStones])
	assert.Equal(t, 0, c[MetricNFW])
	assert.Equal(t, 0, c[MetricForWeb])
}

func TestAggregate_EmptyAndNil(t *testing.T) {
	empty := &domain.RowSet{Columns: InventoryColumns}
	for _, rs := range []*domain.RowSet{empty, nil} {
		c := Aggregate(rs, InventoryMetrics)
		assert.Len(t, c, len(InventoryMetrics))
		for _, n := range c {
			assert.Zero(t, n)
		}
	}
}

func TestForWebBreakdown(t *testing.T) {
	rs := loadCSV(t, hkInventoryCSV, domain.SourceHK, domain.RowSetInventory)
	ClassifyRowSet(rs)

	assert.Equal(t, domain.Counts{"Memo in": 1}, ForWebBreakdown(rs))
	assert.Empty(t, ForWebBreakdown(nil))
}

func TestSummarizeRap(t *testing.T) {
	rs := loadCSV(t, rapCSV, domain.SourceRAP, domain.RowSetRAP)
	got := SummarizeRap(rs)

	want := domain.RapSummary{
		Source:        domain.SourceRAP,
		TotalCount:    5,
		HongKongCount: 2,
		CountryCounts: []domain.CountryCount{
			{Country: "Hong Kong", Count: 2},
			{Country: "India", Count: 1},
			{Country: "USA", Count: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SummarizeRap() mismatch (-want +got):\n%s", diff)
	}

	rap := Aggregate(rs, RapMetrics)
	assert.Equal(t, got.TotalCount, rap[MetricRapTotalCount])
	assert.Equal(t, got.HongKongCount, rap[MetricRapHongKongCount])
}

func TestSummarizeRap_Nil(t *testing.T) {
	s := SummarizeRap(nil)
	assert.Zero(t, s.TotalCount)
	assert.NotNil(t, s.CountryCounts)
}
