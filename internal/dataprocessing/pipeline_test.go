package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invsummary/pkg/contracts/domain"
)

func TestBuildInventoryReport(t *testing.T) {
	hk := loadCSV(t, hkInventoryCSV, domain.SourceHK, domain.RowSetInventory)
	usa := loadCSV(t, "Item CD,Not for Web\nZ,true\n", domain.SourceUSA, domain.RowSetInventory)
	ind := loadCSV(t, "Item CD,Not for Web,Legends\nQ,false,Hold\nR,false,\n", domain.SourceIND, domain.RowSetInventory)

	report := BuildInventoryReport([]*domain.RowSet{hk, usa, nil, ind})

	require.Len(t, report.Rejected, 1)
	assert.Equal(t, domain.SourceUSA, report.Rejected[0].Source)
	assert.Equal(t, []string{"Legends"}, report.Rejected[0].Missing)

	assert.Equal(t, []string{domain.SourceHK, domain.SourceIND}, report.Summary.Sources())
	assert.Equal(t, InventoryMetrics.Names(), report.Summary.Columns)

	hkRow, ok := report.Summary.Row(domain.SourceHK)
	require.True(t, ok)
	assert.Equal(t, 3, hkRow.Counts[MetricTotalStones])
	assert.Equal(t, 2, hkRow.Counts[MetricNFW])

	assert.Equal(t, 5, report.Summary.Total().Counts[MetricTotalStones])
	assert.Equal(t, 3, report.Summary.Total().Counts[MetricForWeb])

	indRow, _ := report.ForWeb.Row(domain.SourceIND)
	assert.Equal(t, domain.Counts{"Memo in": 1, "On hold": 1}, indRow.Counts)
	assert.Equal(t, []string{"Memo in", "On hold"}, report.ForWeb.Columns)
	assert.True(t, hk.Classified)
}

func TestBuildInventoryReport_AllRejected(t *testing.T) {
	bad := &domain.RowSet{Source: domain.SourceHK, Columns: []string{"Item CD"}}
	report := BuildInventoryReport([]*domain.RowSet{bad})

	assert.Len(t, report.Rejected, 1)
	assert.Empty(t, report.Summary.Rows)
	assert.Empty(t, report.ForWeb.Rows)
}

func TestPrepareRap(t *testing.T) {
	rs := loadCSV(t, rapCSV, domain.SourceRAP, domain.RowSetRAP)
	summary, err := PrepareRap(rs)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalCount)

	bad := loadCSV(t, "Stock #\nS1\n", domain.SourceRAP, domain.RowSetRAP)
	_, err = PrepareRap(bad)
	assert.True(t, IsMissingColumns(err))
}
