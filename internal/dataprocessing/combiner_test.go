package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invsummary/pkg/contracts/domain"
)

func TestCombine(t *testing.T) {
	results := map[string]domain.Counts{
		domain.SourceIND: {MetricNFW: 4, MetricTotalStones: 10},
		domain.SourceHK:  {MetricTotalStones: 3, MetricForWeb: 1},
	}

	table := Combine(results, DefaultInventoryOptions())

	assert.Equal(t, []string{MetricTotalStones, MetricNFW, MetricForWeb}, table.Columns)
	assert.Equal(t, []string{domain.SourceHK, domain.SourceIND}, table.Sources())

	hk, ok := table.Row(domain.SourceHK)
	require.True(t, ok)
	assert.Equal(t, 0, hk.Counts[MetricNFW], "missing cells are zero")

	total := table.Total()
	assert.Equal(t, domain.TotalLabel, table.Rows[len(table.Rows)-1].Label)
	assert.Equal(t, domain.Counts{MetricTotalStones: 13, MetricNFW: 4, MetricForWeb: 1}, total.Counts)
}

func TestCombine_TotalIsColumnSum(t *testing.T) {
	results := map[string]domain.Counts{
		"B": {"x": 2, "y": 5},
		"A": {"x": 1},
		"C": {"z": 7},
	}
	table := Combine(results, CombineOptions{})

	assert.Equal(t, []string{"x", "y", "z"}, table.Columns)
	assert.Equal(t, []string{"A", "B", "C"}, table.Sources())
	for _, col := range table.Columns {
		sum := 0
		for _, row := range table.Rows[:len(table.Rows)-1] {
			sum += row.Counts[col]
		}
		assert.Equal(t, sum, table.Total().Counts[col], col)
	}
}

func TestCombine_ReservedLabelAndEmpty(t *testing.T) {
	table := Combine(map[string]domain.Counts{domain.TotalLabel: {"x": 9}}, CombineOptions{})
	assert.Empty(t, table.Rows)
	assert.Empty(t, table.Columns)

	table = Combine(nil, CombineOptions{})
	assert.Empty(t, table.Rows)
}

func TestCombine_OmitTotal(t *testing.T) {
	table := Combine(map[string]domain.Counts{"HK": {"x": 1}}, CombineOptions{OmitTotal: true})
	require.Len(t, table.Rows, 1)
	_, ok := table.Row(domain.TotalLabel)
	assert.False(t, ok)
}

func TestForWebOptions(t *testing.T) {
	table := Combine(map[string]domain.Counts{
		"HK":  {"Other": 2, "Memo in": 1},
		"USA": {"On hold": 3},
	}, ForWebOptions())
	assert.Equal(t, []string{"Memo in", "On hold", "Other"}, table.Columns)
}
