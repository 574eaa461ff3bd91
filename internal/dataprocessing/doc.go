// Package dataprocessing turns uploaded inventory and RAP files into
// summary tables. It covers the full path from raw bytes to counts.
//
// # Architecture
//
// The package is organized into five stages:
//
// 1. Loader: reads CSV or XLSX bytes into a labelled domain.RowSet
// 2. Schema: checks that a row-set carries the columns its kind needs
// 3. Legends: folds free-text Legends values into four categories
// 4. Aggregator: counts records per metric, per For Web legend and per country
// 5. Combiner: merges per-source counts into one table with a Total row
//
// Drill-down (Resolve, ResolveCountry) reuses the metric predicates, so the
// records returned for a metric always match the count shown for it.
//
// # Usage
//
//	rs, err := dataprocessing.LoadFile("hk.xlsx", dataprocessing.LoadOptions{
//	    Source: domain.SourceHK,
//	    Kind:   domain.RowSetInventory,
//	})
//	if err != nil {
//	    return err
//	}
//	report := dataprocessing.BuildInventoryReport([]*domain.RowSet{rs})
//
// # Data Flow
//
//	File → Loader → RowSet → Validate → ClassifyRowSet → Aggregate → Combine → SummaryTable
//
// # Error Handling
//
// Load returns *UnsupportedFormatError for unknown formats, ErrEmptyFile for
// files without a header and ErrTooManyRows when a row limit is exceeded.
// Validation failures surface as *MissingColumnsError. None of the stages
// panic on malformed cell values.
package dataprocessing
