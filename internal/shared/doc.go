// Package shared holds code used across the service's packages that does
// not belong to any single layer.
//
// The testutil subpackage provides:
//
//   - A buffered slog handler for asserting on log output
//   - Inventory and RAP CSV fixtures
//   - An in-memory XLSX builder for loader and upload tests
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    svc := services.NewReportService(store, cfg, nil, logger)
//	    ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
