package domain

// Column names used by the inventory and RAP uploads
const (
	ColumnItemCD    = "Item CD"
	ColumnNotForWeb = "Not for Web"
	ColumnLegends   = "Legends"
	ColumnRapnetLot = "Rapnet Lot #"
	ColumnStockNo   = "Stock #"
	ColumnCountry   = "Country"
	ColumnLocation  = "Location"
)

// Inventory upload slots, in display order
const (
	SourceHK  = "HK"
	SourceUSA = "USA"
	SourceIND = "IND"

	// SourceRAP is the default label for an uploaded RAP file
	SourceRAP = "RAP"

	// TotalLabel is reserved for the synthesized total row of a summary table
	TotalLabel = "Total"
)

// InventorySlots lists the fixed inventory upload slots
var InventorySlots = []string{SourceHK, SourceUSA, SourceIND}

// RowSetKind distinguishes the two supported upload flavours
type RowSetKind string

const (
	RowSetInventory RowSetKind = "inventory"
	RowSetRAP       RowSetKind = "rap"
)

// Record is a single loaded row. A value is nil when the cell was empty,
// a bool when the cell held true/false, and a string otherwise.
type Record struct {
	Source string         `json:"source"`
	Values map[string]any `json:"values"`
}

// Get returns the value stored under column, or nil when absent
func (r Record) Get(column string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[column]
}

// IsNull reports whether the column is missing or empty for this record
func (r Record) IsNull(column string) bool {
	return r.Get(column) == nil
}

// RowSet is an ordered collection of records loaded from one uploaded file
type RowSet struct {
	Source     string     `json:"source"`
	Kind       RowSetKind `json:"kind"`
	FileName   string     `json:"file_name,omitempty"`
	Columns    []string   `json:"columns"`
	Records    []Record   `json:"records"`
	Classified bool       `json:"classified"`
}

// Len returns the number of records in the row-set
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

// HasColumn reports whether the header row contained the named column
func (rs *RowSet) HasColumn(name string) bool {
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}
