package domain

// LegendCategory is the canonical status label derived from the raw
// "Legends" text of an inventory record.
type LegendCategory string

const (
	LegendMemoIn  LegendCategory = "Memo in"
	LegendMemoOut LegendCategory = "Memo out"
	LegendOnHold  LegendCategory = "On hold"
	LegendOther   LegendCategory = "Other"
)

// LegendCategories lists every category in display order
var LegendCategories = []LegendCategory{LegendMemoIn, LegendMemoOut, LegendOnHold, LegendOther}

// String returns the label text
func (c LegendCategory) String() string {
	return string(c)
}

// IsValid reports whether c is one of the canonical categories
func (c LegendCategory) IsValid() bool {
	switch c {
	case LegendMemoIn, LegendMemoOut, LegendOnHold, LegendOther:
		return true
	}
	return false
}
