package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"invsummary/pkg/contracts/domain"
)

const hkInventoryCSV = `Item CD,Not for Web,Legends
A1,True,Hold
A2,False,
A3,True,Memo/Consign Out
`

const rapCSV = `Rapnet Lot #,Stock #,Country
L1,S1,Hong Kong
L2,S2,USA
L3,,Hong Kong
L4,S4,Hong Kong
L5,S5,
L6,S6,India
`

func loadCSV(t *testing.T, input, source string, kind domain.RowSetKind) *domain.RowSet {
	t.Helper()
	rs, err := Load(strings.NewReader(input), FormatCSV, LoadOptions{Source: source, Kind: kind})
	require.NoError(t, err)
	return rs
}
