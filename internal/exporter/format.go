package exporter

import (
	"fmt"
	"strconv"
)

// formatBool renders booleans the way spreadsheet users expect them
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// formatCell renders a record value for CSV output; nil becomes empty
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return formatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
