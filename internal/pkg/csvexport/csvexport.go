// Package csvexport renders admin exports as CSV. The output contract is
// fixed: fields containing a comma, quote, or newline are wrapped in double
// quotes with internal quotes doubled, nil renders as an empty string, and
// the document ends with exactly one trailing newline.
package csvexport

import (
	"fmt"
	"strings"
)

// String renders the header row followed by one row per record.
func String(header []string, rows [][]interface{}) string {
	var b strings.Builder

	writeRow(&b, toCells(header))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = format(v)
		}
		writeRow(&b, cells)
	}

	return b.String()
}

func toCells(header []string) []string {
	cells := make([]string, len(header))
	copy(cells, header)
	return cells
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(cell))
	}
	b.WriteByte('\n')
}

func escape(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func format(v interface{}) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// Fixed two decimals so amount columns line up in spreadsheets.
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprint(t)
	}
}
