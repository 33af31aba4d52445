// Package match turns cell values into comparable strings and decides whether a
// sheet contains a query. Matching is whole-cell equality, never substring.
package match

import (
	"strconv"
	"strings"

	"sheetgrip/internal/workbook"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Normalize maps a cell to the string used for comparison.
// Empty cells normalize to "", so they can never equal a (non-empty) query.
func Normalize(c workbook.Cell) string {
	switch c.Kind {
	case workbook.KindText:
		return NormalizeString(c.Text)
	case workbook.KindNumber:
		return NormalizeString(strconv.FormatFloat(c.Number, 'f', -1, 64))
	case workbook.KindBoolean:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	case workbook.KindDate:
		t := c.Time
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(dateLayout)
		}
		return t.Format(dateTimeLayout)
	default:
		return ""
	}
}

// NormalizeString strips leading and trailing whitespace. It is idempotent.
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// SheetContains reports whether any cell of the sheet normalizes to exactly query.
// The query itself is compared as given, without trimming.
func SheetContains(sheet workbook.Sheet, query string) bool {
	for _, row := range sheet.Rows {
		for _, cell := range row {
			if Normalize(cell) == query {
				return true
			}
		}
	}
	return false
}

// MatchingSheets returns the names of the sheets that contain query, in workbook order.
// Each sheet appears at most once however many of its cells match.
func MatchingSheets(wb *workbook.Workbook, query string) []string {
	var names []string
	for _, sheet := range wb.Sheets {
		if SheetContains(sheet, query) {
			names = append(names, sheet.Name)
		}
	}
	return names
}
