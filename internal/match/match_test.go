package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgrip/internal/workbook"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		cell workbook.Cell
		want string
	}{
		{"empty", workbook.Empty(), ""},
		{"text trimmed", workbook.Text("  Hello \t\n"), "Hello"},
		{"text inner space kept", workbook.Text(" a  b "), "a  b"},
		{"literal nan stays text", workbook.Text("nan"), "nan"},
		{"integer", workbook.Number(100), "100"},
		{"fraction", workbook.Number(3.5), "3.5"},
		{"negative", workbook.Number(-0.25), "-0.25"},
		{"large", workbook.Number(1234567890123), "1234567890123"},
		{"true", workbook.Boolean(true), "TRUE"},
		{"false", workbook.Boolean(false), "FALSE"},
		{"date", workbook.Date(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)), "2024-01-05"},
		{"datetime", workbook.Date(time.Date(2024, 1, 5, 13, 4, 5, 0, time.UTC)), "2024-01-05 13:04:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.cell))
		})
	}
}

func TestNormalizeStringIsIdempotent(t *testing.T) {
	for _, s := range []string{"", " ", "x", "  x  ", " x　", "a b", "\tTotal: 100\n"} {
		once := NormalizeString(s)
		assert.Equal(t, once, NormalizeString(once), "input %q", s)
	}
}

func sheet(name string, rows ...[]workbook.Cell) workbook.Sheet {
	return workbook.Sheet{Name: name, Rows: rows}
}

func TestSheetContainsIsExactMatch(t *testing.T) {
	s := sheet("Sheet1",
		[]workbook.Cell{workbook.Text("Total: 100"), workbook.Empty()},
		[]workbook.Cell{workbook.Text(" Hello ")},
	)

	assert.True(t, SheetContains(s, "Hello"))
	assert.False(t, SheetContains(s, "100"), "substring must not match")
	assert.False(t, SheetContains(s, "hello"), "match is case-sensitive")
	assert.False(t, SheetContains(s, " Hello "), "query is not trimmed")
	assert.True(t, SheetContains(s, "Total: 100"))
}

func TestSheetContainsNumbersAndEmptyCells(t *testing.T) {
	s := sheet("Data",
		nil,
		[]workbook.Cell{workbook.Empty(), workbook.Number(100)},
	)

	assert.True(t, SheetContains(s, "100"))
	assert.False(t, SheetContains(s, "100.0"))
	assert.False(t, SheetContains(s, "nan"), "empty cells normalize to the empty string")
	assert.True(t, SheetContains(s, ""), "an empty query would match empty cells")
}

func TestMatchingSheetsReportsEachSheetOnce(t *testing.T) {
	wb := &workbook.Workbook{Sheets: []workbook.Sheet{
		sheet("First",
			[]workbook.Cell{workbook.Text("x"), workbook.Text("x")},
			[]workbook.Cell{workbook.Text(" x ")},
		),
		sheet("Second", []workbook.Cell{workbook.Text("y")}),
		sheet("Third", []workbook.Cell{workbook.Text("x")}),
	}}

	require.Equal(t, []string{"First", "Third"}, MatchingSheets(wb, "x"))
	assert.Empty(t, MatchingSheets(wb, "z"))
}
