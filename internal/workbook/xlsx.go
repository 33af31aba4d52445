package workbook

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XLSXReader reads zipped-XML workbooks with excelize
type XLSXReader struct{}

// Read loads every sheet twice, raw and formatted, and classifies each cell
// from the pair. Style lookups happen only for cells whose format changed
// the value, and are cached per style.
func (XLSXReader) Read(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	wb := &Workbook{Path: path}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.Wrapf(err, "read sheet %q", name)
		}
		shown, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(err, "read sheet %q", name)
		}

		cc := &cellClassifier{f: f, sheet: name, date1904: date1904, dateStyles: make(map[int]bool)}
		sheet := Sheet{Name: name, Rows: make([][]Cell, len(rows))}
		for r, row := range rows {
			cells := make([]Cell, len(row))
			for c, raw := range row {
				cells[c] = cc.classify(c+1, r+1, raw, cellAt(shown, r, c))
			}
			sheet.Rows[r] = cells
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func cellAt(rows [][]string, r, c int) string {
	if r < len(rows) && c < len(rows[r]) {
		return rows[r][c]
	}
	return ""
}

// cellClassifier turns one sheet's raw and formatted values into typed cells
type cellClassifier struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (cc *cellClassifier) classify(col, row int, raw, shown string) Cell {
	if raw == "" {
		return Empty()
	}
	formatted := shown != raw

	if formatted && (raw == "1" || raw == "0") && (shown == "TRUE" || shown == "FALSE") {
		return Boolean(raw == "1")
	}

	v, numeric := parseNumber(raw)
	if !numeric {
		if formatted {
			if t, ok := parseISODate(raw); ok {
				return Date(t)
			}
		}
		return Text(raw)
	}

	if formatted && cc.dateStyled(col, row) {
		if t, err := excelize.ExcelDateToTime(v, cc.date1904); err == nil {
			return Date(t)
		}
	}
	if _, ok := canonicalNumber(raw); ok || cc.storedAsNumber(col, row) {
		return Number(v)
	}
	return Text(raw)
}

// storedAsNumber is only consulted for numeric text that is not in shortest
// form, such as "02134" in a string cell or "1E-3" in a number cell.
func (cc *cellClassifier) storedAsNumber(col, row int) bool {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	typ, err := cc.f.GetCellType(cc.sheet, axis)
	if err != nil {
		return false
	}
	return typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset
}

func (cc *cellClassifier) dateStyled(col, row int) bool {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	styleID, err := cc.f.GetCellStyle(cc.sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	isDate, ok := cc.dateStyles[styleID]
	if !ok {
		isDate = isDateStyle(cc.f, styleID)
		cc.dateStyles[styleID] = isDate
	}
	return isDate
}

// Built-in number formats that render as dates or times
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func isDateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return builtinDateFormats[style.NumFmt]
}

// isDateFormatCode reports whether a custom number format code contains date or time tokens.
// Quoted literals, escaped characters and bracketed sections ([Red], [$-409]) are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inQuote:
			inQuote = r != '"'
		case r == '"':
			inQuote = true
		case inBracket:
			inBracket = r != ']'
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	if s == "general" || s == "@" {
		return false
	}
	return strings.ContainsAny(s, "ydhs")
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
