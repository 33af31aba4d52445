package workbook

import (
	"math"
	"os"
	"strconv"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
)

// XLSReader reads legacy binary (BIFF) workbooks with extrame/xls.
// The library hands back display strings, so kinds are inferred from the text.
type XLSReader struct {
	Charset string
}

func (x XLSReader) Read(path string) (*Workbook, error) {
	charset := x.Charset
	if charset == "" {
		charset = "utf-8"
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	book, err := xls.OpenReader(f, charset)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	if book == nil {
		return nil, errors.New("open workbook: no workbook data")
	}

	wb := &Workbook{Path: path}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheet := Sheet{Name: ws.Name}
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := sheetRow(ws, r)
			if row == nil {
				sheet.Rows = append(sheet.Rows, nil)
				continue
			}
			cells := make([]Cell, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells[c] = classifyXLS(row.Col(c))
			}
			sheet.Rows = append(sheet.Rows, cells)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// sheetRow returns nil for rows the sheet never stored. The library
// dereferences its row map without checking, so a gap would panic.
func sheetRow(ws *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(r)
}

// classifyXLS infers a cell kind from its display string. Numeric cells come
// back in shortest form, so text such as "02134" or "1.50" stays text.
func classifyXLS(raw string) Cell {
	switch raw {
	case "":
		return Empty()
	case "TRUE":
		return Boolean(true)
	case "FALSE":
		return Boolean(false)
	}
	if v, ok := canonicalNumber(raw); ok {
		return Number(v)
	}
	return Text(raw)
}

// parseNumber accepts finite decimal numbers only; "nan" and "inf" stay text
func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// canonicalNumber accepts raw only when it is the shortest decimal form of its value
func canonicalNumber(raw string) (float64, bool) {
	v, ok := parseNumber(raw)
	if !ok || strconv.FormatFloat(v, 'f', -1, 64) != raw {
		return 0, false
	}
	return v, true
}
