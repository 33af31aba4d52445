// Package testutil builds spreadsheet fixtures on disk for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// SheetData is one sheet of a fixture workbook; Cells maps "A1"-style axes to values
type SheetData struct {
	Name  string
	Cells map[string]any
}

// WriteXLSX creates dir/name with the given sheets and returns its path.
// The first sheet replaces excelize's default "Sheet1".
func WriteXLSX(t testing.TB, dir, name string, sheets ...SheetData) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if s.Name != "Sheet1" {
				require.NoError(t, f.SetSheetName("Sheet1", s.Name))
			}
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for axis, v := range s.Cells {
			require.NoError(t, f.SetCellValue(s.Name, axis, v))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteFile creates dir/name with raw content, e.g. a corrupted workbook
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
