//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook creates an .xlsx file whose first sheet holds cells
func (tf *TUITestFramework) WriteWorkbook(dir, name, sheet string, cells map[string]any) string {
	tf.t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			tf.t.Fatalf("rename sheet: %v", err)
		}
	}
	for axis, v := range cells {
		if err := f.SetCellValue(sheet, axis, v); err != nil {
			tf.t.Fatalf("set %s: %v", axis, err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		tf.t.Fatalf("save %s: %v", path, err)
	}
	return path
}

// WriteFile creates a file with raw content, for unreadable workbooks
func (tf *TUITestFramework) WriteFile(dir, name, content string) string {
	tf.t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tf.t.Fatalf("write %s: %v", path, err)
	}
	return path
}
