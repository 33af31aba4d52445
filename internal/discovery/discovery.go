package discovery

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultExtensions are the spreadsheet formats searched when none are configured
var DefaultExtensions = []string{".xlsx", ".xls"}

// FolderAccessError reports a folder that is missing, not a directory, or unreadable
type FolderAccessError struct {
	Folder string
	Err    error
}

func (e *FolderAccessError) Error() string {
	return fmt.Sprintf("cannot access folder %s: %v", e.Folder, e.Err)
}

func (e *FolderAccessError) Unwrap() error { return e.Err }

// ListWorkbooks returns the paths of the regular files directly inside folder
// whose extension is one of exts (case-insensitive). Subfolders are not entered.
// Paths come back in os.ReadDir order, which is sorted by file name.
func ListWorkbooks(folder string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	info, err := os.Stat(folder)
	if err != nil {
		return nil, &FolderAccessError{Folder: folder, Err: err}
	}
	if !info.IsDir() {
		return nil, &FolderAccessError{Folder: folder, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, &FolderAccessError{Folder: folder, Err: errors.Wrap(err, "read directory")}
	}

	var paths []string
	for _, entry := range entries {
		if !HasExtension(entry.Name(), exts) {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		if !isRegular(entry, path) {
			log.Printf("Skipping %s: not a regular file", path)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// HasExtension reports whether name ends in one of exts, ignoring case
func HasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// isRegular follows symlinks so a link to a workbook still counts
func isRegular(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
