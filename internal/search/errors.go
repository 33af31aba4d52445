package search

import (
	"errors"
	"fmt"

	"sheetgrip/internal/discovery"
)

// ErrSearchInProgress is returned by Start while another run is still running
var ErrSearchInProgress = errors.New("search already in progress")

// InvalidRequestError is returned when the folder or the query is empty
type InvalidRequestError struct {
	MissingFolder bool
	MissingQuery  bool
}

func (e *InvalidRequestError) Error() string {
	switch {
	case e.MissingFolder && e.MissingQuery:
		return "invalid request: folder and query are required"
	case e.MissingFolder:
		return "invalid request: folder is required"
	default:
		return "invalid request: query is required"
	}
}

// FolderAccessError is returned when the folder cannot be listed
type FolderAccessError = discovery.FolderAccessError

// FileReadError wraps the failure to open or parse one workbook
type FileReadError struct {
	Filename string
	Path     string
	Err      error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Filename, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
