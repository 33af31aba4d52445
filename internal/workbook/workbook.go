package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Sheet is a named grid of cells. Rows may be ragged; missing trailing cells are empty.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Workbook holds every sheet of one spreadsheet file, fully loaded in memory
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// Reader loads a workbook of one particular file format
type Reader interface {
	Read(path string) (*Workbook, error)
}

// ReaderFunc adapts a function to the Reader interface
type ReaderFunc func(path string) (*Workbook, error)

func (f ReaderFunc) Read(path string) (*Workbook, error) { return f(path) }

// Opener opens any supported workbook
type Opener interface {
	Open(path string) (*Workbook, error)
}

// ErrUnsupportedFormat is returned for files whose extension has no registered reader
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Registry picks a Reader by file extension
type Registry struct {
	readers map[string]Reader
}

// NewRegistry returns a registry with the zipped-XML and legacy binary readers registered
func NewRegistry() *Registry {
	r := &Registry{readers: make(map[string]Reader)}
	xlsx := XLSXReader{}
	for _, ext := range []string{".xlsx", ".xlsm", ".xltx", ".xltm"} {
		r.Register(ext, xlsx)
	}
	r.Register(".xls", XLSReader{})
	return r
}

// Register binds a reader to an extension such as ".xlsx"
func (r *Registry) Register(ext string, reader Reader) {
	r.readers[strings.ToLower(ext)] = reader
}

// Supports reports whether a reader is registered for the extension
func (r *Registry) Supports(ext string) bool {
	_, ok := r.readers[strings.ToLower(ext)]
	return ok
}

// Open reads the workbook at path. Reader panics are turned into errors so a
// malformed file can never take the caller down.
func (r *Registry) Open(path string) (wb *Workbook, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := r.readers[ext]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}

	defer func() {
		if rec := recover(); rec != nil {
			wb = nil
			err = fmt.Errorf("corrupt workbook: %v", rec)
		}
	}()

	return reader.Read(path)
}

var defaultRegistry = NewRegistry()

// Open reads a workbook with the default registry
func Open(path string) (*Workbook, error) {
	return defaultRegistry.Open(path)
}

// Default returns the default registry
func Default() *Registry {
	return defaultRegistry
}
