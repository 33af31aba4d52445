package search

import (
	"sync"

	"sheetgrip/internal/domain"
)

// Result is a point-in-time copy of a run
type Result struct {
	State        domain.RunState      `json:"state" yaml:"state"`
	Request      domain.SearchRequest `json:"-" yaml:"-"`
	Folder       string               `json:"folder" yaml:"folder"`
	Query        string               `json:"query" yaml:"query"`
	FilesScanned int                  `json:"files_scanned" yaml:"files_scanned"`
	TotalFiles   int                  `json:"total_files" yaml:"total_files"`
	Matches      []domain.Match       `json:"matches" yaml:"matches"`
	Errors       []domain.FileError   `json:"errors" yaml:"errors"`
}

// Progress returns the scanned/total counters of the result
func (r Result) Progress() domain.Progress {
	return domain.Progress{FilesScanned: r.FilesScanned, TotalFiles: r.TotalFiles}
}

// run is the mutable state of one search, written only by the run goroutine
type run struct {
	mu           sync.Mutex
	req          domain.SearchRequest
	state        domain.RunState
	cancelled    bool
	filesScanned int
	totalFiles   int
	matches      []domain.Match
	errors       []domain.FileError
}

func newRun(req domain.SearchRequest) *run {
	return &run{req: req, state: domain.StateRunning}
}

func (r *run) State() domain.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *run) setTotal(n int) {
	r.mu.Lock()
	r.totalFiles = n
	r.mu.Unlock()
}

func (r *run) addMatch(m domain.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelled {
		return
	}
	r.matches = append(r.matches, m)
}

func (r *run) addError(e domain.FileError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelled {
		return
	}
	r.errors = append(r.errors, e)
}

// advance counts one more file as scanned
func (r *run) advance() domain.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filesScanned < r.totalFiles {
		r.filesScanned++
	}
	return domain.Progress{FilesScanned: r.filesScanned, TotalFiles: r.totalFiles}
}

// finish moves the run to a terminal state. The first terminal state sticks.
func (r *run) finish(state domain.RunState) Result {
	r.mu.Lock()
	if !r.state.Terminal() {
		r.state = state
		if state == domain.StateCancelled {
			r.cancelled = true
		}
	}
	r.mu.Unlock()
	return r.snapshot()
}

func (r *run) snapshot() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Result{
		State:        r.state,
		Request:      r.req,
		Folder:       r.req.Folder,
		Query:        r.req.Query,
		FilesScanned: r.filesScanned,
		TotalFiles:   r.totalFiles,
		Matches:      append(make([]domain.Match, 0, len(r.matches)), r.matches...),
		Errors:       append(make([]domain.FileError, 0, len(r.errors)), r.errors...),
	}
}
