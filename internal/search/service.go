package search

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"sheetgrip/internal/discovery"
	"sheetgrip/internal/domain"
	"sheetgrip/internal/match"
	"sheetgrip/internal/workbook"
)

// Service runs batch searches over a folder of workbooks, one run at a time
type Service struct {
	notifier   Notifier
	opener     workbook.Opener
	extensions []string

	mu      sync.Mutex
	current *run
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option configures a Service
type Option func(*Service)

// WithOpener replaces the workbook reader, mostly for tests
func WithOpener(o workbook.Opener) Option {
	return func(s *Service) { s.opener = o }
}

// WithExtensions sets which file extensions are searched
func WithExtensions(exts []string) Option {
	return func(s *Service) {
		if len(exts) > 0 {
			s.extensions = exts
		}
	}
}

// NewService creates a search service reporting to notifier
func NewService(notifier Notifier, opts ...Option) *Service {
	s := &Service{
		notifier:   notifier,
		opener:     workbook.Default(),
		extensions: discovery.DefaultExtensions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates req, lists the folder and scans it in the background.
// It fails without starting when the request is empty, when a run is already
// in progress, or when the folder cannot be listed (the run then ends Failed).
func (s *Service) Start(ctx context.Context, req domain.SearchRequest) (*Task, error) {
	if req.Folder == "" || req.Query == "" {
		return nil, &InvalidRequestError{MissingFolder: req.Folder == "", MissingQuery: req.Query == ""}
	}

	s.mu.Lock()
	if s.current != nil && !s.current.State().Terminal() {
		s.mu.Unlock()
		return nil, ErrSearchInProgress
	}
	r := newRun(req)
	runCtx, cancel := context.WithCancel(ctx)
	s.current = r
	s.cancel = cancel
	s.mu.Unlock()

	paths, err := discovery.ListWorkbooks(req.Folder, s.extensions)
	if err != nil {
		cancel()
		r.finish(domain.StateFailed)
		log.Printf("Search in %s failed: %v", req.Folder, err)
		s.notifier.OnFailed(err)
		return nil, err
	}
	r.setTotal(len(paths))

	log.Printf("Searching %d workbooks in %s", len(paths), req.Folder)
	s.notifier.OnStarted(req, len(paths))

	task := &Task{run: r, cancel: cancel, done: make(chan struct{})}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(task.done)
		defer cancel()
		s.scan(runCtx, r, paths)
	}()
	return task, nil
}

// Stop asks the active run to stop before its next file. It does not wait.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
}

// Shutdown stops the active run and waits for its goroutine to exit
func (s *Service) Shutdown() {
	s.Stop()
	s.wg.Wait()
}

// State returns the state of the latest run, or Idle before the first one
func (s *Service) State() domain.RunState {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r == nil {
		return domain.StateIdle
	}
	return r.State()
}

// Snapshot copies the latest run. Matches are in discovery order, so a result
// row index maps directly to Snapshot().Matches.
func (s *Service) Snapshot() Result {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r == nil {
		return Result{State: domain.StateIdle, Matches: []domain.Match{}, Errors: []domain.FileError{}}
	}
	return r.snapshot()
}

// scan processes files in order. Cancellation is only checked between files.
func (s *Service) scan(ctx context.Context, r *run, paths []string) {
	for _, path := range paths {
		if ctx.Err() != nil {
			res := r.finish(domain.StateCancelled)
			log.Printf("Search stopped after %d/%d files", res.FilesScanned, res.TotalFiles)
			s.notifier.OnStopped(res.Progress())
			return
		}

		name := filepath.Base(path)
		sheets, err := s.scanFile(path, r.req.Query)
		if err != nil {
			fe := domain.FileError{Filename: name, Path: path, Message: err.Err.Error()}
			log.Printf("Search: %v", err)
			r.addError(fe)
			s.notifier.OnError(fe)
		}
		for _, sheet := range sheets {
			m := domain.Match{Filename: name, Sheet: sheet, Path: path}
			r.addMatch(m)
			s.notifier.OnMatch(m)
		}

		p := r.advance()
		s.notifier.OnProgress(p.FilesScanned, p.TotalFiles)
	}

	res := r.finish(domain.StateCompleted)
	log.Printf("Search completed: %d matches, %d errors in %d files", len(res.Matches), len(res.Errors), res.TotalFiles)
	if len(res.Matches) == 0 {
		s.notifier.OnNoResults()
	}
	s.notifier.OnCompleted(res)
}

func (s *Service) scanFile(path, query string) ([]string, *FileReadError) {
	wb, err := s.opener.Open(path)
	if err != nil {
		return nil, &FileReadError{Filename: filepath.Base(path), Path: path, Err: err}
	}
	return match.MatchingSheets(wb, query), nil
}

// Task is the handle of one background run
type Task struct {
	run    *run
	cancel context.CancelFunc
	done   chan struct{}
}

// Done is closed when the run reaches a terminal state
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel asks the run to stop before its next file
func (t *Task) Cancel() { t.cancel() }

// Wait blocks until the run ends and returns its final result
func (t *Task) Wait() Result {
	<-t.done
	return t.run.snapshot()
}

// Snapshot copies the run without waiting
func (t *Task) Snapshot() Result { return t.run.snapshot() }
