// Package report prints search runs for non-interactive use: matches as
// colored lines while the run goes, or one json/yaml document at the end.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"sheetgrip/internal/domain"
	"sheetgrip/internal/i18n"
	"sheetgrip/internal/search"
)

// Format selects how results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --format values
var Formats = []string{string(FormatText), string(FormatJSON), string(FormatYAML)}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Exit codes of a plain run
const (
	ExitOK          = 0
	ExitFailed      = 1
	ExitInterrupted = 130
)

var (
	colorFile    = color.New(color.FgCyan, color.Bold)
	colorSheet   = color.New(color.FgGreen)
	colorPath    = color.New(color.Faint)
	colorWarning = color.New(color.FgYellow)
	colorError   = color.New(color.FgRed, color.Bold)
	colorSummary = color.New(color.Bold)
)

// Printer is a search.Notifier that writes to a terminal or pipe.
// Matches go to out; progress, warnings and summaries go to errOut.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	format Format
	tr     *i18n.Translator
}

// NewPrinter creates a printer writing in format with messages from tr
func NewPrinter(out, errOut io.Writer, format Format, tr *i18n.Translator) *Printer {
	return &Printer{out: out, errOut: errOut, format: format, tr: tr}
}

func (p *Printer) text() bool {
	return p.format == FormatText
}

func (p *Printer) OnStarted(req domain.SearchRequest, totalFiles int) {}

func (p *Printer) OnProgress(scanned, total int) {}

func (p *Printer) OnMatch(m domain.Match) {
	if !p.text() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	colorFile.Fprint(p.out, m.Filename)
	fmt.Fprint(p.out, ":")
	colorSheet.Fprint(p.out, m.Sheet)
	fmt.Fprint(p.out, "\t")
	colorPath.Fprintln(p.out, m.Path)
}

func (p *Printer) OnError(e domain.FileError) {
	p.mu.Lock()
	defer p.mu.Unlock()
	colorWarning.Fprintln(p.errOut, p.tr.T(i18n.CannotRead, e.Filename, e.Message))
}

func (p *Printer) OnNoResults() {
	if !p.text() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.errOut, p.tr.T(i18n.NoResult))
}

func (p *Printer) OnStopped(progress domain.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	colorWarning.Fprintln(p.errOut, p.tr.T(i18n.SearchStopped))
	fmt.Fprintln(p.errOut, p.tr.T(i18n.SearchedFiles, progress.FilesScanned, progress.TotalFiles))
}

func (p *Printer) OnCompleted(r search.Result) {
	if !p.text() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.errOut, p.tr.T(i18n.SearchedFiles, r.FilesScanned, r.TotalFiles))
	colorSummary.Fprintln(p.errOut, p.tr.T(i18n.Completed, len(r.Matches), len(r.Errors)))
}

func (p *Printer) OnFailed(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	colorError.Fprintln(p.errOut, p.tr.T(i18n.SearchFailed, err.Error()))
}

// Finish writes the final document for json and yaml output
func (p *Printer) Finish(r search.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}

// ExitCode maps the final state of a run to a process exit status
func ExitCode(state domain.RunState) int {
	switch state {
	case domain.StateCompleted:
		return ExitOK
	case domain.StateCancelled:
		return ExitInterrupted
	default:
		return ExitFailed
	}
}

// Starter starts a search run
type Starter interface {
	Start(ctx context.Context, req domain.SearchRequest) (*search.Task, error)
}

// Run performs one search with p as the service's notifier, waits for it and
// returns the exit status. Cancelling ctx stops the run before its next file.
func Run(ctx context.Context, svc Starter, req domain.SearchRequest, p *Printer) int {
	task, err := svc.Start(ctx, req)
	if err != nil {
		var fae *search.FolderAccessError
		if !errors.As(err, &fae) {
			// folder errors were already reported through the notifier
			p.OnFailed(err)
		}
		return ExitFailed
	}

	res := task.Wait()
	if err := p.Finish(res); err != nil {
		log.Printf("Error writing report: %v", err)
		return ExitFailed
	}
	return ExitCode(res.State)
}
