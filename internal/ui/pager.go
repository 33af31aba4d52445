package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"sheetgrip/internal/domain"
	"sheetgrip/internal/i18n"
)

// LogPager shows the per-file error log in the ov pager
type LogPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewLogPager creates a new pager
func NewLogPager() *LogPager {
	return &LogPager{}
}

// SetProgram sets the program reference for terminal management
func (l *LogPager) SetProgram(p *tea.Program) {
	l.program = p
}

// Show displays content in ov, handing the terminal over until ov exits
func (l *LogPager) Show(content string) error {
	if l.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := l.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = l.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// buildLogContent lists one line per unreadable file
func buildLogContent(tr *i18n.Translator, errs []domain.FileError) string {
	if len(errs) == 0 {
		return tr.T(i18n.NoErrors)
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = tr.T(i18n.CannotRead, e.Filename, e.Message)
	}
	return strings.Join(lines, "\n")
}
