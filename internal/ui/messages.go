package ui

import (
	"sheetgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// startSearchMsg starts the search prefilled from the command line
type startSearchMsg struct{}

// openResultMsg contains the result of opening a matched workbook
type openResultMsg struct {
	path string
	err  error
}

// logPagerMsg contains the result of the error log pager
type logPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
