package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Focus identifies which part of the screen receives keys
type Focus int

const (
	FocusFolder Focus = iota
	FocusQuery
	FocusResults
)

// StatusKind selects the color of the status line
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusWarning
	StatusError
	StatusSuccess
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Title          string
	FolderLabel    string
	QueryLabel     string
	FolderInput    string
	QueryInput     string
	Focus          Focus
	ResultsHeader  string
	Results        []string // one localized line per match
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	Running        bool
	Spinner        string
	ProgressText   string
	ErrorText      string
	StatusMessage  string
	StatusKind     StatusKind
	ShowLog        bool
	LogTitle       string
	LogContent     string
	HelpView       string
	ReadyMarker    bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	// Title with spinner while a search runs
	titleLine := r.styles.Title.Render(state.Title)
	if state.Running && state.Spinner != "" {
		titleLine = fmt.Sprintf("%s  %s", titleLine, r.styles.Dim.Render(state.Spinner))
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	content.WriteString(r.renderField(state.FolderLabel, state.FolderInput, state.Focus == FocusFolder))
	content.WriteString("\n")
	content.WriteString(r.renderField(state.QueryLabel, state.QueryInput, state.Focus == FocusQuery))
	content.WriteString("\n")

	if state.ShowLog {
		content.WriteString("\n")
		content.WriteString(r.styles.Header.Render(state.LogTitle))
		content.WriteString("\n")
		content.WriteString(r.renderLog(state))
	} else {
		header := state.ResultsHeader
		if state.Focus == FocusResults {
			header = "▸ " + header
		}
		content.WriteString(r.styles.Header.Render(header))
		content.WriteString("\n")
		content.WriteString(r.renderResults(state))
	}
	content.WriteString("\n")

	if state.ProgressText != "" {
		content.WriteString(r.styles.Progress.Render(state.ProgressText))
		content.WriteString("\n")
	}
	if state.ErrorText != "" {
		content.WriteString(r.styles.StatusWarning.Render(state.ErrorText))
		content.WriteString("\n")
	}
	if state.StatusMessage != "" {
		content.WriteString(r.statusStyle(state.StatusKind).Render(state.StatusMessage))
		content.WriteString("\n")
	}

	if state.HelpView != "" {
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	if state.ReadyMarker {
		content.WriteString("\n__READY__")
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderField(label, input string, focused bool) string {
	style := r.styles.Label
	if focused {
		style = r.styles.FocusedLabel
	}
	return style.Render(label) + input
}

// renderResults draws the visible window of the result list
func (r *Renderer) renderResults(state ViewState) string {
	if len(state.Results) == 0 {
		return r.styles.Dim.Render("  -")
	}

	height := state.ViewportHeight
	if height <= 0 {
		height = len(state.Results)
	}
	start := state.ViewportOffset
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(state.Results) {
		end = len(state.Results)
	}

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d", start)))
	}
	for i := start; i < end; i++ {
		line := "  " + state.Results[i]
		if i == state.SelectedIndex && state.Focus == FocusResults {
			line = r.styles.SelectionBg.Render("> " + state.Results[i])
		} else if i == state.SelectedIndex {
			line = "> " + state.Results[i]
		}
		lines = append(lines, line)
	}
	if end < len(state.Results) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d", len(state.Results)-end)))
	}
	return strings.Join(lines, "\n")
}

// renderLog draws the error log inline, used when the pager is unavailable
func (r *Renderer) renderLog(state ViewState) string {
	width := state.Width - 8
	if width < 20 {
		width = 72
	}
	return r.styles.LogBox.Width(width).Render(state.LogContent)
}

func (r *Renderer) statusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusWarning:
		return r.styles.StatusWarning
	case StatusError:
		return r.styles.StatusError
	case StatusSuccess:
		return r.styles.StatusSuccess
	default:
		return r.styles.StatusLoading
	}
}
