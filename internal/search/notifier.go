package search

import (
	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
)

// Notifier receives a run's notifications, in order, from the run's goroutine.
// Implementations must not call back into the Service synchronously.
type Notifier interface {
	OnStarted(req domain.SearchRequest, totalFiles int)
	OnProgress(scanned, total int)
	OnMatch(m domain.Match)
	OnError(e domain.FileError)
	OnNoResults()
	OnStopped(p domain.Progress)
	OnCompleted(r Result)
	OnFailed(err error)
}

// BusNotifier publishes notifications as domain events
type BusNotifier struct {
	bus eventbus.EventBus
}

// NewBusNotifier creates a notifier that publishes on bus
func NewBusNotifier(bus eventbus.EventBus) *BusNotifier {
	return &BusNotifier{bus: bus}
}

func (n *BusNotifier) OnStarted(req domain.SearchRequest, totalFiles int) {
	n.bus.Publish(eventbus.SearchStartedEvent{Request: req, TotalFiles: totalFiles})
}

func (n *BusNotifier) OnProgress(scanned, total int) {
	n.bus.Publish(eventbus.SearchProgressEvent{Progress: domain.Progress{FilesScanned: scanned, TotalFiles: total}})
}

func (n *BusNotifier) OnMatch(m domain.Match) {
	n.bus.Publish(eventbus.MatchFoundEvent{Match: m})
}

func (n *BusNotifier) OnError(e domain.FileError) {
	n.bus.Publish(eventbus.FileErrorEvent{Error: e})
}

func (n *BusNotifier) OnNoResults() {
	n.bus.Publish(eventbus.NoResultsEvent{})
}

func (n *BusNotifier) OnStopped(p domain.Progress) {
	n.bus.Publish(eventbus.SearchStoppedEvent{Progress: p})
}

func (n *BusNotifier) OnCompleted(r Result) {
	n.bus.Publish(eventbus.SearchCompletedEvent{
		Progress: r.Progress(),
		Matches:  len(r.Matches),
		Errors:   len(r.Errors),
	})
}

func (n *BusNotifier) OnFailed(err error) {
	n.bus.Publish(eventbus.SearchFailedEvent{Message: err.Error(), Err: err})
}

// MultiNotifier forwards every notification to each notifier in order
type MultiNotifier []Notifier

func (m MultiNotifier) OnStarted(req domain.SearchRequest, totalFiles int) {
	for _, n := range m {
		n.OnStarted(req, totalFiles)
	}
}

func (m MultiNotifier) OnProgress(scanned, total int) {
	for _, n := range m {
		n.OnProgress(scanned, total)
	}
}

func (m MultiNotifier) OnMatch(match domain.Match) {
	for _, n := range m {
		n.OnMatch(match)
	}
}

func (m MultiNotifier) OnError(e domain.FileError) {
	for _, n := range m {
		n.OnError(e)
	}
}

func (m MultiNotifier) OnNoResults() {
	for _, n := range m {
		n.OnNoResults()
	}
}

func (m MultiNotifier) OnStopped(p domain.Progress) {
	for _, n := range m {
		n.OnStopped(p)
	}
}

func (m MultiNotifier) OnCompleted(r Result) {
	for _, n := range m {
		n.OnCompleted(r)
	}
}

func (m MultiNotifier) OnFailed(err error) {
	for _, n := range m {
		n.OnFailed(err)
	}
}
