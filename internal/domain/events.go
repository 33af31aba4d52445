package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchProgress  EventType = "SearchProgress"
	EventMatchFound      EventType = "MatchFound"
	EventFileError       EventType = "FileError"
	EventNoResults       EventType = "NoResults"
	EventSearchStopped   EventType = "SearchStopped"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"

	EventSearchRequested EventType = "SearchRequested"
	EventStopRequested   EventType = "StopRequested"
	EventSearchRejected  EventType = "SearchRejected"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted once the folder has been listed and scanning begins
type SearchStartedEvent struct {
	Request    SearchRequest
	TotalFiles int
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchProgressEvent is emitted after every file, matched or not
type SearchProgressEvent struct {
	Progress Progress
}

func (e SearchProgressEvent) Type() EventType { return EventSearchProgress }

// MatchFoundEvent is emitted as soon as a sheet is found to contain the query
type MatchFoundEvent struct {
	Match Match
}

func (e MatchFoundEvent) Type() EventType { return EventMatchFound }

// FileErrorEvent is emitted when a single workbook fails to read
type FileErrorEvent struct {
	Error FileError
}

func (e FileErrorEvent) Type() EventType { return EventFileError }

// NoResultsEvent is emitted when a run completes without any match
type NoResultsEvent struct{}

func (e NoResultsEvent) Type() EventType { return EventNoResults }

// SearchStoppedEvent is emitted when a run observes cancellation
type SearchStoppedEvent struct {
	Progress Progress
}

func (e SearchStoppedEvent) Type() EventType { return EventSearchStopped }

// SearchCompletedEvent is emitted when every file has been processed
type SearchCompletedEvent struct {
	Progress Progress
	Matches  int
	Errors   int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a run cannot start scanning at all
type SearchFailedEvent struct {
	Message string
	Err     error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchRequestedEvent asks the search service to start a run
type SearchRequestedEvent struct {
	Request SearchRequest
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// StopRequestedEvent asks the search service to stop the active run
type StopRequestedEvent struct{}

func (e StopRequestedEvent) Type() EventType { return EventStopRequested }

// SearchRejectedEvent is emitted when a requested run was never started,
// either because the request was incomplete or another run is active
type SearchRejectedEvent struct {
	Request SearchRequest
	Reason  string
	Err     error
}

func (e SearchRejectedEvent) Type() EventType { return EventSearchRejected }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path       string
	Language   string
	LastFolder string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
