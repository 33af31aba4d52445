package domain

// SearchRequest describes one search: a folder and the exact value to find
type SearchRequest struct {
	Folder string
	Query  string
}

// Match is one (file, sheet) pair whose cells contain the query
type Match struct {
	Filename string `json:"filename" yaml:"filename"`
	Sheet    string `json:"sheet" yaml:"sheet"`
	Path     string `json:"path" yaml:"path"`
}

// FileError records a workbook that could not be opened or parsed
type FileError struct {
	Filename string `json:"filename" yaml:"filename"`
	Path     string `json:"path" yaml:"path"`
	Message  string `json:"message" yaml:"message"`
}

// RunState is the lifecycle state of a search run
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions happen until a new run starts
func (s RunState) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// MarshalText lets the state print as a word in json/yaml reports
func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Progress represents the current scanning state
type Progress struct {
	FilesScanned int
	TotalFiles   int
}
