package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchDirectory Phase = iota
	ValidateStreams
	PersistStations
	ReportListens
)

func (p Phase) String() string {
	switch p {
	case SearchDirectory:
		return "search_directory"
	case ValidateStreams:
		return "validate_streams"
	case PersistStations:
		return "persist_stations"
	case ReportListens:
		return "report_listens"
	default:
		return ""
	}
}

func searchingUpdate(query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchDirectory,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching directory for %q...", query),
	}
}

func validatingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateStreams,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Validating stream (%s)...", name),
	}
}

func validatedUpdate(step, total int, name string, ok bool) ProgressUpdate {
	verdict := "failed"
	if ok {
		verdict = "ok"
	}
	return ProgressUpdate{
		Phase:   ValidateStreams,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Validated %s: %s", name, verdict),
	}
}

func persistingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PersistStations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Caching station (%s)...", name),
	}
}
