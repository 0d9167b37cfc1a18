package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchLibrary Phase = iota
	ExportPlaylists
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchLibrary:
		return "fetch_library"
	case ExportPlaylists:
		return "export_playlists"
	case WriteManifest:
		return "write_manifest"
	default:
		return "unknown"
	}
}

func fetchLibraryUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchLibrary, Message: "Fetching library playlists..."}
}

func exportingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exporting '%s' (%d/%d)", name, step, total),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed '%s': %v", name, err),
	}
}
