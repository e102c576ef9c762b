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
	ResolveFolders Phase = iota
	LoadLyrics
	MatchTracks
	WriteOutputs
	ParseMetadata
	UpsertEntities
	CommitAlbum
)

func (p Phase) String() string {
	switch p {
	case ResolveFolders:
		return "resolve_folders"
	case LoadLyrics:
		return "load_lyrics"
	case MatchTracks:
		return "match_tracks"
	case WriteOutputs:
		return "write_outputs"
	case ParseMetadata:
		return "parse_metadata"
	case UpsertEntities:
		return "upsert_entities"
	case CommitAlbum:
		return "commit_album"
	default:
		return ""
	}
}

// sendProgress delivers an update without blocking; updates are dropped when
// nobody is listening.
func sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

func joinAlbumUpdate(step, total int, artist, album string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveFolders,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Joining: %s - %s...", step, total, artist, album),
	}
}

func matchTracksUpdate(step, total int, album string, tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Matching %d tracks in %s...", tracks, album),
	}
}

func albumJoinedUpdate(step, total int, artist, album string, matched, missing int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteOutputs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s (%d matched, %d missing)", step, total, artist, album, matched, missing),
	}
}

func albumFailedUpdate(step, total int, artist, album string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteOutputs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, artist, album, err),
	}
}

func parseArtistUpdate(step, total int, artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseMetadata,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Loading artist: %s...", step, total, artist),
	}
}

func upsertAlbumUpdate(step, total int, album string, tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UpsertEntities,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Loading album %s (%d tracks)...", album, tracks),
	}
}

func albumCommittedUpdate(step, total int, artist, album string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CommitAlbum,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ Committed %s - %s", step, total, artist, album),
	}
}

func albumSkippedUpdate(step, total int, artist, album string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseMetadata,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Skipped (excluded): %s/%s", step, total, artist, album),
	}
}
