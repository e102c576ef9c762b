package tasks

import (
	"fmt"
	"time"
)

// WorkItem identifies one (artist, album) pair to process. Work lists are
// explicit inputs to the engines; nothing prompts for them.
type WorkItem struct {
	Artist string
	Album  string
}

// AlbumFailure records one album that could not be processed, with the cause.
type AlbumFailure struct {
	Artist string
	Album  string
	Err    error
}

// String renders the failure-log line for this album.
func (f AlbumFailure) String() string {
	return fmt.Sprintf("%s - %s: %v", f.Artist, f.Album, f.Err)
}

// JoinReport summarizes one join run. It is the single accumulator for the
// run; per-album failures live here, not in package state.
type JoinReport struct {
	RunID     string         // correlates report, logs, and progress output
	StartedAt time.Time      // timestamp embedded in log filenames
	Succeeded []string       // "artist - album" per merged album
	Failures  []AlbumFailure // albums aborted with cause
	Matched   int            // tracks with lyric text attached
	Missing   int            // tracks left with empty lyrics
}

// LoadReport summarizes one load run.
type LoadReport struct {
	RunID      string
	StartedAt  time.Time
	Artists    int            // artists upserted or resolved
	Albums     int            // albums committed
	Tracks     int            // track rows processed
	Lyrics     int            // lyric rows inserted or already present
	LyricsMiss int            // tracks with no lyric text or no id in the scoped map
	Skipped    []string       // "artist/album folder" per exclusion hit
	Failures   []AlbumFailure // albums rolled back with cause
}
