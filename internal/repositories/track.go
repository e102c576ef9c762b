package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/lyra/internal/models"
)

// TrackRepository persists [models.Track] records.
type TrackRepository struct {
	db DBTX
}

// NewTrackRepository creates a new TrackRepository on the given connection or transaction.
func NewTrackRepository(db DBTX) *TrackRepository {
	return &TrackRepository{db: db}
}

// BulkInsert inserts all tracks for one album in multi-row statements with
// per-row conflict-ignore on (name, album id). No ids are returned here;
// callers follow up with [TrackRepository.IDsByAlbum] to build the name → id
// map, which also covers rows that already existed before this call.
func (r *TrackRepository) BulkInsert(albumID int64, tracks []*models.Track) error {
	for _, track := range tracks {
		if err := track.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for start := 0; start < len(tracks); start += trackInsertChunk {
		end := start + trackInsertChunk
		if end > len(tracks) {
			end = len(tracks)
		}
		if err := r.insertChunk(albumID, tracks[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *TrackRepository) insertChunk(albumID int64, tracks []*models.Track) error {
	placeholders := make([]string, 0, len(tracks))
	args := make([]any, 0, len(tracks)*6)
	for _, track := range tracks {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?)")
		args = append(args, track.Name, albumID, track.TrackNumber, track.DurationMs, track.Explicit, track.Popularity)
	}

	query := fmt.Sprintf(`
		INSERT INTO tracks (name, album_id, track_number, duration_ms, explicit, popularity)
		VALUES %s
		ON CONFLICT (name, album_id) DO NOTHING
	`, strings.Join(placeholders, ", "))

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to bulk insert tracks: %w", err)
	}
	return nil
}

// IDsByAlbum returns the name → id map for every track in the album. The
// query is scoped to the album id on purpose: track names repeat across
// albums ("Intro" exists on many), so a name-only lookup would cross-wire
// lyrics between albums.
func (r *TrackRepository) IDsByAlbum(albumID int64) (map[string]int64, error) {
	rows, err := r.db.Query("SELECT id, name FROM tracks WHERE album_id = ?", albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		ids[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}
