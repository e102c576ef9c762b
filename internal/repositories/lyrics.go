package repositories

import "fmt"

// LyricsRepository persists lyric text, one row per track.
type LyricsRepository struct {
	db DBTX
}

// NewLyricsRepository creates a new LyricsRepository on the given connection or transaction.
func NewLyricsRepository(db DBTX) *LyricsRepository {
	return &LyricsRepository{db: db}
}

// Insert stores the lyrics for a track. A no-op when the track already has
// lyrics: curated text is never replaced by a re-scrape. The analysis score
// columns are always inserted NULL; the analytics collaborator owns them and
// this loader never computes or overwrites them.
func (r *LyricsRepository) Insert(trackID int64, text string) error {
	query := `
		INSERT INTO lyrics (track_id, text, readability_score, sentiment_score)
		VALUES (?, ?, NULL, NULL)
		ON CONFLICT (track_id) DO NOTHING
	`
	if _, err := r.db.Exec(query, trackID, text); err != nil {
		return fmt.Errorf("failed to insert lyrics: %w", err)
	}
	return nil
}

// Exists reports whether a track already has a lyrics row.
func (r *LyricsRepository) Exists(trackID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM lyrics WHERE track_id = ?)", trackID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lyrics: %w", err)
	}
	return exists, nil
}
