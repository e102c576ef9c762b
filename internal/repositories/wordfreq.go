package repositories

import (
	"fmt"

	"github.com/desertthunder/lyra/internal/models"
)

// WordFrequencyRepository persists per-track and per-album word counts into
// the auxiliary analytics tables. The core loader never writes these; they
// exist for the analytics collaborator that scores lyrics after a load.
type WordFrequencyRepository struct {
	db DBTX
}

// NewWordFrequencyRepository creates a new WordFrequencyRepository on the given connection or transaction.
func NewWordFrequencyRepository(db DBTX) *WordFrequencyRepository {
	return &WordFrequencyRepository{db: db}
}

// InsertTrackFrequencies stores word counts for one track, ignoring words
// already recorded for it.
func (r *WordFrequencyRepository) InsertTrackFrequencies(trackID int64, frequencies []models.WordFrequency) error {
	return r.insert("word_frequencies_track", "track_id", trackID, frequencies)
}

// InsertAlbumFrequencies stores word counts for one album, ignoring words
// already recorded for it.
func (r *WordFrequencyRepository) InsertAlbumFrequencies(albumID int64, frequencies []models.WordFrequency) error {
	return r.insert("word_frequencies_album", "album_id", albumID, frequencies)
}

func (r *WordFrequencyRepository) insert(tableName, ownerColumn string, ownerID int64, frequencies []models.WordFrequency) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, word, count)
		VALUES (?, ?, ?)
		ON CONFLICT (%s, word) DO NOTHING
	`, tableName, ownerColumn, ownerColumn)

	for _, freq := range frequencies {
		if freq.Word == "" {
			continue
		}
		if _, err := r.db.Exec(query, ownerID, freq.Word, freq.Count); err != nil {
			return fmt.Errorf("failed to insert word frequency: %w", err)
		}
	}
	return nil
}
