package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/lyra/internal/models"
	"github.com/desertthunder/lyra/internal/shared"
)

// ArtistRepository persists [models.Artist] records.
type ArtistRepository struct {
	db DBTX
}

// NewArtistRepository creates a new ArtistRepository on the given connection or transaction.
func NewArtistRepository(db DBTX) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Upsert inserts the artist and returns its id. When an artist with the same
// (name, birth date) identity already exists, the existing id is returned
// and no column is touched.
func (r *ArtistRepository) Upsert(artist *models.Artist) (int64, error) {
	if err := artist.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO artists (name, birth_name, birth_date, birth_place, country,
			active_years, genres, instruments, vocal_type, popularity, followers, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(query,
		artist.Name,
		artist.BirthName,
		artist.BirthDate,
		artist.BirthPlace,
		artist.Country,
		artist.ActiveYears,
		artist.Genres,
		artist.Instruments,
		artist.VocalType,
		artist.Popularity,
		artist.Followers,
		artist.ImageURL,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return r.lookup(artist)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert artist: %w", err)
	}
	return id, nil
}

// lookup resolves an existing artist by its identity key. The IFNULL
// comparison mirrors the unique index, so an unknown birth date matches the
// row inserted with an unknown birth date.
func (r *ArtistRepository) lookup(artist *models.Artist) (int64, error) {
	query := `
		SELECT id FROM artists
		WHERE name = ? AND IFNULL(birth_date, '') = IFNULL(?, '')
	`

	var id int64
	err := r.db.QueryRow(query, artist.Name, artist.BirthDate).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: artist %q", shared.ErrIDUnresolved, artist.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up artist: %w", err)
	}
	return id, nil
}

// Delete removes an artist and, through cascades, all dependent albums,
// tracks, and lyrics.
func (r *ArtistRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("artist not found: %d", id)
	}
	return nil
}
