package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/lyra/internal/models"
	"github.com/desertthunder/lyra/internal/shared"
)

// AlbumRepository persists [models.Album] records.
type AlbumRepository struct {
	db DBTX
}

// NewAlbumRepository creates a new AlbumRepository on the given connection or transaction.
func NewAlbumRepository(db DBTX) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// Upsert inserts the album and returns its id, or resolves the existing id
// on a (name, artist id) conflict. Existing rows are never updated.
func (r *AlbumRepository) Upsert(album *models.Album) (int64, error) {
	if err := album.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO albums (name, artist_id, release_date, popularity, image_url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name, artist_id) DO NOTHING
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(query,
		album.Name,
		album.ArtistID,
		album.ReleaseDate,
		album.Popularity,
		album.ImageURL,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return r.lookup(album)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert album: %w", err)
	}
	return id, nil
}

func (r *AlbumRepository) lookup(album *models.Album) (int64, error) {
	var id int64
	err := r.db.QueryRow("SELECT id FROM albums WHERE name = ? AND artist_id = ?", album.Name, album.ArtistID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: album %q", shared.ErrIDUnresolved, album.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up album: %w", err)
	}
	return id, nil
}
