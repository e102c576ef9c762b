package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/lyra/internal/models"
	"github.com/desertthunder/lyra/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func strp(s string) *string { return &s }

func TestArtistRepository(t *testing.T) {
	t.Run("Upsert Returns New ID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		id, err := repo.Upsert(&models.Artist{Name: "Taylor Swift", BirthDate: strp("1989-12-13")})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}
		if id <= 0 {
			t.Errorf("expected positive id, got %d", id)
		}
	})

	t.Run("Upsert Is Idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)
		artist := &models.Artist{Name: "Taylor Swift", BirthDate: strp("1989-12-13")}

		first, err := repo.Upsert(artist)
		if err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		second, err := repo.Upsert(artist)
		if err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}
		if first != second {
			t.Errorf("expected same id on re-upsert, got %d then %d", first, second)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM artists").Scan(&count); err != nil {
			t.Fatalf("failed to count artists: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 artist row, got %d", count)
		}
	})

	t.Run("Idempotent With NULL Birth Date", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)
		artist := &models.Artist{Name: "Unknown Singer"}

		first, err := repo.Upsert(artist)
		if err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		second, err := repo.Upsert(artist)
		if err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}
		if first != second {
			t.Errorf("NULL birth date should not duplicate the artist, got ids %d and %d", first, second)
		}
	})

	t.Run("Same Name Different Birth Date", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		first, err := repo.Upsert(&models.Artist{Name: "John Smith", BirthDate: strp("1970-01-01")})
		if err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		second, err := repo.Upsert(&models.Artist{Name: "John Smith", BirthDate: strp("1985-06-15")})
		if err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}
		if first == second {
			t.Error("artists with different birth dates should be distinct rows")
		}
	})

	t.Run("Rejects Empty Name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		if _, err := repo.Upsert(&models.Artist{}); err == nil {
			t.Error("expected validation error for empty name")
		}
	})

	t.Run("Delete Cascades", func(t *testing.T) {
		db := setupTestDB(t)
		artistRepo := NewArtistRepository(db)
		albumRepo := NewAlbumRepository(db)
		trackRepo := NewTrackRepository(db)
		lyricsRepo := NewLyricsRepository(db)

		artistID, err := artistRepo.Upsert(&models.Artist{Name: "Taylor Swift"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}
		albumID, err := albumRepo.Upsert(&models.Album{Name: "folklore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}
		if err := trackRepo.BulkInsert(albumID, []*models.Track{{Name: "the 1", AlbumID: albumID, TrackNumber: 1}}); err != nil {
			t.Fatalf("failed to insert track: %v", err)
		}
		ids, err := trackRepo.IDsByAlbum(albumID)
		if err != nil {
			t.Fatalf("failed to map track ids: %v", err)
		}
		if err := lyricsRepo.Insert(ids["the 1"], "i thought i saw you"); err != nil {
			t.Fatalf("failed to insert lyrics: %v", err)
		}

		if err := artistRepo.Delete(artistID); err != nil {
			t.Fatalf("failed to delete artist: %v", err)
		}

		for _, table := range []string{"artists", "albums", "tracks", "lyrics"} {
			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
				t.Fatalf("failed to count %s: %v", table, err)
			}
			if count != 0 {
				t.Errorf("expected %s to be empty after cascade, got %d rows", table, count)
			}
		}
	})
}

func TestAlbumRepository(t *testing.T) {
	t.Run("Upsert Is Idempotent Per Artist", func(t *testing.T) {
		db := setupTestDB(t)
		artistRepo := NewArtistRepository(db)
		albumRepo := NewAlbumRepository(db)

		artistID, err := artistRepo.Upsert(&models.Artist{Name: "Taylor Swift"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}

		first, err := albumRepo.Upsert(&models.Album{Name: "folklore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		second, err := albumRepo.Upsert(&models.Album{Name: "folklore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}
		if first != second {
			t.Errorf("expected same id on re-upsert, got %d then %d", first, second)
		}
	})

	t.Run("Same Album Name Across Artists", func(t *testing.T) {
		db := setupTestDB(t)
		artistRepo := NewArtistRepository(db)
		albumRepo := NewAlbumRepository(db)

		firstArtist, err := artistRepo.Upsert(&models.Artist{Name: "Artist A"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}
		secondArtist, err := artistRepo.Upsert(&models.Artist{Name: "Artist B"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}

		first, err := albumRepo.Upsert(&models.Album{Name: "Greatest Hits", ArtistID: firstArtist})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}
		second, err := albumRepo.Upsert(&models.Album{Name: "Greatest Hits", ArtistID: secondArtist})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}
		if first == second {
			t.Error("same album name under different artists should be distinct rows")
		}
	})

	t.Run("Rejects Missing Artist ID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAlbumRepository(db)

		if _, err := repo.Upsert(&models.Album{Name: "orphan"}); err == nil {
			t.Error("expected validation error for missing artist id")
		}
	})
}

func TestTrackRepository(t *testing.T) {
	seed := func(t *testing.T, db *sql.DB) int64 {
		t.Helper()
		artistID, err := NewArtistRepository(db).Upsert(&models.Artist{Name: "Taylor Swift"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}
		albumID, err := NewAlbumRepository(db).Upsert(&models.Album{Name: "folklore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}
		return albumID
	}

	t.Run("BulkInsert And IDsByAlbum", func(t *testing.T) {
		db := setupTestDB(t)
		albumID := seed(t, db)
		repo := NewTrackRepository(db)

		tracks := []*models.Track{
			{Name: "the 1", AlbumID: albumID, TrackNumber: 1},
			{Name: "cardigan", AlbumID: albumID, TrackNumber: 2},
		}
		if err := repo.BulkInsert(albumID, tracks); err != nil {
			t.Fatalf("failed to bulk insert: %v", err)
		}

		ids, err := repo.IDsByAlbum(albumID)
		if err != nil {
			t.Fatalf("failed to map track ids: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(ids))
		}
		if ids["the 1"] == 0 || ids["cardigan"] == 0 {
			t.Error("expected ids for both tracks")
		}
	})

	t.Run("Reinsert Does Not Duplicate", func(t *testing.T) {
		db := setupTestDB(t)
		albumID := seed(t, db)
		repo := NewTrackRepository(db)

		tracks := []*models.Track{{Name: "the 1", AlbumID: albumID, TrackNumber: 1}}
		if err := repo.BulkInsert(albumID, tracks); err != nil {
			t.Fatalf("first insert failed: %v", err)
		}
		if err := repo.BulkInsert(albumID, tracks); err != nil {
			t.Fatalf("second insert failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
			t.Fatalf("failed to count tracks: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 track row, got %d", count)
		}
	})

	t.Run("Chunked Insert Above Chunk Size", func(t *testing.T) {
		db := setupTestDB(t)
		albumID := seed(t, db)
		repo := NewTrackRepository(db)

		tracks := make([]*models.Track, 0, trackInsertChunk+25)
		for i := 0; i < trackInsertChunk+25; i++ {
			tracks = append(tracks, &models.Track{
				Name:        "track " + string(rune('a'+i%26)) + "-" + string(rune('0'+i/26)),
				AlbumID:     albumID,
				TrackNumber: i + 1,
			})
		}
		if err := repo.BulkInsert(albumID, tracks); err != nil {
			t.Fatalf("failed to bulk insert %d tracks: %v", len(tracks), err)
		}

		ids, err := repo.IDsByAlbum(albumID)
		if err != nil {
			t.Fatalf("failed to map track ids: %v", err)
		}
		if len(ids) != len(tracks) {
			t.Errorf("expected %d tracks, got %d", len(tracks), len(ids))
		}
	})

	t.Run("IDs Are Scoped To The Album", func(t *testing.T) {
		db := setupTestDB(t)
		artistID, err := NewArtistRepository(db).Upsert(&models.Artist{Name: "Taylor Swift"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}
		albumRepo := NewAlbumRepository(db)
		firstAlbum, err := albumRepo.Upsert(&models.Album{Name: "folklore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}
		secondAlbum, err := albumRepo.Upsert(&models.Album{Name: "evermore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}

		repo := NewTrackRepository(db)
		if err := repo.BulkInsert(firstAlbum, []*models.Track{{Name: "Intro", AlbumID: firstAlbum, TrackNumber: 1}}); err != nil {
			t.Fatalf("failed to insert track: %v", err)
		}
		if err := repo.BulkInsert(secondAlbum, []*models.Track{{Name: "Intro", AlbumID: secondAlbum, TrackNumber: 1}}); err != nil {
			t.Fatalf("failed to insert track: %v", err)
		}

		firstIDs, err := repo.IDsByAlbum(firstAlbum)
		if err != nil {
			t.Fatalf("failed to map track ids: %v", err)
		}
		secondIDs, err := repo.IDsByAlbum(secondAlbum)
		if err != nil {
			t.Fatalf("failed to map track ids: %v", err)
		}
		if firstIDs["Intro"] == secondIDs["Intro"] {
			t.Error("the same track name on two albums must resolve to different ids")
		}
	})
}

func TestLyricsRepository(t *testing.T) {
	seed := func(t *testing.T, db *sql.DB) int64 {
		t.Helper()
		artistID, err := NewArtistRepository(db).Upsert(&models.Artist{Name: "Taylor Swift"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}
		albumID, err := NewAlbumRepository(db).Upsert(&models.Album{Name: "folklore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}
		trackRepo := NewTrackRepository(db)
		if err := trackRepo.BulkInsert(albumID, []*models.Track{{Name: "the 1", AlbumID: albumID, TrackNumber: 1}}); err != nil {
			t.Fatalf("failed to insert track: %v", err)
		}
		ids, err := trackRepo.IDsByAlbum(albumID)
		if err != nil {
			t.Fatalf("failed to map track ids: %v", err)
		}
		return ids["the 1"]
	}

	t.Run("Insert And Exists", func(t *testing.T) {
		db := setupTestDB(t)
		trackID := seed(t, db)
		repo := NewLyricsRepository(db)

		if err := repo.Insert(trackID, "i thought i saw you"); err != nil {
			t.Fatalf("failed to insert lyrics: %v", err)
		}
		exists, err := repo.Exists(trackID)
		if err != nil {
			t.Fatalf("failed to check lyrics: %v", err)
		}
		if !exists {
			t.Error("expected lyrics row to exist")
		}
	})

	t.Run("Reinsert Keeps Original Text", func(t *testing.T) {
		db := setupTestDB(t)
		trackID := seed(t, db)
		repo := NewLyricsRepository(db)

		if err := repo.Insert(trackID, "original text"); err != nil {
			t.Fatalf("first insert failed: %v", err)
		}
		if err := repo.Insert(trackID, "re-scraped text"); err != nil {
			t.Fatalf("second insert failed: %v", err)
		}

		var text string
		if err := db.QueryRow("SELECT text FROM lyrics WHERE track_id = ?", trackID).Scan(&text); err != nil {
			t.Fatalf("failed to read lyrics: %v", err)
		}
		if text != "original text" {
			t.Errorf("re-scrape should not replace curated text, got %q", text)
		}
	})

	t.Run("Scores Inserted NULL", func(t *testing.T) {
		db := setupTestDB(t)
		trackID := seed(t, db)
		repo := NewLyricsRepository(db)

		if err := repo.Insert(trackID, "text"); err != nil {
			t.Fatalf("failed to insert lyrics: %v", err)
		}

		var readability, sentiment sql.NullFloat64
		err := db.QueryRow("SELECT readability_score, sentiment_score FROM lyrics WHERE track_id = ?", trackID).
			Scan(&readability, &sentiment)
		if err != nil {
			t.Fatalf("failed to read scores: %v", err)
		}
		if readability.Valid || sentiment.Valid {
			t.Error("analysis scores should be NULL at load time")
		}
	})
}

func TestWordFrequencyRepository(t *testing.T) {
	t.Run("Insert And Reinsert", func(t *testing.T) {
		db := setupTestDB(t)
		artistID, err := NewArtistRepository(db).Upsert(&models.Artist{Name: "Taylor Swift"})
		if err != nil {
			t.Fatalf("failed to upsert artist: %v", err)
		}
		albumID, err := NewAlbumRepository(db).Upsert(&models.Album{Name: "folklore", ArtistID: artistID})
		if err != nil {
			t.Fatalf("failed to upsert album: %v", err)
		}

		repo := NewWordFrequencyRepository(db)
		freqs := []models.WordFrequency{{Word: "august", Count: 12}, {Word: "", Count: 3}}

		if err := repo.InsertAlbumFrequencies(albumID, freqs); err != nil {
			t.Fatalf("failed to insert frequencies: %v", err)
		}
		if err := repo.InsertAlbumFrequencies(albumID, freqs); err != nil {
			t.Fatalf("reinsert failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM word_frequencies_album").Scan(&count); err != nil {
			t.Fatalf("failed to count frequencies: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 row (empty word skipped, reinsert ignored), got %d", count)
		}
	})
}
