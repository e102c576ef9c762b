// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/lyra/internal/shared"
)

// OpenTestDB opens an in-memory database with the full schema applied.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// WriteLyricsFolder creates lyricsDir/artist/album and writes one .txt file
// per entry in files (title -> lyric text).
func WriteLyricsFolder(t *testing.T, lyricsDir, artist, album string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(lyricsDir, artist, album)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create lyrics folder: %v", err)
	}
	for title, text := range files {
		path := filepath.Join(dir, title+".txt")
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			t.Fatalf("Failed to write lyric file: %v", err)
		}
	}
	return dir
}

// WriteTransformedCSV creates tracksDir/artist/<album dir>/<stem>_transformed.csv
// holding the given song names, one row each.
func WriteTransformedCSV(t *testing.T, tracksDir, artist, stem string, songs []string) string {
	t.Helper()
	dir := filepath.Join(tracksDir, artist, stem)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create album folder: %v", err)
	}

	var b strings.Builder
	b.WriteString("SongName,SongPopularity,Explicit,DurationMs,AlbumName,ReleaseDateAlbum,AlbumPopularity\n")
	for _, song := range songs {
		fmt.Fprintf(&b, "%s,60,False,210000,%s,2020-01-01,75\n", song, stem)
	}

	path := filepath.Join(dir, stem+"_transformed.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("Failed to write transformed CSV: %v", err)
	}
	return path
}

// WriteArtistCSV creates a merged artist metadata file under dir.
func WriteArtistCSV(t *testing.T, dir, artist string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create artist folder: %v", err)
	}

	header := "Name,BirthName,DateOfBirth,PlaceOfBirth,CountryOfCitizenship,WorkPeriodStart,GenresWikidata,GenresSpotify,Instruments,VoiceType,Popularity,Followers,ImageURL\n"
	row := fmt.Sprintf("%s,,1989-12-13,,United States,2004,country pop,pop,guitar,soprano,98,80000000,\n", artist)

	path := filepath.Join(dir, fmt.Sprintf("%s_merged_metadata.csv", artist))
	if err := os.WriteFile(path, []byte(header+row), 0644); err != nil {
		t.Fatalf("Failed to write artist metadata: %v", err)
	}
	return path
}

// WriteFinalAlbumCSV creates processedDir/artist/album/<album>_final.csv with
// numbered rows (song name -> lyric text, empty string for missing lyrics).
func WriteFinalAlbumCSV(t *testing.T, processedDir, artist, album string, tracks []string, lyrics map[string]string) string {
	t.Helper()
	dir := filepath.Join(processedDir, artist, album)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create processed folder: %v", err)
	}

	var b strings.Builder
	b.WriteString("TrackNumber,SongName,SongPopularity,Explicit,DurationMs,AlbumName,ReleaseDateAlbum,AlbumPopularity,Lyrics\n")
	for i, song := range tracks {
		fmt.Fprintf(&b, "%d,%s,60,False,210000,%s,2020-01-01,75,%s\n", i+1, song, album, lyrics[song])
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_final.csv", album))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("Failed to write final album CSV: %v", err)
	}
	return path
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}
