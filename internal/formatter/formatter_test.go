package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lyra/internal/models"
)

func intp(n int) *int       { return &n }
func boolp(b bool) *bool    { return &b }
func strp(s string) *string { return &s }

func TestAlbumCSV(t *testing.T) {
	rows := []models.TrackRow{
		{
			TrackNumber:     1,
			SongName:        "the 1",
			SongPopularity:  intp(75),
			Explicit:        boolp(false),
			DurationMs:      intp(210000),
			AlbumName:       "folklore",
			ReleaseDate:     strp("2020-07-24"),
			AlbumPopularity: intp(88),
			Lyrics:          "i thought i saw you",
		},
		{
			TrackNumber: 2,
			SongName:    "cardigan",
			AlbumName:   "folklore",
			Lyrics:      "",
		},
	}

	t.Run("Column Order", func(t *testing.T) {
		data, err := AlbumCSV(rows)
		if err != nil {
			t.Fatalf("failed to render CSV: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
		}
		want := "TrackNumber,SongName,SongPopularity,Explicit,DurationMs,AlbumName,ReleaseDateAlbum,AlbumPopularity,Lyrics"
		if lines[0] != want {
			t.Errorf("unexpected header: %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "1,the 1,75,false,210000,folklore,2020-07-24,88,") {
			t.Errorf("unexpected first record: %q", lines[1])
		}
	})

	t.Run("ImageURL Column Only When Present", func(t *testing.T) {
		data, err := AlbumCSV(rows)
		if err != nil {
			t.Fatalf("failed to render CSV: %v", err)
		}
		if strings.Contains(strings.Split(string(data), "\n")[0], "ImageURL") {
			t.Error("ImageURL column should be absent when no row carries one")
		}

		withImage := make([]models.TrackRow, len(rows))
		copy(withImage, rows)
		withImage[0].ImageURL = strp("https://img.example/folklore.jpg")

		data, err = AlbumCSV(withImage)
		if err != nil {
			t.Fatalf("failed to render CSV: %v", err)
		}
		header := strings.Split(string(data), "\n")[0]
		if !strings.Contains(header, "ImageURL") {
			t.Errorf("expected ImageURL column, got %q", header)
		}
		if !strings.HasSuffix(header, "Lyrics") {
			t.Errorf("Lyrics should stay the last column, got %q", header)
		}
	})

	t.Run("Missing Lyrics Stay Empty", func(t *testing.T) {
		data, err := AlbumCSV(rows)
		if err != nil {
			t.Fatalf("failed to render CSV: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if !strings.HasSuffix(lines[2], ",") {
			t.Errorf("expected empty lyrics cell, got %q", lines[2])
		}
	})
}

func TestFilenames(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	cases := map[string]string{
		AlbumCSVName("folklore"):                         "folklore_final.csv",
		ArtistMetadataName("Taylor Swift"):               "Taylor Swift_merged_metadata.csv",
		MatchedLogName("Taylor Swift", "folklore", ts):   "matched_lyrics_Taylor Swift_folklore_20240315_093000.log",
		MissingLogName("Taylor Swift", "folklore", ts):   "missing_lyrics_Taylor Swift_folklore_20240315_093000.log",
		FailedLogName(ts):                                "failed_merging_lyrics_metadata_20240315_093000.log",
		SkippedLogName(ts):                               "skipped_albums_20240315_093000.log",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestWriteLog(t *testing.T) {
	t.Run("Writes One Line Per Entry", func(t *testing.T) {
		dir := t.TempDir()
		lines := []string{"the 1 --> the 1 (exact)", "cardigan --> No match (none)"}

		if err := WriteLog(dir, "matched.log", lines); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "matched.log"))
		if err != nil {
			t.Fatalf("failed to read log: %v", err)
		}
		if string(data) != "the 1 --> the 1 (exact)\ncardigan --> No match (none)\n" {
			t.Errorf("unexpected log content: %q", data)
		}
	})

	t.Run("Empty Lines Write Nothing", func(t *testing.T) {
		dir := t.TempDir()

		if err := WriteLog(dir, "missing.log", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "missing.log")); err == nil {
			t.Error("no file should be created for an empty log")
		}
	})

	t.Run("Creates Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs", "nested")

		if err := WriteLog(dir, "run.log", []string{"line"}); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "run.log")); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})
}
