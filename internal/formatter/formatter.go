// package formatter writes the pipeline's outputs: merged per-album CSVs and
// plain-text run logs (matched, missing, failed, skipped)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/desertthunder/lyra/internal/models"
)

// timestampLayout matches the run timestamps embedded in log filenames.
const timestampLayout = "20060102_150405"

// AlbumCSV renders merged track rows as the final per-album CSV:
// TrackNumber first, the transformed catalog columns in their input order,
// Lyrics last. The ImageURL column appears only when the input carried one.
func AlbumCSV(rows []models.TrackRow) ([]byte, error) {
	withImage := false
	for _, row := range rows {
		if row.ImageURL != nil {
			withImage = true
			break
		}
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"TrackNumber", "SongName", "SongPopularity", "Explicit", "DurationMs", "AlbumName", "ReleaseDateAlbum", "AlbumPopularity"}
	if withImage {
		headers = append(headers, "ImageURL")
	}
	headers = append(headers, "Lyrics")
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.TrackNumber),
			row.SongName,
			intCell(row.SongPopularity),
			boolCell(row.Explicit),
			intCell(row.DurationMs),
			row.AlbumName,
			stringCell(row.ReleaseDate),
			intCell(row.AlbumPopularity),
		}
		if withImage {
			record = append(record, stringCell(row.ImageURL))
		}
		record = append(record, row.Lyrics)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// AlbumCSVName returns the final CSV filename for an album.
func AlbumCSVName(album string) string {
	return fmt.Sprintf("%s_final.csv", album)
}

// ArtistMetadataName returns the merged metadata filename for an artist.
func ArtistMetadataName(artist string) string {
	return fmt.Sprintf("%s_merged_metadata.csv", artist)
}

// Log filename builders. Every run log embeds the run timestamp so repeated
// runs never clobber earlier evidence.

func MatchedLogName(artist, album string, ts time.Time) string {
	return fmt.Sprintf("matched_lyrics_%s_%s_%s.log", artist, album, ts.Format(timestampLayout))
}

func MissingLogName(artist, album string, ts time.Time) string {
	return fmt.Sprintf("missing_lyrics_%s_%s_%s.log", artist, album, ts.Format(timestampLayout))
}

func FailedLogName(ts time.Time) string {
	return fmt.Sprintf("failed_merging_lyrics_metadata_%s.log", ts.Format(timestampLayout))
}

func SkippedLogName(ts time.Time) string {
	return fmt.Sprintf("skipped_albums_%s.log", ts.Format(timestampLayout))
}

// WriteLog writes one entry per line to dir/name, creating dir as needed.
// Nothing is written when lines is empty.
func WriteLog(dir, name string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func boolCell(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func stringCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
