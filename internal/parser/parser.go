package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/lyra/internal/models"
	"github.com/desertthunder/lyra/internal/shared"
)

// table is a parsed CSV: a header index plus raw records.
type table struct {
	index   map[string]int
	records [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrEmptyCSV, path)
	}

	return &table{index: index, records: records}, nil
}

// require verifies that every named column is present.
func (t *table) require(columns ...string) error {
	for _, col := range columns {
		if _, ok := t.index[col]; !ok {
			return fmt.Errorf("%w: %s", shared.ErrMissingColumn, col)
		}
	}
	return nil
}

// cell returns the trimmed value at (record, column), or "" when the column
// is absent or the record is short.
func (t *table) cell(record []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Coercion helpers. Empty cells and pandas NaN spellings become nil; values
// that should be numeric but are not also become nil rather than failing the
// whole file.

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}

func optString(s string) *string {
	if isNull(s) {
		return nil
	}
	return &s
}

func optInt(s string) *int {
	if isNull(s) {
		return nil
	}
	// pandas exports integer columns as floats ("82.0") once a NaN appears
	// anywhere in the column.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

func optBool(s string) *bool {
	if isNull(s) {
		return nil
	}
	b, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return nil
	}
	return &b
}

// optDate accepts YYYY-MM-DD; anything else is nil.
func optDate(s string) *string {
	if isNull(s) {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return nil
	}
	return &s
}

// optYear extracts an integer year, tolerating full dates and float spellings.
func optYear(s string) *int {
	if isNull(s) {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		y := t.Year()
		return &y
	}
	return optInt(s)
}

// ParseArtistCSV reads a merged artist metadata file. Only the first record
// is used; the file holds one artist.
func ParseArtistCSV(path string) (*models.Artist, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("Name"); err != nil {
		return nil, err
	}

	record := t.records[0]
	artist := &models.Artist{
		Name:        t.cell(record, "Name"),
		BirthName:   optString(t.cell(record, "BirthName")),
		BirthDate:   optDate(t.cell(record, "DateOfBirth")),
		BirthPlace:  optString(t.cell(record, "PlaceOfBirth")),
		Country:     optString(t.cell(record, "CountryOfCitizenship")),
		ActiveYears: optYear(t.cell(record, "WorkPeriodStart")),
		Genres:      mergeGenres(t.cell(record, "GenresWikidata"), t.cell(record, "GenresSpotify")),
		Instruments: optString(t.cell(record, "Instruments")),
		VocalType:   optString(t.cell(record, "VoiceType")),
		Popularity:  optInt(t.cell(record, "Popularity")),
		Followers:   optInt(t.cell(record, "Followers")),
		ImageURL:    optString(t.cell(record, "ImageURL")),
	}

	if err := artist.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, err)
	}
	return artist, nil
}

// mergeGenres joins the knowledge-graph and catalog genre lists into one
// comma-separated field, skipping empty sides.
func mergeGenres(wikidata, catalog string) *string {
	var parts []string
	for _, g := range []string{wikidata, catalog} {
		if !isNull(g) {
			parts = append(parts, g)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	merged := strings.Join(parts, ", ")
	return &merged
}

// ParseTransformedCSV reads a pre-join transformed track table. Rows come
// back in file order; the caller assigns track numbers from that order.
func ParseTransformedCSV(path string) ([]models.TrackRow, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("SongName", "AlbumName"); err != nil {
		return nil, err
	}
	return t.trackRows(false)
}

// ParseAlbumCSV reads a final per-album CSV produced by the joiner. The
// album summary comes from the first row; every row is one track.
func ParseAlbumCSV(path string) (*models.Album, []models.TrackRow, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, nil, err
	}
	if err := t.require("SongName", "AlbumName", "TrackNumber"); err != nil {
		return nil, nil, err
	}

	rows, err := t.trackRows(true)
	if err != nil {
		return nil, nil, err
	}

	first := rows[0]
	album := &models.Album{
		Name:        first.AlbumName,
		ReleaseDate: first.ReleaseDate,
		Popularity:  first.AlbumPopularity,
		ImageURL:    first.ImageURL,
	}
	return album, rows, nil
}

// trackRows converts records into validated [models.TrackRow] values. When
// numbered is true the TrackNumber column is read; otherwise numbers stay
// zero until the joiner assigns them.
func (t *table) trackRows(numbered bool) ([]models.TrackRow, error) {
	rows := make([]models.TrackRow, 0, len(t.records))
	for i, record := range t.records {
		row := models.TrackRow{
			SongName:        t.cell(record, "SongName"),
			SongPopularity:  optInt(t.cell(record, "SongPopularity")),
			Explicit:        optBool(t.cell(record, "Explicit")),
			DurationMs:      optInt(t.cell(record, "DurationMs")),
			AlbumName:       t.cell(record, "AlbumName"),
			ReleaseDate:     optDate(t.cell(record, "ReleaseDateAlbum")),
			AlbumPopularity: optInt(t.cell(record, "AlbumPopularity")),
			ImageURL:        optString(t.cell(record, "ImageURL")),
			Lyrics:          t.cell(record, "Lyrics"),
		}
		if numbered {
			if n := optInt(t.cell(record, "TrackNumber")); n != nil {
				row.TrackNumber = *n
			}
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %s", shared.ErrInvalidInput, i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
