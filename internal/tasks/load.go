package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyra/internal/formatter"
	"github.com/desertthunder/lyra/internal/matching"
	"github.com/desertthunder/lyra/internal/models"
	"github.com/desertthunder/lyra/internal/parser"
	"github.com/desertthunder/lyra/internal/repositories"
	"github.com/desertthunder/lyra/internal/shared"
)

// LoadEngine loads processed per-album CSVs into the relational store.
type LoadEngine struct {
	db           *sql.DB
	processedDir string
	logsDir      string
	exclude      []string
	logger       *log.Logger
}

// NewLoadEngine creates a load engine bound to an open database.
func NewLoadEngine(db *sql.DB, config *shared.Config, logger *log.Logger) *LoadEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	exclude := make([]string, 0, len(config.Loader.ExcludeKeywords))
	for _, kw := range config.Loader.ExcludeKeywords {
		exclude = append(exclude, strings.ToLower(kw))
	}
	return &LoadEngine{
		db:           db,
		processedDir: config.Paths.ProcessedDir,
		logsDir:      config.Paths.LogsDir,
		exclude:      exclude,
		logger:       logger,
	}
}

// SetLogger swaps the engine's logger.
func (e *LoadEngine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// LoadArtists loads every named artist from the processed tree; with an
// empty list, every artist folder is loaded. Album-level problems are
// recorded on the report and do not stop the run.
func (e *LoadEngine) LoadArtists(ctx context.Context, prog chan<- ProgressUpdate, artists []string) (*LoadReport, error) {
	report := &LoadReport{
		RunID:     shared.GenerateID(),
		StartedAt: time.Now(),
	}

	dirs, err := e.artistDirs(artists)
	if err != nil {
		return report, err
	}

	for i, artist := range dirs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		sendProgress(prog, parseArtistUpdate(i+1, len(dirs), artist))
		if err := e.loadArtist(ctx, prog, report, i+1, len(dirs), artist); err != nil {
			e.logger.Error("artist load failed", "artist", artist, "error", err)
			report.Failures = append(report.Failures, AlbumFailure{Artist: artist, Album: "*", Err: err})
		}
	}

	if len(report.Skipped) > 0 {
		if err := formatter.WriteLog(e.logsDir, formatter.SkippedLogName(report.StartedAt), report.Skipped); err != nil {
			return report, err
		}
	}

	return report, nil
}

// artistDirs lists artist folders under the processed tree, optionally
// restricted to an explicit work list. Folder names were folded to ASCII
// when the joiner wrote them, so the filter folds its names the same way.
func (e *LoadEngine) artistDirs(artists []string) ([]string, error) {
	wanted := make(map[string]bool, len(artists))
	for _, a := range artists {
		wanted[matching.NormalizeUnicode(a)] = true
	}

	entries, err := os.ReadDir(e.processedDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read processed directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if len(wanted) > 0 && !wanted[matching.NormalizeUnicode(entry.Name())] {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	sort.Strings(dirs)
	return dirs, nil
}

// loadArtist upserts one artist and then loads each of its albums in its own
// transaction. An album that fails rolls back alone; earlier albums stay
// committed.
func (e *LoadEngine) loadArtist(ctx context.Context, prog chan<- ProgressUpdate, report *LoadReport, step, total int, artist string) error {
	artistDir := filepath.Join(e.processedDir, artist)
	metadataPath := filepath.Join(artistDir, formatter.ArtistMetadataName(artist))
	if _, err := os.Stat(metadataPath); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrNoArtistMetadata, metadataPath)
	}

	record, err := parser.ParseArtistCSV(metadataPath)
	if err != nil {
		return err
	}

	// The artist row is shared by all albums, so it lives outside the
	// per-album transactions; inserting it is idempotent on its own.
	artistID, err := repositories.NewArtistRepository(e.db).Upsert(record)
	if err != nil {
		return err
	}
	report.Artists++

	albums, err := os.ReadDir(artistDir)
	if err != nil {
		return fmt.Errorf("failed to read artist directory: %w", err)
	}

	for _, entry := range albums {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		album := entry.Name()
		if e.excluded(album) {
			e.logger.Info("album excluded by policy", "artist", artist, "album", album)
			report.Skipped = append(report.Skipped, fmt.Sprintf("%s/%s", artist, album))
			sendProgress(prog, albumSkippedUpdate(step, total, artist, album))
			continue
		}

		if err := e.loadAlbum(prog, report, step, total, artist, artistID, filepath.Join(artistDir, album)); err != nil {
			// Album-boundary recovery: record and continue with the next
			// album of this artist.
			e.logger.Error("album load failed", "artist", artist, "album", album, "error", err)
			report.Failures = append(report.Failures, AlbumFailure{Artist: artist, Album: album, Err: err})
		}
	}

	return nil
}

// excluded reports whether the album folder name trips the exclusion policy.
func (e *LoadEngine) excluded(album string) bool {
	lowered := strings.ToLower(album)
	for _, kw := range e.exclude {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// loadAlbum loads one album inside a single transaction: album row, bulk
// track insert, scoped name → id map, then lyric rows. Commit makes the
// album durable as one unit.
func (e *LoadEngine) loadAlbum(prog chan<- ProgressUpdate, report *LoadReport, step, total int, artist string, artistID int64, albumDir string) error {
	csvFiles, err := filepath.Glob(filepath.Join(albumDir, "*_final.csv"))
	if err != nil || len(csvFiles) == 0 {
		return fmt.Errorf("%w: no *_final.csv in %s", shared.ErrNoTransformedCSV, albumDir)
	}
	sort.Strings(csvFiles)

	album, rows, err := parser.ParseAlbumCSV(csvFiles[0])
	if err != nil {
		return err
	}
	album.ArtistID = artistID

	sendProgress(prog, upsertAlbumUpdate(step, total, album.Name, len(rows)))

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	albumID, err := repositories.NewAlbumRepository(tx).Upsert(album)
	if err != nil {
		return err
	}

	tracks := make([]*models.Track, 0, len(rows))
	for i := range rows {
		tracks = append(tracks, rows[i].Track(albumID))
	}
	trackRepo := repositories.NewTrackRepository(tx)
	if err := trackRepo.BulkInsert(albumID, tracks); err != nil {
		return err
	}

	// The map must be scoped to this album: track names repeat across
	// albums and a name-only lookup would attach lyrics to the wrong id.
	trackIDs, err := trackRepo.IDsByAlbum(albumID)
	if err != nil {
		return err
	}

	lyricsRepo := repositories.NewLyricsRepository(tx)
	for i := range rows {
		if rows[i].Lyrics == "" {
			// The joiner left the field empty because no lyric file
			// matched; an empty lyrics row would only hide that.
			report.LyricsMiss++
			continue
		}
		trackID, ok := trackIDs[rows[i].SongName]
		if !ok {
			e.logger.Warn("no track id for lyrics", "track", rows[i].SongName, "album", album.Name)
			report.LyricsMiss++
			continue
		}
		if err := lyricsRepo.Insert(trackID, rows[i].Lyrics); err != nil {
			return err
		}
		report.Lyrics++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit album: %w", err)
	}

	report.Albums++
	report.Tracks += len(rows)
	sendProgress(prog, albumCommittedUpdate(step, total, artist, album.Name))
	return nil
}
