package tasks

import (
	"context"
	"fmt"
	"io"
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
	"github.com/desertthunder/lyra/internal/shared"
)

// JoinEngine merges scraped lyric text with transformed catalog CSVs, one
// album at a time.
type JoinEngine struct {
	paths          shared.PathsConfig
	matcher        *matching.Matcher
	folderCutoff   float64
	albumDirCutoff float64
	logger         *log.Logger
}

// NewJoinEngine creates a join engine from the application configuration.
func NewJoinEngine(config *shared.Config, logger *log.Logger) *JoinEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &JoinEngine{
		paths: config.Paths,
		matcher: matching.NewMatcher(matching.Config{
			FuzzyCutoff:  config.Matching.FuzzyCutoff,
			PrefixLength: config.Matching.PrefixLength,
		}),
		folderCutoff:   config.Matching.FolderCutoff,
		albumDirCutoff: config.Matching.AlbumDirCutoff,
		logger:         logger,
	}
}

// SetLogger swaps the engine's logger.
func (e *JoinEngine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// DiscoverWork walks the lyrics tree and returns one [WorkItem] per
// (artist, album) folder pair. When artists is non-empty, only those artist
// folders are included.
func (e *JoinEngine) DiscoverWork(artists []string) ([]WorkItem, error) {
	wanted := make(map[string]bool, len(artists))
	for _, a := range artists {
		wanted[a] = true
	}

	artistDirs, err := os.ReadDir(e.paths.LyricsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics directory: %w", err)
	}

	var items []WorkItem
	for _, artistDir := range artistDirs {
		if !artistDir.IsDir() {
			continue
		}
		if len(wanted) > 0 && !wanted[artistDir.Name()] {
			continue
		}
		albumDirs, err := os.ReadDir(filepath.Join(e.paths.LyricsDir, artistDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read artist directory: %w", err)
		}
		for _, albumDir := range albumDirs {
			if albumDir.IsDir() {
				items = append(items, WorkItem{Artist: artistDir.Name(), Album: albumDir.Name()})
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Artist != items[j].Artist {
			return items[i].Artist < items[j].Artist
		}
		return items[i].Album < items[j].Album
	})
	return items, nil
}

// JoinAlbums processes every work item sequentially and returns the run
// report. A failed album is recorded and the loop continues; the only
// run-level errors are context cancellation and an unwritable failure log.
func (e *JoinEngine) JoinAlbums(ctx context.Context, prog chan<- ProgressUpdate, items []WorkItem) (*JoinReport, error) {
	report := &JoinReport{
		RunID:     shared.GenerateID(),
		StartedAt: time.Now(),
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		sendProgress(prog, joinAlbumUpdate(i+1, len(items), item.Artist, item.Album))

		matched, missing, err := e.joinAlbum(prog, i+1, len(items), item, report.StartedAt)
		if err != nil {
			e.logger.Error("album join failed", "artist", item.Artist, "album", item.Album, "error", err)
			report.Failures = append(report.Failures, AlbumFailure{Artist: item.Artist, Album: item.Album, Err: err})
			sendProgress(prog, albumFailedUpdate(i+1, len(items), item.Artist, item.Album, err))
			continue
		}

		report.Succeeded = append(report.Succeeded, fmt.Sprintf("%s - %s", item.Artist, item.Album))
		report.Matched += matched
		report.Missing += missing
		sendProgress(prog, albumJoinedUpdate(i+1, len(items), item.Artist, item.Album, matched, missing))
	}

	if len(report.Failures) > 0 {
		lines := make([]string, 0, len(report.Failures))
		for _, f := range report.Failures {
			lines = append(lines, f.String())
		}
		if err := formatter.WriteLog(e.paths.LogsDir, formatter.FailedLogName(report.StartedAt), lines); err != nil {
			return report, err
		}
	}

	return report, nil
}

// joinAlbum runs the full merge for one (artist, album) pair. Any missing
// precondition aborts this album only.
func (e *JoinEngine) joinAlbum(prog chan<- ProgressUpdate, step, total int, item WorkItem, ts time.Time) (matched, missing int, err error) {
	artist := matching.NormalizeUnicode(item.Artist)
	album := matching.NormalizeUnicode(item.Album)

	csvPath, err := e.resolveTransformedCSV(artist, album)
	if err != nil {
		return 0, 0, err
	}

	rows, err := parser.ParseTransformedCSV(csvPath)
	if err != nil {
		return 0, 0, err
	}

	// Row order is the source of truth for track numbers. There is no
	// cross-check against catalog metadata.
	for i := range rows {
		rows[i].TrackNumber = i + 1
	}

	lyricsDir, err := e.resolveLyricsFolder(artist, album)
	if err != nil {
		return 0, 0, err
	}
	lyricsMap, err := e.loadLyricsMap(lyricsDir)
	if err != nil {
		return 0, 0, err
	}

	sendProgress(prog, matchTracksUpdate(step, total, album, len(rows)))

	var (
		matchLines   []string
		missingLines []string
	)
	for i := range rows {
		text, record := e.matcher.Match(rows[i].SongName, lyricsMap)
		matchLines = append(matchLines, record.String())
		if record.Ok() {
			rows[i].Lyrics = text
			matched++
		} else {
			// Never fabricate content; the field stays empty.
			rows[i].Lyrics = ""
			missingLines = append(missingLines, rows[i].SongName)
			missing++
		}
	}

	if matched == 0 {
		e.logger.Warn("no lyrics matched any track", "artist", artist, "album", album)
	}

	if err := e.writeOutputs(artist, album, rows); err != nil {
		return 0, 0, err
	}
	if err := formatter.WriteLog(e.paths.LogsDir, formatter.MatchedLogName(artist, album, ts), matchLines); err != nil {
		return 0, 0, err
	}
	if err := formatter.WriteLog(e.paths.LogsDir, formatter.MissingLogName(artist, album, ts), missingLines); err != nil {
		return 0, 0, err
	}
	if err := e.copyArtistMetadata(artist); err != nil {
		return 0, 0, err
	}

	return matched, missing, nil
}

// resolveLyricsFolder finds the lyric folder for an album: exact normalized
// name first, then a fuzzy match with the strict folder cutoff. Folder
// mismatches are rarer and riskier than filename mismatches, so there is no
// lenient fallback; an unresolved folder fails the album loudly.
func (e *JoinEngine) resolveLyricsFolder(artist, album string) (string, error) {
	artistPath := filepath.Join(e.paths.LyricsDir, artist)
	entries, err := os.ReadDir(artistPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s - %s: %v", shared.ErrNoLyricsFolder, artist, album, err)
	}

	folders := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			folders[strings.ToLower(matching.NormalizeUnicode(entry.Name()))] = entry.Name()
		}
	}

	target := strings.ToLower(matching.NormalizeUnicode(album))
	if name, ok := folders[target]; ok {
		return filepath.Join(artistPath, name), nil
	}

	keys := make([]string, 0, len(folders))
	for k := range folders {
		keys = append(keys, k)
	}
	if best, ok := matching.BestMatch(target, keys, e.folderCutoff); ok {
		return filepath.Join(artistPath, folders[best]), nil
	}

	return "", fmt.Errorf("%w: no folder for %q under %s", shared.ErrNoLyricsFolder, album, artistPath)
}

// loadLyricsMap reads every text file in the folder into a map keyed by the
// normalized filename. When two files normalize to the same key the first
// wins and the collision is logged.
func (e *JoinEngine) loadLyricsMap(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	lyricsMap := make(map[string]string, len(names))
	for _, name := range names {
		key := matching.Normalize(strings.TrimSuffix(name, ".txt"))
		if _, exists := lyricsMap[key]; exists {
			e.logger.Warn("duplicate lyric key, keeping first file", "key", key, "skipped", name)
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read lyric file %s: %w", name, err)
		}
		lyricsMap[key] = strings.TrimSpace(string(content))
	}

	if len(lyricsMap) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoLyricsLoaded, dir)
	}
	return lyricsMap, nil
}

// resolveTransformedCSV finds the transformed track table for an album.
// Catalog album names and transformed directory stems diverge often, so the
// fuzzy cutoff here is lenient and a substring check backstops it.
func (e *JoinEngine) resolveTransformedCSV(artist, album string) (string, error) {
	artistPath := filepath.Join(e.paths.TracksDir, artist)
	entries, err := os.ReadDir(artistPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s - %s: %v", shared.ErrNoTransformedCSV, artist, album, err)
	}

	type candidate struct {
		stem string
		path string
	}
	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(artistPath, entry.Name(), "*_transformed.csv"))
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		base := strings.TrimSuffix(filepath.Base(matches[0]), "_transformed.csv")
		candidates = append(candidates, candidate{
			stem: strings.ToLower(matching.NormalizeUnicode(base)),
			path: matches[0],
		})
	}

	target := strings.ToLower(matching.NormalizeUnicode(album))
	stems := make([]string, 0, len(candidates))
	for _, c := range candidates {
		stems = append(stems, c.stem)
	}

	if best, ok := matching.BestMatch(target, stems, e.albumDirCutoff); ok {
		for _, c := range candidates {
			if c.stem == best {
				return c.path, nil
			}
		}
	}
	for _, c := range candidates {
		if strings.Contains(c.stem, target) {
			return c.path, nil
		}
	}

	return "", fmt.Errorf("%w: no transformed CSV for %q in %s", shared.ErrNoTransformedCSV, album, artistPath)
}

// writeOutputs persists the merged dataset to the processed tree.
func (e *JoinEngine) writeOutputs(artist, album string, rows []models.TrackRow) error {
	data, err := formatter.AlbumCSV(rows)
	if err != nil {
		return err
	}

	outDir := filepath.Join(e.paths.ProcessedDir, artist, album)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, formatter.AlbumCSVName(album)), data, 0644); err != nil {
		return fmt.Errorf("failed to write album CSV: %w", err)
	}
	return nil
}

// copyArtistMetadata copies the merged artist metadata file into the
// processed tree once. Later albums of the same artist skip the copy.
func (e *JoinEngine) copyArtistMetadata(artist string) error {
	name := formatter.ArtistMetadataName(artist)
	src := filepath.Join(e.paths.TracksDir, artist, name)
	dst := filepath.Join(e.paths.ProcessedDir, artist, name)

	if _, err := os.Stat(src); err != nil {
		// Not every artist ships metadata at join time; the loader reports
		// it when the file matters.
		return nil
	}
	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open artist metadata: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create artist directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create metadata copy: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy artist metadata: %w", err)
	}
	return nil
}
