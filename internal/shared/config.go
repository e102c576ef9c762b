package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Database DatabaseConfig `toml:"database"`
	Matching MatchingConfig `toml:"matching"`
	Loader   LoaderConfig   `toml:"loader"`
}

// PathsConfig locates the on-disk trees the pipeline reads and writes.
type PathsConfig struct {
	LyricsDir    string `toml:"lyrics_dir"`    // scraped lyric text, one folder per artist/album
	TracksDir    string `toml:"tracks_dir"`    // transformed catalog CSVs, one folder per artist/album
	ProcessedDir string `toml:"processed_dir"` // merged output, one folder per artist/album
	LogsDir      string `toml:"logs_dir"`      // per-run match/miss/failure logs
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// MatchingConfig tunes the title reconciliation engine.
//
// Folder matches are rarer and riskier than filename matches, so the folder
// cutoff sits well above the filename cutoff. The album directory cutoff is
// low because transformed directory stems diverge heavily from catalog names;
// a substring check backstops it.
type MatchingConfig struct {
	FuzzyCutoff    float64 `toml:"fuzzy_cutoff"`     // filename tier, default 0.6
	FolderCutoff   float64 `toml:"folder_cutoff"`    // lyrics folder tier, default 0.85
	AlbumDirCutoff float64 `toml:"album_dir_cutoff"` // transformed dir tier, default 0.4
	PrefixLength   int     `toml:"prefix_length"`    // prefix tier rune count, default 10
}

// LoaderConfig contains load-time policy settings.
type LoaderConfig struct {
	// ExcludeKeywords filters album folders out of the load, matched
	// case-insensitively against folder names. Reissues such as deluxe and
	// live editions would otherwise double-count tracks.
	ExcludeKeywords []string `toml:"exclude_keywords"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyDefaults()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills zero-valued matching knobs so a partial config file
// cannot silently disable a match tier.
func (c *Config) applyDefaults() {
	if c.Matching.FuzzyCutoff == 0 {
		c.Matching.FuzzyCutoff = 0.6
	}
	if c.Matching.FolderCutoff == 0 {
		c.Matching.FolderCutoff = 0.85
	}
	if c.Matching.AlbumDirCutoff == 0 {
		c.Matching.AlbumDirCutoff = 0.4
	}
	if c.Matching.PrefixLength == 0 {
		c.Matching.PrefixLength = 10
	}
}
