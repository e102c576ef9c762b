package models

import "fmt"

// Artist holds merged artist facts from the knowledge-graph and catalog
// sources. Created once per artist during load and never mutated by the
// loader; post-load enrichment belongs to external collaborators.
type Artist struct {
	Name        string  // required
	BirthName   *string
	BirthDate   *string // YYYY-MM-DD
	BirthPlace  *string
	Country     *string
	ActiveYears *int // first year of the artist's work period
	Genres      *string
	Instruments *string
	VocalType   *string
	Popularity  *int
	Followers   *int
	ImageURL    *string
}

// Validate checks that the artist record satisfies its identity constraint.
func (a *Artist) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("artist name is required")
	}
	return nil
}

// Album holds per-album catalog facts. An album is exclusively owned by one
// artist; deleting the artist cascades here.
type Album struct {
	Name        string // required
	ArtistID    int64
	ReleaseDate *string // YYYY-MM-DD
	Popularity  *int
	ImageURL    *string
}

// Validate checks that the album record satisfies its identity constraint.
func (a *Album) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("album name is required")
	}
	if a.ArtistID <= 0 {
		return fmt.Errorf("album %q has no owning artist", a.Name)
	}
	return nil
}

// Track holds per-track catalog facts. Track numbers come from input row
// order, not from any catalog field; if the input ordering is wrong the
// persisted numbers are wrong with no detection.
type Track struct {
	Name        string // required
	AlbumID     int64
	TrackNumber int
	DurationMs  *int
	Explicit    *bool
	Popularity  *int
}

// Validate checks that the track record satisfies its identity constraint.
func (t *Track) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("track name is required")
	}
	return nil
}

// Lyrics is the raw scraped text for one track. Analysis scores are inserted
// NULL and populated later by the analytics collaborator.
type Lyrics struct {
	TrackID int64
	Text    string
}

// WordFrequency is one (word, count) pair destined for the auxiliary
// word-frequency tables.
type WordFrequency struct {
	Word  string
	Count int
}

// TrackRow is one row of a per-album CSV: the transformed catalog columns,
// plus TrackNumber and Lyrics once the album has been joined.
type TrackRow struct {
	TrackNumber     int
	SongName        string
	SongPopularity  *int
	Explicit        *bool
	DurationMs      *int
	AlbumName       string
	ReleaseDate     *string
	AlbumPopularity *int
	ImageURL        *string
	Lyrics          string
}

// Validate checks the fields the joiner and loader depend on.
func (r *TrackRow) Validate() error {
	if r.SongName == "" {
		return fmt.Errorf("row has no song name")
	}
	if r.AlbumName == "" {
		return fmt.Errorf("row for %q has no album name", r.SongName)
	}
	return nil
}

// Track converts the row into a persistable [Track] owned by albumID.
func (r *TrackRow) Track(albumID int64) *Track {
	return &Track{
		Name:        r.SongName,
		AlbumID:     albumID,
		TrackNumber: r.TrackNumber,
		DurationMs:  r.DurationMs,
		Explicit:    r.Explicit,
		Popularity:  r.SongPopularity,
	}
}

// Tier describes how a title-to-lyric match was found.
type Tier string

const (
	TierExact  Tier = "exact"
	TierPrefix Tier = "prefix"
	TierFuzzy  Tier = "fuzzy"
	TierNone   Tier = "none"
)

// MatchRecord captures one matching decision for the audit log. It is
// ephemeral; nothing persists it.
type MatchRecord struct {
	Title   string // original song title
	Key     string // normalized form of Title
	Matched string // winning candidate key, empty when no tier matched
	Tier    Tier
}

// Ok reports whether any tier produced a match.
func (m MatchRecord) Ok() bool {
	return m.Tier != TierNone
}

// String renders the audit log line for this decision.
func (m MatchRecord) String() string {
	if !m.Ok() {
		return fmt.Sprintf("%s --> No match (none)", m.Title)
	}
	return fmt.Sprintf("%s --> %s (%s)", m.Title, m.Matched, m.Tier)
}
