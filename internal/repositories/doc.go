// Package repositories implements SQLite persistence for all domain entities.
//
// Every writer follows the same two-step upsert discipline:
//
//  1. INSERT ... ON CONFLICT DO NOTHING RETURNING id; the id comes back only
//     when the row is new.
//  2. On conflict (no id returned), an explicit lookup by the same uniqueness
//     key retrieves the existing id.
//
// The two steps exist because insert-or-update would overwrite curated
// columns on a re-scrape; existing rows are never mutated. Re-running a load
// on identical inputs therefore changes nothing.
//
// Key implementations:
//   - [ArtistRepository] : identity (name, birth date), NULL-safe
//   - [AlbumRepository] : identity (name, artist id)
//   - [TrackRepository] : bulk conflict-ignore insert plus the album-scoped
//     name → id lookup ([TrackRepository.IDsByAlbum])
//   - [LyricsRepository] : insert-or-ignore keyed by track id, 1:1
//   - [WordFrequencyRepository] : auxiliary analytics tables
//
// Repositories accept the [DBTX] interface so the same code runs against a
// bare connection or inside the loader's per-album transaction.
package repositories
