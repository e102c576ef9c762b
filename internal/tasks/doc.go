// Package tasks orchestrates the two halves of the correlation pipeline with
// real-time progress reporting.
//
// # Core Operations
//
//  1. [JoinEngine.JoinAlbums] : merge scraped lyrics with catalog CSVs
//     - resolves the lyric folder and transformed track table per album
//     - matches every track title against lyric filenames (tiered)
//     - writes the merged per-album CSV plus matched/missing audit logs
//     - copies artist-level metadata into the processed tree once
//
//  2. [LoadEngine.LoadArtists] : load processed CSVs into the SQLite store
//     - upserts artist, album, tracks, and lyrics in dependency order
//     - builds the album-scoped track name → id map before lyric inserts
//     - commits at album granularity; a crash mid-run loses at most the
//       album in flight, and re-running never duplicates rows
//
// # Failure Model
//
// Both engines treat the album as the unit of failure. A missing lyric
// folder, an unreadable CSV, or an unresolvable id aborts that one album,
// records it on the run report, and the loop continues. Reports are explicit
// return values ([JoinReport], [LoadReport]); no failure state accumulates
// in package variables.
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate]. Sends use
// select with default so a slow or absent listener never blocks the
// pipeline.
//
// Execution is strictly sequential: one artist, one album, one entity type
// at a time. The only blocking calls are file I/O and database round-trips.
package tasks
