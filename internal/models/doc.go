// Package models defines domain entities for the lyric correlation pipeline.
//
// The package contains two categories of types:
//
// 1. Persistent entities backing the four core tables:
//   - [Artist] : knowledge-graph + catalog facts, identity (name, birth date)
//   - [Album] : owned by one artist, identity (name, artist id)
//   - [Track] : owned by one album, identity (name, album id)
//   - [Lyrics] : 1:1 with a track; analysis columns are filled elsewhere
//
// 2. Flow records that never reach the database:
//   - [TrackRow] : one row of a transformed or merged per-album CSV
//   - [MatchRecord] : one title-to-lyric matching decision for audit logs
//   - [WordFrequency] : a (word, count) pair for the analytics tables
//
// Entities carry pointer fields for nullable columns; a nil pointer is
// persisted as SQL NULL. Validate methods catch malformed records at parse
// time rather than at insert time.
package models
