// Package parser reads the pipeline's CSV inputs into typed records.
//
// Three shapes are understood:
//   - merged artist metadata ([ParseArtistCSV]) : one row per file
//   - transformed track tables ([ParseTransformedCSV]) : pre-join catalog rows
//   - final per-album CSVs ([ParseAlbumCSV]) : post-join rows with
//     TrackNumber and Lyrics columns
//
// Fields are validated and coerced at parse time: empty cells, "nan", and
// unparseable numbers or dates become nil pointers, which the repositories
// persist as SQL NULL. Loosely typed row access never leaves this package.
package parser
