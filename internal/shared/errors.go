package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Album resolution errors (abort one album, never the run)
	ErrNoLyricsFolder   = fmt.Errorf("no matching lyrics folder")
	ErrNoTransformedCSV = fmt.Errorf("no transformed track CSV")
	ErrNoLyricsLoaded   = fmt.Errorf("no lyrics loaded")
	ErrNoArtistMetadata = fmt.Errorf("artist metadata file not found")

	// Loader errors
	ErrIDUnresolved = fmt.Errorf("could not insert or resolve id")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrMissingColumn   = fmt.Errorf("missing required column")
	ErrEmptyCSV        = fmt.Errorf("CSV contains no data rows")
)
