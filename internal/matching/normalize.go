package matching

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decomposer splits accented characters into base rune plus combining marks
// and drops the marks, so "Olé" and "Ole" normalize identically.
var decomposer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// asciiReplacer maps typographic punctuation that survives NFKD onto ASCII.
var asciiReplacer = strings.NewReplacer(
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	" ", " ", // non-breaking space
)

var (
	// versionPattern unwraps parenthesized qualifiers containing "version".
	// "Song (Live Version)" and "Song" are different recordings, so the
	// qualifier text is kept rather than deleted.
	versionPattern = regexp.MustCompile(`(?i)\s*\((.*?version.*?)\)`)

	// noisePattern strips markers that vary between catalog titles and lyric
	// filenames without distinguishing the underlying song. "feat." swallows
	// everything after it since feature lists trail the title.
	noisePattern = regexp.MustCompile(`(?i)(feat\..*|explicit|remix|pop mix|radio edit|slow version|vault)`)

	// punctPattern removes what is left over, keeping letters, digits, and
	// whitespace. Version qualifiers were already unwrapped, so any paren
	// still present is an artifact of noise stripping and goes too.
	punctPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// NormalizeUnicode applies only the unicode folding steps: decomposition,
// diacritic removal, and ASCII punctuation mapping. Used for folder name
// comparison, where the heavier stripping rules would be too aggressive.
func NormalizeUnicode(raw string) string {
	folded, _, err := transform.String(decomposer, raw)
	if err != nil {
		// Transform only fails on malformed input; fall back to the raw
		// bytes rather than dropping the title.
		folded = raw
	}
	return strings.TrimSpace(asciiReplacer.Replace(folded))
}

// Normalize converts a raw title or filename into its canonical matching
// key. Deterministic and pure: equal inputs always produce equal keys.
//
// Titles that consist only of noise markers normalize to the empty string;
// such keys can collide within an album, which is an accepted limitation.
func Normalize(raw string) string {
	s := NormalizeUnicode(raw)
	s = strings.ReplaceAll(s, "[", "(")
	s = strings.ReplaceAll(s, "]", ")")
	s = versionPattern.ReplaceAllString(s, " $1")
	s = noisePattern.ReplaceAllString(s, "")
	s = punctPattern.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
