package matching

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/desertthunder/lyra/internal/models"
)

// Config holds the tunable knobs for the tiered matcher.
type Config struct {
	FuzzyCutoff  float64 // minimum similarity for the fuzzy tier
	PrefixLength int     // leading runes compared by the prefix tier
}

// DefaultConfig returns the matcher configuration used when none is supplied.
//
// The 0.6 cutoff trades a small false-match rate for far fewer misses on the
// filename corpus; folder-level matching should use a stricter cutoff via
// [BestMatch].
func DefaultConfig() Config {
	return Config{FuzzyCutoff: 0.6, PrefixLength: 10}
}

// Matcher resolves song titles against candidate lyric keys.
type Matcher struct {
	config Config
}

// NewMatcher creates a matcher with the given configuration. Zero-valued
// fields fall back to [DefaultConfig].
func NewMatcher(config Config) *Matcher {
	def := DefaultConfig()
	if config.FuzzyCutoff <= 0 {
		config.FuzzyCutoff = def.FuzzyCutoff
	}
	if config.PrefixLength <= 0 {
		config.PrefixLength = def.PrefixLength
	}
	return &Matcher{config: config}
}

// Match resolves title against candidates (normalized key -> lyric text).
// Tiers are evaluated exact, then prefix, then fuzzy; the first success wins,
// so an exact candidate is never displaced by a higher-scoring fuzzy one.
//
// The returned text is empty when no tier matched; callers must record the
// miss and leave the lyrics field empty rather than fabricate content. The
// [models.MatchRecord] is produced for every decision, hit or miss.
func (m *Matcher) Match(title string, candidates map[string]string) (string, models.MatchRecord) {
	key := Normalize(title)
	record := models.MatchRecord{Title: title, Key: key, Tier: models.TierNone}

	if key == "" {
		return "", record
	}

	if text, ok := candidates[key]; ok {
		record.Tier = models.TierExact
		record.Matched = key
		return text, record
	}

	// Candidate order must be deterministic for repeatable prefix and
	// tie-break behavior.
	keys := make([]string, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prefix := key
	if runes := []rune(key); len(runes) > m.config.PrefixLength {
		prefix = string(runes[:m.config.PrefixLength])
	}
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			record.Tier = models.TierPrefix
			record.Matched = k
			return candidates[k], record
		}
	}

	best, score := "", 0.0
	for _, k := range keys {
		if r := Ratio(key, k); r > score {
			best, score = k, r
		}
	}
	if best != "" && score >= m.config.FuzzyCutoff {
		record.Tier = models.TierFuzzy
		record.Matched = best
		return candidates[best], record
	}

	return "", record
}

// Ratio computes a Levenshtein similarity in [0, 1]: identical strings score
// 1, strings sharing no characters score near 0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// BestMatch returns the candidate most similar to target, provided its score
// reaches cutoff. Candidates are compared as-is; normalize both sides first.
// Ties break toward the lexicographically smaller candidate.
func BestMatch(target string, candidates []string, cutoff float64) (string, bool) {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	best, score := "", 0.0
	for _, c := range sorted {
		if r := Ratio(target, c); r > score {
			best, score = c, r
		}
	}
	if best == "" || score < cutoff {
		return "", false
	}
	return best, true
}
