// Package matching implements title reconciliation between catalog track
// names and scraped lyric filenames.
//
// [Normalize] collapses a raw title or filename into a canonical matching
// key: unicode is decomposed, bracket styles unified, "version" qualifiers
// kept (they distinguish live cuts from studio cuts), feature tags and other
// noise markers stripped, punctuation removed, whitespace collapsed, case
// folded.
//
// [Matcher.Match] resolves a song title against a set of candidate keys in
// three tiers, first success wins:
//  1. exact  : normalized title equals a candidate key
//  2. prefix : the title's leading runes prefix a candidate key, guarding
//     against truncated filenames
//  3. fuzzy  : best Levenshtein similarity at or above a configured cutoff
//
// Every decision, matched or not, yields a [models.MatchRecord] for the
// per-run audit log.
package matching
