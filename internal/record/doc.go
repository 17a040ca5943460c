// Package record provides the candidate record produced by extractors and the
// merge step that collapses candidates from every page and strategy.
//
// Candidates are keyed by year, rank, lowercased category and lowercased studio
// name. The first candidate seen for a key is kept, so extractor order decides
// which source, team and country survive when the content otherwise matches.
package record
