// Package cli implements the danceworlds-scrape command.
//
// A run scrapes the configured pages, merges and deduplicates the candidate
// records, finalizes them into the output table and writes it to a timestamped
// file. When no page yields data the user is offered a manual paste-in
// fallback. A summary of the dataset is printed to stdout as text or JSON;
// structured logs go to stderr.
//
// Exit codes: 0 on success or when the user cancels, 1 on errors, 3 when no
// data could be extracted.
package cli
