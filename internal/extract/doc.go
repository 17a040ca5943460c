// Package extract turns a fetched results page into candidate records.
//
// Several independent strategies scan the same page: HTML tables, HTML lists,
// JSON fragments embedded in scripts, regular expressions over the page text,
// and elements whose class or id suggests results. A separate extractor handles
// the rankings page, whose tables take their round and category from the
// headings that precede them.
//
// Every strategy returns a Batch. Candidates that cannot be turned into a record
// are counted by SkipReason instead of failing the scan.
package extract
