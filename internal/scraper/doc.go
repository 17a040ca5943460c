// Package scraper fetches result pages and runs the extractors over them.
//
// Pages are fetched one at a time in list order with a fixed politeness delay
// between requests. Each request carries browser-like headers and a per-request
// timeout, and robots.txt is consulted first unless disabled. A page that cannot
// be fetched contributes zero records and the run moves on to the next URL; only
// cancellation of the context stops the loop early.
//
// The designated rankings page (any URL containing "rankings") is read with the
// rankings extractor; every other page goes through the standard extractors.
// When a fetched page yields nothing, a diagnosis of its content is logged to
// help adjust the extraction rules.
package scraper
