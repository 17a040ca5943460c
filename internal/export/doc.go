// Package export writes the finalized dataset to a timestamped file.
//
// The output directory is created on demand and a leading "~/" is expanded to
// the user's home directory. Three formats are supported:
//
//   - csv: header row plus one line per row (default)
//   - xlsx: a single sheet written with a streaming writer
//   - sqlite: a database file holding one "rankings" table
//
// Files are named dance_worlds_data_YYYYMMDD_HHMMSS.<ext> using local time, so
// repeated runs never overwrite each other.
package export
