package export

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
)

const createRankings = `CREATE TABLE IF NOT EXISTS rankings (
	year        INTEGER NOT NULL,
	rank        INTEGER NOT NULL,
	category    TEXT NOT NULL,
	studio_name TEXT NOT NULL,
	team_name   TEXT NOT NULL,
	country     TEXT NOT NULL,
	dance_type  TEXT NOT NULL
);`

const insertRanking = `INSERT INTO rankings
	(year, rank, category, studio_name, team_name, country, dance_type)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// SQLiteWriter writes rows into a "rankings" table of a new database file
type SQLiteWriter struct{}

func (SQLiteWriter) Ext() string { return "db" }

func (SQLiteWriter) Write(path string, rows []dataset.Row) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createRankings); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	stmt, err := tx.Prepare(insertRanking)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Year, r.Rank, r.Category, r.StudioName, r.TeamName, r.Country, r.DanceType); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
