// Command danceworlds-scrape collects Dance Worlds competition results into a
// CSV, XLSX or SQLite dataset.
package main

import "github.com/pfrederiksen/danceworlds-scrape/internal/cli"

func main() {
	cli.Execute()
}
