// Package manual implements the pasted-text fallback used when no page yields
// any records. The user is asked for confirmation, pastes results text ending
// with an empty line, and the text is run through the free-text extractor.
package manual

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/danceworlds-scrape/internal/extract"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

var (
	// ErrDeclined is returned when the user does not answer "y"
	ErrDeclined = errors.New("manual input declined")
	// ErrNoInput is returned when the user pastes nothing
	ErrNoInput = errors.New("no data entered")
)

// Prompter asks questions on out and reads answers from in
type Prompter struct {
	out   io.Writer
	lines <-chan string
}

// NewPrompter starts reading lines from in
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return &Prompter{out: out, lines: lines}
}

// readLine returns the next line, io.EOF at end of input, or ctx.Err()
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// Confirm asks a yes/no question; only "y" counts as yes
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/n): ", question)
	answer, err := p.readLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y", nil
}

// ReadBlock reads lines until an empty line or end of input
func (p *Prompter) ReadBlock(ctx context.Context) ([]string, error) {
	lines := make([]string, 0)
	for {
		line, err := p.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// Result is what the manual fallback extracted
type Result struct {
	Lines   int
	Batch   *extract.Batch
	Records []record.Record
}

// Collect runs the interactive fallback. sourceURL is shown as the page to
// copy results from.
func Collect(ctx context.Context, p *Prompter, sourceURL string) (*Result, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Alternative: Manual data input")
	fmt.Fprintln(p.out, "Since automatic extraction did not work, manual input is available")
	fmt.Fprintln(p.out)
	if sourceURL != "" {
		fmt.Fprintf(p.out, "Please go to: %s\n", sourceURL)
	}
	fmt.Fprintln(p.out, "Copy the competition results data")
	fmt.Fprintln(p.out, "Paste it below (press Enter on an empty line when done)")
	fmt.Fprintln(p.out)

	ok, err := p.Confirm(ctx, "Would you like to try manual input?")
	if err != nil {
		return nil, err
	}
	if !ok {
		fmt.Fprintln(p.out, "Manual input skipped")
		return nil, ErrDeclined
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Paste your data below (press Enter on empty line to finish):")
	fmt.Fprintln(p.out, strings.Repeat("-", 50))

	lines, err := p.ReadBlock(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		fmt.Fprintln(p.out, "No data entered")
		return nil, ErrNoInput
	}
	fmt.Fprintf(p.out, "\nReceived %d lines of data\n", len(lines))

	batch := extract.TextExtractor{Rules: extract.AdvancedRules}.ExtractText(strings.Join(lines, "\n"))
	records := make([]record.Record, 0, len(batch.Records))
	for _, rec := range batch.Records {
		rec.Source = record.SourceManual
		records = append(records, rec)
	}

	if len(records) == 0 {
		fmt.Fprintln(p.out, "Could not extract structured data from input")
	} else {
		fmt.Fprintf(p.out, "Extracted %d records from your input\n", len(records))
	}

	return &Result{Lines: len(lines), Batch: batch, Records: records}, nil
}
