package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/danceworlds-scrape/internal/config"
	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
	"github.com/pfrederiksen/danceworlds-scrape/internal/export"
	"github.com/pfrederiksen/danceworlds-scrape/internal/logger"
	"github.com/pfrederiksen/danceworlds-scrape/internal/manual"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
	"github.com/pfrederiksen/danceworlds-scrape/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoData  = 3
)

// errNoData marks a run that finished without any rows to write
var errNoData = errors.New("no data extracted")

// app carries the configuration and streams of one invocation
type app struct {
	cfg      config.Config
	format   string
	noManual bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// newRootCmd creates the root command; flag defaults come from a.cfg
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "danceworlds-scrape",
		Short: "Scrape Dance Worlds competition results into a dataset",
		Long: `Fetches Dance Worlds result and ranking pages, extracts rankings with several
strategies, and writes year, rank, category, studio, team, country and dance type
to a timestamped CSV, XLSX or SQLite file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context())
		},
	}

	cfg := &a.cfg
	a.format = string(cfg.Format)
	a.noManual = !cfg.Manual

	cmd.Flags().StringArrayVar(&cfg.URLs, "url", cfg.URLs, "Page to scrape (repeatable, replaces the defaults)")
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for the output file")
	cmd.Flags().StringVar(&a.format, "format", a.format, "Output file format: csv, xlsx or sqlite")
	cmd.Flags().StringVar(&cfg.Report, "report", cfg.Report, "Summary format: text or json")
	cmd.Flags().DurationVar(&cfg.Delay, "delay", cfg.Delay, "Pause between page requests")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")
	cmd.Flags().StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header")
	cmd.Flags().IntVar(&cfg.RankingsYear, "rankings-year", cfg.RankingsYear, "Season assigned to the rankings page")
	cmd.Flags().BoolVar(&cfg.RespectRobots, "respect-robots", cfg.RespectRobots, "Honour robots.txt")
	cmd.Flags().BoolVar(&cfg.RepairJSON, "repair-json", cfg.RepairJSON, "Accept embedded JSON fragments that only parse after repair")
	cmd.Flags().IntVar(&cfg.Retries, "retries", cfg.Retries, "Extra attempts for failed requests")
	cmd.Flags().BoolVar(&a.noManual, "no-manual", a.noManual, "Do not offer manual input when nothing is found")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging (same as --log-level DEBUG)")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: DEBUG, INFO, WARN or ERROR")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or text")

	return cmd
}

// run is the main command logic
func (a *app) run(ctx context.Context) error {
	a.cfg.Format = export.Format(strings.ToLower(a.format))
	a.cfg.Report = strings.ToLower(a.cfg.Report)
	a.cfg.LogFormat = strings.ToLower(a.cfg.LogFormat)
	a.cfg.Manual = !a.noManual
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	cfg := a.cfg

	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = logger.LevelDebug
	}
	runID := uuid.NewString()
	log := logger.New(level, a.stderr, logger.Format(cfg.LogFormat)).With(logger.Fields{"run_id": runID})
	logger.SetDefault(log)
	metrics := logger.NewMetrics()

	text := cfg.Report == config.ReportText
	if text {
		fmt.Fprintln(a.stdout, "Dance Worlds Web Scraper Starting")
		fmt.Fprintln(a.stdout, dashes(60))
	}

	exporter, err := export.New(cfg.OutputDir, cfg.Format)
	if err != nil {
		return fmt.Errorf("preparing output: %w", err)
	}

	fetcher := scraper.NewFetcher(scraper.Options{
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Timeout,
		RespectRobots: cfg.RespectRobots,
		Retries:       cfg.Retries,
	})
	sc := scraper.New(fetcher, cfg.Delay)
	sc.RankingsYear = cfg.RankingsYear
	sc.RepairJSON = cfg.RepairJSON
	sc.Log = log
	sc.Metrics = metrics

	log.Info("Starting run", logger.Fields{"urls": len(cfg.URLs), "format": cfg.Format, "output_dir": exporter.Dir()})

	res, err := sc.Run(ctx, cfg.URLs)
	if err != nil {
		return a.interrupted(err)
	}

	skips := make(logger.Fields)
	for _, name := range metrics.CounterNames("extract.") {
		if strings.Contains(name, ".skip.") {
			skips[strings.TrimPrefix(name, "extract.")] = metrics.Counter(name)
		}
	}
	log.Info("Scrape finished", logger.Fields{
		"pages":  len(res.Pages),
		"failed": metrics.Counter("fetch.failed"),
		"skips":  skips,
	})

	merged, stats := record.Merge(res.Records())
	log.Info("Merged records", logger.Fields{
		"input":      stats.Input,
		"invalid":    stats.Invalid,
		"duplicates": stats.Duplicates,
		"kept":       stats.Kept,
	})

	usedManual := false
	if len(merged) == 0 {
		if text {
			fmt.Fprintln(a.stdout, "\nNo structured data found from any URL")
		}
		if !cfg.Manual {
			return errNoData
		}

		if text {
			fmt.Fprintln(a.stdout, "Switching to manual data input method...")
		}
		prompter := manual.NewPrompter(a.stdin, a.stdout)
		mres, err := manual.Collect(ctx, prompter, cfg.URLs[0])
		if err != nil {
			if errors.Is(err, manual.ErrDeclined) || errors.Is(err, manual.ErrNoInput) {
				return errNoData
			}
			return a.interrupted(err)
		}
		merged, stats = record.Merge(mres.Records)
		usedManual = true
		log.Info("Manual input processed", logger.Fields{"lines": mres.Lines, "kept": stats.Kept})
	}

	final := dataset.Finalize(merged)
	metrics.SetGauge("merge.kept", float64(stats.Kept))
	metrics.SetGauge("dataset.rows", float64(len(final.Rows)))
	metrics.SetGauge("dataset.non_final", float64(final.NonFinal))
	log.Info("Finalized dataset", logger.Fields{
		"rows":      len(final.Rows),
		"non_final": final.NonFinal,
		"champions": final.Champions,
		"podiums":   final.Podiums,
	})
	if len(final.Rows) == 0 {
		return errNoData
	}

	path, err := exporter.Export(final.Rows)
	if err != nil {
		return err
	}
	log.Info("Saved dataset", logger.Fields{"path": path, "rows": len(final.Rows)})
	log.Debug("Run metrics", logger.Fields{"metrics": metrics.GetSnapshot()})

	report := &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		OutputFile:  path,
		Pages:       pageReports(res),
		Merge:       stats,
		Manual:      usedManual,
		NonFinal:    final.NonFinal,
		Champions:   final.Champions,
		Podiums:     final.Podiums,
		Sources:     final.Sources,
		Summary:     dataset.Summarize(final.Rows),
	}
	if !text {
		report.Metrics = metrics.GetSnapshot()
	}

	if err := WriteOutput(a.stdout, report, OutputFormat(cfg.Report)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// interrupted turns a user cancellation into a clean exit
func (a *app) interrupted(err error) error {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(a.stdout, "\nScraping cancelled by user")
		return nil
	}
	return err
}

func pageReports(res *scraper.Result) []PageReport {
	pages := make([]PageReport, 0, len(res.Pages))
	for _, p := range res.Pages {
		pr := PageReport{
			URL:      p.URL,
			Rankings: p.Rankings,
			Bytes:    p.Bytes,
			Records:  len(p.Records),
		}
		for _, b := range p.Batches {
			pr.Skipped += b.SkipCount()
		}
		if p.Err != nil {
			pr.Error = p.Err.Error()
		}
		pages = append(pages, pr)
	}
	return pages
}

// Run executes the command with args and returns the process exit code
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}

	a := &app{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errNoData) {
			fmt.Fprintln(stdout, "No data extracted.")
			return ExitNoData
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// Execute runs the CLI and exits the process
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
