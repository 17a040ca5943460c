// Package config holds the run configuration and loads overrides from the
// environment. Values are resolved in this order, later sources winning:
// built-in defaults, a .env file in the working directory, DANCEWORLDS_*
// environment variables, and finally command-line flags (applied by the cli
// package).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/danceworlds-scrape/internal/export"
	"github.com/pfrederiksen/danceworlds-scrape/internal/extract"
	"github.com/pfrederiksen/danceworlds-scrape/internal/logger"
)

// EnvPrefix starts every environment variable read by Load
const EnvPrefix = "DANCEWORLDS_"

// DefaultUserAgent is sent unless overridden
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"

// DefaultURLs are the pages scraped when no --url is given
var DefaultURLs = []string{
	"https://thedanceworlds.net/dance-worlds/",
	"https://www.flocheer.com/articles/14115228-dance-worlds-2025-results-here-are-all-the-dance-scores",
	"https://thedanceworlds.net/rankings/",
}

// Report formats for the console summary
const (
	ReportText = "text"
	ReportJSON = "json"
)

// Config is the resolved configuration for one run
type Config struct {
	URLs          []string
	OutputDir     string
	Format        export.Format
	Report        string
	Delay         time.Duration
	Timeout       time.Duration
	UserAgent     string
	RankingsYear  int
	RespectRobots bool
	RepairJSON    bool
	Retries       int
	Manual        bool
	Verbose       bool
	LogLevel      string
	LogFormat     string
}

// Default returns the built-in configuration
func Default() Config {
	urls := make([]string, len(DefaultURLs))
	copy(urls, DefaultURLs)

	return Config{
		URLs:          urls,
		OutputDir:     ".",
		Format:        export.FormatCSV,
		Report:        ReportText,
		Delay:         2 * time.Second,
		Timeout:       30 * time.Second,
		UserAgent:     DefaultUserAgent,
		RankingsYear:  extract.DefaultRankingsYear,
		RespectRobots: true,
		Retries:       0,
		Manual:        true,
		LogLevel:      string(logger.LevelInfo),
		LogFormat:     "json",
	}
}

// Load returns the defaults overridden by a .env file (if present) and by
// DANCEWORLDS_* environment variables. Variables already set in the
// environment take precedence over the .env file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get("URLS"); ok {
		c.URLs = splitList(v)
	}
	if v, ok := get("OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := get("FORMAT"); ok {
		c.Format = export.Format(strings.ToLower(v))
	}
	if v, ok := get("REPORT"); ok {
		c.Report = strings.ToLower(v)
	}
	if v, ok := get("USER_AGENT"); ok {
		c.UserAgent = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.LogFormat = strings.ToLower(v)
	}

	var err error
	if v, ok := get("DELAY"); ok {
		if c.Delay, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("parsing %sDELAY: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("TIMEOUT"); ok {
		if c.Timeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("parsing %sTIMEOUT: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("RANKINGS_YEAR"); ok {
		if c.RankingsYear, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("parsing %sRANKINGS_YEAR: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("RETRIES"); ok {
		if c.Retries, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("parsing %sRETRIES: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("RESPECT_ROBOTS"); ok {
		if c.RespectRobots, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("parsing %sRESPECT_ROBOTS: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("REPAIR_JSON"); ok {
		if c.RepairJSON, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("parsing %sREPAIR_JSON: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("MANUAL"); ok {
		if c.Manual, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("parsing %sMANUAL: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("VERBOSE"); ok {
		if c.Verbose, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("parsing %sVERBOSE: %w", EnvPrefix, err)
		}
	}

	return nil
}

// splitList splits a comma or whitespace separated list, dropping empties
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks that the configuration can drive a run
func (c Config) Validate() error {
	if len(c.URLs) == 0 {
		return errors.New("at least one URL is required")
	}
	for _, u := range c.URLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("invalid URL %q: must start with http:// or https://", u)
		}
	}

	if !validFormat(c.Format) {
		return fmt.Errorf("invalid format %q (must be one of: csv, xlsx, sqlite)", c.Format)
	}
	if c.Report != ReportText && c.Report != ReportJSON {
		return fmt.Errorf("invalid report format %q (must be text or json)", c.Report)
	}
	if level := strings.ToUpper(strings.TrimSpace(c.LogLevel)); string(logger.ParseLevel(level)) != level {
		return fmt.Errorf("invalid log level %q (must be DEBUG, INFO, WARN or ERROR)", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid log format %q (must be json or text)", c.LogFormat)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.RankingsYear < extract.MinYear {
		return fmt.Errorf("rankings year must be %d or later, got %d", extract.MinYear, c.RankingsYear)
	}
	return nil
}

func validFormat(f export.Format) bool {
	for _, known := range export.Formats {
		if f == known {
			return true
		}
	}
	return false
}
