package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultRetryInterval = 500 * time.Millisecond
)

var (
	// ErrHTTPStatus is returned for any response other than 200 OK
	ErrHTTPStatus = errors.New("unexpected status code")
	// ErrDisallowed is returned when robots.txt forbids the URL
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// browserHeaders are sent with every page request
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"DNT":                       "1",
	"Upgrade-Insecure-Requests": "1",
}

// PageFetcher returns the body of a page
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options configure a Fetcher
type Options struct {
	UserAgent     string
	Timeout       time.Duration
	RespectRobots bool
	// Retries is the number of extra attempts after a failed request.
	// Client errors (4xx) and robots.txt refusals are never retried.
	Retries       int
	RetryInterval time.Duration
}

// Fetcher performs HTTP GET requests for result pages
type Fetcher struct {
	client *http.Client
	opts   Options
	robots *RobotsCache
}

// NewFetcher creates a Fetcher with the given options
func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}

	client := &http.Client{Timeout: opts.Timeout}
	f := &Fetcher{client: client, opts: opts}
	if opts.RespectRobots {
		f.robots = NewRobotsCache(client, opts.UserAgent)
	}
	return f
}

// Fetch returns the body of url. Non-200 responses wrap ErrHTTPStatus.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, url)
		if err != nil {
			return "", err
		}
		if !allowed {
			return "", fmt.Errorf("%w: %s", ErrDisallowed, url)
		}
	}

	var body string
	operation := func() error {
		b, err := f.get(ctx, url)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && se.code >= 400 && se.code < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.opts.RetryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.opts.Retries)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}

// statusError carries the response code of a failed request
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrHTTPStatus, e.code)
}

func (e *statusError) Unwrap() error {
	return ErrHTTPStatus
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(data), nil
}
