// Package fetch downloads export documents into a local cache directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrDownload is returned when every download attempt failed.
var ErrDownload = errors.New("download failed")

// Options configure a Fetcher.
type Options struct {
	DataDir      string
	Retries      uint          // total attempts
	RetryDelay   time.Duration // fixed pause between attempts
	MinCacheSize int64         // cached files up to this size are fetched again
	Timeout      time.Duration // per-request HTTP timeout
}

// DefaultOptions returns the settings used against the Atlas API.
func DefaultOptions() Options {
	return Options{
		DataDir:      "data",
		Retries:      3,
		RetryDelay:   time.Second,
		MinCacheSize: 10_000,
		Timeout:      2 * time.Minute,
	}
}

// Fetcher downloads documents once and serves them from DataDir afterwards.
type Fetcher struct {
	client *http.Client
	opts   Options
}

// New creates a Fetcher. A nil client gets one with opts.Timeout.
func New(client *http.Client, opts Options) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Retries == 0 {
		opts.Retries = 1
	}
	return &Fetcher{client: client, opts: opts}
}

// Path returns the cache path of a document.
func (f *Fetcher) Path(name string) string {
	return filepath.Join(f.opts.DataDir, name)
}

// Fetch ensures the document is cached and returns its contents.
func (f *Fetcher) Fetch(ctx context.Context, url, name string) ([]byte, error) {
	if err := f.Download(ctx, url, name); err != nil {
		return nil, err
	}
	return f.Read(name)
}

// Download stores url under name unless a large enough cached copy exists.
func (f *Fetcher) Download(ctx context.Context, url, name string) error {
	path := f.Path(name)
	if info, err := os.Stat(path); err == nil && info.Size() > f.opts.MinCacheSize {
		slog.Debug("using cached export", "path", path, "size", info.Size())
		return nil
	}

	if err := os.MkdirAll(f.opts.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", f.opts.DataDir, err)
	}

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		return struct{}{}, f.download(ctx, url, path)
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(f.opts.RetryDelay)),
		backoff.WithMaxTries(f.opts.Retries),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn("export download failed, retrying",
				"url", url,
				"attempts_left", f.opts.Retries-uint(attempt),
				"retry_in", next,
				"err", err)
		}),
	)
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: %s after %d attempts: %w", ErrDownload, url, attempt, err)
	}

	slog.Info("export downloaded", "url", url, "path", path)
	return nil
}

// download writes the response body to a temp file and renames it into
// place, so a broken transfer never looks like a valid cache.
func (f *Fetcher) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("building request: %w", err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requesting %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("reading body of %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving %s into cache: %w", tmp.Name(), err)
	}
	return nil
}

// Read returns a cached document. A missing file is not an error: it yields
// nil so the pipeline continues with an empty collection.
func (f *Fetcher) Read(name string) ([]byte, error) {
	path := f.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("export not found, continuing without data", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
