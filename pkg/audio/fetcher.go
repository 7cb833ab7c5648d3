package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/carlmjohnson/requests"
	"go.uber.org/zap"
)

// FetchError is returned when a download does not succeed.
// Retryable marks transient failures worth offering a retry for.
type FetchError struct {
	URL       string
	Status    int
	Attempts  int
	Retryable bool
	Err       error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d after %d attempt(s)", e.URL, e.Status, e.Attempts)
	}
	return fmt.Sprintf("fetch %s after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a transient fetch failure
func IsRetryable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Retryable
}

// Fetcher downloads sound files, keeping a copy on disk
type Fetcher struct {
	client   *http.Client
	cacheDir string
	retries  int
	backoff  time.Duration
	log      *zap.Logger
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithBackoff sets the wait before the first retry; it doubles on each attempt
func WithBackoff(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.backoff = d }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher creates a fetcher caching into cacheDir. An empty cacheDir disables the disk cache.
func NewFetcher(cacheDir string, retries int, timeout time.Duration, log *zap.Logger, opts ...FetcherOption) *Fetcher {
	if retries < 1 {
		retries = 1
	}
	f := &Fetcher{
		client:   &http.Client{Timeout: timeout},
		cacheDir: cacheDir,
		retries:  retries,
		backoff:  500 * time.Millisecond,
		log:      log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the bytes at url, reading the disk cache under name first
func (f *Fetcher) Fetch(ctx context.Context, name, url string) ([]byte, error) {
	if data, ok := f.readCache(name); ok {
		f.log.Debug("audio cache hit", zap.String("sound", name))
		return data, nil
	}

	var lastErr *FetchError
	wait := f.backoff
	for attempt := 1; attempt <= f.retries; attempt++ {
		data, err := f.get(ctx, url)
		if err == nil {
			f.writeCache(name, data)
			f.log.Info("downloaded sound", zap.String("sound", name), zap.Int("bytes", len(data)), zap.Int("attempt", attempt))
			return data, nil
		}
		err.Attempts = attempt
		lastErr = err
		if !err.Retryable || attempt == f.retries {
			break
		}

		f.log.Warn("sound download failed, retrying",
			zap.String("sound", name), zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, &FetchError{URL: url, Attempts: attempt, Err: ctx.Err()}
		case <-time.After(wait):
		}
		wait *= 2
	}
	return nil, lastErr
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, *FetchError) {
	var buf bytes.Buffer
	status := 0
	err := requests.
		URL(url).
		Client(f.client).
		AddValidator(func(res *http.Response) error {
			status = res.StatusCode
			if res.StatusCode < 200 || res.StatusCode > 299 {
				return fmt.Errorf("unexpected status %d", res.StatusCode)
			}
			return nil
		}).
		ToBytesBuffer(&buf).
		Fetch(ctx)
	if err == nil {
		return buf.Bytes(), nil
	}

	fe := &FetchError{URL: url, Err: err}
	switch {
	case ctx.Err() != nil:
		fe.Err = ctx.Err()
	case status != 0 && (status < 200 || status > 299):
		fe.Status = status
		fe.Retryable = status == http.StatusTooManyRequests || status >= 500
	default:
		// transport failure: DNS, refused connection, timeout, truncated body
		fe.Retryable = true
	}
	return nil, fe
}

func (f *Fetcher) cachePath(name string) string {
	return filepath.Join(f.cacheDir, filepath.Base(name))
}

func (f *Fetcher) readCache(name string) ([]byte, bool) {
	if f.cacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(f.cachePath(name))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (f *Fetcher) writeCache(name string, data []byte) {
	if f.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		f.log.Warn("failed to create audio cache dir", zap.String("dir", f.cacheDir), zap.Error(err))
		return
	}
	tmp := f.cachePath(name) + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		f.log.Warn("failed to write audio cache", zap.String("sound", name), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, f.cachePath(name)); err != nil {
		f.log.Warn("failed to write audio cache", zap.String("sound", name), zap.Error(err))
	}
}
