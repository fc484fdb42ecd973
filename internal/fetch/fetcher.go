package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"billex/internal/config"
	"billex/internal/domain"
	"billex/internal/port"
)

// HTTPFetcher downloads documents over http/https with a bounded timeout
// and a size cap. It implements port.DocumentFetcher.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher creates an HTTPFetcher from fetch settings.
func NewHTTPFetcher(cfg *config.FetchConfig) *HTTPFetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: cfg.MaxSizeMB * 1024 * 1024,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", domain.ErrDownloadFailed, resp.StatusCode, rawURL)
	}

	reader := io.Reader(resp.Body)
	if f.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrDownloadFailed, err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	return data, nil
}

// Dispatcher routes fetches to a scheme-specific fetcher (http/https/s3).
// It implements port.DocumentFetcher.
type Dispatcher struct {
	fetchers map[string]port.DocumentFetcher
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{fetchers: map[string]port.DocumentFetcher{}}
}

// Register binds a URL scheme to a fetcher.
func (d *Dispatcher) Register(scheme string, f port.DocumentFetcher) {
	d.fetchers[scheme] = f
}

func (d *Dispatcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	f, ok := d.fetchers[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedScheme, u.Scheme)
	}
	return f.Fetch(ctx, rawURL)
}
