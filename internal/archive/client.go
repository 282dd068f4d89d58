package archive

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/orbit-research/exoplanet-cli/internal/table"
)

// ErrSourceUnavailable reports that an external table could not be fetched
// at all. Callers skip the affected source; the run fails only when no
// source yields data.
var ErrSourceUnavailable = eris.New("archive: source unavailable")

// DefaultBaseURL is the NASA Exoplanet Archive TAP sync endpoint.
const DefaultBaseURL = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"

// Options configures the TAP client.
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
}

// Client issues TAP queries with retry, backoff, and rate limiting.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	opts    Options
}

// NewClient creates a TAP client with the given options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "exoplanet-cli/1.0"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RatePerSec == 0 {
		opts.RatePerSec = 2
	}
	return &Client{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		opts:    opts,
	}
}

// FetchTable runs the query and parses the CSV response into a flat table.
// An empty response body is zero rows, not an error; transport failures and
// non-2xx responses after all retries wrap ErrSourceUnavailable.
func (c *Client) FetchTable(ctx context.Context, q Query) (*table.Table, error) {
	body, err := c.get(ctx, q.URL(c.opts.BaseURL))
	if err != nil {
		return nil, eris.Wrapf(ErrSourceUnavailable, "table %s: %v", q.Table, err)
	}

	if strings.TrimSpace(body) == "" {
		zap.L().Warn("empty response from archive", zap.String("table", q.Table))
		return &table.Table{}, nil
	}

	t, err := table.Parse(strings.NewReader(body))
	if err != nil {
		return nil, eris.Wrapf(err, "archive: parse response for %s", q.Table)
	}
	return t, nil
}

// ListTables returns every table name the TAP service exposes.
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	t, err := c.FetchTable(ctx, Query{Table: "TAP_SCHEMA.tables", Columns: "table_name"})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, t.Len())
	for _, row := range t.Rows {
		if name := strings.TrimSpace(row["table_name"]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	for attempt := range c.opts.MaxRetries {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "archive: rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", eris.Wrap(err, "archive: create request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			zap.L().Warn("archive request failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("archive: http %d", resp.StatusCode)
			zap.L().Warn("archive server error, retrying",
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return "", eris.Errorf("archive: unexpected status %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			c.backoff(ctx, attempt)
			continue
		}
		return string(data), nil
	}
	return "", eris.Wrap(lastErr, "archive: all retries exhausted")
}

func (c *Client) backoff(ctx context.Context, attempt int) {
	base := time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
