// ABOUTME: HTTP client for the academy REST API
// ABOUTME: Wraps API calls so every failure surfaces as a tagged apperror variant

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/pagination"
)

// DefaultTimeout applies when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept for normalization.
const maxErrorBody = 64 << 10

// Client is the API client for the academy backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	timeout     time.Duration
	transport   http.RoundTripper
	middlewares []Middleware
	logger      *slog.Logger
	allProxy    string
}

func WithTimeout(d time.Duration) Option { return func(c *clientConfig) { c.timeout = d } }

// WithTransport replaces the base transport (tests use this).
func WithTransport(rt http.RoundTripper) Option { return func(c *clientConfig) { c.transport = rt } }

// WithMiddleware appends request middleware. The first one added is outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *clientConfig) { c.middlewares = append(c.middlewares, mws...) }
}

func WithLogger(l *slog.Logger) Option { return func(c *clientConfig) { c.logger = l } }

// WithAllProxy routes connections through an SSH jumpbox, given as
// ssh+socks5://user@host:port?private-key=/path/to/key.
func WithAllProxy(allProxy string) Option { return func(c *clientConfig) { c.allProxy = allProxy } }

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	cfg := clientConfig{timeout: DefaultTimeout, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := cfg.transport
	if base == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.allProxy != "" {
			if dial := createSOCKS5DialContextFunc(cfg.allProxy); dial != nil {
				transport.DialContext = dial
			}
		}
		base = transport
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.timeout,
			Transport: Chain(base, cfg.middlewares...),
		},
		logger: cfg.logger,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// get issues a GET with query parameters and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// send issues a request with an optional JSON body.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.Decode(fmt.Errorf("invalid response from backend: %w", err))
	}
	return nil
}

// handleRequestError converts transport and context errors to network errors
// with user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		return apperror.Network(fmt.Errorf("request canceled: %w", context.Canceled))
	case context.DeadlineExceeded:
		return apperror.Network(fmt.Errorf("request timed out: %w", context.DeadlineExceeded))
	}
	return apperror.Network(fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err))
}

// handleErrorResponse keeps the status and raw body for normalization.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return apperror.HTTP(resp.StatusCode, body)
}

// getPage fetches one page of a paged listing.
func getPage[T any](ctx context.Context, c *Client, path string, query url.Values) (*pagination.Page[T], error) {
	var page pagination.Page[T]
	if err := c.get(ctx, path, query, &page); err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	return &page, nil
}

// listQuery merges filters and pagination params into one query.
func listQuery(f Filters, p pagination.Params) url.Values {
	q := url.Values{}
	if f != nil {
		for k, vs := range f.Values() {
			q[k] = vs
		}
	}
	p.Apply(q)
	return q
}

func idPath(format string, ids ...int64) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
