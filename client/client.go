package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/arvados/sparql-client/sparql"
)

const (
	acceptResults = "application/sparql-results+json"
	formEncoded   = "application/x-www-form-urlencoded"

	// maxErrorBody caps how much of an error response is kept for the
	// returned QueryError.
	maxErrorBody = 2048
)

// Client talks to one SPARQL endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the underlying HTTP
// client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger enables request logging through the given logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a client for the given endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select renders and executes a SELECT query, returning one solution per
// result row.
func (c *Client) Select(ctx context.Context, q *sparql.Query) ([]sparql.Solution, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	res, err := c.Query(ctx, q.String())
	if err != nil {
		return nil, err
	}
	return res.Solutions()
}

// Ask renders and executes an ASK query.
func (c *Client) Ask(ctx context.Context, q *sparql.Query) (bool, error) {
	if err := q.Err(); err != nil {
		return false, err
	}
	res, err := c.Query(ctx, q.String())
	if err != nil {
		return false, err
	}
	if res.Boolean == nil {
		return false, fmt.Errorf("endpoint returned no boolean for ASK query")
	}
	return *res.Boolean, nil
}

// Query posts raw SPARQL text to the endpoint and decodes the JSON
// results document.
func (c *Client) Query(ctx context.Context, query string) (*Results, error) {
	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", formEncoded)
	req.Header.Set("Accept", acceptResults)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("endpoint", c.endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("query", query).
		Msg("sparql query")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &QueryError{
			Endpoint: c.endpoint,
			Status:   resp.StatusCode,
			Body:     string(body),
		}
	}

	var res Results
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return &res, nil
}
