package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ADS API base URL.
	BaseURL = "https://api.adsabs.harvard.edu/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit caps outgoing requests per second. The real budget is a
	// daily quota reported in response headers; this just keeps bulk
	// operations polite.
	RateLimit = 10.0

	// PageSize is the number of rows requested per search page.
	PageSize = 100

	// MaxResults bounds the worst-case cost of a runaway query. Pagination
	// stops once this many records have been accumulated.
	MaxResults = 250
)

// DefaultFields are the fields requested by default for every search.
var DefaultFields = []string{
	"bibcode", "title", "author", "year", "abstract",
	"pubdate", "bibstem", "alternate_bibcode", "citation_count",
	"identifier", "reference",
}

// Client is a rate-limited HTTP client for the ADS search and export APIs.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string

	rateRemaining atomic.Int64
	rateLimit     atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the API token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewClient creates a new ADS API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	c.rateRemaining.Store(-1)
	c.rateLimit.Store(-1)

	if token := os.Getenv("ADS_API_TOKEN"); token != "" {
		c.token = token
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RateLimitState returns the most recently observed rate-limit headers.
// Values are -1 until the first response has been seen.
func (c *Client) RateLimitState() RateLimitState {
	return RateLimitState{
		Remaining: int(c.rateRemaining.Load()),
		Limit:     int(c.rateLimit.Load()),
	}
}

// recordRateHeaders updates the observed quota from response headers.
// Responses without the headers leave the previous values untouched.
func (c *Client) recordRateHeaders(h http.Header) {
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Remaining")); err == nil {
		c.rateRemaining.Store(int64(v))
	}
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Limit")); err == nil {
		c.rateLimit.Store(int64(v))
	}
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

// searchPage issues one GET against /search/query and decodes the envelope.
func (c *Client) searchPage(ctx context.Context, query string, fields []string, start int) (*searchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("fl", strings.Join(fields, ","))
	params.Set("rows", strconv.Itoa(PageSize))
	params.Set("start", strconv.Itoa(start))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/query?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.recordRateHeaders(resp.Header)

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	var envelope searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %v", ErrSearch, err)
	}
	if envelope.Response == nil {
		if envelope.Error != nil && envelope.Error.Msg != "" {
			return nil, fmt.Errorf("%w: %s", ErrSearch, envelope.Error.Msg)
		}
		return nil, fmt.Errorf("%w: missing response envelope", ErrSearch)
	}

	return envelope.Response, nil
}

// doJSON issues a request with a JSON body and decodes the JSON response
// into out. Used by the export endpoint.
func (c *Client) doJSON(ctx context.Context, method, url string, body io.Reader, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.recordRateHeaders(resp.Header)

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding body: %v", ErrRemote, err)
	}
	return nil
}
