package biblib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// BaseURL is the biblib API base URL.
const BaseURL = "https://api.adsabs.harvard.edu/v1/biblib"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the biblib API.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
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

// NewClient creates a new biblib client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}
	if token := os.Getenv("ADS_API_TOKEN"); token != "" {
		c.token = token
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues a request and decodes the JSON response into out (when out is
// non-nil). DELETE/PUT responses with empty bodies decode into nothing.
func (c *Client) do(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding body: %v", ErrRemote, err)
	}
	return nil
}

// List fetches all libraries and repacks the API's list into a name-keyed
// map. Duplicate names are an error: names are the lookup key everywhere
// else, and silently picking one would hide the collision.
func (c *Client) List(ctx context.Context) (map[string]Metadata, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/libraries", nil, &out); err != nil {
		return nil, err
	}

	libs := make(map[string]Metadata, len(out.Libraries))
	for _, m := range out.Libraries {
		if _, ok := libs[m.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
		}
		libs[m.Name] = m
	}
	return libs, nil
}

// lookup resolves a library name to its metadata.
func (c *Client) lookup(ctx context.Context, name string) (Metadata, error) {
	libs, err := c.List(ctx)
	if err != nil {
		return Metadata{}, err
	}
	m, ok := libs[name]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m, nil
}

// Get fetches a library's metadata and its complete member list. The
// documents endpoint pages; the first page plus at most one follow-up
// request sized to the remainder covers any library.
func (c *Client) Get(ctx context.Context, name string) (*Library, error) {
	meta, err := c.lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	var out libraryResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/libraries/"+meta.ID, nil, &out); err != nil {
		return nil, err
	}
	docs := out.Documents

	total := out.Metadata.NumDocuments
	if len(docs) < total {
		params := url.Values{}
		params.Set("start", strconv.Itoa(len(docs)))
		params.Set("rows", strconv.Itoa(total-len(docs)))

		var rest libraryResponse
		u := c.baseURL + "/libraries/" + meta.ID + "?" + params.Encode()
		if err := c.do(ctx, http.MethodGet, u, nil, &rest); err != nil {
			return nil, err
		}
		docs = append(docs, rest.Documents...)
	}

	if len(docs) != total {
		return nil, fmt.Errorf("%w: got %d of %d documents for %q", ErrRemote, len(docs), total, name)
	}

	return &Library{Metadata: out.Metadata, Docs: docs}, nil
}

// Create adds a new library. The API signals failure by omitting the
// "name" field from the response and supplying an error message instead.
func (c *Client) Create(ctx context.Context, name, description string, public bool) error {
	body := map[string]interface{}{
		"name":        name,
		"description": description,
		"public":      public,
	}

	var out struct {
		Name  string `json:"name"`
		Error string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/libraries", body, &out); err != nil {
		return err
	}
	if out.Name == "" {
		return fmt.Errorf("%w: %s", ErrRemote, out.Error)
	}
	return nil
}

// Remove deletes a library by name. Unknown names fail locally with
// ErrNotFound before any destructive call is made.
func (c *Client) Remove(ctx context.Context, name string) error {
	meta, err := c.lookup(ctx, name)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, c.baseURL+"/documents/"+meta.ID, nil, nil)
}

// Edit updates a library's name, description, or visibility. Fields not
// set in opts keep their current values; an empty new name also keeps the
// current name.
func (c *Client) Edit(ctx context.Context, name string, opts EditOptions) error {
	meta, err := c.lookup(ctx, name)
	if err != nil {
		return err
	}

	newName := meta.Name
	if opts.NewName != nil && *opts.NewName != "" {
		newName = *opts.NewName
	}
	description := meta.Description
	if opts.Description != nil {
		description = *opts.Description
	}
	public := meta.Public
	if opts.Public != nil {
		public = *opts.Public
	}

	body := map[string]interface{}{
		"name":        newName,
		"description": description,
		"public":      public,
	}
	return c.do(ctx, http.MethodPut, c.baseURL+"/documents/"+meta.ID, body, nil)
}

// AddDocuments adds bibcodes to a library.
func (c *Client) AddDocuments(ctx context.Context, name string, bibcodes []string) error {
	return c.editDocuments(ctx, name, bibcodes, "add")
}

// RemoveDocuments removes bibcodes from a library.
func (c *Client) RemoveDocuments(ctx context.Context, name string, bibcodes []string) error {
	return c.editDocuments(ctx, name, bibcodes, "remove")
}

func (c *Client) editDocuments(ctx context.Context, name string, bibcodes []string, action string) error {
	meta, err := c.lookup(ctx, name)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"bibcode": bibcodes,
		"action":  action,
	}

	var out documentsResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/documents/"+meta.ID, body, &out); err != nil {
		return err
	}

	// Success is signalled by the counter field for the action taken.
	if action == "add" && out.NumberAdded == nil {
		return fmt.Errorf("%w: %s", ErrRemote, remoteMessage(out))
	}
	if action == "remove" && out.NumberRemoved == nil {
		return fmt.Errorf("%w: %s", ErrRemote, remoteMessage(out))
	}
	return nil
}

func remoteMessage(out documentsResponse) string {
	if out.Message != "" {
		return out.Message
	}
	if out.Error != "" {
		return out.Error
	}
	return "unexpected response"
}
