// Package arxiv fetches the daily astro-ph RSS listing and extracts the
// arXiv ids of new submissions.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FeedURL is the astro-ph RSS feed.
const FeedURL = "https://export.arxiv.org/rss/astro-ph"

// Feed fetches arXiv RSS listings.
type Feed struct {
	httpClient *http.Client
	url        string
}

// Option configures a Feed.
type Option func(*Feed)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Feed) {
		f.httpClient = hc
	}
}

// WithURL sets a custom feed URL (for testing or other categories).
func WithURL(u string) Option {
	return func(f *Feed) {
		f.url = u
	}
}

// NewFeed creates a Feed for astro-ph.
func NewFeed(opts ...Option) *Feed {
	f := &Feed{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        FeedURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Link string `xml:"link"`
	GUID string `xml:"guid"`
}

// IDs fetches the feed and returns every listed arXiv id, in feed order.
func (f *Feed) IDs(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	return ParseIDs(body)
}

// ParseIDs extracts arXiv ids from raw RSS bytes.
func ParseIDs(body []byte) ([]string, error) {
	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var ids []string
	for _, item := range doc.Channel.Items {
		link := item.Link
		if link == "" {
			link = item.GUID
		}
		// Entry links look like https://arxiv.org/abs/2509.01234
		parts := strings.Split(strings.TrimSuffix(link, "/"), "/")
		id := parts[len(parts)-1]
		// Some feeds prefix the id with the historical oai scheme.
		if idx := strings.LastIndex(id, ":"); idx >= 0 {
			id = id[idx+1:]
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// NewListings fetches the feed and keeps only ids submitted this month,
// which filters out resubmissions of older papers.
func (f *Feed) NewListings(ctx context.Context) ([]string, error) {
	ids, err := f.IDs(ctx)
	if err != nil {
		return nil, err
	}
	return FilterMonth(ids, time.Now()), nil
}

// FilterMonth keeps ids with the YYMM prefix of now's month.
func FilterMonth(ids []string, now time.Time) []string {
	prefix := MonthPrefix(now)
	var out []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			out = append(out, id)
		}
	}
	return out
}

// MonthPrefix returns the YYMM identifier prefix for new-style arXiv ids
// submitted in t's month.
func MonthPrefix(t time.Time) string {
	return fmt.Sprintf("%02d%02d", t.Year()%100, int(t.Month()))
}
