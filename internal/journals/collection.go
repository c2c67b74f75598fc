// Package journals maintains a shortlist of journals for browsing recent
// publications, seeded with common astronomy venues and refreshable from
// the full ADS journal index.
package journals

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// IndexURL lists every journal ADS knows about.
const IndexURL = "https://adsabs.harvard.edu/abs_doc/journals1.html"

// RefreshInterval is how old the cached index may get before a refresh.
const RefreshInterval = 7 * 24 * time.Hour

// DefaultJournals maps bibstem to full journal name for the built-in
// shortlist.
var DefaultJournals = map[string]string{
	"A&A":   "Astronomy and Astrophysics",
	"ApJ":   "The Astrophysical Journal",
	"ApJS":  "The Astrophysical Journal Supplement Series",
	"MNRAS": "Monthly Notices of the Royal Astronomical Society",
	"Natur": "Nature",
	"NatAs": "Nature Astronomy",
	"Sci":   "Science",
}

// Collection holds the journal shortlist and the on-disk full index.
type Collection struct {
	dir        string
	httpClient *http.Client
	indexURL   string
}

// Option configures a Collection.
type Option func(*Collection)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Collection) {
		c.httpClient = hc
	}
}

// WithIndexURL sets a custom index URL.
func WithIndexURL(u string) Option {
	return func(c *Collection) {
		c.indexURL = u
	}
}

// NewCollection creates a Collection storing its index under dir.
func NewCollection(dir string, opts ...Option) (*Collection, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journals dir: %w", err)
	}
	c := &Collection{
		dir:        dir,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		indexURL:   IndexURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Shortlist returns the built-in journals sorted by bibstem.
func (c *Collection) Shortlist() map[string]string {
	out := make(map[string]string, len(DefaultJournals))
	for k, v := range DefaultJournals {
		out[k] = v
	}
	return out
}

// Bibstems returns the shortlist bibstems in sorted order.
func (c *Collection) Bibstems() []string {
	stems := make([]string, 0, len(DefaultJournals))
	for k := range DefaultJournals {
		stems = append(stems, k)
	}
	sort.Strings(stems)
	return stems
}

func (c *Collection) indexPath() string {
	return filepath.Join(c.dir, "journals.txt")
}

// Index returns the full journal index as bibstem -> name, downloading or
// refreshing the on-disk copy when it is missing or stale.
func (c *Collection) Index(ctx context.Context) (map[string]string, error) {
	path := c.indexPath()
	info, err := os.Stat(path)
	stale := err != nil || time.Since(info.ModTime()) > RefreshInterval
	if stale {
		if err := c.refresh(ctx); err != nil {
			// Keep serving an old copy when the refresh fails.
			if _, statErr := os.Stat(path); statErr != nil {
				return nil, err
			}
		}
	}
	return readIndexFile(path)
}

func (c *Collection) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching journal index: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching journal index: status %d", resp.StatusCode)
	}

	journals, err := ParseIndex(resp.Body)
	if err != nil {
		return err
	}
	return writeIndexFile(c.indexPath(), journals)
}

// ParseIndex extracts bibstem/name pairs from the ADS journal index page.
// Each journal entry is a line of the form
//
//	<a href="#" onClick=...>BIBSTEM</a> Full Journal Name
func ParseIndex(r io.Reader) (map[string]string, error) {
	journals := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, `<a href="#" onClick=`) {
			continue
		}
		// Split off the tag: ...>BIBSTEM</a> Name
		parts := strings.SplitN(line, ">", 2)
		if len(parts) != 2 {
			continue
		}
		rest := parts[1]
		stem, name, ok := strings.Cut(rest, "</a>")
		if !ok {
			continue
		}
		stem = strings.TrimSpace(stem)
		name = strings.TrimSpace(name)
		if stem != "" && name != "" {
			journals[stem] = name
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning journal index: %w", err)
	}
	if len(journals) == 0 {
		return nil, fmt.Errorf("parsing journal index: no entries found")
	}
	return journals, nil
}

func writeIndexFile(path string, journals map[string]string) error {
	stems := make([]string, 0, len(journals))
	for k := range journals {
		stems = append(stems, k)
	}
	sort.Strings(stems)

	var b strings.Builder
	for _, stem := range stems {
		fmt.Fprintf(&b, "%s %s\n", journals[stem], stem)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".journals-*")
	if err != nil {
		return fmt.Errorf("writing journal index: %w", err)
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing journal index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing journal index: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func readIndexFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading journal index: %w", err)
	}
	defer f.Close()

	journals := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// The bibstem is the last whitespace-separated field.
		idx := strings.LastIndex(line, " ")
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[:idx])
		stem := strings.TrimSpace(line[idx+1:])
		if stem != "" && name != "" {
			journals[stem] = name
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal index: %w", err)
	}
	return journals, nil
}

// RecentQuery builds the ADS query for papers published in a journal over
// the last month.
func RecentQuery(bibstem string, now time.Time) string {
	start := now.AddDate(0, 0, -31)
	return fmt.Sprintf(`bibstem:%q AND pubdate:[%04d-%02d TO %04d-%02d]`,
		bibstem, start.Year(), int(start.Month()), now.Year(), int(now.Month()))
}
