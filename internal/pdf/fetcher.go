// Package pdf resolves and downloads full-text PDFs through the ADS link
// gateway, and handles local PDF path resolution and opening.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GatewayURL is the ADS link-gateway base URL.
const GatewayURL = "https://ui.adsabs.harvard.edu/link_gateway/"

// browserUserAgent avoids the captchas some mirrors serve to unknown agents.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Sources are the link-gateway suffixes tried in order. Publisher copies
// come first for content quality but often sit behind paywalls that only
// resolve on institutional networks; the arXiv and ADS mirrors are more
// reliably open.
var Sources = []string{"PUB_PDF", "EPRINT_PDF", "ADS_PDF"}

// ErrDownloadFailed indicates every mirror candidate was exhausted without
// yielding a usable PDF. Callers should treat this per-article: many
// records genuinely have no accessible full text.
var ErrDownloadFailed = errors.New("no PDF source yielded a usable file")

// Fetcher downloads article PDFs to bibcode-named files.
type Fetcher struct {
	httpClient *http.Client
	gatewayURL string
	userAgent  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = hc
	}
}

// WithGatewayURL sets a custom link-gateway base URL (for testing).
func WithGatewayURL(u string) Option {
	return func(f *Fetcher) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		f.gatewayURL = u
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		gatewayURL: GatewayURL,
		userAgent:  browserUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the PDF for bibcode to dest, trying each gateway source
// in order. Returns the suffix that produced the file. Idempotent: if dest
// already exists no network call is made and the returned source is "".
//
// A response body that opens with an HTML doctype is a landing or paywall
// page, not a PDF; the next candidate is tried. The file is written to a
// temp path and renamed into place so concurrent fetches for the same
// bibcode resolve last-writer-wins with no torn files.
func (f *Fetcher) Fetch(ctx context.Context, bibcode, dest string) (string, error) {
	if _, err := os.Stat(dest); err == nil {
		return "", nil
	}

	for _, source := range Sources {
		body, err := f.download(ctx, f.gatewayURL+bibcode+"/"+source)
		if err != nil {
			continue
		}
		if isHTML(body) {
			continue
		}
		if err := writeAtomic(dest, body); err != nil {
			return "", fmt.Errorf("writing %s: %w", dest, err)
		}
		return source, nil
	}

	return "", fmt.Errorf("%w: %s", ErrDownloadFailed, bibcode)
}

// download GETs a single candidate URL, following redirects.
func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// isHTML reports whether body opens with an HTML doctype or tag marker.
func isHTML(body []byte) bool {
	head := bytes.TrimLeft(body, " \t\r\n")
	if len(head) > 64 {
		head = head[:64]
	}
	lower := bytes.ToLower(head)
	return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
}

// writeAtomic writes data to a temp file in dest's directory and renames
// it into place.
func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

// Filename returns the canonical PDF path for a bibcode under root.
func Filename(root, bibcode string) string {
	return filepath.Join(root, bibcode+".pdf")
}
