// Package resolve turns free-form user input (publisher URLs, BibTeX
// blobs, literal bibcodes) into canonical identifier descriptors suitable
// for ADS queries.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ErrMalformedInput indicates an unparsable BibTeX entry or identifier.
var ErrMalformedInput = errors.New("unparsable identifier input")

// bibcodeLen is the fixed length of an ADS bibcode.
const bibcodeLen = 19

// browserUserAgent is sent on landing-page fetches; some publishers serve
// captchas to unknown agents.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Descriptor is a canonical identifier extracted from user input. At most
// one of the fields is typically set; BibTeX entries may yield several.
type Descriptor struct {
	Bibcode string `json:"bibcode,omitempty"`
	Arxiv   string `json:"arxiv,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

// Empty reports whether no identifier was recognized. Callers treat the
// original input as a free-text query in that case.
func (d Descriptor) Empty() bool {
	return d.Bibcode == "" && d.Arxiv == "" && d.DOI == ""
}

// Query renders the descriptor in ADS search syntax. Precedence when more
// than one field is set: bibcode, then arxiv, then doi.
func (d Descriptor) Query() string {
	switch {
	case d.Bibcode != "":
		return fmt.Sprintf("bibcode:%q", d.Bibcode)
	case d.Arxiv != "":
		return fmt.Sprintf("arxiv:%q", d.Arxiv)
	case d.DOI != "":
		return fmt.Sprintf("doi:%q", d.DOI)
	}
	return ""
}

// Resolver extracts identifier descriptors from user input. The publisher
// URL rules that need the landing page perform synchronous HTTP GETs.
type Resolver struct {
	client *http.Client
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) {
		r.client = hc
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve extracts a canonical identifier from input. Rules are tried in
// priority order: BibTeX entries, recognized publisher URLs, literal
// bibcodes. Unrecognized input yields an empty descriptor with a nil
// error; only structurally broken BibTeX is reported as MalformedInput.
// The URL rules tolerate network failures by returning an empty
// descriptor, never an error.
func (r *Resolver) Resolve(ctx context.Context, input string) (Descriptor, error) {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "@") {
		return parseBibTeX(input)
	}

	if d, ok := r.resolveURL(ctx, input); ok {
		return d, nil
	}

	if isBibcode(input) {
		return Descriptor{Bibcode: input}, nil
	}

	return Descriptor{}, nil
}

// isBibcode reports whether s looks like a literal bibcode: exactly 19
// characters with a numeric 4-digit year prefix.
func isBibcode(s string) bool {
	if len(s) != bibcodeLen {
		return false
	}
	for _, r := range s[:4] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var arxivVersionSuffix = regexp.MustCompile(`v\d+$`)

// resolveURL applies domain-specific extraction rules. The returned bool
// is true when a rule matched the input, even if extraction came up empty.
func (r *Resolver) resolveURL(ctx context.Context, url string) (Descriptor, bool) {
	switch {
	case strings.Contains(url, "adsabs.harvard.edu"):
		// Bibcode is the last or second-to-last path segment, depending
		// on whether the URL ends in /abstract.
		parts := strings.Split(url, "/")
		for i := len(parts) - 1; i >= 0 && i >= len(parts)-2; i-- {
			if len(parts[i]) == bibcodeLen {
				return Descriptor{Bibcode: parts[i]}, true
			}
		}
		return Descriptor{}, true

	case strings.Contains(url, "arxiv.org/"):
		parts := strings.Split(url, "/")
		id := arxivVersionSuffix.ReplaceAllString(parts[len(parts)-1], "")
		return Descriptor{Arxiv: id}, true

	case strings.Contains(url, "iopscience.iop.org"):
		// http://iopscience.iop.org/article/10.3847/1538-4365/227/2/22/meta
		if _, doi, ok := strings.Cut(url, "article/"); ok {
			return Descriptor{DOI: strings.TrimSuffix(doi, "/meta")}, true
		}
		return Descriptor{}, true

	case strings.Contains(url, "academic.oup.com/mnras"):
		return r.resolveMNRAS(ctx, url), true

	case strings.Contains(url, "aanda.org"):
		return r.resolveAandA(ctx, url), true

	case strings.Contains(url, "nature.com"):
		return r.resolveNature(ctx, url), true

	case strings.Contains(url, "sciencemag.org"):
		return r.resolveScience(ctx, url), true

	case strings.Contains(url, "PhysRevLett"):
		// https://journals.aps.org/prl/abstract/10.1103/PhysRevLett.116.241103
		parts := strings.Split(url, "/")
		if len(parts) >= 2 {
			return Descriptor{DOI: strings.Join(parts[len(parts)-2:], "/")}, true
		}
		return Descriptor{}, true
	}

	return Descriptor{}, false
}

// get fetches a landing page and returns its body as a string. Any
// failure yields "", which every scanning rule treats as no match.
func (r *Resolver) get(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(body)
}

// resolveMNRAS scans the landing page for a doi.org href.
func (r *Resolver) resolveMNRAS(ctx context.Context, url string) Descriptor {
	body := r.get(ctx, url)
	for _, token := range strings.Fields(body) {
		if !strings.Contains(token, "doi.org") || !strings.Contains(token, ">") {
			continue
		}
		// href=...doi.org/<doi>>...<
		_, after, ok := strings.Cut(token, ">")
		if !ok {
			continue
		}
		text, _, _ := strings.Cut(after, "<")
		if _, doi, ok := strings.Cut(text, "doi.org/"); ok && doi != "" {
			return Descriptor{DOI: doi}
		}
	}
	return Descriptor{}
}

// resolveAandA scans the landing page for a citation_bibcode meta tag. The
// URL path itself carries no identifier.
func (r *Resolver) resolveAandA(ctx context.Context, url string) Descriptor {
	body := r.get(ctx, url)
	for _, line := range strings.Split(body, ">") {
		if !strings.Contains(line, "citation_bibcode") {
			continue
		}
		idx := strings.LastIndex(line, "=")
		if idx < 0 || idx == len(line)-1 {
			continue
		}
		// The ampersand in "A&A" arrives percent-encoded.
		bibcode := strings.ReplaceAll(line[idx+1:], "%26", "&")
		bibcode = strings.Trim(bibcode, `"/ `)
		if bibcode != "" {
			return Descriptor{Bibcode: bibcode}
		}
	}
	return Descriptor{}
}

// resolveNature fetches the RIS export and scans it for a doi.org line.
func (r *Resolver) resolveNature(ctx context.Context, url string) Descriptor {
	if idx := strings.Index(url, "?"); idx >= 0 {
		url = url[:idx]
	}
	body := r.get(ctx, url+".ris")
	for _, token := range strings.Fields(body) {
		if !strings.Contains(token, "doi.org") {
			continue
		}
		parts := strings.Split(token, "/")
		if len(parts) >= 2 {
			return Descriptor{DOI: strings.Join(parts[len(parts)-2:], "/")}
		}
	}
	return Descriptor{}
}

// resolveScience scans the landing page for a citation_doi meta tag.
func (r *Resolver) resolveScience(ctx context.Context, url string) Descriptor {
	body := r.get(ctx, url)
	for _, line := range strings.Split(body, ">") {
		if !strings.Contains(line, `meta name="citation_doi"`) {
			continue
		}
		idx := strings.LastIndex(line, "=")
		if idx < 0 || idx == len(line)-1 {
			continue
		}
		doi := strings.Trim(line[idx+1:], `"/ `)
		if doi != "" {
			return Descriptor{DOI: doi}
		}
	}
	return Descriptor{}
}
