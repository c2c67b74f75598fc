package resolve

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// Field patterns for the identifier-bearing BibTeX fields. Values may be
// brace- or quote-delimited.
var (
	adsurlFieldRegex = regexp.MustCompile(`(?i)^\s*adsurl\s*=\s*[\{"]([^\}"]+)[\}"]`)
	eprintFieldRegex = regexp.MustCompile(`(?i)^\s*eprint\s*=\s*[\{"]([^\}"]+)[\}"]`)
	doiFieldRegex    = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// parseBibTeX extracts an identifier descriptor from a pasted BibTeX
// entry. Field precedence: adsurl (bibcode is its last path segment), then
// eprint (arXiv id), then doi. An entry carrying none of these fields is
// MalformedInput, since there is nothing to search for.
func parseBibTeX(entry string) (Descriptor, error) {
	var d Descriptor

	scanner := bufio.NewScanner(strings.NewReader(entry))
	for scanner.Scan() {
		line := scanner.Text()

		if m := adsurlFieldRegex.FindStringSubmatch(line); len(m) > 1 && d.Bibcode == "" {
			parts := strings.Split(strings.TrimSuffix(m[1], "/"), "/")
			d.Bibcode = parts[len(parts)-1]
		}
		if m := eprintFieldRegex.FindStringSubmatch(line); len(m) > 1 && d.Arxiv == "" {
			d.Arxiv = m[1]
		}
		if m := doiFieldRegex.FindStringSubmatch(line); len(m) > 1 && d.DOI == "" {
			d.DOI = m[1]
		}
	}

	if d.Empty() {
		return Descriptor{}, fmt.Errorf("%w: BibTeX entry has no adsurl, eprint, or doi field", ErrMalformedInput)
	}
	return d, nil
}
