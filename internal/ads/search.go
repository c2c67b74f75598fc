package ads

import (
	"context"
	"fmt"
)

// Search executes a paginated query against the search endpoint and returns
// the accumulated results as a Journal.
//
// Pages are fetched serially in increasing start order; the API does not
// guarantee a stable sort across concurrently issued paginated requests.
// Pagination stops once numFound records have been collected or the
// MaxResults safety cap is reached.
func (c *Client) Search(ctx context.Context, query string, fields []string) (*Journal, error) {
	if len(fields) == 0 {
		fields = DefaultFields
	}

	var docs []Doc
	start := 0
	for {
		page, err := c.searchPage(ctx, query, fields, start)
		if err != nil {
			return nil, err
		}
		docs = append(docs, page.Docs...)

		if len(docs) >= page.NumFound || len(docs) >= MaxResults {
			break
		}
		if len(page.Docs) == 0 {
			// Remote claims more records but returned none; stop rather
			// than loop forever.
			break
		}
		start = len(docs)
	}

	return newJournalFromDocs(c, docs), nil
}

// Citations returns the papers citing the given bibcode.
func (c *Client) Citations(ctx context.Context, bibcode string) (*Journal, error) {
	return c.Search(ctx, fmt.Sprintf("citations(bibcode:%q)", bibcode), nil)
}

// References returns the papers referenced by the given bibcode.
func (c *Client) References(ctx context.Context, bibcode string) (*Journal, error) {
	return c.Search(ctx, fmt.Sprintf("references(bibcode:%q)", bibcode), nil)
}

// Orcid returns the papers registered to an ORCID id.
func (c *Client) Orcid(ctx context.Context, orcid string) (*Journal, error) {
	return c.Search(ctx, fmt.Sprintf("orcid:%q", orcid), nil)
}

// FirstAuthor returns the papers with the given first author.
func (c *Client) FirstAuthor(ctx context.Context, author string) (*Journal, error) {
	return c.Search(ctx, fmt.Sprintf("author:\"^%s\"", author), nil)
}

// FetchDoc fetches the single record for a bibcode. Returns ErrNotFound if
// the bibcode is unknown and ErrAmbiguous if the lookup somehow matches
// more than one record (an invariant violation for bibcode-keyed queries).
func (c *Client) FetchDoc(ctx context.Context, bibcode string) (*Doc, error) {
	page, err := c.searchPage(ctx, fmt.Sprintf("bibcode:%q", bibcode), DefaultFields, 0)
	if err != nil {
		return nil, err
	}
	switch len(page.Docs) {
	case 0:
		return nil, fmt.Errorf("%w: bibcode %s", ErrNotFound, bibcode)
	case 1:
		doc := page.Docs[0]
		return &doc, nil
	default:
		return nil, fmt.Errorf("%w: bibcode %s matched %d records", ErrAmbiguous, bibcode, len(page.Docs))
	}
}

// ChunkedSearch looks up a large identifier list by running one search per
// chunk and merging results in chunk order. The remote API silently
// truncates very long OR-queries, so bulk lookups must be split.
func (c *Client) ChunkedSearch(ctx context.Context, ids []string, prefix string) (*Journal, error) {
	merged := newJournalFromDocs(c, nil)
	for _, query := range Chunk(ids, prefix, " OR ", DefaultChunkSize) {
		j, err := c.Search(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		merged.merge(j)
	}
	return merged, nil
}

// BibcodeMulti bulk-resolves a list of bibcodes.
func (c *Client) BibcodeMulti(ctx context.Context, bibcodes []string) (*Journal, error) {
	return c.ChunkedSearch(ctx, bibcodes, "bibcode:")
}

// ArxivMulti bulk-resolves a list of arXiv ids.
func (c *Client) ArxivMulti(ctx context.Context, arxivIDs []string) (*Journal, error) {
	return c.ChunkedSearch(ctx, arxivIDs, "identifier:")
}
