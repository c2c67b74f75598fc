package ads

import (
	"context"
	"strings"
)

// Article is one bibliographic record, identified by its 19-character
// bibcode. An Article is either a placeholder (bibcode only) or loaded
// (bibcode plus payload); the first accessor call on a placeholder fetches
// the payload exactly once, after which every field is answered locally.
type Article struct {
	client  *Client
	bibcode string
	doc     *Doc

	pdfSource string
}

// NewArticle creates an unloaded placeholder for a known bibcode.
func NewArticle(c *Client, bibcode string) *Article {
	return &Article{client: c, bibcode: bibcode}
}

// NewArticleFromDoc creates a fully loaded Article from a search payload.
func NewArticleFromDoc(c *Client, doc Doc) *Article {
	d := doc
	return &Article{client: c, bibcode: doc.Bibcode, doc: &d}
}

// Bibcode returns the article's identity. Always known, never fetches.
func (a *Article) Bibcode() string {
	return a.bibcode
}

// Loaded reports whether the payload has been fetched.
func (a *Article) Loaded() bool {
	return a.doc != nil
}

// ensureLoaded fetches the payload by bibcode if it is not yet present.
func (a *Article) ensureLoaded(ctx context.Context) error {
	if a.doc != nil {
		return nil
	}
	doc, err := a.client.FetchDoc(ctx, a.bibcode)
	if err != nil {
		return err
	}
	a.doc = doc
	return nil
}

// Reload discards any cached payload and fetches it again.
func (a *Article) Reload(ctx context.Context) error {
	a.doc = nil
	return a.ensureLoaded(ctx)
}

// Doc returns the raw payload, fetching it if needed.
func (a *Article) Doc(ctx context.Context) (*Doc, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return a.doc, nil
}

// Title returns the primary title.
func (a *Article) Title(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	if len(a.doc.Title) == 0 {
		return "", nil
	}
	return a.doc.Title[0], nil
}

// Authors returns the ordered author list.
func (a *Article) Authors(ctx context.Context) ([]string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return a.doc.Author, nil
}

// FirstAuthor returns the first author, or "" for author-less records.
func (a *Article) FirstAuthor(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	if len(a.doc.Author) == 0 {
		return "", nil
	}
	return a.doc.Author[0], nil
}

// Year returns the publication year as recorded by ADS.
func (a *Article) Year(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	return a.doc.Year, nil
}

// Pubdate returns the full publication date string (YYYY-MM-00 style).
func (a *Article) Pubdate(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	return a.doc.Pubdate, nil
}

// Journal returns the journal bibstem (e.g. "MNRAS").
func (a *Article) Journal(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	if len(a.doc.Bibstem) == 0 {
		return "", nil
	}
	return a.doc.Bibstem[0], nil
}

// Abstract returns the abstract, or "" when the record has none.
func (a *Article) Abstract(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	return a.doc.Abstract, nil
}

// CitationCount returns the citation count; 0 when absent.
func (a *Article) CitationCount(ctx context.Context) (int, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	return a.doc.CitationCount, nil
}

// ReferenceCount returns the number of references; 0 when absent.
func (a *Article) ReferenceCount(ctx context.Context) (int, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	return len(a.doc.Reference), nil
}

// Identifiers returns the heterogeneous identifier list (arXiv ids, DOIs,
// alternate bibcodes).
func (a *Article) Identifiers(ctx context.Context) ([]string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return a.doc.Identifier, nil
}

// Name returns a short display handle: first author plus year.
func (a *Article) Name(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	first := ""
	if len(a.doc.Author) > 0 {
		first = a.doc.Author[0]
	}
	return strings.TrimSpace(first + " " + a.doc.Year), nil
}

// ADSURL returns the abstract page URL. Needs no payload.
func (a *Article) ADSURL() string {
	return "https://ui.adsabs.harvard.edu/abs/" + a.bibcode
}

// ArxivURL returns the arXiv abstract URL, or "" when the record has no
// arXiv mirror (not an error; many papers have none).
func (a *Article) ArxivURL(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	for _, id := range a.doc.Identifier {
		if strings.HasPrefix(id, "arXiv:") {
			return "https://arxiv.org/abs/" + strings.TrimPrefix(id, "arXiv:"), nil
		}
	}
	return "", nil
}

// JournalURL returns the DOI resolver URL, or "" when no DOI is recorded.
func (a *Article) JournalURL(ctx context.Context) (string, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return "", err
	}
	for _, id := range a.doc.Identifier {
		if strings.HasPrefix(id, "10.") {
			return "https://doi.org/" + id, nil
		}
	}
	return "", nil
}

// Filename returns the canonical PDF filename for this article.
func (a *Article) Filename() string {
	return a.bibcode + ".pdf"
}

// Citations returns the papers citing this one.
func (a *Article) Citations(ctx context.Context) (*Journal, error) {
	return a.client.Citations(ctx, a.bibcode)
}

// References returns the papers this one cites.
func (a *Article) References(ctx context.Context) (*Journal, error) {
	return a.client.References(ctx, a.bibcode)
}

// Bibtex returns the BibTeX entry for this article.
func (a *Article) Bibtex(ctx context.Context) (string, error) {
	return a.client.ExportBibtex(ctx, []string{a.bibcode})
}

// PDFSource returns which link-gateway suffix produced the downloaded PDF,
// or "" if no download has succeeded.
func (a *Article) PDFSource() string {
	return a.pdfSource
}

// SetPDFSource records the winning link-gateway suffix after a download.
func (a *Article) SetPDFSource(source string) {
	a.pdfSource = source
}

// Equal reports whether two articles denote the same record. Identity is
// the bibcode alone, so a placeholder compares equal to a loaded instance.
func (a *Article) Equal(other *Article) bool {
	return other != nil && a.bibcode == other.bibcode
}
