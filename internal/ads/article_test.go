package ads

import (
	"context"
	"testing"
)

func testDoc() Doc {
	return Doc{
		Bibcode:       "2018ApJ...853..198N",
		Title:         []string{"Planet formation in dusty disks"},
		Author:        []string{"Nayakshin, S.", "Smith, J."},
		Year:          "2018",
		Abstract:      "We study planets.",
		Pubdate:       "2018-02-00",
		Bibstem:       []string{"ApJ"},
		CitationCount: 42,
		Identifier:    []string{"arXiv:1801.02634", "10.3847/1538-4357/aaa4c8", "2018arXiv180102634N"},
		Reference:     []string{"r1", "r2", "r3"},
	}
}

func TestArticleLazyLoadsOnce(t *testing.T) {
	docs := []Doc{testDoc()}
	srv, requests := newSearchServer(t, docs, 1)
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))
	ctx := context.Background()

	a := NewArticle(client, "2018ApJ...853..198N")
	if a.Loaded() {
		t.Fatal("placeholder reports loaded")
	}

	title, err := a.Title(ctx)
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if title != "Planet formation in dusty disks" {
		t.Errorf("Title() = %q", title)
	}
	if !a.Loaded() {
		t.Error("article not loaded after accessor")
	}

	// Subsequent accessors answer from the cached payload.
	if _, err := a.Abstract(ctx); err != nil {
		t.Fatalf("Abstract() error = %v", err)
	}
	if _, err := a.Authors(ctx); err != nil {
		t.Fatalf("Authors() error = %v", err)
	}
	if *requests != 1 {
		t.Errorf("requests = %d, want 1", *requests)
	}
}

func TestArticleFromDocNeverFetches(t *testing.T) {
	srv, requests := newSearchServer(t, nil, 0)
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))
	ctx := context.Background()

	a := NewArticleFromDoc(client, testDoc())
	if !a.Loaded() {
		t.Fatal("article from doc not loaded")
	}

	first, err := a.FirstAuthor(ctx)
	if err != nil {
		t.Fatalf("FirstAuthor() error = %v", err)
	}
	if first != "Nayakshin, S." {
		t.Errorf("FirstAuthor() = %q", first)
	}

	name, err := a.Name(ctx)
	if err != nil {
		t.Fatalf("Name() error = %v", err)
	}
	if name != "Nayakshin, S. 2018" {
		t.Errorf("Name() = %q", name)
	}

	count, err := a.ReferenceCount(ctx)
	if err != nil {
		t.Fatalf("ReferenceCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("ReferenceCount() = %d, want 3", count)
	}

	if *requests != 0 {
		t.Errorf("requests = %d, want 0", *requests)
	}
}

func TestArticleURLs(t *testing.T) {
	client := NewClient(WithToken("test-token"))
	ctx := context.Background()
	a := NewArticleFromDoc(client, testDoc())

	if got := a.ADSURL(); got != "https://ui.adsabs.harvard.edu/abs/2018ApJ...853..198N" {
		t.Errorf("ADSURL() = %q", got)
	}

	arxivURL, err := a.ArxivURL(ctx)
	if err != nil {
		t.Fatalf("ArxivURL() error = %v", err)
	}
	if arxivURL != "https://arxiv.org/abs/1801.02634" {
		t.Errorf("ArxivURL() = %q", arxivURL)
	}

	journalURL, err := a.JournalURL(ctx)
	if err != nil {
		t.Fatalf("JournalURL() error = %v", err)
	}
	if journalURL != "https://doi.org/10.3847/1538-4357/aaa4c8" {
		t.Errorf("JournalURL() = %q", journalURL)
	}

	if got := a.Filename(); got != "2018ApJ...853..198N.pdf" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestArticleURLsAbsent(t *testing.T) {
	client := NewClient(WithToken("test-token"))
	ctx := context.Background()
	doc := testDoc()
	doc.Identifier = []string{"2018arXiv180102634N"}
	a := NewArticleFromDoc(client, doc)

	arxivURL, err := a.ArxivURL(ctx)
	if err != nil {
		t.Fatalf("ArxivURL() error = %v", err)
	}
	if arxivURL != "" {
		t.Errorf("ArxivURL() = %q, want empty", arxivURL)
	}

	journalURL, err := a.JournalURL(ctx)
	if err != nil {
		t.Fatalf("JournalURL() error = %v", err)
	}
	if journalURL != "" {
		t.Errorf("JournalURL() = %q, want empty", journalURL)
	}
}

func TestArticleEqual(t *testing.T) {
	client := NewClient(WithToken("test-token"))
	placeholder := NewArticle(client, "2018ApJ...853..198N")
	loaded := NewArticleFromDoc(client, testDoc())
	other := NewArticle(client, "1999OTHER.123..456Z")

	if !placeholder.Equal(loaded) {
		t.Error("placeholder and loaded instance of same bibcode not equal")
	}
	if placeholder.Equal(other) {
		t.Error("different bibcodes compare equal")
	}
	if placeholder.Equal(nil) {
		t.Error("nil compares equal")
	}
}

func TestArticlePDFSource(t *testing.T) {
	client := NewClient(WithToken("test-token"))
	a := NewArticle(client, "2018ApJ...853..198N")
	if a.PDFSource() != "" {
		t.Errorf("PDFSource() = %q, want empty", a.PDFSource())
	}
	a.SetPDFSource("EPRINT_PDF")
	if a.PDFSource() != "EPRINT_PDF" {
		t.Errorf("PDFSource() = %q", a.PDFSource())
	}
}
