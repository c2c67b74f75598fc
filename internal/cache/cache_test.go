package cache

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/adstools/astroref/internal/ads"
)

func testDocs() []ads.Doc {
	return []ads.Doc{
		{Bibcode: "2018ApJ...853..198N", Year: "2018"},
		{Bibcode: "2017A&A...600A..10M", Year: "2017"},
	}
}

func TestGetOrComputeCachesWithinTTL(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := SearchKey("star", ads.DefaultFields)

	calls := 0
	compute := func() ([]ads.Doc, error) {
		calls++
		return testDocs(), nil
	}

	docs, err := c.GetOrCompute(key, TTLSearch, compute)
	if err != nil {
		t.Fatalf("GetOrCompute() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}

	docs, err = c.GetOrCompute(key, TTLSearch, compute)
	if err != nil {
		t.Fatalf("GetOrCompute() second call error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
	if docs[0].Bibcode != "2018ApJ...853..198N" {
		t.Errorf("docs[0].Bibcode = %s", docs[0].Bibcode)
	}
}

func TestGetOrComputeRecomputesWhenStale(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CitationsKey("2018ApJ...853..198N")

	calls := 0
	compute := func() ([]ads.Doc, error) {
		calls++
		return testDocs(), nil
	}

	if _, err := c.GetOrCompute(key, TTLCitations, compute); err != nil {
		t.Fatal(err)
	}

	// Age the entry past its TTL.
	old := time.Now().Add(-TTLCitations - time.Hour)
	if err := os.Chtimes(c.path(key), old, old); err != nil {
		t.Fatal(err)
	}

	if _, err := c.GetOrCompute(key, TTLCitations, compute); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2", calls)
	}
}

func TestGetOrComputeZeroTTLAlwaysComputes(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := LibraryKey("reading list")

	calls := 0
	compute := func() ([]ads.Doc, error) {
		calls++
		return testDocs(), nil
	}

	for i := 0; i < 3; i++ {
		if _, err := c.GetOrCompute(key, TTLLibrary, compute); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 3 {
		t.Errorf("compute ran %d times, want 3", calls)
	}
}

func TestGetOrComputeEmptyPayloadIsMiss(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := SearchKey("nothing matches this", ads.DefaultFields)

	calls := 0
	compute := func() ([]ads.Doc, error) {
		calls++
		return nil, nil
	}

	if _, err := c.GetOrCompute(key, TTLSearch, compute); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute(key, TTLSearch, compute); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 (empty result never cached)", calls)
	}
}

func TestGetOrComputePropagatesComputeError(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	wantErr := errors.New("remote exploded")

	docs, err := c.GetOrCompute(SearchKey("q", nil), TTLSearch, func() ([]ads.Doc, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if docs != nil {
		t.Errorf("docs = %v, want nil", docs)
	}
}

func TestInvalidate(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := SearchKey("star", nil)

	calls := 0
	compute := func() ([]ads.Doc, error) {
		calls++
		return testDocs(), nil
	}

	if _, err := c.GetOrCompute(key, TTLSearch, compute); err != nil {
		t.Fatal(err)
	}
	c.Invalidate(key)
	if _, err := c.GetOrCompute(key, TTLSearch, compute); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 after invalidation", calls)
	}
}

func TestKeyStability(t *testing.T) {
	a := Key("search", "q", "f1,f2")
	b := Key("search", "q", "f1,f2")
	if a != b {
		t.Error("identical inputs produced different keys")
	}
	if Key("search", "q") == Key("citations", "q") {
		t.Error("different classes collided")
	}
	if Key("search", "ab", "c") == Key("search", "a", "bc") {
		t.Error("part boundaries not separated")
	}
}
