package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// newSearchServer builds a stub search endpoint serving the given docs with
// page-by-page pagination.
func newSearchServer(t *testing.T, docs []Doc, numFound int) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/search/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", got)
		}
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		rows, _ := strconv.Atoi(r.URL.Query().Get("rows"))
		end := start + rows
		if end > len(docs) {
			end = len(docs)
		}
		var page []Doc
		if start < len(docs) {
			page = docs[start:end]
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": map[string]interface{}{
				"numFound": numFound,
				"docs":     page,
			},
		})
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func makeDocs(n int) []Doc {
	docs := make([]Doc, n)
	for i := range docs {
		docs[i] = Doc{Bibcode: fmt.Sprintf("2020TEST...%03d..001X", i)}
	}
	return docs
}

func TestSearchSinglePage(t *testing.T) {
	docs := makeDocs(3)
	srv, requests := newSearchServer(t, docs, len(docs))
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

	j, err := client.Search(context.Background(), "star", nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if j.Len() != 3 {
		t.Errorf("Len() = %d, want 3", j.Len())
	}
	if *requests != 1 {
		t.Errorf("requests = %d, want 1", *requests)
	}
}

func TestSearchPaginates(t *testing.T) {
	docs := makeDocs(150)
	srv, requests := newSearchServer(t, docs, len(docs))
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

	j, err := client.Search(context.Background(), "star", nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if j.Len() != 150 {
		t.Errorf("Len() = %d, want 150", j.Len())
	}
	if *requests != 2 {
		t.Errorf("requests = %d, want 2", *requests)
	}
	// Chunk order must be preserved.
	bibcodes := j.Bibcodes()
	if bibcodes[0] != docs[0].Bibcode || bibcodes[149] != docs[149].Bibcode {
		t.Errorf("result order not preserved")
	}
}

func TestSearchStopsAtCap(t *testing.T) {
	docs := makeDocs(400)
	srv, requests := newSearchServer(t, docs, len(docs))
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

	j, err := client.Search(context.Background(), "star", nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if j.Len() < MaxResults {
		t.Errorf("Len() = %d, want at least %d", j.Len(), MaxResults)
	}
	if j.Len() > MaxResults+PageSize {
		t.Errorf("Len() = %d, overshot the cap by more than a page", j.Len())
	}
	if *requests != 3 {
		t.Errorf("requests = %d, want 3", *requests)
	}
}

func TestSearchMissingEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"msg": "org.apache.solr.search.SyntaxError"},
		})
	}))
	defer srv.Close()
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "bad(((query", nil)
	if !errors.Is(err, ErrSearch) {
		t.Fatalf("Search() error = %v, want ErrSearch", err)
	}
}

func TestSearchAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	client := NewClient(WithToken("bad-token"), WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "star", nil)
	if !IsAuthError(err) {
		t.Fatalf("Search() error = %v, want auth error", err)
	}
}

func TestSearchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "star", nil)
	if !IsRateLimited(err) {
		t.Fatalf("Search() error = %v, want rate limit error", err)
	}
}

func TestRateLimitHeadersRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "4999")
		w.Header().Set("X-RateLimit-Limit", "5000")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": map[string]interface{}{"numFound": 0, "docs": []Doc{}},
		})
	}))
	defer srv.Close()
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

	state := client.RateLimitState()
	if state.Remaining != -1 || state.Limit != -1 {
		t.Fatalf("initial state = %+v, want -1/-1", state)
	}

	if _, err := client.Search(context.Background(), "star", nil); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	state = client.RateLimitState()
	if state.Remaining != 4999 || state.Limit != 5000 {
		t.Errorf("state = %+v, want 4999/5000", state)
	}
}

func TestFetchDoc(t *testing.T) {
	tests := []struct {
		name    string
		docs    []Doc
		wantErr error
	}{
		{
			name: "single match",
			docs: []Doc{{Bibcode: "2018ApJ...853..198N"}},
		},
		{
			name:    "no match",
			docs:    []Doc{},
			wantErr: ErrNotFound,
		},
		{
			name:    "multiple matches",
			docs:    []Doc{{Bibcode: "a"}, {Bibcode: "b"}},
			wantErr: ErrAmbiguous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newSearchServer(t, tt.docs, len(tt.docs))
			client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

			doc, err := client.FetchDoc(context.Background(), "2018ApJ...853..198N")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FetchDoc() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchDoc() error = %v", err)
			}
			if doc.Bibcode != "2018ApJ...853..198N" {
				t.Errorf("Bibcode = %s", doc.Bibcode)
			}
		})
	}
}

func TestChunkedSearchMergesInOrder(t *testing.T) {
	// Serve each chunk query with docs matching the requested ids.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		var docs []Doc
		// One doc per "bibcode:<id>" term in the query.
		for _, id := range []string{"a", "b", "c"} {
			if containsTerm(q, "bibcode:"+id) {
				docs = append(docs, Doc{Bibcode: id})
			}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": map[string]interface{}{"numFound": len(docs), "docs": docs},
		})
	}))
	defer srv.Close()
	client := NewClient(WithToken("test-token"), WithBaseURL(srv.URL))

	j, err := client.BibcodeMulti(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BibcodeMulti() error = %v", err)
	}
	got := j.Bibcodes()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Bibcodes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bibcodes()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func containsTerm(query, term string) bool {
	for _, part := range strings.Split(query, " OR ") {
		if part == term {
			return true
		}
	}
	return false
}
