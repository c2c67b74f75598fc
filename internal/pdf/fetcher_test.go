package pdf

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fakePDF = "%PDF-1.4 fake but not html"

// newGateway stubs the link gateway. bodies maps source suffix to the
// response body; missing suffixes get a 404.
func newGateway(t *testing.T, bodies map[string]string) (*httptest.Server, *[]string) {
	t.Helper()
	var hits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		source := parts[len(parts)-1]
		hits = append(hits, source)
		body, ok := bodies[source]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchPrefersPublisher(t *testing.T) {
	srv, hits := newGateway(t, map[string]string{
		"PUB_PDF":    fakePDF,
		"EPRINT_PDF": fakePDF,
	})
	f := NewFetcher(WithGatewayURL(srv.URL))
	dest := filepath.Join(t.TempDir(), "test.pdf")

	source, err := f.Fetch(context.Background(), "2018ApJ...853..198N", dest)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if source != "PUB_PDF" {
		t.Errorf("source = %s, want PUB_PDF", source)
	}
	if len(*hits) != 1 {
		t.Errorf("hits = %v, want only PUB_PDF", *hits)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading dest: %v", err)
	}
	if string(data) != fakePDF {
		t.Errorf("dest content = %q", data)
	}
}

func TestFetchFallsBackPastHTML(t *testing.T) {
	srv, hits := newGateway(t, map[string]string{
		"PUB_PDF":    "<!DOCTYPE html><html>paywall</html>",
		"EPRINT_PDF": fakePDF,
		"ADS_PDF":    fakePDF,
	})
	f := NewFetcher(WithGatewayURL(srv.URL))
	dest := filepath.Join(t.TempDir(), "test.pdf")

	source, err := f.Fetch(context.Background(), "2018ApJ...853..198N", dest)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if source != "EPRINT_PDF" {
		t.Errorf("source = %s, want EPRINT_PDF", source)
	}
	want := []string{"PUB_PDF", "EPRINT_PDF"}
	if len(*hits) != len(want) || (*hits)[0] != want[0] || (*hits)[1] != want[1] {
		t.Errorf("hits = %v, want %v", *hits, want)
	}
}

func TestFetchAllSourcesFail(t *testing.T) {
	srv, hits := newGateway(t, map[string]string{
		"PUB_PDF":    "<html>nope</html>",
		"EPRINT_PDF": "  \n\t<!doctype HTML><html>also nope</html>",
	})
	f := NewFetcher(WithGatewayURL(srv.URL))
	dest := filepath.Join(t.TempDir(), "test.pdf")

	_, err := f.Fetch(context.Background(), "2018ApJ...853..198N", dest)
	if err == nil {
		t.Fatal("Fetch() succeeded, want error")
	}
	if len(*hits) != 3 {
		t.Errorf("hits = %v, want all three sources tried", *hits)
	}
	if _, statErr := os.Stat(dest); statErr == nil {
		t.Error("dest exists after failed fetch")
	}
}

func TestFetchIdempotent(t *testing.T) {
	srv, hits := newGateway(t, map[string]string{"PUB_PDF": fakePDF})
	f := NewFetcher(WithGatewayURL(srv.URL))
	dest := filepath.Join(t.TempDir(), "test.pdf")
	if err := os.WriteFile(dest, []byte(fakePDF), 0o644); err != nil {
		t.Fatal(err)
	}

	source, err := f.Fetch(context.Background(), "2018ApJ...853..198N", dest)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty for existing file", source)
	}
	if len(*hits) != 0 {
		t.Errorf("hits = %v, want none", *hits)
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"doctype", "<!DOCTYPE html><html></html>", true},
		{"doctype lowercase", "<!doctype html>", true},
		{"html tag", "<html lang=\"en\">", true},
		{"leading whitespace", "\n  \t<html>", true},
		{"pdf magic", "%PDF-1.7 binary follows", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHTML([]byte(tt.body)); got != tt.want {
				t.Errorf("isHTML(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	got := Filename("/papers", "2018ApJ...853..198N")
	want := filepath.Join("/papers", "2018ApJ...853..198N.pdf")
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestVerifyRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	if err := os.WriteFile(path, []byte("<html>not a pdf</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Verify(path); err == nil {
		t.Error("Verify() accepted an HTML file")
	}
}

func TestVerifyMissingFile(t *testing.T) {
	if err := Verify(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Error("Verify() accepted a missing file")
	}
}
