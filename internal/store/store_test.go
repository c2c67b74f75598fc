package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDownloadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	dl, err := db.Download("2018ApJ...853..198N")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if dl != nil {
		t.Fatalf("Download() = %+v, want nil before recording", dl)
	}

	if err := db.RecordDownload("2018ApJ...853..198N", "EPRINT_PDF", "/papers/2018ApJ...853..198N.pdf"); err != nil {
		t.Fatalf("RecordDownload() error = %v", err)
	}

	dl, err = db.Download("2018ApJ...853..198N")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if dl == nil {
		t.Fatal("Download() = nil after recording")
	}
	if dl.Source != "EPRINT_PDF" || dl.Path != "/papers/2018ApJ...853..198N.pdf" {
		t.Errorf("Download() = %+v", dl)
	}
	if dl.FetchedAt.IsZero() {
		t.Error("FetchedAt is zero")
	}
}

func TestRecordDownloadReplaces(t *testing.T) {
	db := openTestDB(t)

	if err := db.RecordDownload("bib", "ADS_PDF", "/old.pdf"); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordDownload("bib", "PUB_PDF", "/new.pdf"); err != nil {
		t.Fatal(err)
	}

	dls, err := db.Downloads()
	if err != nil {
		t.Fatal(err)
	}
	if len(dls) != 1 {
		t.Fatalf("len = %d, want 1", len(dls))
	}
	if dls[0].Source != "PUB_PDF" || dls[0].Path != "/new.pdf" {
		t.Errorf("record = %+v", dls[0])
	}
}

func TestSavedSearches(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveSearch("exo", `author:"^Kaltenegger"`); err != nil {
		t.Fatalf("SaveSearch() error = %v", err)
	}
	if err := db.SaveSearch("apj", `bibstem:"ApJ"`); err != nil {
		t.Fatal(err)
	}

	s, err := db.SavedSearch("exo")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.Query != `author:"^Kaltenegger"` {
		t.Errorf("SavedSearch() = %+v", s)
	}

	all, err := db.SavedSearches()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Name != "apj" || all[1].Name != "exo" {
		t.Errorf("SavedSearches() = %+v", all)
	}

	// Saving under an existing name replaces the query.
	if err := db.SaveSearch("exo", "new query"); err != nil {
		t.Fatal(err)
	}
	s, err = db.SavedSearch("exo")
	if err != nil {
		t.Fatal(err)
	}
	if s.Query != "new query" {
		t.Errorf("Query = %q", s.Query)
	}
}

func TestDeleteSearch(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveSearch("gone", "q"); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteSearch("gone"); err != nil {
		t.Fatalf("DeleteSearch() error = %v", err)
	}
	s, err := db.SavedSearch("gone")
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Errorf("SavedSearch() = %+v after delete", s)
	}

	// Deleting an unknown name is not an error.
	if err := db.DeleteSearch("never existed"); err != nil {
		t.Errorf("DeleteSearch(unknown) error = %v", err)
	}
}
