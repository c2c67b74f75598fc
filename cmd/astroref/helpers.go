package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adstools/astroref/internal/ads"
	"github.com/adstools/astroref/internal/biblib"
	"github.com/adstools/astroref/internal/cache"
	"github.com/adstools/astroref/internal/config"
	"github.com/adstools/astroref/internal/store"
)

// loadSettings loads per-user settings, exiting on failure.
func loadSettings() *config.Settings {
	s, err := config.NewSettings()
	if err != nil {
		exitWithError(ExitConfigError, "loading settings: %v", err)
	}
	return s
}

// adsClient builds an ADS search client from the stored token. It exits
// when no token is configured since every ADS call would fail anyway.
func adsClient(s *config.Settings) *ads.Client {
	token := s.Token()
	if token == "" {
		exitWithError(ExitConfigError, "no ADS API token configured; run 'astroref config token <token>' or set ADS_API_TOKEN")
	}
	return ads.NewClient(ads.WithToken(token))
}

// biblibClient builds an ADS library client from the stored token.
func biblibClient(s *config.Settings) *biblib.Client {
	token := s.Token()
	if token == "" {
		exitWithError(ExitConfigError, "no ADS API token configured; run 'astroref config token <token>' or set ADS_API_TOKEN")
	}
	return biblib.NewClient(biblib.WithToken(token))
}

// resultCache opens the on-disk search result cache.
func resultCache(s *config.Settings) *cache.Cache {
	c, err := cache.New(s.CacheDir())
	if err != nil {
		exitWithError(ExitConfigError, "opening cache: %v", err)
	}
	return c
}

// openStore opens the local bookkeeping database next to the cache.
func openStore(s *config.Settings) *store.DB {
	path := filepath.Join(s.CacheDir(), "astroref.db")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		exitWithError(ExitConfigError, "creating data dir: %v", err)
	}
	db, err := store.Open(path)
	if err != nil {
		exitWithError(ExitConfigError, "opening database: %v", err)
	}
	return db
}

// adsExitCode maps an ADS client error to an exit code.
func adsExitCode(err error) int {
	switch {
	case ads.IsNotFound(err):
		return ExitNotFound
	case ads.IsAuthError(err):
		return ExitAuthError
	case ads.IsRateLimited(err):
		return ExitAPIError
	default:
		return ExitAPIError
	}
}

// exitADSError reports an ADS error in the selected format and exits.
func exitADSError(err error) {
	exitWithError(adsExitCode(err), "%v", err)
}

// exitBiblibError reports a library API error and exits.
func exitBiblibError(err error) {
	code := ExitAPIError
	switch {
	case biblib.IsNotFound(err):
		code = ExitNotFound
	case errors.Is(err, biblib.ErrAuth):
		code = ExitAuthError
	}
	exitWithError(code, "%v", err)
}

// pdfFolder returns the configured PDF folder, exiting when unset.
func pdfFolder(s *config.Settings) string {
	folder := s.PDFFolder()
	if folder == "" {
		exitWithError(ExitConfigError, "no PDF folder configured; run 'astroref config pdf-dir <path>'")
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		exitWithError(ExitConfigError, "creating PDF folder: %v", err)
	}
	return folder
}

// warnCacheWrite reports a cache persistence failure without failing the
// command; the docs were still fetched.
func warnCacheWrite(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}
