// Package config handles credentials and user settings: the ADS API
// token, ORCID id, and PDF storage directory, each persisted as a
// single-line file, plus a YAML global config for preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// AppDirName is the directory name used under the user config and cache
// roots.
const AppDirName = "astroref"

// Settings is the process-wide credential and path store. Values are read
// lazily on first access, held in memory, and refreshed only by Reload or
// an explicit Set. A missing file is a valid "unset" state, not an error.
type Settings struct {
	mu sync.Mutex

	tokenFile     string
	orcidFile     string
	pdfFolderFile string
	cacheDir      string

	token     *string
	orcid     *string
	pdfFolder *string
}

// NewSettings creates a Settings store under the user's config directory.
// The token lives in ~/.ads/dev_key for consistency with the wider ADS
// tooling ecosystem; everything else is ours.
func NewSettings() (*Settings, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home dir: %w", err)
	}
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache dir: %w", err)
	}

	dir := filepath.Join(configDir, AppDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}

	return &Settings{
		tokenFile:     filepath.Join(home, ".ads", "dev_key"),
		orcidFile:     filepath.Join(dir, "orcid"),
		pdfFolderFile: filepath.Join(dir, "pdfs"),
		cacheDir:      filepath.Join(cacheRoot, AppDirName),
	}, nil
}

// NewSettingsAt creates a Settings store rooted at dir (for testing).
func NewSettingsAt(dir string) *Settings {
	return &Settings{
		tokenFile:     filepath.Join(dir, "dev_key"),
		orcidFile:     filepath.Join(dir, "orcid"),
		pdfFolderFile: filepath.Join(dir, "pdfs"),
		cacheDir:      filepath.Join(dir, "cache"),
	}
}

// Token returns the ADS API token, or "" when unset. The ADS_API_TOKEN
// environment variable takes precedence over the key file.
func (s *Settings) Token() string {
	if token := os.Getenv("ADS_API_TOKEN"); token != "" {
		return token
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(&s.token, s.tokenFile)
}

// SetToken persists the ADS API token.
func (s *Settings) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(&s.token, s.tokenFile, token)
}

// ORCID returns the user's ORCID id, or "" when unset.
func (s *Settings) ORCID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(&s.orcid, s.orcidFile)
}

// SetORCID persists the ORCID id.
func (s *Settings) SetORCID(orcid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(&s.orcid, s.orcidFile, orcid)
}

// PDFFolder returns the PDF storage directory, or "" when unset.
func (s *Settings) PDFFolder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExpandPath(s.load(&s.pdfFolder, s.pdfFolderFile))
}

// SetPDFFolder persists the PDF storage directory.
func (s *Settings) SetPDFFolder(folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(&s.pdfFolder, s.pdfFolderFile, folder)
}

// CacheDir returns the result-cache directory. The global config may
// override the default.
func (s *Settings) CacheDir() string {
	if cfg, err := LoadGlobalConfig(); err == nil && cfg.CacheDir != "" {
		return ExpandPath(cfg.CacheDir)
	}
	return s.cacheDir
}

// Reload drops all cached values so the next access re-reads from disk.
func (s *Settings) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.orcid = nil
	s.pdfFolder = nil
}

// load returns the cached value, reading the backing file on first use.
func (s *Settings) load(cached **string, path string) string {
	if *cached == nil {
		v := readKeyFile(path)
		*cached = &v
	}
	return **cached
}

// store writes the value to disk and updates the in-memory copy.
func (s *Settings) store(cached **string, path, value string) error {
	if err := writeKeyFile(path, value); err != nil {
		return err
	}
	v := value
	*cached = &v
	return nil
}

// readKeyFile returns the first line of a single-value file, trimmed.
// A missing file is "unset", not an error.
func readKeyFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line)
}

// writeKeyFile writes a single-value file atomically: an in-flight
// concurrent read must never observe a torn token.
func writeKeyFile(path, value string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(value + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ExpandPath expands a leading ~ to the user's home directory. Returns
// the path unchanged otherwise.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
