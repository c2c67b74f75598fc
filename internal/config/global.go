package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents preferences stored in
// ~/.config/astroref/config.yml.
type GlobalConfig struct {
	PDFReader string `yaml:"pdf_reader,omitempty"`
	CacheDir  string `yaml:"cache_dir,omitempty"`
}

// GlobalConfigFile is the config file name under the app config dir.
const GlobalConfigFile = "config.yml"

var (
	globalConfigMu    sync.Mutex
	globalConfigCache *GlobalConfig
)

// GlobalConfigPath returns the path to the global config file. Respects
// XDG_CONFIG_HOME via os.UserConfigDir.
func GlobalConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppDirName, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file. Returns an empty
// config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config. Useful for
// testing and after user edits.
func ResetGlobalConfigCache() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfigCache = nil
}

// GetPDFReader returns the configured PDF reader preference, or "".
func GetPDFReader() string {
	cfg, _ := LoadGlobalConfig()
	if cfg == nil {
		return ""
	}
	return cfg.PDFReader
}
