// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/steps/internal/domain"
)

// Environment variables that override file configuration.
const (
	EnvHome           = "STEPS_HOME"
	EnvStore          = "STEPS_STORE"
	EnvLogLevel       = "STEPS_LOG_LEVEL"
	EnvFastOnboarding = "STEPS_FAST_ONBOARDING"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/steps)
}

// NewLoader creates a new Loader reading the process environment.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory and environment lookup. A nil getenv disables env overrides.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
		getenv:        getenv,
	}
}

// LoadEnvFile loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ResolveDataDir returns STEPS_HOME, or the steps directory under
// XDG_DATA_HOME (default ~/.local/share).
func ResolveDataDir(getenv func(string) string) string {
	if home := getenv(EnvHome); home != "" {
		return home
	}
	dataHome := getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence, lowest first: defaults, global file, data-dir file, environment.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if global != nil {
		base = mergeConfigs(base, global)
	}

	local, err := l.LoadDataDir()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	l.applyEnv(base)
	base.DataDir = l.dataDir
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadDataDir returns only the data-dir configuration.
func (l *Loader) LoadDataDir() (*domain.Config, error) {
	if l.dataDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
}

func (l *Loader) applyEnv(cfg *domain.Config) {
	if v := l.getenv(EnvStore); v != "" {
		cfg.Store.Backend = v
	}
	if v := l.getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := l.getenv(EnvFastOnboarding); v != "" {
		fast, err := strconv.ParseBool(v)
		if err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid %s: %q", EnvFastOnboarding, v))
		} else {
			cfg.Onboarding.Fast = fast
		}
	}
	switch cfg.Store.Backend {
	case domain.StoreJSON, domain.StoreBolt, domain.StoreSQLite, domain.StoreGit:
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown store backend: %s", cfg.Store.Backend))
	}
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	section := func(name string, value any, apply func(k string, v any) bool) {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("[%s] must be a table", name))
			return
		}
		for k, v := range m {
			if !apply(k, v) {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", name, k))
			}
		}
	}

	for name, value := range raw {
		switch name {
		case "store":
			section(name, value, func(k string, v any) bool {
				switch k {
				case "backend":
					res.Store.Backend, _ = v.(string)
				case "encrypt_key":
					res.Store.EncryptKey, _ = v.(string)
				default:
					return false
				}
				return true
			})
		case "onboarding":
			section(name, value, func(k string, v any) bool {
				if k != "fast" {
					return false
				}
				res.Onboarding.Fast, _ = v.(bool)
				return true
			})
		case "log":
			section(name, value, func(k string, v any) bool {
				if k != "level" {
					return false
				}
				res.Log.Level, _ = v.(string)
				return true
			})
		case "vocabulary":
			section(name, value, func(k string, v any) bool {
				switch k {
				case "seed_url":
					res.Vocabulary.SeedURL, _ = v.(string)
				case "seed_file":
					res.Vocabulary.SeedFile, _ = v.(string)
				case "timeout_seconds":
					if n, ok := v.(int64); ok {
						res.Vocabulary.TimeoutSeconds = int(n)
					}
				default:
					return false
				}
				return true
			})
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", name))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.EncryptKey != "" {
		result.Store.EncryptKey = override.Store.EncryptKey
	}
	if override.Onboarding.Fast {
		result.Onboarding.Fast = true
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Vocabulary.SeedURL != "" {
		result.Vocabulary.SeedURL = override.Vocabulary.SeedURL
	}
	if override.Vocabulary.SeedFile != "" {
		result.Vocabulary.SeedFile = override.Vocabulary.SeedFile
	}
	if override.Vocabulary.TimeoutSeconds > 0 {
		result.Vocabulary.TimeoutSeconds = override.Vocabulary.TimeoutSeconds
	}
	return &result
}
