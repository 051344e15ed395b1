package domain

import (
	_ "embed"
	"path/filepath"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented config file written by `steps config init`.
func ConfigTemplate() string {
	return configTemplateContent
}

// Store backends.
const (
	StoreJSON   = "json"
	StoreBolt   = "bolt"
	StoreSQLite = "sqlite"
	StoreGit    = "git"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings   []string         `toml:"-"`
	Store      StoreConfig      `toml:"store"`
	Vocabulary VocabularyConfig `toml:"vocabulary"`
	Log        LogConfig        `toml:"log"`
	DataDir    string           `toml:"-"`
	Onboarding OnboardingConfig `toml:"onboarding"`
}

// StoreConfig holds settings from the [store] section.
type StoreConfig struct {
	Backend    string `toml:"backend,omitempty"`     // json (default), bolt, sqlite or git
	EncryptKey string `toml:"encrypt_key,omitempty"` // 64 hex chars, git backend only
}

// VocabularyConfig holds settings from the [vocabulary] section.
type VocabularyConfig struct {
	SeedURL        string `toml:"seed_url,omitempty"`
	SeedFile       string `toml:"seed_file,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// OnboardingConfig holds settings from the [onboarding] section.
type OnboardingConfig struct {
	Fast bool `toml:"fast,omitempty"` // shorter unlock gaps and feature thresholds
}

// Default configuration values.
const (
	DefaultLogLevel          = "info"
	DefaultVocabularyTimeout = 10
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store:      StoreConfig{Backend: StoreJSON},
		Log:        LogConfig{Level: DefaultLogLevel},
		Vocabulary: VocabularyConfig{TimeoutSeconds: DefaultVocabularyTimeout},
	}
}

// Directory and file names.
const (
	AppDirName     = "steps"
	ConfigFileName = "config.toml"
	EnvFileName    = ".env"
)

// DataDir returns the data directory under dataHome (XDG_DATA_HOME or ~/.local/share).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// LogPath returns the path to the log file.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "steps.log")
}

// StorePath returns the path of the store for backend.
func StorePath(dataDir, backend string) string {
	switch backend {
	case StoreBolt:
		return filepath.Join(dataDir, "steps.bolt")
	case StoreSQLite:
		return filepath.Join(dataDir, "steps.db")
	case StoreGit:
		return filepath.Join(dataDir, "repo")
	default:
		return filepath.Join(dataDir, "state.json")
	}
}
