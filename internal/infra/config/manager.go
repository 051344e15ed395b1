package config

import (
	"os"
	"path/filepath"

	"github.com/runoshun/steps/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/steps)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// ConfigPaths returns the global and data-dir config file locations, in merge order.
func (m *Manager) ConfigPaths() []domain.ConfigInfo {
	var infos []domain.ConfigInfo
	if m.globalConfDir != "" {
		infos = append(infos, configInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName)))
	}
	infos = append(infos, configInfo(filepath.Join(m.dataDir, domain.ConfigFileName)))
	return infos
}

func configInfo(path string) domain.ConfigInfo {
	_, err := os.Stat(path)
	return domain.ConfigInfo{Path: path, Exists: err == nil}
}

// InitConfig writes the config template to the data-dir config file and
// returns its path.
func (m *Manager) InitConfig() (string, error) {
	path := filepath.Join(m.dataDir, domain.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, domain.ErrConfigExists
	}
	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(domain.ConfigTemplate()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}
