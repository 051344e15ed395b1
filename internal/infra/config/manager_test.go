package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func TestManager_ConfigPaths(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, "[log]\nlevel = \"debug\"")

	infos := NewManagerWithGlobalDir(dataDir, globalDir).ConfigPaths()

	require.Len(t, infos, 2)
	assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), infos[0].Path)
	assert.True(t, infos[0].Exists)
	assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), infos[1].Path)
	assert.False(t, infos[1].Exists)
}

func TestManager_InitConfig(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "steps")
	manager := NewManagerWithGlobalDir(dataDir, "")

	path, err := manager.InitConfig()
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), string(content))

	// The template itself loads without warnings.
	cfg, err := NewLoaderWithGlobalDir(dataDir, "", nil).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.StoreJSON, cfg.Store.Backend)

	_, err = manager.InitConfig()
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
