package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Config   *domain.Config      // Effective configuration
	Files    []domain.ConfigInfo // Config files in merge order
	StoreAt  string              // Path of the active store
	LogPath  string
	Warnings []string
}

// ShowConfig displays the effective configuration and its sources.
type ShowConfig struct {
	configManager domain.ConfigManager
	config        *domain.Config
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, config *domain.Config) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		config:        config,
	}
}

// Execute retrieves configuration information.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	return &ShowConfigOutput{
		Config:   uc.config,
		Files:    uc.configManager.ConfigPaths(),
		StoreAt:  domain.StorePath(uc.config.DataDir, uc.config.Store.Backend),
		LogPath:  domain.LogPath(uc.config.DataDir),
		Warnings: uc.config.Warnings,
	}, nil
}
