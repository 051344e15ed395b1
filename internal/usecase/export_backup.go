package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ExportBackupInput contains the parameters for exporting a backup.
type ExportBackupInput struct{}

// ExportBackupOutput contains the encoded backup document.
type ExportBackupOutput struct {
	Backup *domain.Backup
	Data   []byte // indented JSON
}

// ExportBackup is the use case for serializing the state to a backup document.
type ExportBackup struct {
	days       *shared.DayStore
	repo       domain.StateRepository
	clock      domain.Clock
	appVersion string
}

// NewExportBackup creates a new ExportBackup use case.
func NewExportBackup(days *shared.DayStore, repo domain.StateRepository, clock domain.Clock, appVersion string) *ExportBackup {
	return &ExportBackup{days: days, repo: repo, clock: clock, appVersion: appVersion}
}

// Execute builds the backup document.
func (uc *ExportBackup) Execute(_ context.Context, _ ExportBackupInput) (*ExportBackupOutput, error) {
	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	lang, err := uc.repo.Language()
	if err != nil {
		return nil, err
	}
	errorLog, err := uc.repo.ErrorLog()
	if err != nil {
		return nil, err
	}

	b := domain.NewBackup(day.State, uc.appVersion, domain.NormalizeLanguage(lang), errorLog, uc.clock.Now())
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return &ExportBackupOutput{Backup: b, Data: data}, nil
}
