package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// Import modes.
const (
	ImportOverwrite = "overwrite"
	ImportMerge     = "merge"
)

// ImportBackupInput contains the parameters for importing a backup.
type ImportBackupInput struct {
	Mode    string // overwrite (default) or merge
	Content []byte // backup document
}

// ImportBackupOutput contains a summary of the imported state.
type ImportBackupOutput struct {
	Mode     string
	Language string
	Goals    int
	Days     int
}

// ImportBackup is the use case for restoring a backup document.
type ImportBackup struct {
	days   *shared.DayStore
	repo   domain.StateRepository
	logger domain.Logger
}

// NewImportBackup creates a new ImportBackup use case.
func NewImportBackup(days *shared.DayStore, repo domain.StateRepository, logger domain.Logger) *ImportBackup {
	return &ImportBackup{days: days, repo: repo, logger: logger}
}

// Execute validates the document and applies it. An invalid document
// leaves the stored state untouched.
func (uc *ImportBackup) Execute(_ context.Context, in ImportBackupInput) (*ImportBackupOutput, error) {
	mode := in.Mode
	if mode == "" {
		mode = ImportOverwrite
	}
	if mode != ImportOverwrite && mode != ImportMerge {
		return nil, fmt.Errorf("%w: unknown import mode %q", domain.ErrInvalidBackup, mode)
	}

	b, err := domain.ParseBackup(in.Content)
	if err != nil {
		uc.logger.Warn("backup", err.Error())
		return nil, err
	}

	next := b.State
	lang := b.Language
	errorLog := b.ErrorLog
	if mode == ImportMerge {
		current, err := uc.repo.Load()
		if err != nil {
			return nil, err
		}
		next = engine.Merge(current, b.State)
		if cur, err := uc.repo.Language(); err == nil && cur != "" {
			lang = cur
		}
		existing, err := uc.repo.ErrorLog()
		if err != nil {
			return nil, err
		}
		errorLog = append(existing, b.ErrorLog...)
	}

	if err := uc.days.Replace(next); err != nil {
		return nil, err
	}
	if err := uc.repo.SetLanguage(lang); err != nil {
		return nil, err
	}
	if err := uc.repo.ReplaceErrorLog(errorLog); err != nil {
		return nil, err
	}

	uc.logger.Info("backup", fmt.Sprintf("imported backup (%s)", mode))
	return &ImportBackupOutput{
		Mode:     mode,
		Language: lang,
		Goals:    len(next.Goals),
		Days:     len(next.DaySummary),
	}, nil
}
