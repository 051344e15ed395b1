package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
)

// RecordFaultInput describes an unexpected runtime fault.
type RecordFaultInput struct {
	Kind    string // e.g. "panic"
	Payload string // truncated to domain.MaxErrorPayload runes
}

// RecordFault is the use case for appending a fault to the capped error log.
type RecordFault struct {
	repo       domain.StateRepository
	clock      domain.Clock
	logger     domain.Logger
	appVersion string
}

// NewRecordFault creates a new RecordFault use case.
func NewRecordFault(repo domain.StateRepository, clock domain.Clock, logger domain.Logger, appVersion string) *RecordFault {
	return &RecordFault{repo: repo, clock: clock, logger: logger, appVersion: appVersion}
}

// Execute stores the fault.
func (uc *RecordFault) Execute(_ context.Context, in RecordFaultInput) error {
	entry := domain.NewErrorLogEntry(in.Kind, in.Payload, uc.appVersion, uc.clock.Now())
	uc.logger.Error(in.Kind, entry.Payload)
	return uc.repo.AppendErrorLog(entry)
}
