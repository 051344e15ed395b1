package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
)

// ListSnapshotsInput contains the parameters for listing snapshots.
type ListSnapshotsInput struct{}

// ListSnapshotsOutput contains saved snapshots, newest first.
type ListSnapshotsOutput struct {
	Snapshots []domain.SnapshotInfo
}

// ListSnapshots is the use case for listing prior state snapshots.
type ListSnapshots struct {
	snapshots domain.SnapshotStore // nil when the backend keeps no history
}

// NewListSnapshots creates a new ListSnapshots use case.
func NewListSnapshots(snapshots domain.SnapshotStore) *ListSnapshots {
	return &ListSnapshots{snapshots: snapshots}
}

// Execute lists the snapshots.
func (uc *ListSnapshots) Execute(_ context.Context, _ ListSnapshotsInput) (*ListSnapshotsOutput, error) {
	if uc.snapshots == nil {
		return nil, domain.ErrSnapshotsUnsupported
	}
	list, err := uc.snapshots.ListSnapshots()
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return &ListSnapshotsOutput{Snapshots: list}, nil
}

// RestoreSnapshotInput contains the parameters for restoring a snapshot.
type RestoreSnapshotInput struct {
	Seq int
}

// RestoreSnapshotOutput is empty; restore has no result beyond success.
type RestoreSnapshotOutput struct{}

// RestoreSnapshot is the use case for making a prior snapshot current.
type RestoreSnapshot struct {
	snapshots domain.SnapshotStore
	logger    domain.Logger
}

// NewRestoreSnapshot creates a new RestoreSnapshot use case.
func NewRestoreSnapshot(snapshots domain.SnapshotStore, logger domain.Logger) *RestoreSnapshot {
	return &RestoreSnapshot{snapshots: snapshots, logger: logger}
}

// Execute restores the snapshot.
func (uc *RestoreSnapshot) Execute(_ context.Context, in RestoreSnapshotInput) (*RestoreSnapshotOutput, error) {
	if uc.snapshots == nil {
		return nil, domain.ErrSnapshotsUnsupported
	}
	if err := uc.snapshots.RestoreSnapshot(in.Seq); err != nil {
		return nil, err
	}
	uc.logger.Info("history", fmt.Sprintf("restored snapshot %d", in.Seq))
	return &RestoreSnapshotOutput{}, nil
}
