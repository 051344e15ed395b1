package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
)

// MigrateStoreInput contains parameters for MigrateStore.
type MigrateStoreInput struct {
	// Force overwrites destination keys that hold different data.
	Force bool
}

// MigrateStoreOutput contains migration results.
type MigrateStoreOutput struct {
	Total    int
	Migrated int
	Skipped  int // identical in both stores
	Missing  int // absent from the source
}

// MigrateStore copies the raw documents of one key/value backend into another.
type MigrateStore struct {
	source domain.KVStore
	dest   domain.KVStore
	logger domain.Logger
	keys   []string
}

// NewMigrateStore creates a new MigrateStore use case.
func NewMigrateStore(source, dest domain.KVStore, keys []string, logger domain.Logger) *MigrateStore {
	return &MigrateStore{source: source, dest: dest, keys: keys, logger: logger}
}

// Execute copies every key. Without Force it fails before writing anything
// when the destination already holds a different value.
func (uc *MigrateStore) Execute(_ context.Context, in MigrateStoreInput) (*MigrateStoreOutput, error) {
	if uc.source == nil || uc.dest == nil {
		return nil, errors.New("source or destination store is nil")
	}

	type pending struct {
		key, value string
	}
	out := &MigrateStoreOutput{Total: len(uc.keys)}
	var writes []pending
	for _, key := range uc.keys {
		value, ok, err := uc.source.Get(key)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}
		if !ok {
			out.Missing++
			continue
		}
		existing, found, err := uc.dest.Get(key)
		if err != nil {
			return nil, fmt.Errorf("read destination %s: %w", key, err)
		}
		switch {
		case found && existing == value:
			out.Skipped++
			continue
		case found && !in.Force:
			return nil, fmt.Errorf("%w: %s", domain.ErrMigrationConflict, key)
		}
		writes = append(writes, pending{key: key, value: value})
	}

	for _, w := range writes {
		if err := uc.dest.Set(w.key, w.value); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", w.key, err)
		}
		out.Migrated++
	}
	uc.logger.Info("store", fmt.Sprintf("migrated %d key(s), %d unchanged", out.Migrated, out.Skipped))
	return out, nil
}
