// Package statestore persists the State snapshot and its side documents
// on any domain.KVStore.
package statestore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
)

// Storage keys.
const (
	KeyState    = "steps.state"
	KeyLanguage = "steps.language"
	KeyErrorLog = "steps.errorLog"
)

// Keys returns every key the repository writes.
func Keys() []string {
	return []string{KeyState, KeyLanguage, KeyErrorLog}
}

// Repository implements domain.StateRepository.
type Repository struct {
	kv  domain.KVStore
	log domain.Logger
}

// New creates a repository over kv. A nil logger discards warnings.
func New(kv domain.KVStore, log domain.Logger) *Repository {
	if log == nil {
		log = domain.NopLogger{}
	}
	return &Repository{kv: kv, log: log}
}

// Load returns the stored state, or a fresh one when nothing usable is stored.
func (r *Repository) Load() (*domain.State, error) {
	raw, ok, err := r.kv.Get(KeyState)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !ok || raw == "" {
		return domain.NewState(), nil
	}
	st, err := domain.DecodeState([]byte(raw))
	if err != nil {
		if errors.Is(err, domain.ErrCorruptState) {
			r.log.Warn("store", fmt.Sprintf("discarding unreadable state: %v", err))
			return domain.NewState(), nil
		}
		return nil, err
	}
	return st, nil
}

// Save writes the normalized state.
func (r *Repository) Save(st *domain.State) error {
	domain.Normalize(st)
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := r.kv.Set(KeyState, string(data)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Language returns the stored UI language, "" when unset.
func (r *Repository) Language() (string, error) {
	v, _, err := r.kv.Get(KeyLanguage)
	if err != nil {
		return "", fmt.Errorf("load language: %w", err)
	}
	return v, nil
}

// SetLanguage stores lang verbatim; callers normalize it.
func (r *Repository) SetLanguage(lang string) error {
	if err := r.kv.Set(KeyLanguage, lang); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

// ErrorLog returns the stored error log. A malformed log reads as empty.
func (r *Repository) ErrorLog() ([]domain.ErrorLogEntry, error) {
	raw, ok, err := r.kv.Get(KeyErrorLog)
	if err != nil {
		return nil, fmt.Errorf("load error log: %w", err)
	}
	entries := []domain.ErrorLogEntry{}
	if !ok || raw == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.log.Warn("store", fmt.Sprintf("discarding unreadable error log: %v", err))
		return []domain.ErrorLogEntry{}, nil
	}
	return entries, nil
}

// AppendErrorLog adds entry, keeping the newest domain.MaxErrorLogEntries.
func (r *Repository) AppendErrorLog(entry domain.ErrorLogEntry) error {
	entries, err := r.ErrorLog()
	if err != nil {
		return err
	}
	return r.writeErrorLog(domain.AppendErrorLog(entries, entry))
}

// ReplaceErrorLog overwrites the error log, used by backup import.
func (r *Repository) ReplaceErrorLog(entries []domain.ErrorLogEntry) error {
	if len(entries) > domain.MaxErrorLogEntries {
		entries = entries[len(entries)-domain.MaxErrorLogEntries:]
	}
	return r.writeErrorLog(entries)
}

func (r *Repository) writeErrorLog(entries []domain.ErrorLogEntry) error {
	if entries == nil {
		entries = []domain.ErrorLogEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode error log: %w", err)
	}
	if err := r.kv.Set(KeyErrorLog, string(data)); err != nil {
		return fmt.Errorf("save error log: %w", err)
	}
	return nil
}

var _ domain.StateRepository = (*Repository)(nil)
