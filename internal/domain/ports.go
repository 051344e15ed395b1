package domain

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// KVStore is the raw key/value persistence collaborator.
type KVStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(key, value string) error
}

// SnapshotStore is implemented by KV backends that keep a history of
// saved states.
type SnapshotStore interface {
	// ListSnapshots returns saved snapshots, newest first.
	ListSnapshots() ([]SnapshotInfo, error)

	// RestoreSnapshot makes the snapshot with the given sequence current.
	RestoreSnapshot(seq int) error
}

// SnapshotInfo describes one saved state snapshot.
type SnapshotInfo struct {
	Saved time.Time
	Seq   int
}

// StateRepository loads and saves the whole State snapshot.
type StateRepository interface {
	// Load returns the stored state. Malformed data yields a fresh default
	// state, never an error.
	Load() (*State, error)

	// Save persists the whole state.
	Save(st *State) error

	// Language returns the stored UI language ("" when unset).
	Language() (string, error)

	// SetLanguage stores the UI language.
	SetLanguage(lang string) error

	// ErrorLog returns the client error log, oldest first.
	ErrorLog() ([]ErrorLogEntry, error)

	// AppendErrorLog adds an entry to the capped error log.
	AppendErrorLog(entry ErrorLogEntry) error

	// ReplaceErrorLog overwrites the error log with the newest entries.
	ReplaceErrorLog(entries []ErrorLogEntry) error
}

// VocabularyFetcher loads the themed word-list document.
type VocabularyFetcher interface {
	Fetch(ctx context.Context) (*VocabularySeed, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults <- global <- data dir <- env).
	Load() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// ConfigPaths returns the global and data-dir config paths.
	ConfigPaths() []ConfigInfo

	// InitConfig writes the config template to the data-dir config file.
	InitConfig() (string, error)
}

// ConfigInfo describes a config file location.
type ConfigInfo struct {
	Path   string
	Exists bool
}

// Logger provides category based logging.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Random picks uniformly among n candidates.
type Random interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// RealRandom uses the process-wide math/rand/v2 source.
type RealRandom struct{}

// Intn returns a pseudo-random value in [0, n).
func (RealRandom) Intn(n int) int {
	return rand.IntN(n)
}

// IDGenerator creates entity ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator creates random UUIDv4 ids.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
