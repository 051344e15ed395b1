package domain

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// BackupSchemaVersion is the version of the backup document framing.
const BackupSchemaVersion = 1

// Error log limits.
const (
	MaxErrorLogEntries = 20
	MaxErrorPayload    = 500
)

// Backup is the export/import document.
type Backup struct {
	State         *State          `json:"state"`
	Version       string          `json:"version"`
	ExportedAt    string          `json:"exportedAt"`
	Language      string          `json:"language"`
	ErrorLog      []ErrorLogEntry `json:"errorLog"`
	SchemaVersion int             `json:"schemaVersion"`
}

// ErrorLogEntry is one recorded client fault.
type ErrorLogEntry struct {
	Type       string `json:"type"`
	Payload    string `json:"payload"`
	Timestamp  string `json:"timestamp"`
	AppVersion string `json:"appVersion"`
}

// NewBackup frames st for export.
func NewBackup(st *State, appVersion, lang string, errorLog []ErrorLogEntry, now time.Time) *Backup {
	if errorLog == nil {
		errorLog = []ErrorLogEntry{}
	}
	return &Backup{
		SchemaVersion: BackupSchemaVersion,
		Version:       appVersion,
		ExportedAt:    now.UTC().Format(time.RFC3339),
		Language:      lang,
		State:         st,
		ErrorLog:      errorLog,
	}
}

// ParseBackup validates and decodes a backup document.
// The state must carry goals and todayTasks arrays and a weeklyPlans object.
func ParseBackup(raw []byte) (*Backup, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidBackup)
	}

	var state map[string]any
	if err := json.Unmarshal(doc["state"], &state); err != nil || state == nil {
		return nil, fmt.Errorf("%w: missing state", ErrInvalidBackup)
	}
	if _, ok := state["goals"].([]any); !ok {
		return nil, fmt.Errorf("%w: state.goals must be an array", ErrInvalidBackup)
	}
	if _, ok := state["todayTasks"].([]any); !ok {
		return nil, fmt.Errorf("%w: state.todayTasks must be an array", ErrInvalidBackup)
	}
	if _, ok := state["weeklyPlans"].(map[string]any); !ok {
		return nil, fmt.Errorf("%w: state.weeklyPlans must be an object", ErrInvalidBackup)
	}

	st, err := DecodeState(doc["state"])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	b := &Backup{State: st}
	// Framing fields are informational; bad values are ignored.
	_ = json.Unmarshal(doc["schemaVersion"], &b.SchemaVersion)
	_ = json.Unmarshal(doc["version"], &b.Version)
	_ = json.Unmarshal(doc["exportedAt"], &b.ExportedAt)
	_ = json.Unmarshal(doc["language"], &b.Language)
	var errorLog []ErrorLogEntry
	if err := json.Unmarshal(doc["errorLog"], &errorLog); err == nil {
		b.ErrorLog = errorLog
	}
	b.Language = NormalizeLanguage(b.Language)
	return b, nil
}

// NewErrorLogEntry builds an entry with the payload truncated to MaxErrorPayload runes.
func NewErrorLogEntry(kind, payload, appVersion string, now time.Time) ErrorLogEntry {
	if utf8.RuneCountInString(payload) > MaxErrorPayload {
		payload = string([]rune(payload)[:MaxErrorPayload])
	}
	return ErrorLogEntry{
		Type:       kind,
		Payload:    payload,
		Timestamp:  now.UTC().Format(time.RFC3339),
		AppVersion: appVersion,
	}
}

// AppendErrorLog appends entry and keeps the newest MaxErrorLogEntries.
func AppendErrorLog(log []ErrorLogEntry, entry ErrorLogEntry) []ErrorLogEntry {
	log = append(log, entry)
	if over := len(log) - MaxErrorLogEntries; over > 0 {
		log = append([]ErrorLogEntry(nil), log[over:]...)
	}
	return log
}
