// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/steps/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by days calendar days.
func (m *MockClock) Advance(days int) {
	m.NowTime = m.NowTime.AddDate(0, 0, days)
}

// NewMockClock returns a clock fixed at 09:00 local time on iso.
func NewMockClock(iso string) *MockClock {
	t, err := time.ParseInLocation("2006-01-02", iso, time.Local)
	if err != nil {
		panic(err)
	}
	return &MockClock{NowTime: t.Add(9 * time.Hour)}
}

// SeqIDs is a deterministic domain.IDGenerator producing id-1, id-2, ...
type SeqIDs struct {
	Prefix string
	n      int
}

// NewID returns the next sequential id.
func (s *SeqIDs) NewID() string {
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

// FixedRandom is a domain.Random that always picks Index (modulo n).
type FixedRandom struct {
	Index int
	Calls int
}

// Intn returns Index mod n.
func (f *FixedRandom) Intn(n int) int {
	f.Calls++
	return f.Index % n
}

// MockStateRepository is an in-memory domain.StateRepository.
// Snapshots are stored serialized so callers never share memory with the
// stored copy.
// Fields are ordered to minimize memory padding.
type MockStateRepository struct {
	LoadErr   error
	SaveErr   error
	errorLog  []domain.ErrorLogEntry
	raw       []byte
	Lang      string
	SaveCount int
	mu        sync.Mutex
}

// NewMockStateRepository creates a repository holding a fresh state.
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{}
}

// Seed stores st as if it had been saved.
func (m *MockStateRepository) Seed(st *domain.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(st)
	if err != nil {
		panic(err)
	}
	m.raw = raw
}

// Load returns a copy of the stored state.
func (m *MockStateRepository) Load() (*domain.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.raw == nil {
		return domain.NewState(), nil
	}
	st, err := domain.DecodeState(m.raw)
	if err != nil {
		return domain.NewState(), nil
	}
	return st, nil
}

// Save stores a copy of st.
func (m *MockStateRepository) Save(st *domain.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	m.raw = raw
	m.SaveCount++
	return nil
}

// Stored returns a decoded copy of the stored state without counting as a Load.
func (m *MockStateRepository) Stored() *domain.State {
	st, _ := m.Load()
	return st
}

// Language returns the stored language.
func (m *MockStateRepository) Language() (string, error) {
	return m.Lang, nil
}

// SetLanguage stores the language.
func (m *MockStateRepository) SetLanguage(lang string) error {
	m.Lang = lang
	return nil
}

// ErrorLog returns the stored error log.
func (m *MockStateRepository) ErrorLog() ([]domain.ErrorLogEntry, error) {
	return m.errorLog, nil
}

// AppendErrorLog appends to the capped error log.
func (m *MockStateRepository) AppendErrorLog(entry domain.ErrorLogEntry) error {
	m.errorLog = domain.AppendErrorLog(m.errorLog, entry)
	return nil
}

// ReplaceErrorLog overwrites the error log.
func (m *MockStateRepository) ReplaceErrorLog(entries []domain.ErrorLogEntry) error {
	if over := len(entries) - domain.MaxErrorLogEntries; over > 0 {
		entries = entries[over:]
	}
	m.errorLog = append([]domain.ErrorLogEntry(nil), entries...)
	return nil
}

// MockKVStore is an in-memory domain.KVStore.
type MockKVStore struct {
	Data   map[string]string
	GetErr error
	SetErr error
}

// NewMockKVStore creates an empty store.
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{Data: make(map[string]string)}
}

// Get returns the value for key.
func (m *MockKVStore) Get(key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MockKVStore) Set(key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	return nil
}

// MockVocabularyFetcher is a test double for domain.VocabularyFetcher.
type MockVocabularyFetcher struct {
	Seed  *domain.VocabularySeed
	Err   error
	Calls int
}

// Fetch returns the configured seed or error.
func (m *MockVocabularyFetcher) Fetch(_ context.Context) (*domain.VocabularySeed, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Seed, nil
}

// MockLogger records log lines.
type MockLogger struct {
	Lines []string
}

func (m *MockLogger) record(level, category, msg string) {
	m.Lines = append(m.Lines, fmt.Sprintf("[%s] [%s] %s", level, category, msg))
}

// Debug records a debug line.
func (m *MockLogger) Debug(category, msg string) { m.record("DEBUG", category, msg) }

// Info records an info line.
func (m *MockLogger) Info(category, msg string) { m.record("INFO", category, msg) }

// Warn records a warn line.
func (m *MockLogger) Warn(category, msg string) { m.record("WARN", category, msg) }

// Error records an error line.
func (m *MockLogger) Error(category, msg string) { m.record("ERROR", category, msg) }

// SampleSeed returns a small two-theme vocabulary seed.
func SampleSeed() *domain.VocabularySeed {
	return &domain.VocabularySeed{
		Version: "1",
		Themes: []domain.VocabularyTheme{
			{ID: "food", Title: "Food", Items: []domain.VocabularyItem{
				{ID: "f1", FR: "pain", DE: "Brot"},
				{ID: "f2", FR: "fromage", DE: "Käse"},
			}},
			{ID: "home", Title: "Home", Items: []domain.VocabularyItem{
				{ID: "h1", FR: "maison", DE: "Haus"},
			}},
		},
	}
}

var (
	_ domain.StateRepository   = (*MockStateRepository)(nil)
	_ domain.KVStore           = (*MockKVStore)(nil)
	_ domain.VocabularyFetcher = (*MockVocabularyFetcher)(nil)
	_ domain.Logger            = (*MockLogger)(nil)
	_ domain.Clock             = (*MockClock)(nil)
)
