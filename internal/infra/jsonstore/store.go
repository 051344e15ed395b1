// Package jsonstore provides a JSON file-based implementation of KVStore.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/steps/internal/domain"
)

// storeFormat is the version of the file layout.
const storeFormat = 1

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Entries map[string]string `json:"entries"`
	Meta    meta              `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Format int `json:"format"`
}

// CorruptSuffix is appended to the path of a store file that could not be
// parsed when it is moved aside.
const CorruptSuffix = ".corrupt"

// Store implements domain.KVStore using a single JSON file.
type Store struct {
	log      domain.Logger
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
// A nil logger discards warnings.
func New(path string, log domain.Logger) *Store {
	if log == nil {
		log = domain.NopLogger{}
	}
	return &Store{
		log:      log,
		path:     path,
		lockPath: path + ".lock",
	}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.transact(false, func(data *storeData) bool {
		value, ok = data.Entries[key]
		return false
	})
	return value, ok, err
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	return s.transact(true, func(data *storeData) bool {
		if old, ok := data.Entries[key]; ok && old == value {
			return false
		}
		data.Entries[key] = value
		return true
	})
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// transact reads the file under a shared or exclusive flock and runs fn.
// The file is rewritten only when fn reports a change, which requires
// exclusive.
func (s *Store) transact(exclusive bool, fn func(*storeData) bool) error {
	mode := syscall.LOCK_SH
	if exclusive {
		mode = syscall.LOCK_EX
	}
	l, err := lockFile(s.lockPath, mode)
	if err != nil {
		return err
	}
	defer l.unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if !fn(data) || !exclusive {
		return nil
	}
	return s.write(data)
}

// fileLock is a held flock on a sidecar file.
type fileLock struct {
	f *os.File
}

func lockFile(path string, mode int) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), mode); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return &fileLock{f: f}, nil
}

func (l *fileLock) unlock() {
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	_ = l.f.Close()
}

// read loads the file. A missing file is an empty store. A file that is
// not valid JSON is moved to path+CorruptSuffix and reads as empty.
func (s *Store) read() (*storeData, error) {
	data := &storeData{Meta: meta{Format: storeFormat}}

	content, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(content) > 0 {
		if perr := json.Unmarshal(content, data); perr != nil {
			if err := s.quarantine(perr); err != nil {
				return nil, err
			}
			data = &storeData{Meta: meta{Format: storeFormat}}
		}
	}

	if data.Entries == nil {
		data.Entries = make(map[string]string)
	}
	return data, nil
}

func (s *Store) quarantine(cause error) error {
	dst := s.path + CorruptSuffix
	if err := os.Rename(s.path, dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("move aside unreadable store file: %w", err)
	}
	s.log.Warn("store", fmt.Sprintf("unreadable store file moved to %s: %v", dst, cause))
	return nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o600); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

var _ domain.KVStore = (*Store)(nil)
