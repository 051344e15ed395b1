// Package gitstore provides a Git plumbing-based implementation of KVStore
// that keeps a history of saved states.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/infra/crypto"
)

// DefaultKeepSnapshots is the number of history snapshots kept by default.
const DefaultKeepSnapshots = 50

// Store implements domain.KVStore and domain.SnapshotStore using Git
// plumbing (refs and blobs).
//
// Data structure:
//
//	refs/<namespace>/
//	  kv/<key>        → blob (value)
//	  history/<seq>   → blob (snapshot YAML: saved time + value)
//	  salt            → blob (passphrase salt, never encrypted)
type Store struct {
	repo       *git.Repository
	encryptor  *crypto.Encryptor
	now        func() time.Time
	namespace  string
	historyKey string
	keep       int
	mu         sync.RWMutex
}

// Options configures a Store.
type Options struct {
	Now        func() time.Time
	EncryptKey string // 64 hex chars or a passphrase; empty disables encryption
	HistoryKey string // key whose writes are recorded as snapshots
	Namespace  string // defaults to "steps"
	Keep       int    // snapshots kept, defaults to DefaultKeepSnapshots
}

// snapshot is the YAML document stored under history/<seq>.
type snapshot struct {
	Saved time.Time `yaml:"saved"`
	Value string    `yaml:"value"`
}

// Open opens the repository at repoPath, creating a bare repository when
// none exists.
func Open(repoPath string, opts Options) (*Store, error) {
	repo, err := git.PlainOpen(repoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(repoPath, true)
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, opts)
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, opts Options) (*Store, error) {
	s := &Store{
		repo:       repo,
		namespace:  opts.Namespace,
		historyKey: opts.HistoryKey,
		keep:       opts.Keep,
		now:        opts.Now,
	}
	if s.namespace == "" {
		s.namespace = "steps"
	}
	if s.keep <= 0 {
		s.keep = DefaultKeepSnapshots
	}
	if s.now == nil {
		s.now = time.Now
	}

	if opts.EncryptKey != "" {
		enc, err := s.newEncryptor(opts.EncryptKey)
		if err != nil {
			return nil, fmt.Errorf("create encryptor: %w", err)
		}
		s.encryptor = enc
	}
	return s, nil
}

// newEncryptor derives the key, creating the salt ref on first use of a passphrase.
func (s *Store) newEncryptor(secret string) (*crypto.Encryptor, error) {
	var salt []byte
	if !crypto.IsRawKey(secret) {
		var err error
		if salt, err = s.loadSalt(); err != nil {
			return nil, err
		}
	}
	key, err := crypto.DeriveKey(secret, salt)
	if err != nil {
		return nil, err
	}
	return crypto.NewEncryptor(key)
}

func (s *Store) loadSalt() ([]byte, error) {
	ref, err := s.repo.Reference(s.saltRef(), true)
	if err == nil {
		return s.readRawBlob(ref.Hash())
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, fmt.Errorf("get salt ref: %w", err)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.writeRawBlob(salt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Storer.SetReference(plumbing.NewHashReference(s.saltRef(), hash)); err != nil {
		return nil, fmt.Errorf("set salt ref: %w", err)
	}
	return salt, nil
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

func (s *Store) kvRef(key string) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "kv/" + key)
}

func (s *Store) historyPrefix() string {
	return s.refPrefix() + "history/"
}

func (s *Store) historyRef(seq int) plumbing.ReferenceName {
	return plumbing.ReferenceName(fmt.Sprintf("%s%06d", s.historyPrefix(), seq))
}

func (s *Store) saltRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "salt")
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok, err := s.getLocked(key)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, ok, nil
}

func (s *Store) getLocked(key string) (string, bool, error) {
	name := s.kvRef(key)
	ref, err := s.repo.Reference(name, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get ref: %w", err)
	}
	data, err := s.readBlob(ref.Hash(), name.String())
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set stores value under key. Writes of the history key that change the
// value are also recorded as a snapshot.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(key, value)
}

func (s *Store) setLocked(key, value string) error {
	record := false
	if key == s.historyKey && s.historyKey != "" {
		prev, ok, err := s.getLocked(key)
		if err != nil {
			return fmt.Errorf("read previous %s: %w", key, err)
		}
		record = !ok || prev != value
	}

	name := s.kvRef(key)
	hash, err := s.writeBlob([]byte(value), name.String())
	if err != nil {
		return err
	}
	if err := s.repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		return fmt.Errorf("set %s ref: %w", key, err)
	}

	if record {
		return s.recordSnapshot(value)
	}
	return nil
}

func (s *Store) recordSnapshot(value string) error {
	seqs, err := s.historySeqs()
	if err != nil {
		return err
	}
	next := 1
	if len(seqs) > 0 {
		next = seqs[len(seqs)-1] + 1
	}

	data, err := yaml.Marshal(snapshot{Saved: s.now().UTC(), Value: value})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	name := s.historyRef(next)
	hash, err := s.writeBlob(data, name.String())
	if err != nil {
		return err
	}
	if err := s.repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		return fmt.Errorf("set snapshot ref: %w", err)
	}

	seqs = append(seqs, next)
	return s.prune(seqs)
}

// prune removes the oldest snapshots beyond the keep limit.
func (s *Store) prune(seqs []int) error {
	for len(seqs) > s.keep {
		if err := s.repo.Storer.RemoveReference(s.historyRef(seqs[0])); err != nil {
			return fmt.Errorf("remove snapshot %d: %w", seqs[0], err)
		}
		seqs = seqs[1:]
	}
	return nil
}

// historySeqs returns the snapshot sequence numbers in ascending order.
func (s *Store) historySeqs() ([]int, error) {
	refs, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	prefix := s.historyPrefix()
	var seqs []int
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		if seq, parseErr := strconv.Atoi(strings.TrimPrefix(name, prefix)); parseErr == nil {
			seqs = append(seqs, seq)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(seqs)
	return seqs, nil
}

func (s *Store) readSnapshot(seq int) (*snapshot, error) {
	name := s.historyRef(seq)
	ref, err := s.repo.Reference(name, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%w: #%d", domain.ErrSnapshotNotFound, seq)
		}
		return nil, fmt.Errorf("get snapshot ref: %w", err)
	}
	data, err := s.readBlob(ref.Hash(), name.String())
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", seq, err)
	}
	return &snap, nil
}

// ListSnapshots returns saved snapshots, newest first.
func (s *Store) ListSnapshots() ([]domain.SnapshotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seqs, err := s.historySeqs()
	if err != nil {
		return nil, err
	}
	out := make([]domain.SnapshotInfo, 0, len(seqs))
	for i := len(seqs) - 1; i >= 0; i-- {
		snap, err := s.readSnapshot(seqs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SnapshotInfo{Seq: seqs[i], Saved: snap.Saved})
	}
	return out, nil
}

// RestoreSnapshot writes the snapshot's value back under the history key.
// The restore itself is recorded as a new snapshot.
func (s *Store) RestoreSnapshot(seq int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.historyKey == "" {
		return domain.ErrSnapshotsUnsupported
	}
	snap, err := s.readSnapshot(seq)
	if err != nil {
		return err
	}
	return s.setLocked(s.historyKey, snap.Value)
}

// writeBlob writes data to a blob and returns the hash.
// If encryption is enabled, the data is encrypted bound to label.
func (s *Store) writeBlob(data []byte, label string) (plumbing.Hash, error) {
	if s.encryptor != nil {
		encrypted, err := s.encryptor.Encrypt(data, label)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("encrypt data: %w", err)
		}
		data = encrypted
	}
	return s.writeRawBlob(data)
}

func (s *Store) writeRawBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads and optionally decrypts data from a blob.
func (s *Store) readBlob(hash plumbing.Hash, label string) ([]byte, error) {
	data, err := s.readRawBlob(hash)
	if err != nil {
		return nil, err
	}
	if s.encryptor != nil {
		decrypted, err := s.encryptor.Decrypt(data, label)
		if err != nil {
			return nil, fmt.Errorf("decrypt data: %w", err)
		}
		return decrypted, nil
	}
	return data, nil
}

func (s *Store) readRawBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

var (
	_ domain.KVStore       = (*Store)(nil)
	_ domain.SnapshotStore = (*Store)(nil)
)
