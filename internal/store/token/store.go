package token

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "session"
	// Key is the fixed name the bearer credential is persisted under.
	Key = "token"
)

// ErrPathRequired is returned when a BoltStore is created without a file path.
var ErrPathRequired = errors.New("token store path is required")

// Store persists the single bearer credential across process restarts.
type Store interface {
	// Load returns the persisted credential, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	Delete() error
}

// BoltStore keeps the credential in a BoltDB file. The database is opened
// per operation so concurrent CLI invocations do not hold the file lock.
type BoltStore struct {
	path string
}

// NewBoltStore returns a store backed by the file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	return &BoltStore{path: path}, nil
}

// Path returns the database file location.
func (s *BoltStore) Path() string {
	return s.path
}

func (s *BoltStore) open() (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, err
	}
	return bolt.Open(s.path, 0o600, &bolt.Options{Timeout: time.Second})
}

// Load reads the persisted credential.
func (s *BoltStore) Load() (string, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	var out string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		out = string(b.Get([]byte(Key)))
		return nil
	})
	return out, err
}

// Save overwrites the persisted credential.
func (s *BoltStore) Save(token string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(Key), []byte(token))
	})
}

// Delete removes the persisted credential. Deleting an absent entry is a no-op.
func (s *BoltStore) Delete() error {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(Key))
	})
}

// MemoryStore keeps the credential in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a MemoryStore seeded with token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
