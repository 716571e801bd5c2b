// Package storage provides session stores for questionnaire answers.
// Supports multiple backends: memory, file, SQLite, PostgreSQL, Redis.
// Each session is private to one user; stores only need to be safe across sessions.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"fee-wizard/core/types"
	"fee-wizard/internal/config"
	"fee-wizard/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// Store is the session store interface
type Store interface {
	// Load returns the answers for a session, or a TypeNotFound error if absent or expired
	Load(ctx context.Context, id string) (*types.AnswerSet, error)

	// Save stores the answers and restarts the session's TTL
	Save(ctx context.Context, id string, answers *types.AnswerSet) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// Close closes the store
	Close() error
}

// NewSessionID returns a fresh random session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id looks like one issued by NewSessionID
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(id string) error {
	return errors.NotFound("session", id)
}

func encode(a *types.AnswerSet) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "encode session", err)
	}
	return data, nil
}

func decode(data []byte) (*types.AnswerSet, error) {
	var a types.AnswerSet
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "decode session", err)
	}
	return &a, nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-memory storage backend.
// Entries are stored encoded so callers never share an AnswerSet across requests.
type MemoryStore struct {
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*types.AnswerSet, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, notFound(id)
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, notFound(id)
	}
	return decode(entry.data)
}

func (s *MemoryStore) Save(ctx context.Context, id string, answers *types.AnswerSet) error {
	data, err := encode(answers)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// PurgeExpired deletes every expired session and returns how many were removed.
// Without a TTL sessions never expire.
func (s *MemoryStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int64
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) Close() error {
	return nil
}

// FileStore is a file-based storage backend, one JSON file per session
type FileStore struct {
	basePath string
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

type fileRecord struct {
	ExpiresAt time.Time        `json:"expires_at"`
	Answers   *types.AnswerSet `json:"answers"`
}

// NewFileStore creates a file store
func NewFileStore(basePath string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "create session directory", err)
	}
	return &FileStore{basePath: basePath, ttl: ttl, now: time.Now}, nil
}

func (s *FileStore) path(id string) (string, error) {
	// ids become file names, so only accept the ones we issue
	if !ValidSessionID(id) {
		return "", notFound(id)
	}
	return filepath.Join(s.basePath, id+".json"), nil
}

func (s *FileStore) Load(ctx context.Context, id string) (*types.AnswerSet, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.TypeStorage, "read session", err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "decode session", err)
	}
	if s.ttl > 0 && s.now().After(rec.ExpiresAt) {
		_ = s.Delete(ctx, id)
		return nil, notFound(id)
	}
	if rec.Answers == nil {
		return types.NewAnswerSet(), nil
	}
	return rec.Answers, nil
}

func (s *FileStore) Save(ctx context.Context, id string, answers *types.AnswerSet) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(fileRecord{ExpiresAt: s.now().Add(s.ttl), Answers: answers})
	if err != nil {
		return errors.Wrap(errors.TypeStorage, "encode session", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrap(errors.TypeStorage, "write session", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.TypeStorage, "write session", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.TypeStorage, "delete session", err)
	}
	return nil
}

// PurgeExpired deletes every expired session file and returns how many were removed.
// Files that are not sessions are left alone.
func (s *FileStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return 0, errors.Wrap(errors.TypeStorage, "list sessions", err)
	}

	now := s.now()
	var n int64
	for _, entry := range entries {
		id, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok || !ValidSessionID(id) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}

		path := filepath.Join(s.basePath, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var rec fileRecord
		if err := json.Unmarshal(data, &rec); err != nil || !now.After(rec.ExpiresAt) {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return n, errors.Wrap(errors.TypeStorage, "delete session", err)
		}
		n++
	}
	return n, nil
}

func (s *FileStore) Close() error {
	return nil
}

// New creates a store for the configured backend
func New(ctx context.Context, cfg config.SessionConfig) (Store, error) {
	ttl := cfg.TTL.Std()
	switch Backend(cfg.Backend) {
	case BackendMemory, "":
		return NewMemoryStore(ttl), nil
	case BackendFile:
		return NewFileStore(cfg.DSN, ttl)
	case BackendSQLite, BackendPostgres:
		return OpenSQLStore(ctx, cfg.Backend, cfg.DSN, ttl)
	case BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, ttl)
	default:
		return nil, errors.New(errors.TypeConfig, fmt.Sprintf("unsupported session backend: %s", cfg.Backend))
	}
}
