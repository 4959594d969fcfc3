// Package session persists the authenticated user's session between runs.
// The session is written by login and registration and read by every
// outgoing API call for its bearer token.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrNoSession means nothing has been persisted yet (or it was cleared).
	ErrNoSession = errors.New("no session")
	// ErrCorruptSession means a session exists but cannot be decoded.
	ErrCorruptSession = errors.New("corrupt session")
)

// User is the profile stored alongside the token.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role" yaml:"role"`
}

// Session is the persisted JSON blob.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Reader exposes the bearer token of the persisted session.
// Token returns ErrNoSession or ErrCorruptSession when there is no usable token.
type Reader interface {
	Token() (string, error)
}

// Store reads and writes the persisted session.
type Store interface {
	Reader
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

func decode(raw []byte) (*Session, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrNoSession
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	return &s, nil
}

func tokenOf(s *Session, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if s.Token == "" {
		return "", ErrNoSession
	}
	return s.Token, nil
}

// FileStore keeps the session as a JSON file on disk.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the session file.
func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	return decode(raw)
}

// Token returns the bearer token of the stored session.
func (f *FileStore) Token() (string, error) {
	return tokenOf(f.Load())
}

// Save writes the session, creating parent directories as needed.
func (f *FileStore) Save(s *Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing a missing session is not an error.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemoryStore keeps the raw session value in memory.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding raw as its persisted value.
// raw may be nil (no session) or arbitrary bytes, including invalid JSON.
func NewMemoryStore(raw []byte) *MemoryStore {
	return &MemoryStore{raw: raw}
}

// WithToken returns a memory store holding a session with the given token.
func WithToken(token string) *MemoryStore {
	m := &MemoryStore{}
	_ = m.Save(&Session{Token: token})
	return m
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decode(m.raw)
}

func (m *MemoryStore) Token() (string, error) {
	return tokenOf(m.Load())
}

func (m *MemoryStore) Save(s *Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.raw = nil
	m.mu.Unlock()
	return nil
}
