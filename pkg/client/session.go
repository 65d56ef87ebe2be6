package client

import (
	"encoding/json"
	"sync"
)

// Storage keys for the two session entries. Cleared together on logout.
const (
	storageKeyUser  = "user"
	storageKeyToken = "token"
)

// Storage is a string key-value store scoped to one session. Implementations
// decide the lifetime: MemoryStorage lasts for the process, a file- or
// keyring-backed implementation can survive restarts.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStorage is an in-process Storage, safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Session caches the authenticated account and bearer token on top of a
// Storage. It has two states: anonymous (no token) and authenticated.
// Rehydrate restores a previously stored session; Clear returns to anonymous.
type Session struct {
	mu      sync.RWMutex
	storage Storage
	account *Account
	token   string
}

func NewSession(storage Storage) *Session {
	return &Session{storage: storage}
}

// Rehydrate loads the account and token from storage. A missing or corrupt
// entry leaves the session anonymous rather than failing.
func (s *Session) Rehydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.storage.Get(storageKeyToken)
	if !ok {
		return
	}
	raw, ok := s.storage.Get(storageKeyUser)
	if !ok {
		return
	}

	var acc Account
	if err := json.Unmarshal([]byte(raw), &acc); err != nil {
		return
	}
	acc.Normalize()

	s.account = &acc
	s.token = token
}

// SignIn records a fresh authentication result.
func (s *Session) SignIn(account *Account, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistAccount(account); err != nil {
		return err
	}
	if err := s.storage.Set(storageKeyToken, token); err != nil {
		return err
	}
	s.account = account
	s.token = token
	return nil
}

// SetAccount replaces the cached account, keeping the current token.
func (s *Session) SetAccount(account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistAccount(account); err != nil {
		return err
	}
	s.account = account
	return nil
}

func (s *Session) persistAccount(account *Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return s.storage.Set(storageKeyUser, string(raw))
}

// Account returns the cached account, or nil when anonymous.
func (s *Session) Account() (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.account != nil
}

// Token returns the bearer token, if authenticated.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Clear removes both stored entries and returns the session to anonymous.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(storageKeyUser); err != nil {
		return err
	}
	if err := s.storage.Delete(storageKeyToken); err != nil {
		return err
	}
	s.account = nil
	s.token = ""
	return nil
}
