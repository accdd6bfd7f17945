package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/storage"
)

// AuthStorageKey is the record under which the session is persisted.
const AuthStorageKey = "taskmaster-auth-storage"

// AuthStore holds the session triple. It has no derived computation:
// the rest of the application treats a non-empty token as the sole
// authentication gate, and ExpireAt is never enforced locally.
type AuthStore struct {
	mu      sync.RWMutex
	storage storage.Storage
	auth    model.AuthData
}

// NewAuthStore creates an empty auth store backed by st.
func NewAuthStore(st storage.Storage) *AuthStore {
	return &AuthStore{storage: st}
}

// SetAuth overwrites all three session fields atomically and persists
// the record.
func (s *AuthStore) SetAuth(auth model.AuthData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auth = auth
	s.commitLocked()
}

// ClearAuth resets all three session fields to empty strings and
// persists the record.
func (s *AuthStore) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auth = model.AuthData{}
	s.commitLocked()
}

// Auth returns the current session triple.
func (s *AuthStore) Auth() model.AuthData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// Authenticated reports whether a session token is present.
func (s *AuthStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.Token != ""
}

// Load rehydrates the session from its persisted record. A missing
// record leaves the store empty.
func (s *AuthStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		return nil
	}

	data, ok, err := s.storage.Get(AuthStorageKey)
	if err != nil {
		return fmt.Errorf("loading auth record: %w", err)
	}
	if !ok {
		return nil
	}

	var auth model.AuthData
	if err := json.Unmarshal([]byte(data), &auth); err != nil {
		return fmt.Errorf("parsing auth record: %w", err)
	}

	s.auth = auth
	return nil
}

func (s *AuthStore) commitLocked() {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(s.auth)
	if err != nil {
		return
	}
	_ = s.storage.Set(AuthStorageKey, string(data))
}
