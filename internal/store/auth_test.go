package store

import (
	"testing"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/storage"
)

func TestAuthStoreSetAndClear(t *testing.T) {
	s := NewAuthStore(storage.NewMemoryStorage())

	if s.Authenticated() {
		t.Error("fresh store reports authenticated")
	}

	auth := model.AuthData{
		Token:        "token-1",
		RefreshToken: "refresh-1",
		ExpireAt:     "2024-03-15T10:00:00Z",
	}
	s.SetAuth(auth)

	if !s.Authenticated() {
		t.Error("store not authenticated after SetAuth")
	}
	if got := s.Auth(); got != auth {
		t.Errorf("Auth() = %+v, want %+v", got, auth)
	}

	// A second SetAuth replaces every field, not just the token.
	replacement := model.AuthData{Token: "token-2"}
	s.SetAuth(replacement)
	if got := s.Auth(); got != replacement {
		t.Errorf("Auth() after overwrite = %+v, want %+v", got, replacement)
	}

	s.ClearAuth()
	if s.Authenticated() {
		t.Error("store authenticated after ClearAuth")
	}
	if got := s.Auth(); got != (model.AuthData{}) {
		t.Errorf("Auth() after clear = %+v, want zero value", got)
	}
}

func TestAuthStoreRoundTrip(t *testing.T) {
	st := storage.NewMemoryStorage()

	s := NewAuthStore(st)
	auth := model.AuthData{
		Token:        "persisted-token",
		RefreshToken: "persisted-refresh",
		ExpireAt:     "2024-03-15T10:00:00Z",
	}
	s.SetAuth(auth)

	restored := NewAuthStore(st)
	if err := restored.Load(); err != nil {
		t.Fatalf("loading auth record: %v", err)
	}
	if got := restored.Auth(); got != auth {
		t.Errorf("restored auth = %+v, want %+v", got, auth)
	}
	if !restored.Authenticated() {
		t.Error("restored store not authenticated")
	}
}

func TestAuthStoreLoadMissingRecord(t *testing.T) {
	s := NewAuthStore(storage.NewMemoryStorage())
	if err := s.Load(); err != nil {
		t.Fatalf("loading empty storage: %v", err)
	}
	if s.Authenticated() {
		t.Error("store authenticated after loading empty storage")
	}
}

func TestAuthStoreLoadRejectsCorruptRecord(t *testing.T) {
	st := storage.NewMemoryStorage()
	if err := st.Set(AuthStorageKey, "{broken"); err != nil {
		t.Fatalf("seeding storage: %v", err)
	}

	s := NewAuthStore(st)
	if err := s.Load(); err == nil {
		t.Error("Load accepted corrupt record, want error")
	}
}
