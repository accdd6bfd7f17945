// Package service holds the gateway contracts that stand in for a real
// backend. The mock implementations simulate network latency and always
// succeed; the interfaces carry an error channel so a real backend can
// be substituted without touching callers.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster-app/taskmaster/internal/model"
)

// AuthGateway is the authentication backend contract. All calls are
// potentially latent; callers must treat them as real network requests
// even when the implementation resolves locally.
type AuthGateway interface {
	Login(ctx context.Context, in model.LoginInput) (model.AuthData, error)
	Signup(ctx context.Context, in model.SignupInput) (model.AuthData, error)
	Logout(ctx context.Context) error
}

// MockAuthService fabricates successful responses after a configurable
// delay. It never fails on its own; the only error it returns is the
// context's, when the caller gives up before the simulated round trip
// completes.
type MockAuthService struct {
	latency time.Duration
}

// NewMockAuthService creates a mock gateway with the given simulated
// round-trip latency.
func NewMockAuthService(latency time.Duration) *MockAuthService {
	return &MockAuthService{latency: latency}
}

// Login waits out the simulated latency and returns a fabricated
// session for any credentials.
func (s *MockAuthService) Login(ctx context.Context, in model.LoginInput) (model.AuthData, error) {
	if err := s.wait(ctx); err != nil {
		return model.AuthData{}, err
	}
	return s.fabricateSession(), nil
}

// Signup waits out the simulated latency and returns a fabricated
// session for any input.
func (s *MockAuthService) Signup(ctx context.Context, in model.SignupInput) (model.AuthData, error) {
	if err := s.wait(ctx); err != nil {
		return model.AuthData{}, err
	}
	return s.fabricateSession(), nil
}

// Logout waits out the simulated latency and returns.
func (s *MockAuthService) Logout(ctx context.Context) error {
	return s.wait(ctx)
}

func (s *MockAuthService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MockAuthService) fabricateSession() model.AuthData {
	return model.AuthData{
		Token:        fmt.Sprintf("mock-jwt-token-%s", uuid.New().String()[:8]),
		RefreshToken: "mock-refresh-token",
		ExpireAt:     time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	}
}
