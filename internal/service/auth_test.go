package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/taskmaster-app/taskmaster/internal/model"
)

func TestMockAuthLoginFabricatesSession(t *testing.T) {
	svc := NewMockAuthService(0)

	auth, err := svc.Login(context.Background(), model.LoginInput{
		Email:    "user@example.com",
		Password: "irrelevant",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if !strings.HasPrefix(auth.Token, "mock-jwt-token-") {
		t.Errorf("token = %q, want mock-jwt-token- prefix", auth.Token)
	}
	if auth.RefreshToken != "mock-refresh-token" {
		t.Errorf("refresh token = %q", auth.RefreshToken)
	}

	expireAt, err := time.Parse(time.RFC3339, auth.ExpireAt)
	if err != nil {
		t.Fatalf("parsing ExpireAt %q: %v", auth.ExpireAt, err)
	}
	if !expireAt.After(time.Now()) {
		t.Errorf("ExpireAt %v is not in the future", expireAt)
	}
}

func TestMockAuthSignupFabricatesDistinctTokens(t *testing.T) {
	svc := NewMockAuthService(0)

	first, err := svc.Signup(context.Background(), model.SignupInput{Name: "Alice", Email: "a@example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	second, err := svc.Login(context.Background(), model.LoginInput{Email: "a@example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if first.Token == second.Token {
		t.Error("two sessions share the same token")
	}
}

func TestMockAuthHonorsLatency(t *testing.T) {
	const latency = 30 * time.Millisecond
	svc := NewMockAuthService(latency)

	start := time.Now()
	if _, err := svc.Login(context.Background(), model.LoginInput{}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if elapsed := time.Since(start); elapsed < latency {
		t.Errorf("login returned after %v, want at least %v", elapsed, latency)
	}
}

func TestMockAuthHonorsContextCancellation(t *testing.T) {
	svc := NewMockAuthService(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Login(ctx, model.LoginInput{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("login error = %v, want context.DeadlineExceeded", err)
	}

	if err := svc.Logout(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("logout error = %v, want context.DeadlineExceeded", err)
	}
}
