package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService() (*Service, *InMemorySessionRepository) {
	repo := NewInMemorySessionRepository()
	return NewService(repo, NewTokenManager("test-secret", time.Hour)), repo
}

func TestLoginAlwaysSucceeds(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	session, err := service.Login(ctx, " Jane.Doe@Example.com ", "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a token")
	}

	stored, err := repo.FindByEmail(ctx, "jane.doe@example.com")
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.Name != "Jane Doe" || stored.Role != RoleAdmin {
		t.Fatalf("unexpected session user %+v", stored)
	}
}

func TestLoginEmptyEmail(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.Login(context.Background(), "  ", "pw"); err == nil {
		t.Fatal("expected error for empty email")
	}
}

func TestLoginReusesExistingSession(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first, _ := service.Login(ctx, "a@example.com", "")
	if _, err := service.UpdateProfile(ctx, "a@example.com", "Alice", ""); err != nil {
		t.Fatal(err)
	}

	second, err := service.Login(ctx, "a@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if second.User.ID != first.User.ID || second.User.Name != "Alice" {
		t.Fatalf("expected stored profile to be reused, got %+v", second.User)
	}
}

func TestRegisterUsesName(t *testing.T) {
	service, _ := newTestService()

	session, err := service.Register(context.Background(), "Test User", "test@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.User.Name != "Test User" {
		t.Fatalf("expected given name, got %q", session.User.Name)
	}

	if _, err := service.Register(context.Background(), "", "test@example.com", "x"); err == nil {
		t.Fatal("expected missing name to fail")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, _ = service.Login(ctx, "test@example.com", "")
	if err := service.Logout(ctx, "test@example.com"); err != nil {
		t.Fatal(err)
	}

	if _, err := service.Me(ctx, "test@example.com"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	_, _ = service.Login(ctx, "test@example.com", "")

	user, err := service.UpdateProfile(ctx, "test@example.com", "Renamed", "https://img.example.com/me.png")
	if err != nil {
		t.Fatal(err)
	}
	if user.Avatar != "https://img.example.com/me.png" || user.Email != "test@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	user, _ = service.UpdateProfile(ctx, "test@example.com", "Renamed", "")
	if user.Avatar != AvatarURL("Renamed") {
		t.Fatalf("expected generated avatar, got %q", user.Avatar)
	}

	if _, err := service.UpdateProfile(ctx, "nobody@example.com", "X", ""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestNameFromEmail(t *testing.T) {
	cases := map[string]string{
		"jane.doe@example.com": "Jane Doe",
		"bob@example.com":      "Bob",
		"x_y-z@example.com":    "X Y Z",
	}
	for in, want := range cases {
		if got := nameFromEmail(in); got != want {
			t.Errorf("nameFromEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
