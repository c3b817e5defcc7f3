package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/pkg/apperror"
)

func TestRegisterGeneratesDedupedUsername(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	auth := NewAuthService(st, testConfig(), nil, nil)

	seedUser(t, st, "john", "john.one@example.com")
	seedUser(t, st, "john1", "john.two@example.com")

	user, pair, err := auth.Register(ctx, RegisterInput{
		Email:    "john@x.com",
		Password: "supersafe",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "john2" {
		t.Fatalf("want generated username john2, got %q", user.Username)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("registration must issue a token pair")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	auth := NewAuthService(st, testConfig(), nil, nil)

	if _, _, err := auth.Register(ctx, RegisterInput{Email: "amy@example.com", Password: "password1"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := auth.Register(ctx, RegisterInput{Email: "amy@example.com", Password: "password2"})
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Status != 409 {
		t.Fatalf("duplicate email want 409, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	auth := NewAuthService(st, testConfig(), nil, nil)

	registered, _, err := auth.Register(ctx, RegisterInput{Email: "kai@example.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, pair, err := auth.Login(ctx, "kai@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatal("login resolved the wrong account")
	}

	resolved, err := auth.ValidateAccessToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if resolved.ID != registered.ID {
		t.Fatal("access token resolved the wrong account")
	}

	var appErr *apperror.Error
	if _, _, err := auth.Login(ctx, "kai@example.com", "wrongpass"); !errors.As(err, &appErr) || appErr.Status != 401 {
		t.Fatalf("bad password want 401, got %v", err)
	}
}

func TestRefreshRotatesAndInvalidatesOldToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	auth := NewAuthService(st, testConfig(), nil, nil)

	_, pair, err := auth.Register(ctx, RegisterInput{Email: "rin@example.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, rotated, err := auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must rotate the refresh token")
	}

	// The superseded token no longer matches the stored one
	var appErr *apperror.Error
	if _, _, err := auth.Refresh(ctx, pair.RefreshToken); !errors.As(err, &appErr) || appErr.Status != 401 {
		t.Fatalf("stale refresh token want 401, got %v", err)
	}
}

func TestProviderAccountsAreBarredFromPasswordFlows(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	auth := NewAuthService(st, testConfig(), nil, nil)

	user, _, err := auth.LoginWithProvider(ctx, models.AuthProviderGoogle, ProviderProfile{
		Email:         "gia@example.com",
		Name:          "Gia",
		EmailVerified: true,
	})
	if err != nil {
		t.Fatalf("provider login: %v", err)
	}

	var appErr *apperror.Error
	if err := auth.ChangePassword(ctx, user.ID, "whatever", "newpassword"); !errors.As(err, &appErr) || appErr.Status != 403 {
		t.Fatalf("change-password on provider account want 403, got %v", err)
	}
	if err := auth.ForgotPassword(ctx, "gia@example.com"); !errors.As(err, &appErr) || appErr.Status != 403 {
		t.Fatalf("forgot-password on provider account want 403, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "gia@example.com", "whatever"); !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("password login on provider account want 400, got %v", err)
	}
}

func TestProviderLoginKeepsExistingAuthProvider(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	auth := NewAuthService(st, testConfig(), nil, nil)

	registered, _, err := auth.Register(ctx, RegisterInput{Email: "tom@example.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, _, err := auth.LoginWithProvider(ctx, models.AuthProviderGoogle, ProviderProfile{
		Email:         "tom@example.com",
		Name:          "Tom",
		Avatar:        "https://img.example.com/tom.png",
		EmailVerified: true,
	})
	if err != nil {
		t.Fatalf("provider login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatal("provider login must resolve the existing account")
	}
	if user.AuthProvider != models.AuthProviderEmail {
		t.Fatalf("authProvider must not be rewritten, got %q", user.AuthProvider)
	}
	if !user.IsEmailVerified {
		t.Fatal("verification flag should be backfilled")
	}
	if user.Avatar == "" {
		t.Fatal("avatar should be backfilled")
	}

	// Password login keeps working afterwards
	if _, _, err := auth.Login(ctx, "tom@example.com", "longenough"); err != nil {
		t.Fatalf("password login after provider login: %v", err)
	}
}

func TestLogoutClearsStoredRefreshToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	auth := NewAuthService(st, testConfig(), nil, nil)

	user, pair, err := auth.Register(ctx, RegisterInput{Email: "uma@example.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := auth.Logout(ctx, user.ID, pair.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	var appErr *apperror.Error
	if _, _, err := auth.Refresh(ctx, pair.RefreshToken); !errors.As(err, &appErr) || appErr.Status != 401 {
		t.Fatalf("refresh after logout want 401, got %v", err)
	}
}
