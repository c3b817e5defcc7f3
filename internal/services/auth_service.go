package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/crypto"
	"github.com/tunestream/backend/pkg/jwt"
	"github.com/tunestream/backend/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService struct {
	store *store.Store
	cfg   *config.Config
	redis *redis.Client
	email *EmailService
}

// NewAuthService creates the auth service. redisClient and emailService may be
// nil; token blacklisting and reset mails are then skipped.
func NewAuthService(st *store.Store, cfg *config.Config, redisClient *redis.Client, emailService *EmailService) *AuthService {
	return &AuthService{
		store: st,
		cfg:   cfg,
		redis: redisClient,
		email: emailService,
	}
}

// TokenPair is an access/refresh token couple issued on login
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	FullName string
}

// ProviderProfile is the identity triple resolved from a third-party token
type ProviderProfile struct {
	Email         string
	Name          string
	Avatar        string
	EmailVerified bool
}

// Register creates an email/password account. When no username is supplied one
// is derived from the email's local part, deduplicated with a numeric suffix.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validation.ValidateEmail(email) {
		return nil, nil, apperror.BadRequest("a valid email is required")
	}
	if !validation.ValidatePassword(input.Password) {
		return nil, nil, apperror.BadRequest("password must be at least 8 characters")
	}

	if _, err := s.store.Users.FindByEmail(ctx, email); err == nil {
		return nil, nil, apperror.Conflict("email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}

	var username string
	if input.Username != "" {
		username = validation.NormalizeUsername(input.Username)
		if !validation.ValidateUsername(username) {
			return nil, nil, apperror.BadRequest("username must be 3-30 characters (lowercase letters, digits, - and _)")
		}
		exists, err := s.store.Users.UsernameExists(ctx, username)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return nil, nil, apperror.Conflict("username already taken")
		}
	} else {
		generated, err := s.generateUniqueUsername(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		username = generated
	}

	hash, err := crypto.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     validation.SanitizeString(input.FullName),
		Password:     hash,
		AuthProvider: models.AuthProviderEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, nil, apperror.Conflict("email or username already taken")
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates an email/password account
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, apperror.BadRequest("email and password are required")
	}

	user, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasPassword() {
		return nil, nil, apperror.BadRequest(fmt.Sprintf("this account signs in with %s", user.AuthProvider))
	}
	if !crypto.CheckPassword(password, user.Password) {
		return nil, nil, apperror.Unauthorized("invalid email or password")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LoginWithProvider finds or creates the account matching a verified
// third-party profile. An existing email account keeps its authProvider;
// only the avatar and verification flag are backfilled opportunistically.
func (s *AuthService) LoginWithProvider(ctx context.Context, provider models.AuthProvider, profile ProviderProfile) (*models.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, nil, apperror.BadRequest("provider profile carries no email")
	}

	user, err := s.store.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		changed := false
		if user.Avatar == "" && profile.Avatar != "" {
			user.Avatar = profile.Avatar
			changed = true
		}
		if !user.IsEmailVerified && profile.EmailVerified {
			user.IsEmailVerified = true
			changed = true
		}
		if changed {
			if err := s.store.Users.Update(ctx, user); err != nil {
				// Proceed with the existing account state; the backfill is best-effort
				log.Printf("provider backfill for %s failed: %v", user.ID.Hex(), err)
			}
		}
	case errors.Is(err, store.ErrNotFound):
		username, err := s.generateUniqueUsername(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		now := time.Now()
		user = &models.User{
			Username:        username,
			Email:           email,
			FullName:        validation.SanitizeString(profile.Name),
			Avatar:          profile.Avatar,
			AuthProvider:    provider,
			IsEmailVerified: profile.EmailVerified,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.store.Users.Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return nil, nil, apperror.Conflict("account already exists")
			}
			return nil, nil, fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The presented token
// must equal the one stored on the user document; the pair is rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, apperror.Unauthorized("refresh token is required")
	}
	claims, err := jwt.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, nil, apperror.Unauthorized("invalid or expired refresh token")
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, nil, apperror.Unauthorized("invalid or expired refresh token")
	}

	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperror.Unauthorized("invalid or expired refresh token")
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, nil, apperror.Unauthorized("refresh token no longer valid")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout clears the stored refresh token and blacklists the presented access
// token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID, accessToken string) error {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err == nil {
		user.RefreshToken = ""
		if err := s.store.Users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to clear refresh token: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if s.redis != nil && accessToken != "" {
		if claims, err := jwt.ValidateToken(accessToken, s.cfg.JWTSecret); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if ttl > 0 {
				if err := s.redis.Set(ctx, blacklistKey(accessToken), "1", ttl).Err(); err != nil {
					log.Printf("failed to blacklist access token: %v", err)
				}
			}
		}
	}
	return nil
}

// IsBlacklisted reports whether an access token was revoked by logout.
// Fails open when Redis is unavailable.
func (s *AuthService) IsBlacklisted(ctx context.Context, accessToken string) bool {
	if s.redis == nil || accessToken == "" {
		return false
	}
	n, err := s.redis.Exists(ctx, blacklistKey(accessToken)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// ValidateAccessToken resolves an access token to the user it identifies
func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := jwt.ValidateToken(accessToken, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != jwt.AccessToken {
		return nil, apperror.Unauthorized("invalid or expired access token")
	}
	if s.IsBlacklisted(ctx, accessToken) {
		return nil, apperror.Unauthorized("token has been revoked")
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("invalid or expired access token")
	}
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// ChangePassword rotates the password of an email account. Accounts without a
// password (third-party-only) are barred from this flow.
func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasPassword() {
		return apperror.Forbidden("password login is not enabled for this account")
	}
	if !crypto.CheckPassword(oldPassword, user.Password) {
		return apperror.Unauthorized("current password is incorrect")
	}
	if !validation.ValidatePassword(newPassword) {
		return apperror.BadRequest("password must be at least 8 characters")
	}

	hash, err := crypto.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash
	if err := s.store.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ForgotPassword issues a short-lived reset token and mails a reset link
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validation.ValidateEmail(email) {
		return apperror.BadRequest("a valid email is required")
	}

	user, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("no account with this email")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasPassword() {
		return apperror.Forbidden("password login is not enabled for this account")
	}

	token, err := jwt.GenerateTokenWithID(user.ID.Hex(), uuid.NewString(), jwt.ResetToken, s.cfg.ResetPasswordSecret, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if s.email != nil {
		link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, token)
		if err := s.email.SendPasswordResetLink(user.Email, user.FullName, link); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	} else {
		log.Printf("password reset requested for %s but no mailer is configured", user.ID.Hex())
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password. The stored
// refresh token is cleared so open sessions must sign in again.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := jwt.ValidateToken(resetToken, s.cfg.ResetPasswordSecret)
	if err != nil || claims.TokenType != jwt.ResetToken {
		return apperror.Unauthorized("invalid or expired reset token")
	}
	if !validation.ValidatePassword(newPassword) {
		return apperror.BadRequest("password must be at least 8 characters")
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return apperror.Unauthorized("invalid or expired reset token")
	}

	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Unauthorized("invalid or expired reset token")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasPassword() {
		return apperror.Forbidden("password login is not enabled for this account")
	}

	hash, err := crypto.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash
	user.RefreshToken = ""
	if err := s.store.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// issueTokens mints an access/refresh pair and persists the refresh token on
// the user document so it can be matched and rotated on refresh.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := jwt.GenerateToken(user.ID.Hex(), jwt.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := jwt.GenerateToken(user.ID.Hex(), jwt.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	user.RefreshToken = refresh
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// generateUniqueUsername derives a username from the email's local part and
// appends an incrementing suffix until it is free: john, john1, john2, ...
func (s *AuthService) generateUniqueUsername(ctx context.Context, email string) (string, error) {
	base := validation.UsernameBaseFromEmail(email)
	candidate := base
	for i := 1; ; i++ {
		exists, err := s.store.Users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}
